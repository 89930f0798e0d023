package app

import (
	"log/slog"
	"os"

	"github.com/demirti/cverse-lms/internal/account"
	"github.com/demirti/cverse-lms/internal/announcement"
	"github.com/demirti/cverse-lms/internal/chat"
	"github.com/demirti/cverse-lms/internal/course"
	"github.com/demirti/cverse-lms/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.account.enabled") {
		if err := account.New(account.Dependency{
			DBConn:     a.dbConn,
			Enforcer:   a.casbin,
			Instrument: a.ins,
			Validator:  a.validator,
			Router:     a.router,
		}); err != nil {
			slog.Error("failed to init module account", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.course.enabled") {
		if err := course.New(course.Dependency{
			DBConn:      a.dbConn,
			Messaging:   a.messaging,
			Storage:     a.storage,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Clock:       a.clock,
			Idempotency: a.idemp,
			Validator:   a.validator,
			Router:      a.router,
		}); err != nil {
			slog.Error("failed to init module course", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.chat.enabled") {
		if err := chat.New(chat.Dependency{
			DBConn:     a.dbConn,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Limiter:    a.limiter,
			Validator:  a.validator,
			Router:     a.router,
		}); err != nil {
			slog.Error("failed to init module chat", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.announcement.enabled") {
		if err := announcement.New(announcement.Dependency{
			DBConn:      a.dbConn,
			Messaging:   a.messaging,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Clock:       a.clock,
			Idempotency: a.idemp,
			Validator:   a.validator,
			Router:      a.router,
		}); err != nil {
			slog.Error("failed to init module announcement", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			DBConn:     a.dbConn,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Router:     a.router,
			Mail:       a.mail,
			WebPush:    a.webpush,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
