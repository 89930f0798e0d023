package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/demirti/cverse-lms/internal/pkg/clock"
	"github.com/demirti/cverse-lms/internal/pkg/config"
	"github.com/demirti/cverse-lms/internal/pkg/goroutine"
	"github.com/demirti/cverse-lms/internal/pkg/idempotency"
	"github.com/demirti/cverse-lms/internal/pkg/instrument"
	"github.com/demirti/cverse-lms/internal/pkg/jwt"
	"github.com/demirti/cverse-lms/internal/pkg/mail"
	"github.com/demirti/cverse-lms/internal/pkg/messaging"
	"github.com/demirti/cverse-lms/internal/pkg/pgxcasbin"
	"github.com/demirti/cverse-lms/internal/pkg/ratelimit"
	"github.com/demirti/cverse-lms/internal/pkg/router"
	"github.com/demirti/cverse-lms/internal/pkg/storage"
	"github.com/demirti/cverse-lms/internal/pkg/uid"
	"github.com/demirti/cverse-lms/internal/pkg/validator"
	"github.com/demirti/cverse-lms/internal/pkg/webpush"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn        *pgxpool.Pool
	cacheConn     *redis.Client
	idemp         idempotency.Idempotency
	limiter       ratelimit.Limiter
	mail          mail.Mail
	webpush       webpush.WebPush
	messaging     messaging.Messaging
	storage       storage.Storage
	casbin        *casbin.Enforcer
	casbinWatcher *pgxcasbin.Watcher

	// server
	router     *router.Router
	httpServer *http.Server
	sseServer  *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initWebPush()
	app.initStorage()
	app.initMessaging()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
