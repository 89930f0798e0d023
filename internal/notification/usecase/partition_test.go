package usecase

import (
	"testing"
	"time"

	"github.com/demirti/cverse-lms/internal/notification/entity"
)

func TestPartitionByChannel(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	enabledTpl := entity.ResolvedTemplate{InAppEnabled: true, EmailEnabled: true}

	base := entity.Recipient{
		UserID:        1,
		Email:         "a@lms.test",
		EmailEnabled:  true,
		InAppEnabled:  true,
		CategoryEmail: true,
		CategoryInApp: true,
		CategoryPush:  true,
	}

	tests := []struct {
		name         string
		tpl          entity.ResolvedTemplate
		cat          entity.Category
		emailAllowed bool
		mutate       func(r *entity.Recipient)
		wantInApp    bool
		wantPush     bool
		wantEmail    bool
	}{
		{
			name:         "all channels open",
			tpl:          enabledTpl,
			cat:          entity.CategoryAnnouncements,
			emailAllowed: true,
			mutate:       func(*entity.Recipient) {},
			wantInApp:    true,
			wantPush:     true,
			wantEmail:    true,
		},
		{
			name:         "muted recipient loses in-app and push but not email",
			tpl:          enabledTpl,
			cat:          entity.CategoryAnnouncements,
			emailAllowed: true,
			mutate:       func(r *entity.Recipient) { r.IsMuted = true },
			wantInApp:    false,
			wantPush:     false,
			wantEmail:    true,
		},
		{
			name:         "email muted loses email only",
			tpl:          enabledTpl,
			cat:          entity.CategoryAnnouncements,
			emailAllowed: true,
			mutate:       func(r *entity.Recipient) { r.EmailMuted = true },
			wantInApp:    true,
			wantPush:     true,
			wantEmail:    false,
		},
		{
			name:         "global in-app off still allows push",
			tpl:          enabledTpl,
			cat:          entity.CategoryAnnouncements,
			emailAllowed: true,
			mutate:       func(r *entity.Recipient) { r.InAppEnabled = false },
			wantInApp:    false,
			wantPush:     true,
			wantEmail:    true,
		},
		{
			name:         "category push off",
			tpl:          enabledTpl,
			cat:          entity.CategoryAnnouncements,
			emailAllowed: true,
			mutate:       func(r *entity.Recipient) { r.CategoryPush = false },
			wantInApp:    true,
			wantPush:     false,
			wantEmail:    true,
		},
		{
			name:         "global email off",
			tpl:          enabledTpl,
			cat:          entity.CategoryAnnouncements,
			emailAllowed: true,
			mutate:       func(r *entity.Recipient) { r.EmailEnabled = false },
			wantInApp:    true,
			wantPush:     true,
			wantEmail:    false,
		},
		{
			name:         "template email disabled",
			tpl:          entity.ResolvedTemplate{InAppEnabled: true, EmailEnabled: false},
			cat:          entity.CategoryAnnouncements,
			emailAllowed: true,
			mutate:       func(*entity.Recipient) {},
			wantInApp:    true,
			wantPush:     true,
			wantEmail:    false,
		},
		{
			name:         "template in-app disabled drops in-app and push",
			tpl:          entity.ResolvedTemplate{InAppEnabled: false, EmailEnabled: true},
			cat:          entity.CategoryAnnouncements,
			emailAllowed: true,
			mutate:       func(*entity.Recipient) {},
			wantInApp:    false,
			wantPush:     false,
			wantEmail:    true,
		},
		{
			name:         "event email suppressed",
			tpl:          enabledTpl,
			cat:          entity.CategoryAnnouncements,
			emailAllowed: false,
			mutate:       func(*entity.Recipient) {},
			wantInApp:    true,
			wantPush:     true,
			wantEmail:    false,
		},
		{
			name:         "chat read 30 seconds ago suppresses email",
			tpl:          enabledTpl,
			cat:          entity.CategoryChat,
			emailAllowed: true,
			mutate: func(r *entity.Recipient) {
				at := now.Add(-30 * time.Second)
				r.LastReadAt = &at
			},
			wantInApp: true,
			wantPush:  true,
			wantEmail: false,
		},
		{
			name:         "chat read 10 minutes ago still emails",
			tpl:          enabledTpl,
			cat:          entity.CategoryChat,
			emailAllowed: true,
			mutate: func(r *entity.Recipient) {
				at := now.Add(-10 * time.Minute)
				r.LastReadAt = &at
			},
			wantInApp: true,
			wantPush:  true,
			wantEmail: true,
		},
		{
			name:         "recent read outside chat category does not suppress",
			tpl:          enabledTpl,
			cat:          entity.CategoryAssignments,
			emailAllowed: true,
			mutate: func(r *entity.Recipient) {
				at := now.Add(-30 * time.Second)
				r.LastReadAt = &at
			},
			wantInApp: true,
			wantPush:  true,
			wantEmail: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := base
			tc.mutate(&r)

			b := partitionByChannel([]entity.Recipient{r}, tc.tpl, tc.cat, tc.emailAllowed, now)

			if got := len(b.inApp) == 1; got != tc.wantInApp {
				t.Errorf("in-app = %v, want %v", got, tc.wantInApp)
			}
			if got := len(b.push) == 1; got != tc.wantPush {
				t.Errorf("push = %v, want %v", got, tc.wantPush)
			}
			if got := len(b.email) == 1; got != tc.wantEmail {
				t.Errorf("email = %v, want %v", got, tc.wantEmail)
			}
		})
	}
}

func TestPartitionByChannelIndependentBuckets(t *testing.T) {
	now := time.Now()
	tpl := entity.ResolvedTemplate{InAppEnabled: true, EmailEnabled: true}

	recipients := []entity.Recipient{
		{UserID: 1, InAppEnabled: true, CategoryInApp: true},
		{UserID: 2, EmailEnabled: true, CategoryEmail: true},
		{UserID: 3, CategoryPush: true},
		{UserID: 4},
	}

	b := partitionByChannel(recipients, tpl, entity.CategoryGrades, true, now)

	if len(b.inApp) != 1 || b.inApp[0].UserID != 1 {
		t.Errorf("in-app bucket = %+v, want only user 1", b.inApp)
	}
	if len(b.email) != 1 || b.email[0].UserID != 2 {
		t.Errorf("email bucket = %+v, want only user 2", b.email)
	}
	if len(b.push) != 1 || b.push[0].UserID != 3 {
		t.Errorf("push bucket = %+v, want only user 3", b.push)
	}
}
