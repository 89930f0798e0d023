package usecase

import (
	"time"

	"github.com/demirti/cverse-lms/internal/notification/entity"
)

// chatEmailReadWindow suppresses chat emails for members who read the room
// recently, since they are presumed to still be looking at it.
const chatEmailReadWindow = 2 * time.Minute

type channelBuckets struct {
	inApp []entity.Recipient
	push  []entity.Recipient
	email []entity.Recipient
}

// partitionByChannel evaluates the three channel predicates independently for
// every recipient. A recipient may land in any number of buckets, including
// none.
func partitionByChannel(recipients []entity.Recipient, tpl entity.ResolvedTemplate, cat entity.Category, emailAllowed bool, now time.Time) channelBuckets {
	var b channelBuckets
	for _, r := range recipients {
		if allowInApp(tpl, r) {
			b.inApp = append(b.inApp, r)
		}
		if allowPush(tpl, r) {
			b.push = append(b.push, r)
		}
		if emailAllowed && allowEmail(tpl, r, cat, now) {
			b.email = append(b.email, r)
		}
	}

	return b
}

func allowInApp(tpl entity.ResolvedTemplate, r entity.Recipient) bool {
	return tpl.InAppEnabled && r.InAppEnabled && r.CategoryInApp && !r.IsMuted
}

// allowPush intentionally skips the global in-app flag: a user who hides the
// in-app inbox can still opt into push for a category.
func allowPush(tpl entity.ResolvedTemplate, r entity.Recipient) bool {
	return tpl.InAppEnabled && r.CategoryPush && !r.IsMuted
}

func allowEmail(tpl entity.ResolvedTemplate, r entity.Recipient, cat entity.Category, now time.Time) bool {
	if !tpl.EmailEnabled || !r.EmailEnabled || !r.CategoryEmail || r.EmailMuted {
		return false
	}

	if cat == entity.CategoryChat && r.LastReadAt != nil && now.Sub(*r.LastReadAt) <= chatEmailReadWindow {
		return false
	}

	return true
}
