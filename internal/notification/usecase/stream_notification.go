package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/demirti/cverse-lms/internal/notification/entity"
	"github.com/demirti/cverse-lms/internal/pkg/valueobject"
)

// StreamEvent represents an inbox update sent over SSE.
type StreamEvent struct {
	ID        int64               `json:"id"`
	UserID    int64               `json:"user_id"`
	EventKey  entity.EventKey     `json:"event_key"`
	Title     string              `json:"title"`
	Body      string              `json:"body"`
	Link      string              `json:"link,omitempty"`
	Data      valueobject.JSONMap `json:"data,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

type subscriber struct {
	ch     chan StreamEvent
	closed atomic.Bool
}

// StreamNotifications registers a stream for a user and closes it when ctx is done.
func (s *Usecase) StreamNotifications(ctx context.Context, userID int64) <-chan StreamEvent {
	sub := &subscriber{ch: make(chan StreamEvent, 10)}

	s.streamMu.Lock()
	if s.streams[userID] == nil {
		s.streams[userID] = make(map[*subscriber]struct{})
	}
	s.streams[userID][sub] = struct{}{}
	s.streamMu.Unlock()

	go func() {
		<-ctx.Done()
		s.streamMu.Lock()
		if subs := s.streams[userID]; subs != nil {
			delete(subs, sub)
			if len(subs) == 0 {
				delete(s.streams, userID)
			}
		}
		s.streamMu.Unlock()
		close(sub.ch)
	}()

	return sub.ch
}

func (s *Usecase) publishStreamEvent(evt StreamEvent) {
	s.streamMu.RLock()
	subs := s.streams[evt.UserID]
	s.streamMu.RUnlock()

	for sub := range subs {
		if sub.closed.Load() {
			continue
		}

		select {
		case sub.ch <- evt:
		default:
		}
	}
}

func (s *Usecase) buildStreamEvent(item entity.CreateInboxItem) StreamEvent {
	return StreamEvent{
		ID:        item.ID,
		UserID:    item.UserID,
		EventKey:  item.EventKey,
		Title:     item.Title,
		Body:      item.Body,
		Link:      item.Link,
		Data:      item.Data,
		CreatedAt: s.clock.Now(),
	}
}
