package pgxcasbin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

// UpdateType names the kind of policy change carried in a watcher
// message.
type UpdateType string

const (
	Update                        UpdateType = "Update"
	UpdateForAddPolicy            UpdateType = "UpdateForAddPolicy"
	UpdateForRemovePolicy         UpdateType = "UpdateForRemovePolicy"
	UpdateForRemoveFilteredPolicy UpdateType = "UpdateForRemoveFilteredPolicy"
	UpdateForSavePolicy           UpdateType = "UpdateForSavePolicy"
	UpdateForAddPolicies          UpdateType = "UpdateForAddPolicies"
	UpdateForRemovePolicies       UpdateType = "UpdateForRemovePolicies"
	UpdateForUpdatePolicy         UpdateType = "UpdateForUpdatePolicy"
	UpdateForUpdatePolicies       UpdateType = "UpdateForUpdatePolicies"
)

// Watcher propagates policy changes between processes over Postgres
// LISTEN/NOTIFY so every running instance keeps its enforcer in sync.
// Role updates made by one API replica reach the others this way.
type Watcher struct {
	sync.RWMutex

	opt        OptionWatcher
	pool       *pgxpool.Pool
	ownsPool   bool
	callback   func(string)
	cancelFunc func()
}

const defaultChannel = "lms_casbin_psql_watcher"

// OptionWatcher configures a Watcher. LocalID distinguishes this
// instance from its peers; NotifySelf replays this instance's own
// notifications back through the callback as well.
type OptionWatcher struct {
	Channel    string
	Verbose    bool
	LocalID    string
	NotifySelf bool
}

// GetChannel returns the Postgres listen channel in use.
func (w *Watcher) GetChannel() string {
	return w.opt.Channel
}

// GetVerbose reports whether verbose logging is enabled.
func (w *Watcher) GetVerbose() bool {
	return w.opt.Verbose
}

// GetLocalID returns this instance's identifier.
func (w *Watcher) GetLocalID() string {
	return w.opt.LocalID
}

// GetNotifySelf reports whether self-originated events are replayed.
func (w *Watcher) GetNotifySelf() bool {
	return w.opt.NotifySelf
}

// MSG is the JSON payload carried over pg_notify.
type MSG struct {
	Method      UpdateType `json:"method"`
	ID          string     `json:"id"`
	Sec         string     `json:"sec,omitempty"`
	Ptype       string     `json:"ptype,omitempty"`
	OldRules    [][]string `json:"old_rules,omitempty"`
	NewRules    [][]string `json:"new_rules,omitempty"`
	FieldIndex  int        `json:"field_index,omitempty"`
	FieldValues []string   `json:"field_values,omitempty"`
}

// NewWatcherWithPool starts a watcher on an existing pgx pool. The
// caller keeps ownership of the pool.
func NewWatcherWithPool(ctx context.Context, pool *pgxpool.Pool, opt OptionWatcher) (*Watcher, error) {
	return newWatcherWithPool(ctx, pool, opt, false)
}

func newWatcherWithPool(ctx context.Context, pool *pgxpool.Pool, opt OptionWatcher, ownsPool bool) (*Watcher, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, errors.Join(ErrPingPool, err)
	}

	if opt.Channel == "" {
		opt.Channel = defaultChannel
	}
	if opt.LocalID == "" {
		opt.LocalID = uuid.New().String()
	}

	listenerCtx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		opt:        opt,
		pool:       pool,
		ownsPool:   ownsPool,
		cancelFunc: cancel,
	}

	// the listen loop reconnects with fibonacci backoff, capped at 5s
	go func() {
		b := retry.NewFibonacci(200 * time.Millisecond)
		b = retry.WithCappedDuration(5*time.Second, b)

		if err := retry.Do(listenerCtx, b, func(ctx context.Context) error {
			err := w.listenMessage(listenerCtx)
			if errors.Is(err, context.Canceled) {
				slog.Info("pgxcasbin watcher closed")
				return nil
			}
			if err != nil {
				slog.Error("pgxcasbin failed to listen message", "error", err)
				return retry.RetryableError(err)
			}
			return nil
		}); err != nil {
			slog.Error("pgxcasbin listener stopped with error", "error", err)
		}

		slog.Info("pgxcasbin listener exited")
	}()

	return w, nil
}

// DefaultCallback builds a callback that applies incoming update
// messages to the given enforcer without re-notifying peers.
func DefaultCallback(e casbin.IEnforcer) func(string) {
	return func(s string) {
		var m MSG
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			slog.Error("pgxcasbin unable to unmarshal payload", "payload", s, "error", err)
			return
		}

		var res bool
		var err error
		switch m.Method {
		case Update, UpdateForSavePolicy:
			err = e.LoadPolicy()
			res = true
		case UpdateForAddPolicy:
			if len(m.NewRules) == 0 {
				slog.Warn("pgxcasbin missing new rules for add policy")
				return
			}
			res, err = e.SelfAddPolicy(m.Sec, m.Ptype, m.NewRules[0])
		case UpdateForAddPolicies:
			res, err = e.SelfAddPolicies(m.Sec, m.Ptype, m.NewRules)
		case UpdateForRemovePolicy:
			if len(m.NewRules) == 0 {
				slog.Warn("pgxcasbin missing new rules for remove policy")
				return
			}
			res, err = e.SelfRemovePolicy(m.Sec, m.Ptype, m.NewRules[0])
		case UpdateForRemoveFilteredPolicy:
			res, err = e.SelfRemoveFilteredPolicy(m.Sec, m.Ptype, m.FieldIndex, m.FieldValues...)
		case UpdateForRemovePolicies:
			res, err = e.SelfRemovePolicies(m.Sec, m.Ptype, m.NewRules)
		case UpdateForUpdatePolicy:
			if len(m.OldRules) == 0 || len(m.NewRules) == 0 {
				slog.Warn("pgxcasbin missing old or new rules for update policy")
				return
			}
			res, err = e.SelfUpdatePolicy(m.Sec, m.Ptype, m.OldRules[0], m.NewRules[0])
		case UpdateForUpdatePolicies:
			res, err = e.SelfUpdatePolicies(m.Sec, m.Ptype, m.OldRules, m.NewRules)
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownUpdateType, m.Method)
		}
		if err != nil {
			slog.Error("pgxcasbin failed to update policy", "error", err)
		}
		if !res {
			slog.Warn("pgxcasbin callback update policy failed")
		}
	}
}

// SetUpdateCallback registers the handler invoked on update messages.
func (w *Watcher) SetUpdateCallback(callback func(string)) error {
	w.Lock()
	defer w.Unlock()
	w.callback = callback
	return nil
}

// Update notifies peers to reload the whole policy.
func (w *Watcher) Update() error {
	return w.notifyMessage(&MSG{
		Method: Update,
		ID:     w.GetLocalID(),
	})
}

// Close stops listening and closes the pool when the watcher owns it.
func (w *Watcher) Close() {
	w.cancelFunc()
	if w.ownsPool && w.pool != nil {
		w.pool.Close()
	}
}

// UpdateForAddPolicy notifies peers of a single added rule.
func (w *Watcher) UpdateForAddPolicy(sec, ptype string, params ...string) error {
	return w.notifyMessage(&MSG{
		Method:   UpdateForAddPolicy,
		ID:       w.GetLocalID(),
		Sec:      sec,
		Ptype:    ptype,
		NewRules: [][]string{params},
	})
}

// UpdateForRemovePolicy notifies peers of a single removed rule.
func (w *Watcher) UpdateForRemovePolicy(sec, ptype string, params ...string) error {
	return w.notifyMessage(&MSG{
		Method:   UpdateForRemovePolicy,
		ID:       w.GetLocalID(),
		Sec:      sec,
		Ptype:    ptype,
		NewRules: [][]string{params},
	})
}

// UpdateForRemoveFilteredPolicy notifies peers of a filtered removal.
func (w *Watcher) UpdateForRemoveFilteredPolicy(sec, ptype string, fieldIndex int, fieldValues ...string) error {
	return w.notifyMessage(&MSG{
		Method:      UpdateForRemoveFilteredPolicy,
		ID:          w.GetLocalID(),
		Sec:         sec,
		Ptype:       ptype,
		FieldIndex:  fieldIndex,
		FieldValues: fieldValues,
	})
}

// UpdateForSavePolicy notifies peers to reload all policies.
func (w *Watcher) UpdateForSavePolicy(model model.Model) error {
	return w.notifyMessage(&MSG{
		Method: UpdateForSavePolicy,
		ID:     w.GetLocalID(),
	})
}

// UpdateForAddPolicies notifies peers of a batch of added rules.
func (w *Watcher) UpdateForAddPolicies(sec string, ptype string, rules ...[]string) error {
	return w.notifyMessage(&MSG{
		Method:   UpdateForAddPolicies,
		ID:       w.GetLocalID(),
		Sec:      sec,
		Ptype:    ptype,
		NewRules: rules,
	})
}

// UpdateForRemovePolicies notifies peers of a batch of removed rules.
func (w *Watcher) UpdateForRemovePolicies(sec string, ptype string, rules ...[]string) error {
	return w.notifyMessage(&MSG{
		Method:   UpdateForRemovePolicies,
		ID:       w.GetLocalID(),
		Sec:      sec,
		Ptype:    ptype,
		NewRules: rules,
	})
}

// UpdateForUpdatePolicy notifies peers of a rewritten rule.
func (w *Watcher) UpdateForUpdatePolicy(sec string, ptype string, oldRule, newRule []string) error {
	return w.notifyMessage(&MSG{
		Method:   UpdateForUpdatePolicy,
		ID:       w.GetLocalID(),
		Sec:      sec,
		Ptype:    ptype,
		OldRules: [][]string{oldRule},
		NewRules: [][]string{newRule},
	})
}

// UpdateForUpdatePolicies notifies peers of a batch of rewritten rules.
func (w *Watcher) UpdateForUpdatePolicies(sec string, ptype string, oldRules, newRules [][]string) error {
	return w.notifyMessage(&MSG{
		Method:   UpdateForUpdatePolicies,
		ID:       w.GetLocalID(),
		Sec:      sec,
		Ptype:    ptype,
		OldRules: oldRules,
		NewRules: newRules,
	})
}

func (w *Watcher) notifyMessage(m *MSG) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("%w: %+v", errors.Join(ErrMarshalMessage, err), m)
	}
	cmd := fmt.Sprintf("select pg_notify('%s', $1)", w.GetChannel())

	if _, err := w.pool.Exec(context.Background(), cmd, string(b)); err != nil {
		return fmt.Errorf("%w: %s", errors.Join(ErrNotifyMessage, err), string(b))
	}

	if w.GetVerbose() {
		slog.Info("pgxcasbin send message", "channel", w.GetChannel(), "payload", string(b))
	}

	return nil
}

func (w *Watcher) listenMessage(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return errors.Join(ErrAcquireConn, err)
	}
	defer conn.Release()

	cmd := fmt.Sprintf("listen %s", w.GetChannel())
	if _, err = conn.Exec(ctx, cmd); err != nil {
		return fmt.Errorf("%w: %s", errors.Join(ErrListenChannel, err), w.GetChannel())
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if errors.Is(err, context.Canceled) {
			return err
		} else if err != nil {
			return errors.Join(ErrWaitNotification, err)
		}

		if w.GetVerbose() {
			slog.Info("pgxcasbin received message", "channel", w.GetChannel(), "local_id", w.GetLocalID(), "payload", notification.Payload)
		}

		var m MSG
		if err := json.Unmarshal([]byte(notification.Payload), &m); err != nil {
			slog.Error("pgxcasbin failed to unmarshal notification", "payload", notification.Payload, "error", err)
			continue
		}

		w.RLock()
		if m.ID != w.GetLocalID() || w.GetNotifySelf() {
			if w.callback != nil {
				w.callback(notification.Payload)
			} else {
				slog.Warn("pgxcasbin callback is not set, skipping update")
			}
		}
		w.RUnlock()
	}
}
