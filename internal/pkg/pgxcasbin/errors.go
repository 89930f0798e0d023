package pgxcasbin

import "errors"

// Sentinel errors wrapped around the underlying pgx failures so callers
// can classify adapter and watcher problems without string matching.
var (
	ErrInvalidFilterType = errors.New("invalid filter type")
	ErrBatchExec         = errors.New("failed to execute batch")
	ErrBatchClose        = errors.New("failed to close batch")
	ErrInsertRow         = errors.New("failed to insert row")
	ErrArgsTooLong       = errors.New("args length exceeds field count")
	ErrSelectWhere       = errors.New("failed to select where")
	ErrScanRow           = errors.New("failed to scan row")
	ErrUpdateRow         = errors.New("failed to update row")
	ErrDeleteRow         = errors.New("failed to delete row")
	ErrEmptyPtype        = errors.New("ptype is empty")
	ErrDeleteWhere       = errors.New("failed to delete where")
	ErrBeginTx           = errors.New("failed to begin transaction")
	ErrDeleteAll         = errors.New("failed to delete all rows")
	ErrCommitTx          = errors.New("failed to commit transaction")
	ErrRollbackTx        = errors.New("failed to rollback transaction")
	ErrRulesMismatch     = errors.New("oldRules and newRules length mismatch")
	ErrRuleTooLong       = errors.New("rule length exceeds field count")
	ErrRuleEmpty         = errors.New("rule is empty")
	ErrNewPool           = errors.New("failed to create pgx pool")
	ErrPingPool          = errors.New("failed to ping pool")
	ErrUnknownUpdateType = errors.New("unknown update type")
	ErrMarshalMessage    = errors.New("failed to marshal message")
	ErrNotifyMessage     = errors.New("failed to notify")
	ErrAcquireConn       = errors.New("failed to acquire psql connection")
	ErrListenChannel     = errors.New("failed to listen channel")
	ErrWaitNotification  = errors.New("failed to wait for notification")
)
