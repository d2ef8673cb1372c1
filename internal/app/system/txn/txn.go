// Package txn runs multi-document writes inside a MongoDB transaction when
// the deployment supports one, and falls back to a caller-supplied
// sequential path when it does not (standalone servers, some hosted tiers).
package txn

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Server error codes returned when transactions or sessions are unavailable.
const (
	codeIllegalOperation      = 20
	codeNoReplicationEnabled  = 51
	codeOperationNotSupported = 263
)

// IsNotSupported reports whether err means the server cannot run a
// transaction, as opposed to the transaction itself failing.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case codeIllegalOperation, codeNoReplicationEnabled, codeOperationNotSupported:
			return true
		}
	}

	s := strings.ToLower(err.Error())
	hasTxn := strings.Contains(s, "transaction")
	switch {
	case hasTxn && strings.Contains(s, "replica set"):
		return true
	case hasTxn && strings.Contains(s, "session"):
		return true
	case strings.Contains(s, "session") && strings.Contains(s, "not supported"):
		return true
	case strings.Contains(s, "illegal operation") && hasTxn:
		return true
	}
	return false
}

// Run executes fn inside a transaction on db's client. If the server
// rejects transactions, fallback runs instead with the plain context; a nil
// fallback reruns fn without a session. fallback owns its own ordering and
// compensation.
//
// A ctx without a deadline gets timeouts.Long. WithTransaction retries
// transient errors (an unreachable server included) for two minutes and
// never looks at ctx, so once ctx is done the body's error is returned
// without its retry label.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error, fallback func(ctx context.Context) error) error {
	if fallback == nil {
		fallback = fn
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeouts.Long())
		defer cancel()
	}
	if db == nil {
		return fallback(ctx)
	}

	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fallback(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		err := fn(sc)
		if err != nil && ctx.Err() != nil {
			return nil, stopRetry{err}
		}
		return nil, err
	})
	var sr stopRetry
	if errors.As(err, &sr) {
		err = sr.err
	}
	if err != nil && IsNotSupported(err) {
		if log != nil {
			log.Debug("transactions unavailable; using sequential writes", zap.Error(err))
		}
		return fallback(ctx)
	}
	return err
}

// stopRetry hides the driver's error labels from WithTransaction, which
// walks Unwrap chains looking for them.
type stopRetry struct{ err error }

func (e stopRetry) Error() string { return e.err.Error() }
