// Package repository implements the seat ledger on top of MySQL.  Every
// repository wraps driver failures with model.ErrStorage so that higher
// layers can distinguish storage faults from business outcomes such as
// model.ErrNotFound.  Multi-row mutations always run inside a single
// transaction and are durable once the method returns.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/theater-ticketing/internal/model"
)

// ErrCorruptSeat is returned when a stored seat row violates the seat state
// invariants (for example HELD without a hold reference).  The schema's CHECK
// constraints make this unreachable on a healthy database.
var ErrCorruptSeat = errors.New("seat row violates state invariants")

// MySQL server error numbers that indicate the transaction was rolled back
// by InnoDB and can be retried as a whole.
const (
	errLockDeadlock    = 1213
	errLockWaitTimeout = 1205
)

const maxTxAttempts = 3

func storageErr(op string, err error) error {
	return model.StorageError(op, err)
}

// retryable reports whether err is a deadlock or lock wait timeout.
func retryable(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == errLockDeadlock || me.Number == errLockWaitTimeout
	}
	return false
}

// withRetry runs fn until it succeeds, fails with a non retryable error or
// maxTxAttempts is reached.  fn must open and finish its own transaction.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		if err = fn(); err == nil || !retryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(attempt) * 20 * time.Millisecond):
		}
	}
	return err
}

// inClause returns "?,?,...,?" with n placeholders together with ids
// converted to driver arguments.  Extra leading arguments may be supplied.
func inClause(ids []uint64, lead ...interface{}) (string, []interface{}) {
	args := make([]interface{}, 0, len(lead)+len(ids))
	args = append(args, lead...)
	for _, id := range ids {
		args = append(args, id)
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(ids)), ","), args
}
