// Package dberr translates Postgres driver failures into the application's
// error taxonomy and retries operations that failed transiently.
package dberr

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// Translate converts a storage error into a domain error. Unique constraint
// violations become conflicts, missing rows become not-found errors, and
// connection-level failures become transient storage errors that callers may
// retry. Anything else passes through unchanged.
func Translate(err error, object string, id any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(object, id)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == uniqueViolation {
			return errs.NewConflictErrorWithCause(object, id, err)
		}
		if isTransientCode(pqErr.Code) {
			return errs.NewTransientStorageError(object, err)
		}
	}

	return err
}

// IsTransient reports whether the error is worth retrying.
func IsTransient(err error) bool {
	var transient *errs.TransientStorageError
	if errors.As(err, &transient) {
		return true
	}

	var pqErr *pq.Error
	return errors.As(err, &pqErr) && isTransientCode(pqErr.Code)
}

// Retry runs op with exponential backoff for as long as it keeps failing
// transiently. Non-transient errors stop the retry loop immediately.
func Retry(ctx context.Context, operation string, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond
	policy.MaxElapsedTime = 5 * time.Second

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if IsTransient(err) {
			return errs.NewTransientStorageError(operation, err)
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(policy, ctx))
}

// isTransientCode matches connection failures, serialization conflicts and
// deadlocks: classes where the statement may succeed on a clean retry.
func isTransientCode(code pq.ErrorCode) bool {
	switch {
	case code.Class() == "08": // connection exceptions
		return true
	case code == "40001" || code == "40P01": // serialization failure, deadlock
		return true
	case code == "57P01": // admin shutdown
		return true
	default:
		return false
	}
}
