package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"

	"github.com/openfairway/one-and-done/internal/usecase"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// classifyError tags timeouts and connection drops as retryable so the HTTP
// layer can answer 503 instead of 500.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %s: %v", usecase.ErrRetryable, op, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", usecase.ErrRetryable, op, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "57014", // query_canceled (statement timeout)
			"40001", // serialization_failure
			"40P01", // deadlock_detected
			"53300", // too_many_connections
			"08006", // connection_failure
			"08003": // connection_does_not_exist
			return fmt.Errorf("%w: %s: %v", usecase.ErrRetryable, op, err)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

func unixToTime(v int64) time.Time {
	return time.Unix(v, 0).UTC()
}

func timeToUnix(t time.Time) int64 {
	return t.UTC().Unix()
}

func nullUnixToTimePtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := unixToTime(v.Int64)
	return &t
}

func nullableUnix(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := timeToUnix(*t)
	return &v
}
