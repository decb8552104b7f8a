package resilience

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// TransientError marks an error as safe to retry.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return e.Err.Error() }

func (e *TransientError) Unwrap() error { return e.Err }

// NewTransientError wraps an error as explicitly transient.
func NewTransientError(err error) *TransientError {
	return &TransientError{Err: err}
}

// IsTransient reports whether the error is worth retrying: an explicit
// TransientError, a network-level failure, a PostgreSQL connection or
// serialization error, or a SQLite busy lock. Anything else (bad SQL,
// constraint violations, auth failures) is permanent and retrying would
// just repeat it.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var te *TransientError
	if errors.As(err, &te) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isTransientSQLState(pgErr.Code)
	}

	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"connection reset by peer",
		"broken pipe",
		"i/o timeout",
		"conn closed",
		"database is locked", // sqlite busy
		"database table is locked",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// isTransientSQLState classifies PostgreSQL SQLSTATE codes. Class 08 is
// connection exceptions, class 53 insufficient resources; 40001 and 40P01
// are serialization failure and deadlock, both retryable per the PostgreSQL
// docs; 57P03 is a server still starting up.
func isTransientSQLState(code string) bool {
	if len(code) >= 2 {
		switch code[:2] {
		case "08", "53":
			return true
		}
	}
	switch code {
	case "40001", "40P01", "57P03":
		return true
	}
	return false
}
