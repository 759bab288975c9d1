package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
)

// ErrStoreUnavailable matches any StoreError caused by a lost or refused connection
var ErrStoreUnavailable = errors.New("unable to connect to the server or database")

const unavailableMessage = "Unable to connect to the server or database"

// StoreError is returned for every failed repository operation
type StoreError struct {
	Op      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports connectivity failures as ErrStoreUnavailable
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable && IsConnectivity(e.Err)
}

// IsConnectivity reports whether err means the database could not be reached
func IsConnectivity(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// Class 08: connection exception
		return pqErr.Code.Class() == "08"
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func wrapErr(op, message string, err error) error {
	if IsConnectivity(err) {
		message = unavailableMessage
	}
	return &StoreError{Op: op, Message: message, Err: err}
}
