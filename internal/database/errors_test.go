package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/lib/pq"
)

func TestIsConnectivity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"bad conn", driver.ErrBadConn, true},
		{"conn done", sql.ErrConnDone, true},
		{"wrapped bad conn", fmt.Errorf("query: %w", driver.ErrBadConn), true},
		{"net error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, true},
		{"pq connection exception", &pq.Error{Code: "08006"}, true},
		{"pq syntax error", &pq.Error{Code: "42601"}, false},
		{"no rows", sql.ErrNoRows, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsConnectivity(tt.err); got != tt.want {
				t.Errorf("IsConnectivity(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := wrapErr("update", "failed to update idea", cause)

	if !errors.Is(err, cause) {
		t.Error("Expected StoreError to unwrap to its cause")
	}
	if errors.Is(err, ErrStoreUnavailable) {
		t.Error("Expected plain failure not to match ErrStoreUnavailable")
	}
	if got, want := err.Error(), "update: failed to update idea: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	unavailable := wrapErr("reset", "failed to reset ideas", driver.ErrBadConn)
	if !errors.Is(unavailable, ErrStoreUnavailable) {
		t.Error("Expected connectivity failure to match ErrStoreUnavailable")
	}
	var storeErr *StoreError
	if !errors.As(unavailable, &storeErr) || storeErr.Message != unavailableMessage {
		t.Errorf("Message = %q, want %q", storeErr.Message, unavailableMessage)
	}

	bare := &StoreError{Op: "create", Message: "Failed to insert your date night idea into the database"}
	if got, want := bare.Error(), "create: Failed to insert your date night idea into the database"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
