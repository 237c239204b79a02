package store

import (
	"errors"
	"fmt"
)

// ErrUnavailable is the single failure kind every transport, protocol, or
// consensus-transient store error is normalized to. Callers match it with
// errors.Is; retry happens above this layer, never inside it.
var ErrUnavailable = errors.New("store unavailable")

// Unavailable wraps an underlying store error as ErrUnavailable.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Pair is one key/value entry from a recursive read. Values are decoded to
// text; structured records carry JSON, scalars plain strings.
type Pair struct {
	Key   string
	Value string
}

// Check is one entry of a node's aggregate health-check list.
type Check struct {
	ServiceID string
	Status    string
}

// KV is the read-only view of the coordination store. Absent scalar leaves
// return "" with no error; many leaves are legitimately unset during partial
// setup.
type KV interface {
	// Get reads one scalar leaf.
	Get(key string) (string, error)
	// List reads all entries under prefix, recursively, in store order.
	List(prefix string) ([]Pair, error)
	// NodeHealth returns the aggregate health checks recorded for a node.
	NodeHealth(node string) ([]Check, error)
}
