package schema

import "fmt"

// SchemaError reports an invariant violation in the store's key tree: an
// expected key or record is absent or malformed. It is never retried.
type SchemaError struct {
	Key    string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation at %q: %s", e.Key, e.Reason)
}

func schemaErrorf(key, format string, args ...interface{}) error {
	return &SchemaError{Key: key, Reason: fmt.Sprintf(format, args...)}
}
