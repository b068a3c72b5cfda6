package chat

import (
	"bytes"
	"fmt"
)

// Flag is a boolean that travels over the wire as 0 or 1. JSON booleans are
// accepted on input as well.
type Flag bool

// MarshalJSON encodes the flag as 0 or 1.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON accepts 0, 1, true and false. null leaves the flag unchanged.
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "null":
	case "1", "true":
		*f = true
	case "0", "false":
		*f = false
	default:
		return fmt.Errorf("flag must be 0 or 1, got %s", data)
	}
	return nil
}
