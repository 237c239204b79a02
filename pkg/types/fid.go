package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ProcessContainer is the fixed container tag for process fids:
// (0x72 << 56) | 0x1.
const ProcessContainer uint64 = 0x72<<56 | 0x1

// Fid names a cluster resource as a (container, key) pair. Immutable value.
type Fid struct {
	Container uint64
	Key       uint64
}

// ProcessFid builds the fid of a process with the given numeric key.
func ProcessFid(key uint64) Fid {
	return Fid{Container: ProcessContainer, Key: key}
}

// String renders the canonical text form "0x<container>:0x<key>".
func (f Fid) String() string {
	return fmt.Sprintf("%#x:%#x", f.Container, f.Key)
}

// ParseFid parses the canonical text form back into a Fid.
func ParseFid(s string) (Fid, error) {
	container, key, ok := strings.Cut(s, ":")
	if !ok {
		return Fid{}, fmt.Errorf("invalid fid %q: missing ':'", s)
	}
	c, err := strconv.ParseUint(container, 0, 64)
	if err != nil {
		return Fid{}, fmt.Errorf("invalid fid container %q: %w", container, err)
	}
	k, err := strconv.ParseUint(key, 0, 64)
	if err != nil {
		return Fid{}, fmt.Errorf("invalid fid key %q: %w", key, err)
	}
	return Fid{Container: c, Key: k}, nil
}
