package fragmentconfig

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/config"
)

const (
	subsection = "fragment"

	// ChunkSizeDefault is a default size of a fragment, header included.
	ChunkSizeDefault = 1 << 20

	// MaxBufferSizeDefault is a default bound of I/O buffers.
	MaxBufferSizeDefault = 128 << 20

	// PermissionsDefault is a default permission bits of created files.
	PermissionsDefault = 0o640
)

// ChunkSize returns the value of "chunk_size" config parameter
// from "fragment" section.
//
// Returns ChunkSizeDefault if the value is not a positive size.
func ChunkSize(c *config.Config) uint64 {
	v := config.SizeInBytesSafe(c.Sub(subsection), "chunk_size")
	if v > 0 {
		return v
	}

	return ChunkSizeDefault
}

// MaxBufferSize returns the value of "max_buffer_size" config parameter
// from "fragment" section.
//
// Returns MaxBufferSizeDefault if the value is not a positive size.
func MaxBufferSize(c *config.Config) uint64 {
	v := config.SizeInBytesSafe(c.Sub(subsection), "max_buffer_size")
	if v > 0 {
		return v
	}

	return MaxBufferSizeDefault
}

// NoSync returns the value of "no_sync" config parameter
// from "fragment" section.
//
// Returns true if the value is not set.
func NoSync(c *config.Config) bool {
	sub := c.Sub(subsection)
	if !sub.IsSet("no_sync") {
		return true
	}

	return config.BoolSafe(sub, "no_sync")
}

// Permissions returns the value of "permissions" config parameter
// from "fragment" section as an octal number.
//
// Returns PermissionsDefault if the value is not set.
// Returns an error if the value is not an octal permission.
func Permissions(c *config.Config) (fs.FileMode, error) {
	s := config.StringSafe(c.Sub(subsection), "permissions")
	if s == "" {
		return PermissionsDefault, nil
	}

	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil || v > 0o777 {
		return 0, fmt.Errorf("invalid fragment permissions %q", s)
	}

	return fs.FileMode(v), nil
}
