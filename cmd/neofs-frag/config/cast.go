package config

import (
	"github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/config/internal"
	"github.com/spf13/cast"
)

// StringSafe reads configuration value
// from c by name and casts it to string.
//
// Returns "" if value can not be casted.
func StringSafe(c *Config, name string) string {
	return cast.ToString(c.Value(name))
}

// BoolSafe reads configuration value
// from c by name and casts it to bool.
//
// Returns false if value can not be casted.
func BoolSafe(c *Config, name string) bool {
	return cast.ToBool(c.Value(name))
}

// SizeInBytesSafe reads configuration value
// from c by name and casts it to size in bytes (uint64).
//
// The suffix can be single-letter (b, k, m, g, t) or with
// an additional b at the end. Spaces between the number and
// the suffix are allowed. All multipliers are power of 2.
//
// Returns 0 if a value can't be casted.
func SizeInBytesSafe(c *Config, name string) uint64 {
	s := StringSafe(c, name)
	return internal.ParseSizeInBytes(s)
}

// ParseSizeInBytes parses s the same way as SizeInBytesSafe.
func ParseSizeInBytes(s string) uint64 {
	return internal.ParseSizeInBytes(s)
}
