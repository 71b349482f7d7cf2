package config

import (
	"strings"
)

// Sub returns subsection of the Config by name.
//
// Returns nil if subsection if missing.
func (x *Config) Sub(name string) *Config {
	// copy the path so sibling subsections never share a backing array
	path := make([]string, len(x.path), len(x.path)+1)
	copy(path, x.path)

	return &Config{
		v:    x.v,
		path: append(path, name),
	}
}

// Value returns configuration value by name.
//
// Result can be casted to a particular type
// via corresponding function (e.g. StringSafe).
// Note: casting via Go `.()` operator is not
// recommended.
//
// Returns nil if config is nil.
func (x *Config) Value(name string) any {
	return x.v.Get(x.key(name))
}

// IsSet checks whether the value is provided by the
// configuration file or environment.
func (x *Config) IsSet(name string) bool {
	return x.v.IsSet(x.key(name))
}

func (x *Config) key(name string) string {
	return strings.Join(append(x.path, name), separator)
}
