package fragment

import (
	"io/fs"

	"go.uber.org/zap"
)

// Option configures Splitter, Reassembler and Scan.
type Option func(*cfg)

type cfg struct {
	log           *zap.Logger
	metrics       Metrics
	progress      func(int64)
	perm          fs.FileMode
	noSync        bool
	maxBufferSize uint64
}

const defaultPerm = 0o640

func defaultCfg() *cfg {
	return &cfg{
		log:           zap.NewNop(),
		metrics:       noopMetrics{},
		progress:      func(int64) {},
		perm:          defaultPerm,
		noSync:        true,
		maxBufferSize: DefaultMaxBufferSize,
	}
}

func newCfg(opts []Option) *cfg {
	c := defaultCfg()
	for i := range opts {
		opts[i](c)
	}
	return c
}

// dirPerm adds search bits to every class that can read.
func (c *cfg) dirPerm() fs.FileMode {
	return c.perm | (c.perm&0o444)>>2
}

// WithLogger returns option to set the logger. Nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics returns option to set the metrics sink. Nil is ignored.
func WithMetrics(m Metrics) Option {
	return func(c *cfg) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithProgress returns option to set the callback receiving the number of
// payload bytes processed since the previous call.
func WithProgress(f func(int64)) Option {
	return func(c *cfg) {
		if f != nil {
			c.progress = f
		}
	}
}

// WithPermissions returns option to set permission bits of created files.
// Directories get search bits for every class with read access.
func WithPermissions(p fs.FileMode) Option {
	return func(c *cfg) {
		c.perm = p
	}
}

// WithNoSync returns option to disable O_SYNC on created files.
func WithNoSync(noSync bool) Option {
	return func(c *cfg) {
		c.noSync = noSync
	}
}

// WithMaxBufferSize returns option to bound the I/O buffer. Zero is ignored.
func WithMaxBufferSize(sz uint64) Option {
	return func(c *cfg) {
		if sz > 0 {
			c.maxBufferSize = sz
		}
	}
}
