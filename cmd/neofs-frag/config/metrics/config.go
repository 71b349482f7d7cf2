package metricsconfig

import (
	"github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/config"
)

const subsection = "metrics"

// Textfile returns the value of "textfile" config parameter
// from "metrics" section.
//
// Returns "" (metrics are not written) if the value is not set.
func Textfile(c *config.Config) string {
	return config.StringSafe(c.Sub(subsection), "textfile")
}
