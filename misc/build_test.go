package misc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildInfo(t *testing.T) {
	s := BuildInfo("NeoFS Fragmenter")
	require.Contains(t, s, "NeoFS Fragmenter\n")
	require.Contains(t, s, "Version: "+Version)
	require.Contains(t, s, "Build: "+Build)
}
