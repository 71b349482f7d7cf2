package reassemble

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	common "github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/internal"
	"github.com/nspcc-dev/neofs-frag/pkg/fragment"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestProgressTotal(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "f.bin")
	require.NoError(t, os.WriteFile(src, make([]byte, 5000), 0o600))
	res, err := fragment.NewSplitter().Split(src, fragment.MinChunkSize)
	require.NoError(t, err)

	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{}
		common.AddComponentFlags(cmd)
		return cmd
	}

	t.Run("no terminal", func(t *testing.T) {
		cmd := newCmd()
		cmd.SetErr(new(bytes.Buffer))

		core, logs := observer.New(zapcore.DebugLevel)
		require.Zero(t, progressTotal(cmd, zap.New(core), res.Dir))
		require.Zero(t, logs.Len(), "directory must not be scanned")
	})

	t.Run("disabled by flag", func(t *testing.T) {
		cmd := newCmd()
		require.NoError(t, cmd.Flags().Set(common.NoProgressFlag, "true"))

		core, logs := observer.New(zapcore.DebugLevel)
		require.Zero(t, progressTotal(cmd, zap.New(core), res.Dir))
		require.Zero(t, logs.Len(), "directory must not be scanned")
	})
}
