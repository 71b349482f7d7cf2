package common

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestShowProgress(t *testing.T) {
	cmd := &cobra.Command{}
	AddComponentFlags(cmd)

	cmd.SetErr(new(bytes.Buffer))
	require.False(t, ShowProgress(cmd))

	require.NoError(t, cmd.Flags().Set(NoProgressFlag, "true"))
	require.False(t, ShowProgress(cmd))
}
