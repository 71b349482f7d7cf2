package reassemble

import (
	common "github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/internal"
	"github.com/nspcc-dev/neofs-frag/pkg/fragment"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Root contains `reassemble` command definition.
var Root = &cobra.Command{
	Use:   "reassemble <dir>",
	Short: "Restore a file from fragments",
	Long: `Restore a file from a fragment directory.

All files with .frag extension in the directory are ordered by their
sequence numbers; names of fragment files do not matter. The restored file
is created next to the directory under its original name, an existing file
with the same name is overwritten. The directory itself is left intact.`,
	Args: cobra.ExactArgs(1),
	RunE: reassembleFunc,
}

func init() {
	common.AddComponentFlags(Root)
}

func reassembleFunc(cmd *cobra.Command, args []string) error {
	dir, err := common.ExpandPath(args[0])
	if err != nil {
		return common.ExitErr(err)
	}

	env, err := common.NewEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	opts, err := env.FragmentOptions(cmd)
	if err != nil {
		return err
	}

	opts = append(opts, env.StartProgress(cmd, progressTotal(cmd, env.Log, dir)))

	res, err := fragment.NewReassembler(opts...).Reassemble(dir)
	if err != nil {
		return common.ExitErr(err)
	}

	cmd.Printf("Restored %s from %d fragments (%d bytes)\n", res.Output, res.DataFragments+1, res.PayloadBytes)
	return nil
}

// progressTotal returns the number of payload bytes in dir. The directory is
// read only if the progress bar is going to be shown.
func progressTotal(cmd *cobra.Command, log *zap.Logger, dir string) int64 {
	if !common.ShowProgress(cmd) {
		return 0
	}

	entries, err := fragment.Scan(dir, fragment.WithLogger(log))
	if err != nil {
		// Reassemble reports it.
		log.Debug("can't size progress bar", zap.String("dir", dir), zap.Error(err))
		return 0
	}

	var total int64
	for _, e := range entries {
		if e.Seq != fragment.MetadataSequence {
			total += e.Size - fragment.HeaderSize
		}
	}
	return total
}
