package split

import (
	"fmt"
	"os"

	common "github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/internal"
	"github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/config"
	fragmentconfig "github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/config/fragment"
	"github.com/nspcc-dev/neofs-frag/pkg/fragment"
	"github.com/spf13/cobra"
)

const chunkSizeFlag = "chunk-size"

// Root contains `split` command definition.
var Root = &cobra.Command{
	Use:   "split <file>",
	Short: "Split a file into fragments",
	Long: `Split a file into fixed-size fragment files.

Fragments are written to a new directory named after the file without its
extension, next to the file. Every fragment starts with a 4-byte
sequence number; the fragment numbered 0 keeps the original file name.
The chunk size includes the header and must be smaller than the file.`,
	Args: cobra.ExactArgs(1),
	RunE: splitFunc,
}

func init() {
	Root.Flags().String(chunkSizeFlag, "", "Fragment size with header, e.g. 2052, 4kb, 1M (overrides fragment.chunk_size)")
	common.AddComponentFlags(Root)
}

func splitFunc(cmd *cobra.Command, args []string) error {
	src, err := common.ExpandPath(args[0])
	if err != nil {
		return common.ExitErr(err)
	}

	env, err := common.NewEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	chunkSize, err := readChunkSize(cmd, env.Config)
	if err != nil {
		return err
	}

	opts, err := env.FragmentOptions(cmd)
	if err != nil {
		return err
	}

	var total int64
	if fi, err := os.Stat(src); err == nil {
		total = fi.Size()
	}
	opts = append(opts, env.StartProgress(cmd, total))

	res, err := fragment.NewSplitter(opts...).Split(src, chunkSize)
	if err != nil {
		return common.ExitErr(err)
	}

	cmd.Printf("Split %s into %d fragments (%d bytes) in %s\n", src, res.DataFragments+1, res.PayloadBytes, res.Dir)
	return nil
}

func readChunkSize(cmd *cobra.Command, cfg *config.Config) (uint64, error) {
	if !cmd.Flags().Changed(chunkSizeFlag) {
		return fragmentconfig.ChunkSize(cfg), nil
	}

	s, _ := cmd.Flags().GetString(chunkSizeFlag)
	v := config.ParseSizeInBytes(s)
	if v == 0 {
		return 0, fmt.Errorf("invalid chunk size %q", s)
	}
	return v, nil
}
