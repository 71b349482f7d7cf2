package inspect

import (
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	common "github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/internal"
	"github.com/nspcc-dev/neofs-frag/pkg/fragment"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// Root contains `inspect` command definition.
var Root = &cobra.Command{
	Use:   "inspect <dir>",
	Short: "List fragments of a directory",
	Long: `List fragments of a fragment directory ordered by sequence number.

Only fragment headers and the metadata fragment are read; nothing is
written.`,
	Args: cobra.ExactArgs(1),
	RunE: inspectFunc,
}

func inspectFunc(cmd *cobra.Command, args []string) error {
	dir, err := common.ExpandPath(args[0])
	if err != nil {
		return common.ExitErr(err)
	}

	env, err := common.NewEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	entries, err := fragment.Scan(dir, fragment.WithLogger(env.Log))
	if err != nil {
		return common.ExitErr(err)
	}

	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"Seq", "File", "Size", "Payload"})
	out.SetAlignment(tablewriter.ALIGN_RIGHT)
	out.SetAutoWrapText(false)

	var payload int64
	for _, e := range entries {
		desc := strconv.FormatInt(e.Size-fragment.HeaderSize, 10)
		if e.Seq == fragment.MetadataSequence {
			desc = originalName(e.Path)
		} else {
			payload += e.Size - fragment.HeaderSize
		}

		out.Append([]string{
			strconv.FormatUint(uint64(e.Seq), 10),
			filepath.Base(e.Path),
			strconv.FormatInt(e.Size, 10),
			desc,
		})
	}
	out.SetFooter([]string{"", strconv.Itoa(len(entries)) + " files", "", strconv.FormatInt(payload, 10)})
	out.Render()

	return nil
}

// originalName returns the printable name kept in a metadata fragment.
func originalName(p string) string {
	b, err := os.ReadFile(p)
	switch {
	case err != nil:
		return "<" + err.Error() + ">"
	case len(b) < fragment.HeaderSize:
		return "<truncated>"
	case !utf8.Valid(b[fragment.HeaderSize:]):
		return "<invalid UTF-8>"
	default:
		return strconv.Quote(string(b[fragment.HeaderSize:]))
	}
}
