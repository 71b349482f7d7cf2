package main

import (
	"os"

	"github.com/nspcc-dev/neofs-frag/cmd/internal/cmderr"
	common "github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/internal"
	"github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/internal/inspect"
	"github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/internal/reassemble"
	"github.com/nspcc-dev/neofs-frag/cmd/neofs-frag/internal/split"
	"github.com/nspcc-dev/neofs-frag/misc"
	"github.com/spf13/cobra"
)

var command = &cobra.Command{
	Use:   "neofs-frag",
	Short: "NeoFS Fragmenter",
	Long: `NeoFS Fragmenter splits files into independently storable fragment files
and restores byte-identical copies of the files from them.`,
	RunE:          entryPoint,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func entryPoint(cmd *cobra.Command, _ []string) error {
	printVersion, _ := cmd.Flags().GetBool("version")
	if printVersion {
		cmd.Print(misc.BuildInfo("NeoFS Fragmenter"))

		return nil
	}

	return cmd.Usage()
}

func init() {
	// use stdout as default output for cmd.Print()
	command.SetOut(os.Stdout)
	command.Flags().Bool("version", false, "Application version")
	command.PersistentFlags().StringP(common.ConfigFlag, "c", "", "Path to the config file (YAML or JSON)")
	command.AddCommand(
		split.Root,
		reassemble.Root,
		inspect.Root,
	)
}

func main() {
	err := command.Execute()
	cmderr.ExitOnErr(err)
}
