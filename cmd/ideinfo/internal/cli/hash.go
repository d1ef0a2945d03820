package cli

import (
	"fmt"

	"github.com/albertocavalcante/ideinfo/internal/log"
	"github.com/albertocavalcante/ideinfo/pkg/ideinfo"
	"github.com/spf13/cobra"
)

var hashFlags struct {
	from string
}

var hashCmd = &cobra.Command{
	Use:   "hash <file>...",
	Short: "Print the structural hash of RustIdeInfo messages",
	Long: `Prints the xxHash64 of each decoded RustIdeInfo value, followed by the
number of distinct values among the files.

The hash covers the decoded value, not the bytes: the same message in
different encodings hashes the same.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHash,
}

func init() {
	hashCmd.Flags().StringVar(&hashFlags.from, "from", "",
		"Input encoding (binary, json, text)")

	rootCmd.AddCommand(hashCmd)
}

func runHash(cmd *cobra.Command, args []string) error {
	in, err := inputFormat(hashFlags.from)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	distinct := ideinfo.NewSet()
	for _, path := range args {
		info, err := decodeFile(cmd, path, in)
		if err != nil {
			return err
		}
		if !distinct.Add(info) {
			log.V(log.VerbosityDebug).Info("duplicate info", "file", path)
		}
		fmt.Fprintf(w, "%016x  %s\n", info.Hash(), path)
	}

	fmt.Fprintf(w, "%d files, %d distinct\n", len(args), distinct.Len())
	return nil
}
