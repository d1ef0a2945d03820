package cli

import (
	"fmt"
	"os"

	"github.com/albertocavalcante/ideinfo/internal/log"
	"github.com/albertocavalcante/ideinfo/pkg/ideinfo"
	"github.com/spf13/cobra"
)

var encodeFlags struct {
	from   string
	output string
}

var encodeCmd = &cobra.Command{
	Use:   "encode <file>",
	Short: "Encode a json or text RustIdeInfo message as binary",
	Long: `Reads a RustIdeInfo message written as json or text and writes its
binary encoding, either to the file given by --output or to stdout.

The binary encoding is deterministic, so encoding the same message twice
yields identical bytes.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().StringVar(&encodeFlags.from, "from", "text",
		"Input encoding (json, text)")
	encodeCmd.Flags().StringVarP(&encodeFlags.output, "output", "o", "",
		"Output file (default: stdout)")

	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	in, err := ideinfo.ParseFormat(encodeFlags.from)
	if err != nil {
		return err
	}

	info, err := decodeFile(cmd, args[0], in)
	if err != nil {
		return err
	}

	out, err := ideinfo.Marshal(info, ideinfo.MarshalOptions{Format: ideinfo.FormatBinary})
	if err != nil {
		return err
	}

	if encodeFlags.output == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(encodeFlags.output, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", encodeFlags.output, err)
	}
	log.Info("encoded", "output", encodeFlags.output, "bytes", len(out))
	return nil
}
