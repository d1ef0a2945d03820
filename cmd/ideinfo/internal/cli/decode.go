package cli

import (
	"errors"
	"fmt"

	"github.com/albertocavalcante/ideinfo/internal/log"
	"github.com/albertocavalcante/ideinfo/pkg/ideinfo"
	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/spf13/cobra"
)

var decodeFlags struct {
	from   string
	to     string
	target string
}

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Print a RustIdeInfo message in another encoding",
	Long: `Reads a serialized RustIdeInfo message and prints it to stdout.

The input and output encodings default to the configured input_format and
output_format; --from and --to override them. Use "-" to read from stdin.

--target names the Bazel target the message belongs to. The output is
prefixed with a comment naming it, so --target requires text output: json
and binary have no comment syntax and are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&decodeFlags.from, "from", "",
		"Input encoding (binary, json, text)")
	decodeCmd.Flags().StringVar(&decodeFlags.to, "to", "",
		"Output encoding (binary, json, text)")
	decodeCmd.Flags().StringVar(&decodeFlags.target, "target", "",
		"Bazel label of the target the message describes (text output only)")

	rootCmd.AddCommand(decodeCmd)
}

// errTargetNeedsText reports --target combined with a json or binary output.
var errTargetNeedsText = errors.New("--target requires text output")

func runDecode(cmd *cobra.Command, args []string) error {
	in, err := inputFormat(decodeFlags.from)
	if err != nil {
		return err
	}
	opts, err := outputOptions(decodeFlags.to)
	if err != nil {
		return err
	}

	var target label.Label
	if decodeFlags.target != "" {
		if opts.Format != ideinfo.FormatText {
			return fmt.Errorf("%w, got %s", errTargetNeedsText, opts.Format)
		}
		target, err = label.Parse(decodeFlags.target)
		if err != nil {
			return fmt.Errorf("invalid --target: %w", err)
		}
		log.Debug("decoding for target", "target", target.String())
	}

	info, err := decodeFile(cmd, args[0], in)
	if err != nil {
		return err
	}

	out, err := ideinfo.Marshal(info, opts)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if decodeFlags.target != "" {
		fmt.Fprintf(w, "# target: %s\n", target)
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	if opts.Format != ideinfo.FormatBinary && len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Fprintln(w)
	}
	return nil
}

// decodeFile reads and decodes a single RustIdeInfo file.
func decodeFile(cmd *cobra.Command, path string, format ideinfo.Format) (ideinfo.RustIdeInfo, error) {
	logger := log.Component("codec").With("file", path, "format", format)

	data, err := readInput(cmd, path)
	if err != nil {
		return ideinfo.RustIdeInfo{}, err
	}

	info, err := ideinfo.Unmarshal(data, format)
	if err != nil {
		return ideinfo.RustIdeInfo{}, fmt.Errorf("%s: %w", path, err)
	}

	logger.Info("decoded", "bytes", len(data))
	log.Trace("decoded value", "file", path, "info", info)
	return info, nil
}

// inputFormat returns the flag value if set, else the configured input format.
func inputFormat(flag string) (ideinfo.Format, error) {
	if flag != "" {
		return ideinfo.ParseFormat(flag)
	}
	return cfg.Input()
}

// outputOptions returns the configured output options, with the format
// overridden by flag if set.
func outputOptions(flag string) (ideinfo.MarshalOptions, error) {
	opts, err := cfg.MarshalOptions()
	if err != nil {
		return ideinfo.MarshalOptions{}, err
	}
	if flag != "" {
		opts.Format, err = ideinfo.ParseFormat(flag)
		if err != nil {
			return ideinfo.MarshalOptions{}, err
		}
	}
	return opts, nil
}
