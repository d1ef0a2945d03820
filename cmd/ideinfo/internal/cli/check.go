package cli

import (
	"errors"
	"fmt"

	"github.com/albertocavalcante/ideinfo/internal/log"
	"github.com/albertocavalcante/ideinfo/pkg/ideinfo"
	"github.com/spf13/cobra"
)

var checkFlags struct {
	from string
}

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Verify that RustIdeInfo messages survive a round trip",
	Long: `Decodes each file, re-encodes it in every supported encoding and decodes
the result again. A file passes when every decoded value equals the
original, including whether deps_count was set.

Exits non-zero if any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFlags.from, "from", "",
		"Input encoding (binary, json, text)")

	rootCmd.AddCommand(checkCmd)
}

// errCheckFailed reports that at least one file failed the round trip.
var errCheckFailed = errors.New("round trip check failed")

func runCheck(cmd *cobra.Command, args []string) error {
	in, err := inputFormat(checkFlags.from)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		if err := checkFile(cmd, path, in); err != nil {
			failed++
			log.Error("round trip check failed", "file", path, "err", err)
			fmt.Fprintf(w, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(w, "ok   %s\n", path)
	}

	log.Info("check finished", "files", len(args), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", errCheckFailed, failed, len(args))
	}
	return nil
}

func checkFile(cmd *cobra.Command, path string, in ideinfo.Format) error {
	info, err := decodeFile(cmd, path, in)
	if err != nil {
		return err
	}

	for _, format := range ideinfo.Formats {
		data, err := ideinfo.Marshal(info, ideinfo.MarshalOptions{Format: format})
		if err != nil {
			return err
		}
		again, err := ideinfo.Unmarshal(data, format)
		if err != nil {
			return err
		}
		if !again.Equal(info) {
			return fmt.Errorf("value changed after %s round trip", format)
		}
		if again.Hash() != info.Hash() {
			return fmt.Errorf("hash changed after %s round trip", format)
		}
		log.Debug("round trip ok", "file", path, "format", format)
	}
	return nil
}
