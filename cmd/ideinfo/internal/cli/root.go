// Package cli implements the ideinfo command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/albertocavalcante/ideinfo/internal/log"
	"github.com/albertocavalcante/ideinfo/pkg/config"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// globalFlags holds persistent flags that apply to all commands
var globalFlags struct {
	verbosity  int
	logFormat  string
	configPath string
}

// cfg is the effective configuration, resolved before each command runs.
var cfg = config.NewConfig()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ideinfo",
	Short: "Inspect and convert Rust IDE info messages",
	Long: `Ideinfo reads the RustIdeInfo messages produced by the IntelliJ Bazel
aspect and converts them between binary, json and text encodings.

Use 'ideinfo check' to verify that messages survive a decode/encode round trip.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ideinfo %s (%s)\n", Version, GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().IntVarP(&globalFlags.verbosity, "verbosity", "v", 1,
		"Verbosity level (0=error, 1=warn, 2=info, 3=debug, 4=trace)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.logFormat, "log-format", "text",
		"Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.configPath, "config", "",
		"Config file (default: search for .ideinfo/config.toml or ideinfo.toml)")
}

// loadConfig resolves config layers, applies flags on top and initializes
// logging. It runs after flags are parsed but before command execution.
func loadConfig(cmd *cobra.Command, _ []string) error {
	var loaded *config.Config
	if globalFlags.configPath != "" {
		var err error
		loaded, err = config.LoadFile(globalFlags.configPath)
		if err != nil {
			return err
		}
	} else {
		loaded = config.Load()
	}

	// CLI flags override config
	flags := cmd.Flags()
	if flags.Changed("verbosity") {
		v := globalFlags.verbosity
		loaded.Log.Verbosity = &v
	}
	if flags.Changed("log-format") {
		loaded.Log.Format = globalFlags.logFormat
	}

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = loaded
	log.Init(cfg.LogVerbosity(), cfg.Log.Format, cmd.ErrOrStderr())
	log.Debug("configuration loaded",
		"input_format", cfg.InputFormat,
		"output_format", cfg.OutputFormat,
		"config", globalFlags.configPath)
	return nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
