// pkg/cli/root.go
package cli

import (
	"errors"
	"os"

	"github.com/bstardust/phonfo/internal/config"
	"github.com/bstardust/phonfo/internal/logger"
	"github.com/bstardust/phonfo/pkg/common"
	"github.com/spf13/cobra"
)

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		// The report command has already told the user about these
		var notFound *common.FileNotFoundError
		var processing *processingError
		if !errors.As(err, &notFound) && !errors.As(err, &processing) {
			logger.Error("Error executing command: %v", err)
		}
		os.Exit(1)
	}
}

// NewRootCommand builds the phonfo command tree. Running it without a
// subcommand behaves like "report".
func NewRootCommand() *cobra.Command {
	v := config.NewViper()
	cfg := config.New()
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "phonfo [image]",
		Short:         "Print file, EXIF and GPS metadata of an image",
		Long:          `Reads one image file and prints its size, dimensions, format, colour profile, EXIF tags and GPS position. When no file is given the name is asked for interactively.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			*cfg = *loaded
			logger.SetLevel(cfg.LogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, cfg, args)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	addReportFlags(rootCmd, v)

	// Add commands
	rootCmd.AddCommand(newReportCommand(cfg))

	return rootCmd
}
