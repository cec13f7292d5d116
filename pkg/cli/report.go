package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bstardust/phonfo/internal/config"
	"github.com/bstardust/phonfo/internal/fshelper"
	"github.com/bstardust/phonfo/internal/logger"
	"github.com/bstardust/phonfo/internal/metadata"
	"github.com/bstardust/phonfo/internal/report"
	"github.com/bstardust/phonfo/pkg/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const prompt = "Enter image file name (with extension): "

var getwd = os.Getwd

// processingError marks a failure that was already printed in the report
type processingError struct {
	err error
}

func (e *processingError) Error() string {
	return e.err.Error()
}

func (e *processingError) Unwrap() error {
	return e.err
}

func newReportCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [flags] [image]",
		Short: "Print the metadata report for one image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, cfg, args)
		},
	}

	return cmd
}

func addReportFlags(cmd *cobra.Command, v *viper.Viper) {
	d := config.New().Report

	// Report options, shared with the report subcommand
	cmd.PersistentFlags().StringP("output", "o", d.Output, "Output format (text, json)")
	cmd.PersistentFlags().Bool("show-exif", d.ShowEXIF, "Print the main EXIF metadata section")
	cmd.PersistentFlags().Bool("show-raw-gps", d.ShowRawGPS, "Print every GPS tag")
	cmd.PersistentFlags().Int64("max-file-size", d.MaxFileSize, "Refuse files larger than this many bytes (0 = no limit)")

	v.BindPFlag("report.output", cmd.PersistentFlags().Lookup("output"))
	v.BindPFlag("report.show_exif", cmd.PersistentFlags().Lookup("show-exif"))
	v.BindPFlag("report.show_raw_gps", cmd.PersistentFlags().Lookup("show-raw-gps"))
	v.BindPFlag("report.max_file_size", cmd.PersistentFlags().Lookup("max-file-size"))
}

func runReport(cmd *cobra.Command, cfg *config.Config, args []string) error {
	out := cmd.OutOrStdout()

	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		var err error
		name, err = askFileName(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
	}
	if name == "" {
		return fmt.Errorf("no image file name given")
	}

	wd, err := getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	fsys := fshelper.ForFile(fshelper.ResolvePath(wd, name))

	exists, err := fshelper.Exists(fsys, fsys.Name())
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", fsys.Path(), err)
	}
	if !exists {
		notFound := common.NewFileNotFoundError(name)
		fmt.Fprintln(out, notFound)
		return notFound
	}

	logger.Debug("Reading %s", fsys.Path())

	md, err := metadata.NewExtractor(cfg.Report.MaxFileSize).ExtractFromFile(fsys, fsys.Name())
	if err != nil {
		fmt.Fprintf(out, "Error processing file: %v\n", err)
		return &processingError{err: err}
	}

	if cfg.Report.Output == config.OutputJSON {
		return report.JSON(out, md)
	}
	return report.Text(out, md, report.Options{
		ShowEXIF:   cfg.Report.ShowEXIF,
		ShowRawGPS: cfg.Report.ShowRawGPS,
	})
}

// askFileName prompts for a file name and reads one line
func askFileName(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read file name: %w", err)
	}
	return strings.TrimSpace(line), nil
}
