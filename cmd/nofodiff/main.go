package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/coolbeans/nofodiff/pkg/compare"
	"github.com/coolbeans/nofodiff/pkg/config"
	"github.com/coolbeans/nofodiff/pkg/nofo"
	"github.com/coolbeans/nofodiff/pkg/report"
)

var version = "0.1.0"

// errChanges is returned by --exit-code when the documents differ.
var errChanges = errors.New("documents differ")

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nofodiff",
		Short: "Compare versions of a NOFO",
		Long: `nofodiff compares two versions of a notice of funding opportunity (NOFO)
and reports which subsections were added, deleted, updated or left unchanged,
with word-level <ins>/<del> diffs, plus a comparison of document metadata.

Documents are YAML or JSON files with sections and ordered subsections.

Settings can be read from a YAML file (--config or NOFODIFF_CONFIG) and
overridden by NOFODIFF_* environment variables and flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Path to a YAML config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(compareCmd())
	root.AddCommand(metadataCmd())
	root.AddCommand(validateCmd())

	return root
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare OLD NEW",
		Short: "Compare the sections and metadata of two NOFO versions",
		Long: `Compare two NOFO documents section by section.

Subsections are paired by name, or by their named neighbours when they have
no name. Renamed subsections are merged into a single UPDATE, and per
subsection comparison types (none, name, diff_strings, body) are honoured.

Filtering:
  --status update,add          keep only these statuses
  --changed                    drop MATCH rows
  --where 'name contains "Eligibility"'
                               keep rows matching an expression over
                               kind, section, key, name, status, old_value,
                               new_value, diff and comparison_type

Example:
  nofodiff compare v1.yaml v2.yaml
  nofodiff compare v1.yaml v2.yaml --changed --format html --output diff.html
  nofodiff compare v1.yaml v2.yaml --format side-by-side --width 140
  nofodiff compare v1.yaml v2.yaml --format json --no-metadata`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			noMetadata, _ := cmd.Flags().GetBool("no-metadata")
			return runComparison(cmd, args[0], args[1], !noMetadata, true)
		},
	}

	addReportFlags(cmd)
	cmd.Flags().Bool("no-metadata", false, "Skip the metadata comparison")

	return cmd
}

func metadataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata OLD NEW",
		Short: "Compare only the metadata fields of two NOFO versions",
		Long: `Compare the configured metadata fields of two NOFO documents.

The fields and their order come from metadata_fields in the config file,
defaulting to title, short name, number, operating division, agency,
subagency, subagency 2, tagline, application deadline, cover and theme.

Example:
  nofodiff metadata v1.yaml v2.yaml
  nofodiff metadata v1.yaml v2.yaml --changed --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComparison(cmd, args[0], args[1], true, false)
		},
	}

	addReportFlags(cmd)

	return cmd
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Output format: text, json, html, side-by-side")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().String("color", "", "Color mode: auto, always, never")
	cmd.Flags().Int("width", 0, "Width of the side-by-side report")
	cmd.Flags().StringSlice("status", nil, "Only report rows with these statuses")
	cmd.Flags().Bool("changed", false, "Only report rows that changed")
	cmd.Flags().String("where", "", "Only report rows matching this expression")
	cmd.Flags().Bool("exit-code", false, "Exit with status 1 when the documents differ")
}

func runComparison(cmd *cobra.Command, oldPath, newPath string, withMetadata, withSections bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	oldDoc, err := loadDocument(oldPath)
	if err != nil {
		return err
	}
	newDoc, err := loadDocument(newPath)
	if err != nil {
		return err
	}

	sections := []compare.SectionDiff{}
	if withSections {
		sections = compare.CompareDocuments(oldDoc, newDoc)
		theLog.Debug("compared sections", "old", oldPath, "new", newPath, "changed_sections", len(sections))
	}
	var metadata []compare.MetadataDiff
	if withMetadata {
		metadata = compare.CompareMetadata(oldDoc, newDoc, cfg.MetadataFields)
		theLog.Debug("compared metadata", "fields", len(metadata))
	}

	// Count changes before filtering so --exit-code ignores display filters.
	changes := compare.Summarize(sections, metadata)

	f, err := cfg.Filter()
	if err != nil {
		return err
	}
	if sections, err = f.Sections(sections); err != nil {
		return err
	}
	if metadata != nil {
		if metadata, err = f.Metadata(metadata); err != nil {
			return err
		}
	}

	format, err := cfg.ReportFormat()
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	opts := report.Options{
		Color: outputPath == "" && cfg.UseColor(stdoutIsTerminal()),
		Width: cfg.Width,
	}

	out, err := report.Render(report.New(oldPath, newPath, sections, metadata), format, opts)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if err := writeOutput(cmd.OutOrStdout(), outputPath, out); err != nil {
		return err
	}

	exitCode, _ := cmd.Flags().GetBool("exit-code")
	if exitCode && changes.Subsections.Changed()+changes.Metadata.Changed() > 0 {
		return errChanges
	}
	return nil
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check NOFO documents for structural problems",
		Long: `Validate that NOFO documents parse and that every section has a name and
unique, contiguous subsection orders starting at 1.

Example:
  nofodiff validate v1.yaml v2.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				doc, err := nofo.Load(path)
				if err == nil {
					err = nofo.Validate(doc)
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s\n", path)
					fmt.Fprintf(out, "  %s\n", indentErr(err))
					continue
				}
				fmt.Fprintf(out, "ok   %s (%d sections, %d subsections)\n", path, len(doc.Sections), doc.SubsectionCount())
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
			}
			return nil
		},
	}
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
	}
	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("where") {
		cfg.Where, _ = flags.GetString("where")
	}
	if flags.Changed("status") {
		cfg.Statuses, _ = flags.GetStringSlice("status")
	}
	if changed, _ := flags.GetBool("changed"); changed && len(cfg.Statuses) == 0 {
		cfg.Statuses = []string{"update", "add", "delete"}
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := cfg.Level()
	theLog = newLogger(os.Stderr, level)
	theLog.Debug("loaded config", "path", path, "format", cfg.Format, "color", cfg.Color)

	return cfg, nil
}

// loadDocument reads a document and logs structural problems. The
// comparison tolerates them, so they are not fatal.
func loadDocument(path string) (*nofo.Document, error) {
	doc, err := nofo.Load(path)
	if err != nil {
		return nil, err
	}
	if err := nofo.Validate(doc); err != nil {
		theLog.Warn("document has structural problems", "path", path, "error", err)
	}
	theLog.Debug("loaded document", "path", path, "sections", len(doc.Sections), "subsections", doc.SubsectionCount())
	return doc, nil
}

func writeOutput(stdout io.Writer, path, content string) error {
	if path == "" {
		_, err := fmt.Fprint(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	theLog.Info("report written", "path", path)
	return nil
}

func stdoutIsTerminal() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func indentErr(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "\n  ")
}
