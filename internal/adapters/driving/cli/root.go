// Package cli provides the cobra command tree of the conimex binary.
//
// Commands depend on core ports only. main builds the adapters and hands
// them over with SetServices before calling Execute.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
	"github.com/custodia-labs/conimex/internal/core/ports/driving"
	"github.com/custodia-labs/conimex/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// SchemaLoader reads content type and taxonomy declarations from a directory.
type SchemaLoader func(dir string) (driven.SchemaRegistry, error)

// ImporterFactory builds an importer for one schema. The returned closer
// releases the backing store.
type ImporterFactory func(schema driven.SchemaRegistry, settings domain.ImportSettings) (driving.Importer, io.Closer, error)

// ReporterFactory builds a progress sink writing to out.
type ReporterFactory func(out io.Writer) driven.Reporter

// Services bundles everything the commands need.
type Services struct {
	Settings    driving.SettingsService
	Decoder     driven.ExportDecoder
	LoadSchema  SchemaLoader
	NewImporter ImporterFactory
	NewReporter ReporterFactory
}

var (
	settingsService driving.SettingsService
	exportDecoder   driven.ExportDecoder
	schemaLoader    SchemaLoader
	importerFactory ImporterFactory
	reporterFactory ReporterFactory
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "conimex",
	Short: "Import content exports into a content store",
	Long: `conimex imports YAML and JSON content exports into a local content store.

Content is matched to content types declared in contenttypes.yaml and
taxonomy.yaml. Importing the same export twice leaves the store unchanged.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
}

// SetServices wires the adapters used by the commands.
func SetServices(s Services) {
	settingsService = s.Settings
	exportDecoder = s.Decoder
	schemaLoader = s.LoadSchema
	importerFactory = s.NewImporter
	reporterFactory = s.NewReporter
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
