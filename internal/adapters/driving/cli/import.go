package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
	"github.com/custodia-labs/conimex/internal/core/ports/driving"
	"github.com/custodia-labs/conimex/internal/logger"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an export file",
	Long: `Imports a YAML or JSON export file.

Content blocks are imported in file order. Existing content is matched by
content type and slug and updated in place; users that already exist are
left untouched. The first block that fails stops the import.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importSkipUsers bool
	importWatch     bool
	importDryRun    bool
	importSchemaDir string
	importDataDir   string
	importLocales   []string
)

// watchDebounce is how long file events settle before a re-import.
var watchDebounce = 300 * time.Millisecond

func init() {
	importCmd.Flags().BoolVar(&importSkipUsers, "skip-users", false, "do not import the users block")
	importCmd.Flags().BoolVarP(&importWatch, "watch", "w", false, "re-import whenever the file changes")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "import into memory without touching the content database")
	importCmd.Flags().StringVar(&importSchemaDir, "schema-dir", "", "directory holding contenttypes.yaml and taxonomy.yaml")
	importCmd.Flags().StringVar(&importDataDir, "data-dir", "", "directory holding the content database")
	importCmd.Flags().StringSliceVar(&importLocales, "locale", nil, "locales to import localized data for (repeatable)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if settingsService == nil || exportDecoder == nil || schemaLoader == nil || importerFactory == nil {
		return errors.New("import service not configured")
	}

	settings, err := importSettings(cmd)
	if err != nil {
		return err
	}

	schema, err := schemaLoader(settings.SchemaDir)
	if err != nil {
		return fmt.Errorf("failed to load schema from %s: %w", settings.SchemaDir, err)
	}

	importer, closer, err := importerFactory(schema, *settings)
	if err != nil {
		return fmt.Errorf("failed to open content store: %w", err)
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logger.Warn("closing content store: %v", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	path := args[0]

	if !importWatch {
		return importFile(ctx, cmd, importer, path)
	}

	if err := importFile(ctx, cmd, importer, path); err != nil {
		cmd.PrintErrf("Error: %v\n", err)
	}
	cmd.Printf("Watching %s for changes. Press Ctrl+C to stop.\n", path)
	return watchFile(ctx, path, watchDebounce, func() {
		if err := importFile(ctx, cmd, importer, path); err != nil {
			cmd.PrintErrf("Error: %v\n", err)
		}
	})
}

// importSettings returns the stored settings with command flags applied.
func importSettings(cmd *cobra.Command) (*domain.ImportSettings, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if cmd.Flags().Changed("schema-dir") {
		settings.SchemaDir = importSchemaDir
	}
	if cmd.Flags().Changed("data-dir") {
		settings.DataDir = importDataDir
	}
	if cmd.Flags().Changed("locale") {
		settings.Locales = importLocales
	}
	if importSkipUsers {
		settings.SkipUsers = true
	}
	settings.DryRun = importDryRun

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func importFile(ctx context.Context, cmd *cobra.Command, importer driving.Importer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		cmd.Printf("Reading %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
	}

	doc, err := exportDecoder.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}

	var reporter driven.Reporter = driven.NopReporter{}
	if reporterFactory != nil {
		reporter = reporterFactory(cmd.OutOrStdout())
	}

	result, err := importer.Import(ctx, doc, driving.ImportOptions{
		SkipUsers: importSkipUsers,
		Reporter:  reporter,
	})
	if result != nil {
		printSummary(cmd, result)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if importDryRun {
		cmd.Println("Dry run: nothing was written.")
	}
	return nil
}

func printSummary(cmd *cobra.Command, result *driving.ImportResult) {
	created, updated, skipped := 0, 0, 0
	for _, b := range result.Blocks {
		created += b.Created
		updated += b.Updated
		skipped += b.Skipped
	}

	cmd.Println()
	cmd.Printf("Imported %s in %s (%s created, %s updated, %s skipped) in %s\n",
		english.Plural(result.Records(), "record", "records"),
		english.Plural(len(result.Blocks), "block", "blocks"),
		humanize.Comma(int64(created)),
		humanize.Comma(int64(updated)),
		humanize.Comma(int64(skipped)),
		result.Duration.Round(time.Millisecond),
	)
	users := result.Users
	if users.Created+users.Skipped+users.Invalid > 0 {
		cmd.Printf("Users: %s created, %s already present, %s invalid\n",
			humanize.Comma(int64(users.Created)),
			humanize.Comma(int64(users.Skipped)),
			humanize.Comma(int64(users.Invalid)),
		)
	}
	for _, b := range result.Blocks {
		if b.Aborted {
			cmd.Printf("Block %s stopped after %s\n", b.Key, english.Plural(b.Records, "record", "records"))
		}
	}
}
