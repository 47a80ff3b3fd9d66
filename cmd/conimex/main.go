// Command conimex imports content exports into a local content store.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/conimex/internal/adapters/driven/config/file"
	yamldecoder "github.com/custodia-labs/conimex/internal/adapters/driven/decoder/yaml"
	"github.com/custodia-labs/conimex/internal/adapters/driven/reporter/console"
	"github.com/custodia-labs/conimex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/conimex/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/conimex/internal/adapters/driving/cli"
	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
	"github.com/custodia-labs/conimex/internal/core/ports/driving"
	"github.com/custodia-labs/conimex/internal/core/services"
	"github.com/custodia-labs/conimex/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version string

// configDirEnv overrides the config directory (default ~/.conimex).
const configDirEnv = "CONIMEX_CONFIG_DIR"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	configStore := openConfigStore(os.Getenv(configDirEnv))

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Settings:    services.NewSettingsService(configStore),
		Decoder:     yamldecoder.NewDecoder(),
		LoadSchema:  loadSchema,
		NewImporter: newImporter,
		NewReporter: func(out io.Writer) driven.Reporter {
			return console.NewReporter(out)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx)
}

// openConfigStore falls back to an in-memory store when the config file
// cannot be opened, so imports still run with default settings.
func openConfigStore(dir string) driven.ConfigStore {
	store, err := file.NewConfigStore(dir)
	if err != nil {
		logger.Error("config unavailable (%v); using defaults, settings will not be saved", err)
		return memory.NewConfigStore()
	}
	return store
}

func loadSchema(dir string) (driven.SchemaRegistry, error) {
	schema, err := file.LoadSchema(dir)
	if err != nil {
		return nil, err
	}
	return schema, nil
}

func newImporter(schema driven.SchemaRegistry, settings domain.ImportSettings) (driving.Importer, io.Closer, error) {
	if settings.DryRun {
		return services.NewImportService(schema, memory.NewStore(), settings), nopCloser{}, nil
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return services.NewImportService(schema, store, settings), store, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
