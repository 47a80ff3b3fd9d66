package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show declared content types",
	Long: `Lists the content types declared in contenttypes.yaml with their fields,
relations and taxonomies. Localizable fields are marked with *.`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

var schemaDir string

func init() {
	schemaCmd.Flags().StringVar(&schemaDir, "schema-dir", "", "directory holding contenttypes.yaml and taxonomy.yaml")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	if settingsService == nil || schemaLoader == nil {
		return errors.New("schema loader not configured")
	}

	dir := schemaDir
	if !cmd.Flags().Changed("schema-dir") {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		dir = settings.SchemaDir
	}

	schema, err := schemaLoader(dir)
	if err != nil {
		return fmt.Errorf("failed to load schema from %s: %w", dir, err)
	}

	contentTypes := schema.ContentTypes()
	if len(contentTypes) == 0 {
		cmd.Printf("No content types declared in %s.\n", dir)
		return nil
	}
	sort.Slice(contentTypes, func(i, j int) bool {
		return contentTypes[i].Key < contentTypes[j].Key
	})

	for _, ct := range contentTypes {
		cmd.Printf("%s (%s)\n", ct.Key, ct.SingularSlug)
		cmd.Printf("  Fields:     %s\n", orNone(fieldNames(ct.Fields)))
		cmd.Printf("  Relations:  %s\n", orNone(relationNames(ct.Relations)))
		cmd.Printf("  Taxonomies: %s\n", orNone(taxonomyNames(schema, ct.Taxonomies)))
		if len(ct.Locales) > 0 {
			cmd.Printf("  Locales:    %s\n", strings.Join(ct.Locales, ", "))
		}
		cmd.Println()
	}
	return nil
}

func fieldNames(fields []domain.FieldDefinition) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		name := f.Key
		if f.Localize {
			name += "*"
		}
		names = append(names, name)
	}
	return names
}

func relationNames(relations []domain.RelationDefinition) []string {
	names := make([]string, 0, len(relations))
	for _, r := range relations {
		name := r.Key
		if r.Multiple {
			name += "[]"
		}
		names = append(names, name)
	}
	return names
}

// taxonomyNames marks taxonomies that are referenced but not declared.
func taxonomyNames(schema driven.SchemaRegistry, keys []string) []string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := schema.Taxonomy(k); !ok {
			k += " (undeclared)"
		}
		names = append(names, k)
	}
	return names
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
