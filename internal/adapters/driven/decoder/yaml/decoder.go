// Package yaml decodes export files into domain.ExportDocument.
//
// Exports are YAML documents whose top-level keys are blocks. JSON exports
// are valid YAML and decode the same way. Block order follows the file.
package yaml

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
	"github.com/custodia-labs/conimex/internal/logger"
)

// Ensure Decoder implements the interface.
var _ driven.ExportDecoder = (*Decoder)(nil)

// Decoder reads YAML (or JSON) export files.
type Decoder struct{}

// NewDecoder creates an export decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode reads one export document from r.
func (d *Decoder) Decode(r io.Reader) (*domain.ExportDocument, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return &domain.ExportDocument{}, nil
		}
		return nil, fmt.Errorf("%w: decoding export: %w", domain.ErrInvalidInput, err)
	}

	top := &root
	if top.Kind == yaml.DocumentNode && len(top.Content) > 0 {
		top = top.Content[0]
	}
	if isNull(top) {
		return &domain.ExportDocument{}, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: export must be a mapping of blocks (line %d)", domain.ErrInvalidInput, top.Line)
	}

	doc := &domain.ExportDocument{}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key := top.Content[i].Value
		value := top.Content[i+1]

		if key == domain.MetaBlockKey {
			meta, err := decodeMapping(value)
			if err != nil {
				return nil, fmt.Errorf("%w: block %s: %w", domain.ErrInvalidInput, key, err)
			}
			doc.Meta = meta
			continue
		}

		records, err := decodeRecords(value)
		if err != nil {
			return nil, fmt.Errorf("%w: block %s: %w", domain.ErrInvalidInput, key, err)
		}
		doc.Blocks = append(doc.Blocks, domain.Block{Key: key, Records: records})
		logger.Debug("decoded block %s with %d records", key, len(records))
	}

	return doc, nil
}

// decodeRecords accepts a list of records or a mapping whose values are records.
func decodeRecords(node *yaml.Node) ([]domain.RawRecord, error) {
	var items []*yaml.Node
	switch {
	case isNull(node):
		return nil, nil
	case node.Kind == yaml.SequenceNode:
		items = node.Content
	case node.Kind == yaml.MappingNode:
		for i := 1; i < len(node.Content); i += 2 {
			items = append(items, node.Content[i])
		}
	default:
		return nil, fmt.Errorf("expected a list of records at line %d", node.Line)
	}

	records := make([]domain.RawRecord, 0, len(items))
	for _, item := range items {
		m, err := decodeMapping(item)
		if err != nil {
			return nil, err
		}
		records = append(records, domain.RawRecord(m))
	}
	return records, nil
}

func decodeMapping(node *yaml.Node) (map[string]any, error) {
	if isNull(node) {
		return map[string]any{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping at line %d", node.Line)
	}
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return nil, err
	}
	out, ok := normalize(raw).(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	return out, nil
}

// normalize converts mappings with non-string keys into map[string]any,
// recursively.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case map[any]any:
		m, err := cast.ToStringMapE(t)
		if err != nil {
			return t
		}
		return normalize(m)
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	default:
		return v
	}
}

func isNull(node *yaml.Node) bool {
	return node == nil || node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}
