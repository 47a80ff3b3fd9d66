// Package file provides file-based implementations of driven port interfaces.
// These adapters read and persist data on the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - LoadSchema: YAML content type and taxonomy declarations (driven.SchemaRegistry)
package file
