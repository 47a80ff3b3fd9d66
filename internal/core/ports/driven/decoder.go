package driven

import (
	"io"

	"github.com/custodia-labs/conimex/internal/core/domain"
)

// ExportDecoder turns an export file into an ExportDocument.
// Block order must follow the file.
type ExportDecoder interface {
	Decode(r io.Reader) (*domain.ExportDocument, error)
}
