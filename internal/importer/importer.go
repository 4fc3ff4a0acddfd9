// Package importer turns untrusted transaction files into validated drafts.
// A registry maps file extensions to format-specific parsers; parsing fails
// fast on the first bad row with the row position in the error.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/milinsoft/bankapp/internal/model"
	"github.com/milinsoft/bankapp/internal/money"
)

// ErrUnsupportedFormat reports a file extension no parser is registered for.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Parser converts one source file into transaction drafts bound to an account.
type Parser interface {
	Parse(r io.Reader, accountID int64) ([]model.Draft, error)
	Ext() string
}

// Registry holds parsers keyed by file extension.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate extension.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Ext())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser extension: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for a file extension (without the dot), or nil.
func (r *Registry) Get(ext string) Parser {
	return r.parsers[strings.ToLower(ext)]
}

// ParseFile selects a parser by the file's extension and returns the drafts
// it produces, in file order.
func (r *Registry) ParseFile(path string, accountID int64) ([]model.Draft, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	p := r.Get(ext)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return p.Parse(f, accountID)
}

// DefaultRegistry returns a registry with all built-in parsers, configured
// with the given date layout and rounding mode.
func DefaultRegistry(dateLayout string, rounding money.RoundingMode) *Registry {
	r := NewRegistry()
	r.Register(NewCSVParser(dateLayout, rounding))
	return r
}
