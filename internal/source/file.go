package source

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

// FileSource reads a captured listApis response from disk
type FileSource struct {
	path string
}

// NewFileSource creates a source reading the given file
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the file the source reads
func (s *FileSource) Path() string {
	return s.path
}

// FetchAllMethods decodes the captured response.
// Captures saved on Windows often carry a UTF-8 or UTF-16 byte order mark,
// so the content is transcoded to plain UTF-8 first.
func (s *FileSource) FetchAllMethods(ctx context.Context) ([]model.RawMethod, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	methods, err := Decode(transform.NewReader(f, decoder))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return methods, nil
}
