// Package render turns normalized descriptors into source text using pongo2 templates.
package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

//go:embed templates
var embedded embed.FS

// TemplateExt is the extension of template files, embedded or overridden
const TemplateExt = ".tpl"

// Data is the context handed to a template
type Data map[string]any

// Renderer renders a named template with the given data
type Renderer interface {
	Render(templateID string, data Data) (string, error)
}

// PongoRenderer renders the templates of one template set.
// Compiled templates are cached for the lifetime of the renderer.
type PongoRenderer struct {
	setName     string
	overrideDir string
	set         *pongo2.TemplateSet

	mu       sync.Mutex
	compiled map[string]*pongo2.Template
}

// NewPongoRenderer creates a renderer for the embedded set templates/<setName>.
// Files named <id>.tpl in overrideDir take precedence over the embedded ones.
func NewPongoRenderer(setName, overrideDir string) (*PongoRenderer, error) {
	entries, err := fs.ReadDir(embedded, path.Join("templates", setName))
	if err != nil || len(entries) == 0 {
		return nil, &model.ConfigurationError{Setting: "generation.language", Value: setName, Reason: "no templates available"}
	}

	if overrideDir != "" {
		info, err := os.Stat(overrideDir)
		if err != nil {
			return nil, &model.ConfigurationError{Setting: "generation.template_dir", Value: overrideDir, Reason: err.Error()}
		}
		if !info.IsDir() {
			return nil, &model.ConfigurationError{Setting: "generation.template_dir", Value: overrideDir, Reason: "not a directory"}
		}
	}

	return &PongoRenderer{
		setName:     setName,
		overrideDir: overrideDir,
		set:         pongo2.NewSet(setName, pongo2.DefaultLoader),
		compiled:    make(map[string]*pongo2.Template),
	}, nil
}

// TemplateIDs lists the embedded templates of the set
func (r *PongoRenderer) TemplateIDs() []string {
	entries, _ := fs.ReadDir(embedded, path.Join("templates", r.setName))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), TemplateExt) {
			ids = append(ids, strings.TrimSuffix(e.Name(), TemplateExt))
		}
	}
	sort.Strings(ids)
	return ids
}

// Render executes the template with the given id
func (r *PongoRenderer) Render(templateID string, data Data) (string, error) {
	tpl, err := r.template(templateID)
	if err != nil {
		return "", err
	}

	out, err := tpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("failed to render template %s/%s: %w", r.setName, templateID, err)
	}
	return out, nil
}

func (r *PongoRenderer) template(templateID string) (*pongo2.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tpl, ok := r.compiled[templateID]; ok {
		return tpl, nil
	}

	source, err := r.source(templateID)
	if err != nil {
		return nil, err
	}

	tpl, err := r.set.FromBytes(source)
	if err != nil {
		return nil, fmt.Errorf("failed to compile template %s/%s: %w", r.setName, templateID, err)
	}
	r.compiled[templateID] = tpl
	return tpl, nil
}

func (r *PongoRenderer) source(templateID string) ([]byte, error) {
	if templateID == "" || strings.ContainsAny(templateID, `/\.`) {
		return nil, fmt.Errorf("invalid template id %q", templateID)
	}
	fileName := templateID + TemplateExt

	if r.overrideDir != "" {
		content, err := os.ReadFile(filepath.Join(r.overrideDir, fileName))
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read template override: %w", err)
		}
	}

	content, err := embedded.ReadFile(path.Join("templates", r.setName, fileName))
	if err != nil {
		return nil, fmt.Errorf("unknown template %q for %s (available: %s)", templateID, r.setName, strings.Join(r.TemplateIDs(), ", "))
	}
	return content, nil
}
