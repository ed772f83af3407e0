package html

import (
	"fmt"
	"os"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/config"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/exporter/common"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/render"
)

// TemplateSet is the embedded template set used for the reference page
const TemplateSet = "html"

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

func (e *HTMLExporter) Name() string {
	return "html"
}

// Export writes a single-page API reference to <output.dir>/<output.file_name>.html
func (e *HTMLExporter) Export(catalog *model.Catalog, summary *model.Summary, cfg *config.Config) error {
	renderer, err := render.NewPongoRenderer(TemplateSet, "")
	if err != nil {
		return err
	}

	_, nested := common.SplitSchemas(catalog.Schemas)

	page, err := renderer.Render("reference", render.Data{
		"title":   fmt.Sprintf("CloudStack API Reference (%s)", cfg.BaseURL()),
		"summary": summary,
		"methods": catalog.Methods,
		"schemas": common.FlattenTopLevel(catalog),
		"nested":  nested,
	})
	if err != nil {
		return err
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}
	return os.WriteFile(cfg.GetOutputPath("html"), []byte(page), 0644)
}
