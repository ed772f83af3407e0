package word

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/config"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/exporter/common"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

//go:generate go run ../../../cmd/gentemplate -o template.docx

//go:embed template.docx
var templateFS embed.FS

// lineBreak is turned into a Word line break when the content is injected
const lineBreak = "\r\n"

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Name() string {
	return "docx"
}

func (e *WordExporter) Export(catalog *model.Catalog, summary *model.Summary, cfg *config.Config) error {
	// 1. Extract embedded template to temp file
	templateBytes, err := templateFS.ReadFile("template.docx")
	if err != nil {
		return fmt.Errorf("failed to read embedded template: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "cloudstack-gen-template-*.docx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return fmt.Errorf("failed to read docx from temp file: %w", err)
	}
	defer r.Close()

	doc := r.Editable()

	// 2. Summary placeholders
	replacements := []struct {
		placeholder string
		value       string
	}{
		{"{{Endpoint}}", cfg.BaseURL()},
		{"{{Date}}", summary.GeneratedDate},
		{"{{TotalMethods}}", fmt.Sprintf("%d", summary.TotalMethods)},
		{"{{AsyncMethods}}", fmt.Sprintf("%d", summary.AsyncMethods)},
	}
	for _, rep := range replacements {
		if err := doc.Replace(rep.placeholder, rep.value, -1); err != nil {
			return fmt.Errorf("failed to replace %s: %w", rep.placeholder, err)
		}
	}

	// 3. Method reference as plain text; the library handles XML encoding
	var content strings.Builder
	for i, method := range catalog.Methods {
		buildMethodText(&content, catalog, method)
		if i < len(catalog.Methods)-1 {
			content.WriteString(lineBreak + strings.Repeat("-", 80) + lineBreak + lineBreak)
		}
	}

	if err := doc.Replace("{{Content}}", content.String(), -1); err != nil {
		return fmt.Errorf("failed to inject content: %w", err)
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}
	if err := doc.WriteToFile(cfg.GetOutputPath("docx")); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}

	return nil
}

// buildMethodText writes the reference text of one method
func buildMethodText(sb *strings.Builder, catalog *model.Catalog, method model.MethodDescriptor) {
	line := func(format string, args ...interface{}) {
		sb.WriteString(fmt.Sprintf(format, args...))
		sb.WriteString(lineBreak)
	}

	header := method.Name
	if method.Async {
		header += " (async)"
	}
	line("%s", header)
	if method.Description != "" {
		line("%s", method.Description)
	}
	if method.Since != "" {
		line("Since: %s", method.Since)
	}
	if len(method.Related) > 0 {
		line("Related: %s", strings.Join(method.Related, ", "))
	}
	sb.WriteString(lineBreak)

	if len(method.Params) > 0 {
		line("REQUEST PARAMETERS (%d required, %d optional):", method.RequiredCount, method.OptionalCount)
		line("%-25s %-10s %-10s %s", "Name", "Type", "Required", "Description")
		line("%s", strings.Repeat("-", 80))

		for _, param := range method.Params {
			required := "No"
			if param.Required {
				required = "Yes"
			}
			line("%-25s %-10s %-10s %s", truncate(param.Name, 25), truncate(param.Type, 10), required, param.Description)
		}
		sb.WriteString(lineBreak)
	}

	line("RESPONSE: %s", method.ResponseClass)
	line("%-35s %-10s %s", "Field Name", "Type", "Description")
	line("%s", strings.Repeat("-", 80))

	// skip the class row itself
	for _, field := range common.FlattenSchema(catalog, method.ResponseClass)[1:] {
		indent := strings.Repeat("  ", field.Depth-1)
		marker := ""
		if field.Depth > 1 {
			marker = "└ "
		}
		line("%-35s %-10s %s", truncate(indent+marker+field.Name, 35), truncate(field.Type, 10), field.Description)
	}
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
