package exporter

import (
	"strings"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/exporter/html"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/exporter/openapi"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/exporter/word"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

// Formats lists the accepted output format names, aliases included
var Formats = []string{"php", "excel", "xlsx", "word", "docx", "html", "openapi", "swagger"}

// GetExporters returns the exporters of the requested formats in request order.
// Aliases of the same format are only exported once.
func GetExporters(formats []string) ([]Exporter, error) {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		if fmtStr == "" {
			continue
		}

		var exp Exporter
		switch fmtStr {
		case "php":
			exp = NewLanguageExporter(nil, nil)
		case "excel", "xlsx":
			exp = NewExcelExporter()
		case "html":
			exp = html.NewHTMLExporter()
		case "word", "docx":
			exp = word.NewWordExporter()
		case "openapi", "swagger":
			exp = openapi.NewOpenAPIExporter()
		default:
			return nil, &model.ConfigurationError{
				Setting: "output.formats",
				Value:   fmtStr,
				Reason:  "unsupported format, expected one of " + strings.Join(Formats, ", "),
			}
		}

		if seen[exp.Name()] {
			continue
		}
		seen[exp.Name()] = true
		exporters = append(exporters, exp)
	}

	if len(exporters) == 0 {
		return nil, &model.ConfigurationError{Setting: "output.formats", Reason: "no output format requested"}
	}

	return exporters, nil
}
