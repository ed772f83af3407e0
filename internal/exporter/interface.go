package exporter

import (
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/config"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

// Exporter is the unified interface for all output formats
type Exporter interface {
	Name() string
	Export(catalog *model.Catalog, summary *model.Summary, cfg *config.Config) error
}
