package exporter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/analyzer"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/config"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

func rawField(name, typ string, nested ...model.RawResponseField) model.RawResponseField {
	return model.RawResponseField{Name: name, Type: typ, Description: "the " + name, Response: nested}
}

func rawMethods() []model.RawMethod {
	tags := rawField("tags", "set", rawField("key", "string"), rawField("value", "string"))

	return []model.RawMethod{
		{
			Name:        "listUsers",
			Description: "Lists user accounts",
			Params: []model.RawParam{
				{Name: "id", Description: "List user by ID.", Type: "uuid", Required: false},
			},
			Response: []model.RawResponseField{
				rawField("user", "list", rawField("id", "uuid"), tags),
				rawField("count", "integer"),
			},
		},
		{
			Name:        "deployVirtualMachine",
			Description: "Creates and automatically starts a virtual machine",
			IsAsync:     true,
			Since:       "4.0",
			Params: []model.RawParam{
				{Name: "zoneid", Description: "availability zone", Type: "uuid", Required: true, Length: float64(255)},
				{Name: "displayname", Type: "string", Required: "false"},
			},
			Response: []model.RawResponseField{
				rawField("id", "uuid"),
				rawField("nic", "list", rawField("id", "uuid"), tags),
				rawField("securitygroupids", "list"),
			},
		},
	}
}

func testCatalog(t *testing.T) (*model.Catalog, *model.Summary) {
	t.Helper()

	catalog, err := analyzer.Analyze(rawMethods())
	require.NoError(t, err)

	summary := catalog.Summarize("2026-10-19")
	return catalog, &summary
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Environment.Scheme = "http"
	cfg.Environment.Host = "localhost"
	cfg.Environment.Port = 8080
	cfg.Environment.Path = "/client/api"
	cfg.Generation.Language = "php"
	cfg.Generation.Namespace = `Acme\CloudStack`
	cfg.Generation.Workers = 4
	cfg.Output.Dir = t.TempDir()
	cfg.Output.FileName = "cloudstack-api"
	cfg.Output.Formats = []string{"php"}
	return cfg
}
