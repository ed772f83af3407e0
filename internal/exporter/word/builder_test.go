package word

import (
	"testing"

	"github.com/nguyenthenguyen/docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/config"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

func TestWordExport(t *testing.T) {
	catalog := model.NewCatalog()
	catalog.AddMethod(model.MethodDescriptor{
		Name:          "deployVirtualMachine",
		Description:   "Creates a virtual machine & starts it",
		RequiredCount: 1,
		Params:        []model.ParamDescriptor{{Name: "zoneid", Description: "availability zone", Required: true, Type: "string"}},
		Async:         true,
		Since:         "4.0",
		ResponseClass: "deployVirtualMachineResponse",
	})
	catalog.AddSchema(model.ResponseSchema{ClassName: "nic", Members: []model.MemberDescriptor{{Name: "macaddress", Type: "string"}}})
	catalog.AddSchema(model.ResponseSchema{ClassName: "deployVirtualMachineResponse", Members: []model.MemberDescriptor{
		{Name: "id", Type: "string"},
		{Name: "nic", Type: "array", ReferencedClass: "nic"},
	}})
	summary := catalog.Summarize("2026-10-19")

	cfg := &config.Config{}
	cfg.Environment.Scheme = "http"
	cfg.Environment.Host = "localhost"
	cfg.Environment.Path = "/client/api"
	cfg.Output.Dir = t.TempDir()
	cfg.Output.FileName = "reference"

	require.NoError(t, NewWordExporter().Export(catalog, &summary, cfg))

	r, err := docx.ReadDocxFile(cfg.GetOutputPath("docx"))
	require.NoError(t, err)
	defer r.Close()

	content := r.Editable().GetContent()
	assert.NotContains(t, content, "{{")
	assert.Contains(t, content, "Date: 2026-10-19")
	assert.Contains(t, content, "Total Methods: 1")
	assert.Contains(t, content, "deployVirtualMachine (async)")
	assert.Contains(t, content, "Creates a virtual machine &amp; starts it")
	assert.Contains(t, content, "RESPONSE: deployVirtualMachineResponse")
	assert.Contains(t, content, "macaddress")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
