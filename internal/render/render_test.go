package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

var testConfig = map[string]any{
	"namespace": `Acme\CloudStack`,
	"endpoint":  "http://localhost:8080/client/api",
}

func deployMethod() model.MethodDescriptor {
	return model.MethodDescriptor{
		Name:          "deployVirtualMachine",
		Description:   "Creates and automatically starts a virtual machine \"now\"",
		RequiredCount: 1,
		OptionalCount: 1,
		Params: []model.ParamDescriptor{
			{Name: "zoneid", Description: "availability zone", Required: true, Type: "string"},
			{Name: "displayname", Description: "Display name", Required: false, Type: "string"},
		},
		Async:         true,
		Since:         "4.0",
		Related:       []string{"startVirtualMachine"},
		ResponseClass: "deployVirtualMachineResponse",
	}
}

func TestNewPongoRendererUnknownSet(t *testing.T) {
	_, err := NewPongoRenderer("cobol", "")

	var cfgErr *model.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "cobol", cfgErr.Value)
}

func TestNewPongoRendererMissingOverrideDir(t *testing.T) {
	_, err := NewPongoRenderer("php", filepath.Join(t.TempDir(), "nope"))

	var cfgErr *model.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "generation.template_dir", cfgErr.Setting)
}

func TestTemplateIDs(t *testing.T) {
	r, err := NewPongoRenderer("php", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"client", "request", "response"}, r.TemplateIDs())
}

func TestRenderRequest(t *testing.T) {
	r, err := NewPongoRenderer("php", "")
	require.NoError(t, err)

	method := deployMethod()
	out, err := r.Render("request", Data{
		"method":        method,
		"config":        testConfig,
		"className":     "DeployVirtualMachineRequest",
		"responseClass": "DeployVirtualMachineResponse",
		"required":      method.RequiredParams(),
	})
	require.NoError(t, err)

	assert.Contains(t, out, "<?php declare(strict_types=1);")
	assert.Contains(t, out, `namespace Acme\CloudStack\Requests;`)
	assert.Contains(t, out, "class DeployVirtualMachineRequest implements CloudStackRequest")
	assert.Contains(t, out, "const COMMAND = 'deployVirtualMachine';")
	assert.Contains(t, out, "const ASYNC = true;")
	assert.Contains(t, out, "@since 4.0")
	assert.Contains(t, out, "@see startVirtualMachine")
	assert.Contains(t, out, "public function __construct($zoneid)")
	assert.Contains(t, out, "$this->zoneid = $zoneid;")
	assert.Contains(t, out, "public function setDisplayname($displayname)")
	assert.NotContains(t, out, "public function setZoneid(")
	assert.Contains(t, out, `virtual machine "now"`, "php output is not html-escaped")
}

func TestRenderResponse(t *testing.T) {
	r, err := NewPongoRenderer("php", "")
	require.NoError(t, err)

	out, err := r.Render("response", Data{
		"className": "ListUsersResponse",
		"toplevel":  true,
		"config":    testConfig,
		"members": []map[string]any{
			{"name": "id", "type": "string", "description": "the user ID"},
			{"name": "tags", "type": "array", "description": "resource tags", "class": "Tags"},
			{"name": "roles", "type": "array", "description": "role names"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Top-level response ListUsersResponse")
	assert.Contains(t, out, "class ListUsersResponse")
	assert.Contains(t, out, "@var Tags[]")
	assert.Contains(t, out, "$this->tags[] = new Tags($item);")
	assert.Contains(t, out, "public $roles = [];")
	assert.Contains(t, out, "public $id = null;")
}

func TestRenderClient(t *testing.T) {
	r, err := NewPongoRenderer("php", "")
	require.NoError(t, err)

	out, err := r.Render("client", Data{
		"config": testConfig,
		"methods": []map[string]any{
			{"name": "listZones", "description": "Lists zones", "async": false, "requestClass": "ListZonesRequest", "responseClass": "ListZonesResponse"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "class CloudStackClient")
	assert.Contains(t, out, "public function listZones(Requests\\ListZonesRequest $request): Responses\\ListZonesResponse")
	assert.Contains(t, out, "1 commands")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewPongoRenderer("php", "")
	require.NoError(t, err)

	for _, id := range []string{"missing", "", "../client", "client.tpl"} {
		_, err := r.Render(id, Data{})
		assert.Error(t, err, id)
	}

	_, err = r.Render("missing", Data{})
	assert.EqualError(t, err, `unknown template "missing" for php (available: client, request, response)`)
}

func TestTemplateOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "client.tpl"), []byte("custom {{ methods|length }}"), 0644))

	r, err := NewPongoRenderer("php", dir)
	require.NoError(t, err)

	out, err := r.Render("client", Data{"methods": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "custom 2", out)

	// templates missing from the override directory fall back to the embedded set
	out, err = r.Render("response", Data{"className": "X", "members": []map[string]any{}, "config": testConfig})
	require.NoError(t, err)
	assert.Contains(t, out, "class X")
}

func TestRenderCachesCompiledTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.tpl")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0644))

	r, err := NewPongoRenderer("php", dir)
	require.NoError(t, err)

	out, err := r.Render("client", Data{})
	require.NoError(t, err)
	assert.Equal(t, "first", out)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0644))
	out, err = r.Render("client", Data{})
	require.NoError(t, err)
	assert.Equal(t, "first", out)
}

func TestPHPType(t *testing.T) {
	tests := map[string]string{
		"int":     "int",
		"string":  "string",
		"array":   "array",
		"boolean": "bool",
		"date":    "string",
		"float":   "float",
		"object":  "mixed",
		"":        "mixed",
	}
	for tag, want := range tests {
		assert.Equal(t, want, PHPType(tag), tag)
	}
}
