package openapi

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/config"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

func testCatalog() *model.Catalog {
	c := model.NewCatalog()
	c.AddMethod(model.MethodDescriptor{
		Name:          "listUsers",
		Description:   "Lists user accounts",
		OptionalCount: 2,
		Params: []model.ParamDescriptor{
			{Name: "id", Description: "List user by ID.", Type: "string", Length: 255},
			{Name: "page", Description: "the page number of the result set", Type: "int"},
		},
		ResponseClass: "listUsersResponse",
	})
	c.AddMethod(model.MethodDescriptor{
		Name:          "deleteUser",
		Async:         true,
		RequiredCount: 1,
		Params:        []model.ParamDescriptor{{Name: "id", Required: true, Type: "string"}},
		ResponseClass: "deleteUserResponse",
	})
	c.AddSchema(model.ResponseSchema{ClassName: "tags", Members: []model.MemberDescriptor{{Name: "key", Type: "string"}}})
	c.AddSchema(model.ResponseSchema{ClassName: "listUsersResponse", Members: []model.MemberDescriptor{
		{Name: "id", Type: "string", Description: "the user ID"},
		{Name: "tags", Type: "array", ReferencedClass: "tags"},
		{Name: "roles", Type: "array", ReferencedClass: model.OpaqueElementClass},
		{Name: "count", Type: "int"},
	}})
	c.AddSchema(model.ResponseSchema{ClassName: "deleteUserResponse", Members: []model.MemberDescriptor{{Name: "success", Type: "boolean"}}})
	return c
}

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Environment.Scheme = "https"
	cfg.Environment.Host = "cloud.example.com"
	cfg.Environment.Path = "/client/api"
	cfg.Output.Dir = t.TempDir()
	cfg.Output.FileName = "cloudstack-api"
	return cfg
}

func TestBuild(t *testing.T) {
	doc := Build(testCatalog(), testConfig(t))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "cloud.example.com", doc.Host)
	assert.Equal(t, "/client/api", doc.BasePath)
	assert.Equal(t, []string{"https"}, doc.Schemes)

	require.Contains(t, doc.Paths.Paths, "/listUsers")
	op := doc.Paths.Paths["/listUsers"].Get
	require.NotNil(t, op)
	assert.Equal(t, "listUsers", op.ID)
	require.Len(t, op.Parameters, 2)
	assert.Equal(t, "query", op.Parameters[0].In)
	assert.Equal(t, "string", op.Parameters[0].Type)
	require.NotNil(t, op.Parameters[0].MaxLength)
	assert.Equal(t, int64(255), *op.Parameters[0].MaxLength)
	assert.Equal(t, "integer", op.Parameters[1].Type)
	assert.Equal(t, "#/definitions/listUsersResponse", op.Responses.StatusCodeResponses[200].Schema.Ref.String())

	deleteOp := doc.Paths.Paths["/deleteUser"].Get
	require.NotNil(t, deleteOp)
	assert.True(t, deleteOp.Parameters[0].Required)
	assert.Equal(t, true, deleteOp.Extensions["x-async"])

	require.Len(t, doc.Definitions, 3)
	def := doc.Definitions["listUsersResponse"]
	assert.Equal(t, spec.StringOrArray{"object"}, def.Type)
	assert.Equal(t, "#/definitions/tags", def.Properties["tags"].Items.Schema.Ref.String())
	assert.Equal(t, spec.StringOrArray{"string"}, def.Properties["roles"].Items.Schema.Type, "opaque arrays hold strings")
	assert.Equal(t, spec.StringOrArray{"integer"}, def.Properties["count"].Type)
	assert.Equal(t, "the user ID", def.Properties["id"].Description)
	assert.Equal(t, spec.StringOrArray{"boolean"}, doc.Definitions["deleteUserResponse"].Properties["success"].Type)
}

func TestOpenAPIExport(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, NewOpenAPIExporter().Export(testCatalog(), &model.Summary{}, cfg))

	jsonBytes, err := os.ReadFile(cfg.GetOutputPath("swagger.json"))
	require.NoError(t, err)
	var fromJSON spec.Swagger
	require.NoError(t, json.Unmarshal(jsonBytes, &fromJSON))
	assert.Len(t, fromJSON.Paths.Paths, 2)

	yamlBytes, err := os.ReadFile(cfg.GetOutputPath("swagger.yaml"))
	require.NoError(t, err)
	converted, err := yaml.YAMLToJSON(yamlBytes)
	require.NoError(t, err)
	assert.JSONEq(t, string(jsonBytes), string(converted))
}
