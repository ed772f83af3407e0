package openapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/go-openapi/spec"
	"sigs.k8s.io/yaml"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/config"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

const definitionsPrefix = "#/definitions/"

// OpenAPIExporter writes the catalog as a Swagger 2.0 document, in JSON and YAML
type OpenAPIExporter struct {
	// Stateless
}

func NewOpenAPIExporter() *OpenAPIExporter {
	return &OpenAPIExporter{}
}

func (b *OpenAPIExporter) Name() string {
	return "openapi"
}

func (b *OpenAPIExporter) Export(catalog *model.Catalog, summary *model.Summary, cfg *config.Config) error {
	doc := Build(catalog, cfg)

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode swagger document: %w", err)
	}
	yamlBytes, err := yaml.JSONToYAML(jsonBytes)
	if err != nil {
		return fmt.Errorf("failed to convert swagger document to yaml: %w", err)
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}
	if err := os.WriteFile(cfg.GetOutputPath("swagger.json"), jsonBytes, 0644); err != nil {
		return err
	}
	return os.WriteFile(cfg.GetOutputPath("swagger.yaml"), yamlBytes, 0644)
}

// Build converts the catalog into a Swagger document.
// Every command becomes a GET operation on /<command>; every schema becomes a definition.
func Build(catalog *model.Catalog, cfg *config.Config) *spec.Swagger {
	doc := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: "2.0",
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       "CloudStack API",
					Description: "Commands are sent as GET requests with command=<operationId>",
					Version:     "1.0.0",
				},
			},
			Produces:    []string{"application/json"},
			Paths:       &spec.Paths{Paths: make(map[string]spec.PathItem)},
			Definitions: make(spec.Definitions),
		},
	}

	if u, err := url.Parse(cfg.BaseURL()); err == nil {
		doc.Host = u.Host
		doc.BasePath = u.Path
		doc.Schemes = []string{u.Scheme}
	}

	for _, method := range catalog.Methods {
		doc.Paths.Paths["/"+method.Name] = spec.PathItem{
			PathItemProps: spec.PathItemProps{Get: buildOperation(method)},
		}
	}

	for _, schema := range catalog.Schemas {
		doc.Definitions[schema.ClassName] = buildDefinition(schema)
	}

	return doc
}

func buildOperation(method model.MethodDescriptor) *spec.Operation {
	op := spec.NewOperation(method.Name).
		WithSummary(method.Name).
		WithDescription(method.Description)

	if method.Async {
		op.AddExtension("x-async", true)
	}
	if method.Since != "" {
		op.AddExtension("x-since", method.Since)
	}

	for _, param := range method.Params {
		p := spec.QueryParam(param.Name).WithDescription(param.Description)
		typ, format := schemaType(param.Type)
		if typ == "array" {
			p.CollectionOf(spec.NewItems().Typed("string", ""), "csv")
		} else {
			p.Typed(typ, format)
		}
		if param.Required {
			p.AsRequired()
		}
		if param.Length > 0 && typ == "string" {
			p.WithMaxLength(int64(param.Length))
		}
		op.AddParam(p)
	}

	resp := spec.NewResponse().
		WithDescription(method.ResponseClass).
		WithSchema(spec.RefSchema(definitionsPrefix + method.ResponseClass))
	op.RespondsWith(200, resp)

	return op
}

func buildDefinition(schema model.ResponseSchema) spec.Schema {
	def := new(spec.Schema).Typed("object", "")
	for _, member := range schema.Members {
		def.SetProperty(member.Name, memberSchema(member))
	}
	return *def
}

func memberSchema(member model.MemberDescriptor) spec.Schema {
	var s *spec.Schema
	switch {
	case member.HasReference():
		s = spec.ArrayProperty(spec.RefSchema(definitionsPrefix + member.ReferencedClass))
	case member.Type == model.TypeArray:
		s = spec.ArrayProperty(spec.StringProperty())
	default:
		typ, format := schemaType(member.Type)
		s = new(spec.Schema).Typed(typ, format)
	}

	if member.Description != "" {
		s.WithDescription(member.Description)
	}
	return *s
}

// schemaType maps a canonical type tag to a swagger type and format
func schemaType(tag string) (string, string) {
	switch tag {
	case model.TypeInt:
		return "integer", "int64"
	case model.TypeArray:
		return "array", ""
	case "boolean":
		return "boolean", ""
	case "float", "double":
		return "number", tag
	case "date", "tzdate":
		return "string", "date-time"
	}
	return "string", ""
}
