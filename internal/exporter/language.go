package exporter

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/config"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/logger"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/render"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/sink"
)

// Profile describes how client code is laid out for one target language
type Profile struct {
	Name      string
	Extension string

	ClientTemplate   string
	RequestTemplate  string
	ResponseTemplate string

	ClientClass   string
	RequestSuffix string
}

var profiles = map[string]Profile{
	"php": {
		Name:             "php",
		Extension:        "php",
		ClientTemplate:   "client",
		RequestTemplate:  "request",
		ResponseTemplate: "response",
		ClientClass:      "CloudStackClient",
		RequestSuffix:    "Request",
	},
}

// LookupProfile returns the profile of a target language
func LookupProfile(lang string) (Profile, error) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(lang))]
	if !ok {
		return Profile{}, &model.ConfigurationError{
			Setting: "generation.language",
			Value:   lang,
			Reason:  "unsupported language, expected one of " + strings.Join(Languages(), ", "),
		}
	}
	return p, nil
}

// Languages lists the supported target languages
func Languages() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClassName turns a method or schema name into a class name by upper-casing its first letter
func (p Profile) ClassName(name string) string {
	return cases.Title(language.Und, cases.NoLower).String(name)
}

// FileName returns the artifact name of a class
func (p Profile) FileName(className string) string {
	return className + "." + p.Extension
}

// TemplateConfig is the "config" value handed to every template
func TemplateConfig(cfg *config.Config) map[string]any {
	return map[string]any{
		"namespace": cfg.Generation.Namespace,
		"language":  cfg.Generation.Language,
		"endpoint":  cfg.BaseURL(),
	}
}

// job is one artifact to render
type job struct {
	filename string
	template string
	data     render.Data
}

// plan lists the artifacts of a catalog in emission order:
// one request class per method, one class per schema, then the client.
func (p Profile) plan(catalog *model.Catalog, templateConfig map[string]any) []job {
	jobs := make([]job, 0, len(catalog.Methods)+len(catalog.Schemas)+1)

	for _, method := range catalog.Methods {
		className := p.ClassName(method.Name) + p.RequestSuffix
		jobs = append(jobs, job{
			filename: p.FileName(className),
			template: p.RequestTemplate,
			data: render.Data{
				"method":        method,
				"config":        templateConfig,
				"className":     className,
				"responseClass": p.ClassName(method.ResponseClass),
				"required":      method.RequiredParams(),
				"optional":      method.OptionalParams(),
			},
		})
	}

	for _, schema := range catalog.Schemas {
		className := p.ClassName(schema.ClassName)
		jobs = append(jobs, job{
			filename: p.FileName(className),
			template: p.ResponseTemplate,
			data: render.Data{
				"className": className,
				"members":   p.members(schema),
				"config":    templateConfig,
				"toplevel":  model.IsTopLevel(schema.ClassName),
			},
		})
	}

	methods := make([]map[string]any, 0, len(catalog.Methods))
	for _, method := range catalog.Methods {
		methods = append(methods, map[string]any{
			"name":          method.Name,
			"description":   method.Description,
			"async":         method.Async,
			"requestClass":  p.ClassName(method.Name) + p.RequestSuffix,
			"responseClass": p.ClassName(method.ResponseClass),
		})
	}
	jobs = append(jobs, job{
		filename: p.FileName(p.ClientClass),
		template: p.ClientTemplate,
		data: render.Data{
			"methods": methods,
			"config":  templateConfig,
		},
	})

	return jobs
}

func (p Profile) members(schema model.ResponseSchema) []map[string]any {
	members := make([]map[string]any, 0, len(schema.Members))
	for _, m := range schema.Members {
		member := map[string]any{
			"name":        m.Name,
			"type":        m.Type,
			"description": m.Description,
		}
		if m.HasReference() {
			member["class"] = p.ClassName(m.ReferencedClass)
		}
		members = append(members, member)
	}
	return members
}

// LanguageExporter renders client code for the configured language and writes it to a sink
type LanguageExporter struct {
	sink     sink.Sink
	renderer render.Renderer
}

// NewLanguageExporter creates the client code exporter.
// A nil sink writes below <output.dir>/<language>; a nil renderer uses the embedded templates.
func NewLanguageExporter(s sink.Sink, r render.Renderer) *LanguageExporter {
	return &LanguageExporter{sink: s, renderer: r}
}

// Name returns the format name
func (e *LanguageExporter) Name() string {
	return "php"
}

// Export renders every artifact of the catalog, then writes them in emission order.
// Nothing is written if any artifact fails to render.
func (e *LanguageExporter) Export(catalog *model.Catalog, summary *model.Summary, cfg *config.Config) error {
	profile, err := LookupProfile(cfg.Generation.Language)
	if err != nil {
		return err
	}

	renderer := e.renderer
	if renderer == nil {
		pongo, err := render.NewPongoRenderer(profile.Name, cfg.Generation.TemplateDir)
		if err != nil {
			return err
		}
		renderer = pongo
	}

	out := e.sink
	if out == nil {
		out = sink.NewDirSink(filepath.Join(cfg.Output.Dir, profile.Name))
	}

	artifacts, err := renderAll(renderer, profile.plan(catalog, TemplateConfig(cfg)), cfg.Generation.Workers)
	if err != nil {
		return err
	}

	for _, a := range artifacts {
		if err := out.WriteArtifact(a.Filename, a.Content); err != nil {
			return err
		}
	}

	logger.Debug("Wrote %d %s artifacts", len(artifacts), profile.Name)
	return nil
}

// renderAll renders jobs concurrently, keeping the results in job order
func renderAll(renderer render.Renderer, jobs []job, workers int) ([]sink.Artifact, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]sink.Artifact, len(jobs))
	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			content, err := renderer.Render(j.template, j.data)
			if err != nil {
				return fmt.Errorf("render %s: %w", j.filename, err)
			}
			results[i] = sink.Artifact{Filename: j.filename, Content: content}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
