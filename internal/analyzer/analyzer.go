package analyzer

import (
	"fmt"
	"strings"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

// Analyze runs one generation pass over methods: every method is normalized and
// its response resolved, in input order, against a fresh SchemaCache.
// On failure no catalog is returned; the partial cache is dropped with the run.
func Analyze(methods []model.RawMethod) (*model.Catalog, error) {
	cache := NewSchemaCache()
	resolver := NewResolver(cache)
	catalog := model.NewCatalog()

	for i, raw := range methods {
		method, err := BuildMethod(raw)
		if err != nil {
			return nil, fmt.Errorf("method #%d: %w", i, err)
		}
		if _, err := resolver.ResolveMethod(raw); err != nil {
			return nil, fmt.Errorf("resolve %s: %w", method.Name, err)
		}
		catalog.AddMethod(method)
	}

	catalog.Schemas = make([]model.ResponseSchema, 0, cache.Len())
	for _, name := range cache.Names() {
		members, _ := cache.Lookup(name)
		catalog.AddSchema(model.ResponseSchema{ClassName: name, Members: members})
	}

	return catalog, nil
}

// AnalyzeMethod runs a generation pass restricted to the method called name
func AnalyzeMethod(methods []model.RawMethod, name string) (*model.Catalog, error) {
	name = strings.TrimSpace(name)
	for _, raw := range methods {
		if rawName, ok := raw.Name.(string); ok && strings.TrimSpace(rawName) == name {
			return Analyze([]model.RawMethod{raw})
		}
	}
	return nil, &model.UnknownMethodError{Name: name}
}
