package common

import "github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"

// SplitSchemas separates method responses (topLevel) from the objects nested in them (nested).
// Both slices keep the emission order of the input.
func SplitSchemas(schemas []model.ResponseSchema) (topLevel []model.ResponseSchema, nested []model.ResponseSchema) {
	for _, schema := range schemas {
		if model.IsTopLevel(schema.ClassName) {
			topLevel = append(topLevel, schema)
		} else {
			nested = append(nested, schema)
		}
	}
	return topLevel, nested
}
