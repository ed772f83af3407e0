package analyzer

import (
	"strings"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

// Resolver turns raw response trees into named schemas, memoizing every
// class name it resolves in its SchemaCache.
type Resolver struct {
	cache *SchemaCache

	// computed counts schema computations, cache hits excluded
	computed int
}

// NewResolver creates a resolver backed by cache
func NewResolver(cache *SchemaCache) *Resolver {
	return &Resolver{cache: cache}
}

// Cache returns the cache the resolver populates
func (r *Resolver) Cache() *SchemaCache {
	return r.cache
}

// ResolveMethod resolves the response of raw into the schema named <method>Response
func (r *Resolver) ResolveMethod(raw model.RawMethod) (model.ResponseSchema, error) {
	name, ok := raw.Name.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return model.ResponseSchema{}, &model.MalformedInputError{Path: "name", Reason: "method name is missing"}
	}
	name = strings.TrimSpace(name)
	className := name + model.ResponseSuffix

	if members, ok := r.cache.Lookup(className); ok {
		return model.ResponseSchema{ClassName: className, Members: members}, nil
	}

	members, err := r.Resolve(name, className, raw.Response)
	if err != nil {
		return model.ResponseSchema{}, err
	}

	return model.ResponseSchema{ClassName: className, Members: r.store(className, members)}, nil
}

// Resolve builds the ordered member list of className from fields. Nested
// composite fields are resolved into the cache under their own name before
// the next sibling is looked at.
func (r *Resolver) Resolve(method, className string, fields []model.RawResponseField) ([]model.MemberDescriptor, error) {
	r.computed++

	members := make([]model.MemberDescriptor, 0, len(fields))
	seen := make(map[string]bool, len(fields))

	for _, field := range fields {
		name, present, err := fieldName(method, className, field)
		if err != nil {
			return nil, err
		}
		if !present || seen[name] {
			continue
		}

		rawType, ok := field.Type.(string)
		if !ok {
			return nil, malformedField(method, className, name, "type", field.Type)
		}
		description := ""
		if field.Description != nil {
			if description, ok = field.Description.(string); !ok {
				return nil, malformedField(method, className, name, "description", field.Description)
			}
		}

		member := model.MemberDescriptor{
			Name:        name,
			Type:        NormalizeType(rawType),
			Description: strings.TrimSpace(description),
		}

		if member.Type == model.TypeArray {
			if len(field.Response) == 0 {
				member.ReferencedClass = model.OpaqueElementClass
			} else {
				member.ReferencedClass = name
				if _, cached := r.cache.Lookup(name); !cached {
					nested, err := r.Resolve(method, name, field.Response)
					if err != nil {
						return nil, err
					}
					r.store(name, nested)
				}
			}
		}

		seen[name] = true
		members = append(members, member)
	}

	return members, nil
}

// store caches members under className and returns what the cache holds for it.
// When a field nested inside className carries the same name, that inner schema
// was stored first and is kept.
func (r *Resolver) store(className string, members []model.MemberDescriptor) []model.MemberDescriptor {
	r.cache.InsertIfAbsent(className, members)
	stored, _ := r.cache.Lookup(className)
	return stored
}

// fieldName returns the trimmed name of field. A missing or blank name is not an
// error: the field is simply not part of the schema.
func fieldName(method, className string, field model.RawResponseField) (string, bool, error) {
	if field.Name == nil {
		return "", false, nil
	}
	name, ok := field.Name.(string)
	if !ok {
		return "", false, &model.MalformedInputError{
			Method: method,
			Path:   "response." + className + ".name",
			Reason: "field name is not a string",
		}
	}
	name = strings.TrimSpace(name)
	return name, name != "", nil
}

func malformedField(method, className, field, attr string, value any) error {
	reason := attr + " is missing"
	if value != nil {
		reason = attr + " is not a string"
	}
	return &model.MalformedInputError{
		Method: method,
		Path:   "response." + className + "." + field + "." + attr,
		Reason: reason,
	}
}
