package model

import (
	"fmt"
	"strings"
)

const (
	// ResponseSuffix is appended to a method name to form its top-level schema name
	ResponseSuffix = "Response"

	// OpaqueElementClass marks an array member whose element structure is not described
	OpaqueElementClass = "string"
)

// Canonical type tags produced by the type normalizer
const (
	TypeArray  = "array"
	TypeString = "string"
	TypeInt    = "int"
)

// Catalog is the outcome of one generation run: every method descriptor and
// every schema discovered while resolving their responses.
type Catalog struct {
	Methods []MethodDescriptor
	Schemas []ResponseSchema

	// TopLevel maps a method name to the class name of its response schema
	TopLevel map[string]string

	methodIndex map[string]int
	schemaIndex map[string]int
}

// NewCatalog creates an empty Catalog
func NewCatalog() *Catalog {
	return &Catalog{
		Methods:     make([]MethodDescriptor, 0),
		Schemas:     make([]ResponseSchema, 0),
		TopLevel:    make(map[string]string),
		methodIndex: make(map[string]int),
		schemaIndex: make(map[string]int),
	}
}

// AddMethod appends a descriptor and records its response class
func (c *Catalog) AddMethod(method MethodDescriptor) {
	c.methodIndex[method.Name] = len(c.Methods)
	c.Methods = append(c.Methods, method)
	c.TopLevel[method.Name] = method.ResponseClass
}

// AddSchema appends a schema to the emission set. A class name already present is ignored.
func (c *Catalog) AddSchema(schema ResponseSchema) {
	if _, exists := c.schemaIndex[schema.ClassName]; exists {
		return
	}
	c.schemaIndex[schema.ClassName] = len(c.Schemas)
	c.Schemas = append(c.Schemas, schema)
}

// Method looks up a method descriptor by name
func (c *Catalog) Method(name string) (MethodDescriptor, error) {
	idx, ok := c.methodIndex[strings.TrimSpace(name)]
	if !ok {
		return MethodDescriptor{}, &UnknownMethodError{Name: name}
	}
	return c.Methods[idx], nil
}

// Schema looks up a schema of the emission set by class name
func (c *Catalog) Schema(className string) (ResponseSchema, bool) {
	idx, ok := c.schemaIndex[className]
	if !ok {
		return ResponseSchema{}, false
	}
	return c.Schemas[idx], true
}

// Subset returns a catalog restricted to the named methods and the schemas
// reachable from their responses. Unknown names are returned alongside.
func (c *Catalog) Subset(names []string) (*Catalog, []error) {
	sub := NewCatalog()
	var errs []error

	for _, name := range names {
		method, err := c.Method(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sub.AddMethod(method)
		c.collectSchemas(sub, method.ResponseClass)
	}

	return sub, errs
}

func (c *Catalog) collectSchemas(into *Catalog, className string) {
	if _, seen := into.schemaIndex[className]; seen {
		return
	}
	schema, ok := c.Schema(className)
	if !ok {
		return
	}
	into.AddSchema(schema)
	for _, member := range schema.Members {
		if member.HasReference() {
			c.collectSchemas(into, member.ReferencedClass)
		}
	}
}

// IsTopLevel reports whether a class name names a method response rather than a nested object
func IsTopLevel(className string) bool {
	return strings.HasSuffix(className, ResponseSuffix)
}

// Summary holds the counters shown at the end of a run and in documentation artifacts
type Summary struct {
	TotalMethods    int
	AsyncMethods    int
	TotalParams     int
	TopLevelSchemas int
	NestedSchemas   int
	GeneratedDate   string
}

// Summarize counts the contents of the catalog
func (c *Catalog) Summarize(date string) Summary {
	s := Summary{
		TotalMethods:  len(c.Methods),
		GeneratedDate: date,
	}
	for _, m := range c.Methods {
		if m.Async {
			s.AsyncMethods++
		}
		s.TotalParams += len(m.Params)
	}
	for _, schema := range c.Schemas {
		if IsTopLevel(schema.ClassName) {
			s.TopLevelSchemas++
		} else {
			s.NestedSchemas++
		}
	}
	return s
}

// String returns a one-line description of the summary
func (s Summary) String() string {
	return fmt.Sprintf("%d methods (%d async), %d params, %d response schemas, %d nested schemas",
		s.TotalMethods, s.AsyncMethods, s.TotalParams, s.TopLevelSchemas, s.NestedSchemas)
}
