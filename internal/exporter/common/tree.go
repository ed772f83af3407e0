package common

import "github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"

// FlattenedMember is one row of a response schema rendered as an indented tree
type FlattenedMember struct {
	Name        string
	Type        string
	Description string
	Class       string // referenced class, empty for scalar members
	Depth       int
}

// FlattenSchema expands a schema and every class it references into rows.
// The first row is the schema itself at depth 0; members follow at depth 1 and deeper.
// A class already being expanded on the current path is listed but not expanded again.
func FlattenSchema(catalog *model.Catalog, className string) []*FlattenedMember {
	rows := []*FlattenedMember{{Name: className, Type: model.TypeArray, Class: className}}

	onPath := map[string]bool{className: true}
	if schema, ok := catalog.Schema(className); ok {
		traverse(catalog, schema, 1, onPath, &rows)
	}
	return rows
}

// FlattenTopLevel flattens the response schema of every method, in method order
func FlattenTopLevel(catalog *model.Catalog) []*FlattenedMember {
	var rows []*FlattenedMember
	for _, method := range catalog.Methods {
		rows = append(rows, FlattenSchema(catalog, method.ResponseClass)...)
	}
	return rows
}

func traverse(catalog *model.Catalog, schema model.ResponseSchema, depth int, onPath map[string]bool, rows *[]*FlattenedMember) {
	for _, member := range schema.Members {
		row := &FlattenedMember{
			Name:        member.Name,
			Type:        member.Type,
			Description: member.Description,
			Depth:       depth,
		}
		if member.HasReference() {
			row.Class = member.ReferencedClass
		}
		*rows = append(*rows, row)

		if row.Class == "" || onPath[row.Class] {
			continue
		}
		nested, ok := catalog.Schema(row.Class)
		if !ok {
			continue
		}

		onPath[row.Class] = true
		traverse(catalog, nested, depth+1, onPath, rows)
		delete(onPath, row.Class)
	}
}
