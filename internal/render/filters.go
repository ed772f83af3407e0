package render

import (
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

func init() {
	pongo2.RegisterFilter("phptype", filterPHPType)
	pongo2.RegisterFilter("oneline", filterOneLine)
}

// PHPType maps a canonical type tag to the type used in generated docblocks
func PHPType(tag string) string {
	switch tag {
	case model.TypeInt:
		return "int"
	case model.TypeString, "date", "tzdate", "uuid":
		return "string"
	case model.TypeArray:
		return "array"
	case "boolean", "bool":
		return "bool"
	case "float", "double":
		return "float"
	}
	return "mixed"
}

func filterPHPType(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(PHPType(in.String())), nil
}

// filterOneLine collapses whitespace so a description fits a single comment line
func filterOneLine(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.Join(strings.Fields(in.String()), " ")), nil
}
