package analyzer

import "github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"

// canonicalTypes is the only place where the remote type vocabulary is interpreted.
// Tokens are matched exactly; anything missing from the table passes through unchanged.
var canonicalTypes = map[string]string{
	"set":            model.TypeArray,
	"list":           model.TypeArray,
	"map":            model.TypeArray,
	"responseobject": model.TypeArray,
	"uservmresponse": model.TypeArray,

	"imageformat":       model.TypeString,
	"storagepoolstatus": model.TypeString,
	"hypervisortype":    model.TypeString,
	"status":            model.TypeString,
	"type":              model.TypeString,
	"scopetype":         model.TypeString,
	"state":             model.TypeString,
	"url":               model.TypeString,
	"uuid":              model.TypeString,

	"integer": model.TypeInt,
	"long":    model.TypeInt,
	"short":   model.TypeInt,
	"int":     model.TypeInt,
}

// NormalizeType maps a raw type token to its canonical tag
func NormalizeType(raw string) string {
	if canonical, ok := canonicalTypes[raw]; ok {
		return canonical
	}
	return raw
}
