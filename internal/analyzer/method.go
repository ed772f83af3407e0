package analyzer

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

// defaultParamDescriptions fills in blank descriptions of well-known paging parameters
var defaultParamDescriptions = map[string]string{
	"pagesize": "the number of entries per page",
	"page":     "the page number of the result set",
}

// BuildMethod normalizes one raw method record
func BuildMethod(raw model.RawMethod) (model.MethodDescriptor, error) {
	name, present, ok := looseString(raw.Name)
	if !ok || !present || name == "" {
		return model.MethodDescriptor{}, &model.MalformedInputError{Path: "name", Reason: "method name is missing"}
	}

	description, _, ok := looseString(raw.Description)
	if !ok {
		return model.MethodDescriptor{}, &model.MalformedInputError{
			Method: name, Path: "description", Reason: "description is not a string",
		}
	}

	method := model.MethodDescriptor{
		Name:          name,
		Description:   description,
		Params:        make([]model.ParamDescriptor, 0, len(raw.Params)),
		Async:         normalizeFlag(raw.IsAsync),
		Since:         strings.TrimSpace(cast.ToString(raw.Since)),
		Related:       splitRelated(raw.Related),
		ResponseClass: name + model.ResponseSuffix,
	}

	for i, rawParam := range raw.Params {
		param, err := buildParam(rawParam)
		if err != nil {
			err.Method = name
			err.Path = fmt.Sprintf("params[%d].%s", i, err.Path)
			return model.MethodDescriptor{}, err
		}

		if param.Required {
			method.RequiredCount++
		} else {
			method.OptionalCount++
		}
		method.Params = append(method.Params, param)
	}

	return method, nil
}

func buildParam(raw model.RawParam) (model.ParamDescriptor, *model.MalformedInputError) {
	name, present, ok := looseString(raw.Name)
	if !ok || !present || name == "" {
		return model.ParamDescriptor{}, &model.MalformedInputError{Path: "name", Reason: "parameter name is missing"}
	}

	description, _, ok := looseString(raw.Description)
	if !ok {
		return model.ParamDescriptor{}, &model.MalformedInputError{Path: "description", Reason: "description is not a string"}
	}
	if description == "" {
		if canned, known := defaultParamDescriptions[name]; known {
			description = canned
		}
	}

	param := model.ParamDescriptor{
		Name:        name,
		Description: description,
		Required:    normalizeFlag(raw.Required),
		Length:      cast.ToInt(raw.Length),
	}
	if rawType, _, ok := looseString(raw.Type); ok && rawType != "" {
		param.Type = NormalizeType(rawType)
	}

	return param, nil
}

// normalizeFlag converts a truthy/falsy remote value to a boolean.
// Strings are parsed as booleans ("true", "1", ...), numbers are true when non-zero,
// nil and anything unparseable is false.
func normalizeFlag(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case float64:
		return value != 0
	case string:
		return cast.ToBool(strings.TrimSpace(value))
	default:
		return cast.ToBool(value)
	}
}

// looseString trims v when it is a string. present is false when v is nil;
// ok is false when v is present but not a string.
func looseString(v any) (s string, present bool, ok bool) {
	if v == nil {
		return "", false, true
	}
	s, ok = v.(string)
	if !ok {
		return "", true, false
	}
	return strings.TrimSpace(s), true, true
}

func splitRelated(v any) []string {
	raw := strings.TrimSpace(cast.ToString(v))
	if raw == "" {
		return nil
	}
	var related []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			related = append(related, part)
		}
	}
	return related
}
