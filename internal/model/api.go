package model

// RawMethod is one entry of the listApis payload, as decoded from JSON.
// Loosely-typed attributes stay as the decoded value (nil when absent) so
// that normalization can tell a missing attribute from a mistyped one.
type RawMethod struct {
	Name        any                `json:"name"`
	Description any                `json:"description"`
	IsAsync     any                `json:"isasync"`
	Since       any                `json:"since"`
	Related     any                `json:"related"`
	Params      []RawParam         `json:"params"`
	Response    []RawResponseField `json:"response"`
}

// RawParam is one request parameter of a RawMethod
type RawParam struct {
	Name        any `json:"name"`
	Description any `json:"description"`
	Required    any `json:"required"`
	Type        any `json:"type"`
	Length      any `json:"length"`
	Since       any `json:"since"`
	Related     any `json:"related"`
}

// RawResponseField describes one member of a response object.
// Response is only present for composite types.
type RawResponseField struct {
	Name        any                `json:"name"`
	Type        any                `json:"type"`
	Description any                `json:"description"`
	Response    []RawResponseField `json:"response,omitempty"`
}

// MethodDescriptor is the normalized form of a RawMethod handed to templates
type MethodDescriptor struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	RequiredCount int               `json:"requiredCount"`
	OptionalCount int               `json:"optionalCount"`
	Params        []ParamDescriptor `json:"params"`

	Async         bool     `json:"async"`
	Since         string   `json:"since,omitempty"`
	Related       []string `json:"related,omitempty"`
	ResponseClass string   `json:"responseClass"`
}

// RequiredParams returns the required parameters in declaration order
func (m MethodDescriptor) RequiredParams() []ParamDescriptor {
	out := make([]ParamDescriptor, 0, m.RequiredCount)
	for _, p := range m.Params {
		if p.Required {
			out = append(out, p)
		}
	}
	return out
}

// OptionalParams returns the optional parameters in declaration order
func (m MethodDescriptor) OptionalParams() []ParamDescriptor {
	out := make([]ParamDescriptor, 0, m.OptionalCount)
	for _, p := range m.Params {
		if !p.Required {
			out = append(out, p)
		}
	}
	return out
}

// ParamDescriptor is one normalized request parameter
type ParamDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`

	// Type is the canonical type tag of the parameter
	Type   string `json:"type,omitempty"`
	Length int    `json:"length,omitempty"`
}

// ResponseSchema is a named, ordered list of members describing one response object
type ResponseSchema struct {
	ClassName string             `json:"className"`
	Members   []MemberDescriptor `json:"members"`
}

// MemberDescriptor is one member of a ResponseSchema.
// ReferencedClass is only set for "array" members.
type MemberDescriptor struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	Description     string `json:"description"`
	ReferencedClass string `json:"referencedClass,omitempty"`
}

// HasReference reports whether the member points at another schema of the run
func (m MemberDescriptor) HasReference() bool {
	return m.ReferencedClass != "" && m.ReferencedClass != OpaqueElementClass
}
