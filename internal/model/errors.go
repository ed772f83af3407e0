package model

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an unsupported target language, output format or
// an invalid configuration value. It is raised before any resolution starts.
type ConfigurationError struct {
	Setting string
	Value   string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s %q: %s", e.Setting, e.Value, e.Reason)
}

// MalformedInputError reports a raw record that violates a required shape
type MalformedInputError struct {
	Method string
	// Path locates the offending attribute, e.g. "params[2].name" or "response.nic.type"
	Path   string
	Reason string
}

func (e *MalformedInputError) Error() string {
	var b strings.Builder
	b.WriteString("malformed input")
	if e.Method != "" {
		fmt.Fprintf(&b, " in method %q", e.Method)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// UnknownMethodError reports a lookup by name that found nothing
type UnknownMethodError struct {
	Name string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown method %q", e.Name)
}
