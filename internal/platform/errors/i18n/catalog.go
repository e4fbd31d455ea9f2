// Package i18n renders user-facing placeholder messages for error codes.
package i18n

import (
	"fmt"
	"strings"
	"text/template"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// Messages is a compiled set of message templates keyed by code.
type Messages struct {
	raw       map[Code]string
	templates map[Code]*template.Template
}

var english = mustCompile(enUSMessages)

// Compile parses every template up front. Templates reference metadata
// keys as {{.Key}}; a key missing at render time is an error.
func Compile(messages map[Code]string) (*Messages, error) {
	m := &Messages{
		raw:       make(map[Code]string, len(messages)),
		templates: make(map[Code]*template.Template, len(messages)),
	}
	for code, text := range messages {
		tmpl, err := template.New(code).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("compile message %s: %w", code, err)
		}
		m.raw[code] = text
		m.templates[code] = tmpl
	}
	return m, nil
}

func mustCompile(messages map[Code]string) *Messages {
	m, err := Compile(messages)
	if err != nil {
		panic(err)
	}
	return m
}

// Format renders code with metadata. Unknown codes render as the code
// itself and a failed render falls back to the raw template.
func (m *Messages) Format(code Code, metadata map[string]string) string {
	tmpl, ok := m.templates[code]
	if !ok {
		return code
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, metadata); err != nil {
		return m.raw[code]
	}
	return b.String()
}

// Format renders code from the English message set.
func Format(code Code, metadata map[string]string) string {
	return english.Format(code, metadata)
}
