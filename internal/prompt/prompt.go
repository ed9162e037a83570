// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt renders parameterized instruction text for a text-generation
// model. A Template declares its placeholder names up front; the template
// text refers to them as {name}. Construction fails if the declared set and
// the referenced set differ, and rendering fails if a declared value is missing.
package prompt

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// placeholderPattern matches {name} markers. Names are identifiers.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Template is an immutable prompt with named placeholders.
type Template struct {
	id           string
	placeholders []string
	text         string
}

// New builds a Template and checks that every placeholder referenced in text
// is declared and every declared placeholder is referenced.
func New(id string, placeholders []string, text string) (*Template, error) {
	declared := make(map[string]bool, len(placeholders))
	for _, p := range placeholders {
		if declared[p] {
			return nil, &TemplateError{Template: id, Reason: fmt.Sprintf("placeholder %q declared twice", p)}
		}
		declared[p] = true
	}

	referenced := Placeholders(text)
	seen := make(map[string]bool, len(referenced))
	for _, name := range referenced {
		seen[name] = true
		if !declared[name] {
			return nil, &TemplateError{Template: id, Reason: fmt.Sprintf("placeholder {%s} is not declared", name)}
		}
	}
	for _, p := range placeholders {
		if !seen[p] {
			return nil, &TemplateError{Template: id, Reason: fmt.Sprintf("declared placeholder %q is never used", p)}
		}
	}

	return &Template{
		id:           id,
		placeholders: append([]string(nil), placeholders...),
		text:         text,
	}, nil
}

// MustNew is like New but panics on error. Used for the built-in templates.
func MustNew(id string, placeholders []string, text string) *Template {
	t, err := New(id, placeholders, text)
	if err != nil {
		panic(err)
	}
	return t
}

// ID returns the template identifier.
func (t *Template) ID() string { return t.id }

// Text returns the raw template text.
func (t *Template) Text() string { return t.text }

// Placeholders returns a copy of the declared placeholder names in
// declaration order.
func (t *Template) Placeholders() []string {
	return append([]string(nil), t.placeholders...)
}

// Render substitutes values into the template. Every declared placeholder
// must have an entry in values; an empty string is a valid value. Keys in
// values that the template does not declare are ignored.
func (t *Template) Render(values map[string]string) (string, error) {
	for _, p := range t.placeholders {
		if _, ok := values[p]; !ok {
			return "", &MissingPlaceholderError{Template: t.id, Name: p}
		}
	}

	// Single pass over the template text so that braces inside supplied
	// values are never treated as markers.
	return placeholderPattern.ReplaceAllStringFunc(t.text, func(m string) string {
		return values[m[1:len(m)-1]]
	}), nil
}

// Placeholders returns the distinct placeholder names referenced in text,
// sorted.
func Placeholders(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// MissingPlaceholderError reports a render call that did not supply a value
// for a declared placeholder.
type MissingPlaceholderError struct {
	Template string
	Name     string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("template %s: missing value for placeholder %q", e.Template, e.Name)
}

// TemplateError reports a template whose text and declared placeholders
// disagree.
type TemplateError struct {
	Template string
	Reason   string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %s", e.Template, e.Reason)
}

// describe formats placeholder names for diagnostics.
func describe(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "{" + n + "}"
	}
	return strings.Join(quoted, ", ")
}
