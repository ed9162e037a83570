// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// fileEntry is one template in a prompts YAML file.
type fileEntry struct {
	Template string `yaml:"template"`
}

// promptFile is the on-disk layout:
//
//	title:
//	  template: "Name a product about {topic}"
//	description:
//	  template: "Describe {title} using {research}"
type promptFile struct {
	Title       *fileEntry `yaml:"title"`
	Description *fileEntry `yaml:"description"`
}

// LoadFile reads template overrides from a YAML file. Entries that are absent
// keep the built-in default. Placeholders are discovered from the text and must
// match what the pipeline supplies for that template.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("reading prompts file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a prompts YAML document. See LoadFile.
func Parse(data []byte) (Set, error) {
	var pf promptFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return Set{}, fmt.Errorf("parsing prompts file: %w", err)
	}

	set := Defaults()
	if pf.Title != nil {
		t, err := fromText(TitleID, TitlePlaceholders, pf.Title.Template)
		if err != nil {
			return Set{}, err
		}
		set.Title = t
	}
	if pf.Description != nil {
		t, err := fromText(DescriptionID, DescriptionPlaceholders, pf.Description.Template)
		if err != nil {
			return Set{}, err
		}
		set.Description = t
	}
	return set, nil
}

// fromText builds a template whose referenced placeholders must equal want.
func fromText(id string, want []string, text string) (*Template, error) {
	if text == "" {
		return nil, &TemplateError{Template: id, Reason: "template text is empty"}
	}
	got := Placeholders(text)
	if !sameSet(got, want) {
		return nil, &TemplateError{
			Template: id,
			Reason:   fmt.Sprintf("template uses %s, want %s", describe(got), describe(want)),
		}
	}
	return New(id, want, text)
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	in := make(map[string]bool, len(a))
	for _, s := range a {
		in[s] = true
	}
	for _, s := range b {
		if !in[s] {
			return false
		}
	}
	return true
}
