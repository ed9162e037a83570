// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the product-autogpt pipeline:
// the configuration tree read by the CLI and the result handed to display layers.
package types

// PipelineResult is everything one pipeline run produces for the display layer.
type PipelineResult struct {
	// RunID identifies the run in logs and API responses.
	RunID string `json:"run_id" yaml:"run_id"`

	// Topic is the user-supplied product prompt.
	Topic string `json:"topic" yaml:"topic"`

	// Title is the generated product title.
	Title string `json:"title" yaml:"title"`

	// Description is the generated product description.
	Description string `json:"description" yaml:"description"`

	// Research is the knowledge lookup summary used for the description.
	Research string `json:"research" yaml:"research"`

	// TitleHistory is the rendered transcript of the title step's memory.
	TitleHistory string `json:"title_history" yaml:"title_history"`

	// DescriptionHistory is the rendered transcript of the description step's memory.
	DescriptionHistory string `json:"description_history" yaml:"description_history"`

	// ResearchHistory mirrors Research; the lookup keeps no memory of its own.
	ResearchHistory string `json:"research_history" yaml:"research_history"`
}
