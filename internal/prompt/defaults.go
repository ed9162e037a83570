// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

// Template identifiers and the placeholder sets the pipeline supplies.
const (
	TitleID       = "title"
	DescriptionID = "description"

	KeyTopic       = "topic"
	KeyTitle       = "title"
	KeyResearch    = "research"
	KeyDescription = "description"
)

// TitlePlaceholders and DescriptionPlaceholders are the values the pipeline
// passes to each template.
var (
	TitlePlaceholders       = []string{KeyTopic}
	DescriptionPlaceholders = []string{KeyTitle, KeyResearch}
)

const defaultTitleText = `Write me a fun, catchy, concise product title about {topic}`

const defaultDescriptionText = `Write me a product description about {title}.
Make sure the description is about the product only, not the store.
Also leverage this research: {research}`

// Set is the pair of templates a pipeline needs.
type Set struct {
	Title       *Template
	Description *Template
}

// Defaults returns the built-in title and description templates.
func Defaults() Set {
	return Set{
		Title:       MustNew(TitleID, TitlePlaceholders, defaultTitleText),
		Description: MustNew(DescriptionID, DescriptionPlaceholders, defaultDescriptionText),
	}
}
