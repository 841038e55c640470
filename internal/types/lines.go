// Package types provides type definitions for structured data used throughout the profile-extractor system.
package types

// LineLabel identifies the role a captured text line plays in a profile section.
type LineLabel string

// Line labels assigned by the classifier, in rule-priority order.
const (
	LabelDateRange    LineLabel = "date_range"
	LabelMetadata     LineLabel = "metadata"
	LabelTitle        LineLabel = "title"
	LabelCompany      LineLabel = "company"
	LabelUnclassified LineLabel = "unclassified"
)

// TextLine is a single cleaned line of captured text.
// Index is the line's position in the cleaned sequence, not in the raw input.
type TextLine struct {
	Content string `json:"content"`
	Index   int    `json:"index"`
}

// ClassifiedLine is a TextLine with its label. Labels are a deterministic
// function of content under a fixed rule order, so classifying the same
// input twice always yields the same result.
type ClassifiedLine struct {
	TextLine
	Label LineLabel `json:"label"`
}
