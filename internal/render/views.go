package render

import (
	"html/template"

	"github.com/user/seo-report/internal/entity"
)

// SectionView feeds the shared "section" template.
type SectionView struct {
	Title       string
	Analysis    string
	Suggestions []Suggestion
}

// Suggestion is either a plain text suggestion or a labelled set of fields.
type Suggestion struct {
	Text   string
	Fields []SuggestionField
}

// SuggestionField is one labelled line of a structured suggestion.
type SuggestionField struct {
	Label string
	Value string
}

// SuggestionsOnlyView feeds the "suggestions-only" template.
type SuggestionsOnlyView struct {
	Title       string
	Suggestions []Suggestion
}

// OtherSuggestionsView feeds the "other-suggestions" template.
type OtherSuggestionsView struct {
	Title              string
	OverallAssessment  string
	SchemaMarkup       string
	MobileOptimization string
	PageSpeed          string
}

// ErrorView feeds the "error" template. A zero Code is not shown.
type ErrorView struct {
	Title    string
	Message  string
	Code     int
	Progress float64
}

// Icon names a fixed SVG from the icon set.
type Icon string

const (
	IconLink         Icon = "link"
	IconWarning      Icon = "warning"
	IconCheck        Icon = "check"
	IconShield       Icon = "shield"
	IconExternalLink Icon = "external"
	IconInfo         Icon = "info"
)

// Badge is a small labelled pill.
type Badge struct {
	Label string
	Class string
}

// StatCard is one card of the summary statistics.
type StatCard struct {
	Title       string
	Value       string
	Badge       *Badge
	ValueClass  string
	Description string
	DescClass   string
	IconClass   string
	Icon        Icon
}

// StatsView feeds the "stats" template.
type StatsView struct {
	Stats []StatCard
}

// MetadataView feeds the "metadata" template.
type MetadataView struct {
	Items []entity.MetadataEntry
}

// LinksView feeds the link table templates.
type LinksView struct {
	Links []entity.Link
}

// RegionView is the rendered state of one page container.
type RegionView struct {
	HTML     template.HTML
	Text     string
	Visible  bool
	Classes  string
	Progress float64
}

// PageView feeds the "page" shell.
type PageView struct {
	URL     string
	Regions map[string]RegionView
}

// R returns the region with the given element id; unknown ids are empty.
func (p PageView) R(id string) RegionView {
	return p.Regions[id]
}

// StatusPageView feeds the "status-page" template.
type StatusPageView struct {
	Code   int
	Title  string
	Detail string
}
