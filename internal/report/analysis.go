package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/user/seo-report/internal/entity"
	"github.com/user/seo-report/internal/render"
	"github.com/user/seo-report/internal/structured"
)

// ErrAnalysisMissing is returned when the analyst document has no root.
var ErrAnalysisMissing = errors.New("could not find SEO analysis data")

// StandardSection binds a page region to an analysis section.
type StandardSection struct {
	Region string
	Title  string
	Key    string
}

// StandardSections are rendered with the shared section template, in order.
var StandardSections = []StandardSection{
	{Region: RegionTitleAnalysis, Title: "Title Analysis", Key: entity.TitleSectionKey},
	{Region: RegionMetaDescriptionAnalysis, Title: "Meta Description Analysis", Key: entity.MetaDescriptionSectionKey},
	{Region: RegionH1TagAnalysis, Title: "H1 Tag Analysis", Key: entity.H1TagSectionKey},
	{Region: RegionContentAnalysis, Title: "Content Analysis", Key: entity.ContentSectionKey},
	{Region: RegionLinkAnalysis, Title: "Link Analysis", Key: entity.LinkSectionKey},
}

const (
	keywordTitle = "Keyword Optimization Suggestions"
	otherTitle   = "Overall & Other Suggestions"
)

// suggestionFieldOrder is the display order of known suggestion fields;
// unknown fields follow alphabetically.
var suggestionFieldOrder = []string{
	"Suggestion", "Title", "Meta_Description", "H1_Tag", "Keyword", "Reason", "Insertion", "Frequency",
}

// AnalysisRoot returns the analysis root of an analyst document.
func AnalysisRoot(doc structured.Value) structured.Value {
	return doc.Get(entity.AnalysisRootKey)
}

// BuildSection reads one standard section from the analysis root.
func BuildSection(root structured.Value, s StandardSection) render.SectionView {
	section := root.Get(s.Key)
	return render.SectionView{
		Title:       s.Title,
		Analysis:    section.Get(entity.AnalysisKey).Text(),
		Suggestions: BuildSuggestions(section.Get(entity.SuggestionsKey)),
	}
}

// BuildKeywordSuggestions reads the keyword-only section.
func BuildKeywordSuggestions(root structured.Value) render.SuggestionsOnlyView {
	return render.SuggestionsOnlyView{
		Title:       keywordTitle,
		Suggestions: BuildSuggestions(root.Get(entity.KeywordSuggestionsKey)),
	}
}

// BuildOtherSuggestions reads the combined section.
func BuildOtherSuggestions(root structured.Value) render.OtherSuggestionsView {
	return render.OtherSuggestionsView{
		Title:              otherTitle,
		OverallAssessment:  root.Get(entity.OverallAssessmentKey).Text(),
		SchemaMarkup:       root.Get(entity.SchemaMarkupKey).Text(),
		MobileOptimization: root.Get(entity.MobileOptimizationKey).Text(),
		PageSpeed:          root.Get(entity.PageSpeedSuggestionKey).Text(),
	}
}

// BuildSuggestions converts a suggestion list. A single scalar or object is
// treated as a one-element list; absent entries are dropped.
func BuildSuggestions(v structured.Value) []render.Suggestion {
	var items []structured.Value
	switch v.Kind() {
	case structured.KindAbsent:
		return nil
	case structured.KindList:
		items = v.List()
	default:
		items = []structured.Value{v}
	}

	out := make([]render.Suggestion, 0, len(items))
	for _, item := range items {
		switch item.Kind() {
		case structured.KindAbsent:
			continue
		case structured.KindObject:
			if fields := suggestionFields(item); len(fields) > 0 {
				out = append(out, render.Suggestion{Fields: fields})
			}
		case structured.KindList:
			var parts []string
			for _, p := range item.List() {
				if t := p.Text(); t != "" {
					parts = append(parts, t)
				}
			}
			if len(parts) > 0 {
				out = append(out, render.Suggestion{Text: strings.Join(parts, ", ")})
			}
		default:
			out = append(out, render.Suggestion{Text: item.Text()})
		}
	}
	return out
}

func suggestionFields(obj structured.Value) []render.SuggestionField {
	known := make(map[string]int, len(suggestionFieldOrder))
	for i, k := range suggestionFieldOrder {
		known[k] = i
	}

	fields := obj.Fields()
	sort.SliceStable(fields, func(i, j int) bool {
		ri, iKnown := known[fields[i].Key]
		rj, jKnown := known[fields[j].Key]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return fields[i].Key < fields[j].Key
		}
	})

	out := make([]render.SuggestionField, 0, len(fields))
	for _, f := range fields {
		text := f.Value.Text()
		if text == "" {
			continue
		}
		out = append(out, render.SuggestionField{
			Label: strings.ReplaceAll(f.Key, "_", " "),
			Value: text,
		})
	}
	return out
}

// AnalysisRenderer renders the analyst sections.
type AnalysisRenderer struct {
	registry *render.Registry
}

func NewAnalysisRenderer(registry *render.Registry) *AnalysisRenderer {
	return &AnalysisRenderer{registry: registry}
}

// Render writes all analysis sections to t. If the document has no analysis
// root nothing is written and ErrAnalysisMissing is returned.
func (r *AnalysisRenderer) Render(doc structured.Value, t Target) error {
	root := AnalysisRoot(doc)
	if root.IsAbsent() {
		return ErrAnalysisMissing
	}

	for _, s := range StandardSections {
		html, err := r.registry.Section(BuildSection(root, s))
		if err != nil {
			return fmt.Errorf("section %s: %w", s.Region, err)
		}
		t.SetHTML(s.Region, html)
	}
	t.SetVisible(RegionSEOContent, true)

	keywordHTML, err := r.registry.SuggestionsOnly(BuildKeywordSuggestions(root))
	if err != nil {
		return fmt.Errorf("section %s: %w", RegionKeywordOptimization, err)
	}
	t.SetHTML(RegionKeywordOptimization, keywordHTML)

	otherHTML, err := r.registry.OtherSuggestions(BuildOtherSuggestions(root))
	if err != nil {
		return fmt.Errorf("section %s: %w", RegionOtherSuggestions, err)
	}
	t.SetHTML(RegionOtherSuggestions, otherHTML)

	return nil
}
