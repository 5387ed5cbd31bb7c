// Package render compiles the report templates once and turns typed view
// models into markup. Every interpolated value goes through html/template, so
// crawl content and analyst text are always escaped.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

// Template names.
const (
	TemplateSection          = "section"
	TemplateSuggestionsOnly  = "suggestions-only"
	TemplateOtherSuggestions = "other-suggestions"
	TemplateError            = "error"
	TemplateStats            = "stats"
	TemplateMetadata         = "metadata"
	TemplateInternalLinks    = "internal-links"
	TemplateExternalLinks    = "external-links"
	TemplatePage             = "page"
	TemplateStatusPage       = "status-page"
)

// Registry holds the compiled template set. It is safe for concurrent use.
type Registry struct {
	tmpl *template.Template
}

// NewRegistry compiles all template sources.
func NewRegistry() (*Registry, error) {
	root := template.New("report").Funcs(funcMap())
	for _, src := range templateSources {
		if _, err := root.Parse(src); err != nil {
			return nil, fmt.Errorf("render: parse templates: %w", err)
		}
	}
	return &Registry{tmpl: root}, nil
}

// MustNewRegistry is NewRegistry that panics on error. The sources are
// compiled into the binary, so a failure is a programming error.
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	// Output of html/template is already escaped.
	return template.HTML(buf.String()), nil
}

func (r *Registry) Section(v SectionView) (template.HTML, error) {
	return r.execute(TemplateSection, v)
}

func (r *Registry) SuggestionsOnly(v SuggestionsOnlyView) (template.HTML, error) {
	return r.execute(TemplateSuggestionsOnly, v)
}

func (r *Registry) OtherSuggestions(v OtherSuggestionsView) (template.HTML, error) {
	return r.execute(TemplateOtherSuggestions, v)
}

func (r *Registry) Error(v ErrorView) (template.HTML, error) {
	return r.execute(TemplateError, v)
}

func (r *Registry) Stats(v StatsView) (template.HTML, error) {
	return r.execute(TemplateStats, v)
}

func (r *Registry) Metadata(v MetadataView) (template.HTML, error) {
	return r.execute(TemplateMetadata, v)
}

func (r *Registry) InternalLinks(v LinksView) (template.HTML, error) {
	return r.execute(TemplateInternalLinks, v)
}

func (r *Registry) ExternalLinks(v LinksView) (template.HTML, error) {
	return r.execute(TemplateExternalLinks, v)
}

// Page writes the full page shell.
func (r *Registry) Page(w io.Writer, v PageView) error {
	if err := r.tmpl.ExecuteTemplate(w, TemplatePage, v); err != nil {
		return fmt.Errorf("render %s: %w", TemplatePage, err)
	}
	return nil
}

// StatusPage writes a standalone page for HTTP errors such as 404.
func (r *Registry) StatusPage(w io.Writer, v StatusPageView) error {
	if err := r.tmpl.ExecuteTemplate(w, TemplateStatusPage, v); err != nil {
		return fmt.Errorf("render %s: %w", TemplateStatusPage, err)
	}
	return nil
}
