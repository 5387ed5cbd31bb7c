// Package report maps analyst and crawl documents onto the fixed page
// regions of the report view.
package report

import "html/template"

// Element ids of the report page.
const (
	RegionLoading    = "loading-state"
	RegionError      = "error-container"
	RegionProgress   = "error-progress"
	RegionMain       = "main-content"
	RegionSEOContent = "seo-content"

	RegionTitleAnalysis           = "title-analysis-section"
	RegionMetaDescriptionAnalysis = "meta-description-analysis-section"
	RegionH1TagAnalysis           = "h1-tag-analysis-section"
	RegionContentAnalysis         = "content-analysis-section"
	RegionLinkAnalysis            = "link-analysis-section"
	RegionKeywordOptimization     = "keyword-optimization-section"
	RegionOtherSuggestions        = "other-suggestions-section"

	RegionStats             = "stats-section"
	RegionMetadata          = "metadata-list"
	RegionInternalLinks     = "internal-links-tbody"
	RegionExternalLinks     = "external-links-tbody"
	RegionInternalLinkCount = "internal-link-count-display"
	RegionExternalLinkCount = "external-link-count-display"
)

// Regions lists every element id the report page provides.
var Regions = []string{
	RegionLoading, RegionError, RegionProgress, RegionMain, RegionSEOContent,
	RegionTitleAnalysis, RegionMetaDescriptionAnalysis, RegionH1TagAnalysis,
	RegionContentAnalysis, RegionLinkAnalysis, RegionKeywordOptimization, RegionOtherSuggestions,
	RegionStats, RegionMetadata, RegionInternalLinks, RegionExternalLinks,
	RegionInternalLinkCount, RegionExternalLinkCount,
}

// Target receives rendered output. Implementations skip (and report) ids
// they do not have instead of failing the render.
type Target interface {
	SetHTML(id string, html template.HTML)
	SetText(id string, text string)
	SetVisible(id string, visible bool)
}
