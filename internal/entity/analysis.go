package entity

// Keys of the AI analysis document.
const (
	AnalysisRootKey = "SEO_Analysis_and_Enhancement_Suggestions"

	TitleSectionKey           = "Title_Analysis_and_Suggestions"
	MetaDescriptionSectionKey = "Meta_Description_Analysis_and_Suggestions"
	H1TagSectionKey           = "H1_Tag_Analysis_and_Suggestions"
	ContentSectionKey         = "Content_Analysis_and_Suggestions"
	LinkSectionKey            = "Link_Analysis_and_Suggestions"

	KeywordSuggestionsKey  = "Keyword_Optimization_Suggestions"
	OverallAssessmentKey   = "Overall_SEO_Assessment"
	SchemaMarkupKey        = "Schema_Markup_Suggestion"
	MobileOptimizationKey  = "Mobile_Optimization_Suggestion"
	PageSpeedSuggestionKey = "Page_Speed_Suggestion"

	AnalysisKey    = "Analysis"
	SuggestionsKey = "Suggestions"
)

// SuggestionItem is one suggestion produced by the analyst. Which fields are
// set depends on the section.
type SuggestionItem struct {
	Suggestion      *string `json:"Suggestion,omitempty"`
	Title           *string `json:"Title,omitempty"`
	MetaDescription *string `json:"Meta_Description,omitempty"`
	H1Tag           *string `json:"H1_Tag,omitempty"`
	Keyword         *string `json:"Keyword,omitempty"`
	Reason          *string `json:"Reason,omitempty"`
	Insertion       *string `json:"Insertion,omitempty"`
	Frequency       *int    `json:"Frequency,omitempty"`
}

// AnalysisSuggestions is a section with free-text analysis and suggestions.
type AnalysisSuggestions struct {
	Analysis    *string          `json:"Analysis,omitempty"`
	Suggestions []SuggestionItem `json:"Suggestions"`
}

// SEOAnalysis is the body of the analysis document.
type SEOAnalysis struct {
	TitleAnalysis           AnalysisSuggestions `json:"Title_Analysis_and_Suggestions"`
	MetaDescriptionAnalysis AnalysisSuggestions `json:"Meta_Description_Analysis_and_Suggestions"`
	H1TagAnalysis           AnalysisSuggestions `json:"H1_Tag_Analysis_and_Suggestions"`
	ContentAnalysis         AnalysisSuggestions `json:"Content_Analysis_and_Suggestions"`
	LinkAnalysis            AnalysisSuggestions `json:"Link_Analysis_and_Suggestions"`
	OverallSEOAssessment    *string             `json:"Overall_SEO_Assessment,omitempty"`
	KeywordSuggestions      []SuggestionItem    `json:"Keyword_Optimization_Suggestions"`
	SchemaMarkup            *string             `json:"Schema_Markup_Suggestion,omitempty"`
	MobileOptimization      *string             `json:"Mobile_Optimization_Suggestion,omitempty"`
	PageSpeed               *string             `json:"Page_Speed_Suggestion,omitempty"`
}

// SEOAnalysisResponse is the schema the analyst must return.
type SEOAnalysisResponse struct {
	SEOAnalysis *SEOAnalysis `json:"SEO_Analysis_and_Enhancement_Suggestions"`
}
