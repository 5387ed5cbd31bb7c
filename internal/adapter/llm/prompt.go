package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/user/seo-report/internal/entity"
)

const schemaDescription = `{"SEO_Analysis_and_Enhancement_Suggestions": {
  "Title_Analysis_and_Suggestions": {"Analysis": string, "Suggestions": [SuggestionItem]},
  "Meta_Description_Analysis_and_Suggestions": {"Analysis": string, "Suggestions": [SuggestionItem]},
  "H1_Tag_Analysis_and_Suggestions": {"Analysis": string, "Suggestions": [SuggestionItem]},
  "Content_Analysis_and_Suggestions": {"Analysis": string, "Suggestions": [SuggestionItem]},
  "Link_Analysis_and_Suggestions": {"Analysis": string, "Suggestions": [SuggestionItem]},
  "Overall_SEO_Assessment": string,
  "Keyword_Optimization_Suggestions": [SuggestionItem],
  "Schema_Markup_Suggestion": string,
  "Mobile_Optimization_Suggestion": string,
  "Page_Speed_Suggestion": string
}}
SuggestionItem: {"Suggestion"?: string, "Title"?: string, "Meta_Description"?: string, "H1_Tag"?: string,
  "Keyword"?: string, "Reason"?: string, "Insertion"?: string, "Frequency"?: integer}`

// BuildPrompt renders the analyst instructions for one crawl.
func BuildPrompt(data *entity.CrawlData) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode crawl data: %w", err)
	}

	var b strings.Builder
	b.WriteString("Role: Expert SEO Content Analyst\n")
	b.WriteString("Task: Analyze SEO data and provide actionable improvements in VALID JSON.\n")
	fmt.Fprintf(&b, "Data: %s\n", payload)
	fmt.Fprintf(&b, "Schema: Strictly adhere to %s\n\n", schemaDescription)
	b.WriteString("Required Content within Schema:\n")
	b.WriteString("- Min. 3 suggestions/section.\n")
	b.WriteString("- Keyword details (location, frequency).\n")
	b.WriteString("- Schema type.\n")
	b.WriteString("- Mobile/Pagespeed suggestions.\n\n")
	b.WriteString("Strict JSON Formatting:\n")
	b.WriteString("- Double quotes only.\n")
	b.WriteString("- JSON object ONLY (no extra text).\n")
	b.WriteString("- Use \"N/A\" instead of empty strings.\n")
	b.WriteString("- No internal newlines in strings.\n")
	b.WriteString("Return the output strictly as a raw JSON object without Markdown code blocks.\n")
	return b.String(), nil
}
