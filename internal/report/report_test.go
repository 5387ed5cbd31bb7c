package report

import (
	"encoding/json"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/seo-report/internal/entity"
	"github.com/user/seo-report/internal/render"
	"github.com/user/seo-report/internal/structured"
)

type recordingTarget struct {
	html    map[string]template.HTML
	text    map[string]string
	visible map[string]bool
}

func newRecordingTarget() *recordingTarget {
	return &recordingTarget{
		html:    map[string]template.HTML{},
		text:    map[string]string{},
		visible: map[string]bool{},
	}
}

func (r *recordingTarget) SetHTML(id string, html template.HTML) { r.html[id] = html }
func (r *recordingTarget) SetText(id, text string)               { r.text[id] = text }
func (r *recordingTarget) SetVisible(id string, v bool)          { r.visible[id] = v }

// exampleEnvelope is the worked example of the report contract.
const exampleEnvelope = `{
	"success": true,
	"data": {
		"url": "http://a.com",
		"status_code": 200,
		"links": {"internal": [{"href": "/x"}], "external": []},
		"metadata": {"title": "T"}
	},
	"ai_analysis": {
		"SEO_Analysis_and_Enhancement_Suggestions": {
			"Title_Analysis_and_Suggestions": {"Analysis": "ok", "Suggestions": ["s1"]}
		}
	}
}`

func decodeExample(t *testing.T) (*entity.CrawlData, structured.Value) {
	t.Helper()
	var env entity.Envelope
	require.NoError(t, json.Unmarshal([]byte(exampleEnvelope), &env))
	doc, err := structured.Parse(env.AIAnalysis)
	require.NoError(t, err)
	return env.Data, doc
}

func TestWorkedExample(t *testing.T) {
	data, doc := decodeExample(t)
	registry := render.MustNewRegistry()
	target := newRecordingTarget()

	require.NoError(t, NewAnalysisRenderer(registry).Render(doc, target))
	counts, err := NewCrawlRenderer(registry).Render(data, target)
	require.NoError(t, err)

	assert.Equal(t, Counts{InternalLinks: 1, ExternalLinks: 0, Metadata: 1}, counts)
	assert.Equal(t, "1", target.text[RegionInternalLinkCount])
	assert.Equal(t, "0", target.text[RegionExternalLinkCount])

	title := string(target.html[RegionTitleAnalysis])
	assert.Contains(t, title, "Title Analysis")
	assert.Contains(t, title, "ok")
	assert.Equal(t, 1, strings.Count(title, "<li>"))
	assert.Contains(t, title, "s1")

	assert.True(t, target.visible[RegionSEOContent])
}

func TestBuildSection_OnlyReadsOwnKeyPath(t *testing.T) {
	doc, err := structured.Parse([]byte(`{
		"SEO_Analysis_and_Enhancement_Suggestions": {
			"Title_Analysis_and_Suggestions": {"Analysis": "title text", "Suggestions": ["t1", "t2"]},
			"Content_Analysis_and_Suggestions": {"Analysis": "content text"}
		}
	}`))
	require.NoError(t, err)
	root := AnalysisRoot(doc)

	title := BuildSection(root, StandardSections[0])
	assert.Equal(t, "Title Analysis", title.Title)
	assert.Equal(t, "title text", title.Analysis)
	assert.Len(t, title.Suggestions, 2)

	content := BuildSection(root, StandardSections[3])
	assert.Equal(t, "content text", content.Analysis)
	assert.Empty(t, content.Suggestions)

	meta := BuildSection(root, StandardSections[1])
	assert.Equal(t, render.SectionView{Title: "Meta Description Analysis"}, meta)
}

func TestAnalysisRenderer_MissingRootRendersNothing(t *testing.T) {
	registry := render.MustNewRegistry()
	target := newRecordingTarget()

	doc, err := structured.Parse([]byte(`{"something_else": {}}`))
	require.NoError(t, err)

	err = NewAnalysisRenderer(registry).Render(doc, target)
	require.ErrorIs(t, err, ErrAnalysisMissing)
	assert.Empty(t, target.html)
	assert.Empty(t, target.visible)
}

func TestAnalysisRenderer_AllSections(t *testing.T) {
	doc, err := structured.Parse([]byte(`{
		"SEO_Analysis_and_Enhancement_Suggestions": {
			"Keyword_Optimization_Suggestions": [{"Keyword": "seo", "Insertion": "title", "Frequency": 2}],
			"Overall_SEO_Assessment": "Solid",
			"Schema_Markup_Suggestion": "Use Article",
			"Mobile_Optimization_Suggestion": "N/A",
			"Page_Speed_Suggestion": "Compress images"
		}
	}`))
	require.NoError(t, err)

	target := newRecordingTarget()
	require.NoError(t, NewAnalysisRenderer(render.MustNewRegistry()).Render(doc, target))

	for _, s := range StandardSections {
		html := string(target.html[s.Region])
		assert.Contains(t, html, s.Title, s.Region)
		assert.NotContains(t, html, `class="analysis`, s.Region)
		assert.NotContains(t, html, "<li>", s.Region)
	}

	keyword := string(target.html[RegionKeywordOptimization])
	assert.Contains(t, keyword, "Keyword Optimization Suggestions")
	assert.Contains(t, keyword, "Keyword:</span> <span>seo</span>")
	assert.Contains(t, keyword, "Frequency:</span> <span>2</span>")
	assert.Less(t, strings.Index(keyword, "Keyword:"), strings.Index(keyword, "Insertion:"))

	other := string(target.html[RegionOtherSuggestions])
	assert.Contains(t, other, "Solid")
	assert.Contains(t, other, "Use Article")
	assert.Contains(t, other, "Compress images")
}

func TestBuildSuggestions(t *testing.T) {
	doc, err := structured.Parse([]byte(`{
		"list": ["a", null, {"Suggestion": "b", "Reason": "", "Extra_Note": "z"}, ["c", "d"], 5],
		"single": "only"
	}`))
	require.NoError(t, err)

	got := BuildSuggestions(doc.Get("list"))
	require.Len(t, got, 4)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, []render.SuggestionField{
		{Label: "Suggestion", Value: "b"},
		{Label: "Extra Note", Value: "z"},
	}, got[1].Fields)
	assert.Equal(t, "c, d", got[2].Text)
	assert.Equal(t, "5", got[3].Text)

	assert.Equal(t, []render.Suggestion{{Text: "only"}}, BuildSuggestions(doc.Get("single")))
	assert.Nil(t, BuildSuggestions(doc.Get("missing")))
}

func TestCountsOf_AbsentCollections(t *testing.T) {
	assert.Equal(t, Counts{}, CountsOf(nil))
	assert.Equal(t, Counts{}, CountsOf(&entity.CrawlData{}))

	data := &entity.CrawlData{
		Links: &entity.Links{
			Internal: []entity.Link{{Href: "/a"}, {Href: "/b"}},
			External: []entity.Link{{Href: "https://b.com"}},
		},
		Metadata: entity.Metadata{"title": "T", "description": "", "robots": nil},
	}
	assert.Equal(t, Counts{InternalLinks: 2, ExternalLinks: 1, Metadata: 1}, CountsOf(data))
}

func TestBuildStats(t *testing.T) {
	data := &entity.CrawlData{URL: "http://a.com", StatusCode: 404, Success: false, ErrorMessage: "not found"}
	stats := BuildStats(data, Counts{InternalLinks: 3}).Stats
	require.Len(t, stats, 6)

	assert.Equal(t, "http://a.com", stats[0].Value)
	assert.Equal(t, "404", stats[1].Value)
	assert.Equal(t, "text-warning", stats[1].IconClass)
	assert.Equal(t, "No", stats[2].Badge.Label)
	assert.Equal(t, "not found", stats[2].Description)
	assert.Equal(t, "3", stats[3].Value)
	assert.Equal(t, "0", stats[4].Value)

	ok := BuildStats(&entity.CrawlData{StatusCode: 200, Success: true}, Counts{}).Stats
	assert.Equal(t, "text-success", ok[1].IconClass)
	assert.Equal(t, "Yes", ok[2].Badge.Label)
	assert.Empty(t, ok[0].Value)
}

func TestCrawlRenderer_NilData(t *testing.T) {
	target := newRecordingTarget()
	counts, err := NewCrawlRenderer(render.MustNewRegistry()).Render(nil, target)
	require.NoError(t, err)

	assert.Equal(t, Counts{}, counts)
	assert.Contains(t, string(target.html[RegionMetadata]), "No metadata found.")
	assert.Contains(t, string(target.html[RegionInternalLinks]), "No links found.")
	assert.Equal(t, "0", target.text[RegionInternalLinkCount])
}

func TestCrawlRenderer_EscapesCrawlContent(t *testing.T) {
	data := &entity.CrawlData{
		URL:      `http://a.com/"><script>`,
		Metadata: entity.Metadata{"description": `<img src=x onerror=alert(1)>`},
		Links:    &entity.Links{External: []entity.Link{{Href: "https://b.com", Text: "<b>bold</b>"}}},
	}
	target := newRecordingTarget()
	_, err := NewCrawlRenderer(render.MustNewRegistry()).Render(data, target)
	require.NoError(t, err)

	for id, html := range target.html {
		assert.NotContains(t, string(html), "<script>", id)
		assert.NotContains(t, string(html), "<img", id)
		assert.NotContains(t, string(html), "<b>bold", id)
	}
}
