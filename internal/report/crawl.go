package report

import (
	"fmt"
	"strconv"

	"github.com/user/seo-report/internal/entity"
	"github.com/user/seo-report/internal/render"
)

// Counts are the totals shown in the stats cards and link headings.
type Counts struct {
	InternalLinks int
	ExternalLinks int
	Metadata      int
}

// CountsOf computes counts; absent collections count as zero.
func CountsOf(data *entity.CrawlData) Counts {
	if data == nil {
		return Counts{}
	}
	return Counts{
		InternalLinks: len(data.InternalLinks()),
		ExternalLinks: len(data.ExternalLinks()),
		Metadata:      len(data.Metadata.NonEmpty()),
	}
}

// BuildStats builds the six summary cards.
func BuildStats(data *entity.CrawlData, c Counts) render.StatsView {
	var (
		url        string
		statusCode int
		success    bool
		errMessage string
	)
	if data != nil {
		url, statusCode, success, errMessage = data.URL, data.StatusCode, data.Success, data.ErrorMessage
	}

	status := ""
	if statusCode != 0 {
		status = strconv.Itoa(statusCode)
	}
	statusIconClass := "text-warning"
	if statusCode == 200 {
		statusIconClass = "text-success"
	}

	successCard := render.StatCard{
		Title:       "Success",
		Badge:       &render.Badge{Label: "No", Class: "badge-error"},
		Description: errMessage,
		DescClass:   "text-error",
		IconClass:   "text-error",
		Icon:        render.IconShield,
	}
	if success {
		successCard.Badge = &render.Badge{Label: "Yes", Class: "badge-success"}
		successCard.IconClass = "text-success"
		successCard.Icon = render.IconCheck
	}

	return render.StatsView{Stats: []render.StatCard{
		{Title: "URL Crawled", Value: url, ValueClass: "text-base w-fit-content", IconClass: "text-info", Icon: render.IconLink},
		{Title: "Status Code", Value: status, IconClass: statusIconClass, Icon: render.IconWarning},
		successCard,
		{Title: "Internal Links", Value: strconv.Itoa(c.InternalLinks), IconClass: "text-secondary", Icon: render.IconLink},
		{Title: "External Links", Value: strconv.Itoa(c.ExternalLinks), IconClass: "text-accent", Icon: render.IconExternalLink},
		{Title: "Metadata Tags", Value: strconv.Itoa(c.Metadata), IconClass: "text-neutral", Icon: render.IconInfo},
	}}
}

// CrawlRenderer renders the crawl report regions.
type CrawlRenderer struct {
	registry *render.Registry
}

func NewCrawlRenderer(registry *render.Registry) *CrawlRenderer {
	return &CrawlRenderer{registry: registry}
}

// Render writes the stats, metadata and both link tables, then the link
// counts. Regions are rendered in order and the first failure is returned.
func (r *CrawlRenderer) Render(data *entity.CrawlData, t Target) (Counts, error) {
	counts := CountsOf(data)

	statsHTML, err := r.registry.Stats(BuildStats(data, counts))
	if err != nil {
		return counts, fmt.Errorf("region %s: %w", RegionStats, err)
	}
	t.SetHTML(RegionStats, statsHTML)

	var metadata entity.Metadata
	if data != nil {
		metadata = data.Metadata
	}
	metadataHTML, err := r.registry.Metadata(render.MetadataView{Items: metadata.NonEmpty()})
	if err != nil {
		return counts, fmt.Errorf("region %s: %w", RegionMetadata, err)
	}
	t.SetHTML(RegionMetadata, metadataHTML)

	internalHTML, err := r.registry.InternalLinks(render.LinksView{Links: data.InternalLinks()})
	if err != nil {
		return counts, fmt.Errorf("region %s: %w", RegionInternalLinks, err)
	}
	t.SetHTML(RegionInternalLinks, internalHTML)

	externalHTML, err := r.registry.ExternalLinks(render.LinksView{Links: data.ExternalLinks()})
	if err != nil {
		return counts, fmt.Errorf("region %s: %w", RegionExternalLinks, err)
	}
	t.SetHTML(RegionExternalLinks, externalHTML)

	t.SetText(RegionInternalLinkCount, strconv.Itoa(counts.InternalLinks))
	t.SetText(RegionExternalLinkCount, strconv.Itoa(counts.ExternalLinks))

	return counts, nil
}
