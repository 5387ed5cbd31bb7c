// Package extractor turns fetched HTML into crawl metadata and links.
package extractor

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/seo-report/internal/entity"
)

// Result is what a page contributes to its crawl report.
type Result struct {
	Metadata entity.Metadata
	Links    *entity.Links
}

// Extract parses the HTML of page and collects metadata and links.
func Extract(page *url.URL, body io.Reader) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return &Result{
		Metadata: extractMetadata(doc, page),
		Links:    extractLinks(doc, page),
	}, nil
}

func extractMetadata(doc *goquery.Document, page *url.URL) entity.Metadata {
	meta := entity.Metadata{
		"title":       cleanText(doc.Find("title").First().Text()),
		"description": nil,
		"keywords":    nil,
		"author":      nil,
	}

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key := strings.ToLower(strings.TrimSpace(s.AttrOr("name", "")))
		if property := strings.ToLower(strings.TrimSpace(s.AttrOr("property", ""))); property != "" {
			key = property
		}
		content := cleanText(s.AttrOr("content", ""))
		if key == "" || content == "" {
			return
		}

		switch {
		case key == "description", key == "keywords", key == "author":
		case strings.HasPrefix(key, "og:"), strings.HasPrefix(key, "twitter:"):
		default:
			return
		}
		if existing, ok := meta[key].(string); ok && existing != "" {
			return
		}
		meta[key] = content
	})

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		if u, err := page.Parse(strings.TrimSpace(href)); err == nil {
			meta["canonical"] = u.String()
		}
	}

	if lang := strings.TrimSpace(doc.Find("html").First().AttrOr("lang", "")); lang != "" {
		meta["language"] = lang
	}

	return meta
}

func extractLinks(doc *goquery.Document, page *url.URL) *entity.Links {
	links := &entity.Links{Internal: []entity.Link{}, External: []entity.Link{}}
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if skipHref(href) {
			return
		}

		u, err := page.Parse(href)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return
		}
		u.Fragment = ""
		abs := u.String()
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}

		link := entity.Link{
			Href:       abs,
			Text:       cleanText(s.Text()),
			Title:      cleanText(s.AttrOr("title", "")),
			BaseDomain: baseDomain(u),
		}
		if sameSite(page, u) {
			links.Internal = append(links.Internal, link)
		} else {
			links.External = append(links.External, link)
		}
	})

	return links
}

func skipHref(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return true
	}
	lower := strings.ToLower(href)
	for _, prefix := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func baseDomain(u *url.URL) string {
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// sameSite treats hosts differing only by a leading "www." as the same site.
func sameSite(a, b *url.URL) bool {
	return baseDomain(a) == baseDomain(b)
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
