package entity

import (
	"fmt"
	"sort"
)

// Link is a single anchor found on a crawled page.
type Link struct {
	Href       string `json:"href"`
	Text       string `json:"text,omitempty"`
	Title      string `json:"title,omitempty"`
	BaseDomain string `json:"base_domain,omitempty"`
}

// Links splits page anchors by whether they stay on the crawled host.
type Links struct {
	Internal []Link `json:"internal"`
	External []Link `json:"external"`
}

// Metadata holds page metadata. Values arrive from arbitrary crawlers, so they
// may be null or non-string.
type Metadata map[string]any

// CrawlData is the raw crawl report for one URL.
type CrawlData struct {
	URL          string   `json:"url"`
	StatusCode   int      `json:"status_code"`
	Success      bool     `json:"success"`
	ErrorMessage string   `json:"error_message,omitempty"`
	Metadata     Metadata `json:"metadata"`
	Links        *Links   `json:"links"`
}

// MetadataEntry is a non-empty metadata pair ready for display.
type MetadataEntry struct {
	Key   string
	Value string
}

// NonEmpty returns the entries whose value is neither null nor the empty
// string, sorted by key.
func (m Metadata) NonEmpty() []MetadataEntry {
	entries := make([]MetadataEntry, 0, len(m))
	for k, v := range m {
		s, ok := metadataString(v)
		if !ok {
			continue
		}
		entries = append(entries, MetadataEntry{Key: k, Value: s})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

func metadataString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	case *string:
		if t == nil || *t == "" {
			return "", false
		}
		return *t, true
	default:
		return fmt.Sprint(t), true
	}
}

// InternalLinks returns the internal link list, nil-safe.
func (c *CrawlData) InternalLinks() []Link {
	if c == nil || c.Links == nil {
		return nil
	}
	return c.Links.Internal
}

// ExternalLinks returns the external link list, nil-safe.
func (c *CrawlData) ExternalLinks() []Link {
	if c == nil || c.Links == nil {
		return nil
	}
	return c.Links.External
}
