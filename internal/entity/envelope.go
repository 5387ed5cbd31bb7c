package entity

import "encoding/json"

// Envelope is the JSON body exchanged between the report view and the
// analysis backend.
type Envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Status     int             `json:"status,omitempty"`
	Data       *CrawlData      `json:"data,omitempty"`
	AIAnalysis json.RawMessage `json:"ai_analysis,omitempty"`
}

// AnalyzeRequest is the body of POST /.
type AnalyzeRequest struct {
	URL string `json:"url"`
}
