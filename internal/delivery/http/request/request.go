package request

// AnalyzeRequest is the JSON body of POST /.
type AnalyzeRequest struct {
	URL   *string `json:"url"`
	Force bool    `json:"force"`
}
