package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/user/seo-report/internal/entity"
)

var (
	// ErrEmptyReply is returned when the model produced no text.
	ErrEmptyReply = errors.New("analyst returned an empty reply")
	// ErrMissingRoot is returned when the reply has no analysis root key.
	ErrMissingRoot = fmt.Errorf("analyst reply has no %s object", entity.AnalysisRootKey)
)

var codeFence = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// ExtractJSON returns the JSON text of a model reply, taking the first
// Markdown code fence if there is one.
func ExtractJSON(reply string) (string, error) {
	text := strings.TrimSpace(reply)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}

// ParseAnalysis extracts the analysis document from a reply and returns it
// as compact JSON. Only the root key is required.
func ParseAnalysis(reply string) ([]byte, error) {
	text, err := ExtractJSON(reply)
	if err != nil {
		return nil, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("analyst reply is not a JSON object: %w", err)
	}
	root, ok := doc[entity.AnalysisRootKey]
	if !ok || bytes.Equal(bytes.TrimSpace(root), []byte("null")) {
		return nil, ErrMissingRoot
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(text)); err != nil {
		return nil, fmt.Errorf("compact analyst reply: %w", err)
	}
	return compact.Bytes(), nil
}

// CheckSchema reports whether doc decodes into the typed analysis schema.
func CheckSchema(doc []byte) error {
	var typed entity.SEOAnalysisResponse
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()
	return dec.Decode(&typed)
}
