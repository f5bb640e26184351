package quizgen

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"lms-quiz/internal/domain"
)

// embeddedArray finds the first JSON-array-of-objects looking span in free text.
var embeddedArray = regexp.MustCompile(`\[\s*\{[\s\S]*\}\s*\]`)

// wrapperKeys are the object fields a model may nest the question array under.
var wrapperKeys = []string{"items", "quizzes", "questions"}

type parseStrategy struct {
	name  string
	parse func(raw string) ([]interface{}, bool)
}

// parseStrategies is tried in order; the first one that succeeds wins.
var parseStrategies = []parseStrategy{
	{name: "strict_array", parse: parseStrictArray},
	{name: "wrapped_array", parse: parseWrappedArray},
	{name: "embedded_array", parse: parseEmbeddedArray},
}

// strictDecode decodes raw into v only when raw is exactly one JSON value.
func strictDecode(raw string, v interface{}) bool {
	if !json.Valid([]byte(raw)) {
		return false
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v) == nil
}

func parseStrictArray(raw string) ([]interface{}, bool) {
	var arr []interface{}
	if !strictDecode(raw, &arr) || arr == nil {
		return nil, false
	}
	return arr, true
}

// parseWrappedArray accepts any other well-formed JSON document. Without a known
// wrapper key it yields no items; the embedded-array search only runs on text
// that is not JSON at all.
func parseWrappedArray(raw string) ([]interface{}, bool) {
	var v interface{}
	if !strictDecode(raw, &v) {
		return nil, false
	}
	if obj, ok := v.(map[string]interface{}); ok {
		for _, k := range wrapperKeys {
			if arr, ok := obj[k].([]interface{}); ok {
				return arr, true
			}
		}
	}
	return []interface{}{}, true
}

func parseEmbeddedArray(raw string) ([]interface{}, bool) {
	span := embeddedArray.FindString(raw)
	if span == "" {
		return nil, false
	}
	return parseStrictArray(span)
}

// ParseCandidates turns a raw model response into question candidates.
// It never fails: unparseable input yields an empty slice and the name of the
// strategy that matched ("none" when nothing did).
func ParseCandidates(raw string) ([]domain.GeneratedQuestion, string) {
	raw = strings.TrimSpace(raw)
	for _, s := range parseStrategies {
		items, ok := s.parse(raw)
		if !ok {
			continue
		}
		return toCandidates(items), s.name
	}
	return []domain.GeneratedQuestion{}, "none"
}

// toCandidates keeps objects with content and at least two options.
func toCandidates(items []interface{}) []domain.GeneratedQuestion {
	out := make([]domain.GeneratedQuestion, 0, len(items))
	for _, it := range items {
		obj, ok := it.(map[string]interface{})
		if !ok {
			continue
		}

		content := firstString(obj, "content", "question")
		if content == "" {
			continue
		}

		rawOpts, ok := obj["options"].([]interface{})
		if !ok {
			rawOpts, _ = obj["choices"].([]interface{})
		}
		opts := make([]string, 0, len(rawOpts))
		for _, o := range rawOpts {
			if s := coerceString(o); s != "" {
				opts = append(opts, s)
			}
		}
		if len(opts) < 2 {
			continue
		}

		out = append(out, domain.GeneratedQuestion{
			Content: content,
			Options: opts,
			Answer:  coerceString(obj["answer"]),
		})
	}
	return out
}

func firstString(obj map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// coerceString renders scalars and {text: ...} objects as trimmed text.
func coerceString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case map[string]interface{}:
		if s, ok := t["text"].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
