package domain

import (
	"encoding/json"
	"strings"
)

// OptionInput is a loosely shaped option: either a bare string or an object
// with "text" and an optional "imageUrl".
type OptionInput struct {
	Text     string
	ImageURL string
}

// UnmarshalJSON accepts a JSON string or a {text, imageUrl} object.
// Any other shape yields an empty option, which normalization drops.
func (o *OptionInput) UnmarshalJSON(data []byte) error {
	*o = OptionInput{}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		o.Text = s
		return nil
	}
	var obj struct {
		Text     *string `json:"text"`
		ImageURL *string `json:"imageUrl"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		if obj.Text != nil {
			o.Text = *obj.Text
		}
		if obj.ImageURL != nil {
			o.ImageURL = *obj.ImageURL
		}
	}
	return nil
}

func (o OptionInput) MarshalJSON() ([]byte, error) {
	if o.ImageURL == "" {
		return json.Marshal(o.Text)
	}
	return json.Marshal(QuizOption{Text: o.Text, ImageURL: o.ImageURL})
}

// QuizPayload is the untrusted shape of a quiz coming from the generator or an API client.
// CorrectAnswers is nil when the field was absent; a non-nil empty slice means it was
// given explicitly and wins over Answer.
type QuizPayload struct {
	Question       string        `json:"question,omitempty"`
	Content        string        `json:"content,omitempty"`
	ImageURL       string        `json:"imageUrl,omitempty"`
	Options        []OptionInput `json:"options,omitempty"`
	CorrectAnswers []string      `json:"correctAnswers,omitempty"`
	Answer         string        `json:"answer,omitempty"`
}

// NormalizedQuiz is the canonical shape ready to become a Quiz.
type NormalizedQuiz struct {
	Question       string
	ImageURL       string
	Options        []QuizOption
	CorrectAnswers []string
}

// Valid reports whether the quiz satisfies the minimum cardinalities:
// a question, at least two options and at least one correct answer.
func (n NormalizedQuiz) Valid() bool {
	return n.Question != "" && len(n.Options) >= 2 && len(n.CorrectAnswers) >= 1
}

// Payload converts the normalized quiz back to the loose input shape.
func (n NormalizedQuiz) Payload() QuizPayload {
	opts := make([]OptionInput, len(n.Options))
	for i, o := range n.Options {
		opts[i] = OptionInput{Text: o.Text, ImageURL: o.ImageURL}
	}
	answers := make([]string, len(n.CorrectAnswers))
	copy(answers, n.CorrectAnswers)
	return QuizPayload{
		Question:       n.Question,
		ImageURL:       n.ImageURL,
		Options:        opts,
		CorrectAnswers: answers,
	}
}

// PayloadFromGenerated adapts a generator candidate with its resolved answer.
func PayloadFromGenerated(q GeneratedQuestion) QuizPayload {
	opts := make([]OptionInput, len(q.Options))
	for i, o := range q.Options {
		opts[i] = OptionInput{Text: o}
	}
	p := QuizPayload{Content: q.Content, Options: opts, CorrectAnswers: []string{}}
	if a := strings.TrimSpace(q.Answer); a != "" {
		p.CorrectAnswers = []string{a}
	}
	return p
}

// NormalizeQuizPayload reshapes a loose payload into a NormalizedQuiz.
// It never fails; callers check Valid() on the result.
func NormalizeQuizPayload(p QuizPayload) NormalizedQuiz {
	question := strings.TrimSpace(p.Question)
	if question == "" {
		question = strings.TrimSpace(p.Content)
	}

	options := make([]QuizOption, 0, len(p.Options))
	seen := make(map[string]struct{}, len(p.Options))
	for _, o := range p.Options {
		text := strings.TrimSpace(o.Text)
		if text == "" {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		options = append(options, QuizOption{Text: text, ImageURL: strings.TrimSpace(o.ImageURL)})
	}

	var candidates []string
	switch {
	case p.CorrectAnswers != nil:
		candidates = p.CorrectAnswers
	case p.Answer != "":
		candidates = []string{p.Answer}
	}

	answers := make([]string, 0, len(candidates))
	picked := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; !ok {
			continue
		}
		if _, dup := picked[c]; dup {
			continue
		}
		picked[c] = struct{}{}
		answers = append(answers, c)
	}

	return NormalizedQuiz{
		Question:       question,
		ImageURL:       strings.TrimSpace(p.ImageURL),
		Options:        options,
		CorrectAnswers: answers,
	}
}
