package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{"without paramsKey", "quizgen", "generation", "abc", nil, "lmsquiz:quizgen:generation:abc"},
		{"with empty paramsKey", "quizgen", "generation", "abc", []string{}, "lmsquiz:quizgen:generation:abc"},
		{"with one paramsKey", "quizgen", "generation", "abc", []string{"10"}, "lmsquiz:quizgen:generation:abc:10"},
		{"with multiple paramsKey", "quizgen", "generation", "abc", []string{"10", "gemini"}, "lmsquiz:quizgen:generation:abc:10_gemini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...))
		})
	}
}

func TestContentDigest(t *testing.T) {
	a := ContentDigest("photosynthesis converts light")
	assert.Len(t, a, 64)
	assert.Equal(t, a, ContentDigest("photosynthesis converts light"))
	assert.NotEqual(t, a, ContentDigest("photosynthesis converts light."))
}
