package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 15000, cfg.LLM.MaxInputChars)
	assert.Equal(t, 10, cfg.Ingest.DefaultMaxQuestions)
	assert.Equal(t, 50, cfg.Ingest.MaxQuestionsLimit)
	assert.Equal(t, "vie+eng", cfg.Ingest.DefaultLanguage)
	assert.False(t, cfg.OCR.Enabled)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestFromViper_ProviderKeyFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	v := viper.New()
	setDefaults(v)
	v.Set("llm.provider", "OpenAI")

	cfg := fromViper(v)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("APP_DB_HOST", "oracle.internal")
	t.Setenv("APP_INGEST_DEFAULT_MAX_QUESTIONS", "7")

	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, "oracle.internal", cfg.DB.Host)
	assert.Equal(t, 7, cfg.Ingest.DefaultMaxQuestions)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{DB: DBConfig{User: "u", Password: "p", Host: "h", Port: 1521, DBName: "svc"}}
	assert.Equal(t, "oracle://u:p@h:1521/svc", cfg.GetDSN())
}

func TestParseTTLStringOrDefault(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 2*time.Hour, cfg.ParseTTLStringOrDefault("2h", time.Minute))
	assert.Equal(t, time.Minute, cfg.ParseTTLStringOrDefault("", time.Minute))
	assert.Equal(t, time.Minute, cfg.ParseTTLStringOrDefault("soon", time.Minute))
	assert.Equal(t, time.Minute, cfg.ParseTTLStringOrDefault("-5m", time.Minute))
}
