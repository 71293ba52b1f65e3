package config

import (
	"os"
	"strconv"
)

type Config struct {
	Provider            string
	Model               string
	MaxOutputTokens     int
	Style               string
	IncludeReference    bool
	MaxInputRunes       int
	SimilarityThreshold float64
	RetryBackoffSecs    int
	GenerateTimeoutSecs int
	LookupTimeoutSecs   int
	GeminiBaseURL       string
	OpenAIBaseURL       string
	GroqBaseURL         string
	CrossrefBaseURL     string
	DatabaseURL         string
	LogLevel            string
	LogFormat           string
}

func Load() Config {
	return Config{
		Provider:            getenv("PAPERBRIEF_PROVIDER", "gemini"),
		Model:               getenv("PAPERBRIEF_MODEL", ""),
		MaxOutputTokens:     getenvInt("PAPERBRIEF_MAX_OUTPUT_TOKENS", 1024),
		Style:               getenv("PAPERBRIEF_STYLE", "concise"),
		IncludeReference:    getenvBool("PAPERBRIEF_INCLUDE_REFERENCE", true),
		MaxInputRunes:       getenvInt("PAPERBRIEF_MAX_INPUT_RUNES", 60000),
		SimilarityThreshold: getenvFloat("PAPERBRIEF_SIMILARITY_THRESHOLD", 0.5),
		RetryBackoffSecs:    getenvInt("PAPERBRIEF_RETRY_BACKOFF_SECONDS", 2),
		GenerateTimeoutSecs: getenvInt("PAPERBRIEF_GENERATE_TIMEOUT_SECONDS", 120),
		LookupTimeoutSecs:   getenvInt("PAPERBRIEF_LOOKUP_TIMEOUT_SECONDS", 10),
		GeminiBaseURL:       getenv("PAPERBRIEF_GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		OpenAIBaseURL:       getenv("PAPERBRIEF_OPENAI_BASE_URL", "https://api.openai.com"),
		GroqBaseURL:         getenv("PAPERBRIEF_GROQ_BASE_URL", "https://api.groq.com/openai"),
		CrossrefBaseURL:     getenv("PAPERBRIEF_CROSSREF_BASE_URL", "https://api.crossref.org"),
		DatabaseURL:         getenv("PAPERBRIEF_DATABASE_URL", ""),
		LogLevel:            getenv("PAPERBRIEF_LOG_LEVEL", "info"),
		LogFormat:           getenv("PAPERBRIEF_LOG_FORMAT", "console"),
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(k string, fallback float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getenvBool(k string, fallback bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
