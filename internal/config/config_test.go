package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"port": 8080}`))
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "info", cfg.LogConfig.Level)
	require.Equal(t, int64(20<<20), cfg.MaxUploadBytes)
	require.Equal(t, "local", cfg.FileStore.Type)
	require.Equal(t, "null", cfg.AI.Provider)
	require.Equal(t, "null", cfg.AI.EmbedProvider)
	require.Equal(t, float32(0.2), *cfg.AI.Temperature)
	require.Equal(t, 1024, cfg.AI.MaxTokens)
	require.Equal(t, int64(1000), *cfg.UploadRateWindowMS)
	require.Equal(t, 1000, cfg.RAG.ChunkSize)
	require.Equal(t, 200, *cfg.RAG.ChunkOverlap)
	require.Equal(t, 4, cfg.RAG.TopK)
	require.Equal(t, 4, cfg.RAG.EmbedConcurrency)
}

func TestLoadEmbedProviderFollowsProvider(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"port": 8080, "ai": {"provider": "openai"}}`))
	require.NoError(t, err)
	require.Equal(t, "openai", cfg.AI.EmbedProvider)
}

func TestLoadKeepsExplicitZeroes(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{
		"port": 8080,
		"upload_rate_window_ms": 0,
		"ai": {"temperature": 0},
		"rag": {"chunk_overlap": 0}
	}`))
	require.NoError(t, err)

	require.Equal(t, float32(0), *cfg.AI.Temperature)
	require.Equal(t, 0, *cfg.RAG.ChunkOverlap)
	require.Equal(t, int64(0), *cfg.UploadRateWindowMS)
}

func TestLoadRejectsNegativeOverlap(t *testing.T) {
	_, err := Load(writeConfig(t, `{"port": 8080, "rag": {"chunk_overlap": -1}}`))
	require.Error(t, err)
}

func TestLoadRejectsNegativeRateWindow(t *testing.T) {
	_, err := Load(writeConfig(t, `{"port": 8080, "upload_rate_window_ms": -5}`))
	require.Error(t, err)
}

func TestLoadRejectsMissingPort(t *testing.T) {
	_, err := Load(writeConfig(t, `{}`))
	require.Error(t, err)
}

func TestLoadRejectsOverlapNotSmallerThanSize(t *testing.T) {
	_, err := Load(writeConfig(t, `{"port": 8080, "rag": {"chunk_size": 100, "chunk_overlap": 100}}`))
	require.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{
		"port": 9090,
		"cors_allow_origins": ["https://app.example.com"],
		"max_upload_bytes": 1048576,
		"upload_rate_window_ms": 250,
		"stats_log_cron": "0 * * * *",
		"file_store": {"type": "s3", "data": {"bucket": "docs"}},
		"ai": {
			"provider": "openai",
			"embed_provider": "gemini",
			"chat_model": "gpt-4o-mini",
			"embed_model": "text-embedding-3-small",
			"temperature": 0.7,
			"max_tokens": 2048,
			"embed_cache": {"size": 512, "ttl_minutes": 30},
			"data": {"api_key": "sk-test"}
		},
		"rag": {"chunk_size": 800, "chunk_overlap": 100, "top_k": 6, "embed_concurrency": 8}
	}`))
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, []string{"https://app.example.com"}, cfg.CORSAllowOrigins)
	require.Equal(t, "0 * * * *", cfg.StatsLogCron)
	require.Equal(t, int64(250), *cfg.UploadRateWindowMS)
	require.Equal(t, "s3", cfg.FileStore.Type)
	require.Equal(t, "gemini", cfg.AI.EmbedProvider)
	require.Equal(t, float32(0.7), *cfg.AI.Temperature)
	require.Equal(t, 512, cfg.AI.EmbedCache.Size)
	require.Equal(t, 800, cfg.RAG.ChunkSize)
	require.Equal(t, 6, cfg.RAG.TopK)
	require.Equal(t, 8, cfg.RAG.EmbedConcurrency)
}
