package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

// Fields where zero is a legal operator choice (a deterministic sampler,
// a disabled rate limiter, non-overlapping chunks) are pointers so an
// explicit zero in the file is distinguishable from an absent key. Load
// guarantees they are non-nil afterwards.
type Config struct {
	Port               int              `json:"port"`
	LogConfig          logger.LogConfig `json:"log_config"`
	CORSAllowOrigins   []string         `json:"cors_allow_origins"`
	MaxUploadBytes     int64            `json:"max_upload_bytes"`
	UploadRateWindowMS *int64           `json:"upload_rate_window_ms"`
	StatsLogCron       string           `json:"stats_log_cron"`
	FileStore          FileStoreConfig  `json:"file_store"`
	AI                 AIConfig         `json:"ai"`
	RAG                RAGConfig        `json:"rag"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type AIConfig struct {
	Provider      string      `json:"provider"`
	EmbedProvider string      `json:"embed_provider"`
	ChatModel     string      `json:"chat_model"`
	EmbedModel    string      `json:"embed_model"`
	Temperature   *float32    `json:"temperature"`
	MaxTokens     int         `json:"max_tokens"`
	EmbedCache    CacheConfig `json:"embed_cache"`
	Data          interface{} `json:"data"`
}

type CacheConfig struct {
	Size       int `json:"size"`
	TTLMinutes int `json:"ttl_minutes"`
}

type RAGConfig struct {
	ChunkSize        int  `json:"chunk_size"`
	ChunkOverlap     *int `json:"chunk_overlap"`
	TopK             int  `json:"top_k"`
	EmbedConcurrency int  `json:"embed_concurrency"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = 20 << 20
	}
	if cfg.UploadRateWindowMS == nil {
		cfg.UploadRateWindowMS = int64Ptr(1000)
	}
	if *cfg.UploadRateWindowMS < 0 {
		return nil, fmt.Errorf("upload_rate_window_ms must not be negative")
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
		cfg.FileStore.Data = map[string]interface{}{"dir": "./data/blobs"}
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "null"
	}
	if cfg.AI.EmbedProvider == "" {
		cfg.AI.EmbedProvider = cfg.AI.Provider
	}
	if cfg.AI.Temperature == nil {
		cfg.AI.Temperature = float32Ptr(0.2)
	}
	if cfg.AI.MaxTokens == 0 {
		cfg.AI.MaxTokens = 1024
	}
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = 1000
	}
	if cfg.RAG.ChunkOverlap == nil {
		cfg.RAG.ChunkOverlap = intPtr(200)
	}
	if *cfg.RAG.ChunkOverlap < 0 {
		return nil, fmt.Errorf("rag.chunk_overlap must not be negative")
	}
	if *cfg.RAG.ChunkOverlap >= cfg.RAG.ChunkSize {
		return nil, fmt.Errorf("rag.chunk_overlap must be smaller than rag.chunk_size")
	}
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = 4
	}
	if cfg.RAG.EmbedConcurrency == 0 {
		cfg.RAG.EmbedConcurrency = 4
	}
	return &cfg, nil
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

func float32Ptr(v float32) *float32 { return &v }
