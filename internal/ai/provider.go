package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	appErr "github.com/tantasui/decentradocs/internal/pkg/errors"
)

// IChatProvider produces a completion from a system instruction and a
// user turn. Sampling parameters are applied per call.
type IChatProvider interface {
	Name() string
	Chat(ctx context.Context, model string, system string, user string, temperature float32, maxTokens int) (string, error)
}

// IEmbedProvider maps text to a fixed-dimension vector.
type IEmbedProvider interface {
	Name() string
	Embed(ctx context.Context, model string, text string) ([]float32, error)
}

// IGenerator is a chat provider bound to a model and sampling settings.
type IGenerator interface {
	Generate(ctx context.Context, system string, user string) (string, error)
}

// IEmbedder is an embed provider bound to a model.
type IEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	ModelName() string
}

type generator struct {
	provider    IChatProvider
	model       string
	temperature float32
	maxTokens   int
}

func NewGenerator(p IChatProvider, model string, temperature float32, maxTokens int) IGenerator {
	return &generator{provider: p, model: model, temperature: temperature, maxTokens: maxTokens}
}

func (g *generator) Generate(ctx context.Context, system string, user string) (string, error) {
	return g.provider.Chat(ctx, g.model, system, user, g.temperature, g.maxTokens)
}

type embedder struct {
	provider IEmbedProvider
	model    string
}

func NewEmbedder(p IEmbedProvider, model string) IEmbedder {
	return &embedder{provider: p, model: model}
}

func (e *embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, appErr.ErrInvalid
	}
	return e.provider.Embed(ctx, e.model, text)
}

func (e *embedder) ModelName() string {
	return e.model
}

type ChatFactory func(args interface{}) (IChatProvider, error)

type EmbedFactory func(args interface{}) (IEmbedProvider, error)

var (
	chatRegistry  = map[string]ChatFactory{}
	embedRegistry = map[string]EmbedFactory{}
)

func Register(name string, factory ChatFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	chatRegistry[key] = factory
}

func RegisterEmbed(name string, factory EmbedFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	embedRegistry[key] = factory
}

func NewProvider(name string, args interface{}) (IChatProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	factory := chatRegistry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported ai provider: %s", name)
	}
	return factory(args)
}

func NewEmbedProvider(name string, args interface{}) (IEmbedProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("ai.embed_provider is required")
	}
	factory := embedRegistry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported ai embed provider: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("ai provider config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode ai provider config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode ai provider config: %w", err)
	}
	return nil
}
