package ai

import (
	"context"

	appErr "github.com/tantasui/decentradocs/internal/pkg/errors"
)

// nullProvider stands in when no AI backend is configured. Every call
// fails with ErrUnavailable, so callers can rely on the provider being
// non-nil and still fail fast.
type nullProvider struct{}

func (nullProvider) Name() string {
	return "null"
}

func (nullProvider) Chat(ctx context.Context, model string, system string, user string, temperature float32, maxTokens int) (string, error) {
	return "", appErr.ErrUnavailable
}

func (nullProvider) Embed(ctx context.Context, model string, text string) ([]float32, error) {
	return nil, appErr.ErrUnavailable
}

// NewNullProvider returns the no-op chat provider.
func NewNullProvider() IChatProvider {
	return nullProvider{}
}

// NewNullEmbedProvider returns the no-op embed provider.
func NewNullEmbedProvider() IEmbedProvider {
	return nullProvider{}
}

func init() {
	Register("null", func(args interface{}) (IChatProvider, error) {
		return nullProvider{}, nil
	})
	RegisterEmbed("null", func(args interface{}) (IEmbedProvider, error) {
		return nullProvider{}, nil
	})
}
