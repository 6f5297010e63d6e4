package embedcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	calls int
	err   error
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []float32{float32(len(text)), 1}, nil
}

func (c *countingEmbedder) ModelName() string { return "counting" }

func TestCacheAvoidsRepeatEmbedCalls(t *testing.T) {
	inner := &countingEmbedder{}
	e := WrapLruCacheToEmbedder(inner, 16, time.Minute)
	ctx := context.Background()

	first, err := e.Embed(ctx, "hello")
	require.NoError(t, err)
	second, err := e.Embed(ctx, "hello")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, inner.calls)

	_, err = e.Embed(ctx, "different")
	require.NoError(t, err)
	require.Equal(t, 2, inner.calls)
}

func TestCacheReturnsCopies(t *testing.T) {
	inner := &countingEmbedder{}
	e := WrapLruCacheToEmbedder(inner, 16, time.Minute)
	ctx := context.Background()

	_, err := e.Embed(ctx, "hello")
	require.NoError(t, err)
	got, err := e.Embed(ctx, "hello")
	require.NoError(t, err)
	got[0] = -999

	again, err := e.Embed(ctx, "hello")
	require.NoError(t, err)
	require.NotEqual(t, float32(-999), again[0])
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	inner := &countingEmbedder{err: errors.New("boom")}
	e := WrapLruCacheToEmbedder(inner, 16, time.Minute)
	ctx := context.Background()

	_, err := e.Embed(ctx, "hello")
	require.Error(t, err)

	inner.err = nil
	_, err = e.Embed(ctx, "hello")
	require.NoError(t, err)
	require.Equal(t, 2, inner.calls)
}

func TestWrapDisabledPassThrough(t *testing.T) {
	inner := &countingEmbedder{}
	require.Equal(t, inner, WrapLruCacheToEmbedder(inner, 0, time.Minute))
	require.Equal(t, inner, WrapLruCacheToEmbedder(inner, 16, 0))
	require.Nil(t, WrapLruCacheToEmbedder(nil, 16, time.Minute))
}
