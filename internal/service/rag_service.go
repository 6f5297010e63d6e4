package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/tantasui/decentradocs/internal/ai"
	"github.com/tantasui/decentradocs/internal/chunker"
	"github.com/tantasui/decentradocs/internal/extract"
	"github.com/tantasui/decentradocs/internal/model"
	appErr "github.com/tantasui/decentradocs/internal/pkg/errors"
	"github.com/tantasui/decentradocs/internal/retriever"
	"github.com/tantasui/decentradocs/internal/vectorstore"
)

const answerSystemPrompt = `You are a document assistant. Answer the question using ONLY the provided context.
If the context does not contain enough information to answer, say so explicitly.
Cite the sources you used with their [Source N] labels.`

const noDocumentsAnswer = "There are no documents to search. Upload a document before asking a question."

const excerptLimit = 200

// Config tunes the ingestion and retrieval pipeline.
type Config struct {
	ChunkSize        int
	ChunkOverlap     int
	TopK             int
	EmbedConcurrency int
}

func (c *Config) applyDefaults() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = chunker.DefaultChunkSize
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		c.ChunkOverlap = chunker.DefaultChunkOverlap
		if c.ChunkOverlap >= c.ChunkSize {
			c.ChunkOverlap = c.ChunkSize / 4
		}
	}
	if c.TopK <= 0 {
		c.TopK = 4
	}
	if c.EmbedConcurrency <= 0 {
		c.EmbedConcurrency = 4
	}
}

// RAGService owns the vector store and composes extraction, chunking,
// embedding, retrieval and answer synthesis. Ingest and Query are the
// two public flows; Delete and Stats are store maintenance.
type RAGService struct {
	store     *vectorstore.Store
	retriever *retriever.Retriever
	embedder  ai.IEmbedder
	generator ai.IGenerator
	cfg       Config
}

func NewRAGService(store *vectorstore.Store, embedder ai.IEmbedder, generator ai.IGenerator, cfg Config) *RAGService {
	cfg.applyDefaults()
	return &RAGService{
		store:     store,
		retriever: retriever.New(store),
		embedder:  embedder,
		generator: generator,
		cfg:       cfg,
	}
}

// Ingest extracts text from the document bytes, chunks it, embeds every
// chunk and commits the result with a single Put. Any failure along the
// way leaves the store untouched for docID: the chunk list is only
// written once it is complete.
func (s *RAGService) Ingest(ctx context.Context, docID string, filename string, metadata map[string]string, data []byte) (*model.IngestResult, error) {
	logger := logutil.GetLogger(ctx).With(zap.String("doc_id", docID), zap.String("filename", filename))

	text, err := extract.Extract(data, filename)
	if err != nil {
		logger.Error("text extraction failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", appErr.ErrExtraction, err)
	}
	if strings.TrimSpace(text) == "" {
		logger.Warn("document produced no text")
		return nil, appErr.ErrEmptyContent
	}

	pieces, err := chunker.Split(text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	vectors, err := s.embedAll(ctx, pieces)
	if err != nil {
		logger.Error("chunk embedding failed", zap.Error(err))
		return nil, err
	}

	chunks := make([]model.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = model.Chunk{
			DocumentID: docID,
			Index:      i,
			Text:       piece,
			Embedding:  vectors[i],
			Filename:   filename,
			Metadata:   cloneMetadata(metadata),
		}
	}
	s.store.Put(docID, chunks)

	logger.Info("document ingested", zap.Int("chunks", len(chunks)), zap.Int("text_length", len([]rune(text))))
	return &model.IngestResult{
		DocumentID: docID,
		Filename:   filename,
		ChunkCount: len(chunks),
		TextLength: len([]rune(text)),
	}, nil
}

// embedAll computes one embedding per text, at most cfg.EmbedConcurrency
// provider calls in flight. Results land at their original index, so the
// committed chunk list keeps text order no matter how calls complete.
func (s *RAGService) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	sem := make(chan struct{}, s.cfg.EmbedConcurrency)
	errCh := make(chan error, len(texts))
	var wg sync.WaitGroup

	for i := range texts {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			v, err := s.embedder.Embed(ctx, texts[idx])
			if err != nil {
				errCh <- err
				return
			}
			vectors[idx] = v
		}(i)
	}
	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return nil, err
	}

	for i := 1; i < len(vectors); i++ {
		if len(vectors[i]) != len(vectors[0]) {
			return nil, fmt.Errorf("%w: inconsistent embedding dimensions", appErr.ErrProvider)
		}
	}
	return vectors, nil
}

// Query embeds the question once, retrieves the top chunks and
// synthesizes a cited answer. docIDs, when non-empty, restricts the
// search to those documents.
func (s *RAGService) Query(ctx context.Context, question string, docIDs []string, topK int) (*model.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, appErr.ErrInvalid
	}
	if topK <= 0 {
		topK = s.cfg.TopK
	}

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, err
	}
	ranked, err := s.retriever.Search(queryVec, docIDs, topK)
	if err != nil {
		return nil, err
	}
	return s.synthesize(ctx, question, ranked)
}

// synthesize builds the [Source N] grounding block and issues one chat
// call. With nothing retrieved it short-circuits to a canned answer so
// no completion call is spent on an ungroundable question.
func (s *RAGService) synthesize(ctx context.Context, question string, ranked []model.ScoredChunk) (*model.Answer, error) {
	if len(ranked) == 0 {
		return &model.Answer{Text: noDocumentsAnswer, Sources: []model.SourceRef{}}, nil
	}

	var sb strings.Builder
	sources := make([]model.SourceRef, 0, len(ranked))
	for i, rc := range ranked {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[Source %d]\n%s", i+1, rc.Chunk.Text)
		sources = append(sources, model.SourceRef{
			DocumentID: rc.Chunk.DocumentID,
			Excerpt:    excerpt(rc.Chunk.Text),
			ChunkIndex: rc.Chunk.Index,
			Score:      rc.Score,
		})
	}
	user := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", sb.String(), question)

	text, err := s.generator.Generate(ctx, answerSystemPrompt, user)
	if err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("answer synthesized", zap.Int("sources", len(sources)))
	return &model.Answer{Text: text, Sources: sources}, nil
}

// Delete drops all chunks for docID and returns how many were removed.
func (s *RAGService) Delete(ctx context.Context, docID string) int {
	removed := s.store.Delete(docID)
	logutil.GetLogger(ctx).Info("document deleted", zap.String("doc_id", docID), zap.Int("chunks_removed", removed))
	return removed
}

func (s *RAGService) Stats(ctx context.Context) model.StoreStats {
	return s.store.Stats()
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLimit {
		return text
	}
	return string(runes[:excerptLimit]) + "..."
}

func cloneMetadata(metadata map[string]string) map[string]string {
	if len(metadata) == 0 {
		return nil
	}
	clone := make(map[string]string, len(metadata))
	for k, v := range metadata {
		clone[k] = v
	}
	return clone
}
