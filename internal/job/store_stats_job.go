package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/tantasui/decentradocs/internal/service"
)

// StoreStatsJob periodically logs the vector store size. The index is
// in-memory only, so this is the operator's view into how much has been
// ingested since the process started.
type StoreStatsJob struct {
	rag *service.RAGService
}

func NewStoreStatsJob(rag *service.RAGService) *StoreStatsJob {
	return &StoreStatsJob{rag: rag}
}

func (j *StoreStatsJob) Name() string {
	return "store_stats"
}

func (j *StoreStatsJob) Run(ctx context.Context) error {
	if j.rag == nil {
		return nil
	}
	stats := j.rag.Stats(ctx)
	logutil.GetLogger(ctx).Info("vector store stats",
		zap.Int("documents", stats.DocumentCount),
		zap.Int("chunks", stats.ChunkCount),
	)
	return nil
}
