package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// GetStats aggregates the dashboard overview numbers.
func (r *StatsRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM channels),
			(SELECT COUNT(*) FROM channels WHERE is_active),
			(SELECT COUNT(*) FROM videos),
			(SELECT COUNT(*) FROM videos WHERE processing_stage = $1),
			(SELECT COUNT(*) FROM activity_logs WHERE type = $2 AND created_at >= date_trunc('day', NOW())),
			(SELECT COUNT(*) FROM video_queue WHERE status = $3)`

	var s model.StatsResponse
	err := r.pool.QueryRow(ctx, query, model.StageCompleted, model.LogComment, model.QueuePending).Scan(
		&s.TotalChannels, &s.ActiveChannels, &s.TotalVideos, &s.CompletedVideos,
		&s.CommentsToday, &s.PendingQueue,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
