package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

type LogRepo struct {
	pool *pgxpool.Pool
}

func NewLogRepo(pool *pgxpool.Pool) *LogRepo {
	return &LogRepo{pool: pool}
}

func (r *LogRepo) CreateActivityLog(ctx context.Context, logType, message string, videoID *string, channelID *int) error {
	query := `
		INSERT INTO activity_logs (type, message, video_id, channel_id)
		VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, logType, message, videoID, channelID)
	return err
}

func (r *LogRepo) GetRecentActivityLogs(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	query := `
		SELECT id, type, message, video_id, channel_id, created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.ActivityLog
	for rows.Next() {
		var l model.ActivityLog
		if err := rows.Scan(&l.ID, &l.Type, &l.Message, &l.VideoID, &l.ChannelID, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CountCommentsToday gates the scheduler's daily cap. The day boundary is the
// database's current date.
func (r *LogRepo) CountCommentsToday(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM activity_logs
		WHERE type = $1 AND created_at >= date_trunc('day', NOW())`

	var count int
	err := r.pool.QueryRow(ctx, query, model.LogComment).Scan(&count)
	return count, err
}

func (r *LogRepo) CreateProcessingLog(ctx context.Context, l *model.ProcessingLog) error {
	query := `
		INSERT INTO processing_logs (channel_id, video_id, run_id, stage, status, message)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query, l.ChannelID, l.VideoID, l.RunID, l.Stage, l.Status, l.Message)
	return err
}

func (r *LogRepo) GetProcessingLogs(ctx context.Context, channelID, limit int) ([]model.ProcessingLog, error) {
	query := `
		SELECT id, channel_id, video_id, run_id, stage, status, message, created_at
		FROM processing_logs
		WHERE channel_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, channelID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.ProcessingLog
	for rows.Next() {
		var l model.ProcessingLog
		if err := rows.Scan(&l.ID, &l.ChannelID, &l.VideoID, &l.RunID, &l.Stage, &l.Status, &l.Message, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
