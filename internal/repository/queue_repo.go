package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

const queueColumns = `id, channel_id, video_id, action, priority, status, attempts,
	scheduled_at, error_message, created_at`

type QueueRepo struct {
	pool *pgxpool.Pool
}

func NewQueueRepo(pool *pgxpool.Pool) *QueueRepo {
	return &QueueRepo{pool: pool}
}

func scanQueueItem(row interface{ Scan(...any) error }) (*model.QueueItem, error) {
	var q model.QueueItem
	err := row.Scan(
		&q.ID, &q.ChannelID, &q.VideoID, &q.Action, &q.Priority, &q.Status, &q.Attempts,
		&q.ScheduledAt, &q.ErrorMessage, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QueueRepo) EnqueueAction(ctx context.Context, channelID int, videoID, action string, priority int) error {
	query := `
		INSERT INTO video_queue (channel_id, video_id, action, priority)
		VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, channelID, videoID, action, priority)
	return err
}

func (r *QueueRepo) GetQueueItem(ctx context.Context, id int) (*model.QueueItem, error) {
	query := `SELECT ` + queueColumns + ` FROM video_queue WHERE id = $1`
	return scanQueueItem(r.pool.QueryRow(ctx, query, id))
}

// GetPendingQueueItems returns the channel's pending actions in execution
// order: priority first (comment before like), then schedule time.
func (r *QueueRepo) GetPendingQueueItems(ctx context.Context, channelID int) ([]model.QueueItem, error) {
	query := `
		SELECT ` + queueColumns + `
		FROM video_queue
		WHERE channel_id = $1 AND status = $2
		ORDER BY priority ASC, scheduled_at ASC`

	rows, err := r.pool.Query(ctx, query, channelID, model.QueuePending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.QueueItem
	for rows.Next() {
		q, err := scanQueueItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *q)
	}
	return items, rows.Err()
}

func (r *QueueRepo) UpdateQueueItemStatus(ctx context.Context, id int, status string, errorMessage *string) error {
	query := `UPDATE video_queue SET status = $1, error_message = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, status, errorMessage, id)
	return err
}

func (r *QueueRepo) IncrementQueueItemAttempts(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `UPDATE video_queue SET attempts = attempts + 1 WHERE id = $1`, id)
	return err
}

// RequeueItem puts a failed item back to pending for another execution pass.
func (r *QueueRepo) RequeueItem(ctx context.Context, id int) error {
	query := `
		UPDATE video_queue
		SET status = $1, error_message = NULL, scheduled_at = NOW()
		WHERE id = $2`

	_, err := r.pool.Exec(ctx, query, model.QueuePending, id)
	return err
}

func (r *QueueRepo) GetPendingQueueCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM video_queue WHERE status = $1`, model.QueuePending).Scan(&count)
	return count, err
}
