package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

const channelColumns = `id, name, handle, channel_id, total_videos, fetched_videos,
	filtered_videos, queued_videos, completed_videos, status, fetching_complete,
	is_active, last_synced_at, last_new_video_check, created_at`

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

func scanChannel(row interface{ Scan(...any) error }) (*model.Channel, error) {
	var ch model.Channel
	err := row.Scan(
		&ch.ID, &ch.Name, &ch.Handle, &ch.ChannelID, &ch.TotalVideos, &ch.FetchedVideos,
		&ch.FilteredVideos, &ch.QueuedVideos, &ch.CompletedVideos, &ch.Status, &ch.FetchingComplete,
		&ch.IsActive, &ch.LastSyncedAt, &ch.LastNewVideoCheck, &ch.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *ChannelRepo) CreateChannel(ctx context.Context, ch *model.Channel) (*model.Channel, error) {
	query := `
		INSERT INTO channels (name, handle, channel_id, status, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + channelColumns

	return scanChannel(r.pool.QueryRow(ctx, query, ch.Name, ch.Handle, ch.ChannelID, ch.Status, ch.IsActive))
}

func (r *ChannelRepo) GetChannel(ctx context.Context, id int) (*model.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE id = $1`
	return scanChannel(r.pool.QueryRow(ctx, query, id))
}

func (r *ChannelRepo) GetChannelByHandle(ctx context.Context, handle string) (*model.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE handle = $1`
	return scanChannel(r.pool.QueryRow(ctx, query, handle))
}

func (r *ChannelRepo) GetAllChannels(ctx context.Context) ([]model.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels ORDER BY created_at DESC`
	return r.queryChannels(ctx, query)
}

func (r *ChannelRepo) GetActiveChannels(ctx context.Context) ([]model.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE is_active = true ORDER BY id`
	return r.queryChannels(ctx, query)
}

func (r *ChannelRepo) queryChannels(ctx context.Context, query string, args ...any) ([]model.Channel, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []model.Channel
	for rows.Next() {
		ch, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, *ch)
	}
	return channels, rows.Err()
}

func (r *ChannelRepo) UpdateChannelStatus(ctx context.Context, id int, status string) error {
	_, err := r.pool.Exec(ctx, `UPDATE channels SET status = $1 WHERE id = $2`, status, id)
	return err
}

// MarkChannelFetched records the outcome of a completed fetch stage.
func (r *ChannelRepo) MarkChannelFetched(ctx context.Context, id, fetchedVideos int) error {
	query := `
		UPDATE channels
		SET fetched_videos = $1, total_videos = $1, fetching_complete = true,
		    status = $2, last_synced_at = NOW()
		WHERE id = $3`

	_, err := r.pool.Exec(ctx, query, fetchedVideos, model.ChannelFetched, id)
	return err
}

func (r *ChannelRepo) MarkChannelFiltered(ctx context.Context, id, filteredVideos int) error {
	query := `
		UPDATE channels SET filtered_videos = $1, status = $2 WHERE id = $3`

	_, err := r.pool.Exec(ctx, query, filteredVideos, model.ChannelFiltered, id)
	return err
}

func (r *ChannelRepo) MarkChannelQueued(ctx context.Context, id, queuedActions int) error {
	query := `
		UPDATE channels SET queued_videos = $1, status = $2 WHERE id = $3`

	_, err := r.pool.Exec(ctx, query, queuedActions, model.ChannelQueued, id)
	return err
}

func (r *ChannelRepo) MarkChannelCompleted(ctx context.Context, id, completedVideos int) error {
	query := `
		UPDATE channels SET completed_videos = $1, status = $2 WHERE id = $3`

	_, err := r.pool.Exec(ctx, query, completedVideos, model.ChannelCompleted, id)
	return err
}

// AddChannelVideos bumps the total video count after a sweep found new uploads.
func (r *ChannelRepo) AddChannelVideos(ctx context.Context, id, newVideos int) error {
	query := `
		UPDATE channels SET total_videos = total_videos + $1, last_synced_at = NOW() WHERE id = $2`

	_, err := r.pool.Exec(ctx, query, newVideos, id)
	return err
}

func (r *ChannelRepo) TouchNewVideoCheck(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `UPDATE channels SET last_new_video_check = NOW() WHERE id = $1`, id)
	return err
}

// DeleteChannel removes the channel; videos, queue items and processing logs
// cascade at the database level.
func (r *ChannelRepo) DeleteChannel(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM channels WHERE id = $1`, id)
	return err
}
