package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

const videoColumns = `id, video_id, channel_id, title, description, published_at,
	has_commented, has_liked, needs_comment, needs_like, comment_text, commented_at,
	processing_stage, status, error_message`

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

func scanVideo(row interface{ Scan(...any) error }) (*model.Video, error) {
	var v model.Video
	err := row.Scan(
		&v.ID, &v.VideoID, &v.ChannelID, &v.Title, &v.Description, &v.PublishedAt,
		&v.HasCommented, &v.HasLiked, &v.NeedsComment, &v.NeedsLike, &v.CommentText, &v.CommentedAt,
		&v.ProcessingStage, &v.Status, &v.ErrorMessage,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateVideo inserts a video unless its external id is already present.
// Returns true when a row was actually inserted.
func (r *VideoRepo) CreateVideo(ctx context.Context, v *model.Video) (bool, error) {
	query := `
		INSERT INTO videos (video_id, channel_id, title, description, published_at,
			needs_comment, needs_like, processing_stage, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (video_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		v.VideoID, v.ChannelID, v.Title, v.Description, v.PublishedAt,
		v.NeedsComment, v.NeedsLike, v.ProcessingStage, v.Status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *VideoRepo) GetVideo(ctx context.Context, videoID string) (*model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE video_id = $1`
	return scanVideo(r.pool.QueryRow(ctx, query, videoID))
}

func (r *VideoRepo) GetVideosByChannel(ctx context.Context, channelID int) ([]model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE channel_id = $1 ORDER BY published_at DESC`
	return r.queryVideos(ctx, query, channelID)
}

// GetVideosNeedingAction returns filtered videos still awaiting a comment or like.
func (r *VideoRepo) GetVideosNeedingAction(ctx context.Context, channelID int) ([]model.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE channel_id = $1 AND processing_stage = $2 AND (needs_comment OR needs_like)
		ORDER BY published_at DESC`

	return r.queryVideos(ctx, query, channelID, model.StageFiltered)
}

// GetNextPendingVideo returns the single oldest pending, not-yet-commented
// video system-wide, or nil when none exists.
func (r *VideoRepo) GetNextPendingVideo(ctx context.Context) (*model.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE status = $1 AND has_commented = false AND needs_comment = true
		ORDER BY published_at ASC
		LIMIT 1`

	v, err := scanVideo(r.pool.QueryRow(ctx, query, model.VideoPending))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VideoRepo) GetLatestVideoForChannel(ctx context.Context, channelID int) (*model.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE channel_id = $1
		ORDER BY published_at DESC
		LIMIT 1`

	v, err := scanVideo(r.pool.QueryRow(ctx, query, channelID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VideoRepo) queryVideos(ctx context.Context, query string, args ...any) ([]model.Video, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}

// UpdateVideoEngagement records the filter-stage engagement check outcome.
// When an existing comment is discovered its text is stored alongside, so
// has_commented never ends up true without comment_text.
func (r *VideoRepo) UpdateVideoEngagement(ctx context.Context, videoID string, hasCommented, hasLiked, needsComment, needsLike bool, commentText *string, stage string) error {
	query := `
		UPDATE videos
		SET has_commented = $1, has_liked = $2, needs_comment = $3, needs_like = $4,
		    comment_text = COALESCE($5, comment_text),
		    commented_at = CASE WHEN $1 AND commented_at IS NULL THEN NOW() ELSE commented_at END,
		    processing_stage = $6
		WHERE video_id = $7`

	_, err := r.pool.Exec(ctx, query, hasCommented, hasLiked, needsComment, needsLike, commentText, stage, videoID)
	return err
}

func (r *VideoRepo) UpdateVideoStage(ctx context.Context, videoID, stage string) error {
	_, err := r.pool.Exec(ctx, `UPDATE videos SET processing_stage = $1 WHERE video_id = $2`, stage, videoID)
	return err
}

func (r *VideoRepo) UpdateVideoStatus(ctx context.Context, videoID, status string, errorMessage *string) error {
	query := `UPDATE videos SET status = $1, error_message = $2 WHERE video_id = $3`
	_, err := r.pool.Exec(ctx, query, status, errorMessage, videoID)
	return err
}

// UpdateVideoComment records a successfully posted comment. Setting
// has_commented together with comment_text and commented_at keeps the data
// invariant intact.
func (r *VideoRepo) UpdateVideoComment(ctx context.Context, videoID, commentText string) error {
	query := `
		UPDATE videos
		SET has_commented = true, needs_comment = false, comment_text = $1, commented_at = NOW()
		WHERE video_id = $2`

	_, err := r.pool.Exec(ctx, query, commentText, videoID)
	return err
}

func (r *VideoRepo) UpdateVideoLike(ctx context.Context, videoID string) error {
	query := `UPDATE videos SET has_liked = true, needs_like = false WHERE video_id = $1`
	_, err := r.pool.Exec(ctx, query, videoID)
	return err
}

func (r *VideoRepo) GetCompletedVideosCount(ctx context.Context, channelID int) (int, error) {
	query := `SELECT COUNT(*) FROM videos WHERE channel_id = $1 AND processing_stage = $2`

	var count int
	err := r.pool.QueryRow(ctx, query, channelID, model.StageCompleted).Scan(&count)
	return count, err
}

// GetChannelVideoStats aggregates per-stage counts in one round trip.
func (r *VideoRepo) GetChannelVideoStats(ctx context.Context, channelID int) (model.ChannelVideoStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE processing_stage IN ($2, $3, $4, $5)),
			COUNT(*) FILTER (WHERE processing_stage IN ($3, $4, $5)),
			COUNT(*) FILTER (WHERE processing_stage = $4),
			COUNT(*) FILTER (WHERE processing_stage = $5),
			COUNT(*) FILTER (WHERE needs_comment AND NOT has_commented),
			COUNT(*) FILTER (WHERE needs_like AND NOT has_liked),
			COUNT(*) FILTER (WHERE has_commented),
			COUNT(*) FILTER (WHERE has_liked)
		FROM videos
		WHERE channel_id = $1`

	var s model.ChannelVideoStats
	err := r.pool.QueryRow(ctx, query, channelID,
		model.StageFetched, model.StageFiltered, model.StageQueued, model.StageCompleted,
	).Scan(
		&s.TotalVideos, &s.FetchedVideos, &s.FilteredVideos, &s.QueuedVideos, &s.CompletedVideos,
		&s.NeedsComment, &s.NeedsLike, &s.Commented, &s.Liked,
	)
	return s, err
}
