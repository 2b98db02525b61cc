package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

type QuotaRepo struct {
	pool *pgxpool.Pool
}

func NewQuotaRepo(pool *pgxpool.Pool) *QuotaRepo {
	return &QuotaRepo{pool: pool}
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// GetTodayQuota returns today's counters, creating the row if absent.
func (r *QuotaRepo) GetTodayQuota(ctx context.Context) (*model.APIQuota, error) {
	query := `
		INSERT INTO api_quota (date)
		VALUES ($1)
		ON CONFLICT (date) DO UPDATE SET date = EXCLUDED.date
		RETURNING id, date, youtube_quota_used, gemini_quota_used`

	var q model.APIQuota
	err := r.pool.QueryRow(ctx, query, today()).Scan(&q.ID, &q.Date, &q.YouTubeQuotaUsed, &q.GeminiQuotaUsed)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuotaRepo) AddYouTubeQuota(ctx context.Context, units int) error {
	query := `
		INSERT INTO api_quota (date, youtube_quota_used)
		VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET youtube_quota_used = api_quota.youtube_quota_used + $2`

	_, err := r.pool.Exec(ctx, query, today(), units)
	return err
}

func (r *QuotaRepo) AddGeminiQuota(ctx context.Context, units int) error {
	query := `
		INSERT INTO api_quota (date, gemini_quota_used)
		VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET gemini_quota_used = api_quota.gemini_quota_used + $2`

	_, err := r.pool.Exec(ctx, query, today(), units)
	return err
}
