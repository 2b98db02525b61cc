package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

type SettingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// GetSettings returns the singleton settings row, inserting the defaults on
// first access.
func (r *SettingsRepo) GetSettings(ctx context.Context) (*model.AutomationSettings, error) {
	query := `
		SELECT id, is_active, delay_minutes, ai_prompt, max_comments_per_day, last_run_at
		FROM automation_settings
		ORDER BY id
		LIMIT 1`

	var s model.AutomationSettings
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.ID, &s.IsActive, &s.DelayMinutes, &s.AIPrompt, &s.MaxCommentsPerDay, &s.LastRunAt,
	)
	if err == pgx.ErrNoRows {
		return r.insertDefaults(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepo) insertDefaults(ctx context.Context) (*model.AutomationSettings, error) {
	s := model.DefaultSettings()
	query := `
		INSERT INTO automation_settings (is_active, delay_minutes, ai_prompt, max_comments_per_day)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, s.IsActive, s.DelayMinutes, s.AIPrompt, s.MaxCommentsPerDay).Scan(&s.ID)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepo) UpdateSettings(ctx context.Context, s *model.AutomationSettings) error {
	query := `
		UPDATE automation_settings
		SET is_active = $1, delay_minutes = $2, ai_prompt = $3, max_comments_per_day = $4
		WHERE id = $5`

	_, err := r.pool.Exec(ctx, query, s.IsActive, s.DelayMinutes, s.AIPrompt, s.MaxCommentsPerDay, s.ID)
	return err
}

// SetAutomationActive flips only the persisted isActive flag.
func (r *SettingsRepo) SetAutomationActive(ctx context.Context, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE automation_settings SET is_active = $1 WHERE id = (SELECT MIN(id) FROM automation_settings)`,
		active)
	return err
}

func (r *SettingsRepo) TouchLastRun(ctx context.Context) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE automation_settings SET last_run_at = NOW() WHERE id = (SELECT MIN(id) FROM automation_settings)`)
	return err
}
