package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

func (r *AccountRepo) GetAccount(ctx context.Context, id int) (*model.Account, error) {
	query := `
		SELECT id, username, password, youtube_token, youtube_refresh_token, youtube_channel_id
		FROM users
		WHERE id = $1`

	var a model.Account
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Username, &a.Password,
		&a.YouTubeToken, &a.YouTubeRefreshToken, &a.YouTubeChannelID,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	query := `
		SELECT id, username, password, youtube_token, youtube_refresh_token, youtube_channel_id
		FROM users
		WHERE username = $1`

	var a model.Account
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&a.ID, &a.Username, &a.Password,
		&a.YouTubeToken, &a.YouTubeRefreshToken, &a.YouTubeChannelID,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) CreateAccount(ctx context.Context, username, password string) (*model.Account, error) {
	query := `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id`

	a := model.Account{Username: username, Password: password}
	if err := r.pool.QueryRow(ctx, query, username, password).Scan(&a.ID); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAccountTokens stores the OAuth token pair and the resolved channel id
// after a completed consent flow.
func (r *AccountRepo) UpdateAccountTokens(ctx context.Context, id int, accessToken, refreshToken, channelID string) error {
	query := `
		UPDATE users
		SET youtube_token = $1, youtube_refresh_token = $2, youtube_channel_id = $3
		WHERE id = $4`

	_, err := r.pool.Exec(ctx, query, accessToken, refreshToken, channelID, id)
	return err
}

// ClearAccountTokens disconnects the YouTube identity from the account.
func (r *AccountRepo) ClearAccountTokens(ctx context.Context, id int) error {
	query := `
		UPDATE users
		SET youtube_token = NULL, youtube_refresh_token = NULL, youtube_channel_id = NULL
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	return err
}
