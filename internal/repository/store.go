package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Store bundles every repository behind one handle. The service layer depends
// on the interfaces it declares itself; *Store satisfies all of them.
type Store struct {
	*AccountRepo
	*ChannelRepo
	*VideoRepo
	*QueueRepo
	*SettingsRepo
	*LogRepo
	*QuotaRepo
	*StatsRepo
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		AccountRepo:  NewAccountRepo(pool),
		ChannelRepo:  NewChannelRepo(pool),
		VideoRepo:    NewVideoRepo(pool),
		QueueRepo:    NewQueueRepo(pool),
		SettingsRepo: NewSettingsRepo(pool),
		LogRepo:      NewLogRepo(pool),
		QuotaRepo:    NewQuotaRepo(pool),
		StatsRepo:    NewStatsRepo(pool),
	}
}
