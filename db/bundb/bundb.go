package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	leaderboarddb "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/infrastructure/repositories"
	rounddb "github.com/shepherdjay/gwg-bot/app/modules/round/infrastructure/repositories"
	"github.com/shepherdjay/gwg-bot/config"
	"github.com/shepherdjay/gwg-bot/internal/observability"
)

// DBService bundles the per-module repositories over a shared connection pool.
type DBService struct {
	RoundDB     *rounddb.RoundDBImpl
	StandingsDB *leaderboarddb.StandingsDBImpl
	db          *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// NewBunDBService initializes a new DBService with the provided Postgres configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig, metrics *observability.Metrics) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(
		(*rounddb.RoundRecord)(nil),
		(*rounddb.EntryRecord)(nil),
		(*leaderboarddb.StandingsRecord)(nil),
		(*leaderboarddb.MergedRound)(nil),
	)

	return &DBService{
		RoundDB:     &rounddb.RoundDBImpl{DB: db, Metrics: metrics},
		StandingsDB: &leaderboarddb.StandingsDBImpl{DB: db, Metrics: metrics},
		db:          db,
	}, nil
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return sqldb, nil
}
