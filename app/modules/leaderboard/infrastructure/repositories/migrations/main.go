package leaderboardmigrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()

func init() {
	// Each registered migration gets a stable ID derived from its file name.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
