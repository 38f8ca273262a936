package factory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/daybook-hq/daybook/internal/config"
	storepkg "github.com/daybook-hq/daybook/internal/store"
	storepg "github.com/daybook-hq/daybook/internal/store/postgres"
	storelite "github.com/daybook-hq/daybook/internal/store/sqlite"
)

// NewStore opens the configured database, applies the schema and returns
// the matching store.Store. The *sql.DB is returned too so main can close
// it on shutdown.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, *sql.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		db, err := storelite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := storelite.Bootstrap(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Str("path", cfg.SQLitePath).Msg("store ready")
		return storelite.NewWithDB(db), db, nil

	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, nil, fmt.Errorf("DAYBOOK_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := storepg.Bootstrap(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Msg("store ready")
		return storepg.NewWithDB(db), db, nil

	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
