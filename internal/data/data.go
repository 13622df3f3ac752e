package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go-linktrack/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(NewData, NewRecordRepo, NewEventBusSink)

const defaultStream = "link:events"

const createTrackedRecords = `CREATE TABLE IF NOT EXISTS tracked_records (
	id          TEXT PRIMARY KEY,
	kind        TEXT NOT NULL,
	category    TEXT NOT NULL,
	action      TEXT NOT NULL DEFAULT '',
	label       TEXT NOT NULL DEFAULT '',
	counter_key TEXT NOT NULL,
	occurred_at TIMESTAMP NOT NULL
)`

// Data holds the optional record backends.
type Data struct {
	db     *sql.DB
	rdb    *redis.Client
	stream string
}

// NewData opens the configured backends. A backend without a source is
// skipped.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)

	var (
		db  *sql.DB
		rdb *redis.Client
		err error
	)
	stream := defaultStream

	if c != nil && c.Database != nil && c.Database.Source != "" {
		db, err = sql.Open(c.Database.Driver, c.Database.Source)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s database: %w", c.Database.Driver, err)
		}
	}
	if c != nil && c.Redis != nil && c.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.Db,
		})
		if c.Redis.Stream != "" {
			stream = c.Redis.Stream
		}
	}

	d, err := NewDataWithClients(context.Background(), db, rdb, stream)
	if err != nil {
		if cerr := closeClients(db, rdb); cerr != nil {
			helper.Error(cerr)
		}
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("message", "closing the data resources")
		if err := closeClients(d.db, d.rdb); err != nil {
			helper.Error(err)
		}
	}

	return d, cleanup, nil
}

// closeClients closes whichever clients are set.
func closeClients(db *sql.DB, rdb *redis.Client) error {
	var errs []error
	if db != nil {
		errs = append(errs, db.Close())
	}
	if rdb != nil {
		errs = append(errs, rdb.Close())
	}
	return errors.Join(errs...)
}

// NewDataWithClients wraps already opened clients and creates the schema.
// Either client may be nil.
func NewDataWithClients(ctx context.Context, db *sql.DB, rdb *redis.Client, stream string) (*Data, error) {
	if db != nil {
		if _, err := db.ExecContext(ctx, createTrackedRecords); err != nil {
			return nil, fmt.Errorf("create tracked_records: %w", err)
		}
	}
	if stream == "" {
		stream = defaultStream
	}
	return &Data{db: db, rdb: rdb, stream: stream}, nil
}
