package data

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"go-linktrack/internal/biz"
	"go-linktrack/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

// Compile-time interface checks
var (
	_ biz.RecordRepo = (*recordRepo)(nil)
	_ biz.RecordRepo = (*sqlRecordRepo)(nil)
	_ biz.RecordRepo = (*redisRecordRepo)(nil)
)

// recordRepo writes every record to each configured backend. Counts are
// read from the first backend, SQL when present.
type recordRepo struct {
	stores []biz.RecordRepo
	log    *log.Helper
}

// NewRecordRepo creates the record repository over the configured backends.
func NewRecordRepo(d *Data, logger log.Logger) biz.RecordRepo {
	r := &recordRepo{log: log.NewHelper(logger)}
	if d.db != nil {
		r.stores = append(r.stores, &sqlRecordRepo{db: d.db})
	}
	if d.rdb != nil {
		r.stores = append(r.stores, &redisRecordRepo{rdb: d.rdb, stream: d.stream})
	}
	if len(r.stores) == 0 {
		r.log.Warn("no record backend configured, tracked records are only logged")
	}
	return r
}

func (r *recordRepo) Save(ctx context.Context, record *domain.TrackedRecord) error {
	var errs []error
	for _, store := range r.stores {
		if err := store.Save(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *recordRepo) Counts(ctx context.Context) (map[string]int64, error) {
	if len(r.stores) == 0 {
		return map[string]int64{}, nil
	}
	return r.stores[0].Counts(ctx)
}

type sqlRecordRepo struct {
	db *sql.DB
}

func (r *sqlRecordRepo) Save(ctx context.Context, record *domain.TrackedRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tracked_records (id, kind, category, action, label, counter_key, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.ID,
		string(record.Kind),
		record.Category,
		record.Action,
		record.Label,
		record.CounterKey(),
		record.OccurredAt.UTC(),
	)
	return err
}

func (r *sqlRecordRepo) Counts(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT counter_key, COUNT(*) FROM tracked_records GROUP BY counter_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			key   string
			count int64
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

// redisRecordRepo appends records to a stream and keeps per-key counters
// in a hash next to it.
type redisRecordRepo struct {
	rdb    *redis.Client
	stream string
}

func (r *redisRecordRepo) countsKey() string {
	return r.stream + ":counts"
}

func (r *redisRecordRepo) Save(ctx context.Context, record *domain.TrackedRecord) error {
	pipe := r.rdb.TxPipeline()
	pipe.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]interface{}{
			"id":          record.ID,
			"kind":        string(record.Kind),
			"category":    record.Category,
			"action":      record.Action,
			"label":       record.Label,
			"occurred_at": record.OccurredAt.UTC().Unix(),
		},
	})
	pipe.HIncrBy(ctx, r.countsKey(), record.CounterKey(), 1)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisRecordRepo) Counts(ctx context.Context) (map[string]int64, error) {
	raw, err := r.rdb.HGetAll(ctx, r.countsKey()).Result()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(raw))
	for key, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, nil
}
