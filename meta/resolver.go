package meta

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"sharding/internal/errs"
	"sharding/router"
)

const defaultExpiration = 10 * time.Minute

type ResolverOption func(r *Resolver)

// Resolver 从数据库里面读取列的元数据，补齐 router.Column 的自增标记
type Resolver struct {
	db         *sql.DB
	dialect    Dialect
	mdls       []Middleware
	cache      Cache
	expiration time.Duration
	g          singleflight.Group
}

func Open(driver string, dsn string, opts ...ResolverOption) (*Resolver, error) {
	dialect, err := dialectOf(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	// 用户传入的 option 可以覆盖掉从 DSN 推断出来的方言
	opts = append([]ResolverOption{WithDialect(dialect)}, opts...)
	return OpenDB(db, opts...), nil
}

func MustOpen(driver string, dsn string, opts ...ResolverOption) *Resolver {
	res, err := Open(driver, dsn, opts...)
	if err != nil {
		panic(err)
	}
	return res
}

func OpenDB(db *sql.DB, opts ...ResolverOption) *Resolver {
	res := &Resolver{
		db:         db,
		dialect:    MySQL(""),
		expiration: defaultExpiration,
	}
	for _, opt := range opts {
		opt(res)
	}
	if res.cache == nil {
		res.cache = NewLocalCache(res.expiration, time.Minute)
	}
	return res
}

func WithDialect(dialect Dialect) ResolverOption {
	return func(r *Resolver) {
		r.dialect = dialect
	}
}

func WithMiddleware(mdls ...Middleware) ResolverOption {
	return func(r *Resolver) {
		r.mdls = mdls
	}
}

func WithCache(c Cache) ResolverOption {
	return func(r *Resolver) {
		r.cache = c
	}
}

func WithExpiration(expiration time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.expiration = expiration
	}
}

// Column 返回带自增标记的列，先查缓存，缓存没有再查数据库
// 缓存出错不影响结果，以数据库为准
func (r *Resolver) Column(ctx context.Context, table string, column string) (router.Column, error) {
	key := cacheKey(table, column)
	auto, err := r.cache.Get(ctx, key)
	if err == nil {
		return newColumn(column, table, auto), nil
	}
	val, err, _ := r.g.Do(key, func() (interface{}, error) {
		query, args := r.dialect.buildQuery(table, column)
		res := r.handler()(ctx, &ResolveContext{
			Dialect: r.dialect.Name(),
			Table:   table,
			Column:  column,
			Query:   query,
			Args:    args,
		})
		if res.Err != nil {
			return nil, res.Err
		}
		_ = r.cache.Set(ctx, key, res.AutoIncrement, r.expiration)
		return res.AutoIncrement, nil
	})
	if err != nil {
		return router.Column{}, err
	}
	return newColumn(column, table, val.(bool)), nil
}

func (r *Resolver) Close() error {
	return r.db.Close()
}

func (r *Resolver) handler() Handler {
	var root Handler = r.query
	for i := len(r.mdls) - 1; i >= 0; i-- {
		root = r.mdls[i](root)
	}
	return root
}

func (r *Resolver) query(ctx context.Context, rc *ResolveContext) *ResolveResult {
	row := r.db.QueryRowContext(ctx, rc.Query, rc.Args...)
	auto, err := r.dialect.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return &ResolveResult{
			Err: errs.NewErrUnknownColumn(rc.Table, rc.Column),
		}
	}
	return &ResolveResult{
		AutoIncrement: auto,
		Err:           err,
	}
}

func newColumn(name string, table string, auto bool) router.Column {
	if auto {
		return router.NewAutoIncrementColumn(name, table)
	}
	return router.NewColumn(name, table)
}

// cacheKey 表名和列名都加引号，避免 a.b + c 和 a + b.c 冲突
func cacheKey(table string, column string) string {
	return strconv.Quote(table) + "." + strconv.Quote(column)
}
