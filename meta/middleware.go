package meta

import (
	"context"
)

type ResolveContext struct {
	// Dialect 方言名字，mysql 或者 sqlite3
	Dialect string
	Table   string
	Column  string

	// 查询元数据用的 SQL，中间件可以拿来记录
	Query string
	Args  []any
}

type ResolveResult struct {
	AutoIncrement bool
	Err           error
}

type Handler func(ctx context.Context, rc *ResolveContext) *ResolveResult
type Middleware func(next Handler) Handler
