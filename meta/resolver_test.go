package meta

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharding/internal/errs"
	"sharding/meta/mocks"
	"sharding/router"
)

const mysqlQuery = "SELECT `EXTRA` FROM `information_schema`.`COLUMNS` WHERE `TABLE_SCHEMA` = ? AND `TABLE_NAME` = ? AND `COLUMN_NAME` = ?;"

func TestResolver_Column(t *testing.T) {
	testCases := []struct {
		name    string
		dialect Dialect
		mock    func(mock sqlmock.Sqlmock)
		table   string
		column  string

		want    router.Column
		wantAI  bool
		wantErr error
	}{
		{
			name:    "auto increment",
			dialect: MySQL("shard_db"),
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"EXTRA"}).AddRow("auto_increment")
				mock.ExpectQuery(regexp.QuoteMeta(mysqlQuery)).
					WithArgs("shard_db", "orders", "id").WillReturnRows(rows)
			},
			table:  "orders",
			column: "id",
			want:   router.NewColumn("id", "orders"),
			wantAI: true,
		},
		{
			name:    "plain column",
			dialect: MySQL("shard_db"),
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"EXTRA"}).AddRow("")
				mock.ExpectQuery(regexp.QuoteMeta(mysqlQuery)).
					WithArgs("shard_db", "orders", "status").WillReturnRows(rows)
			},
			table:  "orders",
			column: "status",
			want:   router.NewColumn("status", "orders"),
		},
		{
			name:    "null extra",
			dialect: MySQL(""),
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"EXTRA"}).AddRow(nil)
				mock.ExpectQuery(regexp.QuoteMeta("`TABLE_SCHEMA` = DATABASE() AND")).
					WithArgs("orders", "user_id").WillReturnRows(rows)
			},
			table:  "orders",
			column: "user_id",
			want:   router.NewColumn("user_id", "orders"),
		},
		{
			name:    "unknown column",
			dialect: MySQL("shard_db"),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(mysqlQuery)).
					WithArgs("shard_db", "orders", "nope").
					WillReturnRows(sqlmock.NewRows([]string{"EXTRA"}))
			},
			table:   "orders",
			column:  "nope",
			wantErr: errs.ErrUnknownColumn,
		},
		{
			name:    "query error",
			dialect: MySQL("shard_db"),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(mysqlQuery)).
					WillReturnError(context.DeadlineExceeded)
			},
			table:   "orders",
			column:  "id",
			wantErr: context.DeadlineExceeded,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tc.mock(mock)
			r := OpenDB(db, WithDialect(tc.dialect))
			res, err := r.Column(context.Background(), tc.table, tc.column)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(res))
			assert.Equal(t, tc.wantAI, res.AutoIncrement())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestResolver_ColumnCached(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	rows := sqlmock.NewRows([]string{"EXTRA"}).AddRow("auto_increment")
	// 只允许查询一次
	mock.ExpectQuery(regexp.QuoteMeta(mysqlQuery)).
		WithArgs("shard_db", "orders", "id").WillReturnRows(rows)

	r := OpenDB(db, WithDialect(MySQL("shard_db")), WithExpiration(time.Minute))
	for i := 0; i < 3; i++ {
		c, err := r.Column(context.Background(), "orders", "id")
		require.NoError(t, err)
		assert.True(t, c.AutoIncrement())
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolver_ColumnWithCache(t *testing.T) {
	testCases := []struct {
		name   string
		cache  func(ctrl *gomock.Controller) Cache
		mock   func(mock sqlmock.Sqlmock)
		wantAI bool
	}{
		{
			name: "hit",
			cache: func(ctrl *gomock.Controller) Cache {
				c := mocks.NewMockCache(ctrl)
				c.EXPECT().Get(gomock.Any(), `"orders"."id"`).Return(true, nil)
				return c
			},
			mock:   func(mock sqlmock.Sqlmock) {},
			wantAI: true,
		},
		{
			name: "miss",
			cache: func(ctrl *gomock.Controller) Cache {
				c := mocks.NewMockCache(ctrl)
				c.EXPECT().Get(gomock.Any(), `"orders"."id"`).Return(false, errs.ErrCacheMiss)
				c.EXPECT().Set(gomock.Any(), `"orders"."id"`, true, defaultExpiration).Return(nil)
				return c
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(mysqlQuery)).
					WillReturnRows(sqlmock.NewRows([]string{"EXTRA"}).AddRow("auto_increment"))
			},
			wantAI: true,
		},
		{
			// 缓存不可用时以数据库为准
			name: "cache error",
			cache: func(ctrl *gomock.Controller) Cache {
				c := mocks.NewMockCache(ctrl)
				c.EXPECT().Get(gomock.Any(), `"orders"."id"`).Return(false, errors.New("redis down"))
				c.EXPECT().Set(gomock.Any(), `"orders"."id"`, false, defaultExpiration).
					Return(errors.New("redis down"))
				return c
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(mysqlQuery)).
					WillReturnRows(sqlmock.NewRows([]string{"EXTRA"}).AddRow(""))
			},
			wantAI: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tc.mock(mock)
			r := OpenDB(db, WithDialect(MySQL("shard_db")), WithCache(tc.cache(ctrl)))
			c, err := r.Column(context.Background(), "orders", "id")
			require.NoError(t, err)
			assert.Equal(t, tc.wantAI, c.AutoIncrement())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestResolver_Middleware(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(regexp.QuoteMeta(mysqlQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"EXTRA"}).AddRow(""))

	var order []string
	mdl := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, rc *ResolveContext) *ResolveResult {
				order = append(order, name)
				assert.Equal(t, "mysql", rc.Dialect)
				assert.Equal(t, mysqlQuery, rc.Query)
				assert.Equal(t, []any{"shard_db", "orders", "id"}, rc.Args)
				return next(ctx, rc)
			}
		}
	}
	r := OpenDB(db, WithDialect(MySQL("shard_db")), WithMiddleware(mdl("first"), mdl("second")))
	_, err = r.Column(context.Background(), "orders", "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestOpen(t *testing.T) {
	r, err := Open("mysql", "root:root@tcp(localhost:13306)/shard_db")
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, MySQL("shard_db"), r.dialect)

	r, err = Open("mysql", "root:root@tcp(localhost:13306)/shard_db", WithDialect(MySQL("other")))
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, MySQL("other"), r.dialect)

	_, err = Open("mysql", "bad dsn")
	assert.Error(t, err)

	_, err = Open("postgres", "host=localhost")
	assert.ErrorIs(t, err, errs.ErrUnsupportedDialect)

	assert.Panics(t, func() {
		MustOpen("postgres", "host=localhost")
	})
}

func TestResolver_ColumnKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(regexp.QuoteMeta(mysqlQuery)).
		WithArgs("shard_db", "a.b", "c").
		WillReturnRows(sqlmock.NewRows([]string{"EXTRA"}).AddRow("auto_increment"))
	mock.ExpectQuery(regexp.QuoteMeta(mysqlQuery)).
		WithArgs("shard_db", "a", "b.c").
		WillReturnRows(sqlmock.NewRows([]string{"EXTRA"}).AddRow(""))

	r := OpenDB(db, WithDialect(MySQL("shard_db")))
	c, err := r.Column(context.Background(), "a.b", "c")
	require.NoError(t, err)
	assert.True(t, c.AutoIncrement())
	// 不能命中 a.b + c 的缓存
	c, err = r.Column(context.Background(), "a", "b.c")
	require.NoError(t, err)
	assert.False(t, c.AutoIncrement())
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.NotEqual(t, cacheKey("a.b", "c"), cacheKey("a", "b.c"))
}
