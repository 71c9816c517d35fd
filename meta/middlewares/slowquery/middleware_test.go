package slowquery

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharding/meta"
)

func TestMiddlewareBuilder_Build(t *testing.T) {
	testCases := []struct {
		name      string
		threshold time.Duration
		delay     time.Duration
		wantLog   bool
	}{
		{
			name:      "slow",
			threshold: 10 * time.Millisecond,
			delay:     50 * time.Millisecond,
			wantLog:   true,
		},
		{
			name:      "fast",
			threshold: time.Second,
			wantLog:   false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var logged bool
			var query string
			m := NewMiddlewareBuilder(tc.threshold).LogFunc(func(q string, args []any, duration time.Duration) {
				logged = true
				query = q
				assert.GreaterOrEqual(t, duration, tc.threshold)
			})
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			mock.ExpectQuery(regexp.QuoteMeta("pragma_table_info")).
				WillDelayFor(tc.delay).
				WillReturnRows(sqlmock.NewRows([]string{"pk", "type", "cnt"}).AddRow(1, "INTEGER", 1))

			r := meta.OpenDB(db, meta.WithDialect(meta.DialectSQLite), meta.WithMiddleware(m.Build()))
			c, err := r.Column(context.Background(), "orders", "id")
			require.NoError(t, err)
			assert.True(t, c.AutoIncrement())
			assert.Equal(t, tc.wantLog, logged)
			if tc.wantLog {
				assert.Contains(t, query, "pragma_table_info")
			}
		})
	}
}
