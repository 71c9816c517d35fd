package meta

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"sharding/internal/errs"
	"sharding/router"
)

type SQLiteSuite struct {
	suite.Suite
	r *Resolver
}

func TestSQLite(t *testing.T) {
	suite.Run(t, &SQLiteSuite{})
}

// SetupSuite 所有 case 执行前建表
func (s *SQLiteSuite) SetupSuite() {
	r, err := Open("sqlite3", "file:meta_test.db?cache=shared&mode=memory")
	require.NoError(s.T(), err)
	s.r = r
	_, err = r.db.Exec("CREATE TABLE IF NOT EXISTS `orders` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `user_id` INTEGER NOT NULL, `status` TEXT)")
	require.NoError(s.T(), err)
	_, err = r.db.Exec("CREATE TABLE IF NOT EXISTS `order_items` (`order_id` INTEGER, `item_id` INTEGER, PRIMARY KEY (`order_id`, `item_id`))")
	require.NoError(s.T(), err)
}

func (s *SQLiteSuite) TearDownSuite() {
	_ = s.r.Close()
}

func (s *SQLiteSuite) TestColumn() {
	testCases := []struct {
		name    string
		table   string
		column  string
		wantAI  bool
		wantErr error
	}{
		{name: "primary key", table: "orders", column: "id", wantAI: true},
		{name: "integer", table: "orders", column: "user_id"},
		{name: "text", table: "orders", column: "status"},
		{name: "composite key", table: "order_items", column: "order_id"},
		{name: "unknown column", table: "orders", column: "nope", wantErr: errs.ErrUnknownColumn},
		{name: "unknown table", table: "users", column: "id", wantErr: errs.ErrUnknownColumn},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c, err := s.r.Column(context.Background(), tc.table, tc.column)
			if tc.wantErr != nil {
				s.ErrorIs(err, tc.wantErr)
				return
			}
			s.Require().NoError(err)
			s.True(router.NewColumn(tc.column, tc.table).Equal(c))
			s.Equal(tc.wantAI, c.AutoIncrement())
		})
	}
}
