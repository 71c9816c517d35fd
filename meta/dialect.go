package meta

import (
	"database/sql"
	"strings"

	"github.com/go-sql-driver/mysql"

	"sharding/internal/errs"
)

var (
	DialectSQLite Dialect = sqliteDialect{}
)

type Dialect interface {
	Name() string
	// buildQuery 查询某一列自增信息的 SQL
	buildQuery(table string, column string) (string, []any)
	scan(row *sql.Row) (bool, error)
}

// MySQL schema 为空的时候使用连接当前的库
func MySQL(schema string) Dialect {
	return mysqlDialect{schema: schema}
}

// dialectOf 根据驱动名字选择方言，MySQL 的库名从 DSN 里面解析
func dialectOf(driver string, dsn string) (Dialect, error) {
	switch driver {
	case "mysql":
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, err
		}
		return MySQL(cfg.DBName), nil
	case "sqlite3":
		return DialectSQLite, nil
	default:
		return nil, errs.NewErrUnsupportedDialect(driver)
	}
}

type mysqlDialect struct {
	schema string
}

func (m mysqlDialect) Name() string {
	return "mysql"
}

func (m mysqlDialect) buildQuery(table string, column string) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT `EXTRA` FROM `information_schema`.`COLUMNS` WHERE `TABLE_SCHEMA` = ")
	args := make([]any, 0, 3)
	if m.schema == "" {
		sb.WriteString("DATABASE()")
	} else {
		sb.WriteByte('?')
		args = append(args, m.schema)
	}
	sb.WriteString(" AND `TABLE_NAME` = ? AND `COLUMN_NAME` = ?;")
	args = append(args, table, column)
	return sb.String(), args
}

func (m mysqlDialect) scan(row *sql.Row) (bool, error) {
	var extra sql.NullString
	if err := row.Scan(&extra); err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(extra.String), "auto_increment"), nil
}

type sqliteDialect struct {
}

func (s sqliteDialect) Name() string {
	return "sqlite3"
}

func (s sqliteDialect) buildQuery(table string, column string) (string, []any) {
	return `SELECT "pk", "type", (SELECT COUNT(*) FROM pragma_table_info(?) WHERE "pk" > 0) FROM pragma_table_info(?) WHERE "name" = ?;`,
		[]any{table, table, column}
}

// scan SQLite 里面唯一的 INTEGER 主键就是 rowid，会自动分配
func (s sqliteDialect) scan(row *sql.Row) (bool, error) {
	var (
		pk  int
		typ string
		cnt int
	)
	if err := row.Scan(&pk, &typ, &cnt); err != nil {
		return false, err
	}
	return pk == 1 && cnt == 1 && strings.EqualFold(typ, "INTEGER"), nil
}
