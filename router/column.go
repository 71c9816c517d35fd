package router

// Column 是条件引用的列。不可变，所以直接按值传递
type Column struct {
	name  string
	table string
	// autoIncrement 只是元数据，不参与相等判断和输出
	autoIncrement bool
}

func NewColumn(name string, table string) Column {
	return Column{
		name:  name,
		table: table,
	}
}

func NewAutoIncrementColumn(name string, table string) Column {
	return Column{
		name:          name,
		table:         table,
		autoIncrement: true,
	}
}

func (c Column) Name() string {
	return c.name
}

func (c Column) Table() string {
	return c.table
}

func (c Column) AutoIncrement() bool {
	return c.autoIncrement
}

// Equal 只比较列名和表名
func (c Column) Equal(other Column) bool {
	return c.key() == other.key()
}

func (c Column) String() string {
	if c.table == "" {
		return c.name
	}
	return c.table + "." + c.name
}

// columnKey 可以作为 map 的 key
type columnKey struct {
	name  string
	table string
}

func (c Column) key() columnKey {
	return columnKey{
		name:  c.name,
		table: c.table,
	}
}
