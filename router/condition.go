package router

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"sharding/internal/errs"
)

// Condition 是从 WHERE 中抽取出来的一个分片条件
// 构造之后不可变，可以在多个 goroutine 之间共享
type Condition struct {
	column   Column
	operator Operator
	values   []any
	// valueIndices 只记录来自占位符的值的参数下标，和 values 不一定一样长
	valueIndices []int
	// positions[i] 是 valueIndices[i] 对应的值在 values 中的位置
	positions []int
	// arity 输入表达式的个数
	arity int
}

// NewEqualCondition column = expr
func NewEqualCondition(column Column, expr Expr) Condition {
	c := Condition{
		column:   column,
		operator: OpEqual,
	}
	c.extract(expr)
	return c
}

// NewBetweenCondition column BETWEEN begin AND end
// 不校验也不调整上下界的顺序
func NewBetweenCondition(column Column, begin Expr, end Expr) Condition {
	c := Condition{
		column:   column,
		operator: OpBetween,
	}
	c.extract(begin)
	c.extract(end)
	return c
}

// NewInCondition column IN (exprs...)，保持输入顺序，重复的也保留
func NewInCondition(column Column, exprs ...Expr) Condition {
	c := Condition{
		column:   column,
		operator: OpIn,
	}
	if len(exprs) > 0 {
		c.values = make([]any, 0, len(exprs))
	}
	for _, e := range exprs {
		c.extract(e)
	}
	return c
}

// extract 只认识三种表达式，其余的一律跳过
// 跳过的表达式不产生值也不产生下标，由路由方根据 Complete 判断能否使用
func (c *Condition) extract(expr Expr) {
	c.arity++
	switch exp := expr.(type) {
	case Placeholder:
		c.positions = append(c.positions, len(c.values))
		c.values = append(c.values, exp.Value)
		c.valueIndices = append(c.valueIndices, exp.Index)
	case TextLiteral:
		c.values = append(c.values, exp.Text)
	case NumberLiteral:
		c.values = append(c.values, exp.Number)
	default:
		// ignored
	}
}

func (c Condition) Column() Column {
	return c.column
}

func (c Condition) Operator() Operator {
	return c.operator
}

func (c Condition) Values() []any {
	res := make([]any, len(c.values))
	copy(res, c.values)
	return res
}

func (c Condition) ValueIndices() []int {
	res := make([]int, len(c.valueIndices))
	copy(res, c.valueIndices)
	return res
}

// Complete 所有输入表达式是否都抽取出了值
func (c Condition) Complete() bool {
	return len(c.values) == c.arity
}

// Resolve 用执行时的参数替换占位符的值，返回新的切片
func (c Condition) Resolve(params []any) ([]any, error) {
	res := c.Values()
	for i, pos := range c.positions {
		idx := c.valueIndices[i]
		if idx < 0 || idx >= len(params) {
			return nil, errs.NewErrParameterIndex(idx, len(params))
		}
		res[pos] = params[idx]
	}
	return res, nil
}

// Equal 比较 column, operator 和 values，不比较 valueIndices
func (c Condition) Equal(other Condition) bool {
	if !c.column.Equal(other.column) || c.operator != other.operator {
		return false
	}
	if len(c.values) != len(other.values) {
		return false
	}
	for i, v := range c.values {
		if !valueEqual(v, other.values[i]) {
			return false
		}
	}
	return true
}

// Key 规范化的字符串，可以当 map 的 key
// 值带上了类型，所以 "18" 和 18 不会冲突
func (c Condition) Key() string {
	var sb strings.Builder
	sb.WriteString(strconv.Quote(c.column.table))
	sb.WriteByte('.')
	sb.WriteString(strconv.Quote(c.column.name))
	sb.WriteByte(' ')
	sb.WriteString(c.operator.String())
	sb.WriteString(" [")
	for i, v := range c.values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(valueKey(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (c Condition) Hash() uint64 {
	return xxhash.Sum64String(c.Key())
}

func (c Condition) String() string {
	var sb strings.Builder
	sb.WriteString(c.column.String())
	sb.WriteByte(' ')
	sb.WriteString(c.operator.String())
	sb.WriteByte(' ')
	switch {
	case c.operator == OpEqual && len(c.values) == 1:
		sb.WriteString(valueString(c.values[0]))
	case c.operator == OpBetween && len(c.values) == 2:
		sb.WriteString(valueString(c.values[0]))
		sb.WriteString(" AND ")
		sb.WriteString(valueString(c.values[1]))
	default:
		sb.WriteByte('(')
		for i, v := range c.values {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(valueString(v))
		}
		sb.WriteByte(')')
	}
	return sb.String()
}
