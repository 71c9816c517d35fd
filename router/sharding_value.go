package router

import (
	"sharding/internal/errs"
)

type ShardingValueType uint8

const (
	SingleValue ShardingValueType = iota
	ListValue
	RangeValue
)

func (t ShardingValueType) String() string {
	switch t {
	case SingleValue:
		return "SINGLE"
	case ListValue:
		return "LIST"
	case RangeValue:
		return "RANGE"
	default:
		return "UNKNOWN"
	}
}

// ShardingValue 交给分片算法的值，占位符已经替换成了真实参数
// 根据 Type 只有 Value, Values, Range 其中一个有意义
type ShardingValue struct {
	LogicTable string
	Column     string
	Type       ShardingValueType
	Value      any
	Values     []any
	Range      Range
}

// Range 闭区间，Lower 大于 Upper 时是空区间，不会交换上下界
type Range struct {
	Lower any
	Upper any
}

func (r Range) Contains(val any) (bool, error) {
	lo, err := Compare(r.Lower, val)
	if err != nil {
		return false, err
	}
	if lo > 0 {
		return false, nil
	}
	hi, err := Compare(val, r.Upper)
	if err != nil {
		return false, err
	}
	return hi <= 0, nil
}

// ShardingValue 不完整的条件不能用来路由
func (c Condition) ShardingValue(params []any) (ShardingValue, error) {
	if !c.Complete() {
		return ShardingValue{}, errs.NewErrIncompleteCondition(c)
	}
	vals, err := c.Resolve(params)
	if err != nil {
		return ShardingValue{}, err
	}
	res := ShardingValue{
		LogicTable: c.column.table,
		Column:     c.column.name,
	}
	switch c.operator {
	case OpEqual:
		if len(vals) != 1 {
			return ShardingValue{}, errs.NewErrIncompleteCondition(c)
		}
		res.Type = SingleValue
		res.Value = vals[0]
	case OpBetween:
		if len(vals) != 2 {
			return ShardingValue{}, errs.NewErrIncompleteCondition(c)
		}
		res.Type = RangeValue
		res.Range = Range{
			Lower: vals[0],
			Upper: vals[1],
		}
	case OpIn:
		res.Type = ListValue
		res.Values = vals
	default:
		// 零值 Condition
		return ShardingValue{}, errs.NewErrIncompleteCondition(c)
	}
	return res, nil
}
