package router

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"sharding/internal/errs"
)

// Expr 是一个标记接口，代表解析器交给我们的表达式节点
// 只有 Placeholder, TextLiteral, NumberLiteral 能被抽取出值
type Expr interface {
	expr()
}

// Placeholder 绑定参数占位符，Index 是它在整条语句所有参数中的位置
type Placeholder struct {
	Index int
	Value any
}

func Param(idx int, val any) Placeholder {
	return Placeholder{
		Index: idx,
		Value: val,
	}
}

func (Placeholder) expr() {}

// TextLiteral 带引号的字符串字面量
type TextLiteral struct {
	Text string
}

func Text(text string) TextLiteral {
	return TextLiteral{Text: text}
}

func (TextLiteral) expr() {}

// NumberLiteral 数字字面量
type NumberLiteral struct {
	Number any
}

func Number(n any) NumberLiteral {
	return NumberLiteral{Number: n}
}

func (NumberLiteral) expr() {}

// ParseNumber 把数字 token 转成字面量
// 值是整数且在 int64 范围内的用 int64，其余的用 decimal 保证精度不丢
func ParseNumber(text string) (NumberLiteral, error) {
	s := strings.TrimSpace(text)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Number(i), nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits := s[2:]
		// SetString 允许符号，0x-5 这种不是合法的字面量
		if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
			return NumberLiteral{}, errs.NewErrInvalidNumber(text)
		}
		bi, ok := new(big.Int).SetString(digits, 16)
		if !ok {
			return NumberLiteral{}, errs.NewErrInvalidNumber(text)
		}
		if bi.IsInt64() {
			return Number(bi.Int64()), nil
		}
		return Number(decimal.NewFromBigInt(bi, 0)), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return NumberLiteral{}, errs.NewErrInvalidNumber(text)
	}
	// 1e5, 2.0 这种整数值同样用 int64
	if d.Equal(d.Truncate(0)) {
		if i := d.IntPart(); decimal.NewFromInt(i).Equal(d) {
			return Number(i), nil
		}
	}
	return Number(d), nil
}

// RawExpr 代表原生表达式，例如函数调用或者运算
// 它没有办法确定值，不会参与路由
type RawExpr struct {
	raw  string
	args []any
}

func Raw(expr string, args ...any) RawExpr {
	return RawExpr{
		raw:  expr,
		args: args,
	}
}

func (r RawExpr) String() string {
	return r.raw
}

func (r RawExpr) Args() []any {
	return r.args
}

func (RawExpr) expr() {}
