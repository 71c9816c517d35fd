package router

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sharding/internal/errs"
)

// Compare 给路由算法使用的比较
// 数字之间不论具体类型都按数值比较，字符串按字典序，时间按先后
func Compare(a, b any) (int, error) {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, errs.NewErrIncomparable(a, b)
		}
		return strings.Compare(x, y), nil
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, errs.NewErrIncomparable(a, b)
		}
		switch {
		case x.Before(y):
			return -1, nil
		case x.After(y):
			return 1, nil
		}
		return 0, nil
	}
	da, ok := toDecimal(a)
	if !ok {
		return 0, errs.NewErrIncomparable(a, b)
	}
	db, ok := toDecimal(b)
	if !ok {
		return 0, errs.NewErrIncomparable(a, b)
	}
	return da.Cmp(db), nil
}

func toDecimal(val any) (decimal.Decimal, bool) {
	switch v := val.(type) {
	case decimal.Decimal:
		return v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int8:
		return decimal.NewFromInt(int64(v)), true
	case int16:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint:
		return fromUint64(uint64(v)), true
	case uint8:
		return fromUint64(uint64(v)), true
	case uint16:
		return fromUint64(uint64(v)), true
	case uint32:
		return fromUint64(uint64(v)), true
	case uint64:
		return fromUint64(v), true
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat32(v), true
	case float64:
		// NaN 和 Inf 没法转成 decimal
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(v), true
	default:
		return decimal.Decimal{}, false
	}
}

func fromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

// valueEqual 严格相等：动态类型要一致
func valueEqual(a, b any) bool {
	switch x := a.(type) {
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		return ok && x.Equal(y)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case float64:
		y, ok := b.(float64)
		// NaN 和 NaN 视为相等
		return ok && (x == y || math.IsNaN(x) && math.IsNaN(y))
	case float32:
		y, ok := b.(float32)
		return ok && (x == y || math.IsNaN(float64(x)) && math.IsNaN(float64(y)))
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil {
		return true
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func valueKey(val any) string {
	switch v := normalizeZero(val).(type) {
	case nil:
		return "nil"
	case string:
		return "string:" + strconv.Quote(v)
	case []byte:
		return "[]uint8:" + strconv.Quote(string(v))
	case decimal.Decimal:
		return "decimal:" + v.String()
	case time.Time:
		return "time:" + v.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}

func valueString(val any) string {
	switch v := normalizeZero(val).(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case []byte:
		return "'" + strings.ReplaceAll(string(v), "'", "''") + "'"
	case decimal.Decimal:
		return v.String()
	case time.Time:
		return "'" + v.Format(time.RFC3339Nano) + "'"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// normalizeZero -0 和 0 相等，输出也要一致
func normalizeZero(val any) any {
	switch v := val.(type) {
	case float64:
		if v == 0 {
			return float64(0)
		}
	case float32:
		if v == 0 {
			return float32(0)
		}
	}
	return val
}
