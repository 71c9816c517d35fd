package errs

import (
	"errors"
	"fmt"
)

var (
	ErrParameterIndex      = errors.New("router: 占位符下标越界")
	ErrIncomparable        = errors.New("router: 值无法比较")
	ErrIncompleteCondition = errors.New("router: 条件不完整，无法参与路由")
	ErrInvalidNumber       = errors.New("router: 非法的数字字面量")

	ErrUnknownColumn      = errors.New("meta: 未知列")
	ErrUnsupportedDialect = errors.New("meta: 不支持的方言")
	ErrCacheMiss          = errors.New("meta: 缓存未命中")
	ErrFailedToSetCache   = errors.New("meta: 写入缓存失败")
)

func NewErrParameterIndex(idx int, size int) error {
	return fmt.Errorf("%w: 下标 %d, 参数个数 %d", ErrParameterIndex, idx, size)
}

func NewErrIncomparable(a, b any) error {
	return fmt.Errorf("%w: %T(%v) 和 %T(%v)", ErrIncomparable, a, a, b, b)
}

func NewErrIncompleteCondition(cond any) error {
	return fmt.Errorf("%w: %v", ErrIncompleteCondition, cond)
}

func NewErrInvalidNumber(text string) error {
	return fmt.Errorf("%w: %q", ErrInvalidNumber, text)
}

func NewErrUnknownColumn(table, column string) error {
	return fmt.Errorf("%w %s.%s", ErrUnknownColumn, table, column)
}

func NewErrUnsupportedDialect(driver string) error {
	return fmt.Errorf("%w %s", ErrUnsupportedDialect, driver)
}

func NewErrFailedToSetCache(res string) error {
	return fmt.Errorf("%w, res: %s", ErrFailedToSetCache, res)
}
