package router

import (
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"
)

// Cache 以 SQL 为 key 缓存解析出来的条件
// Conditions 发布之后只读，所以可以直接共享
type Cache struct {
	cache *lru.Cache
	g     singleflight.Group
}

func NewCache(size int) (*Cache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		cache: c,
	}, nil
}

func (c *Cache) Get(sql string) (*Conditions, bool) {
	val, ok := c.cache.Get(sql)
	if !ok {
		return nil, false
	}
	return val.(*Conditions), true
}

// Load 未命中时调用 fn，同一个 sql 并发只会调用一次，出错不缓存
func (c *Cache) Load(sql string, fn func() (*Conditions, error)) (*Conditions, error) {
	if conds, ok := c.Get(sql); ok {
		return conds, nil
	}
	val, err, _ := c.g.Do(sql, func() (interface{}, error) {
		// double-check
		if conds, ok := c.Get(sql); ok {
			return conds, nil
		}
		conds, err := fn()
		if err != nil {
			return nil, err
		}
		c.cache.Add(sql, conds)
		return conds, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*Conditions), nil
}

func (c *Cache) Len() int {
	return c.cache.Len()
}

func (c *Cache) Purge() {
	c.cache.Purge()
}
