package router

// Conditions 一条语句里面所有的分片条件，按列去重
// 发布之后只读，不要并发写
type Conditions struct {
	index map[columnKey]int
	conds []Condition
}

func NewConditions(conds ...Condition) *Conditions {
	res := &Conditions{
		index: make(map[columnKey]int, len(conds)),
		conds: make([]Condition, 0, len(conds)),
	}
	for _, c := range conds {
		res.Add(c)
	}
	return res
}

// Add 同一列上已经有条件的话直接覆盖，位置不变
func (cs *Conditions) Add(c Condition) {
	k := c.column.key()
	if i, ok := cs.index[k]; ok {
		cs.conds[i] = c
		return
	}
	cs.index[k] = len(cs.conds)
	cs.conds = append(cs.conds, c)
}

func (cs *Conditions) Find(table string, column string) (Condition, bool) {
	i, ok := cs.index[columnKey{name: column, table: table}]
	if !ok {
		return Condition{}, false
	}
	return cs.conds[i], true
}

// All 按加入的顺序返回
func (cs *Conditions) All() []Condition {
	res := make([]Condition, len(cs.conds))
	copy(res, cs.conds)
	return res
}

func (cs *Conditions) Len() int {
	return len(cs.conds)
}
