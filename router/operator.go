package router

// Operator 由 string 衍生，只有下面三种取值
type Operator string

const (
	OpEqual   Operator = "="
	OpBetween Operator = "BETWEEN"
	OpIn      Operator = "IN"
)

func (o Operator) String() string {
	return string(o)
}
