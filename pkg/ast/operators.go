package ast

// Operator is a binary operator.
type Operator string

const (
	OpPlus         Operator = "+"
	OpMinus        Operator = "-"
	OpMultiply     Operator = "*"
	OpDivide       Operator = "/"
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpEqual        Operator = "=="
)

// IsArithmetic reports whether op maps two Ints to an Int.
func (op Operator) IsArithmetic() bool {
	switch op {
	case OpPlus, OpMinus, OpMultiply, OpDivide:
		return true
	}
	return false
}

// IsRelational reports whether op orders two Ints.
func (op Operator) IsRelational() bool {
	switch op {
	case OpGreater, OpLess, OpGreaterEqual, OpLessEqual:
		return true
	}
	return false
}
