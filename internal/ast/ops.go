package ast

import (
	"asls/internal/token"
)

// BinaryOp is a binary operator. It mirrors token kinds except for Shr,
// which has no token of its own.
type BinaryOp uint8

const (
	OpInvalid BinaryOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpShl
	OpShr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpAnd
	OpOr
)

var binaryOpNames = [...]string{
	OpInvalid: "?",
	OpAdd:     "+",
	OpSub:     "-",
	OpMul:     "*",
	OpDiv:     "/",
	OpMod:     "%",
	OpEq:      "==",
	OpNe:      "!=",
	OpLt:      "<",
	OpLe:      "<=",
	OpGt:      ">",
	OpGe:      ">=",
	OpShl:     "<<",
	OpShr:     ">>",
	OpBitAnd:  "&",
	OpBitOr:   "|",
	OpBitXor:  "^",
	OpAnd:     "&&",
	OpOr:      "||",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// IsBoolean reports whether the operator yields bool.
func (op BinaryOp) IsBoolean() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe, OpAnd, OpOr:
		return true
	default:
		return false
	}
}

// IsLogical reports whether both operands are expected to be bool.
func (op BinaryOp) IsLogical() bool {
	return op == OpAnd || op == OpOr
}

// BinaryOpFromToken maps a token kind to its operator.
func BinaryOpFromToken(k token.Kind) BinaryOp {
	switch k {
	case token.Plus:
		return OpAdd
	case token.Minus:
		return OpSub
	case token.Star:
		return OpMul
	case token.Slash:
		return OpDiv
	case token.Percent:
		return OpMod
	case token.EqEq:
		return OpEq
	case token.BangEq:
		return OpNe
	case token.Lt:
		return OpLt
	case token.LtEq:
		return OpLe
	case token.Gt:
		return OpGt
	case token.GtEq:
		return OpGe
	case token.Shl:
		return OpShl
	case token.Amp:
		return OpBitAnd
	case token.Pipe:
		return OpBitOr
	case token.Caret:
		return OpBitXor
	case token.AndAnd:
		return OpAnd
	case token.OrOr:
		return OpOr
	default:
		return OpInvalid
	}
}
