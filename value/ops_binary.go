package value

import "strings"

// BinaryOp names a dyadic operator understood by Apply. The numbering here
// is internal to the value package; the vm package stores int(op) directly
// in an OpBinary instruction's A operand and converts it back before
// calling Apply, so instructions and snapshots carry this numbering.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpShl
	OpShr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpAnd
	OpOr
	OpXor
	OpElvis
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLte
	OpGte
)

// Apply evaluates lhs <op> rhs per spec.md §4.1's per-type truth tables,
// grounded on original_source/crates/vm/src/value/{add,sub,mul,div,rem,
// bitand,bitor,bitxor,shl,shr,logical}.rs. Errors never panic or unwind
// here: any unsupported combination yields an ErrorValue, matching the
// "operators propagate Error as a value" rule; only Eval/Test (vm package)
// unwind.
func Apply(op BinaryOp, lhs, rhs Value) Value {
	switch op {
	case OpEq:
		return BoolValue(lhs.Equal(rhs))
	case OpNeq:
		return BoolValue(!lhs.Equal(rhs))
	case OpLt:
		return BoolValue(lhs.Compare(rhs) < 0)
	case OpGt:
		return BoolValue(lhs.Compare(rhs) > 0)
	case OpLte:
		return BoolValue(lhs.Compare(rhs) <= 0)
	case OpGte:
		return BoolValue(lhs.Compare(rhs) >= 0)
	case OpAnd:
		if !lhs.Truthy() {
			return lhs
		}
		return rhs
	case OpOr:
		if lhs.Truthy() {
			return lhs
		}
		return rhs
	case OpXor:
		lb, rb := lhs.Truthy(), rhs.Truthy()
		if lb == rb {
			return None
		}
		if lb {
			return lhs
		}
		return rhs
	case OpElvis:
		if lhs == Value(None) {
			return rhs
		}
		if e, ok := lhs.(ErrorValue); ok {
			_ = e
			return rhs
		}
		return lhs
	}

	if e, ok := lhs.(ErrorValue); ok {
		return e
	}
	if e, ok := rhs.(ErrorValue); ok {
		return e
	}
	if t, ok := lhs.(TypeValue); ok {
		return Runtimef("Invalid Operation (%s): %s and %s", opSymbol(op), t, rhs)
	}
	if t, ok := rhs.(TypeValue); ok {
		return Runtimef("Invalid Operation (%s): %s and %s", opSymbol(op), lhs, t)
	}

	switch op {
	case OpAdd:
		return applyAdd(lhs, rhs)
	case OpSub:
		return applySub(lhs, rhs)
	case OpMul:
		return applyMul(lhs, rhs)
	case OpDiv:
		return applyDiv(lhs, rhs)
	case OpRem:
		return applyRem(lhs, rhs)
	case OpBitAnd:
		return applyBitwise(lhs, rhs, func(a, b bool) bool { return a && b }, func(a, b int64) int64 { return a & b })
	case OpBitOr:
		return applyBitwise(lhs, rhs, func(a, b bool) bool { return a || b }, func(a, b int64) int64 { return a | b })
	case OpBitXor:
		return applyBitwise(lhs, rhs, func(a, b bool) bool { return a != b }, func(a, b int64) int64 { return a ^ b })
	case OpShl:
		return applyShift(lhs, rhs, true)
	case OpShr:
		return applyShift(lhs, rhs, false)
	}
	return Runtimef("Not supported: %s %s %s", lhs, opSymbol(op), rhs)
}

func opSymbol(op BinaryOp) string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpRem:
		return "%"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	default:
		return "?"
	}
}

func asBool(v Value) (bool, bool) {
	b, ok := v.(BoolValue)
	return bool(b), ok
}

// applyAdd: None is the additive identity; numbers add; a Number beside a
// String coerces the string to a number if possible, else concatenates.
func applyAdd(lhs, rhs Value) Value {
	if lb, ok := asBool(lhs); ok {
		if rb, ok := asBool(rhs); ok {
			return BoolValue(lb || rb)
		}
		return BoolValue(lb || rhs.Truthy())
	}
	if rb, ok := asBool(rhs); ok {
		return BoolValue(rb || lhs.Truthy())
	}
	if _, ok := lhs.(NoneValue); ok {
		return rhs
	}
	if _, ok := rhs.(NoneValue); ok {
		return lhs
	}
	if ln, ok := lhs.(Number); ok {
		if rn, ok := rhs.(Number); ok {
			return numAdd(ln, rn)
		}
		if rs, ok := rhs.(StringValue); ok {
			if n, err := parseNumber(string(rs)); err == nil {
				return numAdd(ln, n)
			}
			return StringValue(ln.String() + string(rs))
		}
	}
	if ls, ok := lhs.(StringValue); ok {
		if rn, ok := rhs.(Number); ok {
			if n, err := parseNumber(string(ls)); err == nil {
				return numAdd(n, rn)
			}
			return StringValue(string(ls) + rn.String())
		}
		if rs, ok := rhs.(StringValue); ok {
			return StringValue(string(ls) + string(rs))
		}
	}
	if lt, ok := lhs.(TupleValue); ok {
		if rt, ok := rhs.(TupleValue); ok {
			return zipTuple(lt, rt, OpAdd)
		}
		return mapTuple(lt, rhs, OpAdd, true)
	}
	if rt, ok := rhs.(TupleValue); ok {
		return mapTuple(rt, lhs, OpAdd, false)
	}
	if ll, ok := lhs.(ListValue); ok {
		if rl, ok := rhs.(ListValue); ok {
			out := NewList()
			for _, c := range ll.Elements {
				out.Push(c.Get())
			}
			for _, c := range rl.Elements {
				out.Push(c.Get())
			}
			return out
		}
	}
	return Runtimef("Not supported: %s + %s", lhs, rhs)
}

func applySub(lhs, rhs Value) Value {
	if _, ok := rhs.(NoneValue); ok {
		return lhs
	}
	if _, ok := lhs.(NoneValue); ok {
		return Negate(rhs)
	}
	if lb, ok := asBool(lhs); ok {
		if rb, ok := asBool(rhs); ok {
			return BoolValue(lb || rb)
		}
		return BoolValue(lb || rhs.Truthy())
	}
	if rb, ok := asBool(rhs); ok {
		return BoolValue(rb || lhs.Truthy())
	}
	if ln, ok := lhs.(Number); ok {
		if rn, ok := rhs.(Number); ok {
			return numSub(ln, rn)
		}
	}
	if ls, ok := lhs.(StringValue); ok {
		if rs, ok := rhs.(StringValue); ok {
			return StringValue(strings.ReplaceAll(string(ls), string(rs), ""))
		}
	}
	if ll, ok := lhs.(ListValue); ok {
		if rl, ok := rhs.(ListValue); ok {
			out := NewList()
			for _, c := range ll.Elements {
				v := c.Get()
				keep := true
				for _, rc := range rl.Elements {
					if v.Equal(rc.Get()) {
						keep = false
						break
					}
				}
				if keep {
					out.Push(v)
				}
			}
			return out
		}
		out := NewList()
		for _, c := range ll.Elements {
			if !c.Get().Equal(rhs) {
				out.Push(c.Get())
			}
		}
		return out
	}
	if lt, ok := lhs.(TupleValue); ok {
		if rt, ok := rhs.(TupleValue); ok {
			return zipTuple(lt, rt, OpSub)
		}
		return mapTuple(lt, rhs, OpSub, true)
	}
	return Runtimef("Not supported: %s - %s", lhs, rhs)
}

func applyMul(lhs, rhs Value) Value {
	if _, ok := lhs.(NoneValue); ok {
		return None
	}
	if _, ok := rhs.(NoneValue); ok {
		return None
	}
	if lb, ok := asBool(lhs); ok {
		if rb, ok := asBool(rhs); ok {
			return BoolValue(lb || rb)
		}
		return BoolValue(lb || rhs.Truthy())
	}
	if rb, ok := asBool(rhs); ok {
		return BoolValue(rb || lhs.Truthy())
	}
	if ln, ok := lhs.(Number); ok {
		if rn, ok := rhs.(Number); ok {
			return numMul(ln, rn)
		}
		if rs, ok := rhs.(StringValue); ok {
			if n, err := parseNumber(string(rs)); err == nil {
				return numMul(ln, n)
			}
			return StringValue(strings.Repeat(string(rs), int(ln.AsInt())))
		}
	}
	if rn, ok := rhs.(Number); ok {
		if ls, ok := lhs.(StringValue); ok {
			if n, err := parseNumber(string(ls)); err == nil {
				return numMul(n, rn)
			}
			return StringValue(strings.Repeat(string(ls), int(rn.AsInt())))
		}
	}
	if lt, ok := lhs.(TupleValue); ok {
		if rt, ok := rhs.(TupleValue); ok {
			return zipTuple(lt, rt, OpMul)
		}
		return mapTuple(lt, rhs, OpMul, true)
	}
	return Runtimef("Not supported: %s * %s", lhs, rhs)
}

func applyDiv(lhs, rhs Value) Value {
	if _, ok := lhs.(NoneValue); ok {
		return None
	}
	if _, ok := rhs.(NoneValue); ok {
		return Runtimef("Cannot divide %s by 0/none", lhs)
	}
	if lb, ok := asBool(lhs); ok {
		if rb, ok := asBool(rhs); ok {
			return BoolValue(lb || rb)
		}
		return BoolValue(lb || rhs.Truthy())
	}
	if rb, ok := asBool(rhs); ok {
		return BoolValue(rb || lhs.Truthy())
	}
	if ln, ok := lhs.(Number); ok {
		if rn, ok := rhs.(Number); ok {
			if rn.AsFloat() == 0 {
				return Runtimef("Cannot divide %s by 0/none", ln)
			}
			return numDiv(ln, rn)
		}
		if rs, ok := rhs.(StringValue); ok {
			n, err := parseNumber(string(rs))
			if err != nil {
				return Runtimef("Unsupported operation: %s / %s", ln, rs)
			}
			return numDiv(ln, n)
		}
	}
	if ls, ok := lhs.(StringValue); ok {
		sep := rhs.String()
		parts := strings.Split(string(ls), sep)
		out := NewList()
		for _, p := range parts {
			out.Push(StringValue(p))
		}
		return out
	}
	if lt, ok := lhs.(TupleValue); ok {
		if rt, ok := rhs.(TupleValue); ok {
			return zipTuple(lt, rt, OpDiv)
		}
		return mapTuple(lt, rhs, OpDiv, true)
	}
	return Runtimef("Not supported: %s / %s", lhs, rhs)
}

func applyRem(lhs, rhs Value) Value {
	if _, ok := rhs.(NoneValue); ok {
		return lhs
	}
	if _, ok := lhs.(NoneValue); ok {
		return None
	}
	if lb, ok := asBool(lhs); ok {
		if rb, ok := asBool(rhs); ok {
			return BoolValue(lb || rb)
		}
		return BoolValue(lb || rhs.Truthy())
	}
	if rb, ok := asBool(rhs); ok {
		return BoolValue(rb || lhs.Truthy())
	}
	if ln, ok := lhs.(Number); ok {
		if rn, ok := rhs.(Number); ok {
			return numRem(ln, rn)
		}
	}
	if lt, ok := lhs.(TupleValue); ok {
		if rt, ok := rhs.(TupleValue); ok {
			return zipTuple(lt, rt, OpRem)
		}
		return mapTuple(lt, rhs, OpRem, true)
	}
	return applySub(lhs, rhs)
}

func applyBitwise(lhs, rhs Value, boolOp func(a, b bool) bool, intOp func(a, b int64) int64) Value {
	if _, ok := lhs.(NoneValue); ok {
		return None
	}
	if _, ok := rhs.(NoneValue); ok {
		return None
	}
	if lb, ok := asBool(lhs); ok {
		if rb, ok := asBool(rhs); ok {
			return BoolValue(boolOp(lb, rb))
		}
		return BoolValue(boolOp(lb, rhs.Truthy()))
	}
	if rb, ok := asBool(rhs); ok {
		return BoolValue(boolOp(lhs.Truthy(), rb))
	}
	if ln, ok := lhs.(Number); ok {
		if rn, ok := rhs.(Number); ok {
			return NewInt(intOp(ln.AsInt(), rn.AsInt()))
		}
		if rs, ok := rhs.(StringValue); ok {
			if n, err := parseNumber(string(rs)); err == nil {
				return NewInt(intOp(ln.AsInt(), n.AsInt()))
			}
		}
	}
	return Runtimef("Not supported: %s and %s", lhs, rhs)
}

func applyShift(lhs, rhs Value, left bool) Value {
	if _, ok := lhs.(NoneValue); ok {
		return None
	}
	if _, ok := rhs.(NoneValue); ok {
		return lhs
	}
	if ln, ok := lhs.(Number); ok {
		if rn, ok := rhs.(Number); ok {
			if left {
				return NewInt(ln.AsInt() << uint(rn.AsInt()&63))
			}
			return NewInt(ln.AsInt() >> uint(rn.AsInt()&63))
		}
	}
	if ls, ok := lhs.(StringValue); ok {
		if rs, ok := rhs.(StringValue); ok {
			if left {
				return StringValue(string(ls) + string(rs))
			}
			return StringValue(string(rs) + string(ls))
		}
	}
	return Runtimef("Not supported: %s shift %s", lhs, rhs)
}

func numAdd(a, b Number) Value {
	if a.IsFloat() || b.IsFloat() {
		return NewFloat(a.AsFloat() + b.AsFloat())
	}
	return NewInt(a.AsInt() + b.AsInt())
}

func numSub(a, b Number) Value {
	if a.IsFloat() || b.IsFloat() {
		return NewFloat(a.AsFloat() - b.AsFloat())
	}
	return NewInt(a.AsInt() - b.AsInt())
}

func numMul(a, b Number) Value {
	if a.IsFloat() || b.IsFloat() {
		return NewFloat(a.AsFloat() * b.AsFloat())
	}
	return NewInt(a.AsInt() * b.AsInt())
}

func numDiv(a, b Number) Value {
	if a.IsFloat() || b.IsFloat() {
		return NewFloat(a.AsFloat() / b.AsFloat())
	}
	return NewInt(a.AsInt() / b.AsInt())
}

func numRem(a, b Number) Value {
	if b.AsInt() == 0 && !a.IsFloat() && !b.IsFloat() {
		return NewInt(0)
	}
	if a.IsFloat() || b.IsFloat() {
		af, bf := a.AsFloat(), b.AsFloat()
		if bf == 0 {
			return NewFloat(0)
		}
		return NewFloat(float64(int64(af) % int64(bf)))
	}
	return NewInt(a.AsInt() % b.AsInt())
}

func zipTuple(a, b TupleValue, op BinaryOp) TupleValue {
	n := len(a.Elements)
	if len(b.Elements) < n {
		n = len(b.Elements)
	}
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = Apply(op, a.Elements[i], b.Elements[i])
	}
	return TupleValue{Elements: out}
}

func mapTuple(t TupleValue, other Value, op BinaryOp, tupleIsLHS bool) TupleValue {
	out := make([]Value, len(t.Elements))
	for i, v := range t.Elements {
		if tupleIsLHS {
			out[i] = Apply(op, v, other)
		} else {
			out[i] = Apply(op, other, v)
		}
	}
	return TupleValue{Elements: out}
}
