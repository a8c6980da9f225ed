package query

import (
	"strings"
	"time"
)

// FieldReader resolves a field to its value for one row. A nil value with
// ok=true means the field is null for that row; ok=false means the field's
// relation is absent (a required join drops the row).
type FieldReader func(f Field) (value any, ok bool)

// Eval interprets a predicate against one row. It mirrors SQL three-valued
// logic closely enough for this engine: comparisons against null are false.
func Eval(p Predicate, read FieldReader) bool {
	switch pred := p.(type) {
	case Compare:
		v, ok := read(pred.Field)
		if !ok || v == nil {
			return false
		}
		return compare(v, pred.Op, pred.Value)
	case In:
		v, ok := read(pred.Field)
		if !ok || v == nil {
			return false
		}
		for _, want := range pred.Values {
			if equal(v, want) {
				return true
			}
		}
		return false
	case NotIn:
		v, ok := read(pred.Field)
		if !ok || v == nil {
			return false
		}
		for _, want := range pred.Values {
			if equal(v, want) {
				return false
			}
		}
		return true
	case Null:
		v, ok := read(pred.Field)
		isNull := !ok || v == nil
		if pred.Not {
			return !isNull
		}
		return isNull
	case Contains:
		v, ok := read(pred.Field)
		if !ok || v == nil {
			return false
		}
		s, isStr := v.(string)
		if !isStr {
			return false
		}
		return strings.Contains(strings.ToLower(s), strings.ToLower(pred.Term))
	case Or:
		for _, child := range pred {
			if Eval(child, read) {
				return true
			}
		}
		return false
	case And:
		for _, child := range pred {
			if !Eval(child, read) {
				return false
			}
		}
		return true
	}
	return false
}

// EvalAll applies a conjunctive predicate list.
func EvalAll(preds []Predicate, read FieldReader) bool {
	for _, p := range preds {
		if !Eval(p, read) {
			return false
		}
	}
	return true
}

func compare(v any, op Op, want any) bool {
	if op == OpEq {
		return equal(v, want)
	}
	if a, b, ok := asInt64Pair(v, want); ok {
		if op == OpGte {
			return a >= b
		}
		return a <= b
	}
	if a, aok := v.(time.Time); aok {
		if b, bok := want.(time.Time); bok {
			if op == OpGte {
				return !a.Before(b)
			}
			return !a.After(b)
		}
	}
	return false
}

func equal(v, want any) bool {
	if a, b, ok := asInt64Pair(v, want); ok {
		return a == b
	}
	if a, aok := v.(time.Time); aok {
		if b, bok := want.(time.Time); bok {
			return a.Equal(b)
		}
	}
	return v == want
}

func asInt64Pair(v, want any) (int64, int64, bool) {
	a, aok := asInt64(v)
	b, bok := asInt64(want)
	return a, b, aok && bok
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	}
	return 0, false
}
