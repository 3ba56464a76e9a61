package cron

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// stepWindow bounds how many terms `*/n` generates: indexes 0..stepWindow/n.
// It is deliberately independent of the target field's range; terms beyond
// the range are pruned when the schedule is assembled.
const stepWindow = 120

type fieldKind int

const (
	kindAny fieldKind = iota
	kindSingle
	kindMany
	kindText
)

// Field is the raw constraint for one schedule field. It is one of:
// unconstrained, a single value, an explicit value list, or a textual
// sub-expression to be parsed.
type Field struct {
	kind   fieldKind
	single int
	many   []int
	text   string
}

// Any matches every value in the field's legal range.
func Any() Field {
	return Field{kind: kindAny}
}

// Value constrains the field to a single integer.
func Value(v int) Field {
	return Field{kind: kindSingle, single: v}
}

// Values constrains the field to an explicit list of integers.
func Values(vs ...int) Field {
	return Field{kind: kindMany, many: vs}
}

// Spec constrains the field with a textual cron sub-expression such as
// "*", "5", "1,15", "1-5" or "*/10".
func Spec(s string) Field {
	return Field{kind: kindText, text: s}
}

// resolve turns the constraint into a sorted value sequence, or nil meaning
// unconstrained. Non-text variants pass through without range validation;
// filtering against the field's legal range happens at schedule assembly.
func (f Field) resolve() ([]int, bool, error) {
	switch f.kind {
	case kindAny:
		return nil, false, nil
	case kindSingle:
		return []int{f.single}, true, nil
	case kindMany:
		vs := make([]int, len(f.many))
		copy(vs, f.many)
		return vs, true, nil
	default:
		return parseFieldText(f.text)
	}
}

// parseFieldText applies the field grammar rules in order: wildcard, comma
// list, bare integer, wildcard step, inclusive range. The boolean result is
// false when the field is unconstrained.
func parseFieldText(text string) ([]int, bool, error) {
	switch {
	case text == "*":
		return nil, false, nil

	case strings.Contains(text, ","):
		set := map[int]struct{}{}
		for _, part := range strings.Split(text, ",") {
			vs, constrained, err := parseFieldText(part)
			if err != nil {
				return nil, false, err
			}
			if !constrained {
				continue
			}
			for _, v := range vs {
				set[v] = struct{}{}
			}
		}
		vs := make([]int, 0, len(set))
		for v := range set {
			vs = append(vs, v)
		}
		sort.Ints(vs)
		return vs, true, nil

	default:
		if v, err := strconv.Atoi(text); err == nil {
			return []int{v}, true, nil
		}
	}

	if rest, ok := strings.CutPrefix(text, "*/"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n <= 0 {
			return nil, false, fmt.Errorf("bad step %q: %w", text, ErrInvalidExpression)
		}
		var vs []int
		for i := 0; i*n <= stepWindow; i++ {
			vs = append(vs, i*n)
		}
		return vs, true, nil
	}

	if strings.Contains(text, "-") {
		parts := strings.Split(text, "-")
		if len(parts) != 2 {
			return nil, false, fmt.Errorf("bad range %q: %w", text, ErrInvalidExpression)
		}
		low, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, false, fmt.Errorf("bad range %q: %w", text, ErrInvalidExpression)
		}
		high, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, false, fmt.Errorf("bad range %q: %w", text, ErrInvalidExpression)
		}
		if low > high {
			return nil, false, fmt.Errorf("reversed range %q: %w", text, ErrInvalidExpression)
		}
		vs := make([]int, 0, high-low+1)
		for v := low; v <= high; v++ {
			vs = append(vs, v)
		}
		return vs, true, nil
	}

	return nil, false, fmt.Errorf("unparsable field %q: %w", text, ErrInvalidExpression)
}
