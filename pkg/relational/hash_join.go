package relational

import (
	"dataforge/pkg/frame"
	"dataforge/pkg/values"
)

// hashJoin implements the equi-join behind Merge.
//
// The algorithm works in two phases:
// 1. Build phase: hash the right rows by their canonical key
// 2. Probe phase: for each left row, in order, emit every right match in order
//
// When a custom equality is configured, or some key cannot be hashed, the
// build phase is skipped and every left row is compared against every right
// row. Both paths emit the same rows in the same order.
type hashJoin struct {
	leftKey  int
	rightKey int
	equal    values.Equality[any] // nil means values.Equal
}

func (j *hashJoin) run(left, right []frame.Row) []frame.Row {
	if j.equal == nil {
		if table, ok := j.build(right); ok {
			return j.probe(left, right, table)
		}
	}
	return j.nestedLoop(left, right)
}

// build maps each canonical right key to the positions of its rows, in
// order. It reports false if any right key is not hashable.
func (j *hashJoin) build(right []frame.Row) (map[any][]int, bool) {
	table := make(map[any][]int, len(right))
	for i, r := range right {
		k, ok := values.Key(r[j.rightKey])
		if !ok {
			return nil, false
		}
		table[k] = append(table[k], i)
	}
	return table, true
}

func (j *hashJoin) probe(left, right []frame.Row, table map[any][]int) []frame.Row {
	out := make([]frame.Row, 0)
	for _, l := range left {
		k, ok := values.Key(l[j.leftKey])
		if !ok {
			// An unhashable left key cannot equal any hashable right key.
			continue
		}
		for _, ri := range table[k] {
			out = append(out, j.combine(l, right[ri]))
		}
	}
	return out
}

func (j *hashJoin) nestedLoop(left, right []frame.Row) []frame.Row {
	equal := j.equal
	if equal == nil {
		equal = values.Equal
	}

	out := make([]frame.Row, 0)
	for _, l := range left {
		for _, r := range right {
			if equal(l[j.leftKey], r[j.rightKey]) {
				out = append(out, j.combine(l, r))
			}
		}
	}
	return out
}

// combine builds (key, left non-key values..., right non-key values...).
func (j *hashJoin) combine(l, r frame.Row) frame.Row {
	row := make(frame.Row, 0, len(l)+len(r)-1)
	row = append(row, l[j.leftKey])
	for i, v := range l {
		if i != j.leftKey {
			row = append(row, v)
		}
	}
	for i, v := range r {
		if i != j.rightKey {
			row = append(row, v)
		}
	}
	return row
}
