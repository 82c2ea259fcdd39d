// Package relational implements the operators that combine containers:
//
//   - Merge: equality-key inner join of two frames
//   - Concat: stacking of frames over the union of their columns
//   - Zip: positional combination of series, truncated to the shortest
//
// Each operator checks its preconditions when called and returns a new
// container whose contents are computed on first read. Operands are never
// modified.
package relational
