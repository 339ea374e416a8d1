// Package packed implements the packed-mixed tensor representation.
//
// A packed tensor is immutable and lives in a single arena block:
//
//	+--------+-----------------------------+------------+
//	| header | address table (16-aligned)  |   cells    |
//	+--------+-----------------------------+------------+
//
// The address table is sorted, so point lookups are a binary search and
// filtered lookups resolve labels once per Lookup call. The label store
// holding the distinct label handles is kept beside the block because
// labels contain pointers.
//
// CreateView picks one of three views from the filtered dimensions:
// full enumeration, point lookup or filtered scan.
package packed
