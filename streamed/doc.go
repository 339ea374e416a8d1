// Package streamed implements a tensor representation optimized for
// single-pass consumption.
//
// Cells and labels are stored exactly as they were appended. Nothing is
// sorted or indexed: full enumeration walks the labels in order, and every
// filtered lookup is a linear scan. This makes construction from already
// flat data (e.g. freshly decoded wire data) cheap, at the cost of slow
// repeated random access. Use the packed representation for that.
package streamed
