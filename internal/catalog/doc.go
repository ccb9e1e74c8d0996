// Package catalog keeps the records of produced artifacts.
//
// A Catalog is an ordered slice of Record values addressed by position.
// Positions are not stable: after Remove, Delete or Sort callers must
// re-resolve indices. SequenceID is the only identity that survives, and it
// is assigned by Insert, strictly increasing and never reused.
//
// The catalog is not safe for concurrent use. Every ccrypt workflow owns the
// catalog it is given for the duration of one operation.
package catalog
