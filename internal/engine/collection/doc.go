// Package collection provides the lists the undo engine edits.
//
// Three shapes are supported:
//   - Ordered: a flat sequence of items addressed by position.
//   - Named: an Ordered list with a name to index lookup.
//   - Nested: a sequence of parents, each owning an Ordered child list.
//
// Positions are always contiguous from 0 to Len()-1. Methods that receive an
// index outside that range panic: lists are only mutated by commands, and
// commands validate indexes before they are constructed.
package collection
