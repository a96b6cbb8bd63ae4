// Package internal holds iterator helpers shared by the register table and
// the script parser.
package internal

import (
	"iter"
)

// IterSeqConcat yields every value of each sequence in turn. The register
// table uses it to walk the fields of all registers in declaration order.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return
				}
			}
		}
	}
}

// IterSeq2Concat yields every pair of each sequence in turn. Collected into
// a map, pairs from later sequences replace earlier ones; the parser layers
// predefined equates over the system equates this way.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
