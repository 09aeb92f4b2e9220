// Package analysis computes FIRST and FOLLOW sets over a grammar.Grammar:
// Store holds the sets being built up, keyed by an ordered sequence of
// symbols, and Solve runs the fixed-point procedure that populates a pair
// of Stores (FIRST and FOLLOW) to convergence.
package analysis

import (
	"fmt"
	"strings"

	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/llparse/internal/perr"
)

// Seq is an ordered sequence of grammar symbols used as a Store key. A
// single symbol is a length-one Seq.
type Seq []grammar.Symbol

func (seq Seq) canon() string {
	var b strings.Builder
	for _, s := range seq {
		k := s.Key()
		fmt.Fprintf(&b, "%d:%s|", k.Kind(), k.String())
	}
	return b.String()
}

func (seq Seq) String() string {
	var b strings.Builder
	for i, s := range seq {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// NormalizeKey accepts a grammar.Symbol, a grammar.Alternate, or a []grammar.Symbol
// and returns the equivalent Seq. Any other shape is a programming error, per
// the FIRST/FOLLOW store's key-normalization contract.
func NormalizeKey(v interface{}) (Seq, error) {
	switch x := v.(type) {
	case grammar.Symbol:
		return Seq{x}, nil
	case grammar.Alternate:
		return Seq(x), nil
	case []grammar.Symbol:
		return Seq(x), nil
	case Seq:
		return x, nil
	default:
		return nil, perr.Programming(fmt.Sprintf("unsupported FIRST/FOLLOW key shape %T", v))
	}
}

type bucket struct {
	seq     Seq
	members map[grammar.Key]grammar.Symbol
}

func newBucket(seq Seq) *bucket {
	return &bucket{seq: seq, members: make(map[grammar.Key]grammar.Symbol)}
}

// Store maps a Seq key to a set of grammar symbols. It exposes a single
// Dirty flag that is set whenever an operation materially changes a
// bucket — creates one that did not exist, or widens/narrows its
// contents — so that callers driving a fixed-point loop can clear it and
// detect convergence when a full pass leaves it false.
type Store struct {
	buckets map[string]*bucket
	dirty   bool
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{buckets: make(map[string]*bucket)}
}

// Dirty reports whether any bucket has materially changed since the flag
// was last cleared.
func (s *Store) Dirty() bool { return s.dirty }

// ClearDirty resets the Dirty flag to false.
func (s *Store) ClearDirty() { s.dirty = false }

func (s *Store) bucketFor(seq Seq, create bool) (*bucket, bool) {
	key := seq.canon()
	b, ok := s.buckets[key]
	if !ok && create {
		b = newBucket(seq)
		s.buckets[key] = b
		s.dirty = true
	}
	return b, ok
}

// AddEmpty ensures a bucket exists for seq, creating an empty one if
// absent. Calling AddEmpty on a key that already has a bucket is a no-op
// and does not set Dirty.
func (s *Store) AddEmpty(seq Seq) {
	s.bucketFor(seq, true)
}

// Add unions values into the bucket for seq, creating the bucket if
// necessary. Dirty is set if the bucket was created or gained any new
// member.
func (s *Store) Add(seq Seq, values ...grammar.Symbol) {
	b, _ := s.bucketFor(seq, true)
	for _, v := range values {
		k := v.Key()
		if _, ok := b.members[k]; !ok {
			b.members[k] = v
			s.dirty = true
		}
	}
}

// Remove set-differences values out of the bucket for seq. If seq has no
// bucket, Remove is a no-op. Dirty is set if any member was actually
// removed.
func (s *Store) Remove(seq Seq, values ...grammar.Symbol) {
	b, ok := s.bucketFor(seq, false)
	if !ok {
		return
	}
	for _, v := range values {
		k := v.Key()
		if _, present := b.members[k]; present {
			delete(b.members, k)
			s.dirty = true
		}
	}
}

// Get returns a read-only snapshot of the bucket for seq: the empty slice
// if seq has no bucket. The returned slice is a copy and safe to retain.
func (s *Store) Get(seq Seq) []grammar.Symbol {
	b, ok := s.bucketFor(seq, false)
	if !ok {
		return nil
	}
	out := make([]grammar.Symbol, 0, len(b.members))
	for _, v := range b.members {
		out = append(out, v)
	}
	return out
}

// Has reports whether the bucket for seq contains a symbol equal to sym.
func (s *Store) Has(seq Seq, sym grammar.Symbol) bool {
	b, ok := s.bucketFor(seq, false)
	if !ok {
		return false
	}
	_, present := b.members[sym.Key()]
	return present
}

// Keys returns every Seq that currently has a bucket, in no particular
// order. Used by the solver's rule (a) to iterate "every key currently in
// FIRST".
func (s *Store) Keys() []Seq {
	out := make([]Seq, 0, len(s.buckets))
	for _, b := range s.buckets {
		out = append(out, b.seq)
	}
	return out
}
