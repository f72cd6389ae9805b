package domain

import "sync/atomic"

// TreeID identifies a node within one loaded tree snapshot. It is process
// local and never persisted.
type TreeID int

// RootID is the sentinel parent of top-level nodes.
const RootID TreeID = 0

// IDGenerator hands out tree identifiers.
type IDGenerator interface {
	Next() TreeID
	// Reset restarts the sequence. Only call it once no tree built from the
	// previous sequence is still in use.
	Reset()
}

// SequenceGenerator is a monotonically increasing IDGenerator starting at 1.
type SequenceGenerator struct {
	last atomic.Int64
}

// NewSequenceGenerator creates a generator whose first id is 1.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

func (g *SequenceGenerator) Next() TreeID {
	return TreeID(g.last.Add(1))
}

func (g *SequenceGenerator) Reset() {
	g.last.Store(0)
}
