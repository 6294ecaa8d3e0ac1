package blob

const (
	edgeFifoSize   = 8
	vertexFifoSize = 16

	// invalidIndex seeds the FIFO tables. It can only be observed through a
	// corrupted blob, where garbage output is the documented behavior.
	invalidIndex = ^uint32(0)
)

// Vertex kinds occupy the low 2 bits of every code byte position and select
// how a single vertex index is represented in the stream.
const (
	vertexKindNext    = 0 // the next sequential new vertex (next, then next++)
	vertexKindLast    = 1 // equal to the last literal baseline
	vertexKindFifo    = 2 // vertex FIFO hit; one aux byte holds the slot
	vertexKindLiteral = 3 // aux uvarint of zigzag(delta from last); updates last
)

type edgeEntry struct {
	a, b uint32
}

// indexState is the rolling prediction state replayed identically by the
// index encoder and decoder. Both tables are fixed arrays addressed through
// ring offsets, so memory use is constant regardless of mesh size and the
// state resets cheaply per call.
type indexState struct {
	edges      [edgeFifoSize]edgeEntry
	verts      [vertexFifoSize]uint32
	edgeOffset uint32
	vertOffset uint32

	// next is the expected value of the next never-before-seen vertex;
	// last is the baseline for literal delta coding.
	next uint32
	last uint32
}

func newIndexState() indexState {
	var s indexState
	for i := range s.edges {
		s.edges[i] = edgeEntry{invalidIndex, invalidIndex}
	}
	for i := range s.verts {
		s.verts[i] = invalidIndex
	}

	return s
}

// pushEdge records a directed edge. Emitted triangles push their edges
// reversed so that a later adjacent triangle with consistent winding matches
// with a direct comparison.
func (s *indexState) pushEdge(a, b uint32) {
	s.edges[s.edgeOffset&(edgeFifoSize-1)] = edgeEntry{a, b}
	s.edgeOffset++
}

// edgeAt returns the edge at the given slot, slot 0 being the most recent.
func (s *indexState) edgeAt(slot uint32) edgeEntry {
	return s.edges[(s.edgeOffset-1-slot)&(edgeFifoSize-1)]
}

func (s *indexState) pushVertex(v uint32) {
	s.verts[s.vertOffset&(vertexFifoSize-1)] = v
	s.vertOffset++
}

// vertexAt returns the vertex at the given slot, slot 0 being the most recent.
func (s *indexState) vertexAt(slot uint32) uint32 {
	return s.verts[(s.vertOffset-1-slot)&(vertexFifoSize-1)]
}

// findVertex returns the lowest (newest-first) slot holding v, or -1.
func (s *indexState) findVertex(v uint32) int {
	for slot := uint32(0); slot < vertexFifoSize; slot++ {
		if s.vertexAt(slot) == v {
			return int(slot)
		}
	}

	return -1
}

// apply folds a coded or decoded vertex into the state. The transition
// depends only on the vertex value and its kind, both of which the decoder
// reconstructs exactly, keeping the two sides in lockstep.
func (s *indexState) apply(v uint32, kind byte) {
	switch kind {
	case vertexKindNext:
		s.next++
	case vertexKindLiteral:
		s.last = v
	}

	if kind == vertexKindNext || kind == vertexKindLiteral {
		s.pushVertex(v)
	}
}
