package track

/*------------------------------------------------------------------
 *
 * Purpose:	A Track presents a flat sample-position space built out of
 *		a chain of Segments. Reading, writing, deleting and
 *		inserting are all defined in terms of walking this chain
 *		and mapping a flat position to (segment, local offset).
 *
 *------------------------------------------------------------------*/

// Track is an ordered chain of segments presenting samples [0, Length()).
// Two Tracks may share Sample Blocks (and, via parent/child edges, entire
// Segments' storage) but never share a Segment node directly.
type Track struct {
	head *segment
}

// NewTrack returns a new, empty Track.
func NewTrack() *Track {
	return &Track{}
}

// Length returns the total sample count of the track: the sum of its
// segment lengths. O(n) in segment count, matching the C original --
// no length cache is maintained.
func (t *Track) Length() int {
	n := 0
	for s := t.head; s != nil; s = s.next {
		n += s.length
	}
	return n
}

// Destroy releases every segment this track owns, dropping one reference
// from each segment's block. Blocks whose refcount reaches zero are
// freed (in Go, simply become eligible for garbage collection once
// unreferenced). Mirrors tr_destroy: it does not attempt to fix up any
// parent's children list or view_refcount, since tearing down a whole
// track is an unconditional operation, unlike deleting a sub-range.
func (t *Track) Destroy() {
	for s := t.head; s != nil; {
		next := s.next
		s.block.release()
		s.block = nil
		s.next = nil
		s = next
	}
	t.head = nil
}

// tail returns the last segment in the chain, or nil if the track is
// empty.
func (t *Track) tail() *segment {
	if t.head == nil {
		return nil
	}
	s := t.head
	for s.next != nil {
		s = s.next
	}
	return s
}

// locate walks the chain to find the segment covering flat position pos.
// It returns the segment, the segment preceding it in the chain (nil if
// it is the head), and the flat position at which the segment begins.
// If pos is at or past the end of the track, seg is nil.
func (t *Track) locate(pos int) (seg *segment, prev *segment, segStart int) {
	cur := t.head
	var p *segment
	start := 0
	for cur != nil {
		end := start + cur.length
		if pos < end {
			return cur, p, start
		}
		start = end
		p = cur
		cur = cur.next
	}
	return nil, p, start
}

// appendOrphan adds a brand-new, unshared segment covering src to the end
// of the chain. The segment introduces its own block (refcount 1, no
// parent, no children), so it is freely deletable on its own.
func (t *Track) appendOrphan(src []int16) {
	if len(src) == 0 {
		return
	}
	b := newBlock(src)
	seg := newOrphanSegment(b, 0, len(src))

	if t.head == nil {
		t.head = seg
		return
	}
	t.tail().next = seg
}

// insertChainAt splices the chain head..tail (already-constructed segments,
// linked via `next`) into this track so that it begins at flat position
// pos. pos must be <= Length(); if it falls inside an existing segment,
// that segment is split first so the splice point lands on a segment
// boundary.
func (t *Track) insertChainAt(pos int, chainHead, chainTail *segment) {
	if pos == 0 {
		chainTail.next = t.head
		t.head = chainHead
		return
	}

	seg, prev, segStart := t.locate(pos)
	if seg == nil {
		// pos == Length(): splice after the current tail.
		if prev == nil {
			t.head = chainHead
			return
		}
		prev.next = chainHead
		return
	}

	localOffset := pos - segStart
	if localOffset != 0 {
		splitSegment(seg, localOffset)
		// After splitting, seg (the left half) is unchanged in
		// identity; the new right half is seg.next.
	}

	if localOffset == 0 {
		if prev == nil {
			chainTail.next = t.head
			t.head = chainHead
		} else {
			chainTail.next = seg
			prev.next = chainHead
		}
		return
	}

	chainTail.next = seg.next
	seg.next = chainHead
}
