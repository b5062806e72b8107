package track

/*------------------------------------------------------------------
 *
 * Purpose:	A Segment is a view (block, offset, length) into a Sample
 *		Block, plus the graph edges that let splitting and
 *		aliasing stay consistent: a parent this segment is a view
 *		of (if any), the children that are views of it, and a
 *		view_refcount that gates deletion.
 *
 * Description:	Segments live in exactly one Track's chain at a time
 *		(linked by `next`), but `parent`/`children` edges cross
 *		Track boundaries freely -- that's what makes cross-track
 *		insert a reference rather than a copy.
 *
 *------------------------------------------------------------------*/

// segment is one link in a Track's chain: a view into a block, plus the
// parent/child edges used by the split engine and by cross-track aliasing.
type segment struct {
	block  *block
	offset int
	length int

	parent       *segment
	children     []*segment
	viewRefcount int

	next *segment
}

// newOrphanSegment creates a segment that owns its block outright: no
// parent, no children, nothing aliasing it yet. This is the shape produced
// by append and by the tail of Write.
func newOrphanSegment(b *block, offset, length int) *segment {
	return &segment{block: b, offset: offset, length: length}
}

// addChild records that child is a view into seg, bumping seg's
// view-refcount by exactly one (it does not touch block refcounts; the
// caller is responsible for that, since not every child addition implies
// a new block reference -- see split, where children are reassigned
// without retaining the block again).
func (seg *segment) addChild(child *segment) {
	seg.children = append(seg.children, child)
	seg.viewRefcount++
}

// removeChild unlinks child from seg's children list and drops seg's
// view-refcount by one. No-op if child is not actually a child of seg.
func (seg *segment) removeChild(child *segment) {
	for i, c := range seg.children {
		if c == child {
			seg.children = append(seg.children[:i], seg.children[i+1:]...)
			seg.viewRefcount--
			return
		}
	}
}

// data returns the slice of the underlying block this segment currently
// views. It is always exactly seg.length samples long.
func (seg *segment) data() []int16 {
	return seg.block.data[seg.offset : seg.offset+seg.length]
}
