package track

/*------------------------------------------------------------------
 *
 * Purpose:	The split engine: cut a segment at a local offset and keep
 *		its whole family (ancestors and every descendant view)
 *		consistent.
 *
 * Description:	Splitting any single view of a region must also split
 *		every sibling view and every ancestor, or a later delete of
 *		the now-partially-aliased region could not tell which
 *		sub-piece is actually still viewed by someone. The
 *		algorithm therefore always walks up to the topmost
 *		ancestor first, splits it, and fans the same cut out to
 *		every descendant -- because every member of one "family"
 *		of views is kept at the same length in lockstep (a split
 *		anywhere is immediately propagated everywhere), the same
 *		numeric cut offset is valid at every level without
 *		translation.
 *
 *		Recursion over children is replaced with an explicit
 *		work-list: deep alias trees would otherwise risk a stack
 *		overflow for a cut that has to propagate through many
 *		generations of views.
 *
 *------------------------------------------------------------------*/

// splitJob is one pending (node, cut, left parent, right parent) entry in
// the work-list.
type splitJob struct {
	seg                     *segment
	cutDown                 int
	leftParent, rightParent *segment
}

// splitSegment cuts seg at local offset cutDown, 0 < cutDown < seg.length,
// producing two adjacent segments that together cover seg's original
// range. The cut is applied starting at seg's topmost ancestor and fanned
// out to every descendant, so the whole family stays synchronized.
//
// cutDown == 0 and cutDown == seg.length are accepted and are no-ops (the
// boundary is already aligned); DeleteRange and extractAliasChain rely on
// this when a cut falls on an existing segment boundary.
func splitSegment(seg *segment, cutDown int) {
	root := seg
	for root.parent != nil {
		root = root.parent
	}

	work := []splitJob{{seg: root, cutDown: cutDown}}
	for len(work) > 0 {
		job := work[len(work)-1]
		work = work[:len(work)-1]

		s := job.seg
		if job.cutDown == 0 || job.cutDown == s.length {
			// Already aligned at this boundary; by the lockstep
			// invariant every descendant is too, so there is
			// nothing further to propagate.
			continue
		}

		right := &segment{
			block:  s.block,
			offset: s.offset + job.cutDown,
			length: s.length - job.cutDown,
			next:   s.next,
		}
		s.block.retain()
		s.length = job.cutDown
		s.next = right

		oldChildren := s.children
		s.children = nil
		s.viewRefcount = 0
		right.children = nil
		right.viewRefcount = 0

		s.parent = job.leftParent
		right.parent = job.rightParent
		if job.leftParent != nil {
			job.leftParent.addChild(s)
		}
		if job.rightParent != nil {
			job.rightParent.addChild(right)
		}

		for _, child := range oldChildren {
			work = append(work, splitJob{seg: child, cutDown: job.cutDown, leftParent: s, rightParent: right})
		}
	}
}
