package track

import "github.com/mdunlap/soundseg/internal/soundlog"

/*------------------------------------------------------------------
 *
 * Purpose:	The four edit primitives: Read, Write (overwrite + append),
 *		DeleteRange, and Insert (cross-track, by reference).
 *
 * Description:	Every primitive is defined purely in terms of walking a
 *		Track's segment chain and mapping flat positions to
 *		(segment, local offset) -- see Track.locate. Read copies
 *		samples out to the caller and Write copies src into the
 *		blocks it covers; the only new sample storage is the block
 *		holding Write's append tail. Insert in particular only ever
 *		allocates new Segment nodes that alias an existing block.
 *
 *------------------------------------------------------------------*/

// Read copies up to min(len, Length()-pos) samples starting at pos into
// dst, returning the number of samples actually copied. If pos is at or
// past the end of the track, or len is zero, it copies nothing and
// returns 0. Read never allocates.
func (t *Track) Read(dst []int16, pos, length int) int {
	trackLen := t.Length()
	if pos < 0 || pos >= trackLen || length <= 0 {
		return 0
	}

	toRead := length
	if available := trackLen - pos; available < toRead {
		toRead = available
	}
	if len(dst) < toRead {
		toRead = len(dst)
	}

	remaining := toRead
	destOff := 0
	cur := pos
	segStart := 0
	for s := t.head; s != nil && remaining > 0; s = s.next {
		segEnd := segStart + s.length
		if cur < segEnd {
			localOffset := 0
			if cur > segStart {
				localOffset = cur - segStart
			}
			readable := s.length - localOffset
			chunk := remaining
			if readable < chunk {
				chunk = readable
			}
			copy(dst[destOff:destOff+chunk], s.data()[localOffset:localOffset+chunk])
			cur += chunk
			destOff += chunk
			remaining -= chunk
		}
		segStart = segEnd
	}
	return toRead
}

// Write overwrites the range [pos, min(pos+len, Length())) in place --
// writing through the block of every segment that covers it, so any
// child view or cross-track alias observes the change -- and appends a
// new, unshared segment for whatever part of [pos, pos+len) lies past the
// current end of the track.
//
// If pos is past the current end of the track, the gap
// [Length(), pos) is zero-filled rather than silently shifting src
// backwards; see SPEC_FULL.md §9 for why this resolves the spec's open
// question the other way from the reference implementation.
func (t *Track) Write(src []int16, pos, length int) {
	if length <= 0 {
		return
	}
	if len(src) < length {
		length = len(src)
	}
	if length <= 0 {
		return
	}

	trackLen := t.Length()

	if pos < trackLen {
		overwriteEnd := pos + length
		if overwriteEnd > trackLen {
			overwriteEnd = trackLen
		}
		remaining := overwriteEnd - pos
		srcOff := 0
		cur := pos
		segStart := 0
		for s := t.head; s != nil && remaining > 0; s = s.next {
			segEnd := segStart + s.length
			if cur < segEnd {
				localOffset := 0
				if cur > segStart {
					localOffset = cur - segStart
				}
				available := s.length - localOffset
				chunk := remaining
				if available < chunk {
					chunk = available
				}
				copy(s.data()[localOffset:localOffset+chunk], src[srcOff:srcOff+chunk])
				cur += chunk
				srcOff += chunk
				remaining -= chunk
			}
			segStart = segEnd
		}

		if tailLen := length - srcOff; tailLen > 0 {
			t.appendOrphan(src[srcOff : srcOff+tailLen])
		}
		return
	}

	gap := pos - trackLen
	if gap == 0 {
		t.appendOrphan(src[:length])
		return
	}

	soundlog.Debugf("write: zero-filling %d sample gap before append at pos=%d (track length=%d)", gap, pos, trackLen)
	buf := make([]int16, gap+length)
	copy(buf[gap:], src[:length])
	t.appendOrphan(buf)
}

// canDeleteRange reports whether every segment intersecting
// [pos, pos+length) has a zero view-refcount, i.e. nothing aliases it.
func (t *Track) canDeleteRange(pos, length int) bool {
	segStart := 0
	for s := t.head; s != nil; s = s.next {
		segEnd := segStart + s.length
		if segEnd > pos && segStart < pos+length {
			if s.viewRefcount > 0 {
				return false
			}
		}
		segStart = segEnd
	}
	return true
}

// DeleteRange removes [pos, pos+len) from the track, atomic-or-nothing:
// if any intersecting segment has outstanding views, the whole operation
// is refused and the track is left completely unchanged. Otherwise the
// range is carved out to whole-segment boundaries by the split engine and
// the now-fully-enclosed segments are unlinked, their block references
// released, and their parent's view-refcount decremented.
func (t *Track) DeleteRange(pos, length int) bool {
	trackLen := t.Length()
	if pos < 0 || pos >= trackLen || length <= 0 {
		return false
	}
	if pos+length > trackLen {
		length = trackLen - pos
	}
	if !t.canDeleteRange(pos, length) {
		soundlog.Debugf("delete_range refused: [%d,%d) has outstanding views", pos, pos+length)
		return false
	}

	seg := t.head
	var prev *segment
	curPos := 0

	for seg != nil {
		segStart := curPos
		segEnd := segStart + seg.length

		var toDelete *segment

		if pos < segEnd && pos+length > segStart {
			delStart := 0
			if pos > segStart {
				delStart = pos - segStart
			}
			delEnd := seg.length
			if pos+length < segEnd {
				delEnd = pos + length - segStart
			}

			splitSegment(seg, delEnd)
			splitSegment(seg, delStart)

			if delStart == 0 {
				if prev != nil {
					prev.next = seg.next
				} else {
					t.head = seg.next
				}
				toDelete = seg
			}
		}

		if toDelete != nil {
			if toDelete.parent != nil {
				toDelete.parent.removeChild(toDelete)
			}
			toDelete.block.release()
			curPos += seg.length
			seg = seg.next
		} else {
			curPos += seg.length
			prev = seg
			seg = seg.next
		}
	}

	return true
}

// extractAliasChain walks srcTrack, splitting it so that [srcPos,
// srcPos+length) becomes a whole-segment subchain, and returns a new
// chain of alias segments -- one per source segment in that subchain --
// each aliasing the same block as its source, with view-refcount and
// block-refcount bumped accordingly. Returns (nil, nil) if srcPos is at or
// past the end of srcTrack; if the range runs past the end, the chain
// covers only the part that exists. Insert checks the bounds before
// calling it.
func extractAliasChain(srcTrack *Track, srcPos, length int) (head, tail *segment) {
	seg := srcTrack.head
	curPos := 0
	remaining := length

	for seg != nil && remaining > 0 {
		segStart := curPos
		segEnd := segStart + seg.length

		if srcPos >= segEnd {
			curPos = segEnd
			seg = seg.next
			continue
		}

		localStart := 0
		if srcPos > segStart {
			localStart = srcPos - segStart
		}
		available := seg.length - localStart
		take := remaining
		if available < take {
			take = available
		}

		splitSegment(seg, localStart+take)
		splitSegment(seg, localStart)

		if localStart == 0 {
			alias := &segment{
				block:  seg.block,
				offset: seg.offset,
				length: seg.length,
				parent: seg,
			}
			seg.addChild(alias)
			seg.block.retain()

			if head == nil {
				head, tail = alias, alias
			} else {
				tail.next = alias
				tail = alias
			}

			remaining -= take
			srcPos += take
		}

		curPos += seg.length
		seg = seg.next
	}

	return head, tail
}

// Insert aliases length samples starting at srcPos in src into dst at
// dstPos, without copying any sample data: it splits src so the requested
// range is a whole-segment subchain, creates one alias Segment per piece
// that shares the same block, and splices the alias chain into dst
// (splitting dst at dstPos first if necessary). Returns false and leaves
// both tracks unchanged if the bounds are invalid.
func Insert(src, dst *Track, dstPos, srcPos, length int) bool {
	if length <= 0 {
		return false
	}
	if srcPos < 0 || srcPos+length > src.Length() || dstPos < 0 || dstPos > dst.Length() {
		return false
	}

	chainHead, chainTail := extractAliasChain(src, srcPos, length)
	if chainHead == nil {
		return false
	}

	dst.insertChainAt(dstPos, chainHead, chainTail)
	return true
}
