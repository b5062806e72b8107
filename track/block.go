package track

/*------------------------------------------------------------------
 *
 * Purpose:	Reference-counted storage for a contiguous run of PCM16
 *		samples.
 *
 * Description:	A block is the only place sample data actually lives.
 *		Every Segment that aliases a block holds one reference;
 *		the block is released when the last Segment referencing
 *		it is destroyed. Two Segments sharing a block is exactly
 *		how cross-track insert and split avoid copying samples.
 *
 *------------------------------------------------------------------*/

// block owns a fixed-size []int16 sample array. refcount tracks how many
// Segments (across any number of Tracks) currently reference it.
type block struct {
	data     []int16
	refcount int
}

// newBlock copies src into a freshly allocated block with refcount 1.
func newBlock(src []int16) *block {
	data := make([]int16, len(src))
	copy(data, src)
	return &block{data: data, refcount: 1}
}

// retain adds one reference to the block. Called whenever a new Segment
// (split sibling, alias, or otherwise) starts pointing at this block.
func (b *block) retain() {
	b.refcount++
}

// release drops one reference, returning true if the block has no
// remaining references and its storage can be dropped.
func (b *block) release() bool {
	b.refcount--
	return b.refcount <= 0
}
