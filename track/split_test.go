package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSegmentProducesTwoAdjacentPieces(t *testing.T) {
	tr := NewTrack()
	tr.appendOrphan([]int16{1, 2, 3, 4, 5})
	seg := tr.head

	splitSegment(seg, 2)

	assert.Equal(t, 2, seg.length)
	assert.Equal(t, []int16{1, 2}, seg.data())

	right := seg.next
	assert.NotNil(t, right)
	assert.Equal(t, 3, right.length)
	assert.Equal(t, []int16{3, 4, 5}, right.data())

	assert.Equal(t, 5, tr.Length())
}

func TestSplitAtBoundaryIsNoop(t *testing.T) {
	tr := NewTrack()
	tr.appendOrphan([]int16{1, 2, 3})
	seg := tr.head

	splitSegment(seg, 0)
	assert.Equal(t, 3, seg.length)
	assert.Nil(t, seg.next)

	splitSegment(seg, 3)
	assert.Equal(t, 3, seg.length)
	assert.Nil(t, seg.next)
}

func TestSplitPropagatesToChildren(t *testing.T) {
	tr := NewTrack()
	tr.appendOrphan([]int16{1, 2, 3, 4})
	parent := tr.head

	child := &segment{block: parent.block, offset: parent.offset, length: parent.length, parent: parent}
	parent.addChild(child)
	parent.block.retain()

	splitSegment(parent, 1)

	assert.Equal(t, 1, parent.length)
	right := parent.next
	assert.Equal(t, 3, right.length)

	assert.Equal(t, 1, child.length)
	assert.Equal(t, 1, parent.viewRefcount)
	assert.Contains(t, parent.children, child)

	childRight := child.next
	assert.NotNil(t, childRight)
	assert.Equal(t, 3, childRight.length)
	assert.Equal(t, 1, right.viewRefcount)
	assert.Contains(t, right.children, childRight)
}

func TestSplitAscendsToRootBeforeCutting(t *testing.T) {
	tr := NewTrack()
	tr.appendOrphan([]int16{1, 2, 3, 4})
	root := tr.head

	mid := &segment{block: root.block, offset: root.offset, length: root.length, parent: root}
	root.addChild(mid)
	root.block.retain()

	leaf := &segment{block: mid.block, offset: mid.offset, length: mid.length, parent: mid}
	mid.addChild(leaf)
	mid.block.retain()

	splitSegment(leaf, 2)

	assert.Equal(t, 2, root.length, "splitting a leaf must ascend to the root first")
	assert.Equal(t, 2, mid.length)
	assert.Equal(t, 2, leaf.length)
	assert.NotNil(t, root.next)
	assert.NotNil(t, mid.next)
	assert.NotNil(t, leaf.next)
}
