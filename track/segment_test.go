package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrphanSegmentHasNoEdges(t *testing.T) {
	b := newBlock([]int16{1, 2, 3})
	seg := newOrphanSegment(b, 0, 3)

	assert.Nil(t, seg.parent)
	assert.Empty(t, seg.children)
	assert.Equal(t, 0, seg.viewRefcount)
	assert.Equal(t, []int16{1, 2, 3}, seg.data())
}

func TestAddChildBumpsViewRefcount(t *testing.T) {
	b := newBlock([]int16{1, 2, 3, 4})
	parent := newOrphanSegment(b, 0, 4)
	child := &segment{block: b, offset: 0, length: 2}

	parent.addChild(child)
	assert.Equal(t, 1, parent.viewRefcount)
	assert.Contains(t, parent.children, child)
}

func TestRemoveChildDropsViewRefcount(t *testing.T) {
	b := newBlock([]int16{1, 2, 3, 4})
	parent := newOrphanSegment(b, 0, 4)
	childA := &segment{block: b, offset: 0, length: 2}
	childB := &segment{block: b, offset: 2, length: 2}
	parent.addChild(childA)
	parent.addChild(childB)

	parent.removeChild(childA)
	assert.Equal(t, 1, parent.viewRefcount)
	assert.NotContains(t, parent.children, childA)
	assert.Contains(t, parent.children, childB)
}

func TestRemoveChildNotPresentIsNoop(t *testing.T) {
	b := newBlock([]int16{1, 2})
	parent := newOrphanSegment(b, 0, 2)
	stranger := &segment{block: b, offset: 0, length: 2}

	parent.removeChild(stranger)
	assert.Equal(t, 0, parent.viewRefcount)
}

func TestSegmentDataWindowsIntoBlock(t *testing.T) {
	b := newBlock([]int16{10, 20, 30, 40})
	seg := &segment{block: b, offset: 1, length: 2}
	assert.Equal(t, []int16{20, 30}, seg.data())
}
