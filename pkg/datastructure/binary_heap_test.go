package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractOrder(t *testing.T) {
	h := NewMinHeap[Index]()
	h.Insert(NewPriorityQueueNode(int64(5), Index(1)))
	h.Insert(NewPriorityQueueNode(int64(-2), Index(7)))
	h.Insert(NewPriorityQueueNode(int64(3), Index(4)))
	h.Insert(NewPriorityQueueNode(int64(3), Index(2)))
	h.Insert(NewPriorityQueueNode(int64(10), Index(0)))

	want := []Index{7, 2, 4, 1, 0}
	got := make([]Index, 0, len(want))
	for h.Size() > 0 {
		node, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, node.GetItem())
	}
	assert.Equal(t, want, got)

	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)
	assert.Equal(t, int64(9223372036854775807), h.GetMinrank())
}

func TestMinHeapTieBreakByItem(t *testing.T) {
	h := NewMinHeap[Index]()
	for _, item := range []Index{9, 3, 6, 1, 8} {
		h.Insert(NewPriorityQueueNode(int64(0), item))
	}

	prev := Index(0)
	for i := 0; h.Size() > 0; i++ {
		node, err := h.ExtractMin()
		require.NoError(t, err)
		if i > 0 {
			assert.Greater(t, node.GetItem(), prev)
		}
		prev = node.GetItem()
	}
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewMinHeap[Index]()
	h.Insert(NewPriorityQueueNode(int64(10), Index(1)))
	h.Insert(NewPriorityQueueNode(int64(20), Index(2)))
	h.Insert(NewPriorityQueueNode(int64(30), Index(3)))

	require.NoError(t, h.DecreaseKey(NewPriorityQueueNode(int64(5), Index(3))))
	assert.ErrorIs(t, h.DecreaseKey(NewPriorityQueueNode(int64(50), Index(2))), ErrInvalidDecrease)
	assert.ErrorIs(t, h.DecreaseKey(NewPriorityQueueNode(int64(1), Index(9))), ErrKeyNotFound)

	min, err := h.GetMin()
	require.NoError(t, err)
	assert.Equal(t, Index(3), min.GetItem())
	node3 := h.Getitem(3)
	assert.Equal(t, int64(5), node3.GetRank())
}

func TestMinHeapInsertOrDecreaseAfterExtract(t *testing.T) {
	h := NewMinHeap[Index]()
	h.InsertOrDecrease(NewPriorityQueueNode(int64(4), Index(0)))
	h.InsertOrDecrease(NewPriorityQueueNode(int64(2), Index(1)))
	h.InsertOrDecrease(NewPriorityQueueNode(int64(7), Index(1)))
	assert.Equal(t, 2, h.Size())
	node1 := h.Getitem(1)
	assert.Equal(t, int64(2), node1.GetRank())

	node, err := h.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, Index(1), node.GetItem())
	assert.False(t, h.Contains(1))
	assert.True(t, h.Contains(0))

	// an extracted item can be queued again
	h.InsertOrDecrease(NewPriorityQueueNode(int64(1), Index(1)))
	assert.True(t, h.Contains(1))
	node, err = h.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, Index(1), node.GetItem())

	h.Clear()
	assert.Equal(t, 0, h.Size())
	assert.False(t, h.Contains(0))
}
