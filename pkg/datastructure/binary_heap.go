package datastructure

import (
	"errors"
	"math"

	"golang.org/x/exp/constraints"
)

var (
	ErrHeapEmpty       = errors.New("heap is empty")
	ErrKeyNotFound     = errors.New("key not found in the heap")
	ErrInvalidDecrease = errors.New("invalid index or new value")
)

type PriorityQueueNode[T constraints.Integer] struct {
	rank int64
	item T
}

func (p *PriorityQueueNode[T]) GetItem() T {
	return p.item
}

func (p *PriorityQueueNode[T]) GetRank() int64 {
	return p.rank
}

func NewPriorityQueueNode[T constraints.Integer](rank int64, item T) PriorityQueueNode[T] {
	return PriorityQueueNode[T]{rank: rank, item: item}
}

// MinHeap binary heap priority queue keyed on rank, equal ranks pop the smaller item first.
// Each item is present at most once; use DecreaseKey to lower the rank of a queued item.
type MinHeap[T constraints.Integer] struct {
	heap []PriorityQueueNode[T]
	pos  map[T]int
}

func NewMinHeap[T constraints.Integer]() *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]PriorityQueueNode[T], 0),
		pos:  make(map[T]int),
	}
}

func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / 2
}

func (h *MinHeap[T]) leftChild(index int) int {
	return 2*index + 1
}

func (h *MinHeap[T]) rightChild(index int) int {
	return 2*index + 2
}

func (h *MinHeap[T]) less(i, j int) bool {
	if h.heap[i].rank != h.heap[j].rank {
		return h.heap[i].rank < h.heap[j].rank
	}
	return h.heap[i].item < h.heap[j].item
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.heap[i].item] = i
	h.pos[h.heap[j].item] = j
}

// heapifyUp move index towards the root while it is smaller than its parent. O(logN).
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.less(index, h.parent(index)) {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown move index towards the leaves while a child is smaller. O(logN).
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		smallest := index
		left := h.leftChild(index)
		right := h.rightChild(index)

		if left < len(h.heap) && h.less(left, smallest) {
			smallest = left
		}
		if right < len(h.heap) && h.less(right, smallest) {
			smallest = right
		}
		if smallest == index {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) isEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

// Clear empties the heap and keeps the allocated buffers.
func (h *MinHeap[T]) Clear() {
	h.heap = h.heap[:0]
	clear(h.pos)
}

func (h *MinHeap[T]) Contains(item T) bool {
	idx, ok := h.pos[item]
	return ok && idx >= 0 && idx < len(h.heap) && h.heap[idx].item == item
}

func (h *MinHeap[T]) GetMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, ErrHeapEmpty
	}
	return h.heap[0], nil
}

func (h *MinHeap[T]) GetMinrank() int64 {
	if h.isEmpty() {
		return math.MaxInt64
	}
	return h.heap[0].rank
}

func (h *MinHeap[T]) Insert(key PriorityQueueNode[T]) {
	h.heap = append(h.heap, key)
	index := h.Size() - 1
	h.pos[key.item] = index
	h.heapifyUp(index)
}

// ExtractMin pop the root. O(logN).
func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, ErrHeapEmpty
	}
	root := h.heap[0]
	last := h.Size() - 1
	h.heap[0] = h.heap[last]
	h.heap = h.heap[:last]
	h.pos[root.item] = -1
	if !h.isEmpty() {
		h.pos[h.heap[0].item] = 0
		h.heapifyDown(0)
	}
	return root, nil
}

// DecreaseKey lower the rank of a queued item. O(logN).
func (h *MinHeap[T]) DecreaseKey(item PriorityQueueNode[T]) error {
	if !h.Contains(item.item) {
		return ErrKeyNotFound
	}
	idx := h.pos[item.item]
	if item.rank > h.heap[idx].rank {
		return ErrInvalidDecrease
	}
	h.heap[idx] = item
	h.heapifyUp(idx)
	return nil
}

// InsertOrDecrease queue item, or lower its rank when it is already queued with a larger one.
func (h *MinHeap[T]) InsertOrDecrease(item PriorityQueueNode[T]) {
	if !h.Contains(item.item) {
		h.Insert(item)
		return
	}
	if item.rank < h.heap[h.pos[item.item]].rank {
		_ = h.DecreaseKey(item)
	}
}

func (h *MinHeap[T]) Getitem(item T) PriorityQueueNode[T] {
	return h.heap[h.pos[item]]
}
