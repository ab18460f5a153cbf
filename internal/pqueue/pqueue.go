// Package pqueue provides the sample priority queues used by flooding
// algorithms: a bucket queue for integral rasters and a binary heap for
// floating-point ones. Both pop the highest-priority value first and
// break ties by insertion order (FIFO), so flooding order is fully
// deterministic.
package pqueue

import (
	"container/heap"
	"math"

	"github.com/katalvlaran/voxlab/raster"
)

// Queue is a priority queue of sample indices keyed by sample value.
type Queue interface {
	// Push enqueues sample index i with value v.
	Push(i int, v float32)
	// Pop removes the highest-priority index; ok is false when empty.
	Pop() (i int, ok bool)
	// Len returns the number of queued indices.
	Len() int
}

// Order selects which values have priority.
type Order int

const (
	// Descending pops the largest value first (max-tree flooding).
	Descending Order = iota
	// Ascending pops the smallest value first (min-tree flooding).
	Ascending
)

// ForRaster returns a Queue sized for r: a bucket queue when r is
// integral and every sample is an in-range integer, a heap otherwise.
func ForRaster(r *raster.Raster, order Order) Queue {
	if levels := r.Format().Levels(); levels > 0 && integral(r.Data(), levels) {
		return NewBucket(levels, order)
	}

	return NewHeap(order, r.Len())
}

func integral(data []float32, levels int) bool {
	top := float32(levels - 1)
	for _, v := range data {
		if v < 0 || v > top || v != float32(math.Trunc(float64(v))) {
			return false
		}
	}

	return true
}

// Bucket is a bucket queue over levels integer values. Push and Pop are
// O(1) amortized; popping scans down from the highest non-empty bucket.
type Bucket struct {
	order   Order
	buckets [][]int32
	heads   []int
	top     int // highest bucket that may be non-empty
	n       int
}

// NewBucket returns an empty bucket queue for values in [0, levels).
func NewBucket(levels int, order Order) *Bucket {
	return &Bucket{
		order:   order,
		buckets: make([][]int32, levels),
		heads:   make([]int, levels),
		top:     -1,
	}
}

// key maps a value to its bucket; higher keys pop first.
func (q *Bucket) key(v float32) int {
	k := int(v)
	if q.order == Ascending {
		k = len(q.buckets) - 1 - k
	}
	return k
}

// Push enqueues i. v must be an integer in [0, levels).
func (q *Bucket) Push(i int, v float32) {
	k := q.key(v)
	q.buckets[k] = append(q.buckets[k], int32(i))
	if k > q.top {
		q.top = k
	}
	q.n++
}

// Pop dequeues the oldest index of the highest-priority bucket.
func (q *Bucket) Pop() (int, bool) {
	if q.n == 0 {
		return 0, false
	}
	for q.heads[q.top] == len(q.buckets[q.top]) {
		// drained bucket: release it and move down
		q.buckets[q.top] = q.buckets[q.top][:0]
		q.heads[q.top] = 0
		q.top--
	}
	i := q.buckets[q.top][q.heads[q.top]]
	q.heads[q.top]++
	q.n--

	return int(i), true
}

// Len returns the number of queued indices.
func (q *Bucket) Len() int { return q.n }

// item pairs a sample index with its value and insertion sequence.
type item struct {
	v   float32
	seq int64
	idx int32
}

// itemHeap implements heap.Interface; Less encodes value priority, then
// insertion order.
type itemHeap struct {
	items []item
	order Order
}

func (h *itemHeap) Len() int { return len(h.items) }

func (h *itemHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.v != b.v {
		if h.order == Descending {
			return a.v > b.v
		}
		return a.v < b.v
	}
	return a.seq < b.seq
}

func (h *itemHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *itemHeap) Push(x interface{}) { h.items = append(h.items, x.(item)) }

func (h *itemHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	it := old[n-1]
	h.items = old[:n-1]

	return it
}

// Heap is a binary-heap priority queue for arbitrary float values.
// Push and Pop are O(log n). NaN values sort last.
type Heap struct {
	h   itemHeap
	seq int64
}

// NewHeap returns an empty heap with room for capacity entries.
func NewHeap(order Order, capacity int) *Heap {
	return &Heap{h: itemHeap{items: make([]item, 0, capacity), order: order}}
}

// Push enqueues i with value v.
func (q *Heap) Push(i int, v float32) {
	if v != v { // NaN
		if q.h.order == Descending {
			v = float32(math.Inf(-1))
		} else {
			v = float32(math.Inf(1))
		}
	}
	heap.Push(&q.h, item{v: v, seq: q.seq, idx: int32(i)})
	q.seq++
}

// Pop dequeues the highest-priority index.
func (q *Heap) Pop() (int, bool) {
	if q.h.Len() == 0 {
		return 0, false
	}
	it := heap.Pop(&q.h).(item)

	return int(it.idx), true
}

// Len returns the number of queued indices.
func (q *Heap) Len() int { return q.h.Len() }
