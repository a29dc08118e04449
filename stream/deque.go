package stream

// Unbounded is the capacity of a deque that never evicts.
const Unbounded = -1

// Deque is a double-ended ring buffer. With a non-negative capacity,
// PushBack evicts the oldest item once full.
type Deque[T any] struct {
	items    []T
	head     int
	size     int
	capacity int
}

// NewDeque creates a deque holding at most capacity items, or any number
// of items for Unbounded.
func NewDeque[T any](capacity int) *Deque[T] {
	initial := capacity
	if initial <= 0 || initial > 64 {
		initial = 8
	}
	return &Deque[T]{items: make([]T, initial), capacity: capacity}
}

// Len returns the number of items.
func (d *Deque[T]) Len() int { return d.size }

// Full reports whether a bounded deque holds capacity items.
func (d *Deque[T]) Full() bool { return d.capacity >= 0 && d.size == d.capacity }

// PushBack appends v. On a full bounded deque the oldest item is evicted
// and returned with ok=true.
func (d *Deque[T]) PushBack(v T) (evicted T, ok bool) {
	if d.capacity == 0 {
		return v, true
	}
	if d.Full() {
		evicted, ok = d.PopFront()
	} else if d.size == len(d.items) {
		d.grow()
	}
	d.items[(d.head+d.size)%len(d.items)] = v
	d.size++
	return evicted, ok
}

// PopFront removes and returns the oldest item.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.size == 0 {
		return zero, false
	}
	v := d.items[d.head]
	d.items[d.head] = zero
	d.head = (d.head + 1) % len(d.items)
	d.size--
	return v, true
}

// At returns the i-th item counting from the oldest.
func (d *Deque[T]) At(i int) T {
	return d.items[(d.head+i)%len(d.items)]
}

// Slice copies the items, oldest first.
func (d *Deque[T]) Slice() []T {
	out := make([]T, d.size)
	for i := range out {
		out[i] = d.At(i)
	}
	return out
}

func (d *Deque[T]) grow() {
	items := make([]T, len(d.items)*2)
	for i := 0; i < d.size; i++ {
		items[i] = d.At(i)
	}
	d.items = items
	d.head = 0
}
