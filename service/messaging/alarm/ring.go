package alarm

const minRingSize = 8

// ring is a growable FIFO of normal payloads. It is not safe for concurrent
// use; the owning queue serializes access.
type ring[T any] struct {
	buf  []T
	head int
	size int
	// reserve is consulted before the buffer grows to the given number of slots.
	reserve func(slots int) error
	limit   int
}

func (r *ring[T]) len() int { return r.size }

func (r *ring[T]) cap() int { return len(r.buf) }

// push appends v at the tail; it fails only when the buffer is full and can not grow.
func (r *ring[T]) push(v T) error {
	if r.size == len(r.buf) {
		if err := r.grow(); err != nil {
			return err
		}
	}
	r.buf[(r.head+r.size)%len(r.buf)] = v
	r.size++
	return nil
}

// pop removes the head; the vacated slot is zeroed so the ring keeps no reference.
func (r *ring[T]) pop() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.size--
	if r.size == 0 {
		r.head = 0
	}
	return v, true
}

func (r *ring[T]) grow() error {
	next := 2 * len(r.buf)
	if next < minRingSize {
		next = minRingSize
	}
	if r.limit > 0 {
		if r.size >= r.limit {
			return errCapacity
		}
		if next > r.limit {
			next = r.limit
		}
	}
	if r.reserve != nil {
		if err := r.reserve(next); err != nil {
			return err
		}
	}
	buf := make([]T, next)
	n := copy(buf, r.buf[r.head:])
	copy(buf[n:], r.buf[:r.head])
	r.buf = buf
	r.head = 0
	return nil
}

// release drops the backing storage.
func (r *ring[T]) release() {
	r.buf = nil
	r.head = 0
	r.size = 0
}
