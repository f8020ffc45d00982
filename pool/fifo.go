package pool

const minFIFOCapacity = 16

// fifo is an unbounded ring buffer. The capacity is always a power of two
// so positions wrap with a mask. Not safe for concurrent use.
type fifo[T any] struct {
	buf  []T
	head int
	size int
}

func (q *fifo[T]) len() int {
	return q.size
}

func (q *fifo[T]) push(v T) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)&(len(q.buf)-1)] = v
	q.size++
}

func (q *fifo[T]) pop() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	v := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) & (len(q.buf) - 1)
	q.size--
	return v, true
}

func (q *fifo[T]) grow() {
	buf := make([]T, nextPowerOfTwo(max(2*len(q.buf), minFIFOCapacity)))
	for i := range q.size {
		buf[i] = q.buf[(q.head+i)&(len(q.buf)-1)]
	}
	q.buf = buf
	q.head = 0
}

// nextPowerOfTwo returns the next power of 2 >= n
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	if n&(n-1) == 0 {
		return n
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
