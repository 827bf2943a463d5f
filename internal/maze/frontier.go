package maze

// bucket is an intrusive FIFO of cell indices. All buckets of a frontier
// share one next array, which works because a cell is queued in at most
// one bucket at a time.
type bucket struct {
	head, tail int
	size       int
}

type queueState int8

const (
	idle queueState = iota
	queued
	dropped // popped and rejected, never queued again
)

type frontier struct {
	buckets []bucket
	next    []int
	state   []queueState
}

func newFrontier(weightRange, cells int) *frontier {
	f := &frontier{
		buckets: make([]bucket, weightRange),
		next:    make([]int, cells),
		state:   make([]queueState, cells),
	}
	for i := range f.buckets {
		f.buckets[i] = bucket{head: -1, tail: -1}
	}
	return f
}

// push appends cell i to bucket w unless it is queued already or has been
// dropped. It reports whether the cell was added.
func (f *frontier) push(w, i int) bool {
	if f.state[i] != idle {
		return false
	}
	b := &f.buckets[w]
	if b.tail >= 0 {
		f.next[b.tail] = i
	} else {
		b.head = i
	}
	b.tail = i
	f.next[i] = -1
	b.size++
	f.state[i] = queued
	return true
}

// lowest returns the index of the first non-empty bucket, or -1.
func (f *frontier) lowest() int {
	for w := range f.buckets {
		if f.buckets[w].size > 0 {
			return w
		}
	}
	return -1
}

// pop removes the front of bucket w. The bucket must be non-empty.
func (f *frontier) pop(w int) int {
	b := &f.buckets[w]
	i := b.head
	b.head = f.next[i]
	if b.head < 0 {
		b.tail = -1
	}
	b.size--
	f.state[i] = idle
	return i
}

func (f *frontier) drop(i int) {
	f.state[i] = dropped
}

func (f *frontier) len() (n int) {
	for _, b := range f.buckets {
		n += b.size
	}
	return
}
