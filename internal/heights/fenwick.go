package heights

import "math/bits"

// fenwick is a binary indexed tree over item heights. Slot i+1 of tree holds
// the partial sum for item i, so every query and update walks at most
// log2(size)+1 slots.
type fenwick struct {
	tree []int
	size int
	// mask is the highest power of two <= size, the first step of a descent.
	mask int
	// probes counts slots visited by prefix and search.
	probes uint64
}

// newFenwick builds a tree of size items that all start at fill, in O(size).
func newFenwick(size, fill int) *fenwick {
	f := &fenwick{
		tree: make([]int, size+1),
		size: size,
	}
	if size > 0 {
		f.mask = 1 << (bits.Len(uint(size)) - 1)
	}

	for i := 1; i <= size; i++ {
		f.tree[i] += fill
		if parent := i + (i & -i); parent <= size {
			f.tree[parent] += f.tree[i]
		}
	}
	return f
}

// add adds delta to item i (0-based).
func (f *fenwick) add(i, delta int) {
	for j := i + 1; j <= f.size; j += j & -j {
		f.tree[j] += delta
	}
}

// prefix returns the sum of the first n items.
func (f *fenwick) prefix(n int) int {
	sum := 0
	for j := n; j > 0; j -= j & -j {
		f.probes++
		sum += f.tree[j]
	}
	return sum
}

// search returns the largest n such that prefix(n) <= offset. Item heights
// must be positive for the answer to be unique.
func (f *fenwick) search(offset int) int {
	pos := 0
	rem := offset
	for step := f.mask; step > 0; step >>= 1 {
		f.probes++
		next := pos + step
		if next <= f.size && f.tree[next] <= rem {
			pos = next
			rem -= f.tree[next]
		}
	}
	return pos
}
