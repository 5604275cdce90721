package rangealloc

// DefaultDegree is the btree degree used by IndexedAllocator unless
// overridden with WithDegree.
const DefaultDegree = 32

// IndexedOption configures an IndexedAllocator.
type IndexedOption func(*indexedOptions)

type indexedOptions struct {
	degree int
}

func defaultIndexedOptions() *indexedOptions {
	return &indexedOptions{
		degree: DefaultDegree,
	}
}

// WithDegree sets the degree of the btrees backing the free list. Values
// below 2 are ignored.
func WithDegree(degree int) IndexedOption {
	return func(o *indexedOptions) {
		if degree >= 2 {
			o.degree = degree
		}
	}
}
