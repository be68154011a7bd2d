package ast

// Arena is the sole owner of nodes of type T, addressed by 1-based index.
// Index 0 is reserved for "no node". Nodes are never freed individually;
// the whole arena dies with the Builder that owns it.
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena whose storage is preallocated to capHint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate stores a value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data))
}

// Get returns a pointer into the arena, or nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || index > uint32(len(a.data)) {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage. READONLY.
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
