package containers

import "fmt"

// Handle addresses a value stored in an Arena.
type Handle uint32

// Arena stores values in individually allocated cells. Growing the arena
// never moves a value, so pointers returned by Add and Get stay valid until
// Reset is called.
type Arena[T any] struct {
	cells []*T
}

// NewArena creates an arena with room for capacity cells before growing.
func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{
		cells: make([]*T, 0, capacity),
	}
}

// Add stores a copy of value and returns its handle and stable address.
func (a *Arena[T]) Add(value T) (Handle, *T) {
	cell := new(T)
	*cell = value
	a.cells = append(a.cells, cell)
	return Handle(len(a.cells) - 1), cell
}

// Get returns the value stored under h.
func (a *Arena[T]) Get(h Handle) (*T, error) {
	if int(h) >= len(a.cells) {
		return nil, fmt.Errorf("arena handle %d out of range (len=%d)", h, len(a.cells))
	}
	return a.cells[h], nil
}

// MustGet is Get for handles the caller just received from Add.
func (a *Arena[T]) MustGet(h Handle) *T {
	v, err := a.Get(h)
	if err != nil {
		panic(err)
	}
	return v
}

func (a *Arena[T]) Len() int {
	return len(a.cells)
}

// Reset drops every cell. Handles issued before the reset must not be reused.
func (a *Arena[T]) Reset() {
	for i := range a.cells {
		a.cells[i] = nil
	}
	a.cells = a.cells[:0]
}
