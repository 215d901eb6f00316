package core

import (
	"fmt"
	"sync"
)

// IdentifierPool hands out small integer ids, reusing released slots first.
type IdentifierPool struct {
	mu     sync.Mutex
	owners []interface{}
}

func NewIdentifierPool(capacity int) *IdentifierPool {
	return &IdentifierPool{
		owners: make([]interface{}, 0, capacity),
	}
}

func (p *IdentifierPool) Acquire(owner interface{}) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	length := uint32(len(p.owners))
	for i := uint32(0); i < length; i++ {
		// Existing free spot. Take it.
		if p.owners[i] == nil {
			p.owners[i] = owner
			return i
		}
	}

	// No free slots, the id will be length.
	p.owners = append(p.owners, owner)
	return length
}

func (p *IdentifierPool) Release(id uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	length := uint32(len(p.owners))
	if id >= length {
		return fmt.Errorf("identifier release: id '%d' out of range (max=%d). Nothing was done", id, length)
	}
	if p.owners[id] == nil {
		return fmt.Errorf("identifier release: id '%d' is not in use. Nothing was done", id)
	}

	// Just zero out the entry, making it available for use.
	p.owners[id] = nil
	return nil
}

func (p *IdentifierPool) Owner(id uint32) (interface{}, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if id >= uint32(len(p.owners)) || p.owners[id] == nil {
		return nil, false
	}
	return p.owners[id], true
}

// InUse returns how many ids are currently held.
func (p *IdentifierPool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := 0
	for _, o := range p.owners {
		if o != nil {
			count++
		}
	}
	return count
}
