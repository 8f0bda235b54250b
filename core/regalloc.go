package core

// RegisterAllocator hands out virtual register numbers 1, 2, 3, ... and never
// returns a number twice.
type RegisterAllocator struct {
	next int
}

// NewRegisterAllocator creates an allocator whose first register is 1.
func NewRegisterAllocator() *RegisterAllocator {
	return &RegisterAllocator{next: 1}
}

// Next returns a fresh register.
func (a *RegisterAllocator) Next() int {
	reg := a.next
	a.next++

	Trace("Register", "Allocated", reg)

	return reg
}

// Count returns how many registers have been allocated.
func (a *RegisterAllocator) Count() int {
	return a.next - 1
}
