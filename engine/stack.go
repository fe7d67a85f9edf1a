package engine

import (
	"os"
	"sync"
)

// DefaultStackSize is the stack reservation used when a caller asks for
// a minimum of zero. Page-aligned on every supported page size.
const DefaultStackSize uintptr = 64 << 10

var (
	pageSize     uintptr
	pageSizeOnce sync.Once
)

// PageSize returns the system page size, computed once and cached
// process-wide.
func PageSize() uintptr {
	pageSizeOnce.Do(func() {
		pageSize = uintptr(os.Getpagesize())
	})
	return pageSize
}

// RealStackSize returns the stack size actually reserved for a requested
// minimum: DefaultStackSize for zero, otherwise min rounded up to a page
// multiple, never less than two pages.
func RealStackSize(min uintptr) uintptr {
	if min == 0 {
		min = DefaultStackSize
	}
	p := PageSize()
	size := (min + p - 1) / p * p
	if size < 2*p {
		size = 2 * p
	}
	return size
}
