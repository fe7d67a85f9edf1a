package satori

// Cell is the pointer-width opaque word exchanged at every resume/yield
// boundary. The engine transfers exactly one Cell in each direction and
// attaches no meaning to its bits; the cell package defines how typed
// values are packed into and out of it.
type Cell uintptr

// NullCell is the zero cell. It encodes the unit value and the absent
// case of an optional.
const NullCell Cell = 0
