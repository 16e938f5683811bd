// Package pool provides the per-frame bump allocators used by the engine.
//
// Both pools hand out sequential slices of one fixed backing buffer and are
// reset wholesale once per frame. A request that does not fit falls back to a
// one-off heap allocation and bumps an overflow counter, so the frame loop
// keeps working and the degradation stays visible in frame statistics.
//
// Values handed out by a pool are valid until the next Reset.
package pool

import (
	"fmt"
	"unsafe"
)

// Stats describes pool usage since the last Reset.
type Stats struct {
	Used      int
	Capacity  int
	Overflows int
}

// StringPool stores transient display text.
type StringPool struct {
	buf       []byte
	overflows int
}

// NewStringPool returns a pool with the given capacity in bytes.
func NewStringPool(capacity int) *StringPool {
	if capacity < 0 {
		capacity = 0
	}
	return &StringPool{buf: make([]byte, 0, capacity)}
}

// Reset clears the pool without freeing memory.
func (p *StringPool) Reset() {
	p.buf = p.buf[:0]
	p.overflows = 0
}

// Stats returns usage since the last Reset.
func (p *StringPool) Stats() Stats {
	return Stats{Used: len(p.buf), Capacity: cap(p.buf), Overflows: p.overflows}
}

// Store copies s into the pool and returns a view of the copy.
func (p *StringPool) Store(s string) string {
	if s == "" {
		return ""
	}
	mark := len(p.buf)
	if mark+len(s) > cap(p.buf) {
		p.overflows++
		return string([]byte(s))
	}
	p.buf = append(p.buf, s...)
	return p.view(mark)
}

// StoreBytes copies b into the pool and returns it as a string.
func (p *StringPool) StoreBytes(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	mark := len(p.buf)
	if mark+len(b) > cap(p.buf) {
		p.overflows++
		return string(b)
	}
	p.buf = append(p.buf, b...)
	return p.view(mark)
}

// Sprintf formats into the pool.
func (p *StringPool) Sprintf(format string, args ...any) string {
	mark := len(p.buf)
	room := cap(p.buf) - mark
	out := fmt.Appendf(p.buf[mark:mark:cap(p.buf)], format, args...)
	if len(out) > room {
		p.overflows++
		return string(out)
	}
	if len(out) == 0 {
		return ""
	}
	p.buf = p.buf[:mark+len(out)]
	return p.view(mark)
}

func (p *StringPool) view(mark int) string {
	b := p.buf[mark:]
	return unsafe.String(&b[0], len(b))
}

// CustomPool stores per-widget extension blocks with the alignment their
// type requires.
type CustomPool struct {
	buf       []byte
	off       int
	overflows int
}

// NewCustomPool returns a pool with the given capacity in bytes.
func NewCustomPool(capacity int) *CustomPool {
	if capacity < 0 {
		capacity = 0
	}
	return &CustomPool{buf: make([]byte, capacity)}
}

// Reset rewinds the pool.
func (p *CustomPool) Reset() {
	p.off = 0
	p.overflows = 0
}

// Stats returns usage since the last Reset.
func (p *CustomPool) Stats() Stats {
	return Stats{Used: p.off, Capacity: len(p.buf), Overflows: p.overflows}
}

// Alloc returns size zeroed bytes whose address is a multiple of align.
// align must be a power of two; values below one are treated as one.
func (p *CustomPool) Alloc(size, align int) []byte {
	if size <= 0 {
		return nil
	}
	start, ok := p.reserve(size, align)
	if !ok {
		p.overflows++
		return make([]byte, size)
	}
	b := p.buf[start : start+size : start+size]
	clear(b)
	return b
}

func (p *CustomPool) reserve(size, align int) (int, bool) {
	if align < 1 {
		align = 1
	}
	if len(p.buf) == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(p.buf)))
	addr := base + uintptr(p.off)
	pad := int((uintptr(align) - addr%uintptr(align)) % uintptr(align))
	start := p.off + pad
	if start+size > len(p.buf) {
		return 0, false
	}
	p.off = start + size
	return start, true
}

// New allocates a zeroed T from the pool. T must not contain pointers:
// the backing buffer is a byte slice and is not scanned by the collector.
func New[T any](p *CustomPool) *T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return new(T)
	}
	start, ok := p.reserve(size, int(unsafe.Alignof(zero)))
	if !ok {
		p.overflows++
		return new(T)
	}
	b := p.buf[start : start+size]
	clear(b)
	return (*T)(unsafe.Pointer(&b[0]))
}
