package types

import "sync/atomic"

// A write-once cell holding a memoized signature. Concurrent first reads may
// compute the signature more than once, but every writer stores the same
// string, so no further synchronization is needed.
type sigCell struct {
	p atomic.Pointer[string]
}

func (c *sigCell) get(compute func() string) string {
	if s := c.p.Load(); s != nil {
		return *s
	}
	s := compute()
	c.p.Store(&s)
	return s
}

// Whether two types have the same set representation.
func Same(l Type, r Type) bool {
	return l.Signature() == r.Signature()
}
