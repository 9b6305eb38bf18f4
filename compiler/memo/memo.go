package memo

import (
	"strings"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/glossopoeia/settype/compiler/setops"
	"github.com/glossopoeia/settype/compiler/types"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

const DefaultSize = 4096

// Memoizes the set algebra by the signatures of the operands. Equal
// signatures denote equal types, so a cached result can stand in for any
// operands with the same signatures. Instance signatures carry descriptor ids,
// so one Algebra must only see descriptors from a single Registry.
type Algebra struct {
	cache  *lru.Cache[uint64, entry]
	log    logrus.FieldLogger
	hits   atomic.Uint64
	misses atomic.Uint64
}

// A cached result together with the full key, to tell hash collisions apart.
type entry struct {
	key    string
	result any
}

type Stats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

func New(size int, log logrus.FieldLogger) (*Algebra, error) {
	cache, err := lru.New[uint64, entry](size)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Algebra{cache: cache, log: log}, nil
}

func (a *Algebra) Union(ts ...types.Type) types.Type {
	return memoized(a, "union", ts, func() types.Type { return setops.Union(ts...) })
}

func (a *Algebra) Intersect(ts ...types.Type) types.Type {
	return memoized(a, "intersect", ts, func() types.Type { return setops.Intersect(ts...) })
}

func (a *Algebra) Without(left types.Type, right types.Type) types.Type {
	return memoized(a, "without", []types.Type{left, right}, func() types.Type { return setops.Without(left, right) })
}

func (a *Algebra) Complement(v types.Value) types.Type {
	return memoized(a, "complement", []types.Type{v}, func() types.Type { return setops.Complement(v) })
}

func (a *Algebra) IsSubsetOf(left types.Type, right types.Type) bool {
	return memoized(a, "subset", []types.Type{left, right}, func() bool { return setops.IsSubsetOf(left, right) })
}

func (a *Algebra) IsSupersetOf(left types.Type, right types.Type) bool {
	return a.IsSubsetOf(right, left)
}

func (a *Algebra) IsDisjointWith(left types.Type, right types.Type) bool {
	return types.IsNever(a.Intersect(left, right))
}

func (a *Algebra) Stats() Stats {
	return Stats{a.hits.Load(), a.misses.Load(), a.cache.Len()}
}

func (a *Algebra) Purge() {
	a.cache.Purge()
}

func memoized[T any](a *Algebra, op string, operands []types.Type, compute func() T) T {
	key := cacheKey(op, operands)
	hash := xxhash.Sum64String(key)
	if e, ok := a.cache.Get(hash); ok && e.key == key {
		a.hits.Add(1)
		a.log.WithField("op", op).Tracef("cache hit for %s", key)
		return e.result.(T)
	}

	a.misses.Add(1)
	res := compute()
	if evicted := a.cache.Add(hash, entry{key, res}); evicted {
		a.log.WithField("op", op).Debugf("evicted oldest entry, %d cached", a.cache.Len())
	}
	return res
}

func cacheKey(op string, operands []types.Type) string {
	var sb strings.Builder
	sb.WriteString(op)
	for _, t := range operands {
		sb.WriteByte(0)
		sb.WriteString(t.Signature())
	}
	return sb.String()
}
