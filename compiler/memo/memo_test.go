package memo

import (
	"testing"

	"github.com/glossopoeia/settype/compiler/setops"
	"github.com/glossopoeia/settype/compiler/types"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAlgebra(t *testing.T, size int) (*Algebra, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.TraceLevel)
	a, err := New(size, log)
	require.NoError(t, err)
	return a, hook
}

func TestNewRejectsSize(t *testing.T) {
	_, err := New(0, nil)
	require.Error(t, err)
}

func TestMatchesSetops(t *testing.T) {
	a, _ := newAlgebra(t, DefaultSize)
	one, two := types.NewLiteral(1), types.NewLiteral(2)
	rng := types.NewClosedInterval(0, 10)

	assert.True(t, types.Same(setops.Union(one, two), a.Union(one, two)))
	assert.True(t, types.Same(setops.Intersect(rng, one), a.Intersect(rng, one)))
	assert.True(t, types.Same(setops.Without(rng, two), a.Without(rng, two)))
	assert.True(t, types.Same(setops.Complement(types.NewStrLiteral("a")), a.Complement(types.NewStrLiteral("a"))))
	assert.True(t, a.IsSubsetOf(one, rng))
	assert.False(t, a.IsSubsetOf(rng, one))
	assert.True(t, a.IsSupersetOf(rng, one))
	assert.True(t, a.IsDisjointWith(one, types.NewStrLiteral("1")))
	assert.False(t, a.IsDisjointWith(one, rng))
}

func TestHitsAndMisses(t *testing.T) {
	a, hook := newAlgebra(t, DefaultSize)
	one, three := types.NewLiteral(1), types.NewLiteral(3)

	first := a.Union(one, three)
	second := a.Union(types.NewLiteral(1), types.NewLiteral(3))
	assert.Same(t, first, second)
	assert.Equal(t, Stats{Hits: 1, Misses: 1, Size: 1}, a.Stats())

	// operand order is part of the key
	a.Union(three, one)
	assert.Equal(t, uint64(2), a.Stats().Misses)

	// the op name is part of the key
	a.Intersect(one, three)
	assert.Equal(t, uint64(3), a.Stats().Misses)

	require.NotEmpty(t, hook.AllEntries())
	assert.Equal(t, logrus.TraceLevel, hook.LastEntry().Level)
	assert.Equal(t, "union", hook.AllEntries()[0].Data["op"])
}

func TestEviction(t *testing.T) {
	a, hook := newAlgebra(t, 2)
	for i := 0; i < 4; i++ {
		a.Union(types.NewLiteral(float64(i)), types.NewLiteral(float64(i+1)))
	}
	assert.Equal(t, 2, a.Stats().Size)
	assert.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)

	a.Purge()
	assert.Equal(t, 0, a.Stats().Size)
}

func TestCacheKey(t *testing.T) {
	l, r := types.NewStrLiteral("a"), types.NewStrLiteral("b")
	assert.Equal(t, "union\x00\"a\"\x00\"b\"", cacheKey("union", []types.Type{l, r}))
	assert.NotEqual(t, cacheKey("union", []types.Type{l, r}), cacheKey("union", []types.Type{r, l}))
}
