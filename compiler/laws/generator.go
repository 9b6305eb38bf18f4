package laws

import (
	"math"
	"math/rand"

	"github.com/glossopoeia/settype/compiler/setops"
	"github.com/glossopoeia/settype/compiler/types"
	"github.com/glossopoeia/settype/compiler/util"
	"github.com/glossopoeia/settype/compiler/values"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var words = []string{"a", "b", "c"}

// Builds random types and the values worth testing them against. Numbers are
// drawn from a small window around zero so that random ranges often overlap,
// touch or nest.
type Generator struct {
	rnd   *rand.Rand
	Point *types.Descriptor
	Label *types.Descriptor
	Unit  *types.Descriptor
}

func NewGenerator(seed int64) *Generator {
	reg := types.NewRegistry()
	return &Generator{
		rnd:   rand.New(rand.NewSource(seed)),
		Point: reg.Define("Point", types.Field{Name: "x", Type: types.AllNumbers{}}, types.Field{Name: "y", Type: types.AllNumbers{}}),
		Label: reg.Define("Label", types.Field{Name: "text", Type: types.AllStrings{}}),
		Unit:  reg.Define("Unit"),
	}
}

func (g *Generator) Descriptors() []*types.Descriptor {
	return []*types.Descriptor{g.Point, g.Label, g.Unit}
}

// A random type: occasionally Never or Any, otherwise the union of up to
// three random primitives.
func (g *Generator) Type() types.Type {
	switch n := g.rnd.Intn(20); {
	case n == 0:
		return types.Never{}
	case n == 1:
		return types.Any{}
	}
	parts := make([]types.Type, 1+g.rnd.Intn(3))
	for i := range parts {
		parts[i] = g.Primitive()
	}
	return setops.Union(parts...)
}

// A random type without struct members.
func (g *Generator) FlatType() types.Type {
	parts := make([]types.Type, 1+g.rnd.Intn(3))
	for i := range parts {
		if g.rnd.Intn(4) == 0 {
			parts[i] = g.Str()
		} else {
			parts[i] = g.Number()
		}
	}
	return setops.Union(parts...)
}

func (g *Generator) Primitive() types.Type {
	switch g.rnd.Intn(6) {
	case 0, 1, 2:
		return g.Number()
	case 3, 4:
		return g.Str()
	default:
		return g.Struct()
	}
}

func (g *Generator) bound() float64 {
	switch g.rnd.Intn(12) {
	case 0:
		return math.Inf(-1)
	case 1:
		return math.Inf(1)
	case 2, 3:
		return float64(g.rnd.Intn(9)-4) + 0.5
	default:
		return float64(g.rnd.Intn(9) - 4)
	}
}

func (g *Generator) bounds() (float64, float64) {
	lo, hi := g.bound(), g.bound()
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// A random number primitive, or Never when the random bounds are empty.
func (g *Generator) Number() types.Type {
	switch g.rnd.Intn(8) {
	case 0:
		return types.AllNumbers{}
	case 1:
		if g.rnd.Intn(2) == 0 {
			return types.NewLiteral(math.NaN())
		}
		return types.NewLiteral(g.bound())
	case 2:
		return types.NewLiteral(g.bound())
	case 3:
		return types.NewIntInterval(g.bounds())
	case 4:
		return types.NewNonIntInterval(g.bounds())
	default:
		lo, hi := g.bounds()
		return types.NewInterval(lo, hi, g.rnd.Intn(2) == 0, g.rnd.Intn(2) == 0)
	}
}

func (g *Generator) Str() types.Type {
	switch g.rnd.Intn(4) {
	case 0:
		return types.AllStrings{}
	case 1:
		return types.NewStrExcept(g.words()...)
	default:
		return types.NewStrLiteral(words[g.rnd.Intn(len(words))])
	}
}

func (g *Generator) words() []string {
	res := []string{}
	for _, w := range words {
		if g.rnd.Intn(2) == 0 {
			res = append(res, w)
		}
	}
	return res
}

func (g *Generator) Struct() types.Type {
	switch g.rnd.Intn(8) {
	case 0:
		return types.AllStructs{}
	case 1:
		return types.NewStructExcept(g.Descriptors()[g.rnd.Intn(3)])
	case 2:
		return types.MustInstance(g.Unit)
	case 3, 4:
		return types.NewInstance(g.Label, g.Str())
	default:
		return types.NewInstance(g.Point, g.nonEmptyNumber(), g.nonEmptyNumber())
	}
}

func (g *Generator) nonEmptyNumber() types.Type {
	for {
		if t := g.Number(); !types.IsNever(t) {
			return t
		}
	}
}

// Values on and around every bound and literal of the given types, plus a
// fixed set of special values. Membership of these values decides every
// difference between the types the generator builds.
func (g *Generator) Samples(ts ...types.Type) []values.Value {
	nums := map[float64]struct{}{0: {}, 0.25: {}, math.Inf(1): {}, math.Inf(-1): {}}
	strs := map[string]struct{}{"z": {}}
	for _, w := range words {
		strs[w] = struct{}{}
	}
	for _, t := range ts {
		collect(t, nums, strs)
	}

	numbers := []values.Value{values.Number(math.NaN())}
	for _, n := range util.SortedSet(maps.Keys(nums)) {
		numbers = append(numbers, values.Number(n))
	}
	strings := []values.Value{}
	for _, s := range util.SortedSet(maps.Keys(strs)) {
		strings = append(strings, values.String(s))
	}

	res := slices.Clone(numbers)
	res = append(res, strings...)
	res = append(res, values.NewStruct(g.Unit))
	for _, s := range strings {
		res = append(res, values.NewStruct(g.Label, s))
	}
	coords := spread(numbers, 16)
	for _, x := range coords {
		for _, y := range coords {
			res = append(res, values.NewStruct(g.Point, x, y))
		}
	}
	return res
}

func collect(t types.Type, nums map[float64]struct{}, strs map[string]struct{}) {
	if types.IsAny(t) {
		return
	}
	for _, m := range types.Members(t) {
		switch mt := m.(type) {
		case types.NumLiteral:
			addAround(nums, mt.Value())
		case types.IntInterval:
			addAround(nums, mt.Min(), mt.Max())
		case types.NonIntInterval:
			addAround(nums, mt.Min(), mt.Max())
		case types.Interval:
			addAround(nums, mt.Min(), mt.Max())
		case types.StrLiteral:
			strs[mt.Value()] = struct{}{}
		case types.StrExcept:
			for _, s := range mt.Excluded() {
				strs[s] = struct{}{}
			}
		case *types.Instance:
			for _, f := range mt.Fields() {
				collect(f, nums, strs)
			}
		}
	}
}

func addAround(nums map[float64]struct{}, xs ...float64) {
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		for _, d := range []float64{-1, -0.5, -0.25, 0, 0.25, 0.5, 1} {
			nums[x+d] = struct{}{}
		}
	}
}

// At most n elements spread evenly over the list, always keeping the first and
// the last.
func spread[T any](ls []T, n int) []T {
	if len(ls) <= n {
		return ls
	}
	res := make([]T, n)
	for i := range res {
		res[i] = ls[i*(len(ls)-1)/(n-1)]
	}
	return res
}
