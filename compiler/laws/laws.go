package laws

import (
	"math"

	"github.com/glossopoeia/settype/compiler/category"
	"github.com/glossopoeia/settype/compiler/setops"
	"github.com/glossopoeia/settype/compiler/types"
	"github.com/glossopoeia/settype/compiler/values"
	"github.com/pkg/errors"
	"github.com/rjNemo/underscore"
)

// An algebraic law over three types. The samples are the values whose
// membership is compared where the law equates two sets.
type Law struct {
	Name  string
	Check func(a, b, c types.Type, samples []values.Value) error
}

// A law that did not hold for some arguments.
type Failure struct {
	Law  string
	Args []types.Type
	Err  error
}

func (f Failure) Error() string {
	return errors.Wrapf(f.Err, "%s(%v, %v, %v)", f.Law, f.Args[0], f.Args[1], f.Args[2]).Error()
}

// Check every law against randomly generated arguments.
func Check(g *Generator, iterations int) []Failure {
	return CheckLaws(g, iterations, All)
}

func CheckLaws(g *Generator, iterations int, laws []Law) []Failure {
	failures := []Failure{}
	for i := 0; i < iterations; i++ {
		a, b, c := g.Type(), g.Type(), g.Type()
		if i%2 == 1 {
			a, b, c = g.FlatType(), g.FlatType(), g.FlatType()
		}
		samples := g.Samples(a, b, c)
		for _, law := range laws {
			if err := law.Check(a, b, c, samples); err != nil {
				failures = append(failures, Failure{law.Name, []types.Type{a, b, c}, err})
			}
		}
	}
	return failures
}

var All = []Law{
	{"union-idempotent", func(a, _, _ types.Type, vs []values.Value) error {
		return equivalent(setops.Union(a, a), setops.Union(a), vs, exact(a))
	}},
	{"intersect-idempotent", func(a, _, _ types.Type, vs []values.Value) error {
		return equivalent(setops.Intersect(a, a), setops.Union(a), vs, exact(a))
	}},
	{"union-commutative", func(a, b, _ types.Type, vs []values.Value) error {
		return equivalent(setops.Union(a, b), setops.Union(b, a), vs, exact(a, b))
	}},
	{"intersect-commutative", func(a, b, _ types.Type, vs []values.Value) error {
		return equivalent(setops.Intersect(a, b), setops.Intersect(b, a), vs, exact(a, b))
	}},
	{"union-associative", func(a, b, c types.Type, vs []values.Value) error {
		l := setops.Union(setops.Union(a, b), c)
		r := setops.Union(a, setops.Union(b, c))
		return equivalent(l, r, vs, exact(a, b, c))
	}},
	{"intersect-associative", func(a, b, c types.Type, vs []values.Value) error {
		l := setops.Intersect(setops.Intersect(a, b), c)
		r := setops.Intersect(a, setops.Intersect(b, c))
		return equivalent(l, r, vs, exact(a, b, c))
	}},
	{"union-distributive", func(a, b, c types.Type, vs []values.Value) error {
		if !exact(a, b, c) {
			return nil
		}
		l := setops.Union(a, setops.Intersect(b, c))
		r := setops.Intersect(setops.Union(a, b), setops.Union(a, c))
		return equivalent(l, r, vs, true)
	}},
	{"intersect-distributive", func(a, b, c types.Type, vs []values.Value) error {
		if !exact(a, b, c) {
			return nil
		}
		l := setops.Intersect(a, setops.Union(b, c))
		r := setops.Union(setops.Intersect(a, b), setops.Intersect(a, c))
		return equivalent(l, r, vs, true)
	}},
	{"union-members", func(a, b, _ types.Type, vs []values.Value) error {
		u := setops.Union(a, b)
		return holdsForAll(vs, func(v values.Value) bool {
			return values.Contains(u, v) == (values.Contains(a, v) || values.Contains(b, v))
		})
	}},
	{"intersect-members", func(a, b, _ types.Type, vs []values.Value) error {
		i := setops.Intersect(a, b)
		return holdsForAll(vs, func(v values.Value) bool {
			return values.Contains(i, v) == (values.Contains(a, v) && values.Contains(b, v))
		})
	}},
	{"without-self", func(a, _, _ types.Type, _ []values.Value) error {
		if res := setops.Without(a, a); !types.IsNever(res) {
			return errors.Errorf("expected never, got %v", res)
		}
		return nil
	}},
	{"without-bounds", func(a, b, _ types.Type, vs []values.Value) error {
		w := setops.Without(a, b)
		return holdsForAll(vs, func(v values.Value) bool {
			inA, inB, inW := values.Contains(a, v), values.Contains(b, v), values.Contains(w, v)
			return (!inW || inA) && (!inA || inB || inW)
		})
	}},
	{"without-changes", func(a, b, _ types.Type, _ []values.Value) error {
		if !exact(a, b) || hasInnerPoint(b) || setops.IsDisjointWith(a, b) {
			return nil
		}
		if res := setops.Without(a, b); types.Same(res, a) {
			return errors.Errorf("overlapping subtraction left %v unchanged", a)
		}
		return nil
	}},
	{"without-union", func(a, b, _ types.Type, _ []values.Value) error {
		if !exact(a, b) || hasInnerPoint(a) || hasInnerPoint(b) {
			return nil
		}
		if res := setops.Without(setops.Without(setops.Union(a, b), a), b); !types.IsNever(res) {
			return errors.Errorf("expected never, got %v", res)
		}
		return nil
	}},
	{"subset-bounds", func(a, _, _ types.Type, _ []values.Value) error {
		switch {
		case !setops.IsSubsetOf(types.Never{}, a):
			return errors.New("never is not a subset")
		case !setops.IsSubsetOf(a, types.Any{}):
			return errors.New("not a subset of any")
		case setops.IsSubsetOf(a, types.Never{}) != types.IsNever(a):
			return errors.New("wrong subset of never")
		}
		return nil
	}},
	{"subset-members", func(a, b, _ types.Type, vs []values.Value) error {
		if !setops.IsSubsetOf(a, b) {
			return nil
		}
		return holdsForAll(vs, func(v values.Value) bool {
			return !values.Contains(a, v) || values.Contains(b, v)
		})
	}},
	{"subset-of-union", func(a, b, _ types.Type, _ []values.Value) error {
		if exact(a, b) && !setops.IsSubsetOf(a, setops.Union(a, b)) {
			return errors.New("not a subset of its union")
		}
		return nil
	}},
	{"disjoint-members", func(a, b, _ types.Type, vs []values.Value) error {
		if !setops.IsDisjointWith(a, b) {
			return nil
		}
		return holdsForAll(vs, func(v values.Value) bool {
			return !values.Contains(a, v) || !values.Contains(b, v)
		})
	}},
}

// Struct unions have more than one representation of the same set, so laws
// only compare signatures of struct-free types.
func exact(ts ...types.Type) bool {
	return underscore.All(ts, func(t types.Type) bool {
		return types.IsAny(t) || !underscore.Any(types.Members(t), func(v types.Value) bool {
			return v.Category() == category.Struct
		})
	})
}

// Whether subtracting the type could leave a single point inside a range.
func hasInnerPoint(t types.Type) bool {
	if types.IsAny(t) {
		return false
	}
	return underscore.Any(types.Members(t), func(v types.Value) bool {
		lit, ok := v.(types.NumLiteral)
		return ok && !math.IsNaN(lit.Value()) && !math.IsInf(lit.Value(), 0)
	})
}

func equivalent(l types.Type, r types.Type, vs []values.Value, sameSignature bool) error {
	if sameSignature && !types.Same(l, r) {
		return errors.Errorf("%v and %v differ", l, r)
	}
	return holdsForAll(vs, func(v values.Value) bool {
		return values.Contains(l, v) == values.Contains(r, v)
	})
}

func holdsForAll(vs []values.Value, pred func(values.Value) bool) error {
	if v, err := underscore.Find(vs, func(v values.Value) bool { return !pred(v) }); err == nil {
		return errors.Errorf("fails for %v", v)
	}
	return nil
}
