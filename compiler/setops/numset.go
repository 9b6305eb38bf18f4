package setops

import (
	"fmt"
	"math"

	"github.com/glossopoeia/settype/compiler/types"
	"github.com/rjNemo/underscore"
	"golang.org/x/exp/slices"
)

// The number line is partitioned into NaN, the two infinities, the finite
// integers and the finite non-integers. A numSet records each part separately
// in a normal form: two equal sets of numbers always have equal numSets, and
// every number primitive converts into one exactly. Union, intersection and
// complement of numbers are computed here and converted back into primitives
// at the end.
type numSet struct {
	nan, negInf, posInf bool
	// Finite integers lo..hi. An infinite bound means unbounded on that side.
	// Sorted and neither overlapping nor adjacent.
	ints []intRange
	// Finite non-integers between lo and hi. The inclusion flags are only
	// kept for finite non-integral endpoints, the only endpoints that can be
	// members. Sorted, and merged wherever no member lies between two segments.
	reals []realSeg
}

type intRange struct {
	lo, hi float64
}

type realSeg struct {
	lo, hi     float64
	loIn, hiIn bool
}

func isFraction(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x) && x != math.Trunc(x)
}

var (
	negInf  = math.Inf(-1)
	posInf  = math.Inf(1)
	allInts = intRange{negInf, posInf}
)

func numSetOf(t types.NumberType) numSet {
	switch nt := t.(type) {
	case types.AllNumbers:
		return numSet{
			nan: true, negInf: true, posInf: true,
			ints:  []intRange{allInts},
			reals: []realSeg{{lo: negInf, hi: posInf}},
		}
	case types.NumLiteral:
		v := nt.Value()
		switch {
		case math.IsNaN(v):
			return numSet{nan: true}
		case math.IsInf(v, -1):
			return numSet{negInf: true}
		case math.IsInf(v, 1):
			return numSet{posInf: true}
		case types.IsInteger(v):
			return numSet{ints: []intRange{{v, v}}}
		default:
			return numSet{reals: []realSeg{{v, v, true, true}}}
		}
	case types.IntInterval:
		return numSet{ints: []intRange{{nt.Min(), nt.Max()}}}
	case types.NonIntInterval:
		return numSet{reals: []realSeg{{lo: nt.Min(), hi: nt.Max()}}}
	case types.Interval:
		lo, hi := math.Ceil(nt.Min()), math.Floor(nt.Max())
		// rounding toward zero can give -0
		if lo == 0 {
			lo = 0
		}
		if hi == 0 {
			hi = 0
		}
		if nt.MinOpen() && lo == nt.Min() && !math.IsInf(lo, 0) {
			lo++
		}
		if nt.MaxOpen() && hi == nt.Max() && !math.IsInf(hi, 0) {
			hi--
		}
		return numSet{
			negInf: math.IsInf(nt.Min(), -1) && !nt.MinOpen(),
			posInf: math.IsInf(nt.Max(), 1) && !nt.MaxOpen(),
			ints:   normalizeInts([]intRange{{lo, hi}}),
			reals:  normalizeReals([]realSeg{{nt.Min(), nt.Max(), !nt.MinOpen(), !nt.MaxOpen()}}),
		}
	default:
		panic(fmt.Sprintf("setops: unknown number variant %T", t))
	}
}

func (s numSet) isEmpty() bool {
	return !s.nan && !s.negInf && !s.posInf && len(s.ints) == 0 && len(s.reals) == 0
}

func (s numSet) isFull() bool {
	return s.nan && s.negInf && s.posInf &&
		len(s.ints) == 1 && s.ints[0] == allInts &&
		len(s.reals) == 1 && s.reals[0].lo == negInf && s.reals[0].hi == posInf
}

func (s numSet) contains(x float64) bool {
	switch {
	case math.IsNaN(x):
		return s.nan
	case math.IsInf(x, -1):
		return s.negInf
	case math.IsInf(x, 1):
		return s.posInf
	case types.IsInteger(x):
		return containsInt(s.ints, x)
	default:
		return underscore.Any(s.reals, func(r realSeg) bool {
			return (r.lo < x || r.lo == x && r.loIn) && (x < r.hi || x == r.hi && r.hiIn)
		})
	}
}

func containsInt(rs []intRange, x float64) bool {
	return underscore.Any(rs, func(r intRange) bool { return r.lo <= x && x <= r.hi })
}

func (s numSet) union(o numSet) numSet {
	return numSet{
		nan:    s.nan || o.nan,
		negInf: s.negInf || o.negInf,
		posInf: s.posInf || o.posInf,
		ints:   normalizeInts(append(slices.Clone(s.ints), o.ints...)),
		reals:  normalizeReals(append(slices.Clone(s.reals), o.reals...)),
	}
}

func (s numSet) intersect(o numSet) numSet {
	res := numSet{
		nan:    s.nan && o.nan,
		negInf: s.negInf && o.negInf,
		posInf: s.posInf && o.posInf,
		ints:   intersectInts(s.ints, o.ints),
	}
	for _, l := range s.reals {
		for _, r := range o.reals {
			res.reals = append(res.reals, l.intersect(r))
		}
	}
	res.reals = normalizeReals(res.reals)
	return res
}

func (s numSet) complement() numSet {
	res := numSet{
		nan:    !s.nan,
		negInf: !s.negInf,
		posInf: !s.posInf,
		ints:   complementInts(s.ints),
	}
	lo, loIn := negInf, false
	for _, r := range s.reals {
		res.reals = append(res.reals, realSeg{lo, r.lo, loIn, !r.loIn})
		lo, loIn = r.hi, !r.hiIn
	}
	res.reals = normalizeReals(append(res.reals, realSeg{lo: lo, hi: posInf, loIn: loIn}))
	return res
}

func (s numSet) minus(o numSet) numSet {
	return s.intersect(o.complement())
}

func normalizeInts(rs []intRange) []intRange {
	valid := underscore.Filter(rs, func(r intRange) bool {
		return r.lo <= r.hi && !math.IsInf(r.lo, 1) && !math.IsInf(r.hi, -1)
	})
	slices.SortFunc(valid, func(l, r intRange) bool { return l.lo < r.lo })

	res := []intRange{}
	for _, r := range valid {
		if n := len(res); n > 0 && r.lo <= res[n-1].hi+1 {
			res[n-1].hi = math.Max(res[n-1].hi, r.hi)
			continue
		}
		res = append(res, r)
	}
	return res
}

func intersectInts(ls, rs []intRange) []intRange {
	res := []intRange{}
	for _, l := range ls {
		for _, r := range rs {
			res = append(res, intRange{math.Max(l.lo, r.lo), math.Min(l.hi, r.hi)})
		}
	}
	return normalizeInts(res)
}

// Expects a normalized list.
func complementInts(rs []intRange) []intRange {
	res := []intRange{}
	next := negInf
	for _, r := range rs {
		if r.lo > next {
			res = append(res, intRange{next, r.lo - 1})
		}
		next = r.hi + 1
	}
	if !math.IsInf(next, 1) {
		res = append(res, intRange{next, posInf})
	}
	return res
}

func minusInts(ls, rs []intRange) []intRange {
	return intersectInts(ls, complementInts(normalizeInts(rs)))
}

func (s realSeg) normalize() realSeg {
	s.loIn = s.loIn && isFraction(s.lo)
	s.hiIn = s.hiIn && isFraction(s.hi)
	return s
}

func (s realSeg) isEmpty() bool {
	return s.lo > s.hi || s.lo == s.hi && !(s.loIn && s.hiIn)
}

func (s realSeg) intersect(o realSeg) realSeg {
	res := s
	switch {
	case o.lo > s.lo:
		res.lo, res.loIn = o.lo, o.loIn
	case o.lo == s.lo:
		res.loIn = s.loIn && o.loIn
	}
	switch {
	case o.hi < s.hi:
		res.hi, res.hiIn = o.hi, o.hiIn
	case o.hi == s.hi:
		res.hiIn = s.hiIn && o.hiIn
	}
	return res
}

// Two sorted segments can be joined when they overlap, or when they meet at a
// point that is an integer or a member of either one.
func (s realSeg) joins(o realSeg) bool {
	return o.lo < s.hi || o.lo == s.hi && (!isFraction(s.hi) || s.hiIn || o.loIn)
}

func normalizeReals(ss []realSeg) []realSeg {
	valid := underscore.Filter(
		underscore.Map(ss, realSeg.normalize),
		func(s realSeg) bool { return !s.isEmpty() })
	slices.SortFunc(valid, func(l, r realSeg) bool {
		return l.lo < r.lo || l.lo == r.lo && l.loIn && !r.loIn
	})

	res := []realSeg{}
	for _, s := range valid {
		n := len(res)
		if n == 0 || !res[n-1].joins(s) {
			res = append(res, s)
			continue
		}
		switch last := &res[n-1]; {
		case s.hi > last.hi:
			last.hi, last.hiIn = s.hi, s.hiIn
		case s.hi == last.hi:
			last.hiIn = last.hiIn || s.hiIn
		}
	}
	return res
}

func (s numSet) toType() types.Type {
	return types.FromMembers(s.values())
}

// Decompose the set into number primitives. The decomposition is a function
// of the normal form alone, so equal sets always produce the same members.
//
// Each non-integer segment is cut wherever integers inside it are missing.
// A run of two or more missing integers leaves a NonIntInterval behind, and the
// pieces in between become Intervals that take the integers inside them along.
// An Interval surrounded by NonIntIntervals that does not reach any of its
// bounds is folded back into one NonIntInterval, leaving its integers to the
// IntIntervals. Whatever integers and infinities remain become literals and
// IntIntervals.
func (s numSet) values() []types.Value {
	if s.isFull() {
		return []types.Value{types.AllNumbers{}}
	}

	res := []types.Value{}
	consumed := []intRange{}
	hasNegInf, hasPosInf := s.negInf, s.posInf
	for _, seg := range s.reals {
		if seg.lo == seg.hi {
			res = append(res, types.NewLiteral(seg.lo))
			continue
		}

		pieces := s.cut(seg)
		for i := range pieces {
			p := &pieces[i]
			if p.nonInt {
				continue
			}
			switch {
			case math.IsInf(p.lo, -1):
				p.loIn = hasNegInf
				hasNegInf = false
			case types.IsInteger(p.lo):
				p.loIn = containsInt(s.ints, p.lo) && !containsInt(s.ints, p.lo-1)
			}
			switch {
			case math.IsInf(p.hi, 1):
				p.hiIn = hasPosInf
				hasPosInf = false
			case types.IsInteger(p.hi):
				p.hiIn = containsInt(s.ints, p.hi) && !containsInt(s.ints, p.hi+1)
			}
			p.nonInt = !p.hasInterior() && !p.loIn && !p.hiIn &&
				types.IsIntegralBound(p.lo) && types.IsIntegralBound(p.hi)
		}

		for _, p := range foldNonInts(pieces) {
			if p.nonInt {
				res = append(res, types.MustNonIntInterval(p.lo, p.hi))
				continue
			}
			res = append(res, types.MustInterval(p.lo, p.hi, !p.loIn, !p.hiIn))
			consumed = append(consumed, p.integers())
		}
	}

	for _, r := range minusInts(s.ints, consumed) {
		if r.lo == r.hi {
			res = append(res, types.NewLiteral(r.lo))
		} else {
			res = append(res, types.MustIntInterval(r.lo, r.hi))
		}
	}
	if hasNegInf {
		res = append(res, types.NewLiteral(negInf))
	}
	if hasPosInf {
		res = append(res, types.NewLiteral(posInf))
	}
	if s.nan {
		res = append(res, types.NewLiteral(math.NaN()))
	}
	return res
}

type piece struct {
	lo, hi     float64
	loIn, hiIn bool
	nonInt     bool
}

func (p piece) hasInterior() bool {
	return math.Floor(p.lo)+1 <= math.Ceil(p.hi)-1
}

// The integers an Interval piece covers.
func (p piece) integers() intRange {
	lo, hi := math.Floor(p.lo)+1, math.Ceil(p.hi)-1
	if p.loIn && types.IsInteger(p.lo) {
		lo = p.lo
	}
	if p.hiIn && types.IsInteger(p.hi) {
		hi = p.hi
	}
	return intRange{lo, hi}
}

// Split a non-integer segment at the integers strictly inside it that are
// missing from the set.
func (s numSet) cut(seg realSeg) []piece {
	var missing []intRange
	if spanLo, spanHi := math.Floor(seg.lo)+1, math.Ceil(seg.hi)-1; spanLo <= spanHi {
		missing = minusInts([]intRange{{spanLo, spanHi}}, s.ints)
	}

	res := []piece{}
	lo, loIn := seg.lo, seg.loIn
	for _, m := range missing {
		if lo < m.lo {
			res = append(res, piece{lo: lo, hi: m.lo, loIn: loIn})
		}
		if m.lo < m.hi {
			res = append(res, piece{lo: m.lo, hi: m.hi, nonInt: true})
		}
		lo, loIn = m.hi, false
	}
	if lo < seg.hi {
		res = append(res, piece{lo: lo, hi: seg.hi, loIn: loIn, hiIn: seg.hiIn})
	}
	return res
}

func foldNonInts(pieces []piece) []piece {
	for changed := true; changed; {
		changed = false
		for i := 1; i+1 < len(pieces); i++ {
			p := pieces[i]
			if !p.nonInt && !p.loIn && !p.hiIn && pieces[i-1].nonInt && pieces[i+1].nonInt {
				pieces[i].nonInt = true
				changed = true
			}
		}
	}

	res := []piece{}
	for _, p := range pieces {
		if n := len(res); n > 0 && p.nonInt && res[n-1].nonInt && res[n-1].hi == p.lo {
			res[n-1].hi = p.hi
			continue
		}
		res = append(res, p)
	}
	return res
}
