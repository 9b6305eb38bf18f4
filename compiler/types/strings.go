package types

import (
	"strconv"
	"strings"

	"github.com/glossopoeia/settype/compiler/category"
	"github.com/glossopoeia/settype/compiler/util"
	"github.com/rjNemo/underscore"
)

type StringType interface {
	Value
	isString()
}

const (
	rankStrLiteral = iota
	rankAllStrings
	rankStrExcept
)

// The set of all strings.
type AllStrings struct{}

func (AllStrings) Category() category.Category { return category.String }
func (AllStrings) Signature() string           { return "string" }
func (AllStrings) String() string              { return "string" }
func (AllStrings) isType()                     {}
func (AllStrings) isString()                   {}
func (AllStrings) variantRank() int            { return rankAllStrings }

// A single string.
type StrLiteral struct {
	value string
}

func NewStrLiteral(s string) StrLiteral {
	return StrLiteral{s}
}

func (l StrLiteral) Value() string { return l.value }

func (StrLiteral) Category() category.Category { return category.String }
func (l StrLiteral) Signature() string         { return strconv.Quote(l.value) }
func (l StrLiteral) String() string            { return l.Signature() }
func (StrLiteral) isType()                     {}
func (StrLiteral) isString()                   {}
func (StrLiteral) variantRank() int            { return rankStrLiteral }

// All strings except a finite, non-empty set of excluded strings.
type StrExcept struct {
	excluded []string
}

// Create an inverted string set, panicking if nothing is excluded.
func MustStrExcept(excluded ...string) StrExcept {
	if len(excluded) == 0 {
		panic("types: inverted string set must exclude at least one string")
	}
	return StrExcept{util.SortedSet(excluded)}
}

// The excluded strings, sorted. The returned slice is a copy.
func (s StrExcept) Excluded() []string {
	res := make([]string, len(s.excluded))
	copy(res, s.excluded)
	return res
}

func (s StrExcept) Excludes(str string) bool {
	return underscore.Contains(s.excluded, str)
}

func (StrExcept) Category() category.Category { return category.String }

func (s StrExcept) Signature() string {
	quoted := underscore.Map(s.excluded, strconv.Quote)
	return "string-{" + strings.Join(quoted, ",") + "}"
}

func (s StrExcept) String() string { return s.Signature() }
func (StrExcept) isType()          {}
func (StrExcept) isString()        {}
func (StrExcept) variantRank() int { return rankStrExcept }
