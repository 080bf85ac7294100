// Package wires contains wire labelling and wire pool helpers.
package wires

import (
	"fmt"
	"strconv"
	"strings"
)

// PoolKind tags a PoolSpec variant.
type PoolKind string

const (
	PoolKindNone  PoolKind = "none"
	PoolKindExact PoolKind = "exact"
	PoolKindOutOf PoolKind = "out_of"
	PoolKindFixed PoolKind = "fixed"
)

// PoolSpec describes how many wires of a color take part in a mission.
// The set of implementations is closed: PoolNone, PoolExact, PoolOutOf
// and PoolFixed, by value or by pointer.
type PoolSpec interface {
	Kind() PoolKind
	isPoolSpec()
}

// PoolNone means no wire of the color is used.
type PoolNone struct{}

// PoolExact uses exactly Count random wires.
type PoolExact struct {
	Count int
}

// PoolOutOf draws Draw wires and keeps Keep of them, face down.
type PoolOutOf struct {
	Keep int
	Draw int
}

// PoolFixed uses the wires with the listed values.
type PoolFixed struct {
	Values []int
}

func (PoolNone) Kind() PoolKind  { return PoolKindNone }
func (PoolExact) Kind() PoolKind { return PoolKindExact }
func (PoolOutOf) Kind() PoolKind { return PoolKindOutOf }
func (PoolFixed) Kind() PoolKind { return PoolKindFixed }

func (PoolNone) isPoolSpec()  {}
func (PoolExact) isPoolSpec() {}
func (PoolOutOf) isPoolSpec() {}
func (PoolFixed) isPoolSpec() {}

// resolve dereferences pointer variants. A nil pointer is PoolNone.
func resolve(spec PoolSpec) PoolSpec {
	switch s := spec.(type) {
	case *PoolNone:
		return PoolNone{}
	case *PoolExact:
		if s == nil {
			return PoolNone{}
		}
		return *s
	case *PoolOutOf:
		if s == nil {
			return PoolNone{}
		}
		return *s
	case *PoolFixed:
		if s == nil {
			return PoolNone{}
		}
		return *s
	}
	return spec
}

// PoolCount returns how many wires end up in play for spec.
// A nil spec counts as PoolNone.
func PoolCount(spec PoolSpec) int {
	switch s := resolve(spec).(type) {
	case nil, PoolNone:
		return 0
	case PoolExact:
		return s.Count
	case PoolOutOf:
		return s.Keep
	case PoolFixed:
		return len(s.Values)
	default:
		panic(fmt.Sprintf("wires: unhandled pool spec %T", spec))
	}
}

// DescribePoolSpec renders spec for players, e.g. "2 out of 5".
func DescribePoolSpec(spec PoolSpec) string {
	switch s := resolve(spec).(type) {
	case nil, PoolNone:
		return "none"
	case PoolExact:
		return strconv.Itoa(s.Count)
	case PoolOutOf:
		return fmt.Sprintf("%d out of %d", s.Keep, s.Draw)
	case PoolFixed:
		values := make([]string, len(s.Values))
		for i, v := range s.Values {
			values[i] = strconv.Itoa(v)
		}
		return "fixed: " + strings.Join(values, ", ")
	default:
		panic(fmt.Sprintf("wires: unhandled pool spec %T", spec))
	}
}

// ValidatePoolSpec checks the variant's fields are consistent.
func ValidatePoolSpec(spec PoolSpec) error {
	switch s := resolve(spec).(type) {
	case nil, PoolNone:
		return nil
	case PoolExact:
		if s.Count < 0 {
			return fmt.Errorf("exact pool count must not be negative, got %d", s.Count)
		}
	case PoolOutOf:
		if s.Keep < 0 || s.Draw < 0 {
			return fmt.Errorf("out_of pool needs non-negative keep and draw, got %d/%d", s.Keep, s.Draw)
		}
		if s.Keep > s.Draw {
			return fmt.Errorf("out_of pool keeps %d but only draws %d", s.Keep, s.Draw)
		}
	case PoolFixed:
		seen := make(map[int]bool, len(s.Values))
		for _, v := range s.Values {
			if seen[v] {
				return fmt.Errorf("fixed pool lists value %d twice", v)
			}
			seen[v] = true
		}
	default:
		panic(fmt.Sprintf("wires: unhandled pool spec %T", spec))
	}
	return nil
}
