package wires

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PoolSpecDoc is the tagged document form of a PoolSpec, as found in
// mission catalogs and snapshots.
type PoolSpecDoc struct {
	Kind   PoolKind `yaml:"kind" json:"kind"`
	Count  int      `yaml:"count,omitempty" json:"count,omitempty"`
	Keep   int      `yaml:"keep,omitempty" json:"keep,omitempty"`
	Draw   int      `yaml:"draw,omitempty" json:"draw,omitempty"`
	Values []int    `yaml:"values,omitempty" json:"values,omitempty"`
}

// Spec converts the document to its variant. An empty kind means none.
func (d PoolSpecDoc) Spec() (PoolSpec, error) {
	var spec PoolSpec
	switch d.Kind {
	case "", PoolKindNone:
		spec = PoolNone{}
	case PoolKindExact:
		spec = PoolExact{Count: d.Count}
	case PoolKindOutOf:
		spec = PoolOutOf{Keep: d.Keep, Draw: d.Draw}
	case PoolKindFixed:
		spec = PoolFixed{Values: append([]int(nil), d.Values...)}
	default:
		return nil, fmt.Errorf("unknown wire pool kind %q", d.Kind)
	}
	if err := ValidatePoolSpec(spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// DocOf returns the document form of spec.
func DocOf(spec PoolSpec) PoolSpecDoc {
	switch s := resolve(spec).(type) {
	case nil, PoolNone:
		return PoolSpecDoc{Kind: PoolKindNone}
	case PoolExact:
		return PoolSpecDoc{Kind: PoolKindExact, Count: s.Count}
	case PoolOutOf:
		return PoolSpecDoc{Kind: PoolKindOutOf, Keep: s.Keep, Draw: s.Draw}
	case PoolFixed:
		return PoolSpecDoc{Kind: PoolKindFixed, Values: append([]int(nil), s.Values...)}
	default:
		panic(fmt.Sprintf("wires: unhandled pool spec %T", spec))
	}
}

// Pool wraps a PoolSpec so it can be embedded in YAML and JSON documents.
type Pool struct {
	spec PoolSpec
}

// NewPool wraps spec. Pointer variants are stored by value.
func NewPool(spec PoolSpec) Pool {
	return Pool{spec: resolve(spec)}
}

// Spec returns the wrapped spec, PoolNone when unset.
func (p Pool) Spec() PoolSpec {
	if p.spec == nil {
		return PoolNone{}
	}
	return p.spec
}

func (p Pool) MarshalYAML() (interface{}, error) {
	return DocOf(p.spec), nil
}

func (p *Pool) UnmarshalYAML(value *yaml.Node) error {
	var doc PoolSpecDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}
	spec, err := doc.Spec()
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	p.spec = spec
	return nil
}

func (p Pool) MarshalJSON() ([]byte, error) {
	return json.Marshal(DocOf(p.spec))
}

func (p *Pool) UnmarshalJSON(data []byte) error {
	var doc PoolSpecDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	spec, err := doc.Spec()
	if err != nil {
		return err
	}
	p.spec = spec
	return nil
}
