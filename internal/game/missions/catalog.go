// Package missions loads the mission setup catalog.
package missions

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/bombbusters/bombbusters-server-go/internal/game/equipment"
	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
	"github.com/bombbusters/bombbusters-server-go/internal/game/wires"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// BlueRange is the inclusive range of blue wire values in play.
type BlueRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Mission is the setup of one mission.
type Mission struct {
	ID        model.MissionID `yaml:"id" json:"id"`
	Name      string          `yaml:"name" json:"name"`
	Blue      BlueRange       `yaml:"blue" json:"blue"`
	Red       wires.Pool      `yaml:"red" json:"red"`
	Yellow    wires.Pool      `yaml:"yellow" json:"yellow"`
	Equipment []string        `yaml:"equipment,omitempty" json:"equipment,omitempty"`
	Notes     string          `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// BlueWireCount is the number of blue wires dealt, four of each value.
func (m Mission) BlueWireCount() int {
	if m.Blue.Max < m.Blue.Min {
		return 0
	}
	return 4 * (m.Blue.Max - m.Blue.Min + 1)
}

// WireCount is the total number of wires dealt for the mission.
func (m Mission) WireCount() int {
	return m.BlueWireCount() + wires.PoolCount(m.Red.Spec()) + wires.PoolCount(m.Yellow.Spec())
}

// Summary renders a one-line description of the wire setup.
func (m Mission) Summary() string {
	return fmt.Sprintf("blue %d-%d, red %s, yellow %s",
		m.Blue.Min, m.Blue.Max,
		wires.DescribePoolSpec(m.Red.Spec()),
		wires.DescribePoolSpec(m.Yellow.Spec()))
}

// Catalog indexes missions by id.
type Catalog struct {
	missions map[model.MissionID]Mission
}

type catalogFile struct {
	Missions []Mission `yaml:"missions"`
}

// Load parses the built-in catalog.
func Load(equip *equipment.Catalog) (*Catalog, error) {
	return Parse(embeddedCatalog, equip)
}

// LoadFile parses a catalog from path.
func LoadFile(path string, equip *equipment.Catalog) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mission catalog: %w", err)
	}
	return Parse(data, equip)
}

// Parse decodes and validates catalog YAML. Equipment ids are checked
// against equip when it is non-nil.
func Parse(data []byte, equip *equipment.Catalog) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse mission catalog: %w", err)
	}

	c := &Catalog{missions: make(map[model.MissionID]Mission, len(file.Missions))}
	for _, m := range file.Missions {
		if m.ID <= 0 {
			return nil, fmt.Errorf("mission %q has invalid id %d", m.Name, m.ID)
		}
		if _, dup := c.missions[m.ID]; dup {
			return nil, fmt.Errorf("mission %d defined twice", m.ID)
		}
		if m.Blue.Min < 1 || m.Blue.Max > 12 || m.Blue.Min > m.Blue.Max {
			return nil, fmt.Errorf("mission %d has invalid blue range %d-%d", m.ID, m.Blue.Min, m.Blue.Max)
		}
		if equip != nil {
			for _, id := range m.Equipment {
				if _, ok := equip.Lookup(id); !ok {
					return nil, fmt.Errorf("mission %d uses unknown equipment %q", m.ID, id)
				}
			}
		}
		c.missions[m.ID] = m
	}
	return c, nil
}

// Get returns the mission with id.
func (c *Catalog) Get(id model.MissionID) (Mission, bool) {
	m, ok := c.missions[id]
	return m, ok
}

// All returns the missions ordered by id.
func (c *Catalog) All() []Mission {
	out := make([]Mission, 0, len(c.missions))
	for _, m := range c.missions {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
