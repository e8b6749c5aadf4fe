package nets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pcbforge/pcbforge/pkg/board"
)

// Net is one electrical net with its classification, routing rule and the
// connections that realize it.
type Net struct {
	Name        string
	Class       Class
	Rule        Rule
	Connections []board.Connection
}

// Pair is a differential pair. Both member nets must be routed to within
// MaxMismatch of each other's length.
type Pair struct {
	Positive    string
	Negative    string
	Impedance   float64 // target differential impedance, ohms
	MaxMismatch float64 // maximum length mismatch, mm
}

// Bus groups related nets (data, address) that should route consecutively.
type Bus struct {
	Name string
	Nets []string
}

// Manager accumulates nets in discovery order and answers routing-order
// and pairing queries. It is not safe for concurrent use.
type Manager struct {
	nets  map[string]*Net
	order []string
	pairs []Pair
	buses []Bus
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{nets: make(map[string]*Net)}
}

// NetName returns the connection's explicit net name, or the synthesized
// "fromComp_fromPin_to_toComp_toPin" form when it has none.
func NetName(conn board.Connection) string {
	if conn.Net != "" {
		return conn.Net
	}
	return conn.From.Component + "_" + conn.From.Pin + "_to_" + conn.To.Component + "_" + conn.To.Pin
}

// Assign files a connection under its net, creating and classifying the
// net on first sight. It returns the net the connection now belongs to.
func (m *Manager) Assign(conn board.Connection) *Net {
	name := NetName(conn)
	n, ok := m.nets[name]
	if !ok {
		class := Classify(name)
		n = &Net{Name: name, Class: class, Rule: RuleFor(class)}
		m.nets[name] = n
		m.order = append(m.order, name)
	}
	n.Connections = append(n.Connections, conn)
	return n
}

// Build assigns every connection and then detects differential pairs.
func (m *Manager) Build(conns []board.Connection) {
	for _, c := range conns {
		m.Assign(c)
	}
	m.DetectPairs()
}

// Net returns the named net, or nil.
func (m *Manager) Net(name string) *Net { return m.nets[name] }

// Nets returns all nets in discovery order.
func (m *Manager) Nets() []*Net {
	out := make([]*Net, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.nets[name])
	}
	return out
}

// Pairs returns the detected and declared differential pairs.
func (m *Manager) Pairs() []Pair { return m.pairs }

// Buses returns the declared bus groups.
func (m *Manager) Buses() []Bus { return m.buses }

// AddPair declares a differential pair explicitly. Zero impedance and
// mismatch fall back to 100 ohms and 0.1mm. Both member nets, if known,
// are reclassified as differential.
func (m *Manager) AddPair(positive, negative string, impedance, maxMismatch float64) {
	if impedance <= 0 {
		impedance = 100
	}
	if maxMismatch <= 0 {
		maxMismatch = 0.1
	}
	m.pairs = append(m.pairs, Pair{
		Positive:    positive,
		Negative:    negative,
		Impedance:   impedance,
		MaxMismatch: maxMismatch,
	})
	if n := m.nets[positive]; n != nil {
		n.Class = Differential
	}
	if n := m.nets[negative]; n != nil {
		n.Class = Differential
	}
}

// AddBus groups nets into a named bus. An empty name gets a generated one.
func (m *Manager) AddBus(name string, nets []string) {
	if name == "" {
		name = fmt.Sprintf("Bus_%d", len(m.buses))
	}
	m.buses = append(m.buses, Bus{Name: name, Nets: nets})
}

// DetectPairs finds differential pairs by suffix convention: a net ending
// in "_P" pairs with its "_N" counterpart, and "+" with "-". Detected
// members keep their routing rule but are reclassified as differential.
func (m *Manager) DetectPairs() {
	for _, name := range m.order {
		var counterpart string
		switch {
		case strings.HasSuffix(name, "_P"):
			counterpart = strings.TrimSuffix(name, "_P") + "_N"
		case strings.HasSuffix(name, "+"):
			counterpart = strings.TrimSuffix(name, "+") + "-"
		default:
			continue
		}
		if _, ok := m.nets[counterpart]; ok {
			m.AddPair(name, counterpart, 0, 0)
		}
	}
}

// RoutingOrder returns nets sorted by ascending rule priority. Nets with
// equal priority keep their discovery order, except that members of the
// same bus are routed consecutively at the position of the bus's earliest
// member. Routing is deterministic for a given input.
func (m *Manager) RoutingOrder() []*Net {
	pos := make(map[string]int, len(m.order))
	for i, name := range m.order {
		pos[name] = i
	}

	// Bus members anchor at the earliest member's discovery position and
	// keep their declared in-bus order.
	anchor := make(map[string]int)
	member := make(map[string]int)
	for _, b := range m.buses {
		first := len(m.order)
		for _, name := range b.Nets {
			if p, ok := pos[name]; ok && p < first {
				first = p
			}
		}
		for i, name := range b.Nets {
			if _, ok := m.nets[name]; !ok {
				continue
			}
			anchor[name] = first
			member[name] = i
		}
	}

	rank := func(n *Net) (int, int) {
		if a, ok := anchor[n.Name]; ok {
			return a, member[n.Name]
		}
		return pos[n.Name], 0
	}

	out := m.Nets()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rule.Priority != out[j].Rule.Priority {
			return out[i].Rule.Priority < out[j].Rule.Priority
		}
		ai, mi := rank(out[i])
		aj, mj := rank(out[j])
		if ai != aj {
			return ai < aj
		}
		return mi < mj
	})
	return out
}
