package compare

import "github.com/coolbeans/nofodiff/pkg/nofo"

// direction selects which order-adjacent sibling a walk moves to.
type direction int

const (
	previous direction = -1
	next     direction = 1
)

// noUnit marks a missing neighbour at a section boundary.
const noUnit = -1

// unit is one subsection registered in a Matcher arena.
type unit struct {
	sub     *nofo.Subsection
	doc     int
	section string
	prev    int
	next    int
}

// Matcher pairs subsections across two document versions.
//
// It indexes every subsection of the documents it was built from into an
// arena that records the owning document, the section name and the arena
// positions of the order-adjacent siblings. Lookups never touch the input
// trees again, so the documents are left unmodified.
type Matcher struct {
	units []unit
	index map[*nofo.Subsection]int
}

// NewMatcher indexes the given documents. Passing the same document twice
// registers it once, so its subsections can never match each other.
func NewMatcher(docs ...*nofo.Document) *Matcher {
	m := &Matcher{index: make(map[*nofo.Subsection]int)}
	ids := make(map[*nofo.Document]int)
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if _, seen := ids[doc]; seen {
			continue
		}
		id := len(ids)
		ids[doc] = id
		for _, section := range doc.Sections {
			if section != nil {
				m.addSection(id, section)
			}
		}
	}
	return m
}

func (m *Matcher) addSection(doc int, section *nofo.Section) {
	start := len(m.units)
	byOrder := make(map[int]int)
	for _, sub := range section.Ordered() {
		if _, seen := m.index[sub]; seen {
			continue
		}
		idx := len(m.units)
		m.units = append(m.units, unit{sub: sub, doc: doc, section: section.Name, prev: noUnit, next: noUnit})
		m.index[sub] = idx
		if _, taken := byOrder[sub.Order]; !taken {
			byOrder[sub.Order] = idx
		}
	}
	for idx := start; idx < len(m.units); idx++ {
		u := &m.units[idx]
		if p, ok := byOrder[u.sub.Order-1]; ok {
			u.prev = p
		}
		if n, ok := byOrder[u.sub.Order+1]; ok {
			u.next = n
		}
	}
}

// IsMatching reports whether a and b are the same unit in two versions.
//
// Subsections from the same document never match, nor do subsections of
// differently named sections. Two named subsections match when their names
// are equal. Otherwise the nearest named neighbours in both directions must
// match, with unnamed neighbours resolved by walking further outward.
// Subsections the Matcher was not built with never match.
func (m *Matcher) IsMatching(a, b *nofo.Subsection) bool {
	ia, okA := m.index[a]
	ib, okB := m.index[b]
	if !okA || !okB {
		return false
	}
	return m.isMatching(ia, ib)
}

func (m *Matcher) isMatching(a, b int) bool {
	ua, ub := m.units[a], m.units[b]
	if ua.doc == ub.doc {
		return false
	}
	if ua.section != ub.section {
		return false
	}
	if ua.sub.Named() && ub.sub.Named() {
		return ua.sub.Name == ub.sub.Name
	}
	return m.adjacentMatch(a, b, previous) && m.adjacentMatch(a, b, next)
}

// adjacentMatch walks outward from a and b in dir until it reaches a pair of
// named siblings or a section boundary. Orders move strictly in one
// direction, so the walk terminates.
func (m *Matcher) adjacentMatch(a, b int, dir direction) bool {
	for {
		a, b = m.neighbor(a, dir), m.neighbor(b, dir)
		switch {
		case a == noUnit && b == noUnit:
			return true
		case a == noUnit || b == noUnit:
			return false
		}
		sa, sb := m.units[a].sub, m.units[b].sub
		if sa.Named() && sb.Named() {
			return sa.Name == sb.Name
		}
	}
}

func (m *Matcher) neighbor(idx int, dir direction) int {
	if dir == previous {
		return m.units[idx].prev
	}
	return m.units[idx].next
}

// FindMatch returns the first member of pool, skipping those in matched,
// that IsMatching pairs with candidate. It returns nil when none does.
func (m *Matcher) FindMatch(candidate *nofo.Subsection, pool []*nofo.Subsection, matched map[*nofo.Subsection]bool) *nofo.Subsection {
	for _, member := range pool {
		if matched[member] {
			continue
		}
		if m.IsMatching(candidate, member) {
			return member
		}
	}
	return nil
}

// matchesAny reports whether candidate matches any member of pool,
// regardless of earlier pairings.
func (m *Matcher) matchesAny(candidate *nofo.Subsection, pool []*nofo.Subsection) bool {
	for _, member := range pool {
		if m.IsMatching(candidate, member) {
			return true
		}
	}
	return false
}
