package domain

import "strings"

// MatchExact clears previous search highlights, then marks the single node
// with exactly the given label (if present) and returns it.
func (s *Store) MatchExact(label string) *Node {
	s.ClearSearchHighlights()

	n, ok := s.nodes[label]
	if !ok {
		return nil
	}
	n.SearchHighlighted = true
	return n
}

// MatchSubstring clears previous search highlights, then marks every node
// whose label contains the query (case-insensitive) and returns the matches
// in node insertion order. An empty query matches nothing.
func (s *Store) MatchSubstring(query string) []*Node {
	s.ClearSearchHighlights()

	if query == "" {
		return nil
	}

	q := strings.ToLower(query)
	var matches []*Node
	for _, n := range s.order {
		if strings.Contains(strings.ToLower(n.Label), q) {
			n.SearchHighlighted = true
			matches = append(matches, n)
		}
	}
	return matches
}

// ClearSearchHighlights unmarks search highlights on every node.
func (s *Store) ClearSearchHighlights() {
	for _, n := range s.order {
		n.SearchHighlighted = false
	}
}

// ClearHighlights unmarks both manual and search highlights on every node
// and edge.
func (s *Store) ClearHighlights() {
	for _, n := range s.order {
		n.Highlighted = false
		n.SearchHighlighted = false
	}
	for _, e := range s.edges {
		e.Highlighted = false
	}
}
