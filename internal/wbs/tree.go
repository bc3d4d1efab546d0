package wbs

import "sort"

// BuildTree converts flat version records into a rooted forest. Each input
// node is copied, so annotations applied to the returned tree never leak
// into caller-held records. A node whose declared parent is missing from
// the input is kept as a root rather than silently dropped; its activity id
// is reported in the second return value so callers can flag the
// data-integrity problem. Cycles are not detected here; reparenting is
// guarded at the move operation instead.
func BuildTree(flat []*Node) ([]*Node, []uint) {
	byID := make(map[uint]*Node, len(flat))
	copies := make([]*Node, 0, len(flat))
	for _, src := range flat {
		n := *src
		n.Children = nil
		byID[n.ActivityID] = &n
		copies = append(copies, &n)
	}

	var roots []*Node
	var orphans []uint
	for _, n := range copies {
		if n.ParentID == 0 {
			roots = append(roots, n)
			continue
		}
		parent, ok := byID[n.ParentID]
		if !ok || parent == n {
			orphans = append(orphans, n.ActivityID)
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	sortSiblings(roots)
	return roots, orphans
}

// sortSiblings orders each sibling group by SiblingOrder, keeping input
// order for ties (unassigned orders default together).
func sortSiblings(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].SiblingOrder < nodes[j].SiblingOrder
	})
	for _, n := range nodes {
		sortSiblings(n.Children)
	}
}

// Flatten returns the tree's nodes in depth-first order with Children
// cleared, the inverse of BuildTree up to ordering.
func Flatten(roots []*Node) []*Node {
	var out []*Node
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			flat := *n
			flat.Children = nil
			out = append(out, &flat)
			walk(n.Children)
		}
	}
	walk(roots)
	return out
}
