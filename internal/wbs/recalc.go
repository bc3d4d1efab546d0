package wbs

import (
	"math"

	"github.com/kaplack/siget-sub000/internal/calendar"
)

// RecalculateAncestors recomputes every non-leaf node's schedule from its
// children, post-order: start = earliest child start, end = latest child
// end, duration = business days between them. Leaves are never touched;
// their dates come from edits or version data. Unless at least one child
// carries both dates nothing is derivable and the parent keeps its own
// fields.
func RecalculateAncestors(roots []*Node, holidays calendar.Holidays) {
	for _, n := range roots {
		recalcNode(n, holidays)
	}
}

func recalcNode(n *Node, holidays calendar.Holidays) {
	if n.IsLeaf() {
		return
	}
	for _, c := range n.Children {
		recalcNode(c, holidays)
	}

	derivable := false
	for _, c := range n.Children {
		if c.StartDate != nil && c.EndDate != nil {
			derivable = true
			break
		}
	}
	if !derivable {
		return
	}

	var start, end *Node
	for _, c := range n.Children {
		if c.StartDate != nil && (start == nil || c.StartDate.Before(*start.StartDate)) {
			start = c
		}
		if c.EndDate != nil && (end == nil || c.EndDate.After(*end.EndDate)) {
			end = c
		}
	}
	s, e := *start.StartDate, *end.EndDate
	n.StartDate = &s
	n.EndDate = &e
	d := calendar.CountBusinessDays(s, e, holidays)
	n.Duration = &d
}

// RollUpProgress recomputes a node's progress as the duration-weighted
// average of its children, recursively, and caches the result on the node.
// Leaves keep their explicitly entered progress. Children without a
// duration weigh nothing and are skipped entirely; if no child carries
// weight the aggregate is 0. Rounding is half-up to the nearest integer.
func RollUpProgress(n *Node) int {
	if n.IsLeaf() {
		return n.Progress
	}
	var weighted, total float64
	for _, c := range n.Children {
		p := RollUpProgress(c)
		if c.Duration == nil || *c.Duration == 0 {
			continue
		}
		w := float64(*c.Duration)
		weighted += float64(p) * w
		total += w
	}
	if total == 0 {
		n.Progress = 0
		return 0
	}
	n.Progress = int(math.Floor(weighted/total + 0.5))
	return n.Progress
}

// AnnotateTree is the full read pipeline: build the forest, stamp EDT codes,
// roll parent dates up from the leaves and aggregate progress. The same
// path serves baseline and tracking display; the caller chooses which
// version kind feeds the flat list. Returns the forest plus the activity
// ids whose parent reference was missing.
func AnnotateTree(flat []*Node, holidays calendar.Holidays) ([]*Node, []uint) {
	roots, orphans := BuildTree(flat)
	AssignCodes(roots)
	RecalculateAncestors(roots, holidays)
	for _, r := range roots {
		RollUpProgress(r)
	}
	return roots, orphans
}
