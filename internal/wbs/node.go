package wbs

import "time"

// Node is the in-memory WBS tree node: one activity's current version of a
// given kind, plus the derived EDT code, depth and children. Trees are
// rebuilt from the flat version rows on every read and never persisted.
type Node struct {
	ActivityID   uint       `json:"activityId"`
	ParentID     uint       `json:"parentId"` // 0 = root
	SiblingOrder int        `json:"siblingOrder"`
	Name         string     `json:"name"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Duration     *int       `json:"duration"` // business days
	Assignee     string     `json:"assignee"`
	Predecessors string     `json:"predecessors"`
	Comment      string     `json:"comment"`
	Progress     int        `json:"progress"` // 0..100
	Justification string    `json:"justification"`

	EDT      string  `json:"edt"`   // dotted position code, e.g. "1.2.3"
	Level    int     `json:"level"` // depth, roots at 0
	Children []*Node `json:"children"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}
