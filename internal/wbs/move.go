package wbs

import "errors"

// ErrCycle means a proposed reparenting would make a node its own ancestor.
var ErrCycle = errors.New("reparenting would create a cycle")

// CheckMove verifies that attaching activityID under newParentID keeps the
// parent chain acyclic. parents maps each activity id to its current parent
// (0 = root). The walk is O(depth) and stops if it ever revisits a node,
// so pre-existing bad data cannot loop forever.
func CheckMove(parents map[uint]uint, activityID, newParentID uint) error {
	if newParentID == 0 {
		return nil
	}
	if newParentID == activityID {
		return ErrCycle
	}
	seen := map[uint]bool{}
	for p := newParentID; p != 0; p = parents[p] {
		if p == activityID {
			return ErrCycle
		}
		if seen[p] {
			break
		}
		seen[p] = true
	}
	return nil
}
