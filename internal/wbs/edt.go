package wbs

import "strconv"

// AssignCodes walks the forest depth-first and stamps every node with its
// dotted EDT position code ("1", "1.2", "1.2.3") and depth. Sibling order is
// whatever order the children currently appear in; no secondary sort is
// applied. Re-running on an unchanged tree yields identical codes.
func AssignCodes(roots []*Node) {
	assignCodes(roots, "", 0)
}

func assignCodes(nodes []*Node, prefix string, level int) {
	for i, n := range nodes {
		code := strconv.Itoa(i + 1)
		if prefix != "" {
			code = prefix + "." + code
		}
		n.EDT = code
		n.Level = level
		assignCodes(n.Children, code, level+1)
	}
}
