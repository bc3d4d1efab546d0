package wbs

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func intp(n int) *int { return &n }

func TestBuildTreeBasic(t *testing.T) {
	flat := []*Node{
		{ActivityID: 1, ParentID: 0, SiblingOrder: 1, Name: "A"},
		{ActivityID: 2, ParentID: 1, SiblingOrder: 1, Name: "A.1"},
		{ActivityID: 3, ParentID: 1, SiblingOrder: 2, Name: "A.2"},
	}

	roots, orphans := BuildTree(flat)
	require.Empty(t, orphans)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "A.1", roots[0].Children[0].Name)
	assert.Equal(t, "A.2", roots[0].Children[1].Name)
}

func TestBuildTreeDoesNotMutateInput(t *testing.T) {
	flat := []*Node{
		{ActivityID: 1, ParentID: 0, Name: "root"},
		{ActivityID: 2, ParentID: 1, Name: "child"},
	}

	roots, _ := BuildTree(flat)
	roots[0].Name = "renamed"
	roots[0].Children[0].Progress = 99

	assert.Equal(t, "root", flat[0].Name)
	assert.Equal(t, 0, flat[1].Progress)
	assert.Nil(t, flat[0].Children)
}

func TestBuildTreeSortsSiblings(t *testing.T) {
	flat := []*Node{
		{ActivityID: 1, ParentID: 0, SiblingOrder: 1},
		{ActivityID: 2, ParentID: 1, SiblingOrder: 3, Name: "third"},
		{ActivityID: 3, ParentID: 1, SiblingOrder: 1, Name: "first"},
		{ActivityID: 4, ParentID: 1, SiblingOrder: 2, Name: "second"},
	}

	roots, _ := BuildTree(flat)
	names := []string{}
	for _, c := range roots[0].Children {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"first", "second", "third"}, names)
}

func TestBuildTreeOrphanBecomesRoot(t *testing.T) {
	flat := []*Node{
		{ActivityID: 1, ParentID: 0, Name: "root"},
		{ActivityID: 2, ParentID: 99, Name: "orphan"}, // parent not in input
	}

	roots, orphans := BuildTree(flat)
	require.Len(t, roots, 2)
	assert.Equal(t, []uint{2}, orphans)
}

func TestBuildTreeSelfReferenceBecomesRoot(t *testing.T) {
	flat := []*Node{
		{ActivityID: 7, ParentID: 7, Name: "self"},
	}

	roots, orphans := BuildTree(flat)
	require.Len(t, roots, 1)
	assert.Equal(t, []uint{7}, orphans)
}

func TestFlattenRoundTrip(t *testing.T) {
	flat := []*Node{
		{ActivityID: 1, ParentID: 0, SiblingOrder: 1, Name: "A", StartDate: date(2025, time.January, 6), Duration: intp(5), Progress: 10},
		{ActivityID: 2, ParentID: 1, SiblingOrder: 2, Name: "A.2", Assignee: "supervisor"},
		{ActivityID: 3, ParentID: 1, SiblingOrder: 1, Name: "A.1", Comment: "critical"},
		{ActivityID: 4, ParentID: 3, SiblingOrder: 1, Name: "A.1.1", Progress: 80},
		{ActivityID: 5, ParentID: 0, SiblingOrder: 2, Name: "B"},
	}

	roots, orphans := BuildTree(flat)
	require.Empty(t, orphans)
	out := Flatten(roots)
	require.Len(t, out, len(flat))

	byID := func(nodes []*Node) []*Node {
		sorted := append([]*Node{}, nodes...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].ActivityID < sorted[j].ActivityID })
		return sorted
	}
	in, got := byID(flat), byID(out)
	for i := range in {
		assert.Equal(t, *in[i], *got[i])
	}
}
