package categories

import (
	"sort"

	"github.com/vitrinalabs/storefront-backend/pkg/cms"
)

// Node is one category in the facet forest.
type Node struct {
	ID       int
	Name     string
	Slug     string
	ParentID int // zero for roots
	Children []*Node
}

// Tree is an immutable index over the category hierarchy, built once per
// catalog visit. It answers subtree expansion for cascade toggles and
// ancestor lookups for display state.
type Tree struct {
	roots  []*Node
	byID   map[int]*Node
	parent map[int]int
}

// NewTree indexes the CMS category payload. Only nodes flagged as parents
// become facet roots; children keep the CMS ordering. Nested children that
// also appear as top-level entries are indexed once under their parent.
func NewTree(data []cms.Category) *Tree {
	t := &Tree{
		byID:   map[int]*Node{},
		parent: map[int]int{},
	}

	childIDs := map[int]struct{}{}
	for _, c := range data {
		for _, child := range c.ChildCategories {
			childIDs[child.ID] = struct{}{}
		}
	}

	for _, c := range data {
		if _, isChild := childIDs[c.ID]; isChild && !c.IsParent {
			continue
		}
		root := t.index(c, 0)
		t.roots = append(t.roots, root)
	}
	return t
}

func (t *Tree) index(c cms.Category, parentID int) *Node {
	node := &Node{
		ID:       c.ID,
		Name:     c.Name,
		Slug:     c.Slug,
		ParentID: parentID,
	}
	t.byID[c.ID] = node
	if parentID != 0 {
		t.parent[c.ID] = parentID
	}
	for _, child := range c.ChildCategories {
		node.Children = append(node.Children, t.index(child, c.ID))
	}
	return node
}

// Roots returns the facet roots in CMS order.
func (t *Tree) Roots() []*Node {
	return t.roots
}

// Node returns the node for id, or nil when unknown.
func (t *Tree) Node(id int) *Node {
	return t.byID[id]
}

// DescendantsOf returns every id in the subtree below id, in ascending
// order. Unknown ids yield an empty slice.
func (t *Tree) DescendantsOf(id int) []int {
	node := t.byID[id]
	if node == nil {
		return nil
	}
	var out []int
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.Children {
			out = append(out, child.ID)
			walk(child)
		}
	}
	walk(node)
	sort.Ints(out)
	return out
}

// IsAncestorSelected reports whether any strict ancestor of id is in the
// selection. Used for indeterminate display state, not for toggle
// correctness.
func (t *Tree) IsAncestorSelected(id int, selection map[int]struct{}) bool {
	for {
		parentID, ok := t.parent[id]
		if !ok {
			return false
		}
		if _, selected := selection[parentID]; selected {
			return true
		}
		id = parentID
	}
}
