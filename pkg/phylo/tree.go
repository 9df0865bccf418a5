// Package phylo wraps a parsed Newick tree in an immutable model with the
// traversal queries the viewer needs: leaf tests, subtree leaf enumeration,
// and name lookup. A Tree never mutates its nodes after construction, so it
// is safe to query from multiple goroutines.
package phylo

import (
	"github.com/vanderheijden86/phylomap/pkg/newick"
)

// Tree is the read-only model built once from a parsed root. Node order is
// the left-to-right sibling order of the source text; every traversal here
// preserves it.
type Tree struct {
	root   *newick.Node
	byName map[string]*newick.Node
	nodes  int
	leaves int
}

// New builds the model for the subtree rooted at root. Node names are
// indexed for lookup; when names collide the first node in traversal order
// wins.
func New(root *newick.Node) *Tree {
	t := &Tree{
		root:   root,
		byName: make(map[string]*newick.Node),
	}
	t.walk(root, 0, func(n *newick.Node, _ int) {
		t.nodes++
		if n.IsLeaf() {
			t.leaves++
		}
		if _, ok := t.byName[n.Name]; !ok {
			t.byName[n.Name] = n
		}
	})
	return t
}

// Root returns the root node.
func (t *Tree) Root() *newick.Node { return t.root }

// Len returns the total number of nodes in the tree.
func (t *Tree) Len() int { return t.nodes }

// LeafCount returns the number of leaves in the whole tree.
func (t *Tree) LeafCount() int { return t.leaves }

// IsLeaf reports whether n has no children.
func (t *Tree) IsLeaf(n *newick.Node) bool { return n.IsLeaf() }

// NodeByName returns the node carrying the given name, if any.
func (t *Tree) NodeByName(name string) (*newick.Node, bool) {
	n, ok := t.byName[name]
	return n, ok
}

// LeavesUnder returns every leaf descendant of n in left-to-right order.
// A leaf yields itself. The traversal uses an explicit stack, matching the
// parser's discipline, so pathologically deep trees stay off the call stack.
func (t *Tree) LeavesUnder(n *newick.Node) []*newick.Node {
	if n.IsLeaf() {
		return []*newick.Node{n}
	}
	var leaves []*newick.Node
	stack := []*newick.Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.IsLeaf() {
			leaves = append(leaves, top)
			continue
		}
		// Push children reversed so the leftmost child pops first.
		for i := len(top.Children) - 1; i >= 0; i-- {
			stack = append(stack, top.Children[i])
		}
	}
	return leaves
}

// CountLeavesUnder returns the number of leaf descendants of n; 1 for a
// leaf itself.
func (t *Tree) CountLeavesUnder(n *newick.Node) int {
	count := 0
	stack := []*newick.Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.IsLeaf() {
			count++
			continue
		}
		stack = append(stack, top.Children...)
	}
	return count
}

// Walk visits every node under root in depth-first pre-order, leftmost child
// first, calling fn with each node and its depth.
func (t *Tree) Walk(fn func(n *newick.Node, depth int)) {
	t.walk(t.root, 0, fn)
}

func (t *Tree) walk(n *newick.Node, depth int, fn func(*newick.Node, int)) {
	fn(n, depth)
	for _, c := range n.Children {
		t.walk(c, depth+1, fn)
	}
}
