package newick

import (
	"fmt"
	"strings"
)

// Node is a single node of a parsed tree. Children are ordered exactly as
// their subtrees appeared in the source text; downstream rendering depends on
// that order being stable.
type Node struct {
	// Name is the node's label. Leaves carry the taxon name used to key
	// external sample data. Internal nodes carry either the label from the
	// source text or a synthesized "Node_<n>" placeholder.
	Name string

	// Length is the branch length to the parent node, or nil when the
	// source text carried no ":length" annotation.
	Length *float64

	// Children is empty for leaves.
	Children []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// String renders the subtree rooted at n with two-space indentation per
// depth level, one node per line. Intended for debugging and test failure
// output, not for round-tripping.
func (n *Node) String() string {
	var sb strings.Builder
	var out func(nd *Node, depth int)
	out = func(nd *Node, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(nd.Name)
		if nd.Length != nil {
			fmt.Fprintf(&sb, " (%g)", *nd.Length)
		}
		sb.WriteByte('\n')
		for _, c := range nd.Children {
			out(c, depth+1)
		}
	}
	out(n, 0)
	return sb.String()
}
