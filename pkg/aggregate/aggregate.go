// Package aggregate computes, for any tree node, the sample records
// subsumed by that node's subtree: the ordered concatenation of every
// descendant leaf's samples plus leaf and sample counts. The computation is
// pure over the immutable tree and sample set, so results for different
// nodes may be computed concurrently.
package aggregate

import (
	"fmt"

	"github.com/vanderheijden86/phylomap/pkg/newick"
	"github.com/vanderheijden86/phylomap/pkg/phylo"
	"github.com/vanderheijden86/phylomap/pkg/samples"
)

// Sample is one geographic record attributed to its taxon.
type Sample struct {
	Taxon string             `json:"taxon"`
	Coord samples.Coordinate `json:"coord"`
	Meta  samples.Metadata   `json:"meta,omitempty"`
}

// Result is the transient aggregation for one selected node. It is built
// fresh per selection and carries no references into mutable state.
//
// Seq is a monotonic stamp set by the selection controller so a slow
// renderer can discard results that a newer selection has superseded. The
// aggregator itself leaves it zero.
type Result struct {
	// NodeLabel is the display name: "Taxon <name>" for leaves,
	// "Node <name>" for internal nodes.
	NodeLabel string `json:"node_label"`

	// NodeName is the raw node name, usable for NodeByName lookups.
	NodeName string `json:"node_name"`

	// TotalSamples is the number of geographic records under the node.
	TotalSamples int `json:"total_samples"`

	// TotalTaxa is the number of distinct leaf taxa under the node;
	// 1 when the node itself is a leaf.
	TotalTaxa int `json:"total_taxa"`

	// Samples is the leaf-by-leaf concatenation of sample records in
	// tree traversal order.
	Samples []Sample `json:"samples"`

	Seq uint64 `json:"seq,omitempty"`
}

// Node aggregates the subtree rooted at n. Leaves missing from the sample
// set contribute nothing; the computation is total over every valid node
// and never fails.
func Node(tree *phylo.Tree, n *newick.Node, set *samples.Set) Result {
	res := Result{NodeName: n.Name}

	if n.IsLeaf() {
		res.NodeLabel = fmt.Sprintf("Taxon %s", n.Name)
		res.TotalTaxa = 1
		res.Samples = leafSamples(n, set)
		res.TotalSamples = len(res.Samples)
		return res
	}

	res.NodeLabel = fmt.Sprintf("Node %s", n.Name)
	leaves := tree.LeavesUnder(n)
	res.TotalTaxa = len(leaves)
	for _, leaf := range leaves {
		res.Samples = append(res.Samples, leafSamples(leaf, set)...)
	}
	res.TotalSamples = len(res.Samples)
	return res
}

func leafSamples(leaf *newick.Node, set *samples.Set) []Sample {
	coords := set.Coordinates(leaf.Name)
	if len(coords) == 0 {
		return nil
	}
	meta, _ := set.Metadata(leaf.Name)
	out := make([]Sample, len(coords))
	for i, c := range coords {
		out[i] = Sample{Taxon: leaf.Name, Coord: c, Meta: meta}
	}
	return out
}
