package aggregate

import (
	"reflect"
	"testing"

	"github.com/vanderheijden86/phylomap/pkg/newick"
	"github.com/vanderheijden86/phylomap/pkg/phylo"
	"github.com/vanderheijden86/phylomap/pkg/samples"
)

func fixture(t *testing.T) (*phylo.Tree, *samples.Set) {
	t.Helper()
	root, err := newick.Parse("((A:0.9,(B:0.,(C:0.3,D:0.4):0.5):0.1):0.6,E:2.8);")
	if err != nil {
		t.Fatalf("parse fixture tree: %v", err)
	}
	set := samples.NewSet(
		map[string][]samples.Coordinate{
			"A": {{Lat: 52.37, Lon: 4.89}, {Lat: 48.85, Lon: 2.35}},
			"B": {{Lat: -33.86, Lon: 151.21}},
			"C": {{Lat: 35.68, Lon: 139.69}, {Lat: 37.57, Lon: 126.98}, {Lat: 1.35, Lon: 103.82}},
			// D deliberately absent: missing mapping entries are normal.
			"E": {{Lat: 40.71, Lon: -74.01}},
		},
		map[string]samples.Metadata{
			"A": {CollectedOn: "2021-03-14"},
			"B": {CollectedOn: "2019-07-02"},
		},
	)
	return phylo.New(root), set
}

func TestAggregateLeaf(t *testing.T) {
	tree, set := fixture(t)
	a, _ := tree.NodeByName("A")

	res := Node(tree, a, set)
	if res.NodeLabel != "Taxon A" {
		t.Errorf("NodeLabel = %q, want Taxon A", res.NodeLabel)
	}
	if res.TotalTaxa != 1 {
		t.Errorf("TotalTaxa = %d, want 1", res.TotalTaxa)
	}
	if res.TotalSamples != 2 {
		t.Errorf("TotalSamples = %d, want 2", res.TotalSamples)
	}

	// Leaf identity: samples equal the mapping entry, unmodified, in order.
	want := set.Coordinates("A")
	if len(res.Samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(res.Samples))
	}
	for i, s := range res.Samples {
		if s.Taxon != "A" {
			t.Errorf("sample %d taxon = %q, want A", i, s.Taxon)
		}
		if s.Coord != want[i] {
			t.Errorf("sample %d coord = %+v, want %+v", i, s.Coord, want[i])
		}
		if s.Meta.CollectedOn != "2021-03-14" {
			t.Errorf("sample %d metadata = %+v, want collected_on 2021-03-14", i, s.Meta)
		}
	}
}

func TestAggregateMissingTaxon(t *testing.T) {
	tree, set := fixture(t)
	d, _ := tree.NodeByName("D")

	res := Node(tree, d, set)
	if res.TotalSamples != 0 {
		t.Errorf("TotalSamples = %d, want 0", res.TotalSamples)
	}
	if len(res.Samples) != 0 {
		t.Errorf("Samples = %v, want empty", res.Samples)
	}
	if res.TotalTaxa != 1 {
		t.Errorf("TotalTaxa = %d, want 1", res.TotalTaxa)
	}
}

func TestAggregateRoot(t *testing.T) {
	tree, set := fixture(t)

	res := Node(tree, tree.Root(), set)
	if res.TotalTaxa != 5 {
		t.Errorf("TotalTaxa = %d, want 5", res.TotalTaxa)
	}
	if res.TotalSamples != 7 {
		t.Errorf("TotalSamples = %d, want 7 (2+1+3+0+1)", res.TotalSamples)
	}

	// Concatenation order follows leaf order A, B, C, D, E.
	wantTaxa := []string{"A", "A", "B", "C", "C", "C", "E"}
	for i, s := range res.Samples {
		if s.Taxon != wantTaxa[i] {
			t.Errorf("sample %d taxon = %q, want %q", i, s.Taxon, wantTaxa[i])
		}
	}

	if res.NodeLabel != "Node "+tree.Root().Name {
		t.Errorf("NodeLabel = %q, want Node prefix with root name", res.NodeLabel)
	}
}

// TestAggregateAdditivity checks that each internal node's aggregation is
// exactly the order-preserving concatenation of its children's aggregations.
func TestAggregateAdditivity(t *testing.T) {
	tree, set := fixture(t)

	tree.Walk(func(n *newick.Node, _ int) {
		if n.IsLeaf() {
			return
		}
		parent := Node(tree, n, set)

		sum := 0
		var concat []Sample
		for _, c := range n.Children {
			child := Node(tree, c, set)
			sum += child.TotalSamples
			concat = append(concat, child.Samples...)
		}
		if parent.TotalSamples != sum {
			t.Errorf("node %q: TotalSamples %d != sum of children %d", n.Name, parent.TotalSamples, sum)
		}
		if !reflect.DeepEqual(parent.Samples, concat) {
			t.Errorf("node %q: samples are not the concatenation of child samples", n.Name)
		}
	})
}
