// Package selection connects node-selection events to the aggregator and
// the rendering sinks. The controller is single-threaded by design: it is
// driven from the same event loop that delivers selections, so it carries
// no locking. The only state it keeps is the last result, so an external
// re-render trigger (a viewport change, a terminal resize) can repeat the
// hand-off without recomputing.
package selection

import (
	"github.com/vanderheijden86/phylomap/pkg/aggregate"
	"github.com/vanderheijden86/phylomap/pkg/newick"
	"github.com/vanderheijden86/phylomap/pkg/phylo"
	"github.com/vanderheijden86/phylomap/pkg/samples"
)

// SummarySink receives the aggregation summary for display. Clear is called
// before every new selection so stale state never survives a hand-off.
type SummarySink interface {
	Clear()
	UpdateSummary(res aggregate.Result)
}

// MapSink receives the sample records that drive marker placement.
type MapSink interface {
	Clear()
	UpdateMap(records []aggregate.Sample)
}

// Controller translates a selection into an aggregation and pushes it to
// the sinks. Each result is stamped with a monotonically increasing Seq so
// renderers that complete out of order can discard superseded payloads.
type Controller struct {
	tree    *phylo.Tree
	set     *samples.Set
	summary SummarySink
	markers MapSink

	seq  uint64
	last *aggregate.Result
}

// NewController wires a controller to its tree, sample set, and sinks.
// Either sink may be nil when that surface is absent (e.g. robot output).
func NewController(tree *phylo.Tree, set *samples.Set, summary SummarySink, markers MapSink) *Controller {
	return &Controller{tree: tree, set: set, summary: summary, markers: markers}
}

// OnSelect handles a node selection: clears the sinks, aggregates the
// node's subtree, stamps the result, and pushes it out. The stamped result
// is returned for callers that consume it directly.
func (c *Controller) OnSelect(n *newick.Node) aggregate.Result {
	if c.summary != nil {
		c.summary.Clear()
	}
	if c.markers != nil {
		c.markers.Clear()
	}

	res := aggregate.Node(c.tree, n, c.set)
	c.seq++
	res.Seq = c.seq
	c.last = &res

	if c.summary != nil {
		c.summary.UpdateSummary(res)
	}
	if c.markers != nil {
		c.markers.UpdateMap(res.Samples)
	}
	return res
}

// Refresh repeats the last hand-off without recomputing, for external
// re-render triggers. It is a no-op before the first selection.
func (c *Controller) Refresh() {
	if c.last == nil {
		return
	}
	if c.summary != nil {
		c.summary.UpdateSummary(*c.last)
	}
	if c.markers != nil {
		c.markers.UpdateMap(c.last.Samples)
	}
}

// Last returns the most recent result and whether one exists.
func (c *Controller) Last() (aggregate.Result, bool) {
	if c.last == nil {
		return aggregate.Result{}, false
	}
	return *c.last, true
}
