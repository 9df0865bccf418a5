// tree.go - Hierarchical tree pane over the parsed phylogeny.
package ui

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/phylomap/pkg/newick"
	"github.com/vanderheijden86/phylomap/pkg/phylo"
	"github.com/vanderheijden86/phylomap/pkg/samples"
)

// TreeState is the persisted expand/collapse state, saved to
// .phylomap/tree-state.json so a reopened session shows the same clades.
//
// Only explicit user changes are stored; nodes absent from the map use the
// default (expanded for depth < 2). A corrupted or missing file silently
// falls back to defaults. Placeholder node names shift when the source tree
// is edited, so stale names are ignored on load.
type TreeState struct {
	Version  int             `json:"version"`
	Expanded map[string]bool `json:"expanded"`
}

// TreeStateVersion is the current schema version for tree persistence.
const TreeStateVersion = 1

const treeStateFileName = "tree-state.json"

// TreeStatePath returns the path to the tree state file under stateDir,
// defaulting to .phylomap in the working directory.
func TreeStatePath(stateDir string) string {
	if stateDir == "" {
		stateDir = ".phylomap"
	}
	return filepath.Join(stateDir, treeStateFileName)
}

// treeNode decorates one phylogeny node with view state.
type treeNode struct {
	node     *newick.Node
	parent   *treeNode
	children []*treeNode
	depth    int
	expanded bool
}

// TreeModel manages the tree pane: flattened visible rows, the cursor, and
// expand/collapse state.
type TreeModel struct {
	roots    []*treeNode
	flatList []*treeNode
	byName   map[string]*treeNode
	cursor   int
	theme    Theme
	width    int
	height   int

	// set supplies per-leaf sample counts for row badges; may be nil.
	set *samples.Set

	built    bool
	stateDir string
}

// NewTreeModel creates an empty tree pane.
func NewTreeModel(theme Theme) TreeModel {
	return TreeModel{
		theme:  theme,
		byName: make(map[string]*treeNode),
	}
}

// SetStateDir overrides the directory holding tree-state.json. Call before
// Build when a custom location is wanted.
func (t *TreeModel) SetStateDir(dir string) {
	t.stateDir = dir
}

// SetSize updates the pane dimensions.
func (t *TreeModel) SetSize(width, height int) {
	t.width = width
	t.height = height
}

// Build constructs the view over a parsed tree. Sibling order comes
// straight from the source text and is never re-sorted; downstream sample
// concatenation depends on it.
func (t *TreeModel) Build(tree *phylo.Tree, set *samples.Set) {
	t.roots = nil
	t.flatList = nil
	t.byName = make(map[string]*treeNode)
	t.cursor = 0
	t.set = set

	if tree != nil && tree.Root() != nil {
		t.roots = []*treeNode{t.buildNode(tree.Root(), 0, nil)}
	}
	t.rebuildFlatList()

	t.loadState()
	t.rebuildFlatList()

	t.built = true
}

func (t *TreeModel) buildNode(n *newick.Node, depth int, parent *treeNode) *treeNode {
	tn := &treeNode{
		node:     n,
		parent:   parent,
		depth:    depth,
		expanded: depth < 2,
	}
	if _, ok := t.byName[n.Name]; !ok {
		t.byName[n.Name] = tn
	}
	for _, c := range n.Children {
		tn.children = append(tn.children, t.buildNode(c, depth+1, tn))
	}
	return tn
}

// saveState persists explicit expand/collapse deviations from the default.
// Errors are logged but never interrupt the session.
func (t *TreeModel) saveState() {
	state := &TreeState{
		Version:  TreeStateVersion,
		Expanded: make(map[string]bool),
	}

	var walk func(tn *treeNode)
	walk = func(tn *treeNode) {
		defaultExpanded := tn.depth < 2
		if tn.expanded != defaultExpanded {
			state.Expanded[tn.node.Name] = tn.expanded
		}
		for _, c := range tn.children {
			walk(c)
		}
	}
	for _, root := range t.roots {
		walk(root)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Printf("warning: failed to marshal tree state: %v", err)
		return
	}

	path := TreeStatePath(t.stateDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("warning: failed to create state directory: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("warning: failed to write tree state to %s: %v", path, err)
	}
}

// loadState restores persisted expand state; missing or corrupted files are
// silently ignored.
func (t *TreeModel) loadState() {
	data, err := os.ReadFile(TreeStatePath(t.stateDir))
	if err != nil {
		return
	}

	var state TreeState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("warning: invalid tree state file, using defaults: %v", err)
		return
	}

	for name, expanded := range state.Expanded {
		if tn, ok := t.byName[name]; ok {
			tn.expanded = expanded
		}
	}
}

// View renders the visible rows with the cursor row highlighted.
func (t *TreeModel) View() string {
	if !t.built || len(t.flatList) == 0 {
		return t.renderEmptyState()
	}

	start, end := t.visibleRange()

	var sb strings.Builder
	for i := start; i < end; i++ {
		line := t.renderNode(t.flatList[i])
		if i == t.cursor {
			line = t.theme.Selected.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *TreeModel) renderEmptyState() string {
	r := t.theme.Renderer
	muted := r.NewStyle().Foreground(t.theme.Muted)

	var sb strings.Builder
	sb.WriteString(t.theme.Title.Render("Tree"))
	sb.WriteString("\n\n")
	sb.WriteString(muted.Render("No tree loaded."))
	return sb.String()
}

// renderNode renders one row: branch glyphs, expand indicator, node name,
// and for leaves a sample-count badge.
func (t *TreeModel) renderNode(tn *treeNode) string {
	r := t.theme.Renderer
	var sb strings.Builder

	prefix := t.buildTreePrefix(tn)
	sb.WriteString(prefix)

	indicator := "•"
	if len(tn.children) > 0 {
		if tn.expanded {
			indicator = "▾"
		} else {
			indicator = "▸"
		}
	}
	sb.WriteString(r.NewStyle().Foreground(t.theme.Secondary).Render(indicator))
	sb.WriteString(" ")

	name := tn.node.Name
	maxName := t.width - lipgloss.Width(prefix) - 12
	if maxName < 8 {
		maxName = 8
	}
	name = truncate(name, maxName)

	if tn.node.IsLeaf() {
		sb.WriteString(r.NewStyle().Foreground(t.theme.Highlight).Render(name))
		if t.set != nil {
			if n := len(t.set.Coordinates(tn.node.Name)); n > 0 {
				badge := fmt.Sprintf(" [%d]", n)
				sb.WriteString(r.NewStyle().Foreground(t.theme.Primary).Render(badge))
			}
		}
	} else {
		sb.WriteString(name)
		count := r.NewStyle().Foreground(t.theme.Muted).Render(fmt.Sprintf(" (%d)", countLeaves(tn)))
		sb.WriteString(count)
	}

	return sb.String()
}

func countLeaves(tn *treeNode) int {
	if len(tn.children) == 0 {
		return 1
	}
	n := 0
	for _, c := range tn.children {
		n += countLeaves(c)
	}
	return n
}

// buildTreePrefix builds the indentation and branch glyphs for a row.
func (t *TreeModel) buildTreePrefix(tn *treeNode) string {
	if tn.depth == 0 {
		return ""
	}

	var parts []string
	ancestors := t.ancestors(tn)
	for i := 0; i < len(ancestors)-1; i++ {
		if t.hasSiblingsBelow(ancestors[i]) {
			parts = append(parts, "│  ")
		} else {
			parts = append(parts, "   ")
		}
	}
	if t.isLastChild(tn) {
		parts = append(parts, "└─ ")
	} else {
		parts = append(parts, "├─ ")
	}

	return t.theme.Renderer.NewStyle().Foreground(t.theme.Muted).Render(strings.Join(parts, ""))
}

// ancestors returns root..parent followed by the node itself.
func (t *TreeModel) ancestors(tn *treeNode) []*treeNode {
	var out []*treeNode
	for cur := tn.parent; cur != nil; cur = cur.parent {
		out = append([]*treeNode{cur}, out...)
	}
	return append(out, tn)
}

func (t *TreeModel) hasSiblingsBelow(tn *treeNode) bool {
	if tn.parent == nil {
		for i, root := range t.roots {
			if root == tn {
				return i < len(t.roots)-1
			}
		}
		return false
	}
	siblings := tn.parent.children
	for i, s := range siblings {
		if s == tn {
			return i < len(siblings)-1
		}
	}
	return false
}

func (t *TreeModel) isLastChild(tn *treeNode) bool {
	if tn.parent == nil {
		return len(t.roots) > 0 && t.roots[len(t.roots)-1] == tn
	}
	siblings := tn.parent.children
	return len(siblings) > 0 && siblings[len(siblings)-1] == tn
}

// truncate shortens s to maxWidth display cells with an ellipsis.
func truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// visibleRange returns the [start, end) window of rows to render, keeping
// the cursor in view.
func (t *TreeModel) visibleRange() (start, end int) {
	if len(t.flatList) == 0 {
		return 0, 0
	}
	visible := t.height
	if visible <= 0 {
		visible = 20
	}
	start = t.cursor - visible/2
	if start < 0 {
		start = 0
	}
	end = start + visible
	if end > len(t.flatList) {
		end = len(t.flatList)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// SelectedNode returns the phylogeny node under the cursor, or nil.
func (t *TreeModel) SelectedNode() *newick.Node {
	if t.cursor >= 0 && t.cursor < len(t.flatList) {
		return t.flatList[t.cursor].node
	}
	return nil
}

// SelectByName moves the cursor to the named node, expanding ancestors so
// it is visible. Returns false when the name is unknown.
func (t *TreeModel) SelectByName(name string) bool {
	tn, ok := t.byName[name]
	if !ok {
		return false
	}
	for cur := tn.parent; cur != nil; cur = cur.parent {
		cur.expanded = true
	}
	t.rebuildFlatList()
	for i, n := range t.flatList {
		if n == tn {
			t.cursor = i
			return true
		}
	}
	return false
}

// MoveDown moves the cursor down one row.
func (t *TreeModel) MoveDown() {
	if t.cursor < len(t.flatList)-1 {
		t.cursor++
	}
}

// MoveUp moves the cursor up one row.
func (t *TreeModel) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
}

// JumpToTop moves the cursor to the first row.
func (t *TreeModel) JumpToTop() { t.cursor = 0 }

// JumpToBottom moves the cursor to the last row.
func (t *TreeModel) JumpToBottom() {
	if len(t.flatList) > 0 {
		t.cursor = len(t.flatList) - 1
	}
}

// JumpToParent moves the cursor to the selected node's parent.
func (t *TreeModel) JumpToParent() {
	if t.cursor < 0 || t.cursor >= len(t.flatList) {
		return
	}
	parent := t.flatList[t.cursor].parent
	if parent == nil {
		return
	}
	for i, n := range t.flatList {
		if n == parent {
			t.cursor = i
			return
		}
	}
}

// ToggleExpand flips the selected clade open or closed.
func (t *TreeModel) ToggleExpand() {
	if t.cursor < 0 || t.cursor >= len(t.flatList) {
		return
	}
	tn := t.flatList[t.cursor]
	if len(tn.children) == 0 {
		return
	}
	tn.expanded = !tn.expanded
	t.rebuildFlatList()
	t.saveState()
}

// ExpandOrMoveToChild handles → / l: expand a collapsed clade, otherwise
// step into its first child.
func (t *TreeModel) ExpandOrMoveToChild() {
	if t.cursor < 0 || t.cursor >= len(t.flatList) {
		return
	}
	tn := t.flatList[t.cursor]
	if len(tn.children) == 0 {
		return
	}
	if !tn.expanded {
		tn.expanded = true
		t.rebuildFlatList()
		t.saveState()
		return
	}
	for i, n := range t.flatList {
		if n == tn.children[0] {
			t.cursor = i
			return
		}
	}
}

// CollapseOrJumpToParent handles ← / h: collapse an open clade, otherwise
// jump to the parent.
func (t *TreeModel) CollapseOrJumpToParent() {
	if t.cursor < 0 || t.cursor >= len(t.flatList) {
		return
	}
	tn := t.flatList[t.cursor]
	if len(tn.children) > 0 && tn.expanded {
		tn.expanded = false
		t.rebuildFlatList()
		t.saveState()
		return
	}
	t.JumpToParent()
}

// ExpandAll opens every clade.
func (t *TreeModel) ExpandAll() {
	t.setExpandedAll(true)
}

// CollapseAll closes every clade.
func (t *TreeModel) CollapseAll() {
	t.setExpandedAll(false)
}

func (t *TreeModel) setExpandedAll(expanded bool) {
	var walk func(tn *treeNode)
	walk = func(tn *treeNode) {
		tn.expanded = expanded
		for _, c := range tn.children {
			walk(c)
		}
	}
	for _, root := range t.roots {
		walk(root)
	}
	t.rebuildFlatList()
	t.saveState()
}

// PageDown moves the cursor down by half a pane.
func (t *TreeModel) PageDown() {
	step := t.height / 2
	if step < 1 {
		step = 5
	}
	t.cursor += step
	if t.cursor >= len(t.flatList) {
		t.cursor = len(t.flatList) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// PageUp moves the cursor up by half a pane.
func (t *TreeModel) PageUp() {
	step := t.height / 2
	if step < 1 {
		step = 5
	}
	t.cursor -= step
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *TreeModel) rebuildFlatList() {
	t.flatList = t.flatList[:0]
	for _, root := range t.roots {
		t.appendVisible(root)
	}
	if t.cursor >= len(t.flatList) {
		t.cursor = len(t.flatList) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *TreeModel) appendVisible(tn *treeNode) {
	t.flatList = append(t.flatList, tn)
	if tn.expanded {
		for _, c := range tn.children {
			t.appendVisible(c)
		}
	}
}

// IsBuilt reports whether Build has run.
func (t *TreeModel) IsBuilt() bool { return t.built }

// NodeCount returns the number of currently visible rows.
func (t *TreeModel) NodeCount() int { return len(t.flatList) }

// RootCount returns the number of root nodes (1 for any parsed tree).
func (t *TreeModel) RootCount() int { return len(t.roots) }
