package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/phylomap/pkg/aggregate"
	"github.com/vanderheijden86/phylomap/pkg/analysis"
	"github.com/vanderheijden86/phylomap/pkg/export"
	"github.com/vanderheijden86/phylomap/pkg/phylo"
	"github.com/vanderheijden86/phylomap/pkg/samples"
	"github.com/vanderheijden86/phylomap/pkg/selection"
	"github.com/vanderheijden86/phylomap/pkg/watcher"
)

// ReloadMsg signals that an input file changed on disk and the session
// should reload the tree and samples.
type ReloadMsg struct{}

// reloadedMsg carries the freshly loaded data back into the update loop.
type reloadedMsg struct {
	tree *phylo.Tree
	set  *samples.Set
	err  error
}

// SummaryPane renders the selection summary as glamour-formatted markdown
// inside a scrollable viewport. It implements selection.SummarySink.
type SummaryPane struct {
	viewport viewport.Model
	renderer *glamour.TermRenderer
	raw      string
	empty    bool
}

// Clear wipes the pane ahead of a new selection.
func (p *SummaryPane) Clear() {
	p.raw = ""
	p.empty = true
	p.viewport.SetContent("")
}

// UpdateSummary renders the aggregation report into the viewport.
func (p *SummaryPane) UpdateSummary(res aggregate.Result) {
	p.empty = false
	p.raw = export.Markdown(res, analysis.Summarize(res))
	content := p.raw
	if p.renderer != nil {
		if rendered, err := p.renderer.Render(p.raw); err == nil {
			content = rendered
		}
	}
	p.viewport.SetContent(content)
	p.viewport.GotoTop()
}

// Model is the root bubbletea model: tree pane on the left, summary and
// map panes on the right, selection wired through the controller.
type Model struct {
	theme Theme

	tree    TreeModel
	summary *SummaryPane
	mapView *MapView
	ctrl    *selection.Controller

	phyloTree *phylo.Tree
	set       *samples.Set

	// Reload produces fresh data when an input file changes; nil disables
	// the r key and watcher reloads.
	Reload func() (*phylo.Tree, *samples.Set, error)

	hub *watcher.Hub

	width  int
	height int
	ready  bool
	status string
}

// NewModel wires the panes and controller for a loaded session. hub may be
// nil when file watching is disabled.
func NewModel(tree *phylo.Tree, set *samples.Set, theme Theme, hub *watcher.Hub) Model {
	mapView := NewMapView(theme)
	m := Model{
		theme:     theme,
		tree:      NewTreeModel(theme),
		summary:   &SummaryPane{},
		mapView:   &mapView,
		phyloTree: tree,
		set:       set,
		hub:       hub,
	}
	m.tree.Build(tree, set)
	m.ctrl = selection.NewController(tree, set, m.summary, m.mapView)
	return m
}

// Init starts the watcher listener when a hub is attached.
func (m Model) Init() tea.Cmd {
	if m.hub != nil {
		return watchCmd(m.hub)
	}
	return nil
}

func watchCmd(hub *watcher.Hub) tea.Cmd {
	return func() tea.Msg {
		<-hub.Changes()
		return ReloadMsg{}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	reload := m.Reload
	return func() tea.Msg {
		tree, set, err := reload()
		return reloadedMsg{tree: tree, set: set, err: err}
	}
}

// Update handles key, resize, and reload messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		if !m.ready {
			m.ready = true
			m.selectCursor()
		} else {
			// Re-render the last result at the new size; no recompute.
			m.ctrl.Refresh()
		}
		return m, nil

	case ReloadMsg:
		var cmds []tea.Cmd
		if m.hub != nil {
			// Keep listening even when reloading is impossible, so the
			// hub's channel never backs up.
			cmds = append(cmds, watchCmd(m.hub))
		}
		if m.Reload != nil {
			m.status = "reloading..."
			cmds = append(cmds, m.reloadCmd())
		}
		return m, tea.Batch(cmds...)

	case reloadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("reload failed: %v", msg.err)
			return m, nil
		}
		selected := ""
		if n := m.tree.SelectedNode(); n != nil {
			selected = n.Name
		}
		m.phyloTree = msg.tree
		m.set = msg.set
		m.tree.Build(msg.tree, msg.set)
		m.ctrl = selection.NewController(msg.tree, msg.set, m.summary, m.mapView)
		if selected != "" {
			m.tree.SelectByName(selected)
		}
		m.selectCursor()
		m.status = "reloaded"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.hub != nil {
			m.hub.Stop()
		}
		return m, tea.Quit

	case "up", "k":
		m.tree.MoveUp()
		m.selectCursor()
	case "down", "j":
		m.tree.MoveDown()
		m.selectCursor()
	case "pgup":
		m.tree.PageUp()
		m.selectCursor()
	case "pgdown":
		m.tree.PageDown()
		m.selectCursor()
	case "g":
		m.tree.JumpToTop()
		m.selectCursor()
	case "G":
		m.tree.JumpToBottom()
		m.selectCursor()
	case "right", "l":
		m.tree.ExpandOrMoveToChild()
		m.selectCursor()
	case "left", "h":
		m.tree.CollapseOrJumpToParent()
		m.selectCursor()
	case " ", "enter":
		m.tree.ToggleExpand()
		m.selectCursor()
	case "E":
		m.tree.ExpandAll()
		m.selectCursor()
	case "C":
		m.tree.CollapseAll()
		m.selectCursor()
	case "p":
		m.tree.JumpToParent()
		m.selectCursor()

	case "c":
		m.copySelection()

	case "r":
		if m.Reload != nil {
			m.status = "reloading..."
			return m, m.reloadCmd()
		}

	case "J":
		m.summary.viewport.LineDown(3)
	case "K":
		m.summary.viewport.LineUp(3)
	}
	return m, nil
}

// selectCursor runs the selection pipeline for the node under the cursor.
func (m *Model) selectCursor() {
	if n := m.tree.SelectedNode(); n != nil {
		res := m.ctrl.OnSelect(n)
		m.status = fmt.Sprintf("%s: %d taxa, %d samples", res.NodeLabel, res.TotalTaxa, res.TotalSamples)
	}
}

// copySelection puts the selected node's samples on the clipboard as
// GeoJSON.
func (m *Model) copySelection() {
	res, ok := m.ctrl.Last()
	if !ok {
		return
	}
	data, err := export.GeoJSON(res)
	if err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("copied %d samples as GeoJSON", res.TotalSamples)
}

// layout distributes the window between the panes: tree on the left 40%,
// summary over map on the right.
func (m *Model) layout() {
	treeWidth := m.width * 2 / 5
	if treeWidth < 24 {
		treeWidth = 24
	}
	rightWidth := m.width - treeWidth - 4
	if rightWidth < 20 {
		rightWidth = 20
	}
	contentHeight := m.height - 3
	if contentHeight < 6 {
		contentHeight = 6
	}
	summaryHeight := contentHeight * 3 / 5
	mapHeight := contentHeight - summaryHeight - 2

	m.tree.SetSize(treeWidth, contentHeight)
	m.mapView.SetSize(rightWidth, mapHeight)

	m.summary.viewport.Width = rightWidth
	m.summary.viewport.Height = summaryHeight
	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(rightWidth),
	); err == nil {
		m.summary.renderer = r
	}
}

// View renders the full screen.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	left := m.theme.Border.Render(m.tree.View())
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Border.Render(m.summary.viewport.View()),
		m.theme.Border.Render(m.mapView.View()),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	help := m.theme.Renderer.NewStyle().Foreground(m.theme.Muted).Render(
		"↑/↓ move · ←/→ fold · space toggle · E/C all · c copy geojson · r reload · q quit")
	status := m.theme.Renderer.NewStyle().Foreground(m.theme.Secondary).Render(m.status)

	return lipgloss.JoinVertical(lipgloss.Left, body, status, help)
}
