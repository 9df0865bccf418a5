package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/phylomap/pkg/agents"
	"github.com/vanderheijden86/phylomap/pkg/aggregate"
	"github.com/vanderheijden86/phylomap/pkg/analysis"
	"github.com/vanderheijden86/phylomap/pkg/config"
	"github.com/vanderheijden86/phylomap/pkg/export"
	"github.com/vanderheijden86/phylomap/pkg/loader"
	"github.com/vanderheijden86/phylomap/pkg/newick"
	"github.com/vanderheijden86/phylomap/pkg/phylo"
	"github.com/vanderheijden86/phylomap/pkg/samples"
	"github.com/vanderheijden86/phylomap/pkg/selection"
	"github.com/vanderheijden86/phylomap/pkg/ui"
	"github.com/vanderheijden86/phylomap/pkg/watcher"
)

const version = "0.3.0"

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	treePath := flag.String("tree", "", "Newick tree file (default: discovered in the current directory)")
	samplesPath := flag.String("samples", "", "YAML sample mapping file")
	samplesDB := flag.String("samples-db", "", "SQLite sample database")
	robotHelp := flag.Bool("robot-help", false, "Show AI agent help")
	robotSummary := flag.String("robot-summary", "", "Output the aggregation for a named node (or 'root') as JSON and exit")
	exportMD := flag.String("export-md", "", "Write a Markdown report for the whole tree to a file")
	exportGeoJSON := flag.String("export-geojson", "", "Write all samples as a GeoJSON FeatureCollection to a file")
	exportSVG := flag.String("export-svg", "", "Write an SVG world map of all samples to a file")
	noWatch := flag.Bool("no-watch", false, "Disable live reload when input files change")
	agentsSetup := flag.Bool("agents-setup", false, "Install robot interface instructions into AGENTS.md and exit")
	flag.Parse()

	if *help {
		fmt.Println("Usage: phylomap [options]")
		fmt.Println("\nA TUI viewer for phylogenies with georeferenced samples.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *robotHelp {
		printRobotHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("phylomap %s\n", version)
		os.Exit(0)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving working directory: %v\n", err)
		os.Exit(1)
	}

	if *agentsSetup {
		path := agents.FindAgentFile(cwd)
		if path == "" {
			path = filepath.Join(cwd, "AGENTS.md")
		}
		changed, err := agents.EnsureBlurb(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error updating %s: %v\n", path, err)
			os.Exit(1)
		}
		if changed {
			fmt.Printf("Installed agent instructions in %s\n", path)
		} else {
			fmt.Printf("%s is already up to date\n", path)
		}
		os.Exit(0)
	}

	inputs, err := config.Discover(cwd, config.Inputs{
		TreePath:    *treePath,
		SamplesPath: *samplesPath,
		SamplesDB:   *samplesDB,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Pass --tree, or run in a directory containing tree.nwk.")
		os.Exit(1)
	}

	tree, set, err := loadData(inputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading inputs: %v\n", err)
		os.Exit(1)
	}

	if *robotSummary != "" {
		runRobotSummary(tree, set, *robotSummary)
		os.Exit(0)
	}

	if *exportMD != "" || *exportGeoJSON != "" || *exportSVG != "" {
		if err := runExports(tree, set, *exportMD, *exportGeoJSON, *exportSVG); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := loader.EnsureStateDirIgnored(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not update .gitignore: %v\n", err)
	}

	var hub *watcher.Hub
	if !*noWatch {
		paths := []string{inputs.TreePath}
		if inputs.SamplesPath != "" {
			paths = append(paths, inputs.SamplesPath)
		}
		if inputs.SamplesDB != "" {
			paths = append(paths, inputs.SamplesDB)
		}
		hub, err = watcher.New(paths...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file watching unavailable: %v\n", err)
		} else if err := hub.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file watching unavailable: %v\n", err)
			hub = nil
		}
	}

	theme := ui.DefaultTheme(lipgloss.DefaultRenderer())
	m := ui.NewModel(tree, set, theme, hub)
	m.Reload = func() (*phylo.Tree, *samples.Set, error) {
		return loadData(inputs)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running phylomap: %v\n", err)
		os.Exit(1)
	}
}

// loadData parses the tree and the sample mapping concurrently. A missing
// sample source yields an empty set rather than an error.
func loadData(in config.Inputs) (*phylo.Tree, *samples.Set, error) {
	var (
		tree *phylo.Tree
		set  = samples.NewSet(nil, nil)
	)

	var g errgroup.Group
	g.Go(func() error {
		data, err := os.ReadFile(in.TreePath)
		if err != nil {
			return fmt.Errorf("reading tree: %w", err)
		}
		root, err := newick.Parse(string(data))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", in.TreePath, err)
		}
		tree = phylo.New(root)
		return nil
	})
	g.Go(func() error {
		switch {
		case in.SamplesPath != "":
			s, err := samples.LoadYAML(in.SamplesPath)
			if err != nil {
				return fmt.Errorf("loading samples: %w", err)
			}
			set = s
		case in.SamplesDB != "":
			s, err := samples.LoadSQLite(in.SamplesDB)
			if err != nil {
				return fmt.Errorf("loading sample database: %w", err)
			}
			set = s
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return tree, set, nil
}

// runRobotSummary prints the aggregation for one node as indented JSON.
// The node name "root" always resolves to the tree root.
func runRobotSummary(tree *phylo.Tree, set *samples.Set, name string) {
	node := tree.Root()
	if name != "root" {
		n, ok := tree.NodeByName(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no node named %q in the tree\n", name)
			os.Exit(1)
		}
		node = n
	}

	ctrl := selection.NewController(tree, set, nil, nil)
	res := ctrl.OnSelect(node)

	output := struct {
		GeneratedAt string            `json:"generated_at"`
		Result      aggregate.Result  `json:"result"`
		Geo         analysis.GeoStats `json:"geo"`
	}{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Result:      res,
		Geo:         analysis.Summarize(res),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding summary: %v\n", err)
		os.Exit(1)
	}
}

// runExports writes the requested report files for the whole tree.
func runExports(tree *phylo.Tree, set *samples.Set, mdPath, geojsonPath, svgPath string) error {
	res := aggregate.Node(tree, tree.Root(), set)

	if mdPath != "" {
		report := export.Markdown(res, analysis.Summarize(res))
		if err := os.WriteFile(mdPath, []byte(report), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", mdPath, err)
		}
		fmt.Printf("Exported Markdown report to %s\n", mdPath)
	}

	if geojsonPath != "" {
		data, err := export.GeoJSON(res)
		if err != nil {
			return fmt.Errorf("encoding GeoJSON: %w", err)
		}
		if err := os.WriteFile(geojsonPath, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", geojsonPath, err)
		}
		fmt.Printf("Exported %d samples to %s\n", res.TotalSamples, geojsonPath)
	}

	if svgPath != "" {
		f, err := os.Create(svgPath)
		if err != nil {
			return fmt.Errorf("writing %s: %w", svgPath, err)
		}
		export.SVGMap(f, res, 960, 480)
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing %s: %w", svgPath, err)
		}
		fmt.Printf("Exported SVG map to %s\n", svgPath)
	}
	return nil
}

func printRobotHelp() {
	fmt.Println("phylomap AI Agent Interface")
	fmt.Println("===========================")
	fmt.Println("This tool aggregates georeferenced samples over a phylogenetic tree.")
	fmt.Println("Use these commands to inspect a dataset without the TUI.")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  --robot-summary <node|root>")
	fmt.Println("      Outputs the aggregation for one node as JSON.")
	fmt.Println("      Key fields:")
	fmt.Println("      - result.node_label: Display label (Taxon X for leaves, Node X inside)")
	fmt.Println("      - result.total_samples / result.total_taxa: Subtree totals")
	fmt.Println("      - result.samples: Every sample under the node, in leaf order")
	fmt.Println("      - geo: Centroid, spread, bounding box, and date range")
	fmt.Println("")
	fmt.Println("  --export-geojson <file>")
	fmt.Println("      Writes all samples as a GeoJSON FeatureCollection.")
	fmt.Println("      Coordinates follow RFC 7946: [longitude, latitude].")
	fmt.Println("")
	fmt.Println("  --export-md <file>")
	fmt.Println("      Writes a readable report with per-sample tables.")
	fmt.Println("")
	fmt.Println("  --export-svg <file>")
	fmt.Println("      Writes an equirectangular world map of all samples.")
	fmt.Println("")
	fmt.Println("Input discovery: tree.nwk / tree.newick / tree.tree plus")
	fmt.Println("samples.yaml / samples.yml / samples.db in the working directory,")
	fmt.Println("overridable with --tree, --samples, and --samples-db.")
}
