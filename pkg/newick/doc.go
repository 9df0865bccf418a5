// Package newick parses phylogenetic trees in the Newick format: nested
// parentheses for clades, commas between siblings, an optional colon-prefixed
// branch length per node, and a terminating semicolon. The conventions
// followed are roughly those described at
// http://evolution.genetics.washington.edu/phylip/newicktree.html.
//
// Comments, quoted labels, and multiple trees per input are not supported.
// Parsing is strict: unbalanced delimiters, unparseable branch lengths, and
// trailing content after the semicolon all fail with a *ParseError rather
// than producing a partial tree.
package newick
