package newick

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes a grammar violation in the Newick input. Offset is
// the byte position in the input where the offending token begins.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("newick: parse error at offset %d: %s", e.Offset, e.Msg)
}

func parseErrf(offset int, format string, v ...interface{}) error {
	return &ParseError{Offset: offset, Msg: fmt.Sprintf(format, v...)}
}

// token is either one of the delimiter runes ( ) , : ; or a text chunk
// between two delimiters. Text chunks may be empty; an empty chunk in label
// position is what triggers placeholder naming.
type token struct {
	text  string
	delim bool
	off   int
}

// tokenize splits the input on the five Newick delimiters while retaining
// the delimiters themselves as tokens. Exactly one (possibly empty) text
// token is emitted between consecutive delimiters; surrounding whitespace is
// stripped from text tokens so multi-line input parses cleanly.
func tokenize(text string) []token {
	var toks []token
	start := 0
	for i, r := range text {
		switch r {
		case '(', ')', ',', ':', ';':
			toks = append(toks, token{text: strings.TrimSpace(text[start:i]), off: start})
			toks = append(toks, token{text: string(r), delim: true, off: i})
			start = i + 1
		}
	}
	toks = append(toks, token{text: strings.TrimSpace(text[start:]), off: start})
	return toks
}

// parser holds per-parse state. The placeholder counter deliberately lives
// here rather than at package level so concurrent parses never share names.
type parser struct {
	nameSeq int
}

// placeholder returns a synthesized label for an unnamed node, unique within
// one parse.
func (p *parser) placeholder() string {
	name := fmt.Sprintf("Node_%d", p.nameSeq)
	p.nameSeq++
	return name
}

// Parse converts a single Newick tree description into its root node.
//
// The parser is an explicit stack machine rather than a recursive descent:
// a cursor points at the node currently being decorated, and a stack holds
// the ancestors whose descendant lists are still open. "(" opens a child and
// pushes the cursor, "," starts a sibling under the stack top, ")" pops the
// stack back to the enclosing node, ":" marks the next token as a branch
// length, and ";" terminates the tree. The stack discipline makes the result
// acyclic by construction and keeps deeply nested input off the call stack.
//
// Unnamed nodes receive synthesized "Node_<n>" labels. Any grammar violation
// returns a *ParseError; a partial tree is never returned.
func Parse(text string) (*Node, error) {
	var (
		p          parser
		root       = &Node{}
		current    = root
		stack      []*Node
		prev       string // preceding delimiter, "" at start of input
		terminated bool
	)

	for _, tk := range tokenize(text) {
		if terminated {
			if tk.delim || tk.text != "" {
				return nil, parseErrf(tk.off, "unexpected content after ';'")
			}
			continue
		}

		if tk.delim {
			switch tk.text {
			case "(":
				child := &Node{}
				current.Children = append(current.Children, child)
				stack = append(stack, current)
				current = child
			case ",":
				if len(stack) == 0 {
					return nil, parseErrf(tk.off, "',' outside any descendant list")
				}
				sibling := &Node{}
				top := stack[len(stack)-1]
				top.Children = append(top.Children, sibling)
				current = sibling
			case ")":
				if len(stack) == 0 {
					return nil, parseErrf(tk.off, "unbalanced ')'")
				}
				current = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			case ":":
				// Marker only. The following text token carries the length.
			case ";":
				if len(stack) != 0 {
					return nil, parseErrf(tk.off, "unbalanced '(': %d descendant lists still open", len(stack))
				}
				terminated = true
			}
			prev = tk.text
			continue
		}

		switch prev {
		case ":":
			if tk.text == "" {
				return nil, parseErrf(tk.off, "expected branch length after ':'")
			}
			length, err := strconv.ParseFloat(tk.text, 64)
			if err != nil {
				return nil, parseErrf(tk.off, "invalid branch length %q", tk.text)
			}
			if length < 0 {
				return nil, parseErrf(tk.off, "negative branch length %q", tk.text)
			}
			current.Length = &length
		case "(", ")", ",":
			if tk.text == "" {
				current.Name = p.placeholder()
			} else {
				current.Name = tk.text
			}
		case "":
			// Start of input: a bare label denotes a single-leaf tree.
			// An empty chunk here is just leading whitespace.
			if tk.text != "" {
				current.Name = tk.text
			}
		}
	}

	if !terminated {
		return nil, parseErrf(len(text), "unexpected end of input: missing ';'")
	}
	return root, nil
}
