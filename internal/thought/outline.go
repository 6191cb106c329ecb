package thought

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// outlineIndent is the indentation of one nesting level.
const outlineIndent = "  "

// ParseOutline reads an indented outline, one thought per line, two
// spaces per level. Blank lines are skipped.
func ParseOutline(r io.Reader, opts ...Option) (*Tree, error) {
	t := New(opts...)
	stack := []ID{Root}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		depth := 0
		for strings.HasPrefix(line, outlineIndent) {
			line = line[len(outlineIndent):]
			depth++
		}
		value := strings.TrimPrefix(line, "- ")
		if line == "-" {
			value = ""
		}
		if depth > len(stack)-1 {
			return nil, fmt.Errorf("line %d: indented %d levels under depth %d", lineNo, depth, len(stack)-1)
		}
		stack = stack[:depth+1]

		id, err := t.Add(stack[depth], -1, value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		stack = append(stack, id)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Outline renders the tree in the format read by ParseOutline.
func (t *Tree) Outline() string {
	var b strings.Builder
	t.Walk(func(p Path, th Thought) bool {
		b.WriteString(strings.Repeat(outlineIndent, p.Depth()-1))
		b.WriteString("- ")
		b.WriteString(th.Value)
		b.WriteByte('\n')
		return true
	})
	return b.String()
}
