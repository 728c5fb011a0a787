package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// leadingComment finds a block comment directly above the route call and
// returns its @description tag when present, else its first non-tag line.
func leadingComment(call *sitter.Node, content []byte) string {
	stmt := enclosingStatement(call)
	if stmt == nil {
		return ""
	}
	prev := stmt.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	// Directly above means no blank line between comment and call.
	if int(stmt.StartPoint().Row)-int(prev.EndPoint().Row) > 1 {
		return ""
	}
	return parseComment(prev.Content(content))
}

// enclosingStatement climbs to the statement that holds the call so sibling
// comments can be inspected.
func enclosingStatement(node *sitter.Node) *sitter.Node {
	for cur := node; cur != nil; cur = cur.Parent() {
		parent := cur.Parent()
		if parent == nil {
			return nil
		}
		switch parent.Type() {
		case "program", "statement_block", "class_body":
			return cur
		}
	}
	return nil
}

// parseComment strips comment markers and scans for an @description tag
// first, falling back to the first line that is not a tag.
func parseComment(raw string) string {
	raw = strings.TrimPrefix(raw, "/*")
	raw = strings.TrimSuffix(raw, "*/")

	fallback := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimLeft(line, "*")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "@description"); ok {
			return strings.TrimSpace(rest)
		}
		if strings.HasPrefix(line, "@") {
			continue
		}
		if fallback == "" {
			fallback = line
		}
	}
	return fallback
}
