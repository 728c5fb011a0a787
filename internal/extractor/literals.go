package extractor

import (
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/routelens/routelens/pkg/types"
)

var (
	pathParamPattern  = regexp.MustCompile(`:(\w+)`)
	interpolationOpen = "${"
)

// pathLiteral resolves the first call argument into a route path. Plain
// strings are taken verbatim; template literals keep their literal segments
// and render each interpolation as a positional :paramN placeholder so the
// path shape stays stable for grouping.
func pathLiteral(node *sitter.Node, content []byte) (string, bool) {
	if node == nil {
		return "", false
	}
	switch node.Type() {
	case "string":
		return stringContent(node, content), true
	case "template_string":
		raw := node.Content(content)
		raw = strings.TrimPrefix(raw, "`")
		raw = strings.TrimSuffix(raw, "`")
		if !strings.Contains(raw, interpolationOpen) {
			return raw, true
		}
		return renderTemplatePath(raw), true
	default:
		return "", false
	}
}

// renderTemplatePath replaces each ${...} interpolation with a positional
// :paramN placeholder. Interpolations are scanned by brace depth so nested
// object literals inside an expression stay within one placeholder.
func renderTemplatePath(raw string) string {
	var b strings.Builder
	n := 0
	i := 0
	for i < len(raw) {
		if strings.HasPrefix(raw[i:], interpolationOpen) {
			depth := 1
			j := i + len(interpolationOpen)
			for j < len(raw) && depth > 0 {
				switch raw[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				j++
			}
			n++
			fmt.Fprintf(&b, ":param%d", n)
			i = j
			continue
		}
		b.WriteByte(raw[i])
		i++
	}
	return b.String()
}

// stringContent returns the text of a string node without its quotes.
func stringContent(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "string_fragment" {
			return child.Content(content)
		}
	}
	text := node.Content(content)
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}

// pathParameters derives path parameters from :name tokens, merging
// duplicates by name.
func pathParameters(path string) []types.PathParameter {
	matches := pathParamPattern.FindAllStringSubmatch(path, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	params := make([]types.PathParameter, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		params = append(params, types.PathParameter{
			Name:     name,
			In:       "path",
			Type:     "string",
			Required: true,
		})
	}
	return params
}

// applyHandler records the last call argument as the route handler. Function
// literals carry their parameter names, async flag, and exact source span;
// identifiers are recorded as named references with no inline source.
func applyHandler(route *types.Route, node *sitter.Node, content []byte) {
	if node == nil {
		return
	}
	switch node.Type() {
	case "arrow_function", "function_expression", "function", "generator_function":
		route.HandlerParams = handlerParams(node, content)
		route.IsAsync = isAsync(node)
		route.HandlerSource = collapseBlankLines(strings.TrimSpace(node.Content(content)))
	case "identifier":
		route.HandlerName = node.Content(content)
	case "member_expression":
		// controller.method style reference
		route.HandlerName = node.Content(content)
	default:
		// Anything else (object literal, call result) is treated as
		// middleware-like and left without handler source.
	}
}

// handlerParams collects parameter names from a function literal. Arrow
// functions may use a single bare identifier instead of a parameter list.
func handlerParams(fn *sitter.Node, content []byte) []string {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		if p := fn.ChildByFieldName("parameter"); p != nil {
			return []string{p.Content(content)}
		}
		return nil
	}
	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		if name := firstIdentifier(child, content); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// firstIdentifier finds the first identifier inside a parameter node. This
// also covers TypeScript required_parameter nodes and default values.
func firstIdentifier(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	if node.Type() == "identifier" {
		return node.Content(content)
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if name := firstIdentifier(node.Child(i), content); name != "" {
			return name
		}
	}
	return ""
}

// isAsync reports whether the function literal carries the async keyword.
func isAsync(fn *sitter.Node) bool {
	for i := 0; i < int(fn.ChildCount()); i++ {
		if fn.Child(i).Type() == "async" {
			return true
		}
	}
	return false
}

// middlewareRef renders a middleware argument: bare identifiers by name,
// call expressions as name(), member accesses verbatim.
func middlewareRef(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "identifier":
		return node.Content(content)
	case "call_expression":
		if callee := node.ChildByFieldName("function"); callee != nil {
			return callee.Content(content) + "()"
		}
		return ""
	case "member_expression":
		return node.Content(content)
	default:
		return ""
	}
}

// collapseBlankLines trims trailing whitespace per line and folds runs of
// blank lines into one so captured handler source stays compact.
func collapseBlankLines(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if strings.TrimSpace(trimmed) == "" {
			if blank {
				continue
			}
			blank = true
			out = append(out, "")
			continue
		}
		blank = false
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}
