package extractor

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/routelens/routelens/pkg/types"
)

// httpVerbs maps recognized member-call names to HTTP methods.
var httpVerbs = map[string]string{
	"get":     types.MethodGet,
	"post":    types.MethodPost,
	"put":     types.MethodPut,
	"patch":   types.MethodPatch,
	"delete":  types.MethodDelete,
	"head":    types.MethodHead,
	"options": types.MethodOptions,
	"all":     types.MethodAll,
}

// Receivers that are accepted even when the path literal does not start
// with "/". Calls on other receivers (e.g. map.get("key")) only count when
// the first argument looks like a URL path.
var routerReceivers = map[string]bool{
	"app":     true,
	"router":  true,
	"server":  true,
	"api":     true,
	"routes":  true,
	"fastify": true,
	"r":       true,
}

// Extractor turns source files into Route records via tree-sitter.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses the file and returns one Route per matching verb call.
// It never propagates a parse failure: a file that cannot be parsed yields
// an empty list and a warning diagnostic so one malformed file cannot
// abort a scan.
func (e *Extractor) Extract(ctx context.Context, content []byte, sourceFile string) (routes []types.Route, diags []types.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			routes = nil
			diags = append(diags, types.Diagnostic{
				Stage:    "extractor",
				Severity: types.SeverityWarning,
				Path:     sourceFile,
				Message:  fmt.Sprintf("parser panic recovered: %v", r),
			})
		}
	}()

	parser := sitter.NewParser()
	parser.SetLanguage(languageFor(sourceFile))

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		diags = append(diags, types.Diagnostic{
			Stage:    "extractor",
			Severity: types.SeverityWarning,
			Path:     sourceFile,
			Message:  fmt.Sprintf("parse failed: %v", err),
		})
		return nil, diags
	}
	defer tree.Close()

	visitCalls(tree.RootNode(), func(call *sitter.Node) {
		if route, ok := e.routeFromCall(call, content, sourceFile); ok {
			routes = append(routes, route)
		}
	})
	return routes, diags
}

// languageFor picks the grammar by extension. The TypeScript grammars accept
// type annotations and decorators; tsx additionally accepts JSX.
func languageFor(sourceFile string) *sitter.Language {
	lower := strings.ToLower(sourceFile)
	switch {
	case strings.HasSuffix(lower, ".tsx"):
		return tsx.GetLanguage()
	case strings.HasSuffix(lower, ".ts"):
		return typescript.GetLanguage()
	case strings.HasSuffix(lower, ".jsx"):
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// visitCalls walks every node in the tree and invokes fn on call expressions.
func visitCalls(root *sitter.Node, fn func(*sitter.Node)) {
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}
		if node.Type() == "call_expression" {
			fn(node)
		}
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, node.Child(i))
		}
	}
}

// routeFromCall matches receiver.verb(pathLiteral, ...args) calls.
func (e *Extractor) routeFromCall(call *sitter.Node, content []byte, sourceFile string) (types.Route, bool) {
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Type() != "member_expression" {
		return types.Route{}, false
	}
	object := callee.ChildByFieldName("object")
	property := callee.ChildByFieldName("property")
	if object == nil || property == nil || object.Type() != "identifier" {
		return types.Route{}, false
	}
	method, ok := httpVerbs[property.Content(content)]
	if !ok {
		return types.Route{}, false
	}

	args := call.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return types.Route{}, false
	}

	first := args.NamedChild(0)
	path, ok := pathLiteral(first, content)
	if !ok {
		return types.Route{}, false
	}

	// Guard against unrelated two-part calls like headers.get("accept"):
	// either the receiver is a conventional router name or the first
	// argument has to look like a URL path.
	receiver := object.Content(content)
	if !routerReceivers[receiver] && !strings.HasPrefix(path, "/") {
		return types.Route{}, false
	}

	route := types.Route{
		Method:     method,
		Path:       path,
		Parameters: pathParameters(path),
		SourceFile: sourceFile,
		SourceLine: int(call.StartPoint().Row) + 1,
	}

	named := int(args.NamedChildCount())
	if named > 1 {
		last := args.NamedChild(named - 1)
		applyHandler(&route, last, content)
		for i := 1; i < named-1; i++ {
			if mw := middlewareRef(args.NamedChild(i), content); mw != "" {
				route.Middleware = append(route.Middleware, mw)
			}
		}
	}

	route.LeadingComment = leadingComment(call, content)
	return route, true
}
