package synthesizer

import (
	"fmt"
	"strings"

	"github.com/routelens/routelens/pkg/types"
)

const maxHandlerPromptBytes = 4000

// buildPrompt renders the structured analysis request for one route. The
// model is constrained to answer with a single JSON object matching the
// Analysis shape.
func buildPrompt(route types.Route) string {
	var b strings.Builder

	b.WriteString("You are an API documentation generator. Analyze this HTTP endpoint and respond with a single JSON object, no prose.\n\n")
	fmt.Fprintf(&b, "Method: %s\nPath: %s\n", route.Method, route.Path)
	if len(route.Middleware) > 0 {
		fmt.Fprintf(&b, "Middleware: %s\n", strings.Join(route.Middleware, ", "))
	}
	if route.LeadingComment != "" {
		fmt.Fprintf(&b, "Developer comment: %s\n", route.LeadingComment)
	}
	if route.HandlerSource != "" {
		src := route.HandlerSource
		if len(src) > maxHandlerPromptBytes {
			src = src[:maxHandlerPromptBytes]
		}
		fmt.Fprintf(&b, "\nHandler source:\n```\n%s\n```\n", src)
	} else if route.HandlerName != "" {
		fmt.Fprintf(&b, "Handler: %s (defined elsewhere)\n", route.HandlerName)
	}

	b.WriteString(`
Respond with exactly this JSON shape:
{
  "summary": "short imperative summary",
  "description": "one or two sentences",
  "tags": ["category"],
  "parameters": [{"name": "", "in": "path|query", "description": "", "required": true, "schema": {"type": "string"}}],
  "requestSchema": {"type": "object", "properties": {}} or null,
  "responseSchema": {"type": "object", "properties": {}},
  "statusCodes": {"200": "description"},
  "examples": {"request": {}, "response": {}}
}
`)
	return b.String()
}
