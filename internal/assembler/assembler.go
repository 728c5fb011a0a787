package assembler

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/routelens/routelens/internal/synthesizer"
	"github.com/routelens/routelens/pkg/types"
)

// Config carries the document metadata supplied by the caller.
type Config struct {
	Title       string
	Version     string
	Description string
	ServerURL   string
}

var pathParamToken = regexp.MustCompile(`:(\w+)`)

// Static descriptions for commonly seen resource categories; everything
// else falls back to "{category} operations".
var knownCategories = map[string]string{
	"users":    "User accounts and profiles",
	"auth":     "Authentication and session management",
	"login":    "Authentication and session management",
	"orders":   "Order management",
	"products": "Product catalog",
	"items":    "Item management",
	"posts":    "Content posts",
	"comments": "Comments and discussion",
	"files":    "File upload and retrieval",
	"uploads":  "File upload and retrieval",
	"admin":    "Administrative operations",
	"health":   "Service health and monitoring",
	"status":   "Service health and monitoring",
	"payments": "Payment processing",
	"webhooks": "Webhook management",
}

// Assembler builds the final specification document. One instance per run;
// the schema registry accumulates across AddAll.
type Assembler struct {
	cfg       Config
	schemas   map[string]*types.Schema // name -> schema
	schemaIDs map[string]string        // serialized form -> name
}

// New creates an assembler.
func New(cfg Config) *Assembler {
	if cfg.Title == "" {
		cfg.Title = "API Documentation"
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:3000"
	}
	return &Assembler{
		cfg:       cfg,
		schemas:   make(map[string]*types.Schema),
		schemaIDs: make(map[string]string),
	}
}

// Assemble groups the route/analysis pairs into a specification document.
// The result is deterministic for a given input ordering.
func (a *Assembler) Assemble(pairs []types.RouteAnalysis) (*Document, []types.Diagnostic) {
	doc := &Document{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:       a.cfg.Title,
			Description: a.cfg.Description,
			Version:     a.cfg.Version,
		},
		Servers: []Server{{URL: a.cfg.ServerURL}},
		Paths:   make(map[string]PathItem),
		Components: Components{
			Schemas: a.schemas,
		},
		HTTPMethodCounts: make(map[string]int),
		CategoryCounts:   make(map[string]int),
	}

	var diags []types.Diagnostic
	categories := make(map[string]bool)

	for _, pair := range pairs {
		route := pair.Route
		normalized := NormalizePath(route.Path)

		if route.Method == types.MethodAll {
			// app.all() has no single OpenAPI slot; the route is counted
			// but emits no operation.
			diags = append(diags, types.Diagnostic{
				Stage:    "assembler",
				Severity: types.SeverityInfo,
				Path:     fmt.Sprintf("ALL %s", normalized),
				Message:  "catch-all route has no operation slot, skipped",
			})
			continue
		}

		item := doc.Paths[normalized]
		if item.hasOperation(route.Method) {
			diags = append(diags, types.Diagnostic{
				Stage:    "assembler",
				Severity: types.SeverityWarning,
				Path:     fmt.Sprintf("%s %s", route.Method, normalized),
				Message:  "duplicate operation for path and verb, keeping the last one seen",
			})
		}

		op := a.buildOperation(route, pair.Analysis, normalized)
		if !item.setOperation(route.Method, op) {
			continue
		}
		doc.Paths[normalized] = item

		doc.TotalRoutes++
		doc.HTTPMethodCounts[route.Method]++
		category := synthesizer.CategoryToken(route.Path)
		doc.CategoryCounts[category]++
		categories[category] = true
	}

	doc.Tags = buildTags(categories)
	return doc, diags
}

// NormalizePath converts :name placeholders to {name}. Applied exactly once,
// at assembly time.
func NormalizePath(path string) string {
	return pathParamToken.ReplaceAllString(path, "{$1}")
}

func (a *Assembler) buildOperation(route types.Route, analysis types.Analysis, normalized string) *Operation {
	resource := synthesizer.Singularize(synthesizer.CategoryToken(route.Path))

	op := &Operation{
		Tags:        analysis.Tags,
		Summary:     analysis.Summary,
		Description: analysis.Description,
		OperationID: operationID(route.Method, normalized),
		Parameters:  mergeParameters(analysis, route),
		Responses:   make(map[string]Response),
	}

	if bodyVerb(route.Method) && analysis.RequestSchema != nil {
		name := a.registerSchema(analysis.RequestSchema, schemaBaseName(resource, analysis.RequestSchema)+"Request")
		op.RequestBody = &RequestBody{
			Required: true,
			Content: map[string]MediaType{
				"application/json": {
					Schema:  refSchema(name),
					Example: analysis.Examples.Request,
				},
			},
		}
	}

	responseName := ""
	if analysis.ResponseSchema != nil {
		responseName = a.registerSchema(analysis.ResponseSchema, schemaBaseName(resource, analysis.ResponseSchema)+"Response")
	}

	for code, desc := range analysis.StatusCodes {
		resp := Response{Description: desc}
		if strings.HasPrefix(code, "2") && code != "204" && responseName != "" {
			media := MediaType{Schema: refSchema(responseName)}
			if analysis.Examples.Response != nil {
				media.Example = analysis.Examples.Response
			}
			resp.Content = map[string]MediaType{"application/json": media}
		}
		op.Responses[code] = resp
	}
	return op
}

// mergeParameters unions the analysis parameters with any path parameters
// not already present by name.
func mergeParameters(analysis types.Analysis, route types.Route) []Parameter {
	var out []Parameter
	seen := make(map[string]bool)

	for _, p := range analysis.Parameters {
		out = append(out, Parameter{
			Name:        p.Name,
			In:          p.In,
			Description: p.Description,
			Required:    p.Required,
			Schema:      p.Schema,
		})
		if p.In == "path" {
			seen[p.Name] = true
		}
	}
	for _, p := range route.Parameters {
		if seen[p.Name] {
			continue
		}
		out = append(out, Parameter{
			Name:     p.Name,
			In:       "path",
			Required: true,
			Schema:   &types.Schema{Type: "string"},
		})
	}
	return out
}

// registerSchema deduplicates by structural equality: two schemas with the
// same serialized form share one components entry, whatever routes they
// came from.
func (a *Assembler) registerSchema(schema *types.Schema, preferred string) string {
	serialized, err := json.Marshal(schema)
	if err != nil {
		return ""
	}
	key := string(serialized)
	if name, ok := a.schemaIDs[key]; ok {
		return name
	}

	name := preferred
	for i := 2; ; i++ {
		if _, taken := a.schemas[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s%d", preferred, i)
	}
	a.schemas[name] = schema
	a.schemaIDs[key] = name
	return name
}

func refSchema(name string) *types.Schema {
	return &types.Schema{Ref: "#/components/schemas/" + name}
}

func schemaBaseName(resource string, schema *types.Schema) string {
	base := capitalize(resource)
	if schema != nil && schema.Type == "array" {
		return base + "List"
	}
	return base
}

func bodyVerb(method string) bool {
	switch method {
	case types.MethodPost, types.MethodPut, types.MethodPatch:
		return true
	}
	return false
}

// operationID renders a camelCase id like getUsersById.
func operationID(method, normalized string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, seg := range strings.Split(strings.Trim(normalized, "/"), "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") {
			name := strings.Trim(seg, "{}")
			b.WriteString("By")
			b.WriteString(capitalize(name))
			continue
		}
		b.WriteString(capitalize(sanitizeSegment(seg)))
	}
	return b.String()
}

func sanitizeSegment(seg string) string {
	var b strings.Builder
	upperNext := false
	for _, r := range seg {
		if r == '-' || r == '_' || r == '.' {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteString(strings.ToUpper(string(r)))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func buildTags(categories map[string]bool) []Tag {
	names := make([]string, 0, len(categories))
	for c := range categories {
		names = append(names, c)
	}
	sort.Strings(names)

	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		desc, ok := knownCategories[name]
		if !ok {
			desc = fmt.Sprintf("%s operations", name)
		}
		tags = append(tags, Tag{Name: name, Description: desc})
	}
	return tags
}
