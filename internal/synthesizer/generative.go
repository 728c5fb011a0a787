package synthesizer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/routelens/routelens/internal/llmclient"
	"github.com/routelens/routelens/pkg/types"
)

// GenerativeStrategy asks an external model for the analysis and layers the
// parsed result over the template baseline, so a partial or malformed
// response can never produce an incomplete Analysis.
type GenerativeStrategy struct {
	client   llmclient.Client
	fallback TemplateStrategy
}

// NewGenerativeStrategy wraps the given client. The client should already
// carry retry behavior (llmclient.Retry).
func NewGenerativeStrategy(client llmclient.Client) *GenerativeStrategy {
	return &GenerativeStrategy{client: client}
}

// Synthesize returns the refined analysis, or the template analysis with a
// diagnostic when the service fails. It never returns an error upward.
func (g *GenerativeStrategy) Synthesize(ctx context.Context, route types.Route) (types.Analysis, *types.Diagnostic) {
	base := g.fallback.Synthesize(route)

	raw, err := g.client.GenerateJSON(ctx, buildPrompt(route))
	if err != nil {
		return base, serviceDiag(route, fmt.Sprintf("generative analysis failed, using template: %v", err))
	}

	payload := extractJSON(string(raw))
	if payload == "" {
		return base, serviceDiag(route, "generative response held no JSON object, using template")
	}

	var fields map[string]json.RawMessage
	if err := parseLoose(payload, &fields); err != nil {
		return base, serviceDiag(route, fmt.Sprintf("generative response unparseable, using template: %v", err))
	}

	refined := mergeAnalysis(base, fields)
	refined.Source = "generative"
	return refined, nil
}

func serviceDiag(route types.Route, msg string) *types.Diagnostic {
	return &types.Diagnostic{
		Stage:    "synthesizer",
		Severity: types.SeverityWarning,
		Path:     fmt.Sprintf("%s %s", route.Method, route.Path),
		Message:  msg,
	}
}

// mergeAnalysis overlays successfully parsed fields onto the template
// baseline. Fields that are absent or fail to decode keep their defaults.
func mergeAnalysis(base types.Analysis, fields map[string]json.RawMessage) types.Analysis {
	out := base

	var s string
	if decodeField(fields, "summary", &s) && s != "" {
		out.Summary = s
	}
	if decodeField(fields, "description", &s) && s != "" {
		out.Description = s
	}

	var tags []string
	if decodeField(fields, "tags", &tags) && len(tags) > 0 {
		out.Tags = tags
	}

	var params []types.Parameter
	if decodeField(fields, "parameters", &params) && len(params) > 0 {
		out.Parameters = params
	}

	var req *types.Schema
	if decodeField(fields, "requestSchema", &req) && req != nil {
		out.RequestSchema = req
	}

	var resp *types.Schema
	if decodeField(fields, "responseSchema", &resp) && resp != nil {
		out.ResponseSchema = resp
	}

	codes := map[string]string{}
	if decodeField(fields, "statusCodes", &codes) && len(codes) > 0 {
		out.StatusCodes = codes
	}

	var ex types.Examples
	if decodeField(fields, "examples", &ex) {
		if ex.Request != nil {
			out.Examples.Request = ex.Request
		}
		if ex.Response != nil {
			out.Examples.Response = ex.Response
		}
	}

	// Body-less verbs never carry a request schema, whatever the model says.
	if out.RequestSchema != nil && base.RequestSchema == nil {
		out.RequestSchema = nil
	}
	if out.ResponseSchema == nil {
		out.ResponseSchema = base.ResponseSchema
	}
	return out
}

func decodeField(fields map[string]json.RawMessage, key string, out interface{}) bool {
	raw, ok := fields[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}
