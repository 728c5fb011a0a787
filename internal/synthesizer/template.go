package synthesizer

import (
	"fmt"
	"strings"

	"github.com/routelens/routelens/pkg/types"
)

// TemplateStrategy derives analyses from naming and pluralization rules
// keyed on HTTP verb and path shape. It is fully deterministic and needs
// no external service.
type TemplateStrategy struct{}

// Synthesize always returns a structurally complete Analysis.
func (TemplateStrategy) Synthesize(route types.Route) types.Analysis {
	category := CategoryToken(route.Path)
	resource := Singularize(category)
	hasID := route.HasIDParam()

	summary, description := summarize(route.Method, resource, hasID)
	if route.LeadingComment != "" {
		description = route.LeadingComment
	}

	analysis := types.Analysis{
		Summary:        summary,
		Description:    description,
		Tags:           []string{category},
		Parameters:     parameterList(route, resource),
		RequestSchema:  requestSchema(route.Method),
		ResponseSchema: responseSchema(route.Method, hasID),
		StatusCodes:    statusCodes(route.Method, hasID),
		Examples:       exampleSet(route.Method, hasID),
		Source:         "template",
	}
	return analysis
}

// summarize maps (verb, hasIdParam) to a canonical summary/description pair.
func summarize(method, resource string, hasID bool) (string, string) {
	plural := pluralize(resource)
	switch method {
	case types.MethodGet:
		if hasID {
			return "Get " + resource, fmt.Sprintf("Retrieves a single %s by its identifier.", resource)
		}
		return "List " + plural, fmt.Sprintf("Returns a list of %s.", plural)
	case types.MethodPost:
		return "Create " + resource, fmt.Sprintf("Creates a new %s from the request body.", resource)
	case types.MethodPut, types.MethodPatch:
		return "Update " + resource, fmt.Sprintf("Updates an existing %s.", resource)
	case types.MethodDelete:
		return "Delete " + resource, fmt.Sprintf("Deletes the %s.", resource)
	case types.MethodHead:
		return "Check " + resource, fmt.Sprintf("Checks whether the %s exists.", resource)
	case types.MethodOptions:
		return "Describe " + resource, fmt.Sprintf("Lists the operations supported for %s.", plural)
	default:
		return "Handle " + plural, fmt.Sprintf("Handles requests for %s.", plural)
	}
}

func parameterList(route types.Route, resource string) []types.Parameter {
	params := make([]types.Parameter, 0, len(route.Parameters))
	for _, p := range route.Parameters {
		params = append(params, types.Parameter{
			Name:        p.Name,
			In:          p.In,
			Description: fmt.Sprintf("The %s of the %s", p.Name, resource),
			Required:    p.Required,
			Schema:      &types.Schema{Type: p.Type},
		})
	}
	return params
}

// requestSchema returns a minimal body schema for body-bearing verbs and
// nil for everything else.
func requestSchema(method string) *types.Schema {
	switch method {
	case types.MethodPost, types.MethodPut, types.MethodPatch:
		return &types.Schema{Type: "object"}
	default:
		return nil
	}
}

// responseSchema is an array for collection GETs and an object otherwise.
// It is never nil.
func responseSchema(method string, hasID bool) *types.Schema {
	if method == types.MethodGet && !hasID {
		return &types.Schema{
			Type:  "array",
			Items: &types.Schema{Type: "object"},
		}
	}
	return &types.Schema{Type: "object"}
}

func statusCodes(method string, hasID bool) map[string]string {
	codes := map[string]string{"500": "Internal server error"}
	switch method {
	case types.MethodGet, types.MethodHead, types.MethodOptions:
		codes["200"] = "Successful response"
	case types.MethodPost:
		codes["201"] = "Resource created"
		codes["400"] = "Invalid request body"
	case types.MethodPut, types.MethodPatch:
		codes["200"] = "Resource updated"
		codes["400"] = "Invalid request body"
	case types.MethodDelete:
		codes["204"] = "Resource deleted"
	default:
		codes["200"] = "Successful response"
	}
	if hasID {
		codes["404"] = "Resource not found"
	}
	return codes
}

func exampleSet(method string, hasID bool) types.Examples {
	ex := types.Examples{}
	switch method {
	case types.MethodPost, types.MethodPut, types.MethodPatch:
		ex.Request = map[string]interface{}{}
		ex.Response = map[string]interface{}{"id": "1"}
	case types.MethodGet:
		if hasID {
			ex.Response = map[string]interface{}{"id": "1"}
		} else {
			ex.Response = []interface{}{}
		}
	case types.MethodDelete:
		ex.Response = nil
	default:
		ex.Response = map[string]interface{}{}
	}
	return ex
}

// CategoryToken returns the last non-parameter path segment, falling back
// to "resource" for bare or parameter-only paths.
func CategoryToken(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg == "" || strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "{") {
			continue
		}
		return strings.ToLower(seg)
	}
	return "resource"
}

// pluralize and Singularize cover the common English cases; route segment
// names rarely need more.
func pluralize(word string) string {
	switch {
	case word == "":
		return word
	case strings.HasSuffix(word, "y") && !hasVowelBefore(word, "y"):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "x"),
		strings.HasSuffix(word, "z"), strings.HasSuffix(word, "ch"),
		strings.HasSuffix(word, "sh"):
		return word + "es"
	default:
		return word + "s"
	}
}

func Singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "shes"),
		strings.HasSuffix(word, "xes"), strings.HasSuffix(word, "zes"),
		strings.HasSuffix(word, "ses"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		return word[:len(word)-1]
	default:
		return word
	}
}

func hasVowelBefore(word, suffix string) bool {
	idx := len(word) - len(suffix) - 1
	if idx < 0 {
		return false
	}
	return strings.ContainsRune("aeiou", rune(word[idx]))
}
