package assembler

import (
	"github.com/routelens/routelens/pkg/types"
)

// OpenAPI document model. Only the subset this tool emits is modeled.

type Document struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Servers    []Server            `json:"servers" yaml:"servers"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`
	Tags       []Tag               `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Non-standard summary extensions.
	TotalRoutes        int            `json:"totalRoutes" yaml:"totalRoutes"`
	FrameworksDetected []string       `json:"frameworksDetected,omitempty" yaml:"frameworksDetected,omitempty"`
	HTTPMethodCounts   map[string]int `json:"httpMethodCounts,omitempty" yaml:"httpMethodCounts,omitempty"`
	CategoryCounts     map[string]int `json:"categoryCounts,omitempty" yaml:"categoryCounts,omitempty"`
}

type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version" yaml:"version"`
}

type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type PathItem struct {
	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
}

type Operation struct {
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string              `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

type Parameter struct {
	Name        string        `json:"name" yaml:"name"`
	In          string        `json:"in" yaml:"in"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      *types.Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

type RequestBody struct {
	Required bool                 `json:"required,omitempty" yaml:"required,omitempty"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type MediaType struct {
	Schema  *types.Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example interface{}   `json:"example,omitempty" yaml:"example,omitempty"`
}

type Components struct {
	Schemas map[string]*types.Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// setOperation places an operation on the path item slot for its verb.
// Duplicate (path, verb) pairs overwrite: last processed wins.
func (p *PathItem) setOperation(method string, op *Operation) bool {
	switch method {
	case types.MethodGet:
		p.Get = op
	case types.MethodPost:
		p.Post = op
	case types.MethodPut:
		p.Put = op
	case types.MethodPatch:
		p.Patch = op
	case types.MethodDelete:
		p.Delete = op
	case types.MethodHead:
		p.Head = op
	case types.MethodOptions:
		p.Options = op
	default:
		return false
	}
	return true
}

// hasOperation reports whether the verb slot is already occupied.
func (p *PathItem) hasOperation(method string) bool {
	switch method {
	case types.MethodGet:
		return p.Get != nil
	case types.MethodPost:
		return p.Post != nil
	case types.MethodPut:
		return p.Put != nil
	case types.MethodPatch:
		return p.Patch != nil
	case types.MethodDelete:
		return p.Delete != nil
	case types.MethodHead:
		return p.Head != nil
	case types.MethodOptions:
		return p.Options != nil
	default:
		return false
	}
}
