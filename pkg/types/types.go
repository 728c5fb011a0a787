package types

import "time"

// HTTP methods recognized in route declarations.
const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodHead    = "HEAD"
	MethodOptions = "OPTIONS"
	MethodAll     = "ALL"
)

// Framework identifiers produced by the classifier.
const (
	FrameworkExpress = "express"
	FrameworkFastify = "fastify"
	FrameworkKoa     = "koa"
	FrameworkHapi    = "hapi"
	FrameworkNestJS  = "nestjs"
	FrameworkUnknown = "unknown"
)

// CandidateFile is a file surviving the path filter, awaiting classification.
type CandidateFile struct {
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	Extension string `json:"extension"`
}

// Classification is the per-file framework verdict.
type Classification struct {
	Framework        string  `json:"framework,omitempty"` // framework id, "unknown", or empty
	Confidence       float64 `json:"confidence"`
	RouteOccurrences int     `json:"route_occurrences"`
	HasRoutes        bool    `json:"has_routes"`
}

// PathParameter is a parameter derived from :name tokens in a route path.
type PathParameter struct {
	Name     string `json:"name"`
	In       string `json:"in"` // always "path"
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// Route is a single endpoint declaration found in source.
type Route struct {
	Method         string          `json:"method"`
	Path           string          `json:"path"` // framework syntax, :id placeholders
	Parameters     []PathParameter `json:"parameters,omitempty"`
	Middleware     []string        `json:"middleware,omitempty"`
	HandlerName    string          `json:"handler_name,omitempty"`
	HandlerSource  string          `json:"handler_source,omitempty"`
	HandlerParams  []string        `json:"handler_params,omitempty"`
	IsAsync        bool            `json:"is_async"`
	SourceFile     string          `json:"source_file"`
	SourceLine     int             `json:"source_line,omitempty"`
	LeadingComment string          `json:"leading_comment,omitempty"`
}

// HasIDParam reports whether the route path carries a path parameter.
func (r Route) HasIDParam() bool {
	return len(r.Parameters) > 0
}

// Schema is a minimal JSON Schema fragment used in analyses and specs.
type Schema struct {
	Type       string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format     string             `json:"format,omitempty" yaml:"format,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Required   []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Example    interface{}        `json:"example,omitempty" yaml:"example,omitempty"`
	Ref        string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
}

// Parameter describes an operation parameter in an Analysis.
type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"` // path, query, header
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required"`
	Schema      *Schema `json:"schema,omitempty"`
}

// Examples holds sample request/response payloads for one route.
type Examples struct {
	Request  interface{} `json:"request,omitempty"`
	Response interface{} `json:"response,omitempty"`
}

// Analysis is the synthesized documentation payload for one Route.
// Every field is populated before the analysis leaves the synthesizer.
type Analysis struct {
	Summary        string            `json:"summary"`
	Description    string            `json:"description"`
	Tags           []string          `json:"tags"`
	Parameters     []Parameter       `json:"parameters"`
	RequestSchema  *Schema           `json:"request_schema,omitempty"`
	ResponseSchema *Schema           `json:"response_schema"`
	StatusCodes    map[string]string `json:"status_codes"`
	Examples       Examples          `json:"examples"`
	Source         string            `json:"source"` // "template" or "generative"
}

// RouteAnalysis pairs a route with its analysis for assembly.
type RouteAnalysis struct {
	Route    Route    `json:"route"`
	Analysis Analysis `json:"analysis"`
}

// Diagnostic severities.
const (
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Diagnostic is a non-fatal condition recorded by a pipeline stage.
type Diagnostic struct {
	Stage    string `json:"stage"`
	Severity string `json:"severity"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
}

// RunStats summarizes a pipeline run.
type RunStats struct {
	FilesWalked        int            `json:"files_walked"`
	FilesClassified    int            `json:"files_classified"`
	FilesWithRoutes    int            `json:"files_with_routes"`
	FilesSkipped       int            `json:"files_skipped"`
	TotalRoutes        int            `json:"total_routes"`
	FrameworksDetected []string       `json:"frameworks_detected"`
	MethodCounts       map[string]int `json:"method_counts"`
	CategoryCounts     map[string]int `json:"category_counts"`
	StartedAt          time.Time      `json:"started_at"`
	FinishedAt         time.Time      `json:"finished_at"`
}
