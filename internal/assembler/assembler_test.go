package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelens/routelens/internal/synthesizer"
	"github.com/routelens/routelens/pkg/types"
)

func pair(method, path string, params ...string) types.RouteAnalysis {
	route := types.Route{Method: method, Path: path}
	for _, p := range params {
		route.Parameters = append(route.Parameters, types.PathParameter{
			Name: p, In: "path", Type: "string", Required: true,
		})
	}
	return types.RouteAnalysis{
		Route:    route,
		Analysis: synthesizer.TemplateStrategy{}.Synthesize(route),
	}
}

func TestAssembleGroupsVerbsUnderPath(t *testing.T) {
	doc, diags := New(Config{}).Assemble([]types.RouteAnalysis{
		pair(types.MethodGet, "/users"),
		pair(types.MethodPost, "/users"),
		pair(types.MethodGet, "/users/:id", "id"),
	})

	assert.Empty(t, diags)
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, 3, doc.TotalRoutes)
	require.Len(t, doc.Paths, 2)

	collection := doc.Paths["/users"]
	assert.NotNil(t, collection.Get)
	assert.NotNil(t, collection.Post)
	assert.Nil(t, collection.Delete)

	single, ok := doc.Paths["/users/{id}"]
	require.True(t, ok, "path parameters should be normalized to {id}")
	require.NotNil(t, single.Get)
	require.Len(t, single.Get.Parameters, 1)
	assert.Equal(t, "id", single.Get.Parameters[0].Name)
}

func TestAssembleOperationIDs(t *testing.T) {
	doc, _ := New(Config{}).Assemble([]types.RouteAnalysis{
		pair(types.MethodGet, "/users/:id", "id"),
		pair(types.MethodPost, "/user-profiles"),
	})

	assert.Equal(t, "getUsersById", doc.Paths["/users/{id}"].Get.OperationID)
	assert.Equal(t, "postUserProfiles", doc.Paths["/user-profiles"].Post.OperationID)
}

func TestAssembleDuplicateRouteLastWins(t *testing.T) {
	first := pair(types.MethodGet, "/users")
	first.Analysis.Summary = "first"
	second := pair(types.MethodGet, "/users")
	second.Analysis.Summary = "second"

	doc, diags := New(Config{}).Assemble([]types.RouteAnalysis{first, second})

	require.Len(t, diags, 1)
	assert.Equal(t, types.SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "duplicate")
	assert.Equal(t, "second", doc.Paths["/users"].Get.Summary)
	assert.Equal(t, 2, doc.TotalRoutes)
}

func TestAssembleSkipsCatchAll(t *testing.T) {
	doc, diags := New(Config{}).Assemble([]types.RouteAnalysis{
		pair(types.MethodAll, "/admin"),
		pair(types.MethodGet, "/users"),
	})

	require.Len(t, diags, 1)
	assert.Equal(t, types.SeverityInfo, diags[0].Severity)
	assert.Equal(t, 1, doc.TotalRoutes)
	_, exists := doc.Paths["/admin"]
	assert.False(t, exists)
}

func TestAssembleSchemaDeduplication(t *testing.T) {
	doc, _ := New(Config{}).Assemble([]types.RouteAnalysis{
		pair(types.MethodGet, "/users"),
		pair(types.MethodGet, "/orders"),
		pair(types.MethodGet, "/users/:id", "id"),
	})

	// Both collection GETs produce the same array schema; they must share
	// one components entry.
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	assert.Len(t, names, 2, "array and object response schemas: %v", names)
}

func TestAssembleRequestBody(t *testing.T) {
	doc, _ := New(Config{}).Assemble([]types.RouteAnalysis{
		pair(types.MethodPost, "/users"),
		pair(types.MethodGet, "/users"),
	})

	post := doc.Paths["/users"].Post
	require.NotNil(t, post.RequestBody)
	assert.True(t, post.RequestBody.Required)
	assert.Contains(t, post.RequestBody.Content, "application/json")

	get := doc.Paths["/users"].Get
	assert.Nil(t, get.RequestBody)
}

func TestAssembleResponses(t *testing.T) {
	doc, _ := New(Config{}).Assemble([]types.RouteAnalysis{
		pair(types.MethodDelete, "/users/:id", "id"),
	})

	op := doc.Paths["/users/{id}"].Delete
	require.NotNil(t, op)
	require.Contains(t, op.Responses, "204")
	require.Contains(t, op.Responses, "404")
	require.Contains(t, op.Responses, "500")
	assert.Empty(t, op.Responses["204"].Content, "204 must carry no body")
}

func TestAssembleTagsSortedWithDescriptions(t *testing.T) {
	doc, _ := New(Config{}).Assemble([]types.RouteAnalysis{
		pair(types.MethodGet, "/zebras"),
		pair(types.MethodGet, "/users"),
		pair(types.MethodGet, "/auth"),
	})

	require.Len(t, doc.Tags, 3)
	assert.Equal(t, "auth", doc.Tags[0].Name)
	assert.Equal(t, "users", doc.Tags[1].Name)
	assert.Equal(t, "zebras", doc.Tags[2].Name)
	assert.Equal(t, "User accounts and profiles", doc.Tags[1].Description)
	assert.Equal(t, "zebras operations", doc.Tags[2].Description)
}

func TestAssembleDocumentMetadata(t *testing.T) {
	doc, _ := New(Config{
		Title:     "Shop API",
		Version:   "2.1.0",
		ServerURL: "https://api.example.com",
	}).Assemble(nil)

	assert.Equal(t, "Shop API", doc.Info.Title)
	assert.Equal(t, "2.1.0", doc.Info.Version)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "https://api.example.com", doc.Servers[0].URL)
	assert.Zero(t, doc.TotalRoutes)
}

func TestAssembleStats(t *testing.T) {
	doc, _ := New(Config{}).Assemble([]types.RouteAnalysis{
		pair(types.MethodGet, "/users"),
		pair(types.MethodGet, "/orders"),
		pair(types.MethodPost, "/users"),
	})

	assert.Equal(t, 2, doc.HTTPMethodCounts[types.MethodGet])
	assert.Equal(t, 1, doc.HTTPMethodCounts[types.MethodPost])
	assert.Equal(t, 2, doc.CategoryCounts["users"])
	assert.Equal(t, 1, doc.CategoryCounts["orders"])
}

func TestNormalizePath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/users/:id", "/users/{id}"},
		{"/users/:userId/orders/:orderId", "/users/{userId}/orders/{orderId}"},
		{"/plain", "/plain"},
		{"/", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePath(tt.in))
	}
}

func TestEncodeFormats(t *testing.T) {
	doc, _ := New(Config{Title: "T"}).Assemble([]types.RouteAnalysis{
		pair(types.MethodGet, "/users"),
	})

	jsonOut, err := doc.Encode(FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(jsonOut), `"openapi": "3.0.3"`)

	yamlOut, err := doc.Encode(FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(yamlOut), "openapi: 3.0.3")

	_, err = doc.Encode("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEncodeDeterministic(t *testing.T) {
	pairs := []types.RouteAnalysis{
		pair(types.MethodGet, "/users"),
		pair(types.MethodPost, "/users"),
		pair(types.MethodGet, "/orders/:id", "id"),
	}

	doc1, _ := New(Config{}).Assemble(pairs)
	doc2, _ := New(Config{}).Assemble(pairs)

	out1, err := doc1.Encode(FormatJSON)
	require.NoError(t, err)
	out2, err := doc2.Encode(FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, string(out1), string(out2))
}
