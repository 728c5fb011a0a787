package classifier

import (
	"regexp"

	"github.com/routelens/routelens/pkg/types"
)

// FrameworkSignature scores one framework. Adding a framework means
// registering a new entry here, not branching the classifier.
type FrameworkSignature struct {
	ID               string
	ImportSignatures []*regexp.Regexp
	RouteSignatures  []*regexp.Regexp
	ImportWeight     float64
	RouteWeight      float64
}

var verbAlternation = `(?:get|post|put|patch|delete|head|options|all)`

// Registry holds the recognized frameworks in scoring order. Ties favor
// the framework examined first.
var Registry = []FrameworkSignature{
	{
		ID: types.FrameworkExpress,
		ImportSignatures: []*regexp.Regexp{
			regexp.MustCompile(`require\(\s*['"]express['"]\s*\)`),
			regexp.MustCompile(`import\s+[\w{},\s*]+\s+from\s+['"]express['"]`),
			regexp.MustCompile(`express\.Router\(\)`),
		},
		RouteSignatures: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:app|router)\.` + verbAlternation + `\s*\(`),
			regexp.MustCompile(`\bapp\.use\s*\(\s*['"]/`),
		},
		ImportWeight: 0.5,
		RouteWeight:  0.15,
	},
	{
		ID: types.FrameworkFastify,
		ImportSignatures: []*regexp.Regexp{
			regexp.MustCompile(`require\(\s*['"]fastify['"]\s*\)`),
			regexp.MustCompile(`import\s+[\w{},\s*]+\s+from\s+['"]fastify['"]`),
		},
		RouteSignatures: []*regexp.Regexp{
			regexp.MustCompile(`\bfastify\.` + verbAlternation + `\s*\(`),
			regexp.MustCompile(`\bfastify\.route\s*\(`),
			regexp.MustCompile(`\.register\s*\(\s*\w+,\s*\{\s*prefix:`),
		},
		ImportWeight: 0.5,
		RouteWeight:  0.15,
	},
	{
		ID: types.FrameworkKoa,
		ImportSignatures: []*regexp.Regexp{
			regexp.MustCompile(`require\(\s*['"]koa['"]\s*\)`),
			regexp.MustCompile(`require\(\s*['"]@?koa[/-]router['"]\s*\)`),
			regexp.MustCompile(`import\s+[\w{},\s*]+\s+from\s+['"]@?koa[/-]?router?['"]`),
		},
		RouteSignatures: []*regexp.Regexp{
			regexp.MustCompile(`\brouter\.` + verbAlternation + `\s*\(`),
			regexp.MustCompile(`\bctx\.(?:body|status)\b`),
		},
		ImportWeight: 0.5,
		RouteWeight:  0.15,
	},
	{
		ID: types.FrameworkHapi,
		ImportSignatures: []*regexp.Regexp{
			regexp.MustCompile(`require\(\s*['"]@hapi/hapi['"]\s*\)`),
			regexp.MustCompile(`import\s+[\w{},\s*]+\s+from\s+['"]@hapi/hapi['"]`),
		},
		RouteSignatures: []*regexp.Regexp{
			regexp.MustCompile(`\bserver\.route\s*\(`),
			regexp.MustCompile(`method:\s*['"](?:GET|POST|PUT|PATCH|DELETE)['"]`),
		},
		ImportWeight: 0.5,
		RouteWeight:  0.2,
	},
	{
		ID: types.FrameworkNestJS,
		ImportSignatures: []*regexp.Regexp{
			regexp.MustCompile(`from\s+['"]@nestjs/common['"]`),
			regexp.MustCompile(`require\(\s*['"]@nestjs/common['"]\s*\)`),
		},
		RouteSignatures: []*regexp.Regexp{
			regexp.MustCompile(`@(?:Get|Post|Put|Patch|Delete)\s*\(`),
			regexp.MustCompile(`@Controller\s*\(`),
		},
		ImportWeight: 0.5,
		RouteWeight:  0.2,
	},
}

// FilterRegistry returns the registry restricted to the given framework ids.
// An empty list keeps every registered framework.
func FilterRegistry(ids []string) []FrameworkSignature {
	if len(ids) == 0 {
		return Registry
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]FrameworkSignature, 0, len(Registry))
	for _, sig := range Registry {
		if want[sig.ID] {
			out = append(out, sig)
		}
	}
	return out
}
