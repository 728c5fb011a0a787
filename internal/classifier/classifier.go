package classifier

import (
	"regexp"

	"github.com/routelens/routelens/pkg/types"
)

// Scoring constants. Route-signature repetitions stop counting after three
// occurrences so one long route file cannot drown out an import match.
const (
	maxRouteRepetitions = 3
	genericBonus        = 0.05
	minConfidence       = 0.3
	genericThreshold    = 2
)

// Test-framework idioms. A file matching two or more of these independent
// indicators is treated as a test file regardless of route patterns.
var testIndicators = []*regexp.Regexp{
	regexp.MustCompile(`\bdescribe\s*\(\s*['"` + "`" + `]`),
	regexp.MustCompile(`\b(?:it|test)\s*\(\s*['"` + "`" + `]`),
	regexp.MustCompile(`\bexpect\s*\(`),
	regexp.MustCompile(`\b(?:beforeEach|afterEach|beforeAll|afterAll)\s*\(`),
	regexp.MustCompile(`\bjest\.(?:mock|fn|spyOn)\s*\(`),
	regexp.MustCompile(`\bsinon\.(?:stub|spy|mock)\s*\(`),
	regexp.MustCompile(`require\(\s*['"](?:chai|supertest|mocha)['"]\s*\)`),
}

// Config-file idioms: manifest-shaped literals and build tool keyword clusters.
var configIndicators = []*regexp.Regexp{
	regexp.MustCompile(`"(?:name|version|scripts|dependencies)"\s*:\s*`),
	regexp.MustCompile(`module\.exports\s*=\s*\{\s*(?:entry|output|plugins|module|resolve)\b`),
	regexp.MustCompile(`\bdefineConfig\s*\(`),
	regexp.MustCompile(`\bcompilerOptions\b`),
}

// Generic API-shape indicators for the framework-agnostic fallback tier.
var genericIndicators = []*regexp.Regexp{
	regexp.MustCompile(`['"` + "`" + `]/api/`),
	regexp.MustCompile(`['"` + "`" + `]/v\d+/`),
	regexp.MustCompile(`\bres\.(?:json|send|status)\s*\(`),
	regexp.MustCompile(`\breply\.(?:send|code)\s*\(`),
	regexp.MustCompile(`\b\w+\.` + verbAlternation + `\s*\(\s*['"` + "`" + `]/`),
}

var routeCallPattern = regexp.MustCompile(`\b\w+\.` + verbAlternation + `\s*\(\s*['"` + "`" + `]`)

// Classifier scores file content against the framework registry.
type Classifier struct {
	registry []FrameworkSignature
}

// New builds a classifier restricted to the given framework ids (empty
// means all). The caller reads the file; oversized files never get this
// far because the path filter rejects them.
func New(frameworks []string) *Classifier {
	return &Classifier{registry: FilterRegistry(frameworks)}
}

// ClassifyContent scores raw content and produces the framework verdict.
func (c *Classifier) ClassifyContent(content []byte) types.Classification {
	text := string(content)

	if looksLikeTest(text) || looksLikeConfig(text) {
		return types.Classification{}
	}

	occurrences := len(routeCallPattern.FindAllStringIndex(text, -1))

	best := types.Classification{RouteOccurrences: occurrences}
	for _, sig := range c.registry {
		score := scoreFramework(sig, text)
		if score > best.Confidence {
			best = types.Classification{
				Framework:        sig.ID,
				Confidence:       score,
				RouteOccurrences: occurrences,
				HasRoutes:        occurrences > 0 || score >= minConfidence,
			}
		}
	}
	if best.Confidence >= minConfidence {
		return best
	}

	// Framework-agnostic fallback: files in the wild mix idioms, so an
	// exact framework match is not reliable from text alone.
	generic := 0
	for _, re := range genericIndicators {
		generic += len(re.FindAllStringIndex(text, -1))
	}
	if generic > genericThreshold {
		conf := 0.1 * float64(generic)
		if conf > 0.5 {
			conf = 0.5
		}
		return types.Classification{
			Framework:        types.FrameworkUnknown,
			Confidence:       conf,
			RouteOccurrences: occurrences,
			HasRoutes:        true,
		}
	}

	return types.Classification{RouteOccurrences: occurrences}
}

func scoreFramework(sig FrameworkSignature, text string) float64 {
	score := 0.0

	for _, re := range sig.ImportSignatures {
		if re.MatchString(text) {
			score += sig.ImportWeight
			break
		}
	}

	for _, re := range sig.RouteSignatures {
		n := len(re.FindAllStringIndex(text, -1))
		if n > maxRouteRepetitions {
			n = maxRouteRepetitions
		}
		score += float64(n) * sig.RouteWeight
	}

	for _, re := range genericIndicators {
		if re.MatchString(text) {
			score += genericBonus
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func looksLikeTest(text string) bool {
	hits := 0
	for _, re := range testIndicators {
		if re.MatchString(text) {
			hits++
			if hits >= 2 {
				return true
			}
		}
	}
	return false
}

func looksLikeConfig(text string) bool {
	for _, re := range configIndicators {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
