package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/routelens/routelens/internal/assembler"
	"github.com/routelens/routelens/internal/classifier"
	"github.com/routelens/routelens/internal/config"
	"github.com/routelens/routelens/internal/extractor"
	"github.com/routelens/routelens/internal/logging"
	"github.com/routelens/routelens/internal/pathfilter"
	"github.com/routelens/routelens/internal/synthesizer"
	"github.com/routelens/routelens/internal/walker"
	"github.com/routelens/routelens/pkg/types"
)

// Result is everything one run produces.
type Result struct {
	RunID       string
	Document    *assembler.Document
	Pairs       []types.RouteAnalysis
	Diagnostics []types.Diagnostic
	Stats       types.RunStats
}

// Pipeline wires the four discovery stages to the assembler. Stages run
// sequentially; each returns a complete result plus diagnostics, and no
// stage raises past its contract.
type Pipeline struct {
	cfg   config.Config
	synth *synthesizer.Synthesizer
	log   *slog.Logger
}

// New builds a pipeline over the validated configuration.
func New(cfg config.Config, synth *synthesizer.Synthesizer) *Pipeline {
	return &Pipeline{
		cfg:   cfg,
		synth: synth,
		log:   logging.New("pipeline"),
	}
}

// Run executes walk → classify → extract → synthesize → assemble.
// Configuration errors are the only fatal outcome; everything else is
// degraded into diagnostics on the result.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	result.Stats.StartedAt = time.Now()
	result.Stats.MethodCounts = make(map[string]int)
	result.Stats.CategoryCounts = make(map[string]int)

	filter := pathfilter.New(pathfilter.Options{
		Extensions:      p.cfg.Extensions,
		ExcludeDirs:     p.cfg.ExcludeDirs,
		ExcludePatterns: p.cfg.ExcludePatterns,
		MaxFileSize:     p.cfg.MaxFileSizeBytes,
	})

	candidates, diags := walker.New(filter, p.cfg.MaxFiles).Walk(p.cfg.Root)
	result.Diagnostics = append(result.Diagnostics, diags...)
	result.Stats.FilesWalked = len(candidates)
	p.log.Info("walk complete", "run_id", result.RunID, "candidates", len(candidates))

	cls := classifier.New(p.cfg.Frameworks)
	ext := extractor.New()

	frameworks := make(map[string]bool)
	var routes []types.Route

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		content, err := os.ReadFile(candidate.Path)
		if err != nil {
			result.Stats.FilesSkipped++
			result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
				Stage:    "classifier",
				Severity: types.SeverityWarning,
				Path:     candidate.Path,
				Message:  fmt.Sprintf("unreadable file skipped: %v", err),
			})
			continue
		}

		verdict := cls.ClassifyContent(content)
		result.Stats.FilesClassified++
		if !verdict.HasRoutes {
			result.Stats.FilesSkipped++
			continue
		}
		if verdict.Framework != "" {
			frameworks[verdict.Framework] = true
		}
		p.log.Debug("classified",
			"path", candidate.Path,
			"framework", verdict.Framework,
			"confidence", verdict.Confidence,
			"occurrences", verdict.RouteOccurrences)

		extracted, extractDiags := ext.Extract(ctx, content, candidate.Path)
		result.Diagnostics = append(result.Diagnostics, extractDiags...)
		if len(extracted) == 0 {
			result.Stats.FilesSkipped++
			continue
		}
		result.Stats.FilesWithRoutes++
		routes = append(routes, extracted...)
	}

	result.Stats.TotalRoutes = len(routes)
	for _, r := range routes {
		result.Stats.MethodCounts[r.Method]++
		result.Stats.CategoryCounts[synthesizer.CategoryToken(r.Path)]++
	}
	result.Stats.FrameworksDetected = sortedKeys(frameworks)
	p.log.Info("extraction complete", "run_id", result.RunID, "routes", len(routes))

	analyses, synthDiags := p.synth.SynthesizeAll(ctx, routes)
	result.Diagnostics = append(result.Diagnostics, synthDiags...)

	result.Pairs = make([]types.RouteAnalysis, len(routes))
	for i := range routes {
		result.Pairs[i] = types.RouteAnalysis{Route: routes[i], Analysis: analyses[i]}
	}

	doc, assembleDiags := assembler.New(assembler.Config{
		Title:       p.cfg.Title,
		Version:     p.cfg.APIVersion,
		Description: p.cfg.Description,
		ServerURL:   p.cfg.ServerURL,
	}).Assemble(result.Pairs)
	result.Diagnostics = append(result.Diagnostics, assembleDiags...)

	doc.FrameworksDetected = result.Stats.FrameworksDetected
	result.Document = doc
	result.Stats.FinishedAt = time.Now()
	p.log.Info("run complete",
		"run_id", result.RunID,
		"routes", doc.TotalRoutes,
		"paths", len(doc.Paths),
		"diagnostics", len(result.Diagnostics))
	return result, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
