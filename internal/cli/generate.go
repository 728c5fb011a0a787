package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/routelens/routelens/internal/cache"
	"github.com/routelens/routelens/internal/config"
	"github.com/routelens/routelens/internal/llmclient"
	"github.com/routelens/routelens/internal/pipeline"
	"github.com/routelens/routelens/internal/synthesizer"
	"github.com/routelens/routelens/pkg/types"
)

var (
	generateOutput     string
	generateFormat     string
	generateTitle      string
	generateAPIVersion string
	generateServerURL  string
	generateConfigPath string
	generateFrameworks []string
	generateMaxFiles   int
	generateAI         bool
	generateModel      string
	generateCachePath  string
	generateNoCache    bool
)

// Cached analyses older than this are dropped when the cache opens.
const cacheMaxAge = 30 * 24 * time.Hour

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Scan a codebase and write an OpenAPI document",
	Long: `Scan the given directory (default: current directory) for route
definitions and write the assembled OpenAPI document.

Examples:
  routelens generate ./my-app
  routelens generate ./my-app -o docs/openapi.yaml -f yaml
  routelens generate ./my-app --ai --model gemini-2.0-flash`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "openapi.json", "output file path")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "json", "output format (json or yaml)")
	generateCmd.Flags().StringVar(&generateTitle, "title", "", "API title")
	generateCmd.Flags().StringVar(&generateAPIVersion, "api-version", "", "API version string")
	generateCmd.Flags().StringVar(&generateServerURL, "server-url", "", "server URL for the servers block")
	generateCmd.Flags().StringVarP(&generateConfigPath, "config", "c", "", "JSON config file")
	generateCmd.Flags().StringSliceVar(&generateFrameworks, "frameworks", nil, "restrict detection to these frameworks")
	generateCmd.Flags().IntVar(&generateMaxFiles, "max-files", 0, "cap on files scanned (0 = default)")
	generateCmd.Flags().BoolVar(&generateAI, "ai", false, "use the generative service for descriptions")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "generative model name")
	generateCmd.Flags().StringVar(&generateCachePath, "cache", "", "analysis cache database path")
	generateCmd.Flags().BoolVar(&generateNoCache, "no-cache", false, "disable the analysis cache")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg, err := buildConfig(root)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	synth, cleanup, err := buildSynthesizer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	started := time.Now()
	result, err := pipeline.New(cfg, synth).Run(ctx)
	if err != nil {
		return err
	}

	encoded, err := result.Document.Encode(cfg.OutputFormat)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Output, encoded, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printSummary(cfg, result, time.Since(started))
	return nil
}

// buildConfig layers defaults, the optional config file, and flags.
func buildConfig(root string) (config.Config, error) {
	cfg := config.Default(root)
	if generateConfigPath != "" {
		if err := config.Load(generateConfigPath, &cfg); err != nil {
			return cfg, err
		}
	}
	if root != "." || cfg.Root == "" {
		cfg.Root = root
	}

	if generateOutput != "" {
		cfg.Output = generateOutput
	}
	if generateFormat != "" {
		cfg.OutputFormat = generateFormat
	}
	if generateTitle != "" {
		cfg.Title = generateTitle
	}
	if generateAPIVersion != "" {
		cfg.APIVersion = generateAPIVersion
	}
	if generateServerURL != "" {
		cfg.ServerURL = generateServerURL
	}
	if len(generateFrameworks) > 0 {
		cfg.Frameworks = generateFrameworks
	}
	if generateMaxFiles > 0 {
		cfg.MaxFiles = generateMaxFiles
	}
	if generateAI {
		cfg.AIEnabled = true
	}
	if generateModel != "" {
		cfg.AIModel = generateModel
	}
	if generateCachePath != "" {
		cfg.CachePath = generateCachePath
	}
	if cfg.Title == "" {
		cfg.Title = defaultTitle(cfg.Root)
	}
	return cfg, nil
}

// buildSynthesizer wires the generative client and cache when AI is on.
// The returned cleanup closes whatever was opened and is always non-nil.
func buildSynthesizer(ctx context.Context, cfg config.Config) (*synthesizer.Synthesizer, func(), error) {
	if !cfg.AIEnabled {
		return synthesizer.New(), func() {}, nil
	}

	gemini, err := llmclient.NewGeminiClient(ctx, cfg.AIModel)
	if err != nil {
		return nil, nil, fmt.Errorf("generative client: %w", err)
	}
	client := llmclient.Retry(gemini, 3, time.Second)

	opts := []synthesizer.Option{
		synthesizer.WithGenerative(synthesizer.NewGenerativeStrategy(client)),
	}

	cleanup := func() { client.Close() }
	if !generateNoCache {
		path := cfg.CachePath
		if path == "" {
			path = filepath.Join(cfg.Root, ".routelens", "cache.db")
		}
		store, err := cache.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: analysis cache unavailable: %v\n", err)
		} else {
			if err := store.Purge(cacheMaxAge); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: cache purge failed: %v\n", err)
			}
			opts = append(opts, synthesizer.WithCache(store))
			cleanup = func() {
				store.Close()
				client.Close()
			}
		}
	}
	return synthesizer.New(opts...), cleanup, nil
}

func defaultTitle(root string) string {
	base := filepath.Base(root)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "API Documentation"
	}
	return base + " API"
}

func printSummary(cfg config.Config, result *pipeline.Result, elapsed time.Duration) {
	doc := result.Document
	fmt.Printf("OpenAPI document written to %s\n\n", cfg.Output)
	fmt.Printf("  Files scanned:    %d\n", result.Stats.FilesWalked)
	fmt.Printf("  Files with routes: %d\n", result.Stats.FilesWithRoutes)
	fmt.Printf("  Routes found:     %d\n", doc.TotalRoutes)
	fmt.Printf("  Paths:            %d\n", len(doc.Paths))
	if len(doc.FrameworksDetected) > 0 {
		fmt.Printf("  Frameworks:       %s\n", strings.Join(doc.FrameworksDetected, ", "))
	}
	fmt.Printf("  Duration:         %s\n", elapsed.Round(time.Millisecond))

	if len(doc.HTTPMethodCounts) > 0 {
		methods := make([]string, 0, len(doc.HTTPMethodCounts))
		for m := range doc.HTTPMethodCounts {
			methods = append(methods, m)
		}
		sort.Strings(methods)
		fmt.Println("\n  By method:")
		for _, m := range methods {
			fmt.Printf("    %-8s %d\n", m, doc.HTTPMethodCounts[m])
		}
	}

	var warnings []types.Diagnostic
	for _, d := range result.Diagnostics {
		if d.Severity == types.SeverityWarning {
			warnings = append(warnings, d)
		}
	}
	if len(warnings) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d warning(s):\n", len(warnings))
		for _, d := range warnings {
			fmt.Fprintf(os.Stderr, "  [%s] %s: %s\n", d.Stage, d.Path, d.Message)
		}
	}
}
