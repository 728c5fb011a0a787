package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/routelens/routelens/internal/pipeline"
	"github.com/routelens/routelens/internal/server"
	"github.com/routelens/routelens/internal/synthesizer"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [path]",
	Short: "Scan a codebase and serve interactive documentation",
	Long: `Scan the given directory and serve the assembled document on a local
documentation page with a try-it-out proxy.

The scan runs once at startup; restart to pick up route changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":4000", "listen address")
	serveCmd.Flags().StringVar(&generateTitle, "title", "", "API title")
	serveCmd.Flags().StringVar(&generateServerURL, "server-url", "", "server URL for the servers block")
	serveCmd.Flags().BoolVar(&generateAI, "ai", false, "use the generative service for descriptions")
	serveCmd.Flags().StringVar(&generateModel, "model", "", "generative model name")
}

func runServe(cmd *cobra.Command, args []string) error {
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

	var synth *synthesizer.Synthesizer
	var cleanup func()
	synth, cleanup, err = buildSynthesizer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := pipeline.New(cfg, synth).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Scanned %d routes; serving documentation at http://localhost%s\n",
		result.Document.TotalRoutes, serveAddr)

	return server.New(result.Document, serveAddr).ListenAndServe(ctx)
}
