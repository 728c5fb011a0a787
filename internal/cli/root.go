package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "routelens",
	Short: "Generate OpenAPI documentation from route definitions",
	Long: `RouteLens scans a JavaScript or TypeScript codebase for HTTP route
definitions, extracts each route's method, path, parameters, and handler,
and assembles an OpenAPI 3.0 document describing the API.

Descriptions come from deterministic templates by default. With --ai the
tool asks a generative service for richer summaries and schemas, falling
back to the templates whenever the service is unavailable.

Quick Start:
  routelens generate ./my-app              Scan and write openapi.json
  routelens generate ./my-app --ai         Same, with AI-written descriptions
  routelens serve ./my-app                 Scan and serve a documentation page`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// A .env beside the binary may carry GEMINI_API_KEY; absence is fine.
	_ = godotenv.Load()

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	// versionCmd is registered in version.go
}
