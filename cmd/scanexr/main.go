// Command scanexr takes a language name and a project root, runs the
// path-finding engine, and writes the resulting stacktraces to standard
// output as one JSON document. It is a thin wiring layer over the scanexr
// library — every module doing real work (seed, traverse,
// provider/solidity, pathfind) lives outside cmd/ and is independently
// testable.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viant/scanexr/config"
	"github.com/viant/scanexr/pathfind"
	"github.com/viant/scanexr/project"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "scanexr <language-name> <project-root>",
	Short:         "Backward taint-path finder",
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to the language query configuration YAML (required)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "scanexr: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	languageName, projectRoot := args[0], args[1]

	if configPath == "" {
		return fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	lang, err := cfg.Language(languageName)
	if err != nil {
		return err
	}

	binding, ok := languages[languageName]
	if !ok {
		return fmt.Errorf("language %q has no registered parser/oracle binding in this build", languageName)
	}
	parser, err := binding.parser()
	if err != nil {
		return fmt.Errorf("failed to build parser for %q: %w", languageName, err)
	}
	lspOracle, err := binding.oracle(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to build oracle for %q: %w", languageName, err)
	}

	prov, err := newProvider(languageName, parser)
	if err != nil {
		return err
	}

	if info, detectErr := project.New().Detect(projectRoot); detectErr == nil && info.RootPath != "" {
		projectRoot = info.RootPath
	}

	traces, err := pathfind.Run(context.Background(), pathfind.Request{
		ProjectRoot:   projectRoot,
		Provider:      prov,
		Oracle:        lspOracle,
		SourceQueries: lang.SourceQuerySpecs(),
		SinkQuery:     lang.SinkQuerySpec(),
	})
	if err != nil {
		return err
	}

	doc := pathfind.ToDocument(traces)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
