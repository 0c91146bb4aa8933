package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/flowsmith/flowsmith"
	"github.com/flowsmith/flowsmith/internal/presentation/graph"
	"github.com/flowsmith/flowsmith/internal/presentation/tui"
	"github.com/flowsmith/flowsmith/pkg/dsl"
	"github.com/flowsmith/flowsmith/pkg/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate [request]",
	Short: "Generate a workflow document from a plain-language request",
	Long: `Turns a plain-language automation request into a validated workflow
document. When the request is ambiguous and stdin is a terminal, missing
details are collected interactively; otherwise the open questions are
printed and the command exits non-zero.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().String("pattern", "", "Force a structural pattern (see 'flowsmith patterns')")
	generateCmd.Flags().String("complexity", "", "Force complexity: simple, moderate or complex")
	generateCmd.Flags().StringToString("answer", nil, "Clarification answers as id=value pairs")
	generateCmd.Flags().String("format", "yaml", "Output format: yaml or json")
	generateCmd.Flags().StringP("output", "o", "", "Write the document to a file instead of stdout")
	generateCmd.Flags().Bool("mermaid", false, "Print a Mermaid diagram of the generated graph")
	generateCmd.Flags().Bool("report", false, "Print the quality report after generation")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	logger := buildLogger(cmd)
	engine := buildEngine(cmd, logger)

	req := pipeline.Request{
		UserInput:   strings.Join(args, " "),
		Preferences: map[string]any{},
	}
	if answers, _ := cmd.Flags().GetStringToString("answer"); len(answers) > 0 {
		req.ClarificationAnswers = answers
	}
	if v, _ := cmd.Flags().GetString("pattern"); v != "" {
		req.Preferences["pattern"] = v
	}
	if v, _ := cmd.Flags().GetString("complexity"); v != "" {
		req.Preferences["complexity"] = v
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	var result flowsmith.RunResult
	var err error
	if interactive {
		tui.PrintBanner()
		runner := flowsmith.NewRunner(engine)
		runner.Renderer = tui.NewRenderer()
		result, err = runner.Run(cmd.Context(), req)
	} else {
		result, err = engine.Generate(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	if result.Clarification != nil {
		fmt.Fprintln(os.Stderr, "The request needs clarification. Re-run with --answer id=value for:")
		for _, q := range result.Clarification.Questions {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", q.ID, q.Question)
		}
		return fmt.Errorf("clarification required (run %s)", result.RunID)
	}

	return writeOutputs(cmd, result)
}

func writeOutputs(cmd *cobra.Command, result flowsmith.RunResult) error {
	format, _ := cmd.Flags().GetString("format")

	var out []byte
	var err error
	switch format {
	case "yaml":
		out, err = dsl.MarshalYAML(*result.Document)
	case "json":
		out, err = dsl.MarshalJSON(*result.Document)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Workflow written to %s (score %d, grade %s)\n",
			path, result.Assessment.OverallScore, result.Assessment.Grade)
	} else {
		fmt.Print(string(out))
	}

	if mermaid, _ := cmd.Flags().GetBool("mermaid"); mermaid && result.Graph != nil {
		fmt.Println()
		fmt.Println(graph.Mermaid(*result.Graph))
	}
	if report, _ := cmd.Flags().GetBool("report"); report && result.Assessment != nil {
		rendered := tui.QualityReport(*result.Assessment)
		if render := tui.NewRenderer(); render != nil {
			if pretty, err := render(rendered); err == nil {
				rendered = pretty
			}
		}
		fmt.Println(rendered)
	}
	return nil
}
