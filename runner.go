package flowsmith

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/pipeline"
)

// ContentRenderer transforms output before it is written, e.g. markdown to
// ANSI for a TUI. The identity function is used when unset.
type ContentRenderer func(string) (string, error)

// Runner drives the interactive clarification loop on provided IO. It
// keeps the Engine decoupled from terminals so frontends and tests can
// supply their own streams.
type Runner struct {
	Engine   *Engine
	Input    io.Reader
	Output   io.Writer
	Renderer ContentRenderer

	// MaxRounds caps clarification rounds before giving up. Zero means 3.
	MaxRounds int
}

// NewRunner creates a Runner bound to stdin/stdout.
func NewRunner(engine *Engine) *Runner {
	return &Runner{
		Engine: engine,
		Input:  os.Stdin,
		Output: os.Stdout,
	}
}

// Run generates a workflow, collecting clarification answers interactively
// until generation completes or the round budget is exhausted.
func (r *Runner) Run(ctx context.Context, req pipeline.Request) (RunResult, error) {
	maxRounds := r.MaxRounds
	if maxRounds == 0 {
		maxRounds = 3
	}

	result, err := r.Engine.Generate(ctx, req)
	if err != nil {
		return result, err
	}

	scanner := bufio.NewScanner(r.Input)
	for round := 0; result.Clarification != nil; round++ {
		if round >= maxRounds {
			return result, fmt.Errorf("clarification unresolved after %d rounds", maxRounds)
		}

		answers, err := r.collectAnswers(ctx, scanner, result.Clarification.Questions)
		if err != nil {
			return result, err
		}

		result, err = r.Engine.Resume(ctx, result.RunID, answers)
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

func (r *Runner) collectAnswers(ctx context.Context, scanner *bufio.Scanner, questions []domain.ClarificationQuestion) (map[string]string, error) {
	answers := make(map[string]string, len(questions))
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prompt := q.Question
		for _, followUp := range q.FollowUps {
			prompt += "\n  - " + followUp
		}
		if err := r.write(prompt + "\n> "); err != nil {
			return nil, err
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("failed to read answer: %w", err)
			}
			return nil, io.ErrUnexpectedEOF
		}
		if answer := strings.TrimSpace(scanner.Text()); answer != "" {
			answers[q.ID] = answer
		}
	}
	return answers, nil
}

func (r *Runner) write(content string) error {
	if r.Renderer != nil {
		rendered, err := r.Renderer(content)
		if err != nil {
			return fmt.Errorf("failed to render content: %w", err)
		}
		content = rendered
	}
	_, err := fmt.Fprint(r.Output, content)
	return err
}
