// Package agent implements an interactive assistant answering questions about
// the bank stocks report, backed by Gemini.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
}

// New creates a new Agent whose facilitator dispatches questions to the experts.
//
// w receives the agent's output (e.g., os.Stdout) and r the user's input (e.g., os.Stdin).
func New(w io.Writer, r io.Reader, model string, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(model, experts...),
	}
}

// Start creates the chats of every expert and of the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return fmt.Errorf("starting expert %s: %w", e.Name, err)
		}
	}
	if err := a.Facilitator.Start(ctx, client); err != nil {
		return fmt.Errorf("starting facilitator: %w", err)
	}
	return nil
}

const prompt = "assist> "

// Run starts the interactive REPL session for the agent.
// The prompts are answered first, as if the user typed them.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to bankreport assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				fmt.Fprintln(a.w)
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case "bye":
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, text(content))
	}
}

// text concatenates the text parts of c.
func text(c *genai.Content) string {
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
