package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Agent runs a chat in a terminal.
type Agent struct {
	w      io.Writer
	r      *bufio.Reader
	chat   *Chat
	render func(string) string
}

// New creates a new Agent reading questions from r and writing the answers
// to w. render formats each answer, nil prints them as is.
func New(w io.Writer, r io.Reader, chat *Chat, render func(string) string) *Agent {
	if render == nil {
		render = func(s string) string { return s }
	}
	return &Agent{
		w:      w,
		r:      bufio.NewReader(r),
		chat:   chat,
		render: render,
	}
}

const prompt = "assist> "

// Run starts the interactive REPL session for the agent. prompts are asked
// first as if the user typed them.
func (a *Agent) Run(ctx context.Context, prompts ...string) error {
	for _, m := range a.chat.Messages() {
		if m.Role == Bot {
			fmt.Fprintln(a.w, a.render(m.Text))
		}
	}
	fmt.Fprintln(a.w, "Type 'bye' to exit.")

	// REPL loop
	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
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
		if input == "bye" {
			return nil
		}
		if input == "" {
			continue
		}

		r, err := a.chat.Submit(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, a.render(r.Value))
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}
