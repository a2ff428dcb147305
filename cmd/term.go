package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/aurora"
	"golang.org/x/term"
)

// Terminal streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// terminal returns the file descriptor of v if it is a terminal.
func terminal(v any) (int, bool) {
	f, ok := v.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	return int(f.Fd()), true
}

// renderMarkdown formats md for a terminal stdout, it is kept as is otherwise.
func renderMarkdown(md string) string {
	fd, ok := terminal(stdout)
	if !ok {
		return md
	}
	width := 100
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = w
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func printMarkdown(md string) { fmt.Fprint(stdout, renderMarkdown(md)) }

// lines is shared by every prompt so that buffered input is not lost
// between two questions.
var lines *bufio.Reader

func readLine() (string, error) {
	if lines == nil {
		lines = bufio.NewReader(stdin)
	}
	s, err := lines.ReadString('\n')
	if err == io.EOF && s != "" {
		err = nil
	}
	return strings.TrimSpace(s), err
}

// confirm asks question on stderr and waits for a yes on stdin.
var confirm aurora.Confirmer = aurora.ConfirmFunc(func(question string) bool {
	fmt.Fprintf(stderr, "%s [y/N] ", question)
	answer, err := readLine()
	if err != nil {
		fmt.Fprintln(stderr)
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "是":
		return true
	default:
		return false
	}
})

// readPIN asks for the booking PIN, without echo on a terminal.
func readPIN() (string, error) {
	fmt.Fprint(stderr, "PIN: ")
	if fd, ok := terminal(stdin); ok {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(stderr)
		if err != nil {
			return "", fmt.Errorf("cannot read PIN: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	pin, err := readLine()
	if err != nil {
		return "", fmt.Errorf("cannot read PIN: %w", err)
	}
	return pin, nil
}
