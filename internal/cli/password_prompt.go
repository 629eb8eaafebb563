package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// passwordPrompt reads secrets line by line from stdin. Echo is suppressed when stdin is a
// terminal; piped input is read as-is.
type passwordPrompt struct {
	stdin  *os.File
	reader *bufio.Reader
	out    io.Writer
}

func newPasswordPrompt(stdin *os.File, out io.Writer) (*passwordPrompt, error) {
	if stdin == nil {
		return nil, errors.New("stdin unavailable")
	}
	return &passwordPrompt{stdin: stdin, reader: bufio.NewReader(stdin), out: out}, nil
}

func (prompt *passwordPrompt) ask(label string) (string, error) {
	fmt.Fprint(prompt.out, label)
	if restore, err := disableEcho(prompt.stdin); err == nil {
		defer func() {
			restore()
			fmt.Fprintln(prompt.out)
		}()
	}

	line, err := prompt.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", errors.New("no password entered")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// newPasswordTwice asks for the password and its confirmation.
func (prompt *passwordPrompt) newPasswordTwice() (string, error) {
	first, err := prompt.ask("New password: ")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	second, err := prompt.ask("Repeat password: ")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if first != second {
		return "", errors.New("passwords do not match")
	}
	return first, nil
}
