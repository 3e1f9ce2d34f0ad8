package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

// Dialog prompts on a line-oriented terminal.
type Dialog struct {
	mu        sync.Mutex
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

// NewDialog returns a Dialog reading answers from in. With assumeYes every
// confirmation is accepted without reading input.
func NewDialog(in io.Reader, out io.Writer, assumeYes bool) *Dialog {
	return &Dialog{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

func (d *Dialog) Alert(ctx context.Context, message string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := fmt.Fprintln(d.out, message)
	return err
}

func (d *Dialog) Confirm(ctx context.Context, message string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return false, err
	}

	if d.assumeYes {
		_, err := fmt.Fprintf(d.out, "%s [y/N]: y\n", message)
		return true, err
	}

	if _, err := fmt.Fprintf(d.out, "%s [y/N]: ", message); err != nil {
		return false, err
	}

	line, err := d.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "是", "确定":
		return true, nil
	default:
		return false, nil
	}
}

// Clipboard writes to the system clipboard.
type Clipboard struct{}

func (Clipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not available on this system")
	}
	return clipboard.WriteAll(text)
}
