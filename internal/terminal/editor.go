package terminal

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/bootmenu/internal/input"
)

// Editor edits loader options with a Bubble Tea text input. It satisfies
// ui.Editor.
type Editor struct {
	prompt string
	send   func(tea.Msg)
	done   <-chan struct{}
}

func (e *Editor) Edit(ctx context.Context, options string) (string, bool, error) {
	reply := make(chan editResult, 1)
	e.send(editRequest{prompt: e.prompt, options: options, reply: reply})
	select {
	case res := <-reply:
		return res.value, res.ok, nil
	case <-e.done:
		return options, false, input.ErrClosed
	case <-ctx.Done():
		return options, false, ctx.Err()
	}
}
