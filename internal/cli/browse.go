package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pkm/internal/tui"
)

type BrowseCmd struct{}

func (cmd *BrowseCmd) Run(c *Context) error {
	ctx := context.Background()

	store, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	p := tea.NewProgram(tui.NewModel(ctx, store), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
