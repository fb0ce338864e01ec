package cli

import (
	"context"
	"fmt"
	"strings"
)

type JournalListCmd struct{}

func (cmd *JournalListCmd) Run(c *Context) error {
	ctx := context.Background()

	store, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	logs, err := store.RecentDailyLogs(ctx)
	if err != nil {
		return err
	}

	w := c.out()
	if len(logs) == 0 {
		fmt.Fprintln(w, "No journal pages found.")
		return nil
	}
	for i, l := range logs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, titleStyle.Render(l.Date))
		for _, line := range strings.Split(l.Content, "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}

type JournalSaveCmd struct {
	Date    string `arg:"" help:"Date in YYYY-MM-DD format."`
	Content string `arg:"" help:"Page content. Replaces any page saved for the date."`
}

func (cmd *JournalSaveCmd) Run(c *Context) error {
	ctx := context.Background()

	date, err := parseDate(cmd.Date, c.loc())
	if err != nil {
		return err
	}

	store, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveDailyLog(ctx, date, cmd.Content, c.now()); err != nil {
		return err
	}
	fmt.Fprintf(c.out(), "✓ Saved journal page for %s\n", date)
	return nil
}
