package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/pkm/internal/storage"
)

type HabitListCmd struct{}

func (cmd *HabitListCmd) Run(c *Context) error {
	ctx := context.Background()

	store, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.HabitSummaries(ctx, c.now())
	if err != nil {
		return err
	}

	w := c.out()
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No habits found.")
		return nil
	}

	fmt.Fprintln(w, titleStyle.Render("Habits (last 7 days)"))
	for _, h := range summaries {
		fmt.Fprintf(w, "  %-20s %-7s %d\n", h.Name, h.Frequency, h.Count)
		if h.Notes != "" {
			fmt.Fprintf(w, "    %s\n", h.Notes)
		}
	}
	return nil
}

type HabitLogCmd struct {
	Name  string `arg:"" help:"Habit to log. New habits are added to the catalog."`
	Notes string `short:"n" help:"Notes for this completion."`
}

func (cmd *HabitLogCmd) Run(c *Context) error {
	ctx := context.Background()

	store, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.LogHabit(ctx, cmd.Name, cmd.Notes, c.now()); err != nil {
		return err
	}
	fmt.Fprintf(c.out(), "✓ Logged habit: %s\n", cmd.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit to delete together with its logs."`
	Yes  bool   `short:"y" help:"Delete without asking."`
}

func (cmd *HabitDeleteCmd) Run(c *Context) error {
	ctx := context.Background()

	store, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if !cmd.Yes {
		ok, err := confirm("Delete habit "+cmd.Name+"?", "All logs of this habit are deleted with it.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.out(), "Delete cancelled.")
			return nil
		}
	}

	if err := store.DeleteHabit(ctx, cmd.Name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("habit not found: %s", cmd.Name)
		}
		return err
	}
	fmt.Fprintf(c.out(), "✓ Deleted habit: %s\n", cmd.Name)
	return nil
}
