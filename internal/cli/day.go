package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/pkm/internal/constants"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date in YYYY-MM-DD format. Defaults to today."`
}

func (cmd *DayCmd) Run(c *Context) error {
	ctx := context.Background()

	date := c.today()
	if cmd.Date != "" {
		var err error
		if date, err = parseDate(cmd.Date, c.loc()); err != nil {
			return err
		}
	}

	store, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	points, err := store.DailyData(ctx, date)
	if err != nil {
		return err
	}

	w := c.out()
	if len(points) == 0 {
		fmt.Fprintf(w, "No data recorded for %s.\n", date)
		return nil
	}

	fmt.Fprintln(w, titleStyle.Render(date))
	for _, p := range points {
		fmt.Fprintf(w, "  %s  %-9s  mood %2d  energy %2d\n", p.Timestamp.Format(constants.TimeFormat), p.Source, p.Mood, p.Energy)
	}
	return nil
}
