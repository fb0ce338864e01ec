package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/models"
)

type WorkHoursCmd struct {
	Timeframe string `arg:"" optional:"" help:"Window to summarize: day, week, month or year." enum:"day,week,month,year" default:"week"`
}

func (cmd *WorkHoursCmd) Run(c *Context) error {
	ctx := context.Background()

	tf, err := models.ParseTimeframe(cmd.Timeframe)
	if err != nil {
		return err
	}

	store, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := store.WorkHours(ctx, tf, c.now())
	if err != nil {
		return err
	}

	w := c.out()
	title := fmt.Sprintf("Work hours (%s)", tf)
	if report.Sample {
		title += " - no work logged, showing sample distribution"
	}
	fmt.Fprintln(w, titleStyle.Render(title))

	var total float64
	for _, cat := range report.Categories {
		writeRow(w, cat.Category, fmt.Sprintf("%.1fh", cat.Hours))
		total += cat.Hours
	}
	writeRow(w, "total", fmt.Sprintf("%.1fh", total))
	return nil
}

type WorkLogCmd struct {
	Category string  `short:"c" required:"" help:"Project the time was spent on."`
	Hours    float64 `required:"" help:"Hours worked, starting now."`
}

func (cmd *WorkLogCmd) Run(c *Context) error {
	ctx := context.Background()

	store, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	log, err := store.LogWork(ctx, cmd.Category, cmd.Hours, c.now())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out(), "✓ Logged %.1fh of %s (%s-%s)\n", log.TotalHours, log.Project,
		log.StartTime.Format(constants.TimeFormat), log.EndTime.Format(constants.TimeFormat))
	return nil
}
