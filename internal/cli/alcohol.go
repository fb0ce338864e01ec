package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/pkm/internal/models"
	"github.com/julianstephens/pkm/internal/storage"
)

type AlcoholListCmd struct{}

func (cmd *AlcoholListCmd) Run(c *Context) error {
	ctx := context.Background()

	store, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	overview, err := store.AlcoholOverview(ctx, c.now())
	if err != nil {
		return err
	}

	w := c.out()
	fmt.Fprintln(w, titleStyle.Render("Alcohol"))
	writeRow(w, "last 7 days", fmt.Sprintf("%.1f units", overview.WeeklyUnits))
	if len(overview.DrinkTypes) > 0 {
		writeRow(w, "drink types", strings.Join(overview.DrinkTypes, ", "))
	}
	if len(overview.Recent) == 0 {
		fmt.Fprintln(w, "\nNo drinks logged.")
		return nil
	}

	fmt.Fprintln(w)
	for _, e := range overview.Recent {
		fmt.Fprintf(w, "  #%-5d %s  %-10s %4.1f  %s\n", e.ID, e.Date, e.DrinkType, e.Units, e.Notes)
	}
	return nil
}

type AlcoholLogCmd struct {
	Drink string  `short:"d" required:"" help:"Drink type, e.g. Beer or Wine."`
	Units float64 `short:"u" required:"" help:"Units of alcohol."`
	Notes string  `short:"n" help:"Notes."`
	Date  string  `help:"Date in YYYY-MM-DD format. Defaults to today."`
}

func (cmd *AlcoholLogCmd) Run(c *Context) error {
	ctx := context.Background()

	log := models.AlcoholLog{DrinkType: cmd.Drink, Units: cmd.Units, Notes: cmd.Notes}
	if cmd.Date != "" {
		var err error
		if log.Date, err = parseDate(cmd.Date, c.loc()); err != nil {
			return err
		}
	}

	store, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.LogAlcohol(ctx, log, c.now())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out(), "✓ Logged %.1f units of %s (#%d)\n", cmd.Units, cmd.Drink, id)
	return nil
}

type AlcoholUpdateCmd struct {
	ID    int64   `arg:"" help:"Id of the log to update."`
	Drink string  `short:"d" required:"" help:"Drink type."`
	Units float64 `short:"u" required:"" help:"Units of alcohol."`
	Notes string  `short:"n" help:"Notes."`
}

func (cmd *AlcoholUpdateCmd) Run(c *Context) error {
	ctx := context.Background()

	store, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.UpdateAlcoholLog(ctx, cmd.ID, cmd.Drink, cmd.Units, cmd.Notes); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("alcohol log not found: #%d", cmd.ID)
		}
		return err
	}
	fmt.Fprintf(c.out(), "✓ Updated alcohol log #%d\n", cmd.ID)
	return nil
}
