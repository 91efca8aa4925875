package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmuchiri/tributewall/internal/common"
	"github.com/dmuchiri/tributewall/internal/models"
)

func (a *App) List(ctx context.Context) error {
	tributes := a.engine.Tributes()
	if len(tributes) == 0 {
		fmt.Fprintln(a.out, "No tributes yet. Be the first to share one.")
		return nil
	}

	for _, tr := range tributes {
		candle := " "
		if tr.HasCandleLit {
			candle = "*"
		}
		fmt.Fprintf(a.out, "[%s] %s %s (%s, %s)\n", tr.ID, candle, tr.AuthorName, tr.Relationship, tr.Location)
		fmt.Fprintf(a.out, "      %s\n", tr.Message)
		if !tr.SubmittedAt.IsZero() {
			fmt.Fprintf(a.out, "      — %s\n", tr.SubmittedAt.Format("January 2, 2006"))
		}
	}
	return nil
}

func (a *App) Submit(ctx context.Context) error {
	if a.engine.Submitting() {
		fmt.Fprintln(a.out, "A submission is already in progress.")
		return common.ErrSubmitInFlight
	}

	name, err := GetSimpleText(a.reader, "Your name", a.out)
	if err != nil {
		return err
	}
	location, err := GetSimpleText(a.reader, "Your location (empty to detect)", a.out)
	if err != nil {
		return err
	}
	relationship, err := GetChoice(a.reader, "Your relationship", models.Relationships, a.out)
	if err != nil {
		return err
	}
	message, err := GetMultiline(a.reader, "Your message", a.out)
	if err != nil {
		return err
	}

	draft := models.Draft{
		AuthorName:   name,
		Message:      message,
		Relationship: relationship,
		Location:     location,
	}

	tribute, err := a.engine.Submit(ctx, draft)
	if err != nil {
		var rejected *common.RejectedError
		switch {
		case errors.Is(err, common.ErrValidation):
			fmt.Fprintf(a.out, "Please check your input: %v\n", err)
		case errors.As(err, &rejected):
			fmt.Fprintf(a.out, "The wall declined this tribute: %s\n", rejected.Message)
		default:
			fmt.Fprintln(a.out, "Could not reach the tribute wall. Please try again later.")
		}
		return err
	}

	fmt.Fprintf(a.out, "Thank you for your tribute! It has been added to the wall (id %s).\n", tribute.ID)
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter tribute id to delete", a.out)
	if err != nil {
		return err
	}

	if err := a.engine.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotOwner) {
			fmt.Fprintln(a.out, "Only the person who shared a tribute can delete it.")
		} else {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
		return err
	}

	fmt.Fprintln(a.out, "Tribute removed.")
	return nil
}

func (a *App) Candle(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter tribute id to light a candle for", a.out)
	if err != nil {
		return err
	}

	if err := a.engine.LightCandle(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Candle lit.")
	return nil
}

func (a *App) CandleAll(ctx context.Context) error {
	a.engine.LightAll(ctx)
	fmt.Fprintf(a.out, "%d candles burning.\n", a.engine.Stats().CandlesLit)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	a.engine.Initialize(ctx)
	if a.engine.Degraded() {
		fmt.Fprintln(a.out, "Still offline; showing the cached copy.")
	} else {
		fmt.Fprintf(a.out, "Refreshed: %d tributes.\n", a.engine.Stats().Total)
	}
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	s := a.engine.Stats()
	fmt.Fprintf(a.out, "Tributes: %d\nCandles lit: %d\nLocations: %d\n", s.Total, s.CandlesLit, s.Locations)
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	if err := a.engine.ClearLocal(ctx); err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Local copy cleared. The wall itself is untouched.")
	return nil
}
