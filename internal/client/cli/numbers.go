package cli

import (
	"context"
	"fmt"
)

// Daily prints the power number of date, today when empty.
func (a *App) Daily(ctx context.Context, date string) error {
	if !a.isLoggedIn() {
		return a.report(errNotLoggedIn)
	}

	n, err := a.rpc.DailyNumbers(ctx, a.session, date)
	if err != nil {
		return a.reportSession(err)
	}
	fmt.Fprintf(a.out, "%s\n  power:   %s\n", n.Date, n.Power)
	return nil
}

// Lucky prints the personal numbers of the signed-in user for date.
func (a *App) Lucky(ctx context.Context, date string) error {
	if !a.isLoggedIn() {
		return a.report(errNotLoggedIn)
	}

	n, err := a.rpc.LuckyNumbers(ctx, a.session, date)
	if err != nil {
		return a.reportSession(err)
	}
	fmt.Fprintf(a.out, "%s\n  power:   %s\n  love:    %s\n  career:  %s\n  health:  %s\n  finance: %s\n",
		n.Date, n.Power, n.Love, n.Career, n.Health, n.Finance)
	return nil
}
