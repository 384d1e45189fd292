package cli

import (
	"context"
	"fmt"
	"strconv"
)

// History prints the cached history list, refreshing it from the server
// first. Rows are numbered from 1; show and delete take that number.
func (a *App) History(ctx context.Context) error {
	if err := a.ctrl.LoadHistory(ctx); err != nil {
		return err
	}

	entries := a.ctrl.History().Entries()
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No analyses yet.")
		return nil
	}

	for i, s := range entries {
		fmt.Fprintln(a.out, renderHistoryRow(i+1, s))
	}
	return nil
}

// entryID resolves a 1-based list position typed by the user into the
// server-assigned record id.
func (a *App) entryID(arg string) (int64, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > a.ctrl.History().Len() {
		return 0, fmt.Errorf("no history entry %q; run 'history' to see the list", arg)
	}
	return a.ctrl.History().Entries()[n-1].ID, nil
}

// Show expands history entry n and prints the full record, or collapses it
// if it is already expanded.
func (a *App) Show(ctx context.Context, arg string) error {
	id, err := a.entryID(arg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	if err := a.ctrl.ToggleExpand(ctx, id); err != nil {
		return err
	}

	expanded, open := a.ctrl.History().ExpandedID()
	if !open || expanded != id {
		fmt.Fprintln(a.out, "Collapsed.")
		return nil
	}
	if full, ok := a.ctrl.History().Full(id); ok {
		fmt.Fprintln(a.out, renderFull(full))
	}
	return nil
}

// Delete removes history entry n after a confirmation prompt.
func (a *App) Delete(ctx context.Context, arg string) error {
	id, err := a.entryID(arg)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	before := a.ctrl.History().Len()
	if err := a.ctrl.DeleteEntry(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Delete failed: %s\n", err)
		return err
	}
	if a.ctrl.History().Len() < before {
		fmt.Fprintln(a.out, "Deleted.")
	}
	return nil
}
