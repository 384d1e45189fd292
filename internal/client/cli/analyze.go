package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/newscheck/internal/client/controller"
)

// Analyze reads an article text from the terminal, submits it for
// classification and prints the verdict. Validation and service failures
// surface through the banner, so only a transport-level error reaches the
// caller.
func (a *App) Analyze(ctx context.Context) error {
	text, err := getMultiline(a.reader, "Paste the article text", a.out)
	if err != nil {
		return err
	}

	if err := a.ctrl.SubmitForAnalysis(ctx, text); err != nil {
		return err
	}

	active := a.ctrl.Active()
	if active.Status == controller.StatusSucceeded && active.Result != nil {
		fmt.Fprintln(a.out, renderVerdict(active.Result.Result, active.Result.Confidence))
	}
	return nil
}
