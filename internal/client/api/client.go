package api

import (
	"context"

	"github.com/dmitrijs2005/newscheck/internal/client/models"
)

// Client is the remote analysis service seen from the rest of the client.
// All record operations require a token to have been set; Login and Register
// do not.
type Client interface {
	// Login authenticates with the service and returns the issued bearer
	// token together with the user profile.
	Login(ctx context.Context, email, password string) (string, *models.UserProfile, error)

	// Register creates a new account. The user still has to log in afterwards.
	Register(ctx context.Context, name, email, password string) error

	// Analyze submits text for classification. Length bounds are enforced
	// before any network call.
	Analyze(ctx context.Context, text string) (*models.AnalysisFull, error)

	// History returns the analysis summaries in server order.
	History(ctx context.Context) ([]models.AnalysisSummary, error)

	// GetAnalysis fetches the full record for one analysis.
	GetAnalysis(ctx context.Context, id int64) (*models.AnalysisFull, error)

	// DeleteAnalysis removes one analysis record server-side.
	DeleteAnalysis(ctx context.Context, id int64) error

	// SetToken installs the bearer credential used on protected calls.
	SetToken(token string)

	// ClearToken drops the bearer credential.
	ClearToken()
}
