// Package auth issues and checks ledger credentials.
package auth

import (
	"context"

	"github.com/Krishmal2004/Expense-Tracker/internal/models"
)

// Authenticator registers account holders and verifies their credentials.
// The service layer only depends on this interface, so the password scheme
// can be replaced without touching request handling.
type Authenticator interface {
	// Register creates an account. The credential format depends on the
	// implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user matching email and credential.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ChangePassword replaces the credential of userID once current is verified.
	ChangePassword(ctx context.Context, userID, current, next string) error

	// ValidateCredential rejects credentials that may not be registered.
	ValidateCredential(credential string) error
}
