package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/Krishmal2004/Expense-Tracker/internal/apperr"
)

// toConnectError maps the ledger error taxonomy onto Connect codes.
// Storage details stay in the server log; the client sees a generic message.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, apperr.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, apperr.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, apperr.ErrStorageFailure):
		return connect.NewError(connect.CodeInternal, apperr.ErrStorageFailure)
	default:
		return connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}
}
