package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/Krishmal2004/Expense-Tracker/internal/auth"
	"github.com/Krishmal2004/Expense-Tracker/internal/middleware"
	"github.com/Krishmal2004/Expense-Tracker/pkg/api/apiconnect"
)

// Mount registers both Connect services on mux. AuthService accepts
// anonymous calls; LedgerService rejects them. Logging wraps auth so
// rejected calls are logged and timed.
func Mount(mux *http.ServeMux, authSvc *AuthService, ledgerSvc *LedgerService, jwtManager *auth.JWTManager) {
	authPath, authHandler := apiconnect.NewAuthServiceHandler(authSvc,
		connect.WithInterceptors(middleware.LoggingInterceptor(), middleware.OptionalAuth(jwtManager)),
	)
	mux.Handle(authPath, authHandler)

	ledgerPath, ledgerHandler := apiconnect.NewLedgerServiceHandler(ledgerSvc,
		connect.WithInterceptors(middleware.LoggingInterceptor(), middleware.RequireAuth(jwtManager)),
	)
	mux.Handle(ledgerPath, ledgerHandler)
}
