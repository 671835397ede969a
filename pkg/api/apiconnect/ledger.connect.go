package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/Krishmal2004/Expense-Tracker/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService.
const LedgerServiceName = "ledger.v1.LedgerService"

// Procedure paths of the LedgerService RPCs.
const (
	LedgerServiceAddExpenseProcedure           = "/" + LedgerServiceName + "/AddExpense"
	LedgerServiceUpdateExpenseProcedure        = "/" + LedgerServiceName + "/UpdateExpense"
	LedgerServiceDeleteExpenseProcedure        = "/" + LedgerServiceName + "/DeleteExpense"
	LedgerServiceListExpensesProcedure         = "/" + LedgerServiceName + "/ListExpenses"
	LedgerServiceGetTrendSummaryProcedure      = "/" + LedgerServiceName + "/GetTrendSummary"
	LedgerServiceGetMonthlyTotalsProcedure     = "/" + LedgerServiceName + "/GetMonthlyTotals"
	LedgerServiceGetCategoryBreakdownProcedure = "/" + LedgerServiceName + "/GetCategoryBreakdown"
	LedgerServiceListNotificationsProcedure    = "/" + LedgerServiceName + "/ListNotifications"
	LedgerServiceMarkNotificationReadProcedure = "/" + LedgerServiceName + "/MarkNotificationRead"
	LedgerServiceGetProfileProcedure           = "/" + LedgerServiceName + "/GetProfile"
	LedgerServiceUpdateBudgetProcedure         = "/" + LedgerServiceName + "/UpdateBudget"
	LedgerServiceUpdateProfileProcedure        = "/" + LedgerServiceName + "/UpdateProfile"
)

// LedgerServiceClient is a client for the LedgerService.
type LedgerServiceClient interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetTrendSummary(context.Context, *connect.Request[api.GetTrendSummaryRequest]) (*connect.Response[api.GetTrendSummaryResponse], error)
	GetMonthlyTotals(context.Context, *connect.Request[api.GetMonthlyTotalsRequest]) (*connect.Response[api.GetMonthlyTotalsResponse], error)
	GetCategoryBreakdown(context.Context, *connect.Request[api.GetCategoryBreakdownRequest]) (*connect.Response[api.GetCategoryBreakdownResponse], error)
	ListNotifications(context.Context, *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error)
	MarkNotificationRead(context.Context, *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error)
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	UpdateBudget(context.Context, *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
}

// NewLedgerServiceClient constructs a client for the LedgerService. baseURL is the
// server root, for example http://localhost:8080. Messages are sent as JSON.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &ledgerServiceClient{
		addExpense:           connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		updateExpense:        connect.NewClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](httpClient, baseURL+LedgerServiceUpdateExpenseProcedure, opts...),
		deleteExpense:        connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+LedgerServiceDeleteExpenseProcedure, opts...),
		listExpenses:         connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		getTrendSummary:      connect.NewClient[api.GetTrendSummaryRequest, api.GetTrendSummaryResponse](httpClient, baseURL+LedgerServiceGetTrendSummaryProcedure, opts...),
		getMonthlyTotals:     connect.NewClient[api.GetMonthlyTotalsRequest, api.GetMonthlyTotalsResponse](httpClient, baseURL+LedgerServiceGetMonthlyTotalsProcedure, opts...),
		getCategoryBreakdown: connect.NewClient[api.GetCategoryBreakdownRequest, api.GetCategoryBreakdownResponse](httpClient, baseURL+LedgerServiceGetCategoryBreakdownProcedure, opts...),
		listNotifications:    connect.NewClient[api.ListNotificationsRequest, api.ListNotificationsResponse](httpClient, baseURL+LedgerServiceListNotificationsProcedure, opts...),
		markNotificationRead: connect.NewClient[api.MarkNotificationReadRequest, api.MarkNotificationReadResponse](httpClient, baseURL+LedgerServiceMarkNotificationReadProcedure, opts...),
		getProfile:           connect.NewClient[api.GetProfileRequest, api.GetProfileResponse](httpClient, baseURL+LedgerServiceGetProfileProcedure, opts...),
		updateBudget:         connect.NewClient[api.UpdateBudgetRequest, api.UpdateBudgetResponse](httpClient, baseURL+LedgerServiceUpdateBudgetProcedure, opts...),
		updateProfile:        connect.NewClient[api.UpdateProfileRequest, api.UpdateProfileResponse](httpClient, baseURL+LedgerServiceUpdateProfileProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	addExpense           *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	updateExpense        *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense        *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	listExpenses         *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	getTrendSummary      *connect.Client[api.GetTrendSummaryRequest, api.GetTrendSummaryResponse]
	getMonthlyTotals     *connect.Client[api.GetMonthlyTotalsRequest, api.GetMonthlyTotalsResponse]
	getCategoryBreakdown *connect.Client[api.GetCategoryBreakdownRequest, api.GetCategoryBreakdownResponse]
	listNotifications    *connect.Client[api.ListNotificationsRequest, api.ListNotificationsResponse]
	markNotificationRead *connect.Client[api.MarkNotificationReadRequest, api.MarkNotificationReadResponse]
	getProfile           *connect.Client[api.GetProfileRequest, api.GetProfileResponse]
	updateBudget         *connect.Client[api.UpdateBudgetRequest, api.UpdateBudgetResponse]
	updateProfile        *connect.Client[api.UpdateProfileRequest, api.UpdateProfileResponse]
}

func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetTrendSummary(ctx context.Context, req *connect.Request[api.GetTrendSummaryRequest]) (*connect.Response[api.GetTrendSummaryResponse], error) {
	return c.getTrendSummary.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetMonthlyTotals(ctx context.Context, req *connect.Request[api.GetMonthlyTotalsRequest]) (*connect.Response[api.GetMonthlyTotalsResponse], error) {
	return c.getMonthlyTotals.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetCategoryBreakdown(ctx context.Context, req *connect.Request[api.GetCategoryBreakdownRequest]) (*connect.Response[api.GetCategoryBreakdownResponse], error) {
	return c.getCategoryBreakdown.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListNotifications(ctx context.Context, req *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	return c.listNotifications.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) MarkNotificationRead(ctx context.Context, req *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error) {
	return c.markNotificationRead.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	return c.getProfile.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) UpdateBudget(ctx context.Context, req *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error) {
	return c.updateBudget.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

// LedgerServiceHandler is implemented by the server side of the LedgerService.
// Every method expects an authenticated caller.
type LedgerServiceHandler interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetTrendSummary(context.Context, *connect.Request[api.GetTrendSummaryRequest]) (*connect.Response[api.GetTrendSummaryResponse], error)
	GetMonthlyTotals(context.Context, *connect.Request[api.GetMonthlyTotalsRequest]) (*connect.Response[api.GetMonthlyTotalsResponse], error)
	GetCategoryBreakdown(context.Context, *connect.Request[api.GetCategoryBreakdownRequest]) (*connect.Response[api.GetCategoryBreakdownResponse], error)
	ListNotifications(context.Context, *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error)
	MarkNotificationRead(context.Context, *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error)
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	UpdateBudget(context.Context, *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler for svc and returns the path
// prefix to mount it on.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	addExpenseHandler := connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...)
	updateExpenseHandler := connect.NewUnaryHandler(LedgerServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...)
	deleteExpenseHandler := connect.NewUnaryHandler(LedgerServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...)
	listExpensesHandler := connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...)
	getTrendSummaryHandler := connect.NewUnaryHandler(LedgerServiceGetTrendSummaryProcedure, svc.GetTrendSummary, opts...)
	getMonthlyTotalsHandler := connect.NewUnaryHandler(LedgerServiceGetMonthlyTotalsProcedure, svc.GetMonthlyTotals, opts...)
	getCategoryBreakdownHandler := connect.NewUnaryHandler(LedgerServiceGetCategoryBreakdownProcedure, svc.GetCategoryBreakdown, opts...)
	listNotificationsHandler := connect.NewUnaryHandler(LedgerServiceListNotificationsProcedure, svc.ListNotifications, opts...)
	markNotificationReadHandler := connect.NewUnaryHandler(LedgerServiceMarkNotificationReadProcedure, svc.MarkNotificationRead, opts...)
	getProfileHandler := connect.NewUnaryHandler(LedgerServiceGetProfileProcedure, svc.GetProfile, opts...)
	updateBudgetHandler := connect.NewUnaryHandler(LedgerServiceUpdateBudgetProcedure, svc.UpdateBudget, opts...)
	updateProfileHandler := connect.NewUnaryHandler(LedgerServiceUpdateProfileProcedure, svc.UpdateProfile, opts...)
	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceAddExpenseProcedure:
			addExpenseHandler.ServeHTTP(w, r)
		case LedgerServiceUpdateExpenseProcedure:
			updateExpenseHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteExpenseProcedure:
			deleteExpenseHandler.ServeHTTP(w, r)
		case LedgerServiceListExpensesProcedure:
			listExpensesHandler.ServeHTTP(w, r)
		case LedgerServiceGetTrendSummaryProcedure:
			getTrendSummaryHandler.ServeHTTP(w, r)
		case LedgerServiceGetMonthlyTotalsProcedure:
			getMonthlyTotalsHandler.ServeHTTP(w, r)
		case LedgerServiceGetCategoryBreakdownProcedure:
			getCategoryBreakdownHandler.ServeHTTP(w, r)
		case LedgerServiceListNotificationsProcedure:
			listNotificationsHandler.ServeHTTP(w, r)
		case LedgerServiceMarkNotificationReadProcedure:
			markNotificationReadHandler.ServeHTTP(w, r)
		case LedgerServiceGetProfileProcedure:
			getProfileHandler.ServeHTTP(w, r)
		case LedgerServiceUpdateBudgetProcedure:
			updateBudgetHandler.ServeHTTP(w, r)
		case LedgerServiceUpdateProfileProcedure:
			updateProfileHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
