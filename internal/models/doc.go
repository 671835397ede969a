// Package models defines the plain data records of the expense ledger.
//
// # Records
//
//   - User: an account holder with an optional monthly budget
//   - Expense: a single spend, owned by exactly one user
//   - Notification: an alert shown to a user, e.g. a budget warning
//
// # Design Principles
//
// 1. **No serialization concerns**: records carry no JSON or database tags.
// Wire DTOs live in pkg/api and are mapped by the service layer.
// 2. **Exact money**: amounts are decimal.Decimal, never float64.
// 3. **IDs, not pointers**: relationships are expressed with ID strings.
//
// Periods are derived values and live in the period package, not here.
package models
