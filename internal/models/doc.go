// Package models defines the core domain records for SplitLedger.
//
// # Models
//
//   - User: Registered account, used for authentication and display names
//   - Group: A roster of members who pool costs
//   - Expense: Money fronted by one member on behalf of the whole group
//   - Settlement: A real-world payment between two members to clear debt
//
// Group members are identifier strings. A member identifier may be a User ID
// (in which case responses can be decorated with the user's display name) or
// a free-form name for people without accounts.
//
// # Design Principles
//
//  1. Expenses are always split equally across the group's current roster.
//     There are no per-expense participant subsets or weights; the balance
//     engine in internal/ledger relies on this.
//  2. Avoid circular references: relationships use ID strings, not pointers.
//  3. Monetary amounts are float64 in major currency units, rounded to two
//     decimals at presentation time. Comparisons elsewhere use a tolerance.
package models
