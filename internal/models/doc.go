// Package models defines the core domain models for the budgeting API.
//
// # Models
//
//   - User: a registered account (bcrypt password hash, optional region code)
//   - Household: the income unit a user budgets for
//   - Transaction: one recurring or variable expense line of a household
//   - HouseholdProfile: a household joined with its owner's name, used for advice
//
// Identifiers are database-assigned integers. Money values are whole currency
// units stored as int64; arithmetic on them goes through the calculator package.
package models
