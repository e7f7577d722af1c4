// Package feature holds the template catalog: reusable feature bundles
// (screens + connections) and full project starters.
//
// Templates are CUE documents embedded in the binary and compiled at
// library construction. CUE gives the catalog a checked schema - a
// malformed template is a build-time mistake surfaced by Load, not a
// runtime surprise during expansion.
//
// Expansion mints fresh screen identifiers and resolves the template's
// symbolic connection targets (screen names) to those identifiers.
// Targets naming screens outside the batch are dropped, so an expanded
// batch never contains dangling symbolic references.
package feature
