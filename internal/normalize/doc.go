// Package normalize maps raw stats API payloads into the view models served by
// the HTTP layer. Every function here is pure: the same payload always yields a
// structurally equal result and inputs are never modified.
package normalize
