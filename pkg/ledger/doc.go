// Package ledger records which activation each compile unit of a build
// directory was resolved with.
//
// A build links at most one peripheral-access package. Resolving each
// compile unit separately cannot see that on its own, so every unit records
// its activation in a shared JSON ledger and the first unit to disagree
// fails with resolve.ErrConflictingVariants. Units resolved by concurrent
// processes serialize on a lock file beside the ledger (gofrs/flock).
package ledger
