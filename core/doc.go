// Package core contains the canonical ledger domain contracts, entities, and
// the transfer orchestration logic. Lower-level adapters must depend on this
// package; core must not depend on storage-specific or transport-specific
// adapters.
package core
