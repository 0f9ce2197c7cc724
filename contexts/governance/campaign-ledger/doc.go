// Package campaignledger implements the campaign voting ledger inside the
// governance context.
//
// The module owns the campaign registry, basic poll and ballot election
// engines, token-gated eligibility, creation fees and voter rewards, and the
// write-once archive of final tallies. Every mutating operation runs as one
// unit of work against the LedgerStore port and emits its events through the
// transactional outbox.
package campaignledger
