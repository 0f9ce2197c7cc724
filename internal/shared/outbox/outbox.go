package outbox

// Status is the relay state of an outbox row written in the same unit of work
// as the ledger change that produced it.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
)
