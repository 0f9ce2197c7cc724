package postgresadapter

import (
	"context"

	"github.com/google/uuid"
)

// UUIDGenerator issues event and outbox identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
