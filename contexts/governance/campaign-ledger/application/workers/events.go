package workers

import (
	"crypto/sha256"
	"encoding/hex"
)

const moduleName = "governance/campaign-ledger"

func hashPayload(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
