package entities

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type CampaignType string

const (
	CampaignTypeUndefined CampaignType = ""
	CampaignTypeBasic     CampaignType = "basic"
	CampaignTypeBallot    CampaignType = "ballot"
)

// ParseCampaignType maps wire values onto the campaign type tag. Unknown
// values resolve to CampaignTypeUndefined.
func ParseCampaignType(raw string) CampaignType {
	switch CampaignType(strings.ToLower(strings.TrimSpace(raw))) {
	case CampaignTypeBasic:
		return CampaignTypeBasic
	case CampaignTypeBallot:
		return CampaignTypeBallot
	default:
		return CampaignTypeUndefined
	}
}

func (t CampaignType) Valid() bool {
	return t == CampaignTypeBasic || t == CampaignTypeBallot
}

// Campaign is the registry record. ID zero never identifies a campaign.
type Campaign struct {
	ID          uint64
	Type        CampaignType
	Description string
	Creator     common.Address
	IsActive    bool
	IsFinalized bool
	IsEnded     bool
	TotalVotes  uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FinalizedAt *time.Time
	EndedAt     *time.Time
}

func (c Campaign) IsCreator(caller common.Address) bool {
	return c.Creator == caller
}

func (c *Campaign) MarkFinalized(now time.Time) {
	at := now.UTC()
	c.IsFinalized = true
	c.FinalizedAt = &at
	c.UpdatedAt = at
}

// LedgerState carries the global counters guarded by the registry: the next
// id to allocate and the single active campaign (zero when none).
type LedgerState struct {
	NextCampaignID   uint64
	ActiveCampaignID uint64
}

func NewLedgerState() LedgerState {
	return LedgerState{NextCampaignID: 1}
}

type VoterRecord struct {
	CampaignID uint64
	Voter      common.Address
	VotedAt    time.Time
}
