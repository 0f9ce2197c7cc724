package commands

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"ballotbox/contexts/governance/campaign-ledger/ports"
	contractsv1 "ballotbox/contracts/gen/events/v1"
)

const (
	EventCampaignCreated         = "campaign.created"
	EventCampaignDescriptionSet  = "campaign.description_set"
	EventCampaignActivated       = "campaign.activated"
	EventCampaignDeactivated     = "campaign.deactivated"
	EventCampaignBasicConfigured = "campaign.basic_configured"
	EventBallotPositionAdded     = "ballot.position_added"
	EventBallotCandidateAdded    = "ballot.candidate_added"
	EventBallotCandidatesAdded   = "ballot.candidates_added"
	EventBallotFinalized         = "ballot.finalized"
	EventBasicVoteCast           = "vote.basic_cast"
	EventBallotVoteCast          = "vote.ballot_cast"
	EventCampaignEnded           = "campaign.ended"
	EventFeePaid                 = "fee.paid"
	EventVoterRewarded           = "voter.rewarded"
	EventVoterRewardZero         = "voter.reward_zero"
)

// LedgerEventTypes lists every topic the ledger writes to its outbox.
var LedgerEventTypes = []string{
	EventCampaignCreated,
	EventCampaignDescriptionSet,
	EventCampaignActivated,
	EventCampaignDeactivated,
	EventCampaignBasicConfigured,
	EventBallotPositionAdded,
	EventBallotCandidateAdded,
	EventBallotCandidatesAdded,
	EventBallotFinalized,
	EventBasicVoteCast,
	EventBallotVoteCast,
	EventCampaignEnded,
	EventFeePaid,
	EventVoterRewarded,
	EventVoterRewardZero,
}

func newLedgerEnvelope(
	eventID string,
	eventType string,
	campaignID uint64,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Partitioned by campaign so consumers see one campaign's history in order.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "campaign-ledger",
		TraceID:          eventID,
		SchemaVersion:    contractsv1.CurrentSchemaVersion,
		PartitionKeyPath: "campaign_id",
		PartitionKey:     strconv.FormatUint(campaignID, 10),
		Data:             payload,
	}, nil
}

func appendLedgerEvent(
	ctx context.Context,
	outbox ports.OutboxWriter,
	idGen ports.IDGenerator,
	eventType string,
	campaignID uint64,
	occurredAt time.Time,
	data map[string]any,
) error {
	eventID, err := idGen.NewID(ctx)
	if err != nil {
		return err
	}
	if data == nil {
		data = map[string]any{}
	}
	data["campaign_id"] = campaignID
	envelope, err := newLedgerEnvelope(eventID, eventType, campaignID, occurredAt, data)
	if err != nil {
		return err
	}
	return outbox.AppendOutbox(ctx, envelope)
}
