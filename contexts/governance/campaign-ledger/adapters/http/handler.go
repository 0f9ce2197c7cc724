package httpadapter

import (
	"context"
	"log/slog"
	"math/big"
	"time"

	"ballotbox/contexts/governance/campaign-ledger/application/commands"
	"ballotbox/contexts/governance/campaign-ledger/application/queries"
	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	httptransport "ballotbox/contexts/governance/campaign-ledger/transport/http"

	"github.com/ethereum/go-ethereum/common"
)

type Handler struct {
	Registry      commands.RegistryUseCase
	Basic         commands.BasicCampaignUseCase
	Ballot        commands.BallotCampaignUseCase
	Archive       commands.ArchiveUseCase
	Campaigns     queries.CampaignQueryUseCase
	Participation queries.ParticipationQueryUseCase
	Logger        *slog.Logger
}

func (h Handler) CreateCampaignHandler(
	ctx context.Context,
	caller common.Address,
	req httptransport.CreateCampaignRequest,
) (httptransport.CampaignResponse, error) {
	campaign, err := h.Registry.CreateCampaign(ctx, commands.CreateCampaignCommand{
		Caller:      caller,
		Description: req.Description,
		Type:        entities.ParseCampaignType(req.CampaignType),
	})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return mapCampaign(campaign), nil
}

func (h Handler) SetDescriptionHandler(
	ctx context.Context,
	caller common.Address,
	campaignID uint64,
	req httptransport.SetDescriptionRequest,
) (httptransport.CampaignResponse, error) {
	campaign, err := h.Registry.SetDescription(ctx, commands.SetDescriptionCommand{
		Caller:      caller,
		CampaignID:  campaignID,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return mapCampaign(campaign), nil
}

func (h Handler) ActivateCampaignHandler(ctx context.Context, caller common.Address, campaignID uint64) (httptransport.CampaignResponse, error) {
	campaign, err := h.Registry.ActivateCampaign(ctx, commands.CampaignCommand{Caller: caller, CampaignID: campaignID})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return mapCampaign(campaign), nil
}

func (h Handler) DeactivateCampaignHandler(ctx context.Context, caller common.Address, campaignID uint64) (httptransport.CampaignResponse, error) {
	campaign, err := h.Registry.DeactivateCampaign(ctx, commands.CampaignCommand{Caller: caller, CampaignID: campaignID})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return mapCampaign(campaign), nil
}

func (h Handler) SetupBasicHandler(
	ctx context.Context,
	caller common.Address,
	campaignID uint64,
	req httptransport.SetupBasicRequest,
) (httptransport.BasicResultsResponse, error) {
	state, err := h.Basic.SetupBasic(ctx, commands.SetupBasicCommand{
		Caller:         caller,
		CampaignID:     campaignID,
		Choices:        req.Choices,
		SingleVoteOnly: req.SingleVoteOnly,
	})
	if err != nil {
		return httptransport.BasicResultsResponse{}, err
	}
	return httptransport.BasicResultsResponse{
		CampaignID:     state.CampaignID,
		Choices:        nonNilStrings(state.Choices),
		Votes:          nonNilCounts(state.Votes),
		SingleVoteOnly: state.SingleVoteOnly,
	}, nil
}

func (h Handler) VoteBasicHandler(
	ctx context.Context,
	voter common.Address,
	campaignID uint64,
	req httptransport.BasicVoteRequest,
) (httptransport.VoteResponse, error) {
	result, err := h.Basic.VoteBasic(ctx, commands.BasicVoteCommand{
		Voter:         voter,
		CampaignID:    campaignID,
		ChoiceIndices: req.ChoiceIndices,
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return mapVote(result), nil
}

func (h Handler) BasicResultsHandler(ctx context.Context, campaignID uint64) (httptransport.BasicResultsResponse, error) {
	results, err := h.Campaigns.BasicResults(ctx, campaignID)
	if err != nil {
		return httptransport.BasicResultsResponse{}, err
	}
	return httptransport.BasicResultsResponse{
		CampaignID:     results.CampaignID,
		Choices:        nonNilStrings(results.Choices),
		Votes:          nonNilCounts(results.Votes),
		SingleVoteOnly: results.SingleVoteOnly,
		TotalVotes:     results.TotalVotes,
	}, nil
}

func (h Handler) AddPositionHandler(
	ctx context.Context,
	caller common.Address,
	campaignID uint64,
	req httptransport.AddPositionRequest,
) (httptransport.AddPositionResponse, error) {
	index, err := h.Ballot.AddPosition(ctx, commands.AddPositionCommand{
		Caller:        caller,
		CampaignID:    campaignID,
		Name:          req.Name,
		MaxSelections: req.MaxSelections,
	})
	if err != nil {
		return httptransport.AddPositionResponse{}, err
	}
	return httptransport.AddPositionResponse{
		CampaignID:    campaignID,
		PositionIndex: index,
	}, nil
}

// AddCandidatesHandler uses the single-candidate path for one name so the
// emitted event matches a direct AddCandidate call.
func (h Handler) AddCandidatesHandler(
	ctx context.Context,
	caller common.Address,
	campaignID uint64,
	positionIndex uint64,
	req httptransport.AddCandidatesRequest,
) (httptransport.AddCandidatesResponse, error) {
	var (
		ids []uint64
		err error
	)
	if len(req.Names) == 1 {
		var id uint64
		id, err = h.Ballot.AddCandidate(ctx, caller, campaignID, positionIndex, req.Names[0])
		ids = []uint64{id}
	} else {
		ids, err = h.Ballot.AddCandidates(ctx, commands.AddCandidatesCommand{
			Caller:        caller,
			CampaignID:    campaignID,
			PositionIndex: positionIndex,
			Names:         req.Names,
		})
	}
	if err != nil {
		return httptransport.AddCandidatesResponse{}, err
	}
	return httptransport.AddCandidatesResponse{
		CampaignID:    campaignID,
		PositionIndex: positionIndex,
		CandidateIDs:  ids,
	}, nil
}

func (h Handler) FinalizeBallotHandler(ctx context.Context, caller common.Address, campaignID uint64) (httptransport.BallotResultsResponse, error) {
	state, err := h.Ballot.FinalizeBallotSetup(ctx, commands.CampaignCommand{Caller: caller, CampaignID: campaignID})
	if err != nil {
		return httptransport.BallotResultsResponse{}, err
	}
	return httptransport.BallotResultsResponse{
		CampaignID: state.CampaignID,
		Positions:  mapPositions(state.Positions),
		Candidates: mapCandidates(state.Candidates, state.Votes),
	}, nil
}

func (h Handler) VoteBallotHandler(
	ctx context.Context,
	voter common.Address,
	campaignID uint64,
	req httptransport.BallotVoteRequest,
) (httptransport.VoteResponse, error) {
	result, err := h.Ballot.VoteBallot(ctx, commands.BallotVoteCommand{
		Voter:        voter,
		CampaignID:   campaignID,
		CandidateIDs: req.CandidateIDs,
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return mapVote(result), nil
}

func (h Handler) BallotResultsHandler(ctx context.Context, campaignID uint64) (httptransport.BallotResultsResponse, error) {
	results, err := h.Campaigns.BallotResults(ctx, campaignID)
	if err != nil {
		return httptransport.BallotResultsResponse{}, err
	}
	return httptransport.BallotResultsResponse{
		CampaignID: results.CampaignID,
		Positions:  mapPositions(results.Positions),
		Candidates: mapCandidates(results.Candidates, results.Votes),
		TotalVotes: results.TotalVotes,
	}, nil
}

func (h Handler) EndCampaignHandler(ctx context.Context, caller common.Address, campaignID uint64) (httptransport.FinalResultResponse, error) {
	result, err := h.Archive.EndCampaign(ctx, commands.CampaignCommand{Caller: caller, CampaignID: campaignID})
	if err != nil {
		return httptransport.FinalResultResponse{}, err
	}
	return mapFinalResult(result), nil
}

func (h Handler) FinalResultHandler(ctx context.Context, campaignID uint64) (httptransport.FinalResultResponse, error) {
	result, err := h.Campaigns.FinalResult(ctx, campaignID)
	if err != nil {
		return httptransport.FinalResultResponse{}, err
	}
	return mapFinalResult(result), nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID uint64) (httptransport.CampaignResponse, error) {
	campaign, err := h.Campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return mapCampaign(campaign), nil
}

func (h Handler) ListCampaignsHandler(ctx context.Context) (httptransport.CampaignListResponse, error) {
	campaigns, err := h.Campaigns.ListCampaigns(ctx)
	if err != nil {
		return httptransport.CampaignListResponse{}, err
	}
	items := make([]httptransport.CampaignResponse, 0, len(campaigns))
	for _, campaign := range campaigns {
		items = append(items, mapCampaign(campaign))
	}
	return httptransport.CampaignListResponse{Items: items}, nil
}

func (h Handler) NextCampaignIDHandler(ctx context.Context) (httptransport.NextCampaignIDResponse, error) {
	next, err := h.Campaigns.NextCampaignID(ctx)
	if err != nil {
		return httptransport.NextCampaignIDResponse{}, err
	}
	return httptransport.NextCampaignIDResponse{NextCampaignID: next}, nil
}

func (h Handler) ActiveCampaignHandler(ctx context.Context) (httptransport.ActiveCampaignResponse, error) {
	campaign, found, err := h.Campaigns.ActiveCampaign(ctx)
	if err != nil {
		return httptransport.ActiveCampaignResponse{}, err
	}
	if !found {
		return httptransport.ActiveCampaignResponse{}, nil
	}
	mapped := mapCampaign(campaign)
	return httptransport.ActiveCampaignResponse{Active: true, Campaign: &mapped}, nil
}

func (h Handler) VoterStatusHandler(ctx context.Context, campaignID uint64, voter common.Address) (httptransport.VoterStatusResponse, error) {
	voted, err := h.Participation.HasVoted(ctx, campaignID, voter)
	if err != nil {
		return httptransport.VoterStatusResponse{}, err
	}
	return httptransport.VoterStatusResponse{
		CampaignID: campaignID,
		Voter:      voter.Hex(),
		HasVoted:   voted,
	}, nil
}

func (h Handler) TotalVotesHandler(ctx context.Context, campaignID uint64) (httptransport.TotalVotesResponse, error) {
	total, err := h.Participation.TotalVotes(ctx, campaignID)
	if err != nil {
		return httptransport.TotalVotesResponse{}, err
	}
	return httptransport.TotalVotesResponse{CampaignID: campaignID, TotalVotes: total}, nil
}

func (h Handler) EligibilityHandler(ctx context.Context, address common.Address) (httptransport.EligibilityResponse, error) {
	eligibility, err := h.Participation.Eligibility(ctx, address)
	if err != nil {
		return httptransport.EligibilityResponse{}, err
	}
	response := httptransport.EligibilityResponse{
		Address:  eligibility.Address.Hex(),
		Balance:  eligibility.Balance.String(),
		Eligible: eligibility.Eligible,
	}
	if eligibility.LegacyRegistry != (common.Address{}) {
		response.LegacyRegistry = eligibility.LegacyRegistry.Hex()
	}
	return response, nil
}

func (h Handler) RewardQuoteHandler(_ context.Context, balance *big.Int) httptransport.RewardQuoteResponse {
	return httptransport.RewardQuoteResponse{
		Balance: balance.String(),
		Reward:  h.Participation.RewardQuote(balance).String(),
	}
}

func mapCampaign(campaign entities.Campaign) httptransport.CampaignResponse {
	return httptransport.CampaignResponse{
		CampaignID:   campaign.ID,
		CampaignType: string(campaign.Type),
		Description:  campaign.Description,
		Creator:      campaign.Creator.Hex(),
		IsActive:     campaign.IsActive,
		IsFinalized:  campaign.IsFinalized,
		IsEnded:      campaign.IsEnded,
		TotalVotes:   campaign.TotalVotes,
		CreatedAt:    formatTime(campaign.CreatedAt),
		UpdatedAt:    formatTime(campaign.UpdatedAt),
		FinalizedAt:  formatOptionalTime(campaign.FinalizedAt),
		EndedAt:      formatOptionalTime(campaign.EndedAt),
	}
}

func mapVote(result commands.VoteResult) httptransport.VoteResponse {
	reward := "0"
	if result.Reward != nil {
		reward = result.Reward.String()
	}
	return httptransport.VoteResponse{
		CampaignID: result.CampaignID,
		Voter:      result.Voter.Hex(),
		TotalVotes: result.TotalVotes,
		Reward:     reward,
	}
}

func mapPositions(positions []entities.Position) []httptransport.PositionResponse {
	items := make([]httptransport.PositionResponse, 0, len(positions))
	for index, position := range positions {
		items = append(items, httptransport.PositionResponse{
			PositionIndex:  uint64(index),
			Name:           position.Name,
			MaxSelections:  position.MaxSelections,
			CandidateCount: position.CandidateCount,
		})
	}
	return items
}

func mapCandidates(candidates []entities.Candidate, votes []uint64) []httptransport.CandidateResponse {
	items := make([]httptransport.CandidateResponse, 0, len(candidates))
	for id, candidate := range candidates {
		var count uint64
		if id < len(votes) {
			count = votes[id]
		}
		items = append(items, httptransport.CandidateResponse{
			CandidateID:   uint64(id),
			Name:          candidate.Name,
			PositionIndex: candidate.PositionIndex,
			Votes:         count,
		})
	}
	return items
}

func mapFinalResult(result entities.FinalResult) httptransport.FinalResultResponse {
	response := httptransport.FinalResultResponse{
		CampaignID:   result.CampaignID,
		CampaignType: string(result.Type),
		TotalVotes:   result.TotalVotes,
		EndedAt:      formatTime(result.EndedAt),
	}
	switch result.Type {
	case entities.CampaignTypeBasic:
		response.Choices = nonNilStrings(result.Choices)
		response.ChoiceVotes = nonNilCounts(result.ChoiceVotes)
	case entities.CampaignTypeBallot:
		response.Positions = mapPositions(result.Positions)
		response.Candidates = mapCandidates(result.Candidates, result.CandidateVotes)
	}
	return response
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

func formatOptionalTime(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := formatTime(*value)
	return &formatted
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilCounts(values []uint64) []uint64 {
	if values == nil {
		return []uint64{}
	}
	return values
}
