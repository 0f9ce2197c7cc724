package http

// Token amounts are decimal strings; they routinely exceed 2^53.

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateCampaignRequest struct {
	Description  string `json:"description"`
	CampaignType string `json:"campaign_type"`
}

type SetDescriptionRequest struct {
	Description string `json:"description"`
}

type SetupBasicRequest struct {
	Choices        []string `json:"choices"`
	SingleVoteOnly bool     `json:"single_vote_only"`
}

type BasicVoteRequest struct {
	ChoiceIndices []uint64 `json:"choice_indices"`
}

type AddPositionRequest struct {
	Name          string `json:"name"`
	MaxSelections uint8  `json:"max_selections"`
}

type AddCandidatesRequest struct {
	Names []string `json:"names"`
}

type BallotVoteRequest struct {
	CandidateIDs []uint64 `json:"candidate_ids"`
}

type CampaignResponse struct {
	CampaignID   uint64  `json:"campaign_id"`
	CampaignType string  `json:"campaign_type"`
	Description  string  `json:"description"`
	Creator      string  `json:"creator"`
	IsActive     bool    `json:"is_active"`
	IsFinalized  bool    `json:"is_finalized"`
	IsEnded      bool    `json:"is_ended"`
	TotalVotes   uint64  `json:"total_votes"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	FinalizedAt  *string `json:"finalized_at,omitempty"`
	EndedAt      *string `json:"ended_at,omitempty"`
}

type CampaignListResponse struct {
	Items []CampaignResponse `json:"items"`
}

type NextCampaignIDResponse struct {
	NextCampaignID uint64 `json:"next_campaign_id"`
}

type ActiveCampaignResponse struct {
	Active   bool              `json:"active"`
	Campaign *CampaignResponse `json:"campaign,omitempty"`
}

type BasicResultsResponse struct {
	CampaignID     uint64   `json:"campaign_id"`
	Choices        []string `json:"choices"`
	Votes          []uint64 `json:"votes"`
	SingleVoteOnly bool     `json:"single_vote_only"`
	TotalVotes     uint64   `json:"total_votes"`
}

type PositionResponse struct {
	PositionIndex  uint64 `json:"position_index"`
	Name           string `json:"name"`
	MaxSelections  uint8  `json:"max_selections"`
	CandidateCount uint64 `json:"candidate_count"`
}

type CandidateResponse struct {
	CandidateID   uint64 `json:"candidate_id"`
	Name          string `json:"name"`
	PositionIndex uint64 `json:"position_index"`
	Votes         uint64 `json:"votes"`
}

type BallotResultsResponse struct {
	CampaignID uint64              `json:"campaign_id"`
	Positions  []PositionResponse  `json:"positions"`
	Candidates []CandidateResponse `json:"candidates"`
	TotalVotes uint64              `json:"total_votes"`
}

type AddPositionResponse struct {
	CampaignID    uint64 `json:"campaign_id"`
	PositionIndex uint64 `json:"position_index"`
}

type AddCandidatesResponse struct {
	CampaignID    uint64   `json:"campaign_id"`
	PositionIndex uint64   `json:"position_index"`
	CandidateIDs  []uint64 `json:"candidate_ids"`
}

type VoteResponse struct {
	CampaignID uint64 `json:"campaign_id"`
	Voter      string `json:"voter"`
	TotalVotes uint64 `json:"total_votes"`
	Reward     string `json:"reward"`
}

type FinalResultResponse struct {
	CampaignID   uint64              `json:"campaign_id"`
	CampaignType string              `json:"campaign_type"`
	Choices      []string            `json:"choices,omitempty"`
	ChoiceVotes  []uint64            `json:"choice_votes,omitempty"`
	Positions    []PositionResponse  `json:"positions,omitempty"`
	Candidates   []CandidateResponse `json:"candidates,omitempty"`
	TotalVotes   uint64              `json:"total_votes"`
	EndedAt      string              `json:"ended_at"`
}

type VoterStatusResponse struct {
	CampaignID uint64 `json:"campaign_id"`
	Voter      string `json:"voter"`
	HasVoted   bool   `json:"has_voted"`
}

type TotalVotesResponse struct {
	CampaignID uint64 `json:"campaign_id"`
	TotalVotes uint64 `json:"total_votes"`
}

type EligibilityResponse struct {
	Address        string `json:"address"`
	Balance        string `json:"balance"`
	Eligible       bool   `json:"eligible"`
	LegacyRegistry string `json:"legacy_registry,omitempty"`
}

type RewardQuoteResponse struct {
	Balance string `json:"balance"`
	Reward  string `json:"reward"`
}
