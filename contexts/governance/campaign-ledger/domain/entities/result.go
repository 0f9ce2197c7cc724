package entities

import "time"

// FinalResult is the archived snapshot taken when a campaign ends. It is
// written once and never updated.
type FinalResult struct {
	CampaignID     uint64
	Type           CampaignType
	Choices        []string
	ChoiceVotes    []uint64
	Positions      []Position
	Candidates     []Candidate
	CandidateVotes []uint64
	TotalVotes     uint64
	EndedAt        time.Time
}

func NewBasicFinalResult(campaign Campaign, state BasicState, endedAt time.Time) FinalResult {
	snapshot := state.Clone()
	return FinalResult{
		CampaignID:  campaign.ID,
		Type:        CampaignTypeBasic,
		Choices:     snapshot.Choices,
		ChoiceVotes: snapshot.Votes,
		TotalVotes:  campaign.TotalVotes,
		EndedAt:     endedAt.UTC(),
	}
}

func NewBallotFinalResult(campaign Campaign, state BallotState, endedAt time.Time) FinalResult {
	snapshot := state.Clone()
	return FinalResult{
		CampaignID:     campaign.ID,
		Type:           CampaignTypeBallot,
		Positions:      snapshot.Positions,
		Candidates:     snapshot.Candidates,
		CandidateVotes: snapshot.Votes,
		TotalVotes:     campaign.TotalVotes,
		EndedAt:        endedAt.UTC(),
	}
}

func (r FinalResult) Clone() FinalResult {
	out := r
	out.Choices = append([]string(nil), r.Choices...)
	out.ChoiceVotes = append([]uint64(nil), r.ChoiceVotes...)
	out.Positions = append([]Position(nil), r.Positions...)
	out.Candidates = append([]Candidate(nil), r.Candidates...)
	out.CandidateVotes = append([]uint64(nil), r.CandidateVotes...)
	return out
}
