package entities

type Position struct {
	Name           string
	MaxSelections  uint8
	CandidateCount uint64
}

type Candidate struct {
	Name          string
	PositionIndex uint64
}

// BallotState stores positions and the flat candidate list. A candidate's
// slice index is its global id and Votes is aligned with Candidates.
type BallotState struct {
	CampaignID uint64
	Positions  []Position
	Candidates []Candidate
	Votes      []uint64
}

func NewBallotState(campaignID uint64) BallotState {
	return BallotState{CampaignID: campaignID}
}

func (s BallotState) Clone() BallotState {
	return BallotState{
		CampaignID: s.CampaignID,
		Positions:  append([]Position(nil), s.Positions...),
		Candidates: append([]Candidate(nil), s.Candidates...),
		Votes:      append([]uint64(nil), s.Votes...),
	}
}

func (s *BallotState) AddPosition(name string, maxSelections uint8) uint64 {
	s.Positions = append(s.Positions, Position{Name: name, MaxSelections: maxSelections})
	return uint64(len(s.Positions) - 1)
}

func (s *BallotState) AddCandidate(name string, positionIndex uint64) uint64 {
	s.Candidates = append(s.Candidates, Candidate{Name: name, PositionIndex: positionIndex})
	s.Votes = append(s.Votes, 0)
	s.Positions[positionIndex].CandidateCount++
	return uint64(len(s.Candidates) - 1)
}

func (s *BallotState) ResetVotes() {
	s.Votes = make([]uint64, len(s.Candidates))
}

// SelectionsPerPosition counts how many of the given candidate ids fall under
// each position. Ids must already be bounds checked.
func (s BallotState) SelectionsPerPosition(candidateIDs []uint64) map[uint64]int {
	counts := make(map[uint64]int, len(s.Positions))
	for _, id := range candidateIDs {
		counts[s.Candidates[id].PositionIndex]++
	}
	return counts
}

func (s *BallotState) Tally(candidateIDs []uint64) {
	for _, id := range candidateIDs {
		s.Votes[id]++
	}
}
