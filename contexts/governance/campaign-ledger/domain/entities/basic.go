package entities

// BasicState holds the choices of a basic poll and their index-aligned tallies.
type BasicState struct {
	CampaignID     uint64
	Choices        []string
	Votes          []uint64
	SingleVoteOnly bool
}

func NewBasicState(campaignID uint64, choices []string, singleVoteOnly bool) BasicState {
	return BasicState{
		CampaignID:     campaignID,
		Choices:        append([]string(nil), choices...),
		Votes:          make([]uint64, len(choices)),
		SingleVoteOnly: singleVoteOnly,
	}
}

func (s BasicState) Clone() BasicState {
	return BasicState{
		CampaignID:     s.CampaignID,
		Choices:        append([]string(nil), s.Choices...),
		Votes:          append([]uint64(nil), s.Votes...),
		SingleVoteOnly: s.SingleVoteOnly,
	}
}

// Tally increments one counter per occurrence; repeated indices count twice.
func (s *BasicState) Tally(indices []uint64) {
	for _, index := range indices {
		s.Votes[index]++
	}
}
