package errors

import "errors"

var (
	ErrInvalidCampaignID             = errors.New("campaign does not exist")
	ErrUndefinedCampaignType         = errors.New("campaign type must be basic or ballot")
	ErrNotCampaignCreator            = errors.New("caller is not the campaign creator")
	ErrCampaignTypeMismatch          = errors.New("operation does not match campaign type")
	ErrCampaignAlreadyFinalized      = errors.New("campaign setup is already finalized")
	ErrCampaignNotFinalized          = errors.New("campaign setup is not finalized")
	ErrCampaignNotActive             = errors.New("campaign is not active")
	ErrCampaignAlreadyEnded          = errors.New("campaign has already ended")
	ErrCampaignNotEnded              = errors.New("campaign has not ended")
	ErrAlreadyVoted                  = errors.New("voter has already voted in this campaign")
	ErrNotEligible                   = errors.New("voter holds no governance tokens")
	ErrEmptyChoiceOrCandidateList    = errors.New("at least one choice, candidate or selection is required")
	ErrInvalidChoiceOrCandidateIndex = errors.New("choice, candidate or position index out of range")
	ErrDuplicateCandidateSelection   = errors.New("candidate selected more than once")
	ErrSelectionLimitExceeded        = errors.New("selection exceeds position limit")
	ErrEmptyName                     = errors.New("name must not be empty")
	ErrInvalidMaxSelections          = errors.New("max selections must be positive")
	ErrInvalidCaller                 = errors.New("caller address is required")
	ErrInsufficientAllowance         = errors.New("token allowance below creation fee")
	ErrFeeTransferFailed             = errors.New("creation fee transfer failed")
	ErrRewardTransferFailed          = errors.New("voter reward transfer failed")
	ErrConflict                      = errors.New("ledger conflict")
)
