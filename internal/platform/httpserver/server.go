package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	campaignledger "ballotbox/contexts/governance/campaign-ledger"
	ledgererrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
	ledgerhttp "ballotbox/contexts/governance/campaign-ledger/transport/http"
	_ "ballotbox/internal/platform/httpserver/docs"

	"github.com/ethereum/go-ethereum/common"
	httpSwagger "github.com/swaggo/http-swagger"
)

// callerHeader carries the wallet address of the authenticated caller. The
// gateway in front of this service owns signature verification.
const callerHeader = "X-Wallet-Address"

type Server struct {
	mux    *http.ServeMux
	http   *http.Server
	logger *slog.Logger
	addr   string
	ledger campaignledger.Module
}

func New(ledger campaignledger.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		ledger: ledger,
	}
	s.registerRoutes()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /v1/campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("GET /v1/campaigns/next-id", s.handleNextCampaignID)
	s.mux.HandleFunc("GET /v1/campaigns/active", s.handleActiveCampaign)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("PUT /v1/campaigns/{campaign_id}/description", s.handleSetDescription)
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/activate", s.handleActivateCampaign)
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/deactivate", s.handleDeactivateCampaign)
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/end", s.handleEndCampaign)

	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/basic", s.handleSetupBasic)
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/basic/votes", s.handleVoteBasic)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}/basic/results", s.handleBasicResults)

	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/ballot/positions", s.handleAddPosition)
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/ballot/positions/{position_index}/candidates", s.handleAddCandidates)
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/ballot/finalize", s.handleFinalizeBallot)
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/ballot/votes", s.handleVoteBallot)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}/ballot/results", s.handleBallotResults)

	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}/final-results", s.handleFinalResults)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}/voters/{address}", s.handleVoterStatus)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}/total-votes", s.handleTotalVotes)

	s.mux.HandleFunc("GET /v1/eligibility/{address}", s.handleEligibility)
	s.mux.HandleFunc("GET /v1/rewards/quote", s.handleRewardQuote)
}

// handleCreateCampaign godoc
// @Summary Create a campaign
// @Description Registers a basic or ballot campaign owned by the caller. Charges the creation fee when one is configured.
// @Tags campaign-ledger
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Caller wallet address"
// @Param request body ledgerhttp.CreateCampaignRequest true "Campaign"
// @Success 201 {object} ledgerhttp.CampaignResponse
// @Failure 400 {object} ledgerhttp.ErrorResponse
// @Failure 402 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns [post]
func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.CreateCampaignRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := s.ledger.Handler.CreateCampaignHandler(r.Context(), caller, req)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleListCampaigns godoc
// @Summary List campaigns
// @Tags campaign-ledger
// @Produce json
// @Success 200 {object} ledgerhttp.CampaignListResponse
// @Router /v1/campaigns [get]
func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.ListCampaignsHandler(r.Context())
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleNextCampaignID godoc
// @Summary Next campaign id
// @Tags campaign-ledger
// @Produce json
// @Success 200 {object} ledgerhttp.NextCampaignIDResponse
// @Router /v1/campaigns/next-id [get]
func (s *Server) handleNextCampaignID(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.NextCampaignIDHandler(r.Context())
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleActiveCampaign godoc
// @Summary Currently active campaign
// @Tags campaign-ledger
// @Produce json
// @Success 200 {object} ledgerhttp.ActiveCampaignResponse
// @Router /v1/campaigns/active [get]
func (s *Server) handleActiveCampaign(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.ActiveCampaignHandler(r.Context())
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetCampaign godoc
// @Summary Get a campaign
// @Tags campaign-ledger
// @Produce json
// @Param campaign_id path int true "Campaign id"
// @Success 200 {object} ledgerhttp.CampaignResponse
// @Failure 404 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id} [get]
func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathUint(w, r, "campaign_id")
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.GetCampaignHandler(r.Context(), campaignID)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSetDescription godoc
// @Summary Replace a campaign description
// @Tags campaign-ledger
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Caller wallet address"
// @Param campaign_id path int true "Campaign id"
// @Param request body ledgerhttp.SetDescriptionRequest true "Description"
// @Success 200 {object} ledgerhttp.CampaignResponse
// @Failure 403 {object} ledgerhttp.ErrorResponse
// @Failure 404 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id}/description [put]
func (s *Server) handleSetDescription(w http.ResponseWriter, r *http.Request) {
	caller, campaignID, ok := callerAndCampaign(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.SetDescriptionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := s.ledger.Handler.SetDescriptionHandler(r.Context(), caller, campaignID, req)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleActivateCampaign godoc
// @Summary Activate a campaign
// @Description Makes the campaign the single active one; any previously active campaign is deactivated.
// @Tags campaign-ledger
// @Produce json
// @Param X-Wallet-Address header string true "Caller wallet address"
// @Param campaign_id path int true "Campaign id"
// @Success 200 {object} ledgerhttp.CampaignResponse
// @Failure 403 {object} ledgerhttp.ErrorResponse
// @Failure 409 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id}/activate [post]
func (s *Server) handleActivateCampaign(w http.ResponseWriter, r *http.Request) {
	caller, campaignID, ok := callerAndCampaign(w, r)
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.ActivateCampaignHandler(r.Context(), caller, campaignID)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDeactivateCampaign godoc
// @Summary Deactivate a campaign
// @Tags campaign-ledger
// @Produce json
// @Param X-Wallet-Address header string true "Caller wallet address"
// @Param campaign_id path int true "Campaign id"
// @Success 200 {object} ledgerhttp.CampaignResponse
// @Failure 403 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id}/deactivate [post]
func (s *Server) handleDeactivateCampaign(w http.ResponseWriter, r *http.Request) {
	caller, campaignID, ok := callerAndCampaign(w, r)
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.DeactivateCampaignHandler(r.Context(), caller, campaignID)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleEndCampaign godoc
// @Summary End a campaign and archive its tally
// @Tags campaign-ledger
// @Produce json
// @Param X-Wallet-Address header string true "Caller wallet address"
// @Param campaign_id path int true "Campaign id"
// @Success 200 {object} ledgerhttp.FinalResultResponse
// @Failure 403 {object} ledgerhttp.ErrorResponse
// @Failure 409 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id}/end [post]
func (s *Server) handleEndCampaign(w http.ResponseWriter, r *http.Request) {
	caller, campaignID, ok := callerAndCampaign(w, r)
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.EndCampaignHandler(r.Context(), caller, campaignID)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSetupBasic godoc
// @Summary Configure and finalize a basic poll
// @Tags campaign-ledger
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Caller wallet address"
// @Param campaign_id path int true "Campaign id"
// @Param request body ledgerhttp.SetupBasicRequest true "Choices"
// @Success 200 {object} ledgerhttp.BasicResultsResponse
// @Failure 400 {object} ledgerhttp.ErrorResponse
// @Failure 409 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id}/basic [post]
func (s *Server) handleSetupBasic(w http.ResponseWriter, r *http.Request) {
	caller, campaignID, ok := callerAndCampaign(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.SetupBasicRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := s.ledger.Handler.SetupBasicHandler(r.Context(), caller, campaignID, req)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleVoteBasic godoc
// @Summary Cast a basic poll vote
// @Description Records the vote and pays the voter reward in one unit of work.
// @Tags campaign-ledger
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Voter wallet address"
// @Param campaign_id path int true "Campaign id"
// @Param request body ledgerhttp.BasicVoteRequest true "Choice indices"
// @Success 200 {object} ledgerhttp.VoteResponse
// @Failure 400 {object} ledgerhttp.ErrorResponse
// @Failure 403 {object} ledgerhttp.ErrorResponse
// @Failure 409 {object} ledgerhttp.ErrorResponse
// @Failure 502 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id}/basic/votes [post]
func (s *Server) handleVoteBasic(w http.ResponseWriter, r *http.Request) {
	voter, campaignID, ok := callerAndCampaign(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.BasicVoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := s.ledger.Handler.VoteBasicHandler(r.Context(), voter, campaignID, req)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleBasicResults godoc
// @Summary Live basic poll tally
// @Tags campaign-ledger
// @Produce json
// @Param campaign_id path int true "Campaign id"
// @Success 200 {object} ledgerhttp.BasicResultsResponse
// @Failure 404 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id}/basic/results [get]
func (s *Server) handleBasicResults(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathUint(w, r, "campaign_id")
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.BasicResultsHandler(r.Context(), campaignID)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAddPosition godoc
// @Summary Add a ballot position
// @Tags campaign-ledger
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Caller wallet address"
// @Param campaign_id path int true "Campaign id"
// @Param request body ledgerhttp.AddPositionRequest true "Position"
// @Success 201 {object} ledgerhttp.AddPositionResponse
// @Failure 400 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id}/ballot/positions [post]
func (s *Server) handleAddPosition(w http.ResponseWriter, r *http.Request) {
	caller, campaignID, ok := callerAndCampaign(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.AddPositionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := s.ledger.Handler.AddPositionHandler(r.Context(), caller, campaignID, req)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleAddCandidates godoc
// @Summary Add candidates under a ballot position
// @Tags campaign-ledger
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Caller wallet address"
// @Param campaign_id path int true "Campaign id"
// @Param position_index path int true "Position index"
// @Param request body ledgerhttp.AddCandidatesRequest true "Candidate names"
// @Success 201 {object} ledgerhttp.AddCandidatesResponse
// @Failure 400 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id}/ballot/positions/{position_index}/candidates [post]
func (s *Server) handleAddCandidates(w http.ResponseWriter, r *http.Request) {
	caller, campaignID, ok := callerAndCampaign(w, r)
	if !ok {
		return
	}
	positionIndex, ok := pathUint(w, r, "position_index")
	if !ok {
		return
	}
	var req ledgerhttp.AddCandidatesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := s.ledger.Handler.AddCandidatesHandler(r.Context(), caller, campaignID, positionIndex, req)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleFinalizeBallot godoc
// @Summary Finalize ballot setup
// @Tags campaign-ledger
// @Produce json
// @Param X-Wallet-Address header string true "Caller wallet address"
// @Param campaign_id path int true "Campaign id"
// @Success 200 {object} ledgerhttp.BallotResultsResponse
// @Failure 409 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id}/ballot/finalize [post]
func (s *Server) handleFinalizeBallot(w http.ResponseWriter, r *http.Request) {
	caller, campaignID, ok := callerAndCampaign(w, r)
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.FinalizeBallotHandler(r.Context(), caller, campaignID)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleVoteBallot godoc
// @Summary Cast a ballot
// @Tags campaign-ledger
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Voter wallet address"
// @Param campaign_id path int true "Campaign id"
// @Param request body ledgerhttp.BallotVoteRequest true "Candidate ids"
// @Success 200 {object} ledgerhttp.VoteResponse
// @Failure 400 {object} ledgerhttp.ErrorResponse
// @Failure 403 {object} ledgerhttp.ErrorResponse
// @Failure 409 {object} ledgerhttp.ErrorResponse
// @Failure 502 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id}/ballot/votes [post]
func (s *Server) handleVoteBallot(w http.ResponseWriter, r *http.Request) {
	voter, campaignID, ok := callerAndCampaign(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.BallotVoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := s.ledger.Handler.VoteBallotHandler(r.Context(), voter, campaignID, req)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleBallotResults godoc
// @Summary Live ballot tally
// @Tags campaign-ledger
// @Produce json
// @Param campaign_id path int true "Campaign id"
// @Success 200 {object} ledgerhttp.BallotResultsResponse
// @Failure 404 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id}/ballot/results [get]
func (s *Server) handleBallotResults(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathUint(w, r, "campaign_id")
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.BallotResultsHandler(r.Context(), campaignID)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleFinalResults godoc
// @Summary Archived final results
// @Tags campaign-ledger
// @Produce json
// @Param campaign_id path int true "Campaign id"
// @Success 200 {object} ledgerhttp.FinalResultResponse
// @Failure 409 {object} ledgerhttp.ErrorResponse
// @Router /v1/campaigns/{campaign_id}/final-results [get]
func (s *Server) handleFinalResults(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathUint(w, r, "campaign_id")
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.FinalResultHandler(r.Context(), campaignID)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleVoterStatus godoc
// @Summary Whether an address has voted
// @Tags campaign-ledger
// @Produce json
// @Param campaign_id path int true "Campaign id"
// @Param address path string true "Voter address"
// @Success 200 {object} ledgerhttp.VoterStatusResponse
// @Router /v1/campaigns/{campaign_id}/voters/{address} [get]
func (s *Server) handleVoterStatus(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathUint(w, r, "campaign_id")
	if !ok {
		return
	}
	voter, ok := pathAddress(w, r, "address")
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.VoterStatusHandler(r.Context(), campaignID, voter)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleTotalVotes godoc
// @Summary Number of voters in a campaign
// @Tags campaign-ledger
// @Produce json
// @Param campaign_id path int true "Campaign id"
// @Success 200 {object} ledgerhttp.TotalVotesResponse
// @Router /v1/campaigns/{campaign_id}/total-votes [get]
func (s *Server) handleTotalVotes(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathUint(w, r, "campaign_id")
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.TotalVotesHandler(r.Context(), campaignID)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleEligibility godoc
// @Summary Voting eligibility of an address
// @Tags campaign-ledger
// @Produce json
// @Param address path string true "Wallet address"
// @Success 200 {object} ledgerhttp.EligibilityResponse
// @Router /v1/eligibility/{address} [get]
func (s *Server) handleEligibility(w http.ResponseWriter, r *http.Request) {
	address, ok := pathAddress(w, r, "address")
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.EligibilityHandler(r.Context(), address)
	if err != nil {
		s.writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRewardQuote godoc
// @Summary Reward for a token balance
// @Tags campaign-ledger
// @Produce json
// @Param balance query string true "Token balance in base units"
// @Success 200 {object} ledgerhttp.RewardQuoteResponse
// @Failure 400 {object} ledgerhttp.ErrorResponse
// @Router /v1/rewards/quote [get]
func (s *Server) handleRewardQuote(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("balance"))
	balance, ok := new(big.Int).SetString(raw, 10)
	if !ok || balance.Sign() < 0 {
		writeLedgerError(w, http.StatusBadRequest, "invalid_balance", "balance must be a non-negative integer")
		return
	}
	writeJSON(w, http.StatusOK, s.ledger.Handler.RewardQuoteHandler(r.Context(), balance))
}

type ledgerErrorMapping struct {
	target error
	status int
	code   string
}

var ledgerErrorMappings = []ledgerErrorMapping{
	{ledgererrors.ErrInvalidCampaignID, http.StatusNotFound, "invalid_campaign_id"},
	{ledgererrors.ErrNotCampaignCreator, http.StatusForbidden, "not_campaign_creator"},
	{ledgererrors.ErrNotEligible, http.StatusForbidden, "not_eligible"},
	{ledgererrors.ErrCampaignTypeMismatch, http.StatusConflict, "campaign_type_mismatch"},
	{ledgererrors.ErrCampaignAlreadyFinalized, http.StatusConflict, "campaign_already_finalized"},
	{ledgererrors.ErrCampaignNotFinalized, http.StatusConflict, "campaign_not_finalized"},
	{ledgererrors.ErrCampaignNotActive, http.StatusConflict, "campaign_not_active"},
	{ledgererrors.ErrCampaignAlreadyEnded, http.StatusConflict, "campaign_already_ended"},
	{ledgererrors.ErrCampaignNotEnded, http.StatusConflict, "campaign_not_ended"},
	{ledgererrors.ErrAlreadyVoted, http.StatusConflict, "already_voted"},
	{ledgererrors.ErrConflict, http.StatusConflict, "conflict"},
	{ledgererrors.ErrUndefinedCampaignType, http.StatusBadRequest, "undefined_campaign_type"},
	{ledgererrors.ErrEmptyChoiceOrCandidateList, http.StatusBadRequest, "empty_choice_or_candidate_list"},
	{ledgererrors.ErrInvalidChoiceOrCandidateIndex, http.StatusBadRequest, "invalid_choice_or_candidate_index"},
	{ledgererrors.ErrDuplicateCandidateSelection, http.StatusBadRequest, "duplicate_candidate_selection"},
	{ledgererrors.ErrSelectionLimitExceeded, http.StatusBadRequest, "selection_limit_exceeded"},
	{ledgererrors.ErrEmptyName, http.StatusBadRequest, "empty_name"},
	{ledgererrors.ErrInvalidMaxSelections, http.StatusBadRequest, "invalid_max_selections"},
	{ledgererrors.ErrInvalidCaller, http.StatusBadRequest, "invalid_caller"},
	{ledgererrors.ErrInsufficientAllowance, http.StatusPaymentRequired, "insufficient_allowance"},
	{ledgererrors.ErrFeeTransferFailed, http.StatusPaymentRequired, "fee_transfer_failed"},
	{ledgererrors.ErrRewardTransferFailed, http.StatusBadGateway, "reward_transfer_failed"},
}

func (s *Server) writeLedgerDomainError(w http.ResponseWriter, err error) {
	for _, mapping := range ledgerErrorMappings {
		if errors.Is(err, mapping.target) {
			if mapping.status >= http.StatusInternalServerError {
				s.logger.Error("ledger request failed upstream",
					"event", "http_ledger_upstream_failed",
					"module", "internal/platform/httpserver",
					"layer", "platform",
					"code", mapping.code,
					"error", err.Error(),
				)
			}
			writeLedgerError(w, mapping.status, mapping.code, err.Error())
			return
		}
	}
	s.logger.Error("ledger request failed",
		"event", "http_ledger_internal_error",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"error", err.Error(),
	)
	writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

func requireCaller(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	raw := strings.TrimSpace(r.Header.Get(callerHeader))
	if raw == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_caller", callerHeader+" header is required")
		return common.Address{}, false
	}
	if !common.IsHexAddress(raw) {
		writeLedgerError(w, http.StatusBadRequest, "invalid_caller", callerHeader+" must be a hex address")
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

func callerAndCampaign(w http.ResponseWriter, r *http.Request) (common.Address, uint64, bool) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return common.Address{}, 0, false
	}
	campaignID, ok := pathUint(w, r, "campaign_id")
	if !ok {
		return common.Address{}, 0, false
	}
	return caller, campaignID, true
}

func pathUint(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(r.PathValue(name)), 10, 64)
	if err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_"+name, name+" must be an unsigned integer")
		return 0, false
	}
	return value, true
}

func pathAddress(w http.ResponseWriter, r *http.Request, name string) (common.Address, bool) {
	raw := strings.TrimSpace(r.PathValue(name))
	if !common.IsHexAddress(raw) {
		writeLedgerError(w, http.StatusBadRequest, "invalid_"+name, name+" must be a hex address")
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
