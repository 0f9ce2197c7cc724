package httpserver

import (
	"bytes"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	campaignledger "ballotbox/contexts/governance/campaign-ledger"
	ledgerhttp "ballotbox/contexts/governance/campaign-ledger/transport/http"

	"github.com/ethereum/go-ethereum/common"
)

var (
	testLedger  = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	testCreator = common.HexToAddress("0x1000000000000000000000000000000000000001")
	testVoter   = common.HexToAddress("0x2000000000000000000000000000000000000001")
)

func newTestServer(t *testing.T) (*Server, campaignledger.Module) {
	t.Helper()
	module := campaignledger.NewInMemoryModule(testLedger, big.NewInt(0), nil)
	module.Token.Mint(testLedger, big.NewInt(1_000_000))
	return New(module, nil, ":0"), module
}

func doRequest(t *testing.T, server *Server, method string, path string, caller *common.Address, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("encode body failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req.Header.Set(callerHeader, caller.Hex())
	}
	rec := httptest.NewRecorder()
	server.mux.ServeHTTP(rec, req)
	return rec
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response failed: %v (body=%s)", err, rec.Body.String())
	}
	return out
}

func TestBasicCampaignOverHTTP(t *testing.T) {
	server, module := newTestServer(t)
	module.Token.Mint(testVoter, big.NewInt(10_000))

	rec := doRequest(t, server, http.MethodPost, "/v1/campaigns", &testCreator, ledgerhttp.CreateCampaignRequest{
		Description:  "Pick a mascot",
		CampaignType: "basic",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	created := decodeResponse[ledgerhttp.CampaignResponse](t, rec)
	if created.CampaignID != 1 || created.CampaignType != "basic" {
		t.Fatalf("unexpected campaign %+v", created)
	}

	rec = doRequest(t, server, http.MethodPost, "/v1/campaigns/1/basic", &testCreator, ledgerhttp.SetupBasicRequest{
		Choices:        []string{"Gopher", "Crab"},
		SingleVoteOnly: true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected setup 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, server, http.MethodPost, "/v1/campaigns/1/activate", &testCreator, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected activate 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, server, http.MethodPost, "/v1/campaigns/1/basic/votes", &testVoter, ledgerhttp.BasicVoteRequest{
		ChoiceIndices: []uint64{0},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected vote 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	vote := decodeResponse[ledgerhttp.VoteResponse](t, rec)
	if vote.Reward != "16" || vote.TotalVotes != 1 {
		t.Fatalf("unexpected vote response %+v", vote)
	}

	rec = doRequest(t, server, http.MethodPost, "/v1/campaigns/1/basic/votes", &testVoter, ledgerhttp.BasicVoteRequest{
		ChoiceIndices: []uint64{1},
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected duplicate vote 409, got %d", rec.Code)
	}
	if errResp := decodeResponse[ledgerhttp.ErrorResponse](t, rec); errResp.Code != "already_voted" {
		t.Fatalf("expected already_voted code, got %s", errResp.Code)
	}

	rec = doRequest(t, server, http.MethodGet, "/v1/campaigns/1/basic/results", nil, nil)
	results := decodeResponse[ledgerhttp.BasicResultsResponse](t, rec)
	if len(results.Votes) != 2 || results.Votes[0] != 1 || results.Votes[1] != 0 {
		t.Fatalf("unexpected results %+v", results)
	}

	rec = doRequest(t, server, http.MethodGet, "/v1/campaigns/1/voters/"+testVoter.Hex(), nil, nil)
	status := decodeResponse[ledgerhttp.VoterStatusResponse](t, rec)
	if !status.HasVoted {
		t.Fatalf("expected voter status to report a vote")
	}

	rec = doRequest(t, server, http.MethodGet, "/v1/campaigns/1/final-results", nil, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected final results 409 before end, got %d", rec.Code)
	}
	rec = doRequest(t, server, http.MethodPost, "/v1/campaigns/1/end", &testCreator, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected end 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, server, http.MethodGet, "/v1/campaigns/1/final-results", nil, nil)
	final := decodeResponse[ledgerhttp.FinalResultResponse](t, rec)
	if final.TotalVotes != 1 || final.ChoiceVotes[0] != 1 {
		t.Fatalf("unexpected final result %+v", final)
	}
}

func TestBallotCampaignOverHTTP(t *testing.T) {
	server, module := newTestServer(t)
	module.Token.Mint(testVoter, big.NewInt(1_000_000))

	doRequest(t, server, http.MethodPost, "/v1/campaigns", &testCreator, ledgerhttp.CreateCampaignRequest{CampaignType: "ballot"})
	rec := doRequest(t, server, http.MethodPost, "/v1/campaigns/1/ballot/positions", &testCreator, ledgerhttp.AddPositionRequest{
		Name:          "Chair",
		MaxSelections: 1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected add position 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, server, http.MethodPost, "/v1/campaigns/1/ballot/positions/0/candidates", &testCreator, ledgerhttp.AddCandidatesRequest{
		Names: []string{"Ada", "Grace"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected add candidates 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	added := decodeResponse[ledgerhttp.AddCandidatesResponse](t, rec)
	if len(added.CandidateIDs) != 2 || added.CandidateIDs[1] != 1 {
		t.Fatalf("unexpected candidate ids %v", added.CandidateIDs)
	}

	rec = doRequest(t, server, http.MethodPost, "/v1/campaigns/1/ballot/finalize", &testCreator, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected finalize 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	doRequest(t, server, http.MethodPost, "/v1/campaigns/1/activate", &testCreator, nil)

	rec = doRequest(t, server, http.MethodPost, "/v1/campaigns/1/ballot/votes", &testVoter, ledgerhttp.BallotVoteRequest{
		CandidateIDs: []uint64{0, 1},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected selection limit 400, got %d", rec.Code)
	}
	rec = doRequest(t, server, http.MethodPost, "/v1/campaigns/1/ballot/votes", &testVoter, ledgerhttp.BallotVoteRequest{
		CandidateIDs: []uint64{1},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ballot vote 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if vote := decodeResponse[ledgerhttp.VoteResponse](t, rec); vote.Reward != "1618" {
		t.Fatalf("expected reward 1618, got %s", vote.Reward)
	}

	rec = doRequest(t, server, http.MethodGet, "/v1/campaigns/1/ballot/results", nil, nil)
	results := decodeResponse[ledgerhttp.BallotResultsResponse](t, rec)
	if results.Candidates[1].Votes != 1 || results.Candidates[0].Votes != 0 {
		t.Fatalf("unexpected ballot results %+v", results)
	}

	rec = doRequest(t, server, http.MethodGet, "/v1/campaigns/active", nil, nil)
	active := decodeResponse[ledgerhttp.ActiveCampaignResponse](t, rec)
	if !active.Active || active.Campaign == nil || active.Campaign.CampaignID != 1 {
		t.Fatalf("unexpected active campaign %+v", active)
	}
}

func TestLedgerErrorMapping(t *testing.T) {
	server, _ := newTestServer(t)
	doRequest(t, server, http.MethodPost, "/v1/campaigns", &testCreator, ledgerhttp.CreateCampaignRequest{CampaignType: "basic"})
	other := common.HexToAddress("0x1000000000000000000000000000000000000009")

	tests := []struct {
		name   string
		method string
		path   string
		caller *common.Address
		body   any
		status int
		code   string
	}{
		{name: "missing caller", method: http.MethodPost, path: "/v1/campaigns", body: ledgerhttp.CreateCampaignRequest{CampaignType: "basic"}, status: http.StatusUnauthorized, code: "missing_caller"},
		{name: "undefined type", method: http.MethodPost, path: "/v1/campaigns", caller: &testCreator, body: ledgerhttp.CreateCampaignRequest{CampaignType: "poll"}, status: http.StatusBadRequest, code: "undefined_campaign_type"},
		{name: "unknown campaign", method: http.MethodGet, path: "/v1/campaigns/42", status: http.StatusNotFound, code: "invalid_campaign_id"},
		{name: "zero campaign", method: http.MethodGet, path: "/v1/campaigns/0", status: http.StatusNotFound, code: "invalid_campaign_id"},
		{name: "non numeric id", method: http.MethodGet, path: "/v1/campaigns/abc", status: http.StatusBadRequest, code: "invalid_campaign_id"},
		{name: "not creator", method: http.MethodPost, path: "/v1/campaigns/1/activate", caller: &other, status: http.StatusForbidden, code: "not_campaign_creator"},
		{name: "type mismatch", method: http.MethodPost, path: "/v1/campaigns/1/ballot/finalize", caller: &testCreator, status: http.StatusConflict, code: "campaign_type_mismatch"},
		{name: "not eligible", method: http.MethodPost, path: "/v1/campaigns/1/basic/votes", caller: &other, body: ledgerhttp.BasicVoteRequest{ChoiceIndices: []uint64{0}}, status: http.StatusForbidden, code: "not_eligible"},
		{name: "bad balance", method: http.MethodGet, path: "/v1/rewards/quote?balance=-1", status: http.StatusBadRequest, code: "invalid_balance"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, server, tc.method, tc.path, tc.caller, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, rec.Code, rec.Body.String())
			}
			if errResp := decodeResponse[ledgerhttp.ErrorResponse](t, rec); errResp.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, errResp.Code)
			}
		})
	}
}

func TestReadOnlyEndpoints(t *testing.T) {
	server, module := newTestServer(t)
	module.Token.Mint(testVoter, big.NewInt(5))

	rec := doRequest(t, server, http.MethodGet, "/v1/campaigns/next-id", nil, nil)
	if next := decodeResponse[ledgerhttp.NextCampaignIDResponse](t, rec); next.NextCampaignID != 1 {
		t.Fatalf("expected next id 1, got %d", next.NextCampaignID)
	}

	rec = doRequest(t, server, http.MethodGet, "/v1/eligibility/"+testVoter.Hex(), nil, nil)
	eligibility := decodeResponse[ledgerhttp.EligibilityResponse](t, rec)
	if !eligibility.Eligible || eligibility.Balance != "5" {
		t.Fatalf("unexpected eligibility %+v", eligibility)
	}

	rec = doRequest(t, server, http.MethodGet, "/v1/rewards/quote?balance=1000000000", nil, nil)
	if quote := decodeResponse[ledgerhttp.RewardQuoteResponse](t, rec); quote.Reward != "1618000" {
		t.Fatalf("expected reward 1618000, got %s", quote.Reward)
	}

	rec = doRequest(t, server, http.MethodGet, "/v1/campaigns/active", nil, nil)
	if active := decodeResponse[ledgerhttp.ActiveCampaignResponse](t, rec); active.Active {
		t.Fatalf("expected no active campaign")
	}

	rec = doRequest(t, server, http.MethodGet, "/v1/campaigns", nil, nil)
	if list := decodeResponse[ledgerhttp.CampaignListResponse](t, rec); len(list.Items) != 0 {
		t.Fatalf("expected empty campaign list, got %d", len(list.Items))
	}
}
