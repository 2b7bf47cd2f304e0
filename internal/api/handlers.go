package api

import (
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/go-chi/chi/v5"

	"github.com/stakewarden-io/nft-staking-engine/internal/types"
)

type stakeRequest struct {
	Staker     string `json:"staker"`
	Collection string `json:"collection"`
	ItemID     uint64 `json:"itemId"`
}

type itemIndexRequest struct {
	Staker    string `json:"staker"`
	ItemIndex uint64 `json:"itemIndex"`
}

type claimRequest struct {
	Staker string `json:"staker"`
}

type setRewardRateRequest struct {
	Caller  string `json:"caller"`
	NewRate string `json:"newRate"`
}

type setStepsRequest struct {
	Caller   string `json:"caller"`
	NewSteps uint64 `json:"newSteps"`
}

type setCollectionRequest struct {
	Caller     string `json:"caller"`
	Collection string `json:"collection"`
	Allowed    bool   `json:"allowed"`
}

type callerRequest struct {
	Caller string `json:"caller"`
}

type eventResponse struct {
	EventType string `json:"eventType"`
	Step      uint64 `json:"step"`
	Payload   any    `json:"payload"`
}

func toEventResponse(event *types.Event) eventResponse {
	return eventResponse{
		EventType: event.Type.String(),
		Step:      event.Step,
		Payload:   event.Payload,
	}
}

type stakedItemResponse struct {
	Collection     string `json:"collection"`
	ItemID         uint64 `json:"itemId"`
	State          string `json:"state"`
	UnstakedAtStep uint64 `json:"unstakedAtStep,omitempty"`
}

type accountResponse struct {
	Staker            string               `json:"staker"`
	UnclaimedReward   string               `json:"unclaimedReward"`
	PendingReward     string               `json:"pendingReward"`
	LastClaimStep     uint64               `json:"lastClaimStep"`
	ActiveStakedCount uint64               `json:"activeStakedCount"`
	Items             []stakedItemResponse `json:"items"`
}

type ledgerResponse struct {
	RewardRatePerStep       string   `json:"rewardRatePerStep"`
	ClaimDelaySteps         uint64   `json:"claimDelaySteps"`
	WithdrawalCooldownSteps uint64   `json:"withdrawalCooldownSteps"`
	VaultAddress            string   `json:"vaultAddress"`
	Paused                  bool     `json:"paused"`
	GlobalIndex             string   `json:"globalIndex"`
	LastUpdatedStep         uint64   `json:"lastUpdatedStep"`
	TotalActiveStaked       uint64   `json:"totalActiveStaked"`
	AllowedCollections      []string `json:"allowedCollections"`
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.service.HealthCheck(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			ErrorCode: "SERVICE_UNAVAILABLE",
			Message:   "database is unreachable",
		})
		return
	}
	writeData(w, "ok")
}

func (s *Server) handleStake(w http.ResponseWriter, r *http.Request) {
	var req stakeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Staker == "" {
		badRequest(w, "staker is required")
		return
	}
	event, err := s.service.Stake(r.Context(), req.Staker, req.Collection, req.ItemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, toEventResponse(event))
}

func (s *Server) handleUnstake(w http.ResponseWriter, r *http.Request) {
	var req itemIndexRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Staker == "" {
		badRequest(w, "staker is required")
		return
	}
	event, err := s.service.Unstake(r.Context(), req.Staker, req.ItemIndex)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, toEventResponse(event))
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req itemIndexRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Staker == "" {
		badRequest(w, "staker is required")
		return
	}
	event, err := s.service.Withdraw(r.Context(), req.Staker, req.ItemIndex)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, toEventResponse(event))
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Staker == "" {
		badRequest(w, "staker is required")
		return
	}
	event, err := s.service.Claim(r.Context(), req.Staker)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, toEventResponse(event))
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	staker := chi.URLParam(r, "staker")

	account, ok := s.service.Ledger().AccountSnapshot(staker)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			ErrorCode: "NOT_FOUND",
			Message:   "staker account not found",
		})
		return
	}

	items := make([]stakedItemResponse, len(account.Items))
	for i, item := range account.Items {
		items[i] = stakedItemResponse{
			Collection:     item.Collection,
			ItemID:         item.ItemID,
			State:          types.ItemStateFor(item.UnstakedAtStep).String(),
			UnstakedAtStep: item.UnstakedAtStep,
		}
	}

	writeData(w, accountResponse{
		Staker:            staker,
		UnclaimedReward:   account.UnclaimedReward.String(),
		PendingReward:     s.service.Ledger().PendingReward(staker).String(),
		LastClaimStep:     account.LastClaimStep,
		ActiveStakedCount: account.ActiveStakedCount,
		Items:             items,
	})
}

func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	stakeLedger := s.service.Ledger()
	params := stakeLedger.Params()
	index := stakeLedger.GlobalIndex()

	writeData(w, ledgerResponse{
		RewardRatePerStep:       params.RewardRatePerStep.String(),
		ClaimDelaySteps:         params.ClaimDelaySteps,
		WithdrawalCooldownSteps: params.WithdrawalCooldownSteps,
		VaultAddress:            params.VaultAddress,
		Paused:                  stakeLedger.Paused(),
		GlobalIndex:             index.Index.String(),
		LastUpdatedStep:         index.LastUpdatedStep,
		TotalActiveStaked:       stakeLedger.TotalActiveStaked(),
		AllowedCollections:      stakeLedger.AllowedCollections(),
	})
}

func (s *Server) handleSetRewardRate(w http.ResponseWriter, r *http.Request) {
	var req setRewardRateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	newRate, err := sdkmath.ParseUint(req.NewRate)
	if err != nil {
		badRequest(w, "newRate must be an unsigned integer")
		return
	}
	event, err := s.service.SetRewardRate(r.Context(), req.Caller, newRate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, toEventResponse(event))
}

func (s *Server) handleSetClaimDelay(w http.ResponseWriter, r *http.Request) {
	var req setStepsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	event, err := s.service.SetClaimDelay(r.Context(), req.Caller, req.NewSteps)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, toEventResponse(event))
}

func (s *Server) handleSetWithdrawalCooldown(w http.ResponseWriter, r *http.Request) {
	var req setStepsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	event, err := s.service.SetWithdrawalCooldown(r.Context(), req.Caller, req.NewSteps)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, toEventResponse(event))
}

func (s *Server) handleSetCollectionAllowed(w http.ResponseWriter, r *http.Request) {
	var req setCollectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	event, err := s.service.SetCollectionAllowed(r.Context(), req.Caller, req.Collection, req.Allowed)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, toEventResponse(event))
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	var req callerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	event, err := s.service.Pause(r.Context(), req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, toEventResponse(event))
}

func (s *Server) handleUnpause(w http.ResponseWriter, r *http.Request) {
	var req callerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	event, err := s.service.Unpause(r.Context(), req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, toEventResponse(event))
}
