package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/stakewarden-io/nft-staking-engine/internal/clients/custody"
	"github.com/stakewarden-io/nft-staking-engine/internal/clients/rewardtoken"
	"github.com/stakewarden-io/nft-staking-engine/internal/db"
	"github.com/stakewarden-io/nft-staking-engine/internal/ledger"
)

type Response struct {
	Data any `json:"data"`
}

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Data: data})
}

// writeError maps engine errors onto HTTP status codes. Validation failures
// are the client's fault, precondition failures describe state the client can
// wait out, and collaborator failures surface as bad gateway since the engine
// itself is healthy.
func writeError(w http.ResponseWriter, err error) {
	var ledgerErr *ledger.Error
	if errors.As(err, &ledgerErr) {
		writeJSON(w, statusForKind(ledgerErr.Kind), ErrorResponse{
			ErrorCode: ledgerErr.Code,
			Message:   ledgerErr.Error(),
		})
		return
	}

	if custody.IsNotOwnerError(err) || custody.IsUnknownItemError(err) ||
		rewardtoken.IsInsufficientFundsError(err) {
		writeJSON(w, http.StatusBadGateway, ErrorResponse{
			ErrorCode: "COLLABORATOR_FAILURE",
			Message:   err.Error(),
		})
		return
	}

	if db.IsNotFoundError(err) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			ErrorCode: "NOT_FOUND",
			Message:   err.Error(),
		})
		return
	}

	log.Error().Err(err).Msg("Unhandled error in request handler")
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		ErrorCode: "INTERNAL_SERVICE_ERROR",
		Message:   "Internal service error",
	})
}

func statusForKind(kind ledger.ErrorKind) int {
	switch kind {
	case ledger.KindValidation:
		return http.StatusBadRequest
	case ledger.KindPrecondition:
		return http.StatusConflict
	case ledger.KindUnauthorized:
		return http.StatusForbidden
	case ledger.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		ErrorCode: "BAD_REQUEST",
		Message:   message,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		badRequest(w, "invalid request body")
		return false
	}
	return true
}
