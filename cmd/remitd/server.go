package main

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/app"
	"github.com/iov-one/remittance/coin"
	"github.com/iov-one/remittance/errors"
	"github.com/iov-one/remittance/x/remit"
	"github.com/iov-one/remittance/x/vault"
)

// Server exposes the ledger over HTTP. The transport trusts the caller
// condition declared in each request; verifying real signatures is the job
// of whatever sits in front of this API.
type Server struct {
	ledger  *app.Ledger
	metrics *Metrics
}

func NewServer(ledger *app.Ledger, metrics *Metrics) *Server {
	return &Server{ledger: ledger, metrics: metrics}
}

// Router builds all API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	post := func(path string, h http.HandlerFunc) {
		r.Handle(path, s.metrics.WrapHandler(path, h)).Methods("POST")
	}
	get := func(path string, h http.HandlerFunc) {
		r.Handle(path, s.metrics.WrapHandler(path, h)).Methods("GET")
	}

	post("/remittances", s.handleCreate)
	post("/remittances/redeem", s.handleRedeem)
	post("/remittances/reclaim", s.handleReclaim)
	post("/withdrawals", s.handleWithdraw)
	post("/fees/collect", s.handleCollectFee)
	post("/commitments", s.handleCommitmentPreview)

	get("/remittances/{commitment}", s.handleGetRemittance)
	get("/balances/{address}", s.handleGetBalance)
	get("/events", s.handleListEvents)
	get("/health", s.handleHealth)

	r.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	return r
}

type createRequest struct {
	Caller     remittance.Condition `json:"caller"`
	Recipient  remittance.Address   `json:"recipient"`
	Commitment string               `json:"commitment"`
	Amount     coin.Coin            `json:"amount"`
	Deadline   remittance.UnixTime  `json:"deadline"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrInput, "invalid json"))
		return
	}
	commitment, err := hex.DecodeString(req.Commitment)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrInput, "commitment must be hex"))
		return
	}
	msg := &remit.CreateMsg{
		Source:     req.Caller.Address(),
		Recipient:  req.Recipient,
		Commitment: commitment,
		Amount:     &req.Amount,
		Deadline:   req.Deadline,
	}
	res, err := s.deliver(req.Caller, msg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"commitment": hex.EncodeToString(res.Data),
	})
}

type redeemRequest struct {
	Caller remittance.Condition `json:"caller"`
	Secret string               `json:"secret"`
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrInput, "invalid json"))
		return
	}
	secret, err := hex.DecodeString(req.Secret)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrInput, "secret must be hex"))
		return
	}
	msg := &remit.RedeemMsg{
		Recipient: req.Caller.Address(),
		Secret:    secret,
	}
	res, err := s.deliver(req.Caller, msg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"commitment": hex.EncodeToString(res.Data),
	})
}

type reclaimRequest struct {
	Caller     remittance.Condition `json:"caller"`
	Commitment string               `json:"commitment"`
}

func (s *Server) handleReclaim(w http.ResponseWriter, r *http.Request) {
	var req reclaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrInput, "invalid json"))
		return
	}
	commitment, err := hex.DecodeString(req.Commitment)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrInput, "commitment must be hex"))
		return
	}
	msg := &remit.ReclaimMsg{
		Source:     req.Caller.Address(),
		Commitment: commitment,
	}
	if _, err := s.deliver(req.Caller, msg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reclaimed"})
}

type withdrawRequest struct {
	Caller remittance.Condition `json:"caller"`
	Amount coin.Coin            `json:"amount"`
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrInput, "invalid json"))
		return
	}
	msg := &vault.WithdrawMsg{
		Source: req.Caller.Address(),
		Amount: &req.Amount,
	}
	if _, err := s.deliver(req.Caller, msg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "paid"})
}

func (s *Server) handleCollectFee(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrInput, "invalid json"))
		return
	}
	msg := &vault.CollectFeeMsg{
		Owner:  req.Caller.Address(),
		Amount: &req.Amount,
	}
	if _, err := s.deliver(req.Caller, msg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "collected"})
}

type previewRequest struct {
	Secret    string             `json:"secret"`
	Recipient remittance.Address `json:"recipient"`
}

// handleCommitmentPreview computes the commitment for a secret and recipient
// without touching any state. Senders use it to prepare a create request.
func (s *Server) handleCommitmentPreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrInput, "invalid json"))
		return
	}
	secret, err := hex.DecodeString(req.Secret)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrInput, "secret must be hex"))
		return
	}
	commitment, err := remit.Commitment(secret, req.Recipient, s.ledger.LedgerAddress())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"commitment": hex.EncodeToString(commitment),
	})
}

func (s *Server) handleGetRemittance(w http.ResponseWriter, r *http.Request) {
	commitment, err := hex.DecodeString(mux.Vars(r)["commitment"])
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrInput, "commitment must be hex"))
		return
	}
	rem, err := s.ledger.Remittance(commitment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rem)
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	addr, err := remittance.ParseAddress(mux.Vars(r)["address"])
	if err != nil {
		writeError(w, err)
		return
	}
	amount, err := s.ledger.Balance(addr)
	if err != nil {
		writeError(w, err)
		return
	}
	if amount == nil {
		amount = &coin.Coin{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"owner":  addr,
		"amount": amount,
	})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	entries := s.ledger.Events()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": len(entries),
		"items": entries,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ledger.Configuration(); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "degraded", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"chain_id": s.ledger.ChainID(),
	})
}

// deliver validates the declared caller and executes the message.
func (s *Server) deliver(caller remittance.Condition, msg remittance.Msg) (*remittance.DeliverResult, error) {
	if err := caller.Validate(); err != nil {
		return nil, errors.Wrap(err, "caller")
	}
	res, err := s.ledger.DeliverTx(time.Now().UTC(), []remittance.Condition{caller}, msg)
	s.metrics.ObserveTx(msg.Path(), err)
	return res, err
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps ledger error kinds onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.ErrNotFound.Is(err):
		status = http.StatusNotFound
	case errors.ErrUnauthorized.Is(err):
		status = http.StatusForbidden
	case errors.ErrDuplicate.Is(err), errors.ErrState.Is(err):
		status = http.StatusConflict
	case errors.ErrInput.Is(err), errors.ErrMsg.Is(err), errors.ErrEmpty.Is(err),
		errors.ErrAmount.Is(err), errors.ErrCurrency.Is(err), errors.ErrOverflow.Is(err):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
