// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package feed

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bankfeed-io/bankfeed/internal/gocardless"
	"github.com/bankfeed-io/bankfeed/internal/route"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the requisition and account feed endpoints.
func RegisterRoutes(logger log.Logger, r *mux.Router, svc *Service) {
	r.Methods("POST").Path("/requisitions").HandlerFunc(createRequisition(logger, svc))
	r.Methods("GET").Path("/requisitions/{requisitionID}").HandlerFunc(getRequisition(logger, svc))
	r.Methods("DELETE").Path("/requisitions/{requisitionID}").HandlerFunc(deleteRequisition(logger, svc))
	r.Methods("GET").Path("/requisitions/{requisitionID}/accounts").HandlerFunc(getAccounts(logger, svc))
	r.Methods("GET").Path("/requisitions/{requisitionID}/accounts/{accountID}/transactions").HandlerFunc(getTransactions(logger, svc))
}

func getRequisitionID(r *http.Request) string {
	return mux.Vars(r)["requisitionID"]
}

func getAccountID(r *http.Request) string {
	return mux.Vars(r)["accountID"]
}

type createRequisitionRequest struct {
	InstitutionID string `json:"institutionId"`
	Redirect      string `json:"redirect"`
}

func (req createRequisitionRequest) missingFields() error {
	if req.InstitutionID == "" {
		return errors.New("missing institutionId")
	}
	if req.Redirect == "" {
		return errors.New("missing redirect")
	}
	return nil
}

func createRequisition(logger log.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder == nil {
			return
		}

		var req createRequisitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responder.Problem(err)
			return
		}
		if err := req.missingFields(); err != nil {
			responder.Problem(err)
			return
		}

		requisition, err := svc.CreateRequisition(req.InstitutionID, req.Redirect)
		if err != nil {
			respondError(responder, err)
			return
		}
		responder.Log("requisitions", "created requisition", "requisition", requisition.ID, "institution", req.InstitutionID)

		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(requisition)
		})
	}
}

func getRequisition(logger log.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder == nil {
			return
		}

		requisition, err := svc.GetRequisition(getRequisitionID(r))
		if err != nil {
			respondError(responder, err)
			return
		}
		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(requisition)
		})
	}
}

func deleteRequisition(logger log.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder == nil {
			return
		}

		requisitionID := getRequisitionID(r)
		if err := svc.DeleteRequisition(requisitionID); err != nil {
			respondError(responder, err)
			return
		}
		responder.Log("requisitions", "deleted requisition", "requisition", requisitionID)

		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
		})
	}
}

func getAccounts(logger log.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder == nil {
			return
		}

		span := responder.Span()
		defer span.Finish()

		accounts, err := svc.Accounts(r.Context(), getRequisitionID(r))
		if err != nil {
			respondError(responder, err)
			return
		}
		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(accounts)
		})
	}
}

func getTransactions(logger log.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder == nil {
			return
		}

		span := responder.Span()
		defer span.Finish()

		feed, err := svc.Transactions(r.Context(), getRequisitionID(r), getAccountID(r), route.ReadStartDate(r), route.ReadEndDate(r))
		if err != nil {
			respondError(responder, err)
			return
		}
		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(feed)
		})
	}
}

// respondError maps service errors onto HTTP status codes. Anything
// unrecognized falls back to a generic 400 problem.
func respondError(responder *route.Responder, err error) {
	code := http.StatusBadRequest
	switch {
	case errors.Is(err, gocardless.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrRequisitionNotLinked), errors.Is(err, ErrAccountNotLinked):
		code = http.StatusConflict
	case errors.Is(err, gocardless.ErrRateLimit):
		code = http.StatusTooManyRequests
	case errors.Is(err, gocardless.ErrUnknown), errors.Is(err, gocardless.ErrServiceError):
		code = http.StatusBadGateway
	}
	if code == http.StatusBadRequest {
		responder.Problem(err)
		return
	}
	responder.Respond(func(w http.ResponseWriter) {
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{
			"error": err.Error(),
		})
	})
}
