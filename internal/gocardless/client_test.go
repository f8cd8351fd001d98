// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package gocardless

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

func newTestServer(t *testing.T, handler http.Handler) (*httptest.Server, *apiClient) {
	t.Helper()

	svc := httptest.NewServer(handler)
	t.Cleanup(svc.Close)

	client, ok := NewClient(log.NewNopLogger(), svc.URL, "secret-id", "secret-key", svc.Client()).(*apiClient)
	if !ok {
		t.Fatal("unexpected client type")
	}
	return svc, client
}

func tokenHandler(fetches *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if fetches != nil {
			atomic.AddInt32(fetches, 1)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["secret_id"] == "" || body["secret_key"] == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"access": "test-token", "access_expires": 86400}`)
	}
}

func TestClient__getRequisition(t *testing.T) {
	var tokenFetches int32

	handler := mux.NewRouter()
	handler.Methods("POST").Path("/api/v2/token/new/").HandlerFunc(tokenHandler(&tokenFetches))
	handler.Methods("GET").Path("/api/v2/requisitions/{requisitionID}/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := r.Header.Get("Authorization"); v != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"id": "%s", "status": "LN", "accounts": ["A1"], "institution_id": "ING_INGDDEFF"}`, mux.Vars(r)["requisitionID"])
	})
	_, client := newTestServer(t, handler)

	req, err := client.GetRequisition("R1")
	if err != nil {
		t.Fatal(err)
	}
	if req.ID != "R1" || !req.Linked() {
		t.Errorf("got %#v", req)
	}

	// a second call re-uses the cached token
	if _, err := client.GetRequisition("R2"); err != nil {
		t.Fatal(err)
	}
	if v := atomic.LoadInt32(&tokenFetches); v != 1 {
		t.Errorf("expected one token fetch, got %d", v)
	}

	client.ResetToken()
	if _, err := client.GetRequisition("R3"); err != nil {
		t.Fatal(err)
	}
	if v := atomic.LoadInt32(&tokenFetches); v != 2 {
		t.Errorf("expected re-fetch after reset, got %d", v)
	}
}

func TestClient__httpStatusMapped(t *testing.T) {
	handler := mux.NewRouter()
	handler.Methods("POST").Path("/api/v2/token/new/").HandlerFunc(tokenHandler(nil))
	handler.Methods("GET").Path("/api/v2/requisitions/{requisitionID}/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, `{"summary": "Not found", "status_code": 404}`)
	})
	_, client := newTestServer(t, handler)

	_, err := client.GetRequisition("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v", err)
	}
}

func TestClient__bodyStatusMapped(t *testing.T) {
	// some institutions report failures in the body of a 200 response
	handler := mux.NewRouter()
	handler.Methods("POST").Path("/api/v2/token/new/").HandlerFunc(tokenHandler(nil))
	handler.Methods("GET").Path("/api/v2/accounts/{accountID}/balances/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"summary": "Account suspended", "status_code": 409}`)
	})
	_, client := newTestServer(t, handler)

	_, err := client.GetBalances("A1")
	if !errors.Is(err, ErrResourceSuspended) {
		t.Errorf("got %v", err)
	}
}

func TestClient__transactionsQuery(t *testing.T) {
	handler := mux.NewRouter()
	handler.Methods("POST").Path("/api/v2/token/new/").HandlerFunc(tokenHandler(nil))
	handler.Methods("GET").Path("/api/v2/accounts/{accountID}/transactions/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("date_from") != "2020-06-01" || q.Get("date_to") != "2020-06-30" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"status_code": 400}`)
			return
		}
		fmt.Fprintf(w, `{"transactions": {"booked": [{"transactionId": "T1", "transactionAmount": {"amount": "-5.00", "currency": "EUR"}, "bookingDate": "2020-06-12"}], "pending": []}}`)
	})
	_, client := newTestServer(t, handler)

	from := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2020, time.June, 30, 0, 0, 0, 0, time.UTC)

	txns, err := client.GetTransactions("A1", from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(txns.Booked) != 1 || txns.Booked[0].TransactionID != "T1" {
		t.Errorf("got %#v", txns)
	}
}

func TestClient__createRequisition(t *testing.T) {
	handler := mux.NewRouter()
	handler.Methods("POST").Path("/api/v2/token/new/").HandlerFunc(tokenHandler(nil))
	handler.Methods("POST").Path("/api/v2/requisitions/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if body["institution_id"] != "ING_INGDDEFF" || body["reference"] == "" || body["redirect"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"status_code": 400}`)
			return
		}
		fmt.Fprintf(w, `{"id": "R9", "status": "CR", "link": "https://ob.example.com/start/R9"}`)
	})
	_, client := newTestServer(t, handler)

	req, err := client.CreateRequisition(CreateRequisitionRequest{
		InstitutionID:      "ING_INGDDEFF",
		ReferenceID:        "ref-1",
		RedirectURL:        "https://app.example.com/return",
		AccessValidForDays: 90,
	})
	if err != nil {
		t.Fatal(err)
	}
	if req.ID != "R9" || req.Link == "" {
		t.Errorf("got %#v", req)
	}
}
