package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "travelagency/internal/config"
	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
	h "travelagency/internal/http/handlers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTravel struct {
	trips       []models.TripSummary
	clientTrips map[int64][]models.TripSummary
	err         error
	calls       int
	created     models.NewClient
	enrolled    [2]int64
}

func (f *fakeTravel) ListTrips(context.Context) ([]models.TripSummary, error) {
	f.calls++
	return f.trips, f.err
}

func (f *fakeTravel) ListClientTrips(_ context.Context, clientID int64) ([]models.TripSummary, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	trips, ok := f.clientTrips[clientID]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return trips, nil
}

func (f *fakeTravel) CreateClient(_ context.Context, nc models.NewClient) (models.Client, error) {
	f.calls++
	f.created = nc
	if f.err != nil {
		return models.Client{}, f.err
	}
	return models.Client{ID: 17, FirstName: nc.FirstName, LastName: nc.LastName, Email: nc.Email, Telephone: nc.Telephone, Pesel: nc.Pesel}, nil
}

func (f *fakeTravel) RegisterClientToTrip(_ context.Context, clientID, tripID int64) error {
	f.calls++
	f.enrolled = [2]int64{clientID, tripID}
	return f.err
}

func (f *fakeTravel) DeleteClientFromTrip(_ context.Context, clientID, tripID int64) error {
	f.calls++
	return f.err
}

func (f *fakeTravel) CountTrips(context.Context) (int, error) {
	return len(f.trips), f.err
}

type fakeItinerary struct{ err error }

func (f fakeItinerary) Generate(_ context.Context, clientID int64) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("%PDF-1.3 fake"), "ITINERARY_CLIENT_1.pdf", nil
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func newTestRouter(svc *fakeTravel) *gin.Engine {
	return mustRouter(&h.Handler{Travel: svc, Itinerary: fakeItinerary{}, DB: fakePinger{}})
}

func mustRouter(handler *h.Handler) *gin.Engine {
	r, err := NewRouter(intconfig.Env{}, handler)
	if err != nil {
		panic(err)
	}
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) h.ErrorResponse {
	t.Helper()
	var resp h.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return resp
}

const validClient = `{"firstName":"Anna","lastName":"Nowak","email":"anna@example.com","telephone":"123456789","pesel":"90010112345"}`

func TestListTripsReturnsArray(t *testing.T) {
	country := "Poland"
	svc := &fakeTravel{trips: []models.TripSummary{{
		ID: 1, Name: "Baltic Coast", Description: "seaside",
		DateFrom:  time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
		DateTo:    time.Date(2027, 6, 8, 0, 0, 0, 0, time.UTC),
		MaxPeople: 20, Country: &country,
	}, {ID: 4, Name: "City Break", MaxPeople: 2}}}

	w := do(newTestRouter(svc), http.MethodGet, "/trips", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0]["country"] != "Poland" || got[0]["maxPeople"] != float64(20) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	if v, ok := got[1]["country"]; !ok || v != nil {
		t.Fatalf("trip without country must serialize country as null, got %s", w.Body.String())
	}
}

func TestListTripsStoreFailureIs500(t *testing.T) {
	svc := &fakeTravel{err: errors.New("connection refused")}

	w := do(newTestRouter(svc), http.MethodGet, "/trips", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Code != "internal_error" || strings.Contains(resp.Error, "connection refused") {
		t.Fatalf("internal details must not leak: %+v", resp)
	}
}

func TestListClientTripsNotFound(t *testing.T) {
	svc := &fakeTravel{clientTrips: map[int64][]models.TripSummary{}}

	w := do(newTestRouter(svc), http.MethodGet, "/clients/5/trips", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Error != "Client not found" || resp.Code != "not_found" || resp.RequestID == "" {
		t.Fatalf("unexpected error body %+v", resp)
	}
}

func TestNewRouterReturnsEngine(t *testing.T) {
	r, err := NewRouter(intconfig.Env{}, &h.Handler{Travel: &fakeTravel{}})
	if err != nil {
		t.Fatalf("NewRouter returned error: %v", err)
	}
	if r == nil {
		t.Fatalf("NewRouter returned nil engine")
	}
}

func TestListClientTripsNoTripsFound(t *testing.T) {
	svc := &fakeTravel{err: domain.ErrNoTripsFound}

	w := do(newTestRouter(svc), http.MethodGet, "/clients/5/trips", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Error != "No trips found" || resp.Code != "not_found" {
		t.Fatalf("unexpected error body %+v", resp)
	}
}

func TestListClientTripsOK(t *testing.T) {
	svc := &fakeTravel{clientTrips: map[int64][]models.TripSummary{5: {{ID: 3, Name: "Fjord Cruise"}}}}

	w := do(newTestRouter(svc), http.MethodGet, "/clients/5/trips", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"Fjord Cruise"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestBadPathIDsRejectedBeforeService(t *testing.T) {
	svc := &fakeTravel{}
	r := newTestRouter(svc)

	cases := []struct{ method, path string }{
		{http.MethodGet, "/clients/abc/trips"},
		{http.MethodGet, "/clients/0/trips"},
		{http.MethodPut, "/clients/-1/trips/2"},
		{http.MethodPut, "/clients/1/trips/x"},
		{http.MethodDelete, "/clients/1/trips/0"},
		{http.MethodGet, "/clients/nope/trips/itinerary"},
	}
	for _, tc := range cases {
		w := do(r, tc.method, tc.path, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s %s: expected 400, got %d", tc.method, tc.path, w.Code)
		}
	}
	if svc.calls != 0 {
		t.Fatalf("service must not be called for bad ids, got %d calls", svc.calls)
	}
}

func TestCreateClientCreated(t *testing.T) {
	svc := &fakeTravel{}

	w := do(newTestRouter(svc), http.MethodPost, "/clients", validClient)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != "/clients/17" {
		t.Fatalf("unexpected Location %q", got)
	}
	var client models.Client
	if err := json.Unmarshal(w.Body.Bytes(), &client); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if client.ID != 17 || client.Pesel != "90010112345" {
		t.Fatalf("unexpected client %+v", client)
	}
	if svc.created.Email != "anna@example.com" {
		t.Fatalf("service received %+v", svc.created)
	}
}

func TestCreateClientValidation(t *testing.T) {
	cases := map[string]struct {
		body  string
		field string
	}{
		"short first name": {`{"firstName":"An","lastName":"Nowak","email":"anna@example.com","telephone":"123456789","pesel":"90010112345"}`, "firstName"},
		"long last name":   {`{"firstName":"Anna","lastName":"` + strings.Repeat("n", 41) + `","email":"anna@example.com","telephone":"123456789","pesel":"90010112345"}`, "lastName"},
		"bad email":        {`{"firstName":"Anna","lastName":"Nowak","email":"not-an-email","telephone":"123456789","pesel":"90010112345"}`, "email"},
		"long email":       {`{"firstName":"Anna","lastName":"Nowak","email":"` + strings.Repeat("a", 40) + `@example.com","telephone":"123456789","pesel":"90010112345"}`, "email"},
		"8 digit phone":    {`{"firstName":"Anna","lastName":"Nowak","email":"anna@example.com","telephone":"12345678","pesel":"90010112345"}`, "telephone"},
		"letters in phone": {`{"firstName":"Anna","lastName":"Nowak","email":"anna@example.com","telephone":"12345678a","pesel":"90010112345"}`, "telephone"},
		"10 digit pesel":   {`{"firstName":"Anna","lastName":"Nowak","email":"anna@example.com","telephone":"123456789","pesel":"9001011234"}`, "pesel"},
		"missing pesel":    {`{"firstName":"Anna","lastName":"Nowak","email":"anna@example.com","telephone":"123456789"}`, "pesel"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &fakeTravel{}
			w := do(newTestRouter(svc), http.MethodPost, "/clients", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if svc.calls != 0 {
				t.Fatalf("service must not be called on invalid input")
			}
			if !strings.Contains(w.Body.String(), `"field":"`+tc.field+`"`) {
				t.Fatalf("expected details for %s, got %s", tc.field, w.Body.String())
			}
		})
	}
}

func TestCreateClientMalformedJSON(t *testing.T) {
	svc := &fakeTravel{}

	w := do(newTestRouter(svc), http.MethodPost, "/clients", `{"firstName":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != "validation_error" {
		t.Fatalf("unexpected code %q", resp.Code)
	}
	if svc.calls != 0 {
		t.Fatalf("service must not be called")
	}
}

func TestRegisterClientToTripMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"ok", nil, http.StatusNoContent, "", ""},
		{"client missing", domain.ErrClientNotFound, http.StatusNotFound, "not_found", "Client not found"},
		{"trip missing", domain.ErrTripNotFound, http.StatusNotFound, "not_found", "Trip not found"},
		{"trip full", domain.ErrTooManyParticipants, http.StatusBadRequest, "capacity_exceeded", "Too many participants"},
		{"store down", errors.New("i/o timeout"), http.StatusInternalServerError, "internal_error", "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeTravel{err: tc.err}
			w := do(newTestRouter(svc), http.MethodPut, "/clients/3/trips/4", "")
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if svc.enrolled != [2]int64{3, 4} {
				t.Fatalf("ids not passed through: %v", svc.enrolled)
			}
			if tc.err == nil {
				if w.Body.Len() != 0 {
					t.Fatalf("204 must have no body, got %q", w.Body.String())
				}
				return
			}
			resp := decodeError(t, w)
			if resp.Code != tc.code || resp.Error != tc.msg {
				t.Fatalf("unexpected error body %+v", resp)
			}
		})
	}
}

func TestDeleteClientFromTrip(t *testing.T) {
	w := do(newTestRouter(&fakeTravel{}), http.MethodDelete, "/clients/3/trips/4", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = do(newTestRouter(&fakeTravel{err: domain.ErrRegistrationNotFound}), http.MethodDelete, "/clients/3/trips/4", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Error != "Registration not found" {
		t.Fatalf("unexpected message %q", resp.Error)
	}
}

func TestClientItineraryPDF(t *testing.T) {
	w := do(newTestRouter(&fakeTravel{}), http.MethodGet, "/clients/1/trips/itinerary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "ITINERARY_CLIENT_1.pdf") {
		t.Fatalf("unexpected disposition %q", cd)
	}

	r := mustRouter(&h.Handler{Travel: &fakeTravel{}, Itinerary: fakeItinerary{err: domain.ErrClientNotFound}})
	w = do(r, http.MethodGet, "/clients/1/trips/itinerary", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHealthAndDBCheck(t *testing.T) {
	svc := &fakeTravel{trips: []models.TripSummary{{ID: 1}, {ID: 2}}}
	r := newTestRouter(svc)

	if w := do(r, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", w.Code)
	}
	w := do(r, http.MethodGet, "/db-check", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"trips_in_db":2`) {
		t.Fatalf("db-check: %d %s", w.Code, w.Body.String())
	}

	down := mustRouter(&h.Handler{Travel: svc, DB: fakePinger{err: errors.New("refused")}})
	if w := do(down, http.MethodGet, "/db-check", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("db-check with dead pool: expected 500, got %d", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	w := do(newTestRouter(&fakeTravel{}), http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
