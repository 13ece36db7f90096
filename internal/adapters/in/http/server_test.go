package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateAccountHandler struct{ mock.Mock }

func (m *MockCreateAccountHandler) Handle(ctx context.Context, cmd commands.CreateAccountCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockCreateOfferHandler struct{ mock.Mock }

func (m *MockCreateOfferHandler) Handle(ctx context.Context, cmd commands.CreateOfferCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockAcceptOfferHandler struct{ mock.Mock }

func (m *MockAcceptOfferHandler) Handle(ctx context.Context, cmd commands.AcceptOfferCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockMarkDeliveredHandler struct{ mock.Mock }

func (m *MockMarkDeliveredHandler) Handle(ctx context.Context, cmd commands.MarkDeliveredCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockCancelOfferHandler struct{ mock.Mock }

func (m *MockCancelOfferHandler) Handle(ctx context.Context, cmd commands.CancelOfferCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockGetOfferHandler struct{ mock.Mock }

func (m *MockGetOfferHandler) Handle(ctx context.Context, query queries.GetOfferQuery) (queries.OfferResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OfferResponse), args.Error(1)
}

type MockGetNearbyOffersHandler struct{ mock.Mock }

func (m *MockGetNearbyOffersHandler) Handle(ctx context.Context, query queries.GetNearbyOffersQuery) ([]queries.NearbyOfferResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.NearbyOfferResponse), args.Error(1)
}

type MockGetAccountHandler struct{ mock.Mock }

func (m *MockGetAccountHandler) Handle(ctx context.Context, query queries.GetAccountQuery) (queries.AccountResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.AccountResponse), args.Error(1)
}

type serverMocks struct {
	createAccount *MockCreateAccountHandler
	createOffer   *MockCreateOfferHandler
	acceptOffer   *MockAcceptOfferHandler
	markDelivered *MockMarkDeliveredHandler
	cancelOffer   *MockCancelOfferHandler
	getOffer      *MockGetOfferHandler
	getNearby     *MockGetNearbyOffersHandler
	getAccount    *MockGetAccountHandler
}

func newTestServer() (*echo.Echo, *serverMocks) {
	mocks := &serverMocks{
		createAccount: new(MockCreateAccountHandler),
		createOffer:   new(MockCreateOfferHandler),
		acceptOffer:   new(MockAcceptOfferHandler),
		markDelivered: new(MockMarkDeliveredHandler),
		cancelOffer:   new(MockCancelOfferHandler),
		getOffer:      new(MockGetOfferHandler),
		getNearby:     new(MockGetNearbyOffersHandler),
		getAccount:    new(MockGetAccountHandler),
	}

	server := NewServer(
		Commands{
			CreateAccount: mocks.createAccount,
			CreateOffer:   mocks.createOffer,
			AcceptOffer:   mocks.acceptOffer,
			MarkDelivered: mocks.markDelivered,
			CancelOffer:   mocks.cancelOffer,
		},
		Queries{
			GetOffer:        mocks.getOffer,
			GetNearbyOffers: mocks.getNearby,
			GetAccount:      mocks.getAccount,
		},
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e, mocks
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth_ReturnsOK(t *testing.T) {
	e, _ := newTestServer()

	rec := doRequest(e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestCreateAccount_ValidRequest_ReturnsCreatedWithID(t *testing.T) {
	e, mocks := newTestServer()
	mocks.createAccount.On("Handle", mock.Anything, mock.AnythingOfType("commands.CreateAccountCommand")).
		Return(nil).Once()

	rec := doRequest(e, http.MethodPost, "/api/v1/accounts",
		`{"role":"rider","name":"Marco","email":"marco@example.com","phone":"+39 333 1234567","vehicle":"bike"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["id"])
	mocks.createAccount.AssertExpectations(t)
}

func TestCreateAccount_UnknownRole_ReturnsValidationError(t *testing.T) {
	e, mocks := newTestServer()

	rec := doRequest(e, http.MethodPost, "/api/v1/accounts",
		`{"role":"pilot","name":"Marco","email":"marco@example.com","phone":"+39 333 1234567"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decodeError(t, rec).Error.Code)
	mocks.createAccount.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCreateAccount_MalformedBody_ReturnsBadRequest(t *testing.T) {
	e, _ := newTestServer()

	rec := doRequest(e, http.MethodPost, "/api/v1/accounts", `{"role":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec).Error.Code)
}

func TestCreateOffer_ValidRequest_ReturnsCreatedOffer(t *testing.T) {
	e, mocks := newTestServer()
	businessID := kernel.NewUUID()

	var createdID string
	mocks.createOffer.On("Handle", mock.Anything, mock.AnythingOfType("commands.CreateOfferCommand")).
		Run(func(args mock.Arguments) {
			cmd := args.Get(1).(commands.CreateOfferCommand)
			createdID = cmd.OfferID().String()
		}).
		Return(nil).Once()
	mocks.getOffer.On("Handle", mock.Anything, mock.AnythingOfType("queries.GetOfferQuery")).
		Return(queries.OfferResponse{Status: "pending", BusinessID: businessID.String()}, nil).Once()

	body := `{
		"business_id":"` + businessID.String() + `",
		"pickup":{"address":"Via Brera 28, Milano","lat":45.4642,"lng":9.19,"contact_name":"Giulia","contact_phone":"+39 02 1234567"},
		"delivery":{"address":"Corso Como 10, Milano","lat":45.481,"lng":9.188,"contact_name":"Luca","contact_phone":"+39 02 7654321"},
		"package":{"weight_kg":2.5,"length_cm":30,"width_cm":20,"height_cm":10,"description":"documents","fragile":false},
		"pricing":{"base":10,"distance":12,"urgency":3}
	}`

	rec := doRequest(e, http.MethodPost, "/api/v1/offers", body)

	assert.Equal(t, http.StatusCreated, rec.Code)

	// The body carries the created offer read model, loaded with the id the
	// command was dispatched with.
	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, businessID.String(), data["business_id"])
	assert.NotEmpty(t, createdID)

	loadedQuery := mocks.getOffer.Calls[0].Arguments[1].(queries.GetOfferQuery)
	assert.Equal(t, createdID, loadedQuery.OfferID().String())

	mocks.createOffer.AssertExpectations(t)
	mocks.getOffer.AssertExpectations(t)
}

func TestCreateOffer_InvalidLatitude_ReturnsValidationError(t *testing.T) {
	e, mocks := newTestServer()

	body := `{
		"business_id":"` + kernel.NewUUID().String() + `",
		"pickup":{"address":"Nowhere","lat":123.0,"lng":9.19,"contact_name":"Giulia","contact_phone":"+39 02 1234567"},
		"delivery":{"address":"Corso Como 10, Milano","lat":45.481,"lng":9.188,"contact_name":"Luca","contact_phone":"+39 02 7654321"},
		"package":{"weight_kg":2.5,"length_cm":30,"width_cm":20,"height_cm":10,"description":"documents","fragile":false},
		"pricing":{"base":10,"distance":12,"urgency":3}
	}`

	rec := doRequest(e, http.MethodPost, "/api/v1/offers", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decodeError(t, rec).Error.Code)
	mocks.createOffer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetOffer_Found_ReturnsDataEnvelope(t *testing.T) {
	e, mocks := newTestServer()
	offerID := kernel.NewUUID()
	mocks.getOffer.On("Handle", mock.Anything, mock.AnythingOfType("queries.GetOfferQuery")).
		Return(queries.OfferResponse{ID: offerID.String(), Status: "pending"}, nil).Once()

	rec := doRequest(e, http.MethodGet, "/api/v1/offers/"+offerID.String(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), offerID.String())
	mocks.getOffer.AssertExpectations(t)
}

func TestGetOffer_NotFound_Returns404(t *testing.T) {
	e, mocks := newTestServer()
	offerID := kernel.NewUUID()
	mocks.getOffer.On("Handle", mock.Anything, mock.AnythingOfType("queries.GetOfferQuery")).
		Return(queries.OfferResponse{}, errs.NewObjectNotFoundError("offerId", offerID)).Once()

	rec := doRequest(e, http.MethodGet, "/api/v1/offers/"+offerID.String(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error.Code)
}

func TestGetOffer_MalformedID_Returns400(t *testing.T) {
	e, mocks := newTestServer()

	rec := doRequest(e, http.MethodGet, "/api/v1/offers/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mocks.getOffer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestAcceptOffer_Success_ReturnsMessageEnvelope(t *testing.T) {
	e, mocks := newTestServer()
	mocks.acceptOffer.On("Handle", mock.Anything, mock.AnythingOfType("commands.AcceptOfferCommand")).
		Return(nil).Once()

	rec := doRequest(e, http.MethodPost, "/api/v1/offers/"+kernel.NewUUID().String()+"/accept",
		`{"rider_id":"`+kernel.NewUUID().String()+`"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "offer accepted", resp.Message)
	mocks.acceptOffer.AssertExpectations(t)
}

func TestAcceptOffer_LostRace_Returns409(t *testing.T) {
	e, mocks := newTestServer()
	mocks.acceptOffer.On("Handle", mock.Anything, mock.AnythingOfType("commands.AcceptOfferCommand")).
		Return(errs.NewConflictError("offer", "already accepted")).Once()

	rec := doRequest(e, http.MethodPost, "/api/v1/offers/"+kernel.NewUUID().String()+"/accept",
		`{"rider_id":"`+kernel.NewUUID().String()+`"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "conflict", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "already accepted")
}

func TestMarkDelivered_NotAssignedRider_Returns403(t *testing.T) {
	e, mocks := newTestServer()
	riderID := kernel.NewUUID()
	mocks.markDelivered.On("Handle", mock.Anything, mock.AnythingOfType("commands.MarkDeliveredCommand")).
		Return(errs.NewForbiddenError(riderID.String(), "mark offer delivered")).Once()

	rec := doRequest(e, http.MethodPost, "/api/v1/offers/"+kernel.NewUUID().String()+"/delivered",
		`{"rider_id":"`+riderID.String()+`","note":"left at reception"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeError(t, rec).Error.Code)
}

func TestMarkDelivered_WithLocation_PassesThrough(t *testing.T) {
	e, mocks := newTestServer()
	mocks.markDelivered.On("Handle", mock.Anything, mock.AnythingOfType("commands.MarkDeliveredCommand")).
		Return(nil).Once()

	rec := doRequest(e, http.MethodPost, "/api/v1/offers/"+kernel.NewUUID().String()+"/delivered",
		`{"rider_id":"`+kernel.NewUUID().String()+`","note":"handed over","lat":45.48,"lng":9.18}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	mocks.markDelivered.AssertExpectations(t)
}

func TestCancelOffer_NotPending_ReturnsInvalidTransition(t *testing.T) {
	e, mocks := newTestServer()
	mocks.cancelOffer.On("Handle", mock.Anything, mock.AnythingOfType("commands.CancelOfferCommand")).
		Return(errs.NewInvalidTransitionError("accepted", "cancelled")).Once()

	rec := doRequest(e, http.MethodPost, "/api/v1/offers/"+kernel.NewUUID().String()+"/cancel",
		`{"actor_id":"`+kernel.NewUUID().String()+`","note":"customer changed mind"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_transition", decodeError(t, rec).Error.Code)
}

func TestCancelOffer_UnexpectedError_Returns500WithoutDetails(t *testing.T) {
	e, mocks := newTestServer()
	mocks.cancelOffer.On("Handle", mock.Anything, mock.AnythingOfType("commands.CancelOfferCommand")).
		Return(errors.New("pq: connection refused")).Once()

	rec := doRequest(e, http.MethodPost, "/api/v1/offers/"+kernel.NewUUID().String()+"/cancel",
		`{"actor_id":"`+kernel.NewUUID().String()+`"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "internal", resp.Error.Code)
	assert.Equal(t, "internal server error", resp.Error.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestGetNearbyOffers_ParsesQueryParams(t *testing.T) {
	e, mocks := newTestServer()
	mocks.getNearby.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetNearbyOffersQuery) bool {
		return q.RadiusKm() == 5 && q.MinPrice() == 20 && q.Fragile() != nil && !*q.Fragile()
	})).Return([]queries.NearbyOfferResponse{}, nil).Once()

	rec := doRequest(e, http.MethodGet,
		"/api/v1/offers/nearby?lat=45.4642&lng=9.19&radius_km=5&sort=price&min_price=20&fragile=false", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	mocks.getNearby.AssertExpectations(t)
}

func TestGetNearbyOffers_MissingLat_ReturnsBadRequest(t *testing.T) {
	e, mocks := newTestServer()

	rec := doRequest(e, http.MethodGet, "/api/v1/offers/nearby?lng=9.19&radius_km=5", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec).Error.Code)
	mocks.getNearby.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetNearbyOffers_RadiusOverLimit_ReturnsValidationError(t *testing.T) {
	e, mocks := newTestServer()

	rec := doRequest(e, http.MethodGet, "/api/v1/offers/nearby?lat=45.4642&lng=9.19&radius_km=250", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decodeError(t, rec).Error.Code)
	mocks.getNearby.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetAccount_Found_ReturnsDataEnvelope(t *testing.T) {
	e, mocks := newTestServer()
	accountID := kernel.NewUUID()
	mocks.getAccount.On("Handle", mock.Anything, mock.AnythingOfType("queries.GetAccountQuery")).
		Return(queries.AccountResponse{ID: accountID.String(), Role: "rider", Name: "Marco"}, nil).Once()

	rec := doRequest(e, http.MethodGet, "/api/v1/accounts/"+accountID.String(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Marco"`)
}
