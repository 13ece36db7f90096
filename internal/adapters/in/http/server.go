// Package http provides the inbound REST adapter.
// It translates HTTP requests into commands and queries and domain errors into
// HTTP statuses; no business rules live here.
package http

import (
	"context"
	"net/http"
	"strconv"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handler interfaces keep the server testable without real persistence.
type (
	createAccountHandler interface {
		Handle(ctx context.Context, cmd commands.CreateAccountCommand) error
	}
	createOfferHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOfferCommand) error
	}
	acceptOfferHandler interface {
		Handle(ctx context.Context, cmd commands.AcceptOfferCommand) error
	}
	markPickedUpHandler interface {
		Handle(ctx context.Context, cmd commands.MarkPickedUpCommand) error
	}
	startTransitHandler interface {
		Handle(ctx context.Context, cmd commands.StartTransitCommand) error
	}
	markDeliveredHandler interface {
		Handle(ctx context.Context, cmd commands.MarkDeliveredCommand) error
	}
	completeOfferHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteOfferCommand) error
	}
	cancelOfferHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOfferCommand) error
	}
	rateBusinessHandler interface {
		Handle(ctx context.Context, cmd commands.RateBusinessCommand) error
	}

	getOfferHandler interface {
		Handle(ctx context.Context, query queries.GetOfferQuery) (queries.OfferResponse, error)
	}
	getNearbyOffersHandler interface {
		Handle(ctx context.Context, query queries.GetNearbyOffersQuery) ([]queries.NearbyOfferResponse, error)
	}
	getAccountOffersHandler interface {
		Handle(ctx context.Context, query queries.GetAccountOffersQuery) ([]queries.OfferResponse, error)
	}
	getOfferHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetOfferHistoryQuery) ([]queries.HistoryEntryResponse, error)
	}
	getAccountHandler interface {
		Handle(ctx context.Context, query queries.GetAccountQuery) (queries.AccountResponse, error)
	}
)

// Commands groups the command handlers the server dispatches to.
type Commands struct {
	CreateAccount createAccountHandler
	CreateOffer   createOfferHandler
	AcceptOffer   acceptOfferHandler
	MarkPickedUp  markPickedUpHandler
	StartTransit  startTransitHandler
	MarkDelivered markDeliveredHandler
	CompleteOffer completeOfferHandler
	CancelOffer   cancelOfferHandler
	RateBusiness  rateBusinessHandler
}

// Queries groups the query handlers the server dispatches to.
type Queries struct {
	GetOffer         getOfferHandler
	GetNearbyOffers  getNearbyOffersHandler
	GetAccountOffers getAccountOffersHandler
	GetOfferHistory  getOfferHistoryHandler
	GetAccount       getAccountHandler
}

// Server handles the REST API. It coordinates between HTTP handlers and
// application use cases.
type Server struct {
	commands Commands
	queries  Queries
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(cmds Commands, qrys Queries) *Server {
	return &Server{commands: cmds, queries: qrys}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")

	v1.POST("/accounts", s.CreateAccount)
	v1.GET("/accounts/:id", s.GetAccount)
	v1.GET("/accounts/:id/offers", s.GetAccountOffers)

	v1.POST("/offers", s.CreateOffer)
	v1.GET("/offers/nearby", s.GetNearbyOffers)
	v1.GET("/offers/:id", s.GetOffer)
	v1.GET("/offers/:id/history", s.GetOfferHistory)

	v1.POST("/offers/:id/accept", s.AcceptOffer)
	v1.POST("/offers/:id/pickup", s.MarkPickedUp)
	v1.POST("/offers/:id/in-transit", s.StartTransit)
	v1.POST("/offers/:id/delivered", s.MarkDelivered)
	v1.POST("/offers/:id/complete", s.CompleteOffer)
	v1.POST("/offers/:id/cancel", s.CancelOffer)
	v1.POST("/offers/:id/rate", s.RateBusiness)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateAccount handles POST /api/v1/accounts.
func (s *Server) CreateAccount(ctx echo.Context) error {
	var req CreateAccountRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	role, err := kernel.RoleFromString(req.Role)
	if err != nil {
		return respondError(ctx, err)
	}

	accountID := kernel.NewUUID()
	cmd, err := commands.NewCreateAccountCommand(
		accountID, role, req.Name, req.Email, req.Phone, req.Vehicle, req.Company)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.commands.CreateAccount.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, http.StatusCreated, map[string]string{"id": accountID.String()})
}

// GetAccount handles GET /api/v1/accounts/:id.
func (s *Server) GetAccount(ctx echo.Context) error {
	accountID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetAccountQuery(accountID)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.queries.GetAccount.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, http.StatusOK, resp)
}

// GetAccountOffers handles GET /api/v1/accounts/:id/offers.
func (s *Server) GetAccountOffers(ctx echo.Context) error {
	accountID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetAccountOffersQuery(accountID)
	if err != nil {
		return respondError(ctx, err)
	}

	offers, err := s.queries.GetAccountOffers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, http.StatusOK, offers)
}

// CreateOffer handles POST /api/v1/offers.
func (s *Server) CreateOffer(ctx echo.Context) error {
	var req CreateOfferRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	businessID, err := parseUUID("businessId", req.BusinessID)
	if err != nil {
		return respondError(ctx, err)
	}

	pickup, err := waypointFromRequest(req.Pickup)
	if err != nil {
		return respondError(ctx, err)
	}

	delivery, err := waypointFromRequest(req.Delivery)
	if err != nil {
		return respondError(ctx, err)
	}

	pkg, err := offer.NewPackage(
		req.Package.WeightKg, req.Package.LengthCm, req.Package.WidthCm, req.Package.HeightCm,
		req.Package.Description, req.Package.Fragile)
	if err != nil {
		return respondError(ctx, err)
	}

	pricing, err := pricingFromRequest(req.Pricing)
	if err != nil {
		return respondError(ctx, err)
	}

	offerID := kernel.NewUUID()
	cmd, err := commands.NewCreateOfferCommand(offerID, businessID, pickup, delivery, pkg, pricing)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.commands.CreateOffer.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOfferQuery(offerID)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.queries.GetOffer.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, http.StatusCreated, created)
}

// GetOffer handles GET /api/v1/offers/:id.
func (s *Server) GetOffer(ctx echo.Context) error {
	offerID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOfferQuery(offerID)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.queries.GetOffer.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, http.StatusOK, resp)
}

// GetNearbyOffers handles GET /api/v1/offers/nearby.
func (s *Server) GetNearbyOffers(ctx echo.Context) error {
	lat, err := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	if err != nil {
		return respondBadRequest(ctx, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(ctx.QueryParam("lng"), 64)
	if err != nil {
		return respondBadRequest(ctx, "lng must be a number")
	}
	radiusKm, err := strconv.ParseFloat(ctx.QueryParam("radius_km"), 64)
	if err != nil {
		return respondBadRequest(ctx, "radius_km must be a number")
	}

	var minPrice, maxWeightKg float64
	if raw := ctx.QueryParam("min_price"); raw != "" {
		if minPrice, err = strconv.ParseFloat(raw, 64); err != nil {
			return respondBadRequest(ctx, "min_price must be a number")
		}
	}
	if raw := ctx.QueryParam("max_weight_kg"); raw != "" {
		if maxWeightKg, err = strconv.ParseFloat(raw, 64); err != nil {
			return respondBadRequest(ctx, "max_weight_kg must be a number")
		}
	}

	var fragile *bool
	if raw := ctx.QueryParam("fragile"); raw != "" {
		parsed, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			return respondBadRequest(ctx, "fragile must be a boolean")
		}
		fragile = &parsed
	}

	center, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetNearbyOffersQuery(
		center, radiusKm, ctx.QueryParam("sort"), minPrice, maxWeightKg, fragile)
	if err != nil {
		return respondError(ctx, err)
	}

	offers, err := s.queries.GetNearbyOffers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, http.StatusOK, offers)
}

// GetOfferHistory handles GET /api/v1/offers/:id/history.
func (s *Server) GetOfferHistory(ctx echo.Context) error {
	offerID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOfferHistoryQuery(offerID)
	if err != nil {
		return respondError(ctx, err)
	}

	entries, err := s.queries.GetOfferHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respondData(ctx, http.StatusOK, entries)
}

// AcceptOffer handles POST /api/v1/offers/:id/accept.
func (s *Server) AcceptOffer(ctx echo.Context) error {
	offerID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req AcceptOfferRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	riderID, err := parseUUID("riderId", req.RiderID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAcceptOfferCommand(offerID, riderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.commands.AcceptOffer.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respondMessage(ctx, http.StatusOK, "offer accepted")
}

// MarkPickedUp handles POST /api/v1/offers/:id/pickup.
func (s *Server) MarkPickedUp(ctx echo.Context) error {
	return s.handleProgress(ctx, "package picked up",
		func(offerID, riderID kernel.UUID, note string, location *kernel.GeoPoint) error {
			cmd, err := commands.NewMarkPickedUpCommand(offerID, riderID, note, location)
			if err != nil {
				return err
			}
			return s.commands.MarkPickedUp.Handle(ctx.Request().Context(), cmd)
		})
}

// StartTransit handles POST /api/v1/offers/:id/in-transit.
func (s *Server) StartTransit(ctx echo.Context) error {
	return s.handleProgress(ctx, "transit started",
		func(offerID, riderID kernel.UUID, note string, location *kernel.GeoPoint) error {
			cmd, err := commands.NewStartTransitCommand(offerID, riderID, note, location)
			if err != nil {
				return err
			}
			return s.commands.StartTransit.Handle(ctx.Request().Context(), cmd)
		})
}

// MarkDelivered handles POST /api/v1/offers/:id/delivered.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	return s.handleProgress(ctx, "package delivered",
		func(offerID, riderID kernel.UUID, note string, location *kernel.GeoPoint) error {
			cmd, err := commands.NewMarkDeliveredCommand(offerID, riderID, note, location)
			if err != nil {
				return err
			}
			return s.commands.MarkDelivered.Handle(ctx.Request().Context(), cmd)
		})
}

// handleProgress binds the shared payload of the rider progress transitions
// and dispatches through the given command runner.
func (s *Server) handleProgress(
	ctx echo.Context,
	message string,
	run func(offerID, riderID kernel.UUID, note string, location *kernel.GeoPoint) error,
) error {
	offerID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	riderID, err := parseUUID("riderId", req.RiderID)
	if err != nil {
		return respondError(ctx, err)
	}

	var location *kernel.GeoPoint
	if req.Lat != nil && req.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*req.Lat, *req.Lng)
		if pointErr != nil {
			return respondError(ctx, pointErr)
		}
		location = &point
	}

	if err = run(offerID, riderID, req.Note, location); err != nil {
		return respondError(ctx, err)
	}

	return respondMessage(ctx, http.StatusOK, message)
}

// CompleteOffer handles POST /api/v1/offers/:id/complete.
func (s *Server) CompleteOffer(ctx echo.Context) error {
	offerID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req CompleteOfferRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	actorID, err := parseUUID("actorId", req.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}

	var riderRating *offer.Rating
	if req.RiderRating != nil {
		rating, ratingErr := offer.NewRating(req.RiderRating.Score, req.RiderRating.Comment)
		if ratingErr != nil {
			return respondError(ctx, ratingErr)
		}
		riderRating = &rating
	}

	cmd, err := commands.NewCompleteOfferCommand(offerID, actorID, riderRating, req.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.commands.CompleteOffer.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respondMessage(ctx, http.StatusOK, "offer completed")
}

// CancelOffer handles POST /api/v1/offers/:id/cancel.
func (s *Server) CancelOffer(ctx echo.Context) error {
	offerID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req CancelOfferRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	actorID, err := parseUUID("actorId", req.ActorID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOfferCommand(offerID, actorID, req.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.commands.CancelOffer.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respondMessage(ctx, http.StatusOK, "offer cancelled")
}

// RateBusiness handles POST /api/v1/offers/:id/rate.
func (s *Server) RateBusiness(ctx echo.Context) error {
	offerID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req RateBusinessRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	riderID, err := parseUUID("riderId", req.RiderID)
	if err != nil {
		return respondError(ctx, err)
	}

	rating, err := offer.NewRating(req.Score, req.Comment)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRateBusinessCommand(offerID, riderID, rating)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.commands.RateBusiness.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respondMessage(ctx, http.StatusOK, "business rated")
}

// parseUUID turns a malformed identifier into a validation error so the
// response mapping treats it as a client mistake rather than a server fault.
func parseUUID(paramName, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return id, nil
}

func waypointFromRequest(req WaypointRequest) (offer.Waypoint, error) {
	point, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return offer.Waypoint{}, err
	}

	return offer.NewWaypoint(req.Address, point, req.ContactName, req.ContactPhone, req.ScheduledAt)
}

func pricingFromRequest(req PricingRequest) (offer.Pricing, error) {
	base, err := kernel.NewMoney(req.Base)
	if err != nil {
		return offer.Pricing{}, err
	}

	distance, err := kernel.NewMoney(req.Distance)
	if err != nil {
		return offer.Pricing{}, err
	}

	urgency, err := kernel.NewMoney(req.Urgency)
	if err != nil {
		return offer.Pricing{}, err
	}

	return offer.NewPricing(base, distance, urgency), nil
}
