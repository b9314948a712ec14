// Package server exposes the calculation engine over HTTP. The engine stays
// a pure in-process function; this is the thin deployment shell around it.
package server

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"github.com/nkharadze/taxge/internal/calculation"
	"github.com/nkharadze/taxge/internal/domain"
)

// CalculationRequest is the wire shape of a calculation call: the tax year,
// residency status, and income item arrays keyed by regime id.
type CalculationRequest struct {
	Year         int             `json:"year"`
	Residency    string          `json:"residency"`
	FamilyIncome decimal.Decimal `json:"familyIncome"`
	Incomes      IncomesByRegime `json:"incomes"`
}

// IncomesByRegime carries the per-regime item arrays.
type IncomesByRegime struct {
	Salary        []domain.SalaryIncome        `json:"salary,omitempty"`
	MicroBusiness []domain.MicroBusinessIncome `json:"micro_business,omitempty"`
	SmallBusiness []domain.SmallBusinessIncome `json:"small_business,omitempty"`
	Rental        []domain.RentalIncome        `json:"rental,omitempty"`
	CapitalGains  []domain.CapitalGainsIncome  `json:"capital_gains,omitempty"`
	Dividends     []domain.DividendIncome      `json:"dividends,omitempty"`
	Interest      []domain.InterestIncome      `json:"interest,omitempty"`
	PropertyTax   []domain.PropertyHolding     `json:"property_tax,omitempty"`
}

// Profile converts the request into the engine's input type.
func (cr *CalculationRequest) Profile() *domain.Profile {
	return &domain.Profile{
		Year:          cr.Year,
		Residency:     domain.Residency(cr.Residency),
		FamilyIncome:  cr.FamilyIncome,
		Salary:        cr.Incomes.Salary,
		MicroBusiness: cr.Incomes.MicroBusiness,
		SmallBusiness: cr.Incomes.SmallBusiness,
		Rental:        cr.Incomes.Rental,
		CapitalGains:  cr.Incomes.CapitalGains,
		Dividends:     cr.Incomes.Dividends,
		Interest:      cr.Incomes.Interest,
		Property:      cr.Incomes.PropertyTax,
	}
}

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Server routes HTTP requests to a shared engine.
type Server struct {
	Engine *calculation.Engine
	Logger calculation.Logger
}

// New creates a server around the given engine.
func New(engine *calculation.Engine) *Server {
	return &Server{Engine: engine, Logger: calculation.NopLogger{}}
}

// ListenAndServe blocks serving HTTP on addr.
func (s *Server) ListenAndServe(addr string) error {
	return fasthttp.ListenAndServe(addr, s.Handler)
}

// Handler is the fasthttp request handler.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/calculate":
		s.handleCalculate(ctx)
	case "/healthz":
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":"ok"}`)
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) handleCalculate(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed, use POST")
		return
	}

	var req CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := s.Engine.Calculate(req.Profile())
	if err != nil {
		status := fasthttp.StatusBadRequest
		var confErr *domain.ConfigurationError
		if errors.As(err, &confErr) {
			// A bad rule set is a deployment problem, not a client one.
			status = fasthttp.StatusInternalServerError
		}
		s.Logger.Errorf("calculation failed: %v", err)
		s.writeError(ctx, status, err.Error())
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		s.Logger.Errorf("failed to encode result: %v", err)
		s.writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode result")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	body, err := json.Marshal(ErrorResponse{Status: status, Message: message})
	if err != nil {
		ctx.SetBodyString(fmt.Sprintf(`{"status":%d,"message":"internal error"}`, status))
		return
	}
	ctx.SetBody(body)
}
