package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mselser95/betslip-validator/internal/markets"
	"github.com/mselser95/betslip-validator/internal/provider"
	"github.com/mselser95/betslip-validator/pkg/types"
	"go.uber.org/zap"
)

// SlipSettler settles an ordered list of selections.
type SlipSettler interface {
	Settle(ctx context.Context, selections []types.Selection) *types.SlipResult
}

// FixtureResolver finds the fixture two teams played on a date.
type FixtureResolver interface {
	Resolve(ctx context.Context, home, away, date string) (provider.Resolution, error)
}

// ValidateRequest is the body of POST /api/slips/validate.
type ValidateRequest struct {
	Selections []markets.Row `json:"selections"`
}

// FreeformRow is one bookmaker-style bet. The fixture is given either by id
// or by the two team names and the match date.
type FreeformRow struct {
	FixtureID int64  `json:"fixture_id,omitempty"`
	Home      string `json:"home,omitempty"`
	Away      string `json:"away,omitempty"`
	Date      string `json:"date,omitempty"`
	Bet       string `json:"bet"`
	Team      string `json:"team,omitempty"`
}

// FreeformRequest is the body of POST /api/slips/validate/freeform.
type FreeformRequest struct {
	Rows []FreeformRow `json:"rows"`
}

// requestError is a problem with the request as a whole, reported with its
// HTTP status instead of a slip.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func unprocessable(format string, args ...interface{}) *requestError {
	return &requestError{status: http.StatusUnprocessableEntity, message: fmt.Sprintf(format, args...)}
}

type slipHandler struct {
	settler       SlipSettler
	resolver      FixtureResolver
	maxSelections int
	logger        *zap.Logger
}

func newSlipHandler(settler SlipSettler, resolver FixtureResolver, maxSelections int, logger *zap.Logger) *slipHandler {
	if maxSelections <= 0 {
		maxSelections = DefaultMaxSelections
	}
	return &slipHandler{
		settler:       settler,
		resolver:      resolver,
		maxSelections: maxSelections,
		logger:        logger,
	}
}

// handleValidate handles POST /api/slips/validate.
func (h *slipHandler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.checkSize(len(req.Selections), "selections"); err != nil {
		h.fail(w, err)
		return
	}

	selections := make([]types.Selection, 0, len(req.Selections))
	for i, row := range req.Selections {
		if row.FixtureID <= 0 {
			h.fail(w, unprocessable("selections[%d]: fixture_id must be positive", i))
			return
		}
		selections = append(selections, markets.BuildSelection(row))
	}

	h.settle(w, r, selections)
}

// handleFreeform handles POST /api/slips/validate/freeform.
func (h *slipHandler) handleFreeform(w http.ResponseWriter, r *http.Request) {
	var req FreeformRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.checkSize(len(req.Rows), "rows"); err != nil {
		h.fail(w, err)
		return
	}

	resolved := make(map[string]provider.Resolution)
	selections := make([]types.Selection, 0, len(req.Rows))
	for i, row := range req.Rows {
		sel, err := h.freeformSelection(r.Context(), row, resolved)
		if err != nil {
			h.fail(w, fmt.Errorf("rows[%d]: %w", i, err))
			return
		}
		selections = append(selections, sel)
	}

	h.settle(w, r, selections)
}

// freeformSelection parses one row, resolving its fixture when only the team
// names are given. Resolutions are shared across rows of the same request.
func (h *slipHandler) freeformSelection(ctx context.Context, row FreeformRow, resolved map[string]provider.Resolution) (types.Selection, error) {
	if strings.TrimSpace(row.Bet) == "" {
		return types.Selection{}, unprocessable("bet cannot be empty")
	}
	if row.FixtureID < 0 {
		return types.Selection{}, unprocessable("fixture_id must be positive")
	}

	res := provider.Resolution{FixtureID: row.FixtureID}
	if row.FixtureID == 0 {
		var err error
		res, err = h.resolve(ctx, row, resolved)
		if err != nil {
			return types.Selection{}, err
		}
	}

	frag := markets.Parse(row.Bet)
	sel := markets.FromFragment(res.FixtureID, row.Bet, frag, row.Team)
	if res.Swapped {
		sel = markets.FlipSides(sel)
	}

	return sel, nil
}

func (h *slipHandler) resolve(ctx context.Context, row FreeformRow, resolved map[string]provider.Resolution) (provider.Resolution, error) {
	if row.Home == "" || row.Away == "" || row.Date == "" {
		return provider.Resolution{}, unprocessable("fixture_id or home, away and date are required")
	}
	if h.resolver == nil {
		return provider.Resolution{}, &requestError{
			status:  http.StatusServiceUnavailable,
			message: "fixture resolution is not available",
		}
	}

	key := strings.Join([]string{row.Home, row.Away, row.Date}, "\x00")
	if res, ok := resolved[key]; ok {
		return res, nil
	}

	res, err := h.resolver.Resolve(ctx, row.Home, row.Away, row.Date)
	switch {
	case err == nil:
	case errors.Is(err, provider.ErrFixtureNotFound), errors.Is(err, provider.ErrAmbiguousFixture):
		return provider.Resolution{}, unprocessable("%v", err)
	default:
		return provider.Resolution{}, &requestError{
			status:  http.StatusBadGateway,
			message: "resolve fixture: " + err.Error(),
		}
	}

	resolved[key] = res
	return res, nil
}

func (h *slipHandler) checkSize(n int, field string) error {
	if n == 0 {
		return unprocessable("%s cannot be empty", field)
	}
	if n > h.maxSelections {
		return unprocessable("too many %s: %d (max %d)", field, n, h.maxSelections)
	}
	return nil
}

func (h *slipHandler) settle(w http.ResponseWriter, r *http.Request, selections []types.Selection) {
	slip := h.settler.Settle(r.Context(), selections)
	writeJSON(w, h.logger, http.StatusOK, slip)
}

func (h *slipHandler) fail(w http.ResponseWriter, err error) {
	var reqErr *requestError
	if !errors.As(err, &reqErr) {
		writeError(w, h.logger, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Debug("slip-request-rejected",
		zap.Int("status", reqErr.status),
		zap.String("error", err.Error()))
	writeError(w, h.logger, reqErr.status, err.Error())
}
