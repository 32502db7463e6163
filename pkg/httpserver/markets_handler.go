package httpserver

import (
	"context"
	"net/http"
	"sort"

	"github.com/mselser95/betslip-validator/internal/markets"
	"github.com/mselser95/betslip-validator/internal/provider"
	"github.com/mselser95/betslip-validator/internal/settlement"
	"github.com/mselser95/betslip-validator/pkg/types"
	"go.uber.org/zap"
)

// BetCatalog lists the bet types the results provider offers odds for.
type BetCatalog interface {
	BetCatalog(ctx context.Context) ([]provider.BetType, error)
}

// SupportedResponse lists the markets the settlement registry can settle.
type SupportedResponse struct {
	Implemented []string `json:"implemented"`
	Count       int      `json:"count"`
}

// ResolveResponse reports how a market label maps onto the taxonomy.
type ResolveResponse struct {
	Name        string       `json:"name"`
	Key         string       `json:"key"`
	Market      types.Market `json:"market"`
	Team        types.Side   `json:"team,omitempty"`
	Implemented bool         `json:"implemented"`
}

// ParseResponse is a freeform parse result.
type ParseResponse struct {
	Text string `json:"text"`
	markets.Fragment
	Implemented bool `json:"implemented"`
}

// CatalogEntry is one provider bet type and its resolved market.
type CatalogEntry struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Market      types.Market `json:"market"`
	Implemented bool         `json:"implemented"`
}

// CatalogResponse summarizes the provider bet catalog.
type CatalogResponse struct {
	Total          int            `json:"total"`
	Implemented    int            `json:"implemented_count"`
	NotImplemented int            `json:"not_implemented_count"`
	Markets        []CatalogEntry `json:"markets"`
}

type marketsHandler struct {
	catalog BetCatalog
	logger  *zap.Logger
}

func newMarketsHandler(catalog BetCatalog, logger *zap.Logger) *marketsHandler {
	return &marketsHandler{catalog: catalog, logger: logger}
}

// SupportedMarkets returns the sorted identifiers of every settleable market.
func SupportedMarkets() []string {
	var supported []string
	for _, m := range settlement.SupportedMarkets() {
		supported = append(supported, string(m))
	}
	sort.Strings(supported)
	return supported
}

// ResolveMarket describes how name resolves.
func ResolveMarket(name string) ResolveResponse {
	m := markets.Resolve(name)
	return ResolveResponse{
		Name:        name,
		Key:         markets.NormalizeKey(name),
		Market:      m,
		Team:        markets.ImpliedTeam(name),
		Implemented: settlement.Supported(m),
	}
}

// ParseBet runs the freeform parser over text.
func ParseBet(text string) ParseResponse {
	frag := markets.Parse(text)
	return ParseResponse{
		Text:        text,
		Fragment:    frag,
		Implemented: settlement.Supported(frag.Market),
	}
}

// BuildCatalog resolves every provider bet name.
func BuildCatalog(bets []provider.BetType) CatalogResponse {
	resp := CatalogResponse{Markets: make([]CatalogEntry, 0, len(bets))}
	for _, bet := range bets {
		m := markets.Resolve(bet.Name)
		entry := CatalogEntry{
			ID:          bet.ID,
			Name:        bet.Name,
			Market:      m,
			Implemented: settlement.Supported(m),
		}
		if entry.Implemented {
			resp.Implemented++
		}
		resp.Markets = append(resp.Markets, entry)
	}
	resp.Total = len(resp.Markets)
	resp.NotImplemented = resp.Total - resp.Implemented

	return resp
}

// handleSupported handles GET /api/markets/supported.
func (h *marketsHandler) handleSupported(w http.ResponseWriter, r *http.Request) {
	implemented := SupportedMarkets()
	writeJSON(w, h.logger, http.StatusOK, SupportedResponse{
		Implemented: implemented,
		Count:       len(implemented),
	})
}

// handleResolve handles GET /api/markets/resolve?name=<label>.
func (h *marketsHandler) handleResolve(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, h.logger, http.StatusBadRequest, "missing required query parameter: name")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, ResolveMarket(name))
}

// handleParse handles GET /api/bets/parse?text=<bet>.
func (h *marketsHandler) handleParse(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		writeError(w, h.logger, http.StatusBadRequest, "missing required query parameter: text")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, ParseBet(text))
}

// handleCatalog handles GET /api/markets/catalog.
func (h *marketsHandler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	bets, err := h.catalog.BetCatalog(r.Context())
	if err != nil {
		h.logger.Warn("bet-catalog-fetch-failed", zap.Error(err))
		writeError(w, h.logger, http.StatusBadGateway, "fetch bet catalog: "+err.Error())
		return
	}

	writeJSON(w, h.logger, http.StatusOK, BuildCatalog(bets))
}
