package types

import (
	"time"

	"folio-api/pkg/market"
	"folio-api/pkg/portfolio"
)

// HoldingView is a holding enriched with its quote-derived figures.
type HoldingView struct {
	ID          string    `json:"id"`
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Shares      float64   `json:"shares"`
	TotalCost   float64   `json:"totalCost"`
	Price       float64   `json:"price"`
	PriceChange float64   `json:"priceChange"`
	LastUpdated time.Time `json:"lastUpdated"`

	MarketValue float64 `json:"marketValue"`
	Gain        float64 `json:"gain"`
	GainPercent float64 `json:"gainPercent"`
	Allocation  float64 `json:"allocation"`
}

type PortfolioResponse struct {
	Holdings []HoldingView `json:"holdings"`
}

// PerformerView summarises one holding for ranking payloads.
type PerformerView struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	MarketValue float64 `json:"marketValue"`
	Gain        float64 `json:"gain"`
	GainPercent float64 `json:"gainPercent"`
}

type MetricsRequest struct {
	Limit int `form:"limit,optional"`
}

type MetricsResponse struct {
	Metrics     portfolio.Metrics  `json:"metrics"`
	Best        *PerformerView     `json:"best,omitempty"`
	Worst       *PerformerView     `json:"worst,omitempty"`
	Top         []PerformerView    `json:"top"`
	Allocations map[string]float64 `json:"allocations"`
}

type AddHoldingRequest struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Shares float64 `json:"shares"`
	Price  float64 `json:"price"`
}

type UpdatePriceRequest struct {
	Symbol string  `path:"symbol"`
	Price  float64 `json:"price"`
}

type RemoveHoldingRequest struct {
	ID string `path:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type MarketSummaryResponse struct {
	Indices []market.IndexQuote `json:"indices"`
}

type SearchRequest struct {
	Query string `form:"query"`
}

type SearchResponse struct {
	Results []market.SearchResult `json:"results"`
}

type HistoryRequest struct {
	Symbol   string `path:"symbol"`
	Range    string `form:"range,optional"`
	Interval string `form:"interval,optional"`
}
