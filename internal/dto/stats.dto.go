package dto

import "github.com/shopspring/decimal"

type DayTotal struct {
	Day   string          `json:"day"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type ServiceTotal struct {
	Service string          `json:"service"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
}

type StatsSummary struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Count     int             `json:"count"`
	Revenue   decimal.Decimal `json:"revenue"`
	ByDay     []DayTotal      `json:"by_day"`
	ByService []ServiceTotal  `json:"by_service"`
}
