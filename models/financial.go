package models

import "time"

// FinancialKPIs headline figures for a period
type FinancialKPIs struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalSales    int     `json:"totalSales"`
	InventoryCost float64 `json:"inventoryCost"`
	Profit        float64 `json:"profit"`
	ProfitMargin  float64 `json:"profitMargin"`
	PendingDues   float64 `json:"pendingDues"`
}

// DailyFinancial one point of the revenue series
type DailyFinancial struct {
	Date          string  `json:"date"`
	Revenue       float64 `json:"revenue"`
	Sales         int     `json:"sales"`
	InventoryCost float64 `json:"inventoryCost"`
	Profit        float64 `json:"profit"`
}

// RevenueBySource revenue share of one order source
type RevenueBySource struct {
	Source     OrderSource `json:"source"`
	Revenue    float64     `json:"revenue"`
	Orders     int         `json:"orders"`
	Percentage float64     `json:"percentage"`
}

// FinancialSummary response of the finance dashboard
type FinancialSummary struct {
	From     time.Time         `json:"from"`
	To       time.Time         `json:"to"`
	KPIs     FinancialKPIs     `json:"kpis"`
	Daily    []DailyFinancial  `json:"daily"`
	BySource []RevenueBySource `json:"bySource"`
}
