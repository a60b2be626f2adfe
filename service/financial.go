package service

import (
	"context"
	"fmt"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/shopspring/decimal"
)

// defaultFinanceDays used when the caller gives no range
const defaultFinanceDays = 30

// FinanceService revenue and cost figures derived from orders and the stock ledger
type FinanceService struct {
	orders repository.Repository[models.Order]
	items  repository.Repository[models.InventoryItem]
	ledger repository.TransactionLog
	now    Clock
}

func NewFinanceService(s *repository.Stores) *FinanceService {
	return &FinanceService{orders: s.Orders, items: s.Items, ledger: s.Ledger, now: time.Now}
}

type dayTotals struct {
	revenue decimal.Decimal
	cost    decimal.Decimal
	sales   int
}

// Summary KPIs for [from, to], both YYYY-MM-DD and inclusive. Empty bounds
// default to the last 30 days.
func (s *FinanceService) Summary(ctx context.Context, from, to string) (*models.FinancialSummary, error) {
	start, end, err := s.window(from, to)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	rows, err := s.ledger.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	costOf := make(map[string]decimal.Decimal, len(items))
	for _, item := range items {
		costOf[item.ID] = decimal.NewFromFloat(item.CostPrice)
	}

	in := func(t time.Time) bool { return !t.Before(start) && t.Before(end) }
	days := make(map[string]*dayTotals)
	day := func(t time.Time) *dayTotals {
		key := t.Format(dateLayout)
		if days[key] == nil {
			days[key] = &dayTotals{revenue: decimal.Zero, cost: decimal.Zero}
		}
		return days[key]
	}

	revenue, cost, dues := decimal.Zero, decimal.Zero, decimal.Zero
	sales := 0
	bySource := make(map[models.OrderSource]*models.RevenueBySource)
	sourceRevenue := make(map[models.OrderSource]decimal.Decimal)
	for _, o := range orders {
		if o.Status == models.OrderCancelled || !in(o.CreatedAt) {
			continue
		}
		paid := decimal.NewFromFloat(o.PaidAmount)
		revenue = revenue.Add(paid)
		dues = dues.Add(decimal.NewFromFloat(o.DueAmount))
		sales++

		d := day(o.CreatedAt)
		d.revenue = d.revenue.Add(paid)
		d.sales++

		if bySource[o.Source] == nil {
			bySource[o.Source] = &models.RevenueBySource{Source: o.Source}
		}
		bySource[o.Source].Orders++
		sourceRevenue[o.Source] = sourceRevenue[o.Source].Add(paid)
	}
	for _, row := range rows {
		if row.Type != models.TransactionPurchase || !in(row.CreatedAt) {
			continue
		}
		c := costOf[row.ItemID].Mul(decimal.NewFromInt(row.Quantity))
		cost = cost.Add(c)
		d := day(row.CreatedAt)
		d.cost = d.cost.Add(c)
	}

	profit := revenue.Sub(cost)
	kpis := models.FinancialKPIs{
		TotalRevenue:  revenue.Round(2).InexactFloat64(),
		TotalSales:    sales,
		InventoryCost: cost.Round(2).InexactFloat64(),
		Profit:        profit.Round(2).InexactFloat64(),
		PendingDues:   dues.Round(2).InexactFloat64(),
	}
	if revenue.IsPositive() {
		kpis.ProfitMargin = profit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}

	summary := &models.FinancialSummary{From: start, To: end.Add(-time.Nanosecond), KPIs: kpis}
	for t := start; t.Before(end); t = t.AddDate(0, 0, 1) {
		point := models.DailyFinancial{Date: t.Format(dateLayout)}
		if d := days[point.Date]; d != nil {
			point.Revenue = d.revenue.Round(2).InexactFloat64()
			point.InventoryCost = d.cost.Round(2).InexactFloat64()
			point.Profit = d.revenue.Sub(d.cost).Round(2).InexactFloat64()
			point.Sales = d.sales
		}
		summary.Daily = append(summary.Daily, point)
	}
	for _, src := range orderSources {
		entry := bySource[src]
		if entry == nil {
			continue
		}
		entry.Revenue = sourceRevenue[src].Round(2).InexactFloat64()
		if revenue.IsPositive() {
			entry.Percentage = sourceRevenue[src].Div(revenue).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		}
		summary.BySource = append(summary.BySource, *entry)
	}
	return summary, nil
}

// window [start, end) in the clock's location
func (s *FinanceService) window(from, to string) (time.Time, time.Time, error) {
	now := s.now()
	loc := now.Location()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	if to != "" {
		t, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return time.Time{}, time.Time{}, utils.CreateFieldError("to", "must be a YYYY-MM-DD date")
		}
		end = t.AddDate(0, 0, 1)
	}
	start := end.AddDate(0, 0, -defaultFinanceDays)
	if from != "" {
		t, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return time.Time{}, time.Time{}, utils.CreateFieldError("from", "must be a YYYY-MM-DD date")
		}
		start = t
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, utils.CreateFieldError("from", "must not be after to")
	}
	return start, end, nil
}
