package service

import (
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// packageLine price of a package after its percentage discount, unrounded
func packageLine(p models.HealthPackage) decimal.Decimal {
	price := decimal.NewFromInt(p.Price)
	if p.Discount <= 0 {
		return price
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(p.Discount).Div(hundred))
	return price.Mul(factor)
}

// QuotePrice totals for a selection. Sums use unrounded package lines;
// only the Display fields are rounded. Unknown ids contribute nothing.
func QuotePrice(tests, packages []string, catalog *CatalogSnapshot) models.PriceQuote {
	testsTotal := decimal.Zero
	for _, id := range tests {
		if t, ok := catalog.Tests[id]; ok {
			testsTotal = testsTotal.Add(decimal.NewFromInt(t.Price.Final))
		}
	}

	packagesTotal := decimal.Zero
	lines := make([]int64, 0, len(packages))
	for _, id := range packages {
		p, ok := catalog.Packages[id]
		if !ok {
			continue
		}
		line := packageLine(p)
		packagesTotal = packagesTotal.Add(line)
		lines = append(lines, line.Round(0).IntPart())
	}

	// coupon and home collection fee are placeholders until billing rules exist
	fee := decimal.Zero
	discount := decimal.Zero
	grand := testsTotal.Add(packagesTotal).Add(fee).Sub(discount)

	return models.PriceQuote{
		TestsTotal:         testsTotal.InexactFloat64(),
		PackagesTotal:      packagesTotal.InexactFloat64(),
		HomeCollectionFee:  fee.InexactFloat64(),
		Discount:           discount.InexactFloat64(),
		GrandTotal:         grand.InexactFloat64(),
		DisplayGrandTotal:  grand.Round(0).IntPart(),
		DisplayPackageLine: lines,
	}
}
