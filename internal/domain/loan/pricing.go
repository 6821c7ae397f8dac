package loan

import "github.com/shopspring/decimal"

// Pricing is simple interest over term divided evenly across months, not a
// compound amortization schedule. Existing clients depend on these exact
// figures.

var (
	baseRate      = decimal.NewFromInt(10)
	smallLoanCut  = decimal.NewFromInt(1)             // amount < 1000
	largeLoanAdd  = decimal.New(5, -1)                // amount > 3000
	shortTermCut  = decimal.New(15, -1)               // duration <= 3 months
	longTermAdd   = decimal.NewFromInt(1)             // duration >= 12 months
	smallLoanMax  = decimal.NewFromInt(1000)
	largeLoanMin  = decimal.NewFromInt(3000)
	hundred       = decimal.NewFromInt(100)
	one           = decimal.NewFromInt(1)
)

// MinLoanAmount is the smallest loan a farmer may request.
var MinLoanAmount = decimal.NewFromInt(500)

// InterestRate returns the annual rate in percent, to 1 decimal place.
// Adjustments are additive and independent of each other.
func InterestRate(amount decimal.Decimal, durationMonths int) decimal.Decimal {
	rate := baseRate
	if amount.LessThan(smallLoanMax) {
		rate = rate.Sub(smallLoanCut)
	}
	if amount.GreaterThan(largeLoanMin) {
		rate = rate.Add(largeLoanAdd)
	}
	if durationMonths <= 3 {
		rate = rate.Sub(shortTermCut)
	}
	if durationMonths >= 12 {
		rate = rate.Add(longTermAdd)
	}
	return rate.Round(1)
}

// TotalRepayable is principal plus simple interest for the full term.
func TotalRepayable(principal, rate decimal.Decimal) decimal.Decimal {
	return principal.Mul(one.Add(rate.Div(hundred)))
}

// MonthlyPayment spreads the total repayable evenly across the term,
// rounded to 2 decimals.
func MonthlyPayment(amount decimal.Decimal, durationMonths int) decimal.Decimal {
	rate := InterestRate(amount, durationMonths)
	total := TotalRepayable(amount, rate)
	return total.DivRound(decimal.NewFromInt(int64(durationMonths)), 2)
}

// MaxLoanAmount is the tiered ceiling on requested principal per credit
// score band. Not a risk model, just a lookup.
func MaxLoanAmount(creditScore int) decimal.Decimal {
	switch {
	case creditScore >= 800:
		return decimal.NewFromInt(5000)
	case creditScore >= 700:
		return decimal.NewFromInt(3500)
	case creditScore >= 600:
		return decimal.NewFromInt(2000)
	default:
		return decimal.NewFromInt(1000)
	}
}
