package finance

import "github.com/shopspring/decimal"

// Summary is derived from the ledger on every read and never stored.
type Summary struct {
	PendingAmount decimal.Decimal
	PendingCount  int
	PaidAmount    decimal.Decimal
	PaidCount     int
	TotalInflow   decimal.Decimal
	TotalOutflow  decimal.Decimal
	Balance       decimal.Decimal
}

// Summarize folds pendencies and cash flows read from the same snapshot.
func Summarize(pendings []Pending, flows []CashFlow) Summary {
	out := SummarizePendings(pendings)
	for _, flow := range flows {
		switch flow.Type {
		case FlowInflow:
			out.TotalInflow = out.TotalInflow.Add(flow.Amount)
		case FlowOutflow:
			out.TotalOutflow = out.TotalOutflow.Add(flow.Amount)
		}
	}
	out.Balance = out.TotalInflow.Sub(out.TotalOutflow)
	return out
}

func SummarizePendings(pendings []Pending) Summary {
	out := Summary{
		PendingAmount: decimal.Zero,
		PaidAmount:    decimal.Zero,
		TotalInflow:   decimal.Zero,
		TotalOutflow:  decimal.Zero,
		Balance:       decimal.Zero,
	}
	for _, p := range pendings {
		switch p.Status {
		case StatusPending:
			out.PendingAmount = out.PendingAmount.Add(p.Amount)
			out.PendingCount++
		case StatusPaid:
			out.PaidAmount = out.PaidAmount.Add(p.Amount)
			out.PaidCount++
		}
	}
	return out
}
