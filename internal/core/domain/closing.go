package domain

import "github.com/shopspring/decimal"

// ClosingResult summarizes one period close run. Re-running close on an
// already closed period returns AlreadyClosed=true with no new entries.
type ClosingResult struct {
	PeriodID        string          `json:"periodID"`
	ClosingEntries  []JournalEntry  `json:"closingEntries"`
	NetIncome       decimal.Decimal `json:"netIncome"`
	DrawingsClosed  decimal.Decimal `json:"drawingsClosed"`
	AlreadyClosed   bool            `json:"alreadyClosed"`
	AccountsTouched int             `json:"accountsTouched"`
}
