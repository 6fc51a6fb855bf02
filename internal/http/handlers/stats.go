package handlers

import (
	"math/big"
	"net/http"
	"strings"

	"crowdfund/internal/domain"
)

var coinUnits = new(big.Int).SetUint64(uint64(domain.CoinUnits))

// amountTotal sums amounts past the uint64 range of a single Amount and
// renders the total in the same decimal form.
type amountTotal struct {
	units big.Int
}

func (t *amountTotal) add(a domain.Amount) {
	t.units.Add(&t.units, new(big.Int).SetUint64(uint64(a)))
}

func (t *amountTotal) String() string {
	whole, frac := new(big.Int).QuoRem(&t.units, coinUnits, new(big.Int))
	if frac.Sign() == 0 {
		return whole.String()
	}
	fs := frac.String()
	fs = strings.Repeat("0", domain.CoinDecimals-len(fs)) + fs
	return whole.String() + "." + strings.TrimRight(fs, "0")
}

// StatsSummary aggregates the project table.
func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	var (
		active, successful, failed int
		pledged, goals             amountTotal
	)
	for _, p := range a.Engine.Projects() {
		switch p.Status() {
		case domain.ProjectStatusActive:
			active++
		case domain.ProjectStatusSuccessful:
			successful++
		case domain.ProjectStatusFailed:
			failed++
		}
		pledged.add(p.Balance)
		goals.add(p.FundGoal)
	}
	a.json(w, http.StatusOK, map[string]any{
		"projects_active":     active,
		"projects_successful": successful,
		"projects_failed":     failed,
		"total_pledged":       pledged.String(),
		"total_goals":         goals.String(),
		"notifications":       a.Log.LastSeq(),
	})
}
