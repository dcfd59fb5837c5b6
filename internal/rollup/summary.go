package rollup

import (
	"sort"

	"focozero-data/internal/domain"
)

// VisitRow a visit annotated with the block identity of its property,
// as produced by the visits repository join (visit → property → block).
// The daily fold counts distinct blocks from this identity, never from
// the separate worked-block list, so a block is never double counted.
type VisitRow struct {
	Visit       domain.Visit
	BlockID     string
	BlockNumber int
}

// BuildDailySummary folds one agent/area/day visit set into a Summary.
//
// Per-property accumulators (larvicide-treated properties, properties
// with focus) count each property once even when the engine recomputes
// over multiple visits to the same property on the same day.
func BuildDailySummary(rows []VisitRow) domain.Summary {
	var s domain.Summary

	blocks := make(map[string]struct{})
	larvicideProps := make(map[string]struct{})
	focusProps := make(map[string]struct{})

	for _, row := range rows {
		v := row.Visit

		s.TotalVisitas++
		s.TotalVisitasTipo.Add(v.PType, 1)
		s.TotalDepInspecionados.Merge(v.Deposits)
		s.TotalDepEliminados += v.DepEliminated
		s.TotalQtdLarvicida += v.LarvicideQty
		s.TotalDepLarvicida += v.DepTreated
		s.TotalFocos += v.FociCount

		if v.LarvicideQty > 0 {
			larvicideProps[v.PropertyID] = struct{}{}
		}
		if v.FociCount > 0 {
			focusProps[v.PropertyID] = struct{}{}
		}

		blocks[row.BlockID] = struct{}{}
		s.IdsVisitas = append(s.IdsVisitas, v.VisitID)
	}

	s.TotalImoveisLarvicida = len(larvicideProps)
	s.ImoveisComFoco = len(focusProps)

	s.Quarteiroes = make([]string, 0, len(blocks))
	for id := range blocks {
		s.Quarteiroes = append(s.Quarteiroes, id)
	}
	sort.Strings(s.Quarteiroes)
	s.TotalQuarteiroes = len(s.Quarteiroes)

	return s
}

// BuildWeeklySummary folds a set of daily logs for one agent/area/week
// into the weekly summary plus the count of distinct worked days.
//
// numberByBlockID resolves the daily logs' block IDs to printed block
// numbers; IDs missing from the map are skipped (block deleted since the
// daily log was built). Scalar fields are plain sums; the block list is
// a set union re-counted after dedupe.
func BuildWeeklySummary(dailies []domain.DailyLog, numberByBlockID map[string]int) (domain.WeeklySummary, int) {
	var w domain.WeeklySummary

	blocks := NewBlockSet()
	days := make(map[string]struct{})

	for _, d := range dailies {
		sum := d.Summary

		w.TotalVisitas += sum.TotalVisitas
		w.TotalVisitasTipo.Merge(sum.TotalVisitasTipo)
		w.TotalDepInspecionados.Merge(sum.TotalDepInspecionados)
		w.TotalDepEliminados += sum.TotalDepEliminados
		w.TotalImoveisLarvicida += sum.TotalImoveisLarvicida
		w.TotalQtdLarvicida += sum.TotalQtdLarvicida
		w.TotalDepLarvicida += sum.TotalDepLarvicida
		w.ImoveisComFoco += sum.ImoveisComFoco
		w.TotalFocos += sum.TotalFocos

		for _, blockID := range sum.Quarteiroes {
			if number, ok := numberByBlockID[blockID]; ok {
				blocks.AddNumber(number)
			}
		}

		days[domain.Day(d.LogDate).Format("2006-01-02")] = struct{}{}
	}

	w.QuarteiroesTrabalhados = blocks.Joined()
	w.TotalQuarteiroesTrabalhados = blocks.Len()
	w.TotalQuarteiroes = blocks.Len()

	return w, len(days)
}

// MergeWeekly folds src into dst for the cycle's per-area rollup. The
// agent dimension disappears here: summaries of different agents over
// the same area add up, and their block lists union through the set.
func MergeWeekly(dst *domain.WeeklySummary, src domain.WeeklySummary) {
	dst.TotalVisitas += src.TotalVisitas
	dst.TotalVisitasTipo.Merge(src.TotalVisitasTipo)
	dst.TotalDepInspecionados.Merge(src.TotalDepInspecionados)
	dst.TotalDepEliminados += src.TotalDepEliminados
	dst.TotalImoveisLarvicida += src.TotalImoveisLarvicida
	dst.TotalQtdLarvicida += src.TotalQtdLarvicida
	dst.TotalDepLarvicida += src.TotalDepLarvicida
	dst.ImoveisComFoco += src.ImoveisComFoco
	dst.TotalFocos += src.TotalFocos

	merged := ParseBlockList(dst.QuarteiroesTrabalhados)
	merged.Union(ParseBlockList(src.QuarteiroesTrabalhados))
	dst.QuarteiroesTrabalhados = merged.Joined()
	dst.TotalQuarteiroesTrabalhados = merged.Len()
	dst.TotalQuarteiroes = merged.Len()
}
