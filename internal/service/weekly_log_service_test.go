package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"focozero-data/internal/domain"
)

type weeklyFixture struct {
	daily  *fakeDailyLogsRepo
	weekly *fakeWeeklyLogsRepo
	blocks *fakeBlocksRepo
	locker *fakeLocker
	svc    WeeklyLogService
}

func newWeeklyFixture() *weeklyFixture {
	daily := newFakeDailyLogsRepo()
	weekly := newFakeWeeklyLogsRepo()
	blocks := newFakeBlocksRepo()
	locker := &fakeLocker{}
	return &weeklyFixture{
		daily:  daily,
		weekly: weekly,
		blocks: blocks,
		locker: locker,
		svc:    NewWeeklyLogService(daily, weekly, blocks, locker, zap.NewNop()),
	}
}

func (f *weeklyFixture) seedDaily(t *testing.T, date string, summary domain.Summary) {
	t.Helper()
	day, err := domain.ParseDay(date)
	require.NoError(t, err)
	_, err = f.daily.Upsert(context.Background(), &domain.DailyLog{
		AgentID:  "agent-1",
		AreaID:   "area-1",
		Week:     domain.WeekNumber(day),
		LogDate:  day,
		Activity: domain.ActivityDefault,
		Summary:  summary,
	})
	require.NoError(t, err)
}

func TestWeeklyRebuild_FoldsDailyLogs(t *testing.T) {
	f := newWeeklyFixture()
	f.blocks.blocks["b1"] = &domain.Block{BlockID: "b1", AreaID: "area-1", Number: 3}
	f.blocks.blocks["b2"] = &domain.Block{BlockID: "b2", AreaID: "area-1", Number: 7}

	f.seedDaily(t, "2024-03-04", domain.Summary{
		Quarteiroes:      []string{"b1"},
		TotalQuarteiroes: 1,
		TotalVisitas:     5,
		TotalVisitasTipo: domain.TypeCounts{R: 5},
		TotalFocos:       1,
	})
	f.seedDaily(t, "2024-03-05", domain.Summary{
		Quarteiroes:      []string{"b1", "b2"},
		TotalQuarteiroes: 2,
		TotalVisitas:     4,
		TotalVisitasTipo: domain.TypeCounts{R: 3, C: 1},
	})

	resp, err := f.svc.Rebuild(context.Background(), RebuildWeeklyRequest{
		AgentID: "agent-1", AreaID: "area-1", Week: 10,
	})
	require.NoError(t, err)

	log := resp.WeeklyLog
	assert.Equal(t, 2, log.DaysWorked)
	assert.Equal(t, domain.DefaultWeeklyNotes, log.Notes)
	assert.Equal(t, 9, log.Summary.TotalVisitas)
	assert.Equal(t, 8, log.Summary.TotalVisitasTipo.R)
	assert.Equal(t, 1, log.Summary.TotalVisitasTipo.C)
	assert.Equal(t, 1, log.Summary.TotalFocos)
	// Block IDs resolve to printed numbers, deduped across days.
	assert.Equal(t, "3, 7", log.Summary.QuarteiroesTrabalhados)
	assert.Equal(t, 2, log.Summary.TotalQuarteiroesTrabalhados)
}

func TestWeeklyRebuild_NoDailyLogs(t *testing.T) {
	f := newWeeklyFixture()

	_, err := f.svc.Rebuild(context.Background(), RebuildWeeklyRequest{
		AgentID: "agent-1", AreaID: "area-1", Week: 10,
	})
	assert.True(t, errors.Is(err, domain.ErrNoDailyLogsFound))
}

func TestWeeklyRebuild_DeletedBlockSkipped(t *testing.T) {
	f := newWeeklyFixture()
	f.blocks.blocks["b1"] = &domain.Block{BlockID: "b1", AreaID: "area-1", Number: 3}

	f.seedDaily(t, "2024-03-04", domain.Summary{
		Quarteiroes: []string{"b1", "b-deleted"},
	})

	resp, err := f.svc.Rebuild(context.Background(), RebuildWeeklyRequest{
		AgentID: "agent-1", AreaID: "area-1", Week: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "3", resp.WeeklyLog.Summary.QuarteiroesTrabalhados)
	assert.Equal(t, 1, resp.WeeklyLog.Summary.TotalQuarteiroesTrabalhados)
}

func TestWeeklyRebuild_IdempotentOverwrite(t *testing.T) {
	f := newWeeklyFixture()
	f.seedDaily(t, "2024-03-04", domain.Summary{TotalVisitas: 5})

	first, err := f.svc.Rebuild(context.Background(), RebuildWeeklyRequest{
		AgentID: "agent-1", AreaID: "area-1", Week: 10,
	})
	require.NoError(t, err)

	second, err := f.svc.Rebuild(context.Background(), RebuildWeeklyRequest{
		AgentID: "agent-1", AreaID: "area-1", Week: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, first.WeeklyLog.WeeklyLogID, second.WeeklyLog.WeeklyLogID)
	assert.Len(t, f.weekly.logs, 1)

	require.Len(t, f.locker.acquired, 2)
	assert.Equal(t, "lock:weekly:agent-1:area-1:10", f.locker.acquired[0])
}

func TestWeeklyUpdateNotes_LeavesSummaryAlone(t *testing.T) {
	f := newWeeklyFixture()
	f.seedDaily(t, "2024-03-04", domain.Summary{TotalVisitas: 5})

	built, err := f.svc.Rebuild(context.Background(), RebuildWeeklyRequest{
		AgentID: "agent-1", AreaID: "area-1", Week: 10,
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateNotes(context.Background(), UpdateWeeklyNotesRequest{
		WeeklyLogID: built.WeeklyLog.WeeklyLogID,
		Notes:       "Quarteirão 3 em obras.",
		Activity:    5,
	})
	require.NoError(t, err)

	got, err := f.svc.GetWeeklyLog(context.Background(), GetWeeklyLogRequest{
		AgentID: "agent-1", AreaID: "area-1", Week: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "Quarteirão 3 em obras.", got.WeeklyLog.Notes)
	assert.Equal(t, 5, got.WeeklyLog.Activity)
	assert.Equal(t, 5, got.WeeklyLog.Summary.TotalVisitas)
}

func TestWeeklyRebuild_InvalidWeek(t *testing.T) {
	f := newWeeklyFixture()

	_, err := f.svc.Rebuild(context.Background(), RebuildWeeklyRequest{
		AgentID: "agent-1", AreaID: "area-1", Week: 0,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidReference))
}
