package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"focozero-data/internal/domain"
	"focozero-data/internal/repository"
	"focozero-data/internal/rollup"
)

// WeeklyLogService derives the per-agent, per-area, per-week rollup from
// the week's daily logs. Weekly logs stay decoupled from their sources:
// notes and activity are editable afterwards, and rebuilding never
// touches the daily rows.
type WeeklyLogService interface {
	Rebuild(ctx context.Context, req RebuildWeeklyRequest) (*WeeklyLogResponse, error)
	GetWeeklyLog(ctx context.Context, req GetWeeklyLogRequest) (*WeeklyLogResponse, error)
	UpdateNotes(ctx context.Context, req UpdateWeeklyNotesRequest) (*WeeklyLogResponse, error)
}

type weeklyLogService struct {
	dailyLogsRepo  repository.DailyLogsRepository
	weeklyLogsRepo repository.WeeklyLogsRepository
	blocksRepo     repository.BlocksRepository
	locker         Locker
	logger         *zap.Logger
}

func NewWeeklyLogService(
	dailyLogsRepo repository.DailyLogsRepository,
	weeklyLogsRepo repository.WeeklyLogsRepository,
	blocksRepo repository.BlocksRepository,
	locker Locker,
	logger *zap.Logger,
) WeeklyLogService {
	return &weeklyLogService{
		dailyLogsRepo:  dailyLogsRepo,
		weeklyLogsRepo: weeklyLogsRepo,
		blocksRepo:     blocksRepo,
		locker:         locker,
		logger:         logger,
	}
}

type RebuildWeeklyRequest struct {
	AgentID  string
	AreaID   string
	Week     int
	Activity int    // 0 means default
	Notes    string // "" means legacy default
}

type GetWeeklyLogRequest struct {
	AgentID string
	AreaID  string
	Week    int
}

type UpdateWeeklyNotesRequest struct {
	WeeklyLogID string
	Notes       string
	Activity    int
}

// WeeklyLogView wire shape of a weekly log.
type WeeklyLogView struct {
	WeeklyLogID string               `json:"idSemanal"`
	AgentID     string               `json:"idAgente"`
	AreaID      string               `json:"idArea"`
	Week        int                  `json:"semana"`
	Activity    int                  `json:"atividade"`
	DaysWorked  int                  `json:"qtdDiasTrabalhados"`
	Notes       string               `json:"observacoes"`
	Summary     domain.WeeklySummary `json:"resumo"`
	CycleID     *string              `json:"idCiclo,omitempty"`
}

func newWeeklyLogView(l *domain.WeeklyLog) *WeeklyLogView {
	v := &WeeklyLogView{
		WeeklyLogID: l.WeeklyLogID,
		AgentID:     l.AgentID,
		AreaID:      l.AreaID,
		Week:        l.Week,
		Activity:    l.Activity,
		DaysWorked:  l.DaysWorked,
		Notes:       l.Notes,
		Summary:     l.Summary,
	}
	if l.CycleID.Valid {
		id := l.CycleID.String
		v.CycleID = &id
	}
	return v
}

type WeeklyLogResponse struct {
	WeeklyLog *WeeklyLogView `json:"semanal"`
}

func weeklyLockKey(agentID, areaID string, week int) string {
	return fmt.Sprintf("lock:weekly:%s:%s:%d", agentID, areaID, week)
}

func (s *weeklyLogService) Rebuild(ctx context.Context, req RebuildWeeklyRequest) (*WeeklyLogResponse, error) {
	if req.Week < 1 {
		return nil, fmt.Errorf("%w: week %d", domain.ErrInvalidReference, req.Week)
	}
	activity := req.Activity
	if activity == 0 {
		activity = domain.ActivityDefault
	}
	if activity < domain.ActivityMin || activity > domain.ActivityMax {
		return nil, fmt.Errorf("%w: activity %d out of range", domain.ErrInvalidReference, activity)
	}
	notes := req.Notes
	if notes == "" {
		notes = domain.DefaultWeeklyNotes
	}

	lockKey := weeklyLockKey(req.AgentID, req.AreaID, req.Week)
	token, err := s.locker.Lock(ctx, lockKey)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.locker.Unlock(context.Background(), lockKey, token); err != nil {
			s.logger.Warn("Failed to release weekly rollup lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	dailies, err := s.dailyLogsRepo.ListAgentAreaWeek(ctx, req.AgentID, req.AreaID, req.Week)
	if err != nil {
		return nil, err
	}
	if len(dailies) == 0 {
		return nil, fmt.Errorf("%w: agent %s area %s week %d",
			domain.ErrNoDailyLogsFound, req.AgentID, req.AreaID, req.Week)
	}

	blockIDs := []string{}
	seen := map[string]struct{}{}
	for _, d := range dailies {
		for _, id := range d.Summary.Quarteiroes {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			blockIDs = append(blockIDs, id)
		}
	}
	numbers, err := s.blocksRepo.GetNumbersByIDs(ctx, blockIDs)
	if err != nil {
		return nil, err
	}

	summary, daysWorked := rollup.BuildWeeklySummary(dailies, numbers)

	log := &domain.WeeklyLog{
		AgentID:    req.AgentID,
		AreaID:     req.AreaID,
		Week:       req.Week,
		Activity:   activity,
		DaysWorked: daysWorked,
		Notes:      notes,
		Summary:    summary,
	}

	id, err := s.weeklyLogsRepo.Upsert(ctx, log)
	if err != nil {
		return nil, err
	}
	log.WeeklyLogID = id

	s.logger.Info("Weekly log rebuilt",
		zap.String("weekly_log_id", id),
		zap.String("agent_id", req.AgentID),
		zap.String("area_id", req.AreaID),
		zap.Int("week", req.Week),
		zap.Int("days_worked", daysWorked))

	return &WeeklyLogResponse{WeeklyLog: newWeeklyLogView(log)}, nil
}

func (s *weeklyLogService) GetWeeklyLog(ctx context.Context, req GetWeeklyLogRequest) (*WeeklyLogResponse, error) {
	log, err := s.weeklyLogsRepo.GetByKey(ctx, req.AgentID, req.AreaID, req.Week)
	if err != nil {
		return nil, err
	}
	return &WeeklyLogResponse{WeeklyLog: newWeeklyLogView(log)}, nil
}

func (s *weeklyLogService) UpdateNotes(ctx context.Context, req UpdateWeeklyNotesRequest) (*WeeklyLogResponse, error) {
	activity := req.Activity
	if activity == 0 {
		activity = domain.ActivityDefault
	}
	if activity < domain.ActivityMin || activity > domain.ActivityMax {
		return nil, fmt.Errorf("%w: activity %d out of range", domain.ErrInvalidReference, activity)
	}
	notes := req.Notes
	if notes == "" {
		notes = domain.DefaultWeeklyNotes
	}

	if err := s.weeklyLogsRepo.UpdateNotes(ctx, req.WeeklyLogID, notes, activity); err != nil {
		return nil, err
	}
	return &WeeklyLogResponse{}, nil
}
