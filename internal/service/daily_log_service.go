package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"focozero-data/internal/domain"
	"focozero-data/internal/repository"
	"focozero-data/internal/rollup"
)

// Locker serializes rollup recomputation per singleton key. Satisfied by
// store.Mutex; tests substitute an in-memory fake.
type Locker interface {
	Lock(ctx context.Context, key string) (string, error)
	Unlock(ctx context.Context, key, token string) error
}

// DailyLogService derives the per-agent, per-area, per-day rollup from
// the visit events. Rebuilding is idempotent: the fold always starts
// from the full visit set of the day and the upsert replaces the
// singleton row in place.
type DailyLogService interface {
	Rebuild(ctx context.Context, req RebuildDailyRequest) (*DailyLogResponse, error)
	GetDailyLog(ctx context.Context, req GetDailyLogRequest) (*DailyLogResponse, error)
}

type dailyLogService struct {
	visitsRepo    repository.VisitsRepository
	blocksRepo    repository.BlocksRepository
	dailyLogsRepo repository.DailyLogsRepository
	locker        Locker
	logger        *zap.Logger
}

func NewDailyLogService(
	visitsRepo repository.VisitsRepository,
	blocksRepo repository.BlocksRepository,
	dailyLogsRepo repository.DailyLogsRepository,
	locker Locker,
	logger *zap.Logger,
) DailyLogService {
	return &dailyLogService{
		visitsRepo:    visitsRepo,
		blocksRepo:    blocksRepo,
		dailyLogsRepo: dailyLogsRepo,
		locker:        locker,
		logger:        logger,
	}
}

type RebuildDailyRequest struct {
	AgentID  string
	AreaID   string
	Date     string
	Activity int // 0 means default
}

type GetDailyLogRequest struct {
	AgentID string
	AreaID  string
	Date    string
}

// DailyLogView wire shape of a daily log; the summary keeps its legacy
// keys from the domain tags.
type DailyLogView struct {
	DailyLogID string         `json:"idDiario"`
	AgentID    string         `json:"idAgente"`
	AreaID     string         `json:"idArea"`
	Week       int            `json:"semana"`
	LogDate    string         `json:"data"`
	Activity   int            `json:"atividade"`
	Summary    domain.Summary `json:"resumo"`
}

func newDailyLogView(l *domain.DailyLog) *DailyLogView {
	return &DailyLogView{
		DailyLogID: l.DailyLogID,
		AgentID:    l.AgentID,
		AreaID:     l.AreaID,
		Week:       l.Week,
		LogDate:    l.LogDate.Format("2006-01-02"),
		Activity:   l.Activity,
		Summary:    l.Summary,
	}
}

type DailyLogResponse struct {
	DailyLog *DailyLogView `json:"diario"`
}

func dailyLockKey(agentID, areaID string, day string) string {
	return fmt.Sprintf("lock:daily:%s:%s:%s", agentID, areaID, day)
}

func (s *dailyLogService) Rebuild(ctx context.Context, req RebuildDailyRequest) (*DailyLogResponse, error) {
	day, err := domain.ParseDay(req.Date)
	if err != nil {
		return nil, err
	}
	activity := req.Activity
	if activity == 0 {
		activity = domain.ActivityDefault
	}
	if activity < domain.ActivityMin || activity > domain.ActivityMax {
		return nil, fmt.Errorf("%w: activity %d out of range", domain.ErrInvalidReference, activity)
	}

	dayKey := day.Format("2006-01-02")
	lockKey := dailyLockKey(req.AgentID, req.AreaID, dayKey)
	token, err := s.locker.Lock(ctx, lockKey)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.locker.Unlock(context.Background(), lockKey, token); err != nil {
			s.logger.Warn("Failed to release daily rollup lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	rows, err := s.visitsRepo.ListAgentAreaDay(ctx, req.AgentID, req.AreaID, day)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		// An agent may have marked blocks worked without recording a
		// single visit (all properties closed); that still counts as a
		// day of activity with an empty summary.
		worked, err := s.blocksRepo.ListWorkedBlocks(ctx, req.AreaID, req.AgentID, day)
		if err != nil {
			return nil, err
		}
		if len(worked) == 0 {
			return nil, fmt.Errorf("%w: agent %s area %s on %s",
				domain.ErrNoActivityFound, req.AgentID, req.AreaID, dayKey)
		}
	}

	log := &domain.DailyLog{
		AgentID:  req.AgentID,
		AreaID:   req.AreaID,
		Week:     domain.WeekNumber(day),
		LogDate:  day,
		Activity: activity,
		Summary:  rollup.BuildDailySummary(rows),
	}

	id, err := s.dailyLogsRepo.Upsert(ctx, log)
	if err != nil {
		return nil, err
	}
	log.DailyLogID = id

	s.logger.Info("Daily log rebuilt",
		zap.String("daily_log_id", id),
		zap.String("agent_id", req.AgentID),
		zap.String("area_id", req.AreaID),
		zap.String("date", dayKey),
		zap.Int("visits", log.Summary.TotalVisitas))

	return &DailyLogResponse{DailyLog: newDailyLogView(log)}, nil
}

func (s *dailyLogService) GetDailyLog(ctx context.Context, req GetDailyLogRequest) (*DailyLogResponse, error) {
	day, err := domain.ParseDay(req.Date)
	if err != nil {
		return nil, err
	}
	log, err := s.dailyLogsRepo.GetByKey(ctx, req.AgentID, req.AreaID, day)
	if err != nil {
		return nil, err
	}
	return &DailyLogResponse{DailyLog: newDailyLogView(log)}, nil
}
