package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"focozero-data/internal/domain"
	"focozero-data/internal/repository"
	"focozero-data/internal/rollup"
	"focozero-data/internal/store"
)

const cycleSummaryKey = "cycle:summary"

// CycleService campaign cycle boundary: the territory-wide summary, the
// bulk reset, and cycle close (summary snapshot + reset + weekly-log
// linking). All three are admin-only.
type CycleService interface {
	Summary(ctx context.Context, req CycleRequest) (*CycleSummaryResponse, error)
	Reset(ctx context.Context, req CycleRequest) (*CycleResetResponse, error)
	CloseCycle(ctx context.Context, req CycleRequest) (*CloseCycleResponse, error)
}

type cycleService struct {
	usersRepo      repository.UsersRepository
	areasRepo      repository.AreasRepository
	propertiesRepo repository.PropertiesRepository
	weeklyLogsRepo repository.WeeklyLogsRepository
	cyclesRepo     repository.CyclesRepository
	cache          store.KV
	cacheTTL       time.Duration
	logger         *zap.Logger
}

func NewCycleService(
	usersRepo repository.UsersRepository,
	areasRepo repository.AreasRepository,
	propertiesRepo repository.PropertiesRepository,
	weeklyLogsRepo repository.WeeklyLogsRepository,
	cyclesRepo repository.CyclesRepository,
	cache store.KV,
	cacheTTL time.Duration,
	logger *zap.Logger,
) CycleService {
	return &cycleService{
		usersRepo:      usersRepo,
		areasRepo:      areasRepo,
		propertiesRepo: propertiesRepo,
		weeklyLogsRepo: weeklyLogsRepo,
		cyclesRepo:     cyclesRepo,
		cache:          cache,
		cacheTTL:       cacheTTL,
		logger:         logger,
	}
}

type CycleRequest struct {
	CallerID string
}

type CycleSummaryResponse struct {
	Summary domain.CycleSummary `json:"resumo"`
}

type CycleResetResponse struct {
	PropertiesReset int64 `json:"imoveisReiniciados"`
	BlocksReset     int64 `json:"quarteiroesReiniciados"`
}

// CycleView wire shape of a closed cycle.
type CycleView struct {
	CycleID         string              `json:"idCiclo"`
	ClosedAt        time.Time           `json:"fechadoEm"`
	PropertiesReset int                 `json:"imoveisReiniciados"`
	BlocksReset     int                 `json:"quarteiroesReiniciados"`
	Summary         domain.CycleSummary `json:"resumo"`
}

func newCycleView(c *domain.Cycle) *CycleView {
	return &CycleView{
		CycleID:         c.CycleID,
		ClosedAt:        c.ClosedAt,
		PropertiesReset: c.PropertiesReset,
		BlocksReset:     c.BlocksReset,
		Summary:         c.Summary,
	}
}

type CloseCycleResponse struct {
	Cycle *CycleView `json:"ciclo"`
}

func (s *cycleService) requireAdmin(ctx context.Context, callerID string) error {
	if callerID == "" {
		return fmt.Errorf("%w: caller identity required", domain.ErrForbidden)
	}
	caller, err := s.usersRepo.GetUser(ctx, callerID)
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: role %q cannot manage cycles", domain.ErrForbidden, caller.Role)
	}
	return nil
}

// buildSummary composes the territory-wide snapshot: property counts by
// status, the visited subset by type, and the per-area fold of every
// weekly log not yet consumed by a previous cycle.
func (s *cycleService) buildSummary(ctx context.Context) (domain.CycleSummary, []string, error) {
	var summary domain.CycleSummary

	statusCounts, err := s.propertiesRepo.CountByStatus(ctx)
	if err != nil {
		return summary, nil, err
	}
	typeCounts, err := s.propertiesRepo.CountVisitedByType(ctx)
	if err != nil {
		return summary, nil, err
	}
	summary.ImoveisPorStatus = statusCounts
	summary.VisitadosPorTipo = typeCounts

	logs, err := s.weeklyLogsRepo.ListUnlinked(ctx)
	if err != nil {
		return summary, nil, err
	}

	areas, err := s.areasRepo.ListAreas(ctx)
	if err != nil {
		return summary, nil, err
	}
	areaNames := make(map[string]string, len(areas))
	for _, a := range areas {
		areaNames[a.AreaID] = a.Name
	}

	summary.PorArea = map[string]domain.WeeklySummary{}
	logIDs := make([]string, 0, len(logs))
	for _, log := range logs {
		key := log.AreaID // deleted areas keep their ID as the key
		if name, ok := areaNames[log.AreaID]; ok {
			key = name
		}
		merged := summary.PorArea[key]
		rollup.MergeWeekly(&merged, log.Summary)
		summary.PorArea[key] = merged
		logIDs = append(logIDs, log.WeeklyLogID)
	}

	return summary, logIDs, nil
}

func (s *cycleService) Summary(ctx context.Context, req CycleRequest) (*CycleSummaryResponse, error) {
	if err := s.requireAdmin(ctx, req.CallerID); err != nil {
		return nil, err
	}

	if cached, err := s.cache.Get(ctx, cycleSummaryKey); err == nil {
		var summary domain.CycleSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &CycleSummaryResponse{Summary: summary}, nil
		}
		s.logger.Warn("Discarding undecodable cached cycle summary")
	} else if err != store.ErrMiss {
		s.logger.Warn("Cycle summary cache read failed", zap.Error(err))
	}

	summary, _, err := s.buildSummary(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(ctx, cycleSummaryKey, string(payload), s.cacheTTL); err != nil {
			s.logger.Warn("Cycle summary cache write failed", zap.Error(err))
		}
	}

	return &CycleSummaryResponse{Summary: summary}, nil
}

func (s *cycleService) Reset(ctx context.Context, req CycleRequest) (*CycleResetResponse, error) {
	if err := s.requireAdmin(ctx, req.CallerID); err != nil {
		return nil, err
	}

	props, blocks, err := s.cyclesRepo.ResetCampaign(ctx)
	if err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx)

	s.logger.Info("Campaign reset",
		zap.String("caller_id", req.CallerID),
		zap.Int64("properties_reset", props),
		zap.Int64("blocks_reset", blocks))

	return &CycleResetResponse{PropertiesReset: props, BlocksReset: blocks}, nil
}

func (s *cycleService) CloseCycle(ctx context.Context, req CycleRequest) (*CloseCycleResponse, error) {
	if err := s.requireAdmin(ctx, req.CallerID); err != nil {
		return nil, err
	}

	summary, logIDs, err := s.buildSummary(ctx)
	if err != nil {
		return nil, err
	}

	cycle, err := s.cyclesRepo.CloseCycle(ctx, summary, logIDs)
	if err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx)

	s.logger.Info("Cycle closed",
		zap.String("cycle_id", cycle.CycleID),
		zap.String("caller_id", req.CallerID),
		zap.Int("weekly_logs_linked", len(logIDs)),
		zap.Int("properties_reset", cycle.PropertiesReset),
		zap.Int("blocks_reset", cycle.BlocksReset))

	return &CloseCycleResponse{Cycle: newCycleView(cycle)}, nil
}

func (s *cycleService) invalidateSummary(ctx context.Context) {
	if err := s.cache.Del(ctx, cycleSummaryKey); err != nil {
		s.logger.Warn("Cycle summary cache invalidation failed", zap.Error(err))
	}
}
