package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"focozero-data/internal/domain"
	"focozero-data/internal/repository"
)

// VisitService records inspection events and drives the property status
// machine. A property whose status is already "visitado" rejects new
// visits until the cycle resets; "recusa" stays open so agents can retry
// entry on a later pass.
type VisitService interface {
	RecordVisit(ctx context.Context, req RecordVisitRequest) (*RecordVisitResponse, error)
	GetVisit(ctx context.Context, req GetVisitRequest) (*GetVisitResponse, error)
}

type visitService struct {
	visitsRepo     repository.VisitsRepository
	propertiesRepo repository.PropertiesRepository
	logger         *zap.Logger
}

func NewVisitService(
	visitsRepo repository.VisitsRepository,
	propertiesRepo repository.PropertiesRepository,
	logger *zap.Logger,
) VisitService {
	return &visitService{
		visitsRepo:     visitsRepo,
		propertiesRepo: propertiesRepo,
		logger:         logger,
	}
}

type RecordVisitRequest struct {
	PropertyID string
	AgentID    string
	Date       string // "2006-01-02" or RFC3339
	Outcome    string // "visitado" or "recusa"

	Deposits      domain.DepositCounts
	DepEliminated int
	SampleInitial int
	SampleFinal   int
	FociCount     int
	LarvicideQty  float64
	DepTreated    int
}

type RecordVisitResponse struct {
	VisitID        string `json:"idVisita"`
	PropertyStatus string `json:"status"`
}

type GetVisitRequest struct {
	VisitID string
}

// VisitView wire shape of a visit record.
type VisitView struct {
	VisitID       string               `json:"idVisita"`
	PropertyID    string               `json:"idImovel"`
	AgentID       string               `json:"idAgente"`
	PType         string               `json:"tipo"`
	VisitDate     string               `json:"dataVisita"`
	Deposits      domain.DepositCounts `json:"depositosInspecionados"`
	DepEliminated int                  `json:"qtdDepEliminado"`
	SampleInitial int                  `json:"amostraInicial"`
	SampleFinal   int                  `json:"amostraFinal"`
	FociCount     int                  `json:"qtdFocos"`
	Focus         bool                 `json:"foco"`
	LarvicideQty  float64              `json:"qtdLarvicida"`
	DepTreated    int                  `json:"qtdDepTratado"`
	Status        string               `json:"status"`
}

func newVisitView(v *domain.Visit) *VisitView {
	return &VisitView{
		VisitID:       v.VisitID,
		PropertyID:    v.PropertyID,
		AgentID:       v.AgentID,
		PType:         v.PType,
		VisitDate:     v.VisitDate.Format("2006-01-02"),
		Deposits:      v.Deposits,
		DepEliminated: v.DepEliminated,
		SampleInitial: v.SampleInitial,
		SampleFinal:   v.SampleFinal,
		FociCount:     v.FociCount,
		Focus:         v.Focus,
		LarvicideQty:  v.LarvicideQty,
		DepTreated:    v.DepTreated,
		Status:        v.Status,
	}
}

type GetVisitResponse struct {
	Visit *VisitView `json:"visita"`
}

func (s *visitService) RecordVisit(ctx context.Context, req RecordVisitRequest) (*RecordVisitResponse, error) {
	if req.PropertyID == "" || req.AgentID == "" {
		return nil, fmt.Errorf("%w: property and agent are required", domain.ErrInvalidReference)
	}
	if req.Outcome != domain.StatusVisited && req.Outcome != domain.StatusRefused {
		return nil, fmt.Errorf("%w: visit outcome must be %q or %q",
			domain.ErrInvalidReference, domain.StatusVisited, domain.StatusRefused)
	}

	day, err := domain.ParseDay(req.Date)
	if err != nil {
		return nil, err
	}

	property, err := s.propertiesRepo.GetProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.Status == domain.StatusVisited {
		return nil, fmt.Errorf("%w: property %s", domain.ErrAlreadyVisited, property.PropertyID)
	}

	visit := &domain.Visit{
		PropertyID:    property.PropertyID,
		AgentID:       req.AgentID,
		PType:         property.PType, // snapshot, immune to later edits
		VisitDate:     day,
		Deposits:      req.Deposits,
		DepEliminated: req.DepEliminated,
		SampleInitial: req.SampleInitial,
		SampleFinal:   req.SampleFinal,
		FociCount:     req.FociCount,
		Focus:         req.FociCount > 0,
		LarvicideQty:  req.LarvicideQty,
		DepTreated:    req.DepTreated,
		Status:        req.Outcome,
	}

	visitID, err := s.visitsRepo.CreateWithStatus(ctx, visit, req.Outcome)
	if err != nil {
		s.logger.Error("Failed to record visit",
			zap.String("property_id", req.PropertyID),
			zap.String("agent_id", req.AgentID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Visit recorded",
		zap.String("visit_id", visitID),
		zap.String("property_id", property.PropertyID),
		zap.String("outcome", req.Outcome))

	return &RecordVisitResponse{VisitID: visitID, PropertyStatus: req.Outcome}, nil
}

func (s *visitService) GetVisit(ctx context.Context, req GetVisitRequest) (*GetVisitResponse, error) {
	visit, err := s.visitsRepo.GetVisit(ctx, req.VisitID)
	if err != nil {
		return nil, err
	}
	return &GetVisitResponse{Visit: newVisitView(visit)}, nil
}
