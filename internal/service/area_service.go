package service

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"focozero-data/internal/domain"
	"focozero-data/internal/repository"
)

// AreaService territory area management.
type AreaService interface {
	CreateArea(ctx context.Context, req CreateAreaRequest) (*CreateAreaResponse, error)
	ListAreas(ctx context.Context) (*ListAreasResponse, error)
	GetArea(ctx context.Context, req GetAreaRequest) (*GetAreaResponse, error)
	UpdateArea(ctx context.Context, req UpdateAreaRequest) (*UpdateAreaResponse, error)
	DeleteArea(ctx context.Context, req DeleteAreaRequest) (*DeleteAreaResponse, error)
}

type areaService struct {
	areasRepo repository.AreasRepository
	usersRepo repository.UsersRepository
	logger    *zap.Logger
}

func NewAreaService(
	areasRepo repository.AreasRepository,
	usersRepo repository.UsersRepository,
	logger *zap.Logger,
) AreaService {
	return &areaService{
		areasRepo: areasRepo,
		usersRepo: usersRepo,
		logger:    logger,
	}
}

type CreateAreaRequest struct {
	Name          string
	MapURL        string
	ResponsibleID string // optional
}

type CreateAreaResponse struct {
	AreaID string `json:"idArea"`
}

type GetAreaRequest struct {
	AreaID string
}

// AreaView wire shape of an area, in the legacy front-end vocabulary.
type AreaView struct {
	AreaID        string  `json:"idArea"`
	Name          string  `json:"name"`
	MapURL        string  `json:"mapUrl"`
	ResponsibleID *string `json:"idResponsavel,omitempty"`
}

func newAreaView(a *domain.Area) *AreaView {
	v := &AreaView{AreaID: a.AreaID, Name: a.Name, MapURL: a.MapURL}
	if a.ResponsibleID.Valid {
		id := a.ResponsibleID.String
		v.ResponsibleID = &id
	}
	return v
}

type GetAreaResponse struct {
	Area *AreaView `json:"area"`
}

type ListAreasResponse struct {
	Areas []*AreaView `json:"areas"`
}

type UpdateAreaRequest struct {
	AreaID        string
	Name          string
	MapURL        string
	ResponsibleID string
}

type UpdateAreaResponse struct{}

type DeleteAreaRequest struct {
	AreaID string
}

type DeleteAreaResponse struct{}

func (s *areaService) responsibleRef(ctx context.Context, userID string) (sql.NullString, error) {
	if userID == "" {
		return sql.NullString{}, nil
	}
	if _, err := s.usersRepo.GetUser(ctx, userID); err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: userID, Valid: true}, nil
}

func (s *areaService) CreateArea(ctx context.Context, req CreateAreaRequest) (*CreateAreaResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: area name is required", domain.ErrInvalidReference)
	}
	responsible, err := s.responsibleRef(ctx, req.ResponsibleID)
	if err != nil {
		return nil, err
	}

	id, err := s.areasRepo.CreateArea(ctx, &domain.Area{
		Name:          req.Name,
		MapURL:        req.MapURL,
		ResponsibleID: responsible,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Area created", zap.String("area_id", id), zap.String("name", req.Name))
	return &CreateAreaResponse{AreaID: id}, nil
}

func (s *areaService) ListAreas(ctx context.Context) (*ListAreasResponse, error) {
	areas, err := s.areasRepo.ListAreas(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*AreaView, 0, len(areas))
	for _, a := range areas {
		views = append(views, newAreaView(a))
	}
	return &ListAreasResponse{Areas: views}, nil
}

func (s *areaService) GetArea(ctx context.Context, req GetAreaRequest) (*GetAreaResponse, error) {
	area, err := s.areasRepo.GetArea(ctx, req.AreaID)
	if err != nil {
		return nil, err
	}
	return &GetAreaResponse{Area: newAreaView(area)}, nil
}

func (s *areaService) UpdateArea(ctx context.Context, req UpdateAreaRequest) (*UpdateAreaResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: area name is required", domain.ErrInvalidReference)
	}
	responsible, err := s.responsibleRef(ctx, req.ResponsibleID)
	if err != nil {
		return nil, err
	}

	err = s.areasRepo.UpdateArea(ctx, &domain.Area{
		AreaID:        req.AreaID,
		Name:          req.Name,
		MapURL:        req.MapURL,
		ResponsibleID: responsible,
	})
	if err != nil {
		return nil, err
	}
	return &UpdateAreaResponse{}, nil
}

func (s *areaService) DeleteArea(ctx context.Context, req DeleteAreaRequest) (*DeleteAreaResponse, error) {
	if err := s.areasRepo.DeleteArea(ctx, req.AreaID); err != nil {
		return nil, err
	}
	s.logger.Info("Area deleted", zap.String("area_id", req.AreaID))
	return &DeleteAreaResponse{}, nil
}
