package service

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"focozero-data/internal/domain"
	"focozero-data/internal/repository"
)

// PropertyService property lifecycle. Creation slots the property into
// its block's walking order and bumps the block's aggregate counters in
// the same call; edits never drive the status machine unless a status is
// explicitly supplied.
type PropertyService interface {
	CreateProperty(ctx context.Context, req CreatePropertyRequest) (*CreatePropertyResponse, error)
	UpdateProperty(ctx context.Context, req UpdatePropertyRequest) (*UpdatePropertyResponse, error)
	ListProperties(ctx context.Context, req ListPropertiesRequest) (*ListPropertiesResponse, error)
	GetProperty(ctx context.Context, req GetPropertyRequest) (*GetPropertyResponse, error)
}

type propertyService struct {
	propertiesRepo repository.PropertiesRepository
	blocksRepo     repository.BlocksRepository
	logger         *zap.Logger
}

func NewPropertyService(
	propertiesRepo repository.PropertiesRepository,
	blocksRepo repository.BlocksRepository,
	logger *zap.Logger,
) PropertyService {
	return &propertyService{
		propertiesRepo: propertiesRepo,
		blocksRepo:     blocksRepo,
		logger:         logger,
	}
}

type CreatePropertyRequest struct {
	BlockID     string
	Position    int
	Address     string
	PType       string
	Inhabitants int
	Dogs        int
	Cats        int
	Note        string
}

type CreatePropertyResponse struct {
	PropertyID string `json:"idImovel"`
}

type UpdatePropertyRequest struct {
	PropertyID  string
	Address     *string
	PType       *string
	Inhabitants *int
	Dogs        *int
	Cats        *int
	Note        *string
	Status      *string
}

type UpdatePropertyResponse struct{}

type ListPropertiesRequest struct {
	BlockID string
}

// PropertyView wire shape of a property.
type PropertyView struct {
	PropertyID  string  `json:"idImovel"`
	BlockID     string  `json:"idQuarteirao"`
	Position    int     `json:"posicao"`
	Address     string  `json:"endereco"`
	PType       string  `json:"tipo"`
	Inhabitants int     `json:"qtdHabitantes"`
	Dogs        int     `json:"qtdCachorros"`
	Cats        int     `json:"qtdGatos"`
	Note        *string `json:"observacao,omitempty"`
	Status      string  `json:"status"`
}

func newPropertyView(p *domain.Property) *PropertyView {
	v := &PropertyView{
		PropertyID:  p.PropertyID,
		BlockID:     p.BlockID,
		Position:    p.Position,
		Address:     p.Address,
		PType:       p.PType,
		Inhabitants: p.Inhabitants,
		Dogs:        p.Dogs,
		Cats:        p.Cats,
		Status:      p.Status,
	}
	if p.Note.Valid {
		n := p.Note.String
		v.Note = &n
	}
	return v
}

type ListPropertiesResponse struct {
	Properties []*PropertyView `json:"imoveis"`
}

type GetPropertyRequest struct {
	PropertyID string
}

type GetPropertyResponse struct {
	Property *PropertyView `json:"imovel"`
}

func (s *propertyService) CreateProperty(ctx context.Context, req CreatePropertyRequest) (*CreatePropertyResponse, error) {
	if !domain.ValidPropertyType(req.PType) {
		return nil, fmt.Errorf("%w: property type %q", domain.ErrInvalidReference, req.PType)
	}
	if req.Position < 1 {
		return nil, fmt.Errorf("%w: position %d", domain.ErrInvalidReference, req.Position)
	}
	if _, err := s.blocksRepo.GetBlock(ctx, req.BlockID); err != nil {
		return nil, err
	}

	property := &domain.Property{
		BlockID:     req.BlockID,
		Position:    req.Position,
		Address:     req.Address,
		PType:       req.PType,
		Inhabitants: req.Inhabitants,
		Dogs:        req.Dogs,
		Cats:        req.Cats,
		Status:      domain.StatusClosed,
	}
	if req.Note != "" {
		property.Note = sql.NullString{String: req.Note, Valid: true}
	}

	id, err := s.propertiesRepo.CreateProperty(ctx, property)
	if err != nil {
		return nil, err
	}

	err = s.blocksRepo.IncrementCounters(ctx, req.BlockID, repository.BlockCounterDeltas{
		Properties:  1,
		PType:       req.PType,
		TypeDelta:   1,
		Inhabitants: req.Inhabitants,
		Dogs:        req.Dogs,
		Cats:        req.Cats,
	})
	if err != nil {
		// The property row exists; a failed counter bump is drift, not a
		// lost record. Surface it loudly and let the caller retry.
		s.logger.Error("Block counters not incremented after property create",
			zap.String("property_id", id),
			zap.String("block_id", req.BlockID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Property created",
		zap.String("property_id", id),
		zap.String("block_id", req.BlockID),
		zap.Int("position", req.Position))

	return &CreatePropertyResponse{PropertyID: id}, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, req UpdatePropertyRequest) (*UpdatePropertyResponse, error) {
	if req.PType != nil && !domain.ValidPropertyType(*req.PType) {
		return nil, fmt.Errorf("%w: property type %q", domain.ErrInvalidReference, *req.PType)
	}
	if req.Status != nil && !domain.ValidStatus(*req.Status) {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidReference, *req.Status)
	}

	err := s.propertiesRepo.UpdateProperty(ctx, req.PropertyID, repository.PropertyUpdate{
		Address:     req.Address,
		PType:       req.PType,
		Inhabitants: req.Inhabitants,
		Dogs:        req.Dogs,
		Cats:        req.Cats,
		Note:        req.Note,
		Status:      req.Status,
	})
	if err != nil {
		return nil, err
	}
	return &UpdatePropertyResponse{}, nil
}

func (s *propertyService) ListProperties(ctx context.Context, req ListPropertiesRequest) (*ListPropertiesResponse, error) {
	properties, err := s.propertiesRepo.ListPropertiesByBlock(ctx, req.BlockID)
	if err != nil {
		return nil, err
	}
	views := make([]*PropertyView, 0, len(properties))
	for _, p := range properties {
		views = append(views, newPropertyView(p))
	}
	return &ListPropertiesResponse{Properties: views}, nil
}

func (s *propertyService) GetProperty(ctx context.Context, req GetPropertyRequest) (*GetPropertyResponse, error) {
	property, err := s.propertiesRepo.GetProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	return &GetPropertyResponse{Property: newPropertyView(property)}, nil
}
