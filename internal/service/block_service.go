package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"focozero-data/internal/domain"
	"focozero-data/internal/repository"
)

// BlockService block lifecycle: creation with number slotting, bulk
// assignment to agents, marking worked, clearing responsibles.
type BlockService interface {
	CreateBlock(ctx context.Context, req CreateBlockRequest) (*CreateBlockResponse, error)
	ListBlocks(ctx context.Context, req ListBlocksRequest) (*ListBlocksResponse, error)
	GetBlock(ctx context.Context, req GetBlockRequest) (*GetBlockResponse, error)
	AssignBlocks(ctx context.Context, req AssignBlocksRequest) (*AssignBlocksResponse, error)
	MarkWorked(ctx context.Context, req MarkWorkedRequest) (*MarkWorkedResponse, error)
	ResetResponsibles(ctx context.Context) (*ResetResponsiblesResponse, error)
}

type blockService struct {
	blocksRepo repository.BlocksRepository
	areasRepo  repository.AreasRepository
	usersRepo  repository.UsersRepository
	logger     *zap.Logger
}

func NewBlockService(
	blocksRepo repository.BlocksRepository,
	areasRepo repository.AreasRepository,
	usersRepo repository.UsersRepository,
	logger *zap.Logger,
) BlockService {
	return &blockService{
		blocksRepo: blocksRepo,
		areasRepo:  areasRepo,
		usersRepo:  usersRepo,
		logger:     logger,
	}
}

type CreateBlockRequest struct {
	AreaID string
	Number int
}

type CreateBlockResponse struct {
	BlockID string `json:"idQuarteirao"`
}

type ListBlocksRequest struct {
	AreaID string
}

// BlockView wire shape of a block. idResponsavel carries the current
// assignment; trabalhadoPor/dataTrabalho the last completed pass.
type BlockView struct {
	BlockID         string            `json:"idQuarteirao"`
	AreaID          string            `json:"idArea"`
	Number          int               `json:"numero"`
	TotalProperties int               `json:"totalImoveis"`
	TotalByType     domain.TypeCounts `json:"totalImoveisTipo"`
	Inhabitants     int               `json:"qtdHabitantes"`
	Dogs            int               `json:"qtdCachorros"`
	Cats            int               `json:"qtdGatos"`
	AssignedTo      *string           `json:"idResponsavel,omitempty"`
	WorkDate        *string           `json:"dataTrabalho,omitempty"`
	WorkedBy        *string           `json:"trabalhadoPor,omitempty"`
	Worked          bool              `json:"trabalhado"`
}

func newBlockView(b *domain.Block) *BlockView {
	v := &BlockView{
		BlockID:         b.BlockID,
		AreaID:          b.AreaID,
		Number:          b.Number,
		TotalProperties: b.TotalProperties,
		TotalByType:     b.TotalByType,
		Inhabitants:     b.Inhabitants,
		Dogs:            b.Dogs,
		Cats:            b.Cats,
		Worked:          b.Worked,
	}
	if b.AssignedTo.Valid {
		id := b.AssignedTo.String
		v.AssignedTo = &id
	}
	if b.WorkDate.Valid {
		d := b.WorkDate.Time.Format("2006-01-02")
		v.WorkDate = &d
	}
	if b.WorkedBy.Valid {
		id := b.WorkedBy.String
		v.WorkedBy = &id
	}
	return v
}

type ListBlocksResponse struct {
	Blocks []*BlockView `json:"quarteiroes"`
}

type GetBlockRequest struct {
	BlockID string
}

type GetBlockResponse struct {
	Block *BlockView `json:"quarteirao"`
}

type AssignBlocksRequest struct {
	AgentID  string
	BlockIDs []string
}

// BlockFailure one block that could not be assigned; the rest of the
// batch is unaffected.
type BlockFailure struct {
	BlockID string `json:"idQuarteirao"`
	Reason  string `json:"motivo"`
}

type AssignBlocksResponse struct {
	Assigned []string       `json:"atribuidos"`
	Failures []BlockFailure `json:"falhas"`
}

type MarkWorkedRequest struct {
	AgentID  string
	BlockIDs []string
}

type MarkWorkedResponse struct {
	Updated int64 `json:"atualizados"`
}

type ResetResponsiblesResponse struct {
	Cleared int64 `json:"limpos"`
}

func (s *blockService) CreateBlock(ctx context.Context, req CreateBlockRequest) (*CreateBlockResponse, error) {
	if req.Number < 1 {
		return nil, fmt.Errorf("%w: block number %d", domain.ErrInvalidReference, req.Number)
	}
	if _, err := s.areasRepo.GetArea(ctx, req.AreaID); err != nil {
		return nil, err
	}

	id, err := s.blocksRepo.CreateBlock(ctx, &domain.Block{
		AreaID: req.AreaID,
		Number: req.Number,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Block created",
		zap.String("block_id", id),
		zap.String("area_id", req.AreaID),
		zap.Int("number", req.Number))

	return &CreateBlockResponse{BlockID: id}, nil
}

func (s *blockService) ListBlocks(ctx context.Context, req ListBlocksRequest) (*ListBlocksResponse, error) {
	blocks, err := s.blocksRepo.ListBlocksByArea(ctx, req.AreaID)
	if err != nil {
		return nil, err
	}
	views := make([]*BlockView, 0, len(blocks))
	for _, b := range blocks {
		views = append(views, newBlockView(b))
	}
	return &ListBlocksResponse{Blocks: views}, nil
}

func (s *blockService) GetBlock(ctx context.Context, req GetBlockRequest) (*GetBlockResponse, error) {
	block, err := s.blocksRepo.GetBlock(ctx, req.BlockID)
	if err != nil {
		return nil, err
	}
	return &GetBlockResponse{Block: newBlockView(block)}, nil
}

// AssignBlocks assigns each listed block to the agent. A bad ID fails
// that block alone; valid entries in the same batch still land.
func (s *blockService) AssignBlocks(ctx context.Context, req AssignBlocksRequest) (*AssignBlocksResponse, error) {
	agent, err := s.usersRepo.GetUser(ctx, req.AgentID)
	if err != nil {
		return nil, err
	}
	if agent.Role != domain.RoleAgent {
		return nil, fmt.Errorf("%w: user %s is not an agent", domain.ErrInvalidReference, req.AgentID)
	}

	resp := &AssignBlocksResponse{Assigned: []string{}, Failures: []BlockFailure{}}
	for _, blockID := range req.BlockIDs {
		if err := s.blocksRepo.AssignBlock(ctx, blockID, req.AgentID); err != nil {
			resp.Failures = append(resp.Failures, BlockFailure{BlockID: blockID, Reason: err.Error()})
			continue
		}
		resp.Assigned = append(resp.Assigned, blockID)
	}

	s.logger.Info("Blocks assigned",
		zap.String("agent_id", req.AgentID),
		zap.Int("assigned", len(resp.Assigned)),
		zap.Int("failed", len(resp.Failures)))

	return resp, nil
}

// MarkWorked stamps the blocks with the current day; the work date is
// when the operation ran, not a caller-supplied value.
func (s *blockService) MarkWorked(ctx context.Context, req MarkWorkedRequest) (*MarkWorkedResponse, error) {
	day := domain.Day(time.Now().UTC())

	n, err := s.blocksRepo.MarkWorked(ctx, req.BlockIDs, req.AgentID, day)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Blocks marked worked",
		zap.String("agent_id", req.AgentID),
		zap.Int64("updated", n))

	return &MarkWorkedResponse{Updated: n}, nil
}

func (s *blockService) ResetResponsibles(ctx context.Context) (*ResetResponsiblesResponse, error) {
	n, err := s.blocksRepo.ResetResponsibles(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Block responsibles cleared", zap.Int64("cleared", n))
	return &ResetResponsiblesResponse{Cleared: n}, nil
}
