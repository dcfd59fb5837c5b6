package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"focozero-data/internal/domain"
)

type blockFixture struct {
	blocks *fakeBlocksRepo
	areas  *fakeAreasRepo
	users  *fakeUsersRepo
	svc    BlockService
}

func newBlockFixture() *blockFixture {
	blocks := newFakeBlocksRepo()
	areas := newFakeAreasRepo()
	users := &fakeUsersRepo{users: map[string]*domain.User{
		"agent-1": {UserID: "agent-1", Role: domain.RoleAgent},
		"adm-1":   {UserID: "adm-1", Role: domain.RoleAdmin},
	}}
	return &blockFixture{
		blocks: blocks,
		areas:  areas,
		users:  users,
		svc:    NewBlockService(blocks, areas, users, zap.NewNop()),
	}
}

func TestCreateBlock_ShiftsLaterNumbers(t *testing.T) {
	f := newBlockFixture()
	f.areas.areas["area-1"] = &domain.Area{AreaID: "area-1", Name: "Centro"}
	f.blocks.blocks["b1"] = &domain.Block{BlockID: "b1", AreaID: "area-1", Number: 1}
	f.blocks.blocks["b2"] = &domain.Block{BlockID: "b2", AreaID: "area-1", Number: 2}

	resp, err := f.svc.CreateBlock(context.Background(), CreateBlockRequest{
		AreaID: "area-1", Number: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.blocks.blocks["b1"].Number)
	assert.Equal(t, 3, f.blocks.blocks["b2"].Number)
	assert.Equal(t, 2, f.blocks.blocks[resp.BlockID].Number)
}

func TestCreateBlock_UnknownArea(t *testing.T) {
	f := newBlockFixture()

	_, err := f.svc.CreateBlock(context.Background(), CreateBlockRequest{
		AreaID: "missing", Number: 1,
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAssignBlocks_PartialFailure(t *testing.T) {
	f := newBlockFixture()
	f.blocks.blocks["b1"] = &domain.Block{BlockID: "b1", AreaID: "area-1", Number: 1}
	f.blocks.blocks["b3"] = &domain.Block{BlockID: "b3", AreaID: "area-1", Number: 3}

	resp, err := f.svc.AssignBlocks(context.Background(), AssignBlocksRequest{
		AgentID:  "agent-1",
		BlockIDs: []string{"b1", "b-missing", "b3"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"b1", "b3"}, resp.Assigned)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "b-missing", resp.Failures[0].BlockID)

	assert.Equal(t, "agent-1", f.blocks.blocks["b1"].AssignedTo.String)
	assert.Equal(t, "agent-1", f.blocks.blocks["b3"].AssignedTo.String)
}

func TestAssignBlocks_RejectsNonAgent(t *testing.T) {
	f := newBlockFixture()
	f.blocks.blocks["b1"] = &domain.Block{BlockID: "b1", AreaID: "area-1", Number: 1}

	_, err := f.svc.AssignBlocks(context.Background(), AssignBlocksRequest{
		AgentID:  "adm-1",
		BlockIDs: []string{"b1"},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidReference))
	assert.False(t, f.blocks.blocks["b1"].AssignedTo.Valid)
}

func TestAssignBlocks_UnknownAgent(t *testing.T) {
	f := newBlockFixture()

	_, err := f.svc.AssignBlocks(context.Background(), AssignBlocksRequest{
		AgentID:  "ghost",
		BlockIDs: []string{"b1"},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMarkWorked_ClearsAssignmentAndStamps(t *testing.T) {
	f := newBlockFixture()
	f.blocks.blocks["b1"] = &domain.Block{
		BlockID: "b1", AreaID: "area-1", Number: 1,
		AssignedTo: nullString("agent-1"),
	}

	resp, err := f.svc.MarkWorked(context.Background(), MarkWorkedRequest{
		AgentID:  "agent-1",
		BlockIDs: []string{"b1"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Updated)

	b := f.blocks.blocks["b1"]
	assert.False(t, b.AssignedTo.Valid)
	assert.True(t, b.Worked)
	assert.Equal(t, "agent-1", b.WorkedBy.String)
	today := domain.Day(time.Now().UTC())
	assert.Equal(t, today, b.WorkDate.Time)
}

func TestResetResponsibles_CountsCleared(t *testing.T) {
	f := newBlockFixture()
	f.blocks.blocks["b1"] = &domain.Block{BlockID: "b1", AssignedTo: nullString("agent-1")}
	f.blocks.blocks["b2"] = &domain.Block{BlockID: "b2", AssignedTo: nullString("agent-1")}
	f.blocks.blocks["b3"] = &domain.Block{BlockID: "b3"}

	resp, err := f.svc.ResetResponsibles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Cleared)
	assert.False(t, f.blocks.blocks["b1"].AssignedTo.Valid)
}
