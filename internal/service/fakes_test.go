package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"focozero-data/internal/domain"
	"focozero-data/internal/repository"
	"focozero-data/internal/rollup"
	"focozero-data/internal/store"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

// In-memory repository fakes. They implement just enough of the SQL
// semantics for the services to run real scenarios end to end.

type fakeLocker struct {
	acquired []string
	released []string
}

func (l *fakeLocker) Lock(ctx context.Context, key string) (string, error) {
	l.acquired = append(l.acquired, key)
	return "token", nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key, token string) error {
	l.released = append(l.released, key)
	return nil
}

type fakeKV struct {
	data map[string]string
	gets int
	sets int
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (kv *fakeKV) Get(ctx context.Context, key string) (string, error) {
	kv.gets++
	v, ok := kv.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (kv *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	kv.sets++
	kv.data[key] = value
	return nil
}

func (kv *fakeKV) Del(ctx context.Context, key string) error {
	delete(kv.data, key)
	return nil
}

type fakeUsersRepo struct {
	users map[string]*domain.User
}

func (r *fakeUsersRepo) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}
	return u, nil
}

type fakeAreasRepo struct {
	areas map[string]*domain.Area
	seq   int
}

func newFakeAreasRepo() *fakeAreasRepo { return &fakeAreasRepo{areas: map[string]*domain.Area{}} }

func (r *fakeAreasRepo) GetArea(ctx context.Context, areaID string) (*domain.Area, error) {
	a, ok := r.areas[areaID]
	if !ok {
		return nil, fmt.Errorf("%w: area %s", domain.ErrNotFound, areaID)
	}
	return a, nil
}

func (r *fakeAreasRepo) ListAreas(ctx context.Context) ([]*domain.Area, error) {
	out := []*domain.Area{}
	for _, a := range r.areas {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeAreasRepo) CreateArea(ctx context.Context, area *domain.Area) (string, error) {
	r.seq++
	id := fmt.Sprintf("area-%d", r.seq)
	cp := *area
	cp.AreaID = id
	r.areas[id] = &cp
	return id, nil
}

func (r *fakeAreasRepo) UpdateArea(ctx context.Context, area *domain.Area) error {
	if _, ok := r.areas[area.AreaID]; !ok {
		return fmt.Errorf("%w: area %s", domain.ErrNotFound, area.AreaID)
	}
	cp := *area
	r.areas[area.AreaID] = &cp
	return nil
}

func (r *fakeAreasRepo) DeleteArea(ctx context.Context, areaID string) error {
	if _, ok := r.areas[areaID]; !ok {
		return fmt.Errorf("%w: area %s", domain.ErrNotFound, areaID)
	}
	delete(r.areas, areaID)
	return nil
}

type fakeBlocksRepo struct {
	blocks map[string]*domain.Block
	seq    int
}

func newFakeBlocksRepo() *fakeBlocksRepo { return &fakeBlocksRepo{blocks: map[string]*domain.Block{}} }

func (r *fakeBlocksRepo) GetBlock(ctx context.Context, blockID string) (*domain.Block, error) {
	b, ok := r.blocks[blockID]
	if !ok {
		return nil, fmt.Errorf("%w: block %s", domain.ErrNotFound, blockID)
	}
	return b, nil
}

func (r *fakeBlocksRepo) ListBlocksByArea(ctx context.Context, areaID string) ([]*domain.Block, error) {
	out := []*domain.Block{}
	for _, b := range r.blocks {
		if b.AreaID == areaID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *fakeBlocksRepo) CreateBlock(ctx context.Context, block *domain.Block) (string, error) {
	for _, b := range r.blocks {
		if b.AreaID == block.AreaID && b.Number >= block.Number {
			b.Number++
		}
	}
	r.seq++
	id := fmt.Sprintf("block-%d", r.seq)
	cp := *block
	cp.BlockID = id
	r.blocks[id] = &cp
	return id, nil
}

func (r *fakeBlocksRepo) IncrementCounters(ctx context.Context, blockID string, d repository.BlockCounterDeltas) error {
	b, ok := r.blocks[blockID]
	if !ok {
		return fmt.Errorf("%w: block %s", domain.ErrNotFound, blockID)
	}
	b.TotalProperties += d.Properties
	b.Inhabitants += d.Inhabitants
	b.Dogs += d.Dogs
	b.Cats += d.Cats
	if d.PType != "" {
		b.TotalByType.Add(d.PType, d.TypeDelta)
	}
	return nil
}

func (r *fakeBlocksRepo) AssignBlock(ctx context.Context, blockID, agentID string) error {
	b, ok := r.blocks[blockID]
	if !ok {
		return fmt.Errorf("%w: block %s", domain.ErrNotFound, blockID)
	}
	b.AssignedTo = nullString(agentID)
	return nil
}

func (r *fakeBlocksRepo) MarkWorked(ctx context.Context, blockIDs []string, agentID string, workDate time.Time) (int64, error) {
	var n int64
	for _, id := range blockIDs {
		b, ok := r.blocks[id]
		if !ok {
			continue
		}
		b.AssignedTo.Valid = false
		b.AssignedTo.String = ""
		b.WorkedBy = nullString(agentID)
		b.WorkDate.Time = workDate
		b.WorkDate.Valid = true
		b.Worked = true
		n++
	}
	return n, nil
}

func (r *fakeBlocksRepo) ResetResponsibles(ctx context.Context) (int64, error) {
	var n int64
	for _, b := range r.blocks {
		if b.AssignedTo.Valid {
			b.AssignedTo.Valid = false
			b.AssignedTo.String = ""
			n++
		}
	}
	return n, nil
}

func (r *fakeBlocksRepo) ListWorkedBlocks(ctx context.Context, areaID, agentID string, day time.Time) ([]*domain.Block, error) {
	out := []*domain.Block{}
	for _, b := range r.blocks {
		if b.AreaID == areaID && b.Worked && b.WorkedBy.Valid && b.WorkedBy.String == agentID &&
			b.WorkDate.Valid && domain.Day(b.WorkDate.Time).Equal(domain.Day(day)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBlocksRepo) GetNumbersByIDs(ctx context.Context, blockIDs []string) (map[string]int, error) {
	out := map[string]int{}
	for _, id := range blockIDs {
		if b, ok := r.blocks[id]; ok {
			out[id] = b.Number
		}
	}
	return out, nil
}

type fakePropertiesRepo struct {
	props map[string]*domain.Property
	seq   int
}

func newFakePropertiesRepo() *fakePropertiesRepo {
	return &fakePropertiesRepo{props: map[string]*domain.Property{}}
}

func (r *fakePropertiesRepo) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	p, ok := r.props[propertyID]
	if !ok {
		return nil, fmt.Errorf("%w: property %s", domain.ErrNotFound, propertyID)
	}
	return p, nil
}

func (r *fakePropertiesRepo) ListPropertiesByBlock(ctx context.Context, blockID string) ([]*domain.Property, error) {
	out := []*domain.Property{}
	for _, p := range r.props {
		if p.BlockID == blockID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakePropertiesRepo) CreateProperty(ctx context.Context, property *domain.Property) (string, error) {
	for _, p := range r.props {
		if p.BlockID == property.BlockID && p.Position >= property.Position {
			p.Position++
		}
	}
	r.seq++
	id := fmt.Sprintf("prop-%d", r.seq)
	cp := *property
	cp.PropertyID = id
	r.props[id] = &cp
	return id, nil
}

func (r *fakePropertiesRepo) UpdateProperty(ctx context.Context, propertyID string, upd repository.PropertyUpdate) error {
	p, ok := r.props[propertyID]
	if !ok {
		return fmt.Errorf("%w: property %s", domain.ErrNotFound, propertyID)
	}
	if upd.Address != nil {
		p.Address = *upd.Address
	}
	if upd.PType != nil {
		p.PType = *upd.PType
	}
	if upd.Inhabitants != nil {
		p.Inhabitants = *upd.Inhabitants
	}
	if upd.Dogs != nil {
		p.Dogs = *upd.Dogs
	}
	if upd.Cats != nil {
		p.Cats = *upd.Cats
	}
	if upd.Note != nil {
		p.Note = nullString(*upd.Note)
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	return nil
}

func (r *fakePropertiesRepo) CountByStatus(ctx context.Context) (domain.StatusCounts, error) {
	var c domain.StatusCounts
	for _, p := range r.props {
		switch p.Status {
		case domain.StatusClosed:
			c.Fechado++
		case domain.StatusVisited:
			c.Visitado++
		case domain.StatusRefused:
			c.Recusa++
		}
	}
	return c, nil
}

func (r *fakePropertiesRepo) CountVisitedByType(ctx context.Context) (domain.TypeCounts, error) {
	var c domain.TypeCounts
	for _, p := range r.props {
		if p.Status == domain.StatusVisited {
			c.Add(p.PType, 1)
		}
	}
	return c, nil
}

type fakeVisitsRepo struct {
	props  *fakePropertiesRepo
	blocks *fakeBlocksRepo
	visits []*domain.Visit
	seq    int
}

func (r *fakeVisitsRepo) GetVisit(ctx context.Context, visitID string) (*domain.Visit, error) {
	for _, v := range r.visits {
		if v.VisitID == visitID {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: visit %s", domain.ErrNotFound, visitID)
}

func (r *fakeVisitsRepo) CreateWithStatus(ctx context.Context, visit *domain.Visit, newStatus string) (string, error) {
	p, ok := r.props.props[visit.PropertyID]
	if !ok {
		return "", fmt.Errorf("%w: property %s", domain.ErrNotFound, visit.PropertyID)
	}
	r.seq++
	id := fmt.Sprintf("visit-%d", r.seq)
	cp := *visit
	cp.VisitID = id
	r.visits = append(r.visits, &cp)
	p.Status = newStatus
	return id, nil
}

func (r *fakeVisitsRepo) ListAgentAreaDay(ctx context.Context, agentID, areaID string, day time.Time) ([]rollup.VisitRow, error) {
	out := []rollup.VisitRow{}
	for _, v := range r.visits {
		if v.AgentID != agentID || !domain.Day(v.VisitDate).Equal(domain.Day(day)) {
			continue
		}
		p, ok := r.props.props[v.PropertyID]
		if !ok {
			continue
		}
		b, ok := r.blocks.blocks[p.BlockID]
		if !ok || b.AreaID != areaID {
			continue
		}
		out = append(out, rollup.VisitRow{Visit: *v, BlockID: b.BlockID, BlockNumber: b.Number})
	}
	return out, nil
}

type fakeDailyLogsRepo struct {
	logs map[string]*domain.DailyLog
	seq  int
}

func newFakeDailyLogsRepo() *fakeDailyLogsRepo {
	return &fakeDailyLogsRepo{logs: map[string]*domain.DailyLog{}}
}

func dailyKey(agentID, areaID string, day time.Time) string {
	return strings.Join([]string{agentID, areaID, domain.Day(day).Format("2006-01-02")}, "|")
}

func (r *fakeDailyLogsRepo) Upsert(ctx context.Context, log *domain.DailyLog) (string, error) {
	key := dailyKey(log.AgentID, log.AreaID, log.LogDate)
	if existing, ok := r.logs[key]; ok {
		id := existing.DailyLogID
		cp := *log
		cp.DailyLogID = id
		r.logs[key] = &cp
		return id, nil
	}
	r.seq++
	id := fmt.Sprintf("daily-%d", r.seq)
	cp := *log
	cp.DailyLogID = id
	r.logs[key] = &cp
	return id, nil
}

func (r *fakeDailyLogsRepo) GetByKey(ctx context.Context, agentID, areaID string, day time.Time) (*domain.DailyLog, error) {
	l, ok := r.logs[dailyKey(agentID, areaID, day)]
	if !ok {
		return nil, fmt.Errorf("%w: daily log", domain.ErrNotFound)
	}
	return l, nil
}

func (r *fakeDailyLogsRepo) ListAgentAreaWeek(ctx context.Context, agentID, areaID string, week int) ([]domain.DailyLog, error) {
	out := []domain.DailyLog{}
	for _, l := range r.logs {
		if l.AgentID == agentID && l.AreaID == areaID && l.Week == week {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LogDate.Before(out[j].LogDate) })
	return out, nil
}

type fakeWeeklyLogsRepo struct {
	logs map[string]*domain.WeeklyLog
	seq  int
}

func newFakeWeeklyLogsRepo() *fakeWeeklyLogsRepo {
	return &fakeWeeklyLogsRepo{logs: map[string]*domain.WeeklyLog{}}
}

func weeklyKey(agentID, areaID string, week int) string {
	return fmt.Sprintf("%s|%s|%d", agentID, areaID, week)
}

func (r *fakeWeeklyLogsRepo) Upsert(ctx context.Context, log *domain.WeeklyLog) (string, error) {
	key := weeklyKey(log.AgentID, log.AreaID, log.Week)
	if existing, ok := r.logs[key]; ok {
		id := existing.WeeklyLogID
		cycleID := existing.CycleID
		cp := *log
		cp.WeeklyLogID = id
		cp.CycleID = cycleID
		r.logs[key] = &cp
		return id, nil
	}
	r.seq++
	id := fmt.Sprintf("weekly-%d", r.seq)
	cp := *log
	cp.WeeklyLogID = id
	r.logs[key] = &cp
	return id, nil
}

func (r *fakeWeeklyLogsRepo) GetByKey(ctx context.Context, agentID, areaID string, week int) (*domain.WeeklyLog, error) {
	l, ok := r.logs[weeklyKey(agentID, areaID, week)]
	if !ok {
		return nil, fmt.Errorf("%w: weekly log", domain.ErrNotFound)
	}
	return l, nil
}

func (r *fakeWeeklyLogsRepo) UpdateNotes(ctx context.Context, weeklyLogID, notes string, activity int) error {
	for _, l := range r.logs {
		if l.WeeklyLogID == weeklyLogID {
			l.Notes = notes
			l.Activity = activity
			return nil
		}
	}
	return fmt.Errorf("%w: weekly log %s", domain.ErrNotFound, weeklyLogID)
}

func (r *fakeWeeklyLogsRepo) ListUnlinked(ctx context.Context) ([]*domain.WeeklyLog, error) {
	out := []*domain.WeeklyLog{}
	for _, l := range r.logs {
		if !l.CycleID.Valid {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeeklyLogID < out[j].WeeklyLogID })
	return out, nil
}

type fakeCyclesRepo struct {
	props  *fakePropertiesRepo
	blocks *fakeBlocksRepo
	weekly *fakeWeeklyLogsRepo
	cycles []*domain.Cycle
}

func (r *fakeCyclesRepo) ResetCampaign(ctx context.Context) (int64, int64, error) {
	var props, blocks int64
	for _, p := range r.props.props {
		if p.Status == domain.StatusVisited {
			p.Status = domain.StatusClosed
			props++
		}
	}
	for _, b := range r.blocks.blocks {
		if b.Worked {
			b.Worked = false
			blocks++
		}
	}
	return props, blocks, nil
}

func (r *fakeCyclesRepo) CloseCycle(ctx context.Context, summary domain.CycleSummary, weeklyLogIDs []string) (*domain.Cycle, error) {
	props, blocks, err := r.ResetCampaign(ctx)
	if err != nil {
		return nil, err
	}
	cycle := &domain.Cycle{
		CycleID:         fmt.Sprintf("cycle-%d", len(r.cycles)+1),
		ClosedAt:        time.Now().UTC(),
		PropertiesReset: int(props),
		BlocksReset:     int(blocks),
		Summary:         summary,
	}
	r.cycles = append(r.cycles, cycle)
	linked := map[string]struct{}{}
	for _, id := range weeklyLogIDs {
		linked[id] = struct{}{}
	}
	for _, l := range r.weekly.logs {
		if _, ok := linked[l.WeeklyLogID]; ok {
			l.CycleID = nullString(cycle.CycleID)
		}
	}
	return cycle, nil
}
