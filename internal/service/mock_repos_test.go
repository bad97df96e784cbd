package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"aulanet/backend/internal/model"
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

func (m *mockUserRepo) List(_ context.Context, role string, _, _ int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if role == "" || u.Role == role {
			result = append(result, *u)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		course.CourseID = fmt.Sprintf("course-%d", len(m.courses)+1)
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context, term string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if term == "" || c.Term == term {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.courses, id)
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms map[string]*model.Room
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if room.RoomID == "" {
		room.RoomID = fmt.Sprintf("room-%d", len(m.rooms)+1)
	}
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) GetByCode(_ context.Context, code string) (*model.Room, error) {
	for _, r := range m.rooms {
		if r.Code == code {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context, activeOnly bool) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		if !activeOnly || r.IsActive {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.rooms, id)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	entries map[string]*model.ScheduleEntry
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{entries: make(map[string]*model.ScheduleEntry)}
}

func (m *mockScheduleRepo) Create(_ context.Context, entry *model.ScheduleEntry) error {
	if entry.ScheduleEntryID == "" {
		entry.ScheduleEntryID = fmt.Sprintf("entry-%d", len(m.entries)+1)
	}
	m.entries[entry.ScheduleEntryID] = entry
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.ScheduleEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context, instructorID, roomID, term string, dayOfWeek *int) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if !e.IsActive {
			continue
		}
		if instructorID != "" && (e.InstructorID == nil || *e.InstructorID != instructorID) {
			continue
		}
		if roomID != "" && (e.RoomID == nil || *e.RoomID != roomID) {
			continue
		}
		if term != "" && e.Term != term {
			continue
		}
		if dayOfWeek != nil && e.DayOfWeek != *dayOfWeek {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockScheduleRepo) ListActiveByInstructorDay(_ context.Context, instructorID string, dayOfWeek int, term, excludeID string) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if !e.IsActive || e.InstructorID == nil || *e.InstructorID != instructorID {
			continue
		}
		if e.DayOfWeek != dayOfWeek || e.Term != term || e.ScheduleEntryID == excludeID {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockScheduleRepo) ListActiveByRoomDay(_ context.Context, roomID string, dayOfWeek int, term, excludeID string) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if !e.IsActive || e.RoomID == nil || *e.RoomID != roomID {
			continue
		}
		if e.DayOfWeek != dayOfWeek || e.Term != term || e.ScheduleEntryID == excludeID {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockScheduleRepo) ListActiveByRoomOnDate(_ context.Context, roomID string, dayOfWeek int, term string, date time.Time) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if !e.IsActive || e.RoomID == nil || *e.RoomID != roomID {
			continue
		}
		if e.DayOfWeek != dayOfWeek || e.Term != term || !e.CoversDate(date) {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, entry *model.ScheduleEntry) error {
	m.entries[entry.ScheduleEntryID] = entry
	return nil
}

func (m *mockScheduleRepo) Deactivate(_ context.Context, id string, _ string) error {
	if e, ok := m.entries[id]; ok {
		e.IsActive = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) DeactivateTerm(_ context.Context, term string, _ string) (int64, error) {
	var n int64
	for _, e := range m.entries {
		if e.Term == term && e.IsActive {
			e.IsActive = false
			n++
		}
	}
	return n, nil
}

// ── Mock ReservationRepository ──

type mockReservationRepo struct {
	reservations map[string]*model.Reservation
	lockCalls    int
}

func newMockReservationRepo() *mockReservationRepo {
	return &mockReservationRepo{reservations: make(map[string]*model.Reservation)}
}

func (m *mockReservationRepo) Create(_ context.Context, res *model.Reservation) error {
	if res.ReservationID == "" {
		res.ReservationID = fmt.Sprintf("res-%d", len(m.reservations)+1)
	}
	m.reservations[res.ReservationID] = res
	return nil
}

func (m *mockReservationRepo) GetByID(_ context.Context, id string) (*model.Reservation, error) {
	if r, ok := m.reservations[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReservationRepo) List(_ context.Context, instructorID, roomID, status, term string, date *time.Time, _, _ int) ([]model.Reservation, int64, error) {
	var result []model.Reservation
	for _, r := range m.reservations {
		if instructorID != "" && r.InstructorID != instructorID {
			continue
		}
		if roomID != "" && r.RoomID != roomID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		if term != "" && r.Term != term {
			continue
		}
		if date != nil && !r.ReserveDate.Equal(*date) {
			continue
		}
		result = append(result, *r)
	}
	return result, int64(len(result)), nil
}

func (m *mockReservationRepo) ListLiveByInstructorOnDate(_ context.Context, instructorID string, date time.Time, excludeID string) ([]model.Reservation, error) {
	var result []model.Reservation
	for _, r := range m.reservations {
		if r.InstructorID != instructorID || !r.IsLive() || r.ReservationID == excludeID {
			continue
		}
		if !r.ReserveDate.Equal(date) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockReservationRepo) ListLiveByRoomOnDate(_ context.Context, roomID string, date time.Time, excludeID string) ([]model.Reservation, error) {
	var result []model.Reservation
	for _, r := range m.reservations {
		if r.RoomID != roomID || !r.IsLive() || r.ReservationID == excludeID {
			continue
		}
		if !r.ReserveDate.Equal(date) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockReservationRepo) ListLiveByInstructorBetween(_ context.Context, instructorID string, from, to time.Time) ([]model.Reservation, error) {
	var result []model.Reservation
	for _, r := range m.reservations {
		if r.InstructorID != instructorID || !r.IsLive() {
			continue
		}
		if r.ReserveDate.Before(from) || !r.ReserveDate.Before(to) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockReservationRepo) Update(_ context.Context, res *model.Reservation) error {
	m.reservations[res.ReservationID] = res
	return nil
}

func (m *mockReservationRepo) UpdateStatus(_ context.Context, id, status, _ string) error {
	if r, ok := m.reservations[id]; ok {
		r.Status = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockReservationRepo) SweepExpired(_ context.Context, before time.Time, _ string) (int64, error) {
	var n int64
	for _, r := range m.reservations {
		if r.IsLive() && r.ReserveDate.Before(before) {
			r.Status = model.ReservationFinalized
			n++
		}
	}
	return n, nil
}

func (m *mockReservationRepo) AcquireRoomDateLock(_ context.Context, _ string, _ time.Time) error {
	m.lockCalls++
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	logs     []*model.AccessLog
	alerts   []*model.IPAlert
	networks map[string]*model.AuthorizedNetwork
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{networks: make(map[string]*model.AuthorizedNetwork)}
}

func (m *mockAttendanceRepo) CreateAccessLog(_ context.Context, log *model.AccessLog) error {
	if log.AccessLogID == "" {
		log.AccessLogID = fmt.Sprintf("log-%d", len(m.logs)+1)
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockAttendanceRepo) ListAccessLogs(_ context.Context, instructorID string, onlyFlagged bool, _, _ int) ([]model.AccessLog, int64, error) {
	var result []model.AccessLog
	for _, l := range m.logs {
		if instructorID != "" && l.InstructorID != instructorID {
			continue
		}
		if onlyFlagged && l.LocationValid {
			continue
		}
		result = append(result, *l)
	}
	return result, int64(len(result)), nil
}

func (m *mockAttendanceRepo) CreateAlert(_ context.Context, alert *model.IPAlert) error {
	if alert.AlertID == "" {
		alert.AlertID = fmt.Sprintf("alert-%d", len(m.alerts)+1)
	}
	m.alerts = append(m.alerts, alert)
	return nil
}

func (m *mockAttendanceRepo) ListAlerts(_ context.Context, unreadOnly bool, _, _ int) ([]model.IPAlert, int64, error) {
	var result []model.IPAlert
	for _, a := range m.alerts {
		if unreadOnly && a.Read {
			continue
		}
		result = append(result, *a)
	}
	return result, int64(len(result)), nil
}

func (m *mockAttendanceRepo) MarkAlertRead(_ context.Context, id string) error {
	for _, a := range m.alerts {
		if a.AlertID == id {
			a.Read = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) CreateNetwork(_ context.Context, network *model.AuthorizedNetwork) error {
	if network.NetworkID == "" {
		network.NetworkID = fmt.Sprintf("net-%d", len(m.networks)+1)
	}
	m.networks[network.NetworkID] = network
	return nil
}

func (m *mockAttendanceRepo) GetNetworkByID(_ context.Context, id string) (*model.AuthorizedNetwork, error) {
	if n, ok := m.networks[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListActiveNetworks(_ context.Context) ([]model.AuthorizedNetwork, error) {
	var result []model.AuthorizedNetwork
	for _, n := range m.networks {
		if n.IsActive {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListNetworks(_ context.Context) ([]model.AuthorizedNetwork, error) {
	var result []model.AuthorizedNetwork
	for _, n := range m.networks {
		result = append(result, *n)
	}
	return result, nil
}

func (m *mockAttendanceRepo) UpdateNetwork(_ context.Context, network *model.AuthorizedNetwork) error {
	m.networks[network.NetworkID] = network
	return nil
}

func (m *mockAttendanceRepo) DeleteNetwork(_ context.Context, id string) error {
	delete(m.networks, id)
	return nil
}
