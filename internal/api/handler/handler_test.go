package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"aulanet/backend/internal/dto"
	"aulanet/backend/internal/service"
	pkgerrors "aulanet/backend/pkg/errors"
	"aulanet/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time, _ string) error {
	return m.logoutErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	createResult     *dto.ScheduleEntryResponse
	createErr        error
	getResult        *dto.ScheduleEntryResponse
	getErr           error
	listResult       []dto.ScheduleEntryResponse
	listErr          error
	lastListReq      *dto.ScheduleEntryListRequest
	updateResult     *dto.ScheduleEntryResponse
	updateErr        error
	deactivateErr    error
	deactivatedCount int64
	deactivateTermEr error
	occupancyResult  *dto.RoomOccupancyResponse
	occupancyErr     error
}

func (m *mockScheduleService) Create(_ context.Context, _ *dto.CreateScheduleEntryRequest, _ string) (*dto.ScheduleEntryResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockScheduleService) GetByID(_ context.Context, _ string) (*dto.ScheduleEntryResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockScheduleService) List(_ context.Context, req *dto.ScheduleEntryListRequest) ([]dto.ScheduleEntryResponse, error) {
	m.lastListReq = req
	return m.listResult, m.listErr
}
func (m *mockScheduleService) Update(_ context.Context, _ string, _ *dto.CreateScheduleEntryRequest, _ string) (*dto.ScheduleEntryResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockScheduleService) Deactivate(_ context.Context, _, _ string) error {
	return m.deactivateErr
}
func (m *mockScheduleService) DeactivateTerm(_ context.Context, _, _ string) (int64, error) {
	return m.deactivatedCount, m.deactivateTermEr
}
func (m *mockScheduleService) RoomOccupancy(_ context.Context, _ string, _ *dto.RoomOccupancyRequest) (*dto.RoomOccupancyResponse, error) {
	return m.occupancyResult, m.occupancyErr
}

// ── Mock ReservationService ──

type mockReservationService struct {
	createResult  *dto.ReservationResponse
	createErr     error
	getResult     *dto.ReservationResponse
	getErr        error
	listResult    []dto.ReservationResponse
	listTotal     int64
	listErr       error
	lastListReq   *dto.ReservationListRequest
	confirmResult *dto.ReservationResponse
	confirmErr    error
	cancelResult  *dto.ReservationResponse
	cancelErr     error
	sweepResult   *dto.SweepResponse
	sweepErr      error
	quotaResult   *dto.QuotaResponse
	quotaErr      error
}

func (m *mockReservationService) Create(_ context.Context, _ *dto.CreateReservationRequest, _ string) (*dto.ReservationResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockReservationService) GetByID(_ context.Context, _ string) (*dto.ReservationResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockReservationService) List(_ context.Context, req *dto.ReservationListRequest) ([]dto.ReservationResponse, int64, error) {
	m.lastListReq = req
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockReservationService) Confirm(_ context.Context, _, _ string) (*dto.ReservationResponse, error) {
	return m.confirmResult, m.confirmErr
}
func (m *mockReservationService) Cancel(_ context.Context, _, _, _ string) (*dto.ReservationResponse, error) {
	return m.cancelResult, m.cancelErr
}
func (m *mockReservationService) Sweep(_ context.Context, _ string) (*dto.SweepResponse, error) {
	return m.sweepResult, m.sweepErr
}
func (m *mockReservationService) Quota(_ context.Context, _ string, _ time.Time) (*dto.QuotaResponse, error) {
	return m.quotaResult, m.quotaErr
}

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	checkInResult *dto.CheckInResponse
	checkInErr    error
	logsResult    []dto.AccessLogResponse
	logsTotal     int64
	logsErr       error
	alertsResult  []dto.AlertResponse
	alertsTotal   int64
	alertsErr     error
	markReadErr   error
	networkResult *dto.NetworkResponse
	networkErr    error
	networksList  []dto.NetworkResponse
	networksErr   error
	deleteErr     error
}

func (m *mockAttendanceService) CheckIn(_ context.Context, _, _ string, _ *dto.CheckInRequest) (*dto.CheckInResponse, error) {
	return m.checkInResult, m.checkInErr
}
func (m *mockAttendanceService) ListAccessLogs(_ context.Context, _ *dto.AccessLogListRequest) ([]dto.AccessLogResponse, int64, error) {
	return m.logsResult, m.logsTotal, m.logsErr
}
func (m *mockAttendanceService) ListAlerts(_ context.Context, _ *dto.AlertListRequest) ([]dto.AlertResponse, int64, error) {
	return m.alertsResult, m.alertsTotal, m.alertsErr
}
func (m *mockAttendanceService) MarkAlertRead(_ context.Context, _ string) error {
	return m.markReadErr
}
func (m *mockAttendanceService) CreateNetwork(_ context.Context, _ *dto.CreateNetworkRequest, _ string) (*dto.NetworkResponse, error) {
	return m.networkResult, m.networkErr
}
func (m *mockAttendanceService) ListNetworks(_ context.Context) ([]dto.NetworkResponse, error) {
	return m.networksList, m.networksErr
}
func (m *mockAttendanceService) UpdateNetwork(_ context.Context, _ string, _ *dto.UpdateNetworkRequest, _ string) (*dto.NetworkResponse, error) {
	return m.networkResult, m.networkErr
}
func (m *mockAttendanceService) DeleteNetwork(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportTimetableExcel(_ context.Context, _, _, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportInstructorICS(_ context.Context, _, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

const testRoomUUID = "0b7a4d9e-42c1-4f9a-8c3e-6a5d2f1b0c9d"

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "professor")
	c.Set("token_jti", "test-jti")
	c.Set("token_exp", time.Now().Add(15*time.Minute))
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(method, path string, body io.Reader, authed bool, register func(r *gin.Engine)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	r := gin.New()
	if authed {
		r.Use(func(c *gin.Context) { setAuth(c) })
	}
	register(r)
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := serve("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "ana.torres@uni.edu",
		Password: "Secret123",
	}), false, func(r *gin.Engine) { r.POST("/auth/login", h.Login) })

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("POST", "/auth/login", bytes.NewReader([]byte("invalid json")), false,
		func(r *gin.Engine) { r.POST("/auth/login", h.Login) })

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := serve("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "ana.torres@uni.edu",
		Password: "WrongPass1",
	}), false, func(r *gin.Engine) { r.POST("/auth/login", h.Login) })

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10003 {
		t.Errorf("expected error code 10003, got %d", resp.Code)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("POST", "/auth/refresh", jsonBody(map[string]string{}), false,
		func(r *gin.Engine) { r.POST("/auth/refresh", h.Refresh) })

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("POST", "/auth/logout", nil, true,
		func(r *gin.Engine) { r.POST("/auth/logout", h.Logout) })

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{changePassErr: service.ErrWrongOldPassword})

	w := serve("POST", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "OldSecret1",
		NewPassword: "NewSecret1",
	}), true, func(r *gin.Engine) { r.POST("/auth/password", h.ChangePassword) })

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10006 {
		t.Errorf("expected error code 10006, got %d", resp.Code)
	}
}

func TestAuthHandler_ChangePassword_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("POST", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "OldSecret1",
		NewPassword: "NewSecret1",
	}), false, func(r *gin.Engine) { r.POST("/auth/password", h.ChangePassword) })

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func validScheduleBody() *dto.CreateScheduleEntryRequest {
	return &dto.CreateScheduleEntryRequest{
		DayOfWeek:  2,
		StartTime:  "14:00",
		EndTime:    "15:40",
		ClassType:  "lecture",
		Term:       "2025-B",
		ValidFrom:  "2025-08-04",
		ValidUntil: "2025-12-13",
	}
}

func TestScheduleHandler_Create_InstructorConflict(t *testing.T) {
	mock := &mockScheduleService{createErr: service.ErrInstructorConflict}
	h := NewScheduleHandler(mock)

	w := serve("POST", "/schedule", jsonBody(validScheduleBody()), true,
		func(r *gin.Engine) { r.POST("/schedule", h.Create) })

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 23005 {
		t.Errorf("expected error code 23005, got %d", resp.Code)
	}
}

func TestScheduleHandler_Create_BadDayOfWeek(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	body := validScheduleBody()
	body.DayOfWeek = 8
	w := serve("POST", "/schedule", jsonBody(body), true,
		func(r *gin.Engine) { r.POST("/schedule", h.Create) })

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduleHandler_Update_VersionConflict(t *testing.T) {
	mock := &mockScheduleService{updateErr: pkgerrors.ErrOptimisticLock}
	h := NewScheduleHandler(mock)

	w := serve("PUT", "/schedule/entry-1", jsonBody(validScheduleBody()), true,
		func(r *gin.Engine) { r.PUT("/schedule/:id", h.Update) })

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 23007 {
		t.Errorf("expected error code 23007, got %d", resp.Code)
	}
}

func TestScheduleHandler_MySchedule_ForcesOwnInstructor(t *testing.T) {
	mock := &mockScheduleService{listResult: []dto.ScheduleEntryResponse{}}
	h := NewScheduleHandler(mock)

	w := serve("GET", "/schedule/mine?term=2025-B", nil, true,
		func(r *gin.Engine) { r.GET("/schedule/mine", h.MySchedule) })

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.lastListReq == nil || mock.lastListReq.InstructorID != "test-user-id" {
		t.Errorf("expected list filtered by the caller, got %+v", mock.lastListReq)
	}
}

func TestScheduleHandler_DeactivateTerm_Success(t *testing.T) {
	mock := &mockScheduleService{deactivatedCount: 17}
	h := NewScheduleHandler(mock)

	w := serve("POST", "/schedule/deactivate-term", jsonBody(dto.DeactivateTermRequest{
		Term: "2024-B",
	}), true, func(r *gin.Engine) { r.POST("/schedule/deactivate-term", h.DeactivateTerm) })

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	data, _ := parseResponse(w).Data.(map[string]interface{})
	if got, _ := data["deactivated"].(float64); got != 17 {
		t.Errorf("expected 17 deactivated entries, got %v", data["deactivated"])
	}
}

// ═══════════════════════════════════════════════════════════
// ReservationHandler Tests
// ═══════════════════════════════════════════════════════════

func validReservationBody() *dto.CreateReservationRequest {
	return &dto.CreateReservationRequest{
		RoomID:    testRoomUUID,
		Date:      "2025-09-02",
		StartTime: "14:00",
		EndTime:   "15:40",
	}
}

func TestReservationHandler_Create_Success(t *testing.T) {
	mock := &mockReservationService{
		createResult: &dto.ReservationResponse{ID: "res-1", Status: "PENDING"},
	}
	h := NewReservationHandler(mock)

	w := serve("POST", "/reservations", jsonBody(validReservationBody()), true,
		func(r *gin.Engine) { r.POST("/reservations", h.Create) })

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestReservationHandler_Create_Unauthenticated(t *testing.T) {
	h := NewReservationHandler(&mockReservationService{})

	w := serve("POST", "/reservations", jsonBody(validReservationBody()), false,
		func(r *gin.Engine) { r.POST("/reservations", h.Create) })

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestReservationHandler_Create_QuotaExceeded(t *testing.T) {
	h := NewReservationHandler(&mockReservationService{createErr: service.ErrQuotaExceeded})

	w := serve("POST", "/reservations", jsonBody(validReservationBody()), true,
		func(r *gin.Engine) { r.POST("/reservations", h.Create) })

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 24009 {
		t.Errorf("expected error code 24009, got %d", resp.Code)
	}
}

func TestReservationHandler_Create_LeadTimeTooShort(t *testing.T) {
	h := NewReservationHandler(&mockReservationService{createErr: service.ErrLeadTimeTooShort})

	w := serve("POST", "/reservations", jsonBody(validReservationBody()), true,
		func(r *gin.Engine) { r.POST("/reservations", h.Create) })

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 24005 {
		t.Errorf("expected error code 24005, got %d", resp.Code)
	}
}

func TestReservationHandler_Cancel_NotOwner(t *testing.T) {
	h := NewReservationHandler(&mockReservationService{cancelErr: service.ErrNotReservationOwner})

	w := serve("POST", "/reservations/res-1/cancel", nil, true,
		func(r *gin.Engine) { r.POST("/reservations/:id/cancel", h.Cancel) })

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 24013 {
		t.Errorf("expected error code 24013, got %d", resp.Code)
	}
}

func TestReservationHandler_Confirm_InvalidTransition(t *testing.T) {
	h := NewReservationHandler(&mockReservationService{confirmErr: service.ErrInvalidTransition})

	w := serve("POST", "/reservations/res-1/confirm", nil, true,
		func(r *gin.Engine) { r.POST("/reservations/:id/confirm", h.Confirm) })

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestReservationHandler_MyReservations_ForcesOwnInstructor(t *testing.T) {
	mock := &mockReservationService{listResult: []dto.ReservationResponse{}}
	h := NewReservationHandler(mock)

	w := serve("GET", "/reservations/mine", nil, true,
		func(r *gin.Engine) { r.GET("/reservations/mine", h.MyReservations) })

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.lastListReq == nil || mock.lastListReq.InstructorID != "test-user-id" {
		t.Errorf("expected list filtered by the caller, got %+v", mock.lastListReq)
	}
}

func TestReservationHandler_Quota_BadDate(t *testing.T) {
	h := NewReservationHandler(&mockReservationService{})

	w := serve("GET", "/reservations/quota?date=junk", nil, true,
		func(r *gin.Engine) { r.GET("/reservations/quota", h.Quota) })

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AttendanceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandler_CheckIn_Success(t *testing.T) {
	mock := &mockAttendanceService{
		checkInResult: &dto.CheckInResponse{
			AccessLogID:   "log-1",
			LocationValid: true,
		},
	}
	h := NewAttendanceHandler(mock)

	w := serve("POST", "/attendance/check-in", jsonBody(dto.CheckInRequest{}), true,
		func(r *gin.Engine) { r.POST("/attendance/check-in", h.CheckIn) })

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestAttendanceHandler_CheckIn_FlaggedStillCreated(t *testing.T) {
	mock := &mockAttendanceService{
		checkInResult: &dto.CheckInResponse{
			AccessLogID:   "log-2",
			LocationValid: false,
			AlertCreated:  true,
		},
	}
	h := NewAttendanceHandler(mock)

	w := serve("POST", "/attendance/check-in", jsonBody(dto.CheckInRequest{}), true,
		func(r *gin.Engine) { r.POST("/attendance/check-in", h.CheckIn) })

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	data, _ := parseResponse(w).Data.(map[string]interface{})
	if valid, _ := data["location_valid"].(bool); valid {
		t.Error("expected location_valid=false in the response")
	}
}

func TestAttendanceHandler_MarkAlertRead_NotFound(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{markReadErr: service.ErrAlertNotFound})

	w := serve("POST", "/attendance/alerts/alert-1/read", nil, true,
		func(r *gin.Engine) { r.POST("/attendance/alerts/:id/read", h.MarkAlertRead) })

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_TimetableExcel_MissingTerm(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := serve("GET", "/export/timetable.xlsx", nil, true,
		func(r *gin.Engine) { r.GET("/export/timetable.xlsx", h.TimetableExcel) })

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_TimetableExcel_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("xlsx-bytes"),
		filename: "timetable_2025-B.xlsx",
	}
	h := NewExportHandler(mock)

	w := serve("GET", "/export/timetable.xlsx?term=2025-B", nil, true,
		func(r *gin.Engine) { r.GET("/export/timetable.xlsx", h.TimetableExcel) })

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="timetable_2025-B.xlsx"` {
		t.Errorf("unexpected content disposition %q", cd)
	}
}

func TestExportHandler_MyTimetableICS_NoEntries(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoEntries})

	w := serve("GET", "/export/timetable.ics?term=2025-B", nil, true,
		func(r *gin.Engine) { r.GET("/export/timetable.ics", h.MyTimetableICS) })

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 26001 {
		t.Errorf("expected error code 26001, got %d", resp.Code)
	}
}
