package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"aulanet/backend/internal/dto"
	"aulanet/backend/internal/model"
)

func setupTestAttendanceService() (*attendanceService, *testRepos) {
	repos := newTestRepos()
	svc := NewAttendanceService(testConfig(), repos.toRepository(), zap.NewNop()).(*attendanceService)
	svc.now = func() time.Time { return testNow }

	repos.attendance.networks["net-1"] = &model.AuthorizedNetwork{
		NetworkID: "net-1",
		Name:      "campus wifi",
		IPPrefix:  "190.234.110.0",
		IsActive:  true,
	}
	return svc, repos
}

func floatPtr(f float64) *float64 { return &f }

// ── CheckIn ──

func TestAttendanceService_CheckIn_AuthorizedIP(t *testing.T) {
	svc, repos := setupTestAttendanceService()

	resp, err := svc.CheckIn(context.Background(), "prof-1", "190.234.110.42", &dto.CheckInRequest{})
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if !resp.LocationValid {
		t.Error("matching IP prefix should validate the location")
	}
	if resp.AlertCreated {
		t.Error("valid location must not raise an alert")
	}
	if len(repos.attendance.logs) != 1 {
		t.Errorf("expected 1 access log, got %d", len(repos.attendance.logs))
	}
}

func TestAttendanceService_CheckIn_UnknownIPStillRecorded(t *testing.T) {
	svc, repos := setupTestAttendanceService()

	resp, err := svc.CheckIn(context.Background(), "prof-1", "8.8.8.8", &dto.CheckInRequest{})
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if resp.LocationValid {
		t.Error("unknown IP without GPS must be flagged")
	}
	if !resp.AlertCreated {
		t.Error("flagged check-in should raise an alert")
	}
	if len(repos.attendance.logs) != 1 {
		t.Error("flagged check-in must still be recorded")
	}
	if len(repos.attendance.alerts) != 1 {
		t.Errorf("expected 1 alert, got %d", len(repos.attendance.alerts))
	}
}

func TestAttendanceService_CheckIn_GPSWithinRadius(t *testing.T) {
	svc, _ := setupTestAttendanceService()

	// ~110m north of campus, well inside the 500m radius
	resp, err := svc.CheckIn(context.Background(), "prof-1", "8.8.8.8", &dto.CheckInRequest{
		Latitude:  floatPtr(-12.0454),
		Longitude: floatPtr(-77.0428),
	})
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if !resp.LocationValid {
		t.Error("GPS inside the campus radius should validate the location")
	}
}

func TestAttendanceService_CheckIn_GPSOutsideRadius(t *testing.T) {
	svc, repos := setupTestAttendanceService()

	// ~1.1km north of campus
	resp, err := svc.CheckIn(context.Background(), "prof-1", "8.8.8.8", &dto.CheckInRequest{
		Latitude:  floatPtr(-12.0364),
		Longitude: floatPtr(-77.0428),
	})
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if resp.LocationValid {
		t.Error("GPS outside the radius with unknown IP must be flagged")
	}
	if len(repos.attendance.alerts) != 1 {
		t.Errorf("expected 1 alert, got %d", len(repos.attendance.alerts))
	}
}

func TestAttendanceService_CheckIn_InactiveNetworkIgnored(t *testing.T) {
	svc, repos := setupTestAttendanceService()
	repos.attendance.networks["net-1"].IsActive = false

	resp, err := svc.CheckIn(context.Background(), "prof-1", "190.234.110.42", &dto.CheckInRequest{})
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if resp.LocationValid {
		t.Error("an inactive network must not validate check-ins")
	}
}

// ── location helpers ──

func TestIPOnCampus(t *testing.T) {
	networks := []model.AuthorizedNetwork{
		{IPPrefix: "190.234.110.0", IsActive: true},
	}

	cases := []struct {
		ip   string
		want bool
	}{
		{"190.234.110.1", true},
		{"190.234.110.254", true},
		{"190.234.111.1", false},
		{"10.0.0.1", false},
		{"not-an-ip", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ipOnCampus(c.ip, networks); got != c.want {
			t.Errorf("ipOnCampus(%q) = %v, want %v", c.ip, got, c.want)
		}
	}
}

func TestHaversineMeters(t *testing.T) {
	// same point
	if d := haversineMeters(-12.0464, -77.0428, -12.0464, -77.0428); d != 0 {
		t.Errorf("distance to self should be 0, got %f", d)
	}

	// one degree of latitude is roughly 111km
	d := haversineMeters(-12.0464, -77.0428, -11.0464, -77.0428)
	if d < 110000 || d > 112000 {
		t.Errorf("one degree of latitude should be ~111km, got %f", d)
	}
}

// ── alerts ──

func TestAttendanceService_MarkAlertRead(t *testing.T) {
	svc, repos := setupTestAttendanceService()
	repos.attendance.alerts = append(repos.attendance.alerts, &model.IPAlert{
		AlertID:      "alert-1",
		InstructorID: "prof-1",
		IPAddress:    "8.8.8.8",
		Action:       "check-in from unauthorized location",
	})

	if err := svc.MarkAlertRead(context.Background(), "alert-1"); err != nil {
		t.Fatalf("MarkAlertRead failed: %v", err)
	}
	if !repos.attendance.alerts[0].Read {
		t.Error("alert should be marked read")
	}

	unread, _, err := svc.ListAlerts(context.Background(), &dto.AlertListRequest{UnreadOnly: true})
	if err != nil {
		t.Fatalf("ListAlerts failed: %v", err)
	}
	if len(unread) != 0 {
		t.Errorf("expected no unread alerts, got %d", len(unread))
	}
}

// ── networks ──

func TestAttendanceService_NetworkLifecycle(t *testing.T) {
	svc, _ := setupTestAttendanceService()

	created, err := svc.CreateNetwork(context.Background(), &dto.CreateNetworkRequest{
		Name:     "lab wing",
		IPPrefix: "190.234.112.0",
	}, "admin-1")
	if err != nil {
		t.Fatalf("CreateNetwork failed: %v", err)
	}
	if !created.IsActive {
		t.Error("new network should be active")
	}

	inactive := false
	updated, err := svc.UpdateNetwork(context.Background(), created.ID, &dto.UpdateNetworkRequest{
		IsActive: &inactive,
	}, "admin-1")
	if err != nil {
		t.Fatalf("UpdateNetwork failed: %v", err)
	}
	if updated.IsActive {
		t.Error("network should be inactive after update")
	}

	if err := svc.DeleteNetwork(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteNetwork failed: %v", err)
	}
	networks, err := svc.ListNetworks(context.Background())
	if err != nil {
		t.Fatalf("ListNetworks failed: %v", err)
	}
	if len(networks) != 1 { // only the seeded campus wifi remains
		t.Errorf("expected 1 network, got %d", len(networks))
	}
}
