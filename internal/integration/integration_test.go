//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	httpapi "github.com/campus-hub/campus-hub/internal/api/http"
	appAttendance "github.com/campus-hub/campus-hub/internal/application/attendance"
	appAuth "github.com/campus-hub/campus-hub/internal/application/auth"
	appEligibility "github.com/campus-hub/campus-hub/internal/application/eligibility"
	appNotification "github.com/campus-hub/campus-hub/internal/application/notification"
	appQRSession "github.com/campus-hub/campus-hub/internal/application/qrsession"
	appReport "github.com/campus-hub/campus-hub/internal/application/report"
	domainQR "github.com/campus-hub/campus-hub/internal/domain/qrsession"
	"github.com/campus-hub/campus-hub/internal/infrastructure/email"
	"github.com/campus-hub/campus-hub/internal/infrastructure/postgres"
	"github.com/campus-hub/campus-hub/internal/infrastructure/ratelimit"
	"github.com/campus-hub/campus-hub/internal/infrastructure/sse"
)

const (
	testPassword   = "S3cure!Passw0rd"
	testDepartment = "Computer Science"
	testSemester   = 3
)

func TestAttendanceLifecycleIntegration(t *testing.T) {
	server, cleanup := newTestServer(t)
	defer cleanup()

	// Admin signs up and logs straight in.
	adminToken := registerAndToken(t, server.URL, map[string]interface{}{
		"email":    "admin@campus.test",
		"password": testPassword,
		"role":     "ADMIN",
	})

	// Teacher registration lands in PENDING and cannot log in yet.
	status, _ := doJSON(t, http.MethodPost, server.URL+"/v1/auth/register", "", map[string]interface{}{
		"email":    "teacher@campus.test",
		"password": testPassword,
		"role":     "TEACHER",
		"teacher": map[string]interface{}{
			"name":       "Grace Hopper",
			"employeeId": "EMP-100",
			"department": testDepartment,
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("teacher register status = %d", status)
	}
	status, _ = doJSON(t, http.MethodPost, server.URL+"/v1/auth/login", "", map[string]interface{}{
		"email":    "teacher@campus.test",
		"password": testPassword,
	})
	if status != http.StatusForbidden {
		t.Fatalf("pending teacher login status = %d, want 403", status)
	}

	// Admin approves the teacher.
	status, body := doJSON(t, http.MethodGet, server.URL+"/v1/admin/teachers/", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("list teachers status = %d", status)
	}
	teachers := body["teachers"].([]interface{})
	if len(teachers) != 1 {
		t.Fatalf("expected 1 teacher, got %d", len(teachers))
	}
	teacherID := teachers[0].(map[string]interface{})["teacherId"].(string)
	status, _ = doJSON(t, http.MethodPost, server.URL+"/v1/admin/teachers/"+teacherID+"/approve", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("approve status = %d", status)
	}

	teacherToken := login(t, server.URL, "teacher@campus.test")

	// Admin creates the subject assigned to the teacher.
	status, body = doJSON(t, http.MethodPost, server.URL+"/v1/admin/subjects/", adminToken, map[string]interface{}{
		"name":            "Operating Systems",
		"code":            "cs301",
		"department":      testDepartment,
		"semester":        testSemester,
		"assignedTeacher": teacherID,
		"credits":         4,
	})
	if status != http.StatusCreated {
		t.Fatalf("create subject status = %d: %v", status, body)
	}
	subjectID := body["subjectId"].(string)

	// Student signs up in the same department and semester.
	studentToken := registerAndToken(t, server.URL, map[string]interface{}{
		"email":    "student@campus.test",
		"password": testPassword,
		"role":     "STUDENT",
		"student": map[string]interface{}{
			"name":           "Ada Lovelace",
			"rollNumber":     "CS-2023-001",
			"department":     testDepartment,
			"semester":       testSemester,
			"enrollmentYear": 2023,
		},
	})

	// Teacher opens a live session.
	classDate := time.Now().UTC().Format("2006-01-02")
	status, body = doJSON(t, http.MethodPost, server.URL+"/v1/teacher/qr/", teacherToken, map[string]interface{}{
		"subjectId":       subjectID,
		"classDate":       classDate,
		"validitySeconds": 300,
	})
	if status != http.StatusCreated {
		t.Fatalf("issue qr status = %d: %v", status, body)
	}
	token := body["token"].(string)
	payload := body["payload"].(string)
	if body["image"].(string) == "" {
		t.Fatal("expected rendered image data url")
	}

	// Student scans once and is marked present.
	status, body = doJSON(t, http.MethodPost, server.URL+"/v1/student/scan", studentToken, map[string]interface{}{
		"payload": payload,
	})
	if status != http.StatusOK {
		t.Fatalf("scan status = %d: %v", status, body)
	}

	// Second scan of the same session is refused.
	status, body = doJSON(t, http.MethodPost, server.URL+"/v1/student/scan", studentToken, map[string]interface{}{
		"payload": payload,
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate scan status = %d, want 409", status)
	}
	if body["error"] != "ALREADY_SCANNED" {
		t.Fatalf("duplicate scan error = %v, want ALREADY_SCANNED", body["error"])
	}

	// Session status reflects the single attendee.
	status, body = doJSON(t, http.MethodGet, server.URL+"/v1/teacher/qr/"+token+"/status", teacherToken, nil)
	if status != http.StatusOK {
		t.Fatalf("qr status = %d", status)
	}
	if got := body["totalMarked"].(float64); got != 1 {
		t.Fatalf("totalMarked = %v, want 1", got)
	}

	// The persisted record shows up on the student dashboard.
	status, body = doJSON(t, http.MethodGet, server.URL+"/v1/student/dashboard", studentToken, nil)
	if status != http.StatusOK {
		t.Fatalf("dashboard status = %d", status)
	}
	if got := body["overallPercentage"].(float64); got != 100 {
		t.Fatalf("overallPercentage = %v, want 100", got)
	}
}

func newTestServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()
	dsn := testDatabaseURL(t)

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("db pool: %v", err)
	}

	root := repoRoot(t)
	if err := postgres.RunMigrations(ctx, pool, filepath.Join(root, "internal", "migrations")); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}
	if err := resetDatabase(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("reset db: %v", err)
	}

	logger := zerolog.Nop()
	userRepo := postgres.NewUserRepository(pool)
	studentRepo := postgres.NewStudentRepository(pool)
	teacherRepo := postgres.NewTeacherRepository(pool)
	subjectRepo := postgres.NewSubjectRepository(pool)
	attendanceRepo := postgres.NewAttendanceRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	sseHub := sse.NewHub()
	sessionStore := domainQR.NewMemoryStore(0)

	authSvc := appAuth.NewService(userRepo, studentRepo, teacherRepo, "integration-test-secret", 24*time.Hour, logger)
	notificationSvc := appNotification.NewService(notificationRepo, email.NopSender{}, logger)
	attendanceSvc := appAttendance.NewService(attendanceRepo, subjectRepo, studentRepo, teacherRepo, notificationSvc, logger)
	qrSvc := appQRSession.NewService(sessionStore, sseHub, logger)
	eligibilitySvc := appEligibility.NewService("percentage >= 75", attendanceRepo, studentRepo, subjectRepo, logger)
	reportSvc := appReport.NewService(attendanceSvc, logger)

	// nil redis client: limiters fail open.
	authLimiter := ratelimit.NewLimiter(nil, "auth", 1000, time.Minute)
	scanLimiter := ratelimit.NewLimiter(nil, "scan", 1000, time.Minute)

	apiServer := httpapi.NewServer(
		authSvc, attendanceSvc, qrSvc, notificationSvc, eligibilitySvc, reportSvc,
		nil, userRepo, studentRepo, teacherRepo, subjectRepo,
		sseHub, authLimiter, scanLimiter, logger,
	)
	server := httptest.NewServer(apiServer.Router())

	cleanup := func() {
		server.Close()
		sessionStore.Stop()
		sseHub.Stop()
		pool.Close()
	}
	return server, cleanup
}

func registerAndToken(t *testing.T, baseURL string, body map[string]interface{}) string {
	t.Helper()
	status, res := doJSON(t, http.MethodPost, baseURL+"/v1/auth/register", "", body)
	if status != http.StatusCreated {
		t.Fatalf("register status = %d: %v", status, res)
	}
	token, _ := res["token"].(string)
	if token == "" {
		t.Fatalf("register returned no token: %v", res)
	}
	return token
}

func login(t *testing.T, baseURL, email string) string {
	t.Helper()
	status, res := doJSON(t, http.MethodPost, baseURL+"/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": testPassword,
	})
	if status != http.StatusOK {
		t.Fatalf("login status = %d: %v", status, res)
	}
	return res["token"].(string)
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()
	out := map[string]interface{}{}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res.StatusCode, out
}

func testDatabaseURL(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		return dsn
	}
	t.Skip("TEST_DATABASE_URL not set; skipping integration tests")
	return ""
}

func repoRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func resetDatabase(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		TRUNCATE TABLE
			notifications,
			attendance_changes,
			attendance_records,
			subjects,
			teachers,
			students,
			users
		RESTART IDENTITY CASCADE
	`)
	if err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return nil
}
