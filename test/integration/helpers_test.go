//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"teacher-transfer-system/internal/config"
	"teacher-transfer-system/internal/handler"
	"teacher-transfer-system/internal/middleware"
	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/internal/repository/inmem"
	"teacher-transfer-system/internal/router"
	"teacher-transfer-system/internal/service"
	"teacher-transfer-system/internal/storage"
)

// env is a fully wired HTTP stack on in-memory repositories, plus seeded
// accounts and reference data the scenarios build on.
type env struct {
	server *httptest.Server

	adminToken       string
	headteacherToken string
	teacherToken     string

	fromSchool model.School
	toSchool   model.School
	teacher    model.Teacher
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	users := inmem.NewUserRepository()
	schools := inmem.NewSchoolRepository()
	teachers := inmem.NewTeacherRepository()
	transfers := inmem.NewTransferRepository(teachers)

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	authSvc, err := service.NewAuthService("integration-secret", time.Hour, 5, 15*time.Minute, users)
	require.NoError(t, err)
	schoolSvc := service.NewSchoolService(schools)
	teacherSvc := service.NewTeacherService(teachers, schools, authSvc, store, t.TempDir())
	transferSvc := service.NewTransferService(transfers, teachers, schools)
	statsSvc := service.NewStatsService(teachers, schools, transfers)

	cfg := &config.Config{
		RequestTimeout:   10 * time.Second,
		MaxUploadSize:    1 << 20,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
	}

	mux := router.New(cfg, middleware.NewAuthMiddleware(authSvc), router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc, teacherSvc, cfg.MaxUploadSize),
		Schools:   handler.NewSchoolHandler(schoolSvc),
		Teachers:  handler.NewTeacherHandler(teacherSvc, cfg.MaxUploadSize),
		Transfers: handler.NewTransferHandler(transferSvc),
		Stats:     handler.NewStatsHandler(statsSvc),
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	e := &env{server: srv}

	e.fromSchool, err = schools.Create(ctx, model.School{Name: "Lusaka Primary", District: "Lusaka", Province: "Lusaka"})
	require.NoError(t, err)
	e.toSchool, err = schools.Create(ctx, model.School{Name: "Kitwe Secondary", District: "Kitwe", Province: "Copperbelt"})
	require.NoError(t, err)

	e.teacher, err = teachers.Create(ctx, model.Teacher{
		FirstName:       "Joseph",
		LastName:        "Banda",
		Email:           "jbanda@example.org",
		CurrentSchoolID: &e.fromSchool.ID,
	})
	require.NoError(t, err)

	_, err = authSvc.CreateAccount(ctx, "admin", "admin-pass-123", model.RoleAdmin, nil)
	require.NoError(t, err)
	_, err = authSvc.CreateAccount(ctx, "head", "head-pass-123", model.RoleHeadteacher, nil)
	require.NoError(t, err)
	_, err = authSvc.CreateAccount(ctx, "jbanda", "teach-pass-123", model.RoleTeacher, &e.teacher.ID)
	require.NoError(t, err)

	e.adminToken = e.login(t, "admin", "admin-pass-123")
	e.headteacherToken = e.login(t, "head", "head-pass-123")
	e.teacherToken = e.login(t, "jbanda", "teach-pass-123")

	return e
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

func (e *env) request(t *testing.T, method string, path string, token string, body any) (int, apiResponse) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed apiResponse
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &parsed), "body: %s", data)
	}

	return resp.StatusCode, parsed
}

func (e *env) login(t *testing.T, username string, password string) string {
	t.Helper()

	status, resp := e.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	require.NotEmpty(t, result.Token)

	return result.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
