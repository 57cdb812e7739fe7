package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/handler"
	"github.com/homeschoolhq/hq-go-api/internal/service"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

type mockStudentService struct {
	listResult dto.StudentListResult
	upserted   store.Student
	upsertErr  error
	removedID  string
	removeErr  error
	activeID   string
	activeErr  error
}

func (m *mockStudentService) List(_ context.Context) dto.StudentListResult {
	return m.listResult
}

func (m *mockStudentService) Upsert(_ context.Context, req dto.StudentRequest) (store.Student, error) {
	if m.upsertErr != nil {
		return store.Student{}, m.upsertErr
	}
	m.upserted = store.Student{ID: req.ID, Name: req.Name, Grade: req.Grade}
	if m.upserted.ID == "" {
		m.upserted.ID = "generated"
	}
	return m.upserted, nil
}

func (m *mockStudentService) Remove(_ context.Context, studentID string) error {
	m.removedID = studentID
	return m.removeErr
}

func (m *mockStudentService) SetActive(_ context.Context, req dto.ActiveStudentRequest) error {
	m.activeID = req.StudentID
	return m.activeErr
}

func newStudentApp(svc *mockStudentService) *fiber.App {
	app := fiber.New()
	handler.NewStudentHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/students"))
	return app
}

func jsonRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func TestStudentHandler_List(t *testing.T) {
	svc := &mockStudentService{listResult: dto.StudentListResult{
		Students:        []store.Student{{ID: "s1", Name: "Ada"}},
		ActiveStudentID: "s1",
	}}
	app := newStudentApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/students", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                  `json:"success"`
		Data    dto.StudentListResult `json:"data"`
		Message string                `json:"message"`
	}
	decodeBody(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "students retrieved", body.Message)
	require.Equal(t, "s1", body.Data.ActiveStudentID)
	require.Len(t, body.Data.Students, 1)
}

func TestStudentHandler_CreateReturns201(t *testing.T) {
	svc := &mockStudentService{}
	app := newStudentApp(svc)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/students", `{"name":"Cleo","grade":"K"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "Cleo", svc.upserted.Name)
	require.Equal(t, "generated", svc.upserted.ID)
}

func TestStudentHandler_UpdateUsesPathID(t *testing.T) {
	svc := &mockStudentService{}
	app := newStudentApp(svc)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/v1/students/s2", `{"name":"Ben"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "s2", svc.upserted.ID)
}

func TestStudentHandler_UnknownStudentIs404(t *testing.T) {
	svc := &mockStudentService{upsertErr: service.ErrStudentNotFound}
	app := newStudentApp(svc)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/v1/students/ghost", `{"name":"Nobody"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStudentHandler_SetActiveBeatsWildcard(t *testing.T) {
	svc := &mockStudentService{}
	app := newStudentApp(svc)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/v1/students/active", `{"studentId":"s2"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "s2", svc.activeID)
	// The wildcard update path must not have swallowed the request.
	require.Empty(t, svc.upserted.ID)
}

func TestStudentHandler_Remove(t *testing.T) {
	svc := &mockStudentService{}
	app := newStudentApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/students/s1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "s1", svc.removedID)
}
