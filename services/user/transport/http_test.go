package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"matchmaker/pkg/db"
	"matchmaker/pkg/dto"
	"matchmaker/services/user/handler"
	"matchmaker/services/user/repository"
	"matchmaker/services/user/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	conn, err := db.ConnectSQLite(":memory:")
	require.NoError(t, err)

	repo := repository.NewUserRepository(conn)
	require.NoError(t, repo.InitDB())

	svc := service.NewUserService(repo, nil)
	return NewRouter(handler.NewUserHandler(svc), []string{"http://*"})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Detail
}

const aliceJSON = `{"name":"Alice","age":27,"gender":"F","email":"alice@example.com","city":"Seoul","interests":["music","hiking"]}`

func TestUserCRUDFlow(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/users/", aliceJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created dto.UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, []string{"music", "hiking"}, created.Interests)
	path := "/users/" + strconv.Itoa(created.ID)

	rec = do(t, h, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":`+strconv.Itoa(created.ID)+`,"name":"Alice","age":27,"gender":"F","email":"alice@example.com","city":"Seoul","interests":["music","hiking"]}`, rec.Body.String())

	rec = do(t, h, http.MethodPut, path, `{"age":30,"interests":["chess"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated dto.UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 30, updated.Age)
	assert.Equal(t, "Seoul", updated.City)
	assert.Equal(t, []string{"chess"}, updated.Interests)

	rec = do(t, h, http.MethodGet, "/users?skip=0&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []dto.UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = do(t, h, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted dto.UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deleted))
	assert.Equal(t, updated, deleted)

	rec = do(t, h, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeDetail(t, rec))
}

func TestCreateUserErrors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
		detail string
	}{
		{"invalid email", `{"name":"A","age":20,"gender":"M","email":"nope","city":"X","interests":[]}`, http.StatusBadRequest, "Email must be valid"},
		{"minor", `{"name":"A","age":17,"gender":"M","email":"a@b.co","city":"X","interests":[]}`, http.StatusBadRequest, "Minors can't be registered: age should be 18+"},
		{"missing field", `{"name":"A","age":20,"gender":"M","email":"a@b.co","city":"X"}`, http.StatusUnprocessableEntity, "Invalid request payload"},
		{"malformed json", `{"name":`, http.StatusUnprocessableEntity, "Invalid request payload"},
		{"wrong type", `{"name":"A","age":"old","gender":"M","email":"a@b.co","city":"X","interests":[]}`, http.StatusUnprocessableEntity, "Invalid request payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/users/", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.detail, decodeDetail(t, rec))
		})
	}
}

func TestMissingFieldReportsField(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/users/", `{"name":"A","age":20,"gender":"M","email":"a@b.co","interests":[]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string]string{"city": "required"}, resp.Fields)
}

func TestTooLongValuesAreRejected(t *testing.T) {
	h := newTestRouter(t)
	long := strings.Repeat("x", 256)

	rec := do(t, h, http.MethodPost, "/users/", `{"name":"A","age":20,"gender":"`+long+`","email":"a@b.co","city":"X","interests":[]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string]string{"gender": "max"}, resp.Fields)

	rec = do(t, h, http.MethodPost, "/users/", `{"name":"A","age":20,"gender":"`+strings.Repeat("x", 255)+`","email":"a@b.co","city":"X","interests":["`+long+`"]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/users/", aliceJSON)
	require.Equal(t, http.StatusOK, rec.Code)
	var alice dto.UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alice))

	rec = do(t, h, http.MethodPut, "/users/"+strconv.Itoa(alice.ID), `{"city":"`+long+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Invalid request payload", decodeDetail(t, rec))
}

func TestDuplicateEmail(t *testing.T) {
	h := newTestRouter(t)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/users/", aliceJSON).Code)

	rec := do(t, h, http.MethodPost, "/users/", aliceJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", decodeDetail(t, rec))
}

func TestUnknownUserAndBadParams(t *testing.T) {
	h := newTestRouter(t)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/users/77", `{"age":40}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/users/77", "").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodGet, "/users/abc", "").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodGet, "/users/?limit=x", "").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodGet, "/users/?skip=-1", "").Code)
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "").Code)
}
