package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vishnukbarath/sharedtodo/config"
	"github.com/vishnukbarath/sharedtodo/controllers"
	"github.com/vishnukbarath/sharedtodo/routes"
	"github.com/vishnukbarath/sharedtodo/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	hub := services.NewRealtimeHub()
	activity := services.NewActivityService(db, hub)
	auth := services.NewAuthService(db)
	couples := services.NewCoupleService(db, activity)
	todos := services.NewTodoService(db, activity, nil)

	return routes.SetupRouter(routes.Controllers{
		Auth:     controllers.NewAuthController(auth),
		User:     controllers.NewUserController(auth, couples, nil),
		Couple:   controllers.NewCoupleController(couples, auth, nil),
		Todo:     controllers.NewTodoController(todos, couples),
		Activity: controllers.NewActivityController(activity, couples),
		Device:   controllers.NewDeviceController(nil),
		Realtime: controllers.NewRealtimeController(hub, couples),
	})
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// signUp registers a user and returns a bearer token.
func signUp(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"email": email, "password": "hunter2hunter2", "name": strings.Split(email, "@")[0],
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"email": email, "password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

func TestAuthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"email": "alice@example.com", "password": "hunter2hunter2", "name": "alice",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// duplicate email
	w = doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"email": "alice@example.com", "password": "hunter2hunter2", "name": "alice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// wrong password
	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	r := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/user"},
		{http.MethodPost, "/api/couples"},
		{http.MethodPost, "/api/couples/join"},
		{http.MethodGet, "/api/couple"},
		{http.MethodGet, "/api/todos"},
		{http.MethodPost, "/api/todos"},
		{http.MethodGet, "/api/activity"},
	} {
		w := doJSON(r, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}

	w := doJSON(r, http.MethodGet, "/api/user", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPairingEndpoints(t *testing.T) {
	r := newTestRouter(t)
	alice := signUp(t, r, "alice@example.com")
	bob := signUp(t, r, "bob@example.com")
	carol := signUp(t, r, "carol@example.com")

	// unpaired: coupleId is null, GET /api/couple is 404
	w := doJSON(r, http.MethodGet, "/api/user", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["coupleId"])

	w = doJSON(r, http.MethodGet, "/api/couple", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// create
	w = doJSON(r, http.MethodPost, "/api/couples", alice, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	code := decode(t, w)["inviteCode"].(string)
	require.Len(t, code, 6)

	w = doJSON(r, http.MethodPost, "/api/couples", alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// join
	w = doJSON(r, http.MethodPost, "/api/couples/join", bob, gin.H{"inviteCode": code})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/couples/join", carol, gin.H{"inviteCode": code})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/couples/join", carol, gin.H{"inviteCode": "ZZZZZZ"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// both members see the same workspace
	w = doJSON(r, http.MethodGet, "/api/couple", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	members := decode(t, w)["members"].([]any)
	assert.Len(t, members, 2)

	w = doJSON(r, http.MethodGet, "/api/user", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, decode(t, w)["coupleId"])
}

func TestTodoEndpoints(t *testing.T) {
	r := newTestRouter(t)
	alice := signUp(t, r, "alice@example.com")
	bob := signUp(t, r, "bob@example.com")

	// no couple yet
	w := doJSON(r, http.MethodGet, "/api/todos", alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/couples", alice, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	code := decode(t, w)["inviteCode"].(string)
	w = doJSON(r, http.MethodPost, "/api/couples/join", bob, gin.H{"inviteCode": code})
	require.Equal(t, http.StatusOK, w.Code)

	// validation
	w = doJSON(r, http.MethodPost, "/api/todos", alice, gin.H{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/todos", alice, gin.H{"title": "Plan dinner", "priority": "high"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id := int(created["id"].(float64))
	assert.Equal(t, "pending", created["status"])

	// partner completes it
	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/api/todos/%d", id), bob, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "completed", decode(t, w)["status"])

	// comment
	w = doJSON(r, http.MethodPost, fmt.Sprintf("/api/todos/%d/comments", id), bob, gin.H{"content": "done!"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// list includes the comment
	w = doJSON(r, http.MethodGet, "/api/todos", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var todos []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todos))
	require.Len(t, todos, 1)
	assert.Len(t, todos[0]["comments"].([]any), 1)

	// activity feed carries the transitions, newest first
	w = doJSON(r, http.MethodGet, "/api/activity", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var logs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	require.NotEmpty(t, logs)
	assert.Equal(t, "complete_todo", logs[0]["action"])

	// unknown id
	w = doJSON(r, http.MethodPatch, "/api/todos/99999", alice, gin.H{"status": "pending"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(r, http.MethodDelete, "/api/todos/99999", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/todos/%d", id), alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTodoCrossCoupleIsNotFound(t *testing.T) {
	r := newTestRouter(t)
	alice := signUp(t, r, "alice@example.com")
	carol := signUp(t, r, "carol@example.com")

	w := doJSON(r, http.MethodPost, "/api/couples", alice, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/api/couples", carol, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/todos", alice, gin.H{"title": "Private"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := int(decode(t, w)["id"].(float64))

	// another couple's member gets 404, not 403: existence is not leaked
	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/api/todos/%d", id), carol, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/todos/%d", id), carol, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(r, http.MethodPost, fmt.Sprintf("/api/todos/%d/comments", id), carol, gin.H{"content": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// and their list stays empty
	w = doJSON(r, http.MethodGet, "/api/todos", carol, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var todos []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todos))
	assert.Empty(t, todos)
}

func TestDisabledIntegrationsReportAsSuch(t *testing.T) {
	r := newTestRouter(t)
	alice := signUp(t, r, "alice@example.com")

	w := doJSON(r, http.MethodPost, "/api/devices", alice, gin.H{"platform": "android", "token": "tok"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/couples", alice, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/api/couple/invite", alice, gin.H{"email": "bob@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
