package admin_users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/users"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/users/models"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/logger"
)

func newHandler() *Handler {
	log := logger.NewDiscard()
	return NewHandler(users.NewService(memory.NewStore().Users(), log), log)
}

func create(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	h := newHandler()

	rec := create(h, `{"username":"client1","password":"secret-password"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret-password")

	var user models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "client1", user.Username)
	assert.Equal(t, "client", user.Role)
	assert.NotEmpty(t, user.ID)

	assert.Equal(t, http.StatusConflict, create(h, `{"username":"client1","password":"another-password"}`).Code)
	assert.Equal(t, http.StatusBadRequest, create(h, `{"username":"c2","password":"short"}`).Code)
	assert.Equal(t, http.StatusBadRequest, create(h, `{"username":"client3","password":"secret-password","role":"root"}`).Code)
}

func TestListAndDelete(t *testing.T) {
	h := newHandler()

	rec := create(h, `{"username":"admin1","password":"secret-password","role":"admin"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "admin", list[0].Role)

	del := func(id string) int {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users/"+id, nil)
		req = mux.SetURLVars(req, map[string]string{"userId": id})
		rec := httptest.NewRecorder()
		h.Delete(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, del(created.ID))
	assert.Equal(t, http.StatusNotFound, del(created.ID))
}
