package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"academy-backend/middleware"
	"academy-backend/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequestAs(t *testing.T, r *mux.Router, method, path string, principal *middleware.Principal) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if principal != nil {
		req = req.WithContext(middleware.SetPrincipal(req.Context(), principal))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func adminPrincipal() *middleware.Principal {
	return &middleware.Principal{UserID: 1, Username: "admin", Role: models.RoleAdmin}
}

func TestDeleteTeacherEndpoint_AdminOnly(t *testing.T) {
	store, r := newAPIFixture(t)
	teacher := seedTeacher(t, store, "John", "Smith", "john.smith@example.com")
	path := fmt.Sprintf("/api/teachers/%d", teacher.ID)

	rec := doRequestAs(t, r, "DELETE", path, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequestAs(t, r, "DELETE", path, &middleware.Principal{UserID: 2, Username: "jane.doe", Role: models.RoleStudent})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	existing, err := store.Teachers().FindByID(teacher.ID)
	require.NoError(t, err)
	assert.NotNil(t, existing, "teacher must survive rejected requests")
}

func TestDeleteTeacherEndpoint_DetachesCourses(t *testing.T) {
	store, r := newAPIFixture(t)
	teacher := seedTeacher(t, store, "John", "Smith", "john.smith@example.com")
	course := seedCourse(t, store, "Java Programming")

	rec := doRequestAs(t, r, "PUT",
		fmt.Sprintf("/api/teachers/%d/courses/%d", teacher.ID, course.ID), adminPrincipal())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequestAs(t, r, "DELETE", fmt.Sprintf("/api/teachers/%d", teacher.ID), adminPrincipal())
	require.Equal(t, http.StatusNoContent, rec.Code)

	gone, err := store.Teachers().FindByID(teacher.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	detached, err := store.Courses().FindByID(course.ID)
	require.NoError(t, err)
	require.NotNil(t, detached, "course must survive teacher deletion")
	assert.Nil(t, detached.TeacherID)
}

func TestAssignCourseEndpoint_ReturnsUpdatedTeacher(t *testing.T) {
	store, r := newAPIFixture(t)
	teacher := seedTeacher(t, store, "John", "Smith", "john.smith@example.com")
	course := seedCourse(t, store, "Java Programming")

	rec := doRequestAs(t, r, "PUT",
		fmt.Sprintf("/api/teachers/%d/courses/%d", teacher.ID, course.ID), adminPrincipal())

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotZero(t, rec.Body.Len(), "response body must not be empty")

	var updated models.Teacher
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Len(t, updated.Courses, 1)
	assert.Equal(t, course.ID, updated.Courses[0].ID)
}
