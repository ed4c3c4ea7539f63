package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"academy-backend/models"
	"academy-backend/repository"
	"academy-backend/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// роутер с теми же маршрутами, что и в setupRoutes
func newAPIFixture(t *testing.T) (*repository.MemStore, *mux.Router) {
	t.Helper()
	store := repository.NewMemStore()
	studentHandler := NewStudentHandler(services.NewStudentService(store))
	teacherHandler := NewTeacherHandler(services.NewTeacherService(store))
	courseHandler := NewCourseHandler(services.NewCourseService(store))

	r := mux.NewRouter()
	r.HandleFunc("/api/students/{id}/courses/{courseId}", studentHandler.Enroll).Methods("POST")
	r.HandleFunc("/api/students/{id}/courses/{courseId}", studentHandler.Withdraw).Methods("DELETE")
	r.HandleFunc("/api/teachers/{id}", teacherHandler.DeleteTeacher).Methods("DELETE")
	r.HandleFunc("/api/teachers/{id}/courses/{courseId}", teacherHandler.AssignCourse).Methods("PUT")
	r.HandleFunc("/api/courses", courseHandler.GetCourses).Methods("GET")
	r.HandleFunc("/api/courses/{id}", courseHandler.GetCourse).Methods("GET")
	r.HandleFunc("/api/courses/{id}/students/{studentId}", courseHandler.AddStudent).Methods("POST")
	r.HandleFunc("/api/courses/{id}/teacher/{teacherId}", courseHandler.AssignTeacher).Methods("PUT")
	return store, r
}

func seedStudent(t *testing.T, store *repository.MemStore, firstName, lastName, email string) *models.Student {
	t.Helper()
	student := &models.Student{FirstName: firstName, LastName: lastName, Email: email}
	require.NoError(t, store.Students().Save(student))
	return student
}

func seedTeacher(t *testing.T, store *repository.MemStore, firstName, lastName, email string) *models.Teacher {
	t.Helper()
	teacher := &models.Teacher{FirstName: firstName, LastName: lastName, Email: email}
	require.NoError(t, store.Teachers().Save(teacher))
	return teacher
}

func seedCourse(t *testing.T, store *repository.MemStore, name string) *models.Course {
	t.Helper()
	course := &models.Course{Name: name}
	require.NoError(t, store.Courses().Save(course))
	return course
}

func doRequest(t *testing.T, r *mux.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAddStudentEndpoint_ReturnsUpdatedCourse(t *testing.T) {
	store, r := newAPIFixture(t)
	course := seedCourse(t, store, "Java Programming")
	student := seedStudent(t, store, "Jane", "Doe", "jane.doe@example.com")

	rec := doRequest(t, r, "POST", fmt.Sprintf("/api/courses/%d/students/%d", course.ID, student.ID))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotZero(t, rec.Body.Len(), "response body must not be empty")

	var updated models.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Len(t, updated.Students, 1)
	assert.Equal(t, "jane.doe@example.com", updated.Students[0].Email)
}

func TestAssignTeacherEndpoint_ReturnsUpdatedCourse(t *testing.T) {
	store, r := newAPIFixture(t)
	course := seedCourse(t, store, "Java Programming")
	teacher := seedTeacher(t, store, "John", "Smith", "john.smith@example.com")

	rec := doRequest(t, r, "PUT", fmt.Sprintf("/api/courses/%d/teacher/%d", course.ID, teacher.ID))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotZero(t, rec.Body.Len(), "response body must not be empty")

	var updated models.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.NotNil(t, updated.TeacherID)
	assert.Equal(t, teacher.ID, *updated.TeacherID)
}

func TestGetCourses_SearchFilter(t *testing.T) {
	store, r := newAPIFixture(t)
	seedCourse(t, store, "Java Programming")
	seedCourse(t, store, "Advanced Java")
	seedCourse(t, store, "Python Programming")

	rec := doRequest(t, r, "GET", "/api/courses?search=java")

	require.Equal(t, http.StatusOK, rec.Code)
	var found []models.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.Len(t, found, 2)
}

func TestGetCourse_NotFoundIsJSON(t *testing.T) {
	_, r := newAPIFixture(t)

	rec := doRequest(t, r, "GET", "/api/courses/999")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}
