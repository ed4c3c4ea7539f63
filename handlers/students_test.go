package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"academy-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollEndpoint_ReturnsUpdatedStudent(t *testing.T) {
	store, r := newAPIFixture(t)
	student := seedStudent(t, store, "Jane", "Doe", "jane.doe@example.com")
	course := seedCourse(t, store, "Java Programming")

	rec := doRequest(t, r, "POST", fmt.Sprintf("/api/students/%d/courses/%d", student.ID, course.ID))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotZero(t, rec.Body.Len(), "response body must not be empty")

	var updated models.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Len(t, updated.EnrolledCourses, 1)
	assert.Equal(t, course.ID, updated.EnrolledCourses[0].ID)
}

func TestWithdrawEndpoint_ReturnsUpdatedStudent(t *testing.T) {
	store, r := newAPIFixture(t)
	student := seedStudent(t, store, "Jane", "Doe", "jane.doe@example.com")
	course := seedCourse(t, store, "Java Programming")

	rec := doRequest(t, r, "POST", fmt.Sprintf("/api/students/%d/courses/%d", student.ID, course.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, r, "DELETE", fmt.Sprintf("/api/students/%d/courses/%d", student.ID, course.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Empty(t, updated.EnrolledCourses)
}

func TestEnrollEndpoint_UnknownCourseReturns404(t *testing.T) {
	store, r := newAPIFixture(t)
	student := seedStudent(t, store, "Jane", "Doe", "jane.doe@example.com")

	rec := doRequest(t, r, "POST", fmt.Sprintf("/api/students/%d/courses/999", student.ID))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
