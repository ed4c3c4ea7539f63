package services

import (
	"testing"

	"academy-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteTeacher_DetachesCoursesAndDeletes(t *testing.T) {
	store := repository.NewMemStore()
	svc := NewTeacherService(store)
	courses := NewCourseService(store)

	teacher := mustSaveTeacher(t, store, "John", "Smith", "john.smith@example.com")
	c1 := mustSaveCourse(t, store, "Java Programming", "")
	c2 := mustSaveCourse(t, store, "Advanced Java", "")

	_, err := courses.AssignTeacherToCourse(c1.ID, teacher.ID)
	require.NoError(t, err)
	_, err = courses.AssignTeacherToCourse(c2.ID, teacher.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTeacher(teacher.ID))

	gone, err := store.Teachers().FindByID(teacher.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	for _, id := range []uint{c1.ID, c2.ID} {
		course, err := store.Courses().FindByID(id)
		require.NoError(t, err)
		require.NotNil(t, course, "course must survive teacher deletion")
		assert.Nil(t, course.TeacherID)
		assert.Nil(t, course.Teacher)
	}
}

func TestDeleteTeacher_NotFound(t *testing.T) {
	store := repository.NewMemStore()
	svc := NewTeacherService(store)

	err := svc.DeleteTeacher(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountCoursesByTeacher_MatchesCourseList(t *testing.T) {
	store := repository.NewMemStore()
	svc := NewTeacherService(store)
	courses := NewCourseService(store)

	teacher := mustSaveTeacher(t, store, "John", "Smith", "john.smith@example.com")
	c1 := mustSaveCourse(t, store, "Java Programming", "")
	c2 := mustSaveCourse(t, store, "Advanced Java", "")
	mustSaveCourse(t, store, "Python Programming", "")

	_, err := courses.AssignTeacherToCourse(c1.ID, teacher.ID)
	require.NoError(t, err)
	_, err = courses.AssignTeacherToCourse(c2.ID, teacher.ID)
	require.NoError(t, err)

	count, err := svc.CountCoursesByTeacher(teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Агрегат должен совпадать с загруженным списком курсов
	loaded, err := store.Teachers().FindByID(teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, int(count), len(loaded.Courses))
}

func TestCountCoursesByTeacher_NotFound(t *testing.T) {
	store := repository.NewMemStore()
	svc := NewTeacherService(store)

	_, err := svc.CountCoursesByTeacher(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByName_SubstringIgnoreCase(t *testing.T) {
	store := repository.NewMemStore()
	svc := NewTeacherService(store)

	mustSaveTeacher(t, store, "John", "Smith", "john.smith@example.com")
	mustSaveTeacher(t, store, "Johanna", "Lee", "johanna.lee@example.com")
	mustSaveTeacher(t, store, "Mary", "Johnson", "mary.johnson@example.com")
	mustSaveTeacher(t, store, "Peter", "Brown", "peter.brown@example.com")

	found, err := svc.FindByName("JOH")
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestAssignAndRemoveCourseFromTeacher(t *testing.T) {
	store := repository.NewMemStore()
	svc := NewTeacherService(store)

	teacher := mustSaveTeacher(t, store, "John", "Smith", "john.smith@example.com")
	course := mustSaveCourse(t, store, "Java Programming", "")

	updated, err := svc.AssignCourseToTeacher(teacher.ID, course.ID)
	require.NoError(t, err)
	require.Len(t, updated.Courses, 1)

	fromStore, err := store.Courses().FindByID(course.ID)
	require.NoError(t, err)
	require.NotNil(t, fromStore.TeacherID)
	assert.Equal(t, teacher.ID, *fromStore.TeacherID)

	updated, err = svc.RemoveCourseFromTeacher(teacher.ID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Courses)

	fromStore, err = store.Courses().FindByID(course.ID)
	require.NoError(t, err)
	assert.Nil(t, fromStore.TeacherID)
}
