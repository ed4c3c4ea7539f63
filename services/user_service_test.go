package services

import (
	"testing"

	"academy-backend/auth"
	"academy-backend/models"
	"academy-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*repository.MemStore, *UserService) {
	t.Helper()
	store := repository.NewMemStore()
	return store, NewUserService(store, auth.PlainScheme{})
}

func TestRegisterUser_StudentCreatesDerivedRecord(t *testing.T) {
	store, svc := newUserFixture(t)

	user := &models.User{Username: "jane.doe", Password: "secret123", Email: "jane.doe@example.com"}
	_, err := svc.RegisterUser(user, models.RoleStudent)
	require.NoError(t, err)

	userCount, err := store.Users().Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), userCount)

	studentCount, err := store.Students().Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), studentCount)

	student, err := store.Students().FindByEmail("jane.doe@example.com")
	require.NoError(t, err)
	require.NotNil(t, student)
	assert.Equal(t, "jane", student.FirstName)
	assert.Equal(t, "doe", student.LastName)
}

func TestRegisterUser_TeacherUsesRawUsernameWithProvidedLastName(t *testing.T) {
	store, svc := newUserFixture(t)

	user := &models.User{Username: "bob", Password: "secret123", Email: "bob@example.com", LastName: "Kim"}
	_, err := svc.RegisterUser(user, models.RoleTeacher)
	require.NoError(t, err)

	teacher, err := store.Teachers().FindByEmail("bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, teacher)
	// username попадает в first_name как есть, без разбора
	assert.Equal(t, "bob", teacher.FirstName)
	assert.Equal(t, "Kim", teacher.LastName)
}

func TestRegisterUser_FallbackLastNameByRole(t *testing.T) {
	store, svc := newUserFixture(t)

	student := &models.User{Username: "alice", Password: "secret123", Email: "alice@example.com"}
	_, err := svc.RegisterUser(student, models.RoleStudent)
	require.NoError(t, err)

	derivedStudent, err := store.Students().FindByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, derivedStudent)
	assert.Equal(t, "alice", derivedStudent.FirstName)
	assert.Equal(t, "Student", derivedStudent.LastName)

	teacher := &models.User{Username: "carol", Password: "secret123", Email: "carol@example.com"}
	_, err = svc.RegisterUser(teacher, models.RoleTeacher)
	require.NoError(t, err)

	derivedTeacher, err := store.Teachers().FindByEmail("carol@example.com")
	require.NoError(t, err)
	require.NotNil(t, derivedTeacher)
	assert.Equal(t, "carol", derivedTeacher.FirstName)
	assert.Equal(t, "Teacher", derivedTeacher.LastName)
}

func TestRegisterUser_AdminCreatesNoDerivedRecord(t *testing.T) {
	store, svc := newUserFixture(t)

	user := &models.User{Username: "root", Password: "secret123", Email: "root@example.com"}
	_, err := svc.RegisterUser(user, models.RoleAdmin)
	require.NoError(t, err)

	studentCount, _ := store.Students().Count()
	teacherCount, _ := store.Teachers().Count()
	assert.Zero(t, studentCount)
	assert.Zero(t, teacherCount)
}

func TestRegisterUser_DuplicateUsernameLeavesNoRows(t *testing.T) {
	store, svc := newUserFixture(t)

	first := &models.User{Username: "jane.doe", Password: "secret123", Email: "jane.doe@example.com"}
	_, err := svc.RegisterUser(first, models.RoleStudent)
	require.NoError(t, err)

	dup := &models.User{Username: "jane.doe", Password: "other", Email: "other@example.com"}
	_, err = svc.RegisterUser(dup, models.RoleStudent)
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	userCount, _ := store.Users().Count()
	studentCount, _ := store.Students().Count()
	assert.Equal(t, int64(1), userCount)
	assert.Equal(t, int64(1), studentCount)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	_, svc := newUserFixture(t)

	first := &models.User{Username: "jane.doe", Password: "secret123", Email: "jane.doe@example.com"}
	_, err := svc.RegisterUser(first, models.RoleStudent)
	require.NoError(t, err)

	dup := &models.User{Username: "janet", Password: "other", Email: "jane.doe@example.com"}
	_, err = svc.RegisterUser(dup, models.RoleStudent)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterUser_DuplicateDerivedEmailBlocksRegistration(t *testing.T) {
	store, svc := newUserFixture(t)

	// Студент с таким email уже есть, хотя пользователя нет
	existing := &models.Student{FirstName: "Jane", LastName: "Doe", Email: "jane.doe@example.com"}
	require.NoError(t, store.Students().Save(existing))

	user := &models.User{Username: "jane.doe", Password: "secret123", Email: "jane.doe@example.com"}
	_, err := svc.RegisterUser(user, models.RoleStudent)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// Пользователь не должен остаться в хранилище
	userCount, _ := store.Users().Count()
	assert.Zero(t, userCount)
}

func TestAuthenticate_ExactMatch(t *testing.T) {
	_, svc := newUserFixture(t)

	user := &models.User{Username: "jane.doe", Password: "Secret123", Email: "jane.doe@example.com"}
	_, err := svc.RegisterUser(user, models.RoleAdmin)
	require.NoError(t, err)

	authenticated, err := svc.Authenticate("jane.doe", "Secret123")
	require.NoError(t, err)
	require.NotNil(t, authenticated)
	assert.Equal(t, "jane.doe", authenticated.Username)

	// Регистр имеет значение
	authenticated, err = svc.Authenticate("jane.doe", "secret123")
	require.NoError(t, err)
	assert.Nil(t, authenticated)

	authenticated, err = svc.Authenticate("nobody", "Secret123")
	require.NoError(t, err)
	assert.Nil(t, authenticated)
}

func TestEnsureDefaultAdmin_Idempotent(t *testing.T) {
	store, svc := newUserFixture(t)

	require.NoError(t, svc.EnsureDefaultAdmin())
	require.NoError(t, svc.EnsureDefaultAdmin())

	userCount, _ := store.Users().Count()
	assert.Equal(t, int64(1), userCount)

	admin, err := store.Users().FindByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "admin@example.com", admin.Email)
}

func TestDeriveName(t *testing.T) {
	cases := []struct {
		name      string
		user      models.User
		fallback  string
		wantFirst string
		wantLast  string
	}{
		{"dot split", models.User{Username: "jane.doe"}, "Student", "jane", "doe"},
		{"no dot", models.User{Username: "bob"}, "Student", "bob", "Student"},
		{"no dot teacher", models.User{Username: "bob"}, "Teacher", "bob", "Teacher"},
		{"explicit last name wins", models.User{Username: "bob", LastName: "Kim"}, "Teacher", "bob", "Kim"},
		{"explicit last name skips split", models.User{Username: "jane.doe", LastName: "Doe"}, "Student", "jane.doe", "Doe"},
		{"only first dot splits", models.User{Username: "a.b.c"}, "Student", "a", "b.c"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, last := deriveName(&tc.user, tc.fallback)
			assert.Equal(t, tc.wantFirst, first)
			assert.Equal(t, tc.wantLast, last)
		})
	}
}
