package repository

import (
	"strings"
	"sync"

	"academy-backend/models"
)

// MemStore — хранилище в памяти с той же семантикой, что и у gormStore.
// Используется в тестах сервисов и обработчиков вместо PostgreSQL.
type MemStore struct {
	mu          sync.Mutex
	students    map[uint]models.Student
	teachers    map[uint]models.Teacher
	courses     map[uint]models.Course
	users       map[uint]models.User
	enrollments map[uint]map[uint]struct{} // courseID -> studentIDs
	nextID      uint
}

func NewMemStore() *MemStore {
	return &MemStore{
		students:    make(map[uint]models.Student),
		teachers:    make(map[uint]models.Teacher),
		courses:     make(map[uint]models.Course),
		users:       make(map[uint]models.User),
		enrollments: make(map[uint]map[uint]struct{}),
	}
}

func (m *MemStore) Students() StudentRepository { return &memStudents{m} }
func (m *MemStore) Teachers() TeacherRepository { return &memTeachers{m} }
func (m *MemStore) Courses() CourseRepository   { return &memCourses{m} }
func (m *MemStore) Users() UserRepository       { return &memUsers{m} }

// Atomically в памяти не откатывает изменения; единица работы та же
func (m *MemStore) Atomically(fn func(Store) error) error {
	return fn(m)
}

func (m *MemStore) allocID() uint {
	m.nextID++
	return m.nextID
}

// строки без ассоциаций, чтобы тесты не видели общие указатели

func copyStudentRow(s models.Student) *models.Student {
	s.EnrolledCourses = nil
	return &s
}

func copyTeacherRow(t models.Teacher) *models.Teacher {
	t.Courses = nil
	return &t
}

func copyCourseRow(c models.Course) *models.Course {
	c.Teacher = nil
	c.Students = nil
	if c.TeacherID != nil {
		id := *c.TeacherID
		c.TeacherID = &id
	}
	return &c
}

// --- students ---

type memStudents struct{ m *MemStore }

func (r *memStudents) FindAll() ([]*models.Student, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Student
	for _, s := range r.m.students {
		out = append(out, copyStudentRow(s))
	}
	return out, nil
}

func (r *memStudents) FindByID(id uint) (*models.Student, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	row, ok := r.m.students[id]
	if !ok {
		return nil, nil
	}
	student := copyStudentRow(row)
	for courseID, members := range r.m.enrollments {
		if _, enrolled := members[id]; !enrolled {
			continue
		}
		if course, ok := r.m.courses[courseID]; ok {
			student.EnrolledCourses = append(student.EnrolledCourses, copyCourseRow(course))
		}
	}
	return student, nil
}

func (r *memStudents) Save(student *models.Student) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if student.ID == 0 {
		student.ID = r.m.allocID()
	}
	r.m.students[student.ID] = *copyStudentRow(*student)
	return nil
}

func (r *memStudents) DeleteByID(id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.students, id)
	return nil
}

func (r *memStudents) Count() (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.students)), nil
}

func (r *memStudents) FindByEmail(email string) (*models.Student, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.students {
		if s.Email == email {
			return copyStudentRow(s), nil
		}
	}
	return nil, nil
}

func (r *memStudents) FindByLastName(lastName string) ([]*models.Student, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Student
	for _, s := range r.m.students {
		if s.LastName == lastName {
			out = append(out, copyStudentRow(s))
		}
	}
	return out, nil
}

func (r *memStudents) ReplaceEnrollments(student *models.Student) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	wanted := make(map[uint]struct{}, len(student.EnrolledCourses))
	for _, c := range student.EnrolledCourses {
		wanted[c.ID] = struct{}{}
	}
	for courseID, members := range r.m.enrollments {
		if _, keep := wanted[courseID]; keep {
			members[student.ID] = struct{}{}
		} else {
			delete(members, student.ID)
		}
	}
	for courseID := range wanted {
		if r.m.enrollments[courseID] == nil {
			r.m.enrollments[courseID] = make(map[uint]struct{})
		}
		r.m.enrollments[courseID][student.ID] = struct{}{}
	}
	return nil
}

func (r *memStudents) ClearEnrollments(student *models.Student) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, members := range r.m.enrollments {
		delete(members, student.ID)
	}
	return nil
}

// --- teachers ---

type memTeachers struct{ m *MemStore }

func (r *memTeachers) FindAll() ([]*models.Teacher, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Teacher
	for _, t := range r.m.teachers {
		out = append(out, copyTeacherRow(t))
	}
	return out, nil
}

func (r *memTeachers) FindByID(id uint) (*models.Teacher, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	row, ok := r.m.teachers[id]
	if !ok {
		return nil, nil
	}
	teacher := copyTeacherRow(row)
	for _, c := range r.m.courses {
		if c.TeacherID != nil && *c.TeacherID == id {
			teacher.Courses = append(teacher.Courses, copyCourseRow(c))
		}
	}
	return teacher, nil
}

func (r *memTeachers) Save(teacher *models.Teacher) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if teacher.ID == 0 {
		teacher.ID = r.m.allocID()
	}
	r.m.teachers[teacher.ID] = *copyTeacherRow(*teacher)
	return nil
}

func (r *memTeachers) DeleteByID(id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.teachers, id)
	return nil
}

func (r *memTeachers) Count() (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.teachers)), nil
}

func (r *memTeachers) FindByEmail(email string) (*models.Teacher, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, t := range r.m.teachers {
		if t.Email == email {
			return copyTeacherRow(t), nil
		}
	}
	return nil, nil
}

func (r *memTeachers) FindByNameContainingIgnoreCase(name string) ([]*models.Teacher, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	needle := strings.ToLower(name)
	var out []*models.Teacher
	for _, t := range r.m.teachers {
		if strings.Contains(strings.ToLower(t.FirstName), needle) ||
			strings.Contains(strings.ToLower(t.LastName), needle) {
			out = append(out, copyTeacherRow(t))
		}
	}
	return out, nil
}

// --- courses ---

type memCourses struct{ m *MemStore }

func (r *memCourses) FindAll() ([]*models.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Course
	for _, c := range r.m.courses {
		out = append(out, copyCourseRow(c))
	}
	return out, nil
}

func (r *memCourses) FindByID(id uint) (*models.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	row, ok := r.m.courses[id]
	if !ok {
		return nil, nil
	}
	course := copyCourseRow(row)
	if course.TeacherID != nil {
		if t, ok := r.m.teachers[*course.TeacherID]; ok {
			course.Teacher = copyTeacherRow(t)
		}
	}
	for studentID := range r.m.enrollments[id] {
		if s, ok := r.m.students[studentID]; ok {
			course.Students = append(course.Students, copyStudentRow(s))
		}
	}
	return course, nil
}

func (r *memCourses) Save(course *models.Course) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if course.ID == 0 {
		course.ID = r.m.allocID()
	}
	r.m.courses[course.ID] = *copyCourseRow(*course)
	return nil
}

func (r *memCourses) DeleteByID(id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.courses, id)
	return nil
}

func (r *memCourses) Count() (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.courses)), nil
}

func (r *memCourses) FindByName(name string) (*models.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.courses {
		if c.Name == name {
			return copyCourseRow(c), nil
		}
	}
	return nil, nil
}

func (r *memCourses) FindByTeacherID(teacherID uint) ([]*models.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Course
	for _, c := range r.m.courses {
		if c.TeacherID != nil && *c.TeacherID == teacherID {
			out = append(out, copyCourseRow(c))
		}
	}
	return out, nil
}

func (r *memCourses) Search(text string) ([]*models.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	needle := strings.ToLower(text)
	var out []*models.Course
	for _, c := range r.m.courses {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Description), needle) {
			out = append(out, copyCourseRow(c))
		}
	}
	return out, nil
}

func (r *memCourses) CountByTeacherID(teacherID uint) (int64, error) {
	courses, _ := r.FindByTeacherID(teacherID)
	return int64(len(courses)), nil
}

func (r *memCourses) ReplaceStudents(course *models.Course) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	members := make(map[uint]struct{}, len(course.Students))
	for _, s := range course.Students {
		members[s.ID] = struct{}{}
	}
	r.m.enrollments[course.ID] = members
	return nil
}

func (r *memCourses) ClearStudents(course *models.Course) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.enrollments, course.ID)
	return nil
}

func (r *memCourses) DetachTeacher(teacherID uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, c := range r.m.courses {
		if c.TeacherID != nil && *c.TeacherID == teacherID {
			c.TeacherID = nil
			r.m.courses[id] = c
		}
	}
	return nil
}

// --- users ---

type memUsers struct{ m *MemStore }

func (r *memUsers) FindAll() ([]*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.User
	for _, u := range r.m.users {
		copied := u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memUsers) FindByID(id uint) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if u, ok := r.m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUsers) Save(user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.m.allocID()
	}
	r.m.users[user.ID] = *user
	return nil
}

func (r *memUsers) DeleteByID(id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.users, id)
	return nil
}

func (r *memUsers) Count() (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.users)), nil
}

func (r *memUsers) FindByUsername(username string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUsers) FindByEmail(email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUsers) ExistsByUsername(username string) (bool, error) {
	u, err := r.FindByUsername(username)
	return u != nil, err
}

func (r *memUsers) ExistsByEmail(email string) (bool, error) {
	u, err := r.FindByEmail(email)
	return u != nil, err
}
