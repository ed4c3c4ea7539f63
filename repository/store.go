package repository

import "gorm.io/gorm"

// Store объединяет репозитории и задает транзакционную границу.
// Atomically выполняет fn в одной транзакции: все изменения внутри
// либо применяются целиком, либо откатываются.
type Store interface {
	Students() StudentRepository
	Teachers() TeacherRepository
	Courses() CourseRepository
	Users() UserRepository
	Atomically(fn func(Store) error) error
}

type gormStore struct {
	db       *gorm.DB
	students StudentRepository
	teachers TeacherRepository
	courses  CourseRepository
	users    UserRepository
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:       db,
		students: NewStudentRepository(db),
		teachers: NewTeacherRepository(db),
		courses:  NewCourseRepository(db),
		users:    NewUserRepository(db),
	}
}

func (s *gormStore) Students() StudentRepository { return s.students }
func (s *gormStore) Teachers() TeacherRepository { return s.teachers }
func (s *gormStore) Courses() CourseRepository   { return s.courses }
func (s *gormStore) Users() UserRepository       { return s.users }

func (s *gormStore) Atomically(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
