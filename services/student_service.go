package services

import (
	"fmt"

	"academy-backend/models"
	"academy-backend/repository"
)

type StudentService struct {
	store repository.Store
}

func NewStudentService(store repository.Store) *StudentService {
	return &StudentService{store: store}
}

func (s *StudentService) GetAllStudents() ([]*models.Student, error) {
	return s.store.Students().FindAll()
}

func (s *StudentService) GetStudentByID(id uint) (*models.Student, error) {
	student, err := s.store.Students().FindByID(id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("student %d: %w", id, ErrNotFound)
	}
	return student, nil
}

func (s *StudentService) SaveStudent(student *models.Student) error {
	return s.store.Students().Save(student)
}

// DeleteStudent удаляет студента, предварительно отчислив его со всех курсов
func (s *StudentService) DeleteStudent(id uint) error {
	return s.store.Atomically(func(st repository.Store) error {
		student, err := st.Students().FindByID(id)
		if err != nil {
			return err
		}
		if student == nil {
			return fmt.Errorf("student %d: %w", id, ErrNotFound)
		}
		if err := st.Students().ClearEnrollments(student); err != nil {
			return err
		}
		return st.Students().DeleteByID(id)
	})
}

func (s *StudentService) FindByEmail(email string) (*models.Student, error) {
	return s.store.Students().FindByEmail(email)
}

func (s *StudentService) FindByLastName(lastName string) ([]*models.Student, error) {
	return s.store.Students().FindByLastName(lastName)
}

// EnrollStudentInCourse записывает студента на курс со стороны студента
func (s *StudentService) EnrollStudentInCourse(studentID, courseID uint) (*models.Student, error) {
	var student *models.Student
	err := s.store.Atomically(func(st repository.Store) error {
		stud, err := st.Students().FindByID(studentID)
		if err != nil {
			return err
		}
		if stud == nil {
			return fmt.Errorf("student %d: %w", studentID, ErrNotFound)
		}
		course, err := st.Courses().FindByID(courseID)
		if err != nil {
			return err
		}
		if course == nil {
			return fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		stud.EnrollInCourse(course)
		if err := st.Students().ReplaceEnrollments(stud); err != nil {
			return err
		}
		student = stud
		return nil
	})
	return student, err
}

// WithdrawStudentFromCourse отчисляет студента с курса со стороны студента
func (s *StudentService) WithdrawStudentFromCourse(studentID, courseID uint) (*models.Student, error) {
	var student *models.Student
	err := s.store.Atomically(func(st repository.Store) error {
		stud, err := st.Students().FindByID(studentID)
		if err != nil {
			return err
		}
		if stud == nil {
			return fmt.Errorf("student %d: %w", studentID, ErrNotFound)
		}
		course, err := st.Courses().FindByID(courseID)
		if err != nil {
			return err
		}
		if course == nil {
			return fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		stud.WithdrawFromCourse(course)
		if err := st.Students().ReplaceEnrollments(stud); err != nil {
			return err
		}
		student = stud
		return nil
	})
	return student, err
}

func (s *StudentService) GetStudentCourses(studentID uint) ([]*models.Course, error) {
	student, err := s.GetStudentByID(studentID)
	if err != nil {
		return nil, err
	}
	return student.EnrolledCourses, nil
}
