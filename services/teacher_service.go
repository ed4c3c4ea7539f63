package services

import (
	"fmt"

	"academy-backend/models"
	"academy-backend/repository"
)

type TeacherService struct {
	store repository.Store
}

func NewTeacherService(store repository.Store) *TeacherService {
	return &TeacherService{store: store}
}

func (s *TeacherService) GetAllTeachers() ([]*models.Teacher, error) {
	return s.store.Teachers().FindAll()
}

func (s *TeacherService) GetTeacherByID(id uint) (*models.Teacher, error) {
	teacher, err := s.store.Teachers().FindByID(id)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, fmt.Errorf("teacher %d: %w", id, ErrNotFound)
	}
	return teacher, nil
}

func (s *TeacherService) SaveTeacher(teacher *models.Teacher) error {
	return s.store.Teachers().Save(teacher)
}

// DeleteTeacher открепляет все курсы преподавателя и удаляет его
// в одной транзакции: либо применяется целиком, либо ничего
func (s *TeacherService) DeleteTeacher(id uint) error {
	return s.store.Atomically(func(st repository.Store) error {
		teacher, err := st.Teachers().FindByID(id)
		if err != nil {
			return err
		}
		if teacher == nil {
			return fmt.Errorf("teacher %d: %w", id, ErrNotFound)
		}
		if err := st.Courses().DetachTeacher(id); err != nil {
			return err
		}
		return st.Teachers().DeleteByID(id)
	})
}

func (s *TeacherService) FindByEmail(email string) (*models.Teacher, error) {
	return s.store.Teachers().FindByEmail(email)
}

// FindByName ищет преподавателей по подстроке имени или фамилии
func (s *TeacherService) FindByName(name string) ([]*models.Teacher, error) {
	return s.store.Teachers().FindByNameContainingIgnoreCase(name)
}

func (s *TeacherService) GetTeacherCourses(teacherID uint) ([]*models.Course, error) {
	return s.store.Courses().FindByTeacherID(teacherID)
}

// CountCoursesByTeacher считает курсы агрегатным запросом к хранилищу
func (s *TeacherService) CountCoursesByTeacher(teacherID uint) (int64, error) {
	teacher, err := s.store.Teachers().FindByID(teacherID)
	if err != nil {
		return 0, err
	}
	if teacher == nil {
		return 0, fmt.Errorf("teacher %d: %w", teacherID, ErrNotFound)
	}
	return s.store.Courses().CountByTeacherID(teacherID)
}

// AssignCourseToTeacher прикрепляет курс к преподавателю со стороны преподавателя
func (s *TeacherService) AssignCourseToTeacher(teacherID, courseID uint) (*models.Teacher, error) {
	var teacher *models.Teacher
	err := s.store.Atomically(func(st repository.Store) error {
		t, err := st.Teachers().FindByID(teacherID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("teacher %d: %w", teacherID, ErrNotFound)
		}
		course, err := st.Courses().FindByID(courseID)
		if err != nil {
			return err
		}
		if course == nil {
			return fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		t.AddCourse(course)
		if err := st.Courses().Save(course); err != nil {
			return err
		}
		teacher = t
		return nil
	})
	return teacher, err
}

// RemoveCourseFromTeacher открепляет курс от преподавателя
func (s *TeacherService) RemoveCourseFromTeacher(teacherID, courseID uint) (*models.Teacher, error) {
	var teacher *models.Teacher
	err := s.store.Atomically(func(st repository.Store) error {
		t, err := st.Teachers().FindByID(teacherID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("teacher %d: %w", teacherID, ErrNotFound)
		}
		course, err := st.Courses().FindByID(courseID)
		if err != nil {
			return err
		}
		if course == nil {
			return fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		t.RemoveCourse(course)
		if err := st.Courses().Save(course); err != nil {
			return err
		}
		teacher = t
		return nil
	})
	return teacher, err
}
