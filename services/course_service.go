package services

import (
	"fmt"

	"academy-backend/models"
	"academy-backend/repository"
)

// CourseService отвечает за курсы и согласованность их связей
// с преподавателями и студентами
type CourseService struct {
	store repository.Store
}

func NewCourseService(store repository.Store) *CourseService {
	return &CourseService{store: store}
}

func (s *CourseService) GetAllCourses() ([]*models.Course, error) {
	return s.store.Courses().FindAll()
}

func (s *CourseService) GetCourseByID(id uint) (*models.Course, error) {
	course, err := s.store.Courses().FindByID(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
	}
	return course, nil
}

func (s *CourseService) SaveCourse(course *models.Course) error {
	return s.store.Courses().Save(course)
}

// DeleteCourse удаляет курс, предварительно сняв все записи студентов
func (s *CourseService) DeleteCourse(id uint) error {
	return s.store.Atomically(func(st repository.Store) error {
		course, err := st.Courses().FindByID(id)
		if err != nil {
			return err
		}
		if course == nil {
			return fmt.Errorf("course %d: %w", id, ErrNotFound)
		}
		if err := st.Courses().ClearStudents(course); err != nil {
			return err
		}
		return st.Courses().DeleteByID(id)
	})
}

func (s *CourseService) FindByName(name string) (*models.Course, error) {
	return s.store.Courses().FindByName(name)
}

func (s *CourseService) SearchCourses(text string) ([]*models.Course, error) {
	return s.store.Courses().Search(text)
}

func (s *CourseService) GetCoursesByTeacher(teacherID uint) ([]*models.Course, error) {
	return s.store.Courses().FindByTeacherID(teacherID)
}

func (s *CourseService) GetEnrolledStudents(courseID uint) ([]*models.Student, error) {
	course, err := s.GetCourseByID(courseID)
	if err != nil {
		return nil, err
	}
	return course.Students, nil
}

// AssignTeacherToCourse назначает преподавателя на курс. Обе стороны
// связи обновляются в одной транзакции; прежний преподаватель курса
// при этом автоматически теряет курс, так как у курса ровно один teacher_id.
func (s *CourseService) AssignTeacherToCourse(courseID, teacherID uint) (*models.Course, error) {
	var course *models.Course
	err := s.store.Atomically(func(st repository.Store) error {
		c, err := st.Courses().FindByID(courseID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		teacher, err := st.Teachers().FindByID(teacherID)
		if err != nil {
			return err
		}
		if teacher == nil {
			return fmt.Errorf("teacher %d: %w", teacherID, ErrNotFound)
		}
		teacher.AddCourse(c)
		if err := st.Courses().Save(c); err != nil {
			return err
		}
		course = c
		return nil
	})
	return course, err
}

// AddStudentToCourse записывает студента на курс со стороны курса
func (s *CourseService) AddStudentToCourse(courseID, studentID uint) (*models.Course, error) {
	var course *models.Course
	err := s.store.Atomically(func(st repository.Store) error {
		c, err := st.Courses().FindByID(courseID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		student, err := st.Students().FindByID(studentID)
		if err != nil {
			return err
		}
		if student == nil {
			return fmt.Errorf("student %d: %w", studentID, ErrNotFound)
		}
		c.AddStudent(student)
		if err := st.Courses().ReplaceStudents(c); err != nil {
			return err
		}
		course = c
		return nil
	})
	return course, err
}

// RemoveStudentFromCourse отчисляет студента с курса со стороны курса
func (s *CourseService) RemoveStudentFromCourse(courseID, studentID uint) (*models.Course, error) {
	var course *models.Course
	err := s.store.Atomically(func(st repository.Store) error {
		c, err := st.Courses().FindByID(courseID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		student, err := st.Students().FindByID(studentID)
		if err != nil {
			return err
		}
		if student == nil {
			return fmt.Errorf("student %d: %w", studentID, ErrNotFound)
		}
		c.RemoveStudent(student)
		if err := st.Courses().ReplaceStudents(c); err != nil {
			return err
		}
		course = c
		return nil
	})
	return course, err
}
