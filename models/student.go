package models

import (
	"time"

	"gorm.io/gorm"
)

type Student struct {
	ID              uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName       string         `json:"first_name" gorm:"not null;size:100"`
	LastName        string         `json:"last_name" gorm:"not null;size:100"`
	Email           string         `json:"email" gorm:"unique;not null;size:255"`
	EnrolledCourses []*Course      `json:"enrolled_courses,omitempty" gorm:"many2many:student_course"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Student) TableName() string {
	return "students"
}

// EnrollInCourse добавляет курс студенту и студента курсу (обе стороны связи)
func (s *Student) EnrollInCourse(course *Course) {
	s.attachCourse(course)
	course.attachStudent(s)
}

// WithdrawFromCourse убирает курс у студента и студента из курса
func (s *Student) WithdrawFromCourse(course *Course) {
	s.detachCourse(course)
	course.detachStudent(s)
}

// row — копия без ассоциаций; в списки другой стороны связи попадает
// именно она, чтобы агрегат не содержал циклов и сериализовался в JSON
func (s *Student) row() *Student {
	row := *s
	row.EnrolledCourses = nil
	return &row
}

func (s *Student) attachCourse(course *Course) {
	for _, c := range s.EnrolledCourses {
		if c.ID == course.ID {
			return
		}
	}
	s.EnrolledCourses = append(s.EnrolledCourses, course.row())
}

func (s *Student) detachCourse(course *Course) {
	for i, c := range s.EnrolledCourses {
		if c.ID == course.ID {
			s.EnrolledCourses = append(s.EnrolledCourses[:i], s.EnrolledCourses[i+1:]...)
			return
		}
	}
}
