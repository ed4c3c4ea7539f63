package models

import (
	"time"

	"gorm.io/gorm"
)

type Teacher struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName string         `json:"first_name" gorm:"not null;size:100"`
	LastName  string         `json:"last_name" gorm:"not null;size:100"`
	Email     string         `json:"email" gorm:"unique;not null;size:255"`
	Courses   []*Course      `json:"courses,omitempty" gorm:"foreignKey:TeacherID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Teacher) TableName() string {
	return "teachers"
}

func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

// row — копия без ассоциаций для ссылок с другой стороны связи
func (t *Teacher) row() *Teacher {
	row := *t
	row.Courses = nil
	return &row
}

// AddCourse прикрепляет курс к преподавателю (обе стороны связи)
func (t *Teacher) AddCourse(course *Course) {
	course.SetTeacher(t)
	for _, c := range t.Courses {
		if c.ID == course.ID {
			return
		}
	}
	t.Courses = append(t.Courses, course.row())
}

// RemoveCourse открепляет курс от преподавателя (обе стороны связи)
func (t *Teacher) RemoveCourse(course *Course) {
	for i, c := range t.Courses {
		if c.ID == course.ID {
			t.Courses = append(t.Courses[:i], t.Courses[i+1:]...)
			break
		}
	}
	course.SetTeacher(nil)
}
