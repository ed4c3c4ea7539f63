package models

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string         `json:"name" gorm:"not null;size:100"`
	Description string         `json:"description,omitempty" gorm:"size:300"`
	TeacherID   *uint          `json:"teacher_id,omitempty"`
	Teacher     *Teacher       `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Students    []*Student     `json:"students,omitempty" gorm:"many2many:student_course"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Course) TableName() string {
	return "courses"
}

// AddStudent записывает студента на курс (обе стороны связи)
func (c *Course) AddStudent(student *Student) {
	c.attachStudent(student)
	student.attachCourse(c)
}

// RemoveStudent отчисляет студента с курса (обе стороны связи)
func (c *Course) RemoveStudent(student *Student) {
	c.detachStudent(student)
	student.detachCourse(c)
}

// SetTeacher выставляет и ссылку, и внешний ключ; nil снимает оба.
// Ссылка хранится без списка курсов преподавателя, иначе курс ссылался
// бы сам на себя через Teacher.Courses
func (c *Course) SetTeacher(teacher *Teacher) {
	if teacher == nil {
		c.Teacher = nil
		c.TeacherID = nil
		return
	}
	c.Teacher = teacher.row()
	id := teacher.ID
	c.TeacherID = &id
}

// row — копия без ассоциаций для списков другой стороны связи
func (c *Course) row() *Course {
	row := *c
	row.Teacher = nil
	row.Students = nil
	if c.TeacherID != nil {
		id := *c.TeacherID
		row.TeacherID = &id
	}
	return &row
}

func (c *Course) attachStudent(student *Student) {
	for _, s := range c.Students {
		if s.ID == student.ID {
			return
		}
	}
	c.Students = append(c.Students, student.row())
}

func (c *Course) detachStudent(student *Student) {
	for i, s := range c.Students {
		if s.ID == student.ID {
			c.Students = append(c.Students[:i], c.Students[i+1:]...)
			return
		}
	}
}
