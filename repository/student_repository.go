package repository

import (
	"errors"

	"academy-backend/models"

	"gorm.io/gorm"
)

type StudentRepository interface {
	BaseRepository[models.Student]
	FindByEmail(email string) (*models.Student, error)
	FindByLastName(lastName string) ([]*models.Student, error)
	// ReplaceEnrollments приводит таблицу связей к текущему списку EnrolledCourses
	ReplaceEnrollments(student *models.Student) error
	ClearEnrollments(student *models.Student) error
}

type studentRepository struct {
	*baseRepository[models.Student]
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{baseRepository: newBaseRepository[models.Student](db)}
}

// FindByID загружает студента вместе с его курсами
func (r *studentRepository) FindByID(id uint) (*models.Student, error) {
	var student models.Student
	err := r.db.Preload("EnrolledCourses").First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByEmail(email string) (*models.Student, error) {
	var student models.Student
	err := r.db.Where("email = ?", email).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByLastName(lastName string) ([]*models.Student, error) {
	var students []*models.Student
	err := r.db.Where("last_name = ?", lastName).Find(&students).Error
	return students, err
}

func (r *studentRepository) ReplaceEnrollments(student *models.Student) error {
	return r.db.Model(student).Association("EnrolledCourses").Replace(student.EnrolledCourses)
}

func (r *studentRepository) ClearEnrollments(student *models.Student) error {
	return r.db.Model(student).Association("EnrolledCourses").Clear()
}
