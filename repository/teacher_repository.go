package repository

import (
	"errors"

	"academy-backend/models"

	"gorm.io/gorm"
)

type TeacherRepository interface {
	BaseRepository[models.Teacher]
	FindByEmail(email string) (*models.Teacher, error)
	// FindByNameContainingIgnoreCase ищет подстроку в имени или фамилии
	FindByNameContainingIgnoreCase(name string) ([]*models.Teacher, error)
}

type teacherRepository struct {
	*baseRepository[models.Teacher]
}

func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{baseRepository: newBaseRepository[models.Teacher](db)}
}

// FindByID загружает преподавателя вместе с его курсами
func (r *teacherRepository) FindByID(id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.Preload("Courses").First(&teacher, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepository) FindByEmail(email string) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.Where("email = ?", email).First(&teacher).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepository) FindByNameContainingIgnoreCase(name string) ([]*models.Teacher, error) {
	var teachers []*models.Teacher
	pattern := "%" + name + "%"
	err := r.db.Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern).Find(&teachers).Error
	return teachers, err
}
