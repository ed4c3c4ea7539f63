package repository

import (
	"errors"

	"academy-backend/models"

	"gorm.io/gorm"
)

type CourseRepository interface {
	BaseRepository[models.Course]
	// FindByName ищет курс по точному названию
	FindByName(name string) (*models.Course, error)
	FindByTeacherID(teacherID uint) ([]*models.Course, error)
	// Search ищет подстроку в названии или описании без учета регистра
	Search(text string) ([]*models.Course, error)
	// CountByTeacherID считает курсы преподавателя агрегатным запросом,
	// независимо от загруженного списка Courses
	CountByTeacherID(teacherID uint) (int64, error)
	// ReplaceStudents приводит таблицу связей к текущему списку Students
	ReplaceStudents(course *models.Course) error
	ClearStudents(course *models.Course) error
	// DetachTeacher снимает преподавателя со всех его курсов одним запросом
	DetachTeacher(teacherID uint) error
}

type courseRepository struct {
	*baseRepository[models.Course]
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{baseRepository: newBaseRepository[models.Course](db)}
}

// FindByID загружает курс вместе с преподавателем и студентами
func (r *courseRepository) FindByID(id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.Preload("Teacher").Preload("Students").First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Save не трогает таблицу связей: записи студентов меняются только
// через ReplaceStudents/ClearStudents
func (r *courseRepository) Save(course *models.Course) error {
	return r.db.Omit("Students", "Teacher").Save(course).Error
}

func (r *courseRepository) FindByName(name string) (*models.Course, error) {
	var course models.Course
	err := r.db.Where("name = ?", name).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindByTeacherID(teacherID uint) ([]*models.Course, error) {
	var courses []*models.Course
	err := r.db.Where("teacher_id = ?", teacherID).Find(&courses).Error
	return courses, err
}

func (r *courseRepository) Search(text string) ([]*models.Course, error) {
	var courses []*models.Course
	pattern := "%" + text + "%"
	err := r.db.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).Find(&courses).Error
	return courses, err
}

func (r *courseRepository) CountByTeacherID(teacherID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Course{}).Where("teacher_id = ?", teacherID).Count(&count).Error
	return count, err
}

func (r *courseRepository) ReplaceStudents(course *models.Course) error {
	return r.db.Model(course).Association("Students").Replace(course.Students)
}

func (r *courseRepository) ClearStudents(course *models.Course) error {
	return r.db.Model(course).Association("Students").Clear()
}

func (r *courseRepository) DetachTeacher(teacherID uint) error {
	return r.db.Model(&models.Course{}).Where("teacher_id = ?", teacherID).Update("teacher_id", nil).Error
}
