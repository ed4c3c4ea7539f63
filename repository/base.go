package repository

import (
	"errors"

	"gorm.io/gorm"
)

// BaseRepository описывает общие CRUD операции для всех сущностей
type BaseRepository[T any] interface {
	FindAll() ([]*T, error)
	FindByID(id uint) (*T, error)
	Save(entity *T) error
	DeleteByID(id uint) error
	Count() (int64, error)
}

type baseRepository[T any] struct {
	db *gorm.DB
}

func newBaseRepository[T any](db *gorm.DB) *baseRepository[T] {
	return &baseRepository[T]{db: db}
}

func (r *baseRepository[T]) FindAll() ([]*T, error) {
	var entities []*T
	err := r.db.Find(&entities).Error
	return entities, err
}

// FindByID возвращает (nil, nil), если записи нет
func (r *baseRepository[T]) FindByID(id uint) (*T, error) {
	var entity T
	err := r.db.First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Save создает запись без ID и обновляет запись с ID
func (r *baseRepository[T]) Save(entity *T) error {
	return r.db.Save(entity).Error
}

func (r *baseRepository[T]) DeleteByID(id uint) error {
	var entity T
	return r.db.Delete(&entity, id).Error
}

func (r *baseRepository[T]) Count() (int64, error) {
	var count int64
	var entity T
	err := r.db.Model(&entity).Count(&count).Error
	return count, err
}
