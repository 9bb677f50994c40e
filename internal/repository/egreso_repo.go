package repository

import (
	"context"
	"time"

	"galeriapos/internal/model"

	"gorm.io/gorm"
)

type EgresoRepository interface {
	Create(ctx context.Context, e *model.Egreso) error
	List(ctx context.Context, desde, hasta string, page, limit int) ([]model.Egreso, int64, error)
	ListSinCortePorRango(ctx context.Context, desde, hasta time.Time) ([]model.Egreso, error)
}

type egresoRepo struct{ db *gorm.DB }

func NewEgresoRepository(db *gorm.DB) EgresoRepository { return &egresoRepo{db: db} }

func (r *egresoRepo) Create(ctx context.Context, e *model.Egreso) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *egresoRepo) List(ctx context.Context, desde, hasta string, page, limit int) ([]model.Egreso, int64, error) {
	var egresos []model.Egreso
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Egreso{})
	if desde != "" {
		q = q.Where("fecha >= ?", desde)
	}
	if hasta != "" {
		q = q.Where("fecha <= ?", hasta)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("fecha DESC, created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&egresos).Error
	return egresos, total, err
}

func (r *egresoRepo) ListSinCortePorRango(ctx context.Context, desde, hasta time.Time) ([]model.Egreso, error) {
	var egresos []model.Egreso
	err := r.db.WithContext(ctx).
		Where("fecha >= ? AND fecha <= ? AND corte_id IS NULL", desde, hasta).
		Order("fecha ASC, created_at ASC").
		Find(&egresos).Error
	return egresos, err
}
