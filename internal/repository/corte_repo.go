package repository

import (
	"context"
	"errors"
	"time"

	"galeriapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrPeriodoDuplicado is returned when a corte with the same periodo already
// exists. The unique index on cortes.periodo is the race arbiter: even if two
// concurrent requests pass the pre-check, only one insert wins.
var ErrPeriodoDuplicado = errors.New("ya existe un corte para el periodo")

type CorteRepository interface {
	// Crear persists the corte with its detalles and stamps corte_id on the
	// given ventas/egresos, all in one transaction.
	Crear(ctx context.Context, corte *model.Corte, ventaIDs, egresoIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Corte, error)
	ExistePeriodo(ctx context.Context, periodo string) (bool, error)
	// FindPorFecha returns the corte whose [fecha_inicio, fecha_fin] range
	// contains the given date, or gorm.ErrRecordNotFound.
	FindPorFecha(ctx context.Context, fecha time.Time) (*model.Corte, error)
	List(ctx context.Context, page, limit int) ([]model.Corte, int64, error)
	// Eliminar is the admin override: removes the corte and restores the
	// linked ventas/egresos to unsettled state in one transaction.
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type corteRepo struct{ db *gorm.DB }

func NewCorteRepository(db *gorm.DB) CorteRepository { return &corteRepo{db: db} }

func (r *corteRepo) Crear(ctx context.Context, corte *model.Corte, ventaIDs, egresoIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(corte).Error; err != nil {
			return err
		}
		if len(ventaIDs) > 0 {
			if err := tx.Model(&model.Venta{}).
				Where("id IN ?", ventaIDs).
				Update("corte_id", corte.ID).Error; err != nil {
				return err
			}
		}
		if len(egresoIDs) > 0 {
			if err := tx.Model(&model.Egreso{}).
				Where("id IN ?", egresoIDs).
				Update("corte_id", corte.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrPeriodoDuplicado
	}
	return err
}

func (r *corteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Corte, error) {
	var c model.Corte
	err := r.db.WithContext(ctx).
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("orden ASC") }).
		First(&c, id).Error
	return &c, err
}

func (r *corteRepo) ExistePeriodo(ctx context.Context, periodo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Corte{}).
		Where("periodo = ?", periodo).Count(&count).Error
	return count > 0, err
}

func (r *corteRepo) FindPorFecha(ctx context.Context, fecha time.Time) (*model.Corte, error) {
	var c model.Corte
	err := r.db.WithContext(ctx).
		Where("fecha_inicio <= ? AND fecha_fin >= ?", fecha, fecha).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *corteRepo) List(ctx context.Context, page, limit int) ([]model.Corte, int64, error) {
	var cortes []model.Corte
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Corte{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("orden ASC") }).
		Order("fecha_inicio DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&cortes).Error
	return cortes, total, err
}

func (r *corteRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Venta{}).
			Where("corte_id = ?", id).
			Update("corte_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Egreso{}).
			Where("corte_id = ?", id).
			Update("corte_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("corte_id = ?", id).Delete(&model.CorteMarca{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Corte{}, id).Error
	})
}
