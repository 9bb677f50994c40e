package repository

import (
	"context"

	"galeriapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MarcaRepository interface {
	Create(ctx context.Context, m *model.Marca) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Marca, error)
	Update(ctx context.Context, m *model.Marca) error
	List(ctx context.Context, incluirInactivas bool) ([]model.Marca, error)
	SetActivo(ctx context.Context, id uuid.UUID, activo bool) error
}

type marcaRepo struct{ db *gorm.DB }

func NewMarcaRepository(db *gorm.DB) MarcaRepository { return &marcaRepo{db: db} }

func (r *marcaRepo) Create(ctx context.Context, m *model.Marca) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *marcaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Marca, error) {
	var m model.Marca
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *marcaRepo) Update(ctx context.Context, m *model.Marca) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *marcaRepo) List(ctx context.Context, incluirInactivas bool) ([]model.Marca, error) {
	var marcas []model.Marca
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if !incluirInactivas {
		q = q.Where("activo = true")
	}
	err := q.Find(&marcas).Error
	return marcas, err
}

func (r *marcaRepo) SetActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Marca{}).Where("id = ?", id).Update("activo", activo).Error
}
