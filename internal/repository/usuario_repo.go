package repository

import (
	"context"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	FindByUsername(ctx context.Context, username string) (*model.Usuario, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error

	CreateRol(ctx context.Context, r *model.Rol) error
	FindRolByID(ctx context.Context, id uuid.UUID) (*model.Rol, error)
	ListRoles(ctx context.Context) ([]model.Rol, error)
	UpdateRol(ctx context.Context, r *model.Rol) error
	// ReplacePermisos swaps the role's whole permission set atomically.
	ReplacePermisos(ctx context.Context, rolID uuid.UUID, claves []string) error
	CountUsuariosByRol(ctx context.Context, rolID uuid.UUID) (int64, error)
	DeleteRol(ctx context.Context, id uuid.UUID) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Rol.Permisos").First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Rol.Permisos").
		Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	q := r.db.WithContext(ctx).Preload("Rol.Permisos")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	var usuarios []model.Usuario
	err := q.Order("username ASC").Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) CreateRol(ctx context.Context, m *model.Rol) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *usuarioRepo) FindRolByID(ctx context.Context, id uuid.UUID) (*model.Rol, error) {
	var rol model.Rol
	err := r.db.WithContext(ctx).Preload("Permisos").First(&rol, id).Error
	return &rol, err
}

func (r *usuarioRepo) ListRoles(ctx context.Context) ([]model.Rol, error) {
	var roles []model.Rol
	err := r.db.WithContext(ctx).Preload("Permisos").Order("nombre ASC").Find(&roles).Error
	return roles, err
}

func (r *usuarioRepo) UpdateRol(ctx context.Context, m *model.Rol) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *usuarioRepo) ReplacePermisos(ctx context.Context, rolID uuid.UUID, claves []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rol_id = ?", rolID).Delete(&model.Permiso{}).Error; err != nil {
			return err
		}
		for _, clave := range claves {
			if err := tx.Create(&model.Permiso{RolID: rolID, Clave: clave}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *usuarioRepo) CountUsuariosByRol(ctx context.Context, rolID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).Where("rol_id = ?", rolID).Count(&n).Error
	return n, err
}

func (r *usuarioRepo) DeleteRol(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rol_id = ?", id).Delete(&model.Permiso{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Rol{}, id).Error
	})
}
