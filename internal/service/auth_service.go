package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/config"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)

	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesactivarUsuario(ctx context.Context, id uuid.UUID) error
	ReactivarUsuario(ctx context.Context, id uuid.UUID) error

	CrearRol(ctx context.Context, req dto.RolRequest) (*dto.RolResponse, error)
	ListarRoles(ctx context.Context) ([]dto.RolResponse, error)
	ActualizarRol(ctx context.Context, id uuid.UUID, req dto.RolRequest) (*dto.RolResponse, error)
	EliminarRol(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("credenciales invalidas")
	}
	if !user.Activo {
		return nil, errors.New("usuario desactivado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales invalidas")
	}
	return s.buildLoginResponse(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Activo {
		return nil, errors.New("usuario no encontrado o inactivo")
	}
	return s.buildLoginResponse(user)
}

func (s *authService) buildLoginResponse(user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

// generateToken embeds the role's permission set in the token; a role edit
// takes effect on the next login or refresh.
func (s *authService) generateToken(user *model.Usuario, ttl time.Duration) (string, error) {
	rolNombre := ""
	var permisos []string
	if user.Rol != nil {
		rolNombre = user.Rol.Nombre
		permisos = user.Rol.Claves()
	}
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"rol":      rolNombre,
		"permisos": permisos,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	rolID, err := uuid.Parse(req.RolID)
	if err != nil {
		return nil, fmt.Errorf("rol_id inválido: %w", err)
	}
	if _, err := s.repo.FindRolByID(ctx, rolID); err != nil {
		return nil, errors.New("rol no encontrado")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		RolID:        rolID,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	creado, err := s.repo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	resp := usuarioToResponse(creado)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, 0, len(users))
	for i := range users {
		resp = append(resp, usuarioToResponse(&users[i]))
	}
	return resp, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	if req.Nombre != nil {
		user.Nombre = *req.Nombre
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.RolID != nil {
		rolID, err := uuid.Parse(*req.RolID)
		if err != nil {
			return nil, fmt.Errorf("rol_id inválido: %w", err)
		}
		if _, err := s.repo.FindRolByID(ctx, rolID); err != nil {
			return nil, errors.New("rol no encontrado")
		}
		user.RolID = rolID
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	actualizado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := usuarioToResponse(actualizado)
	return &resp, nil
}

func (s *authService) DesactivarUsuario(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("usuario no encontrado")
	}
	user.Activo = false
	return s.repo.Update(ctx, user)
}

func (s *authService) ReactivarUsuario(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("usuario no encontrado")
	}
	user.Activo = true
	return s.repo.Update(ctx, user)
}

// ── Roles ─────────────────────────────────────────────────────────────────────

func (s *authService) CrearRol(ctx context.Context, req dto.RolRequest) (*dto.RolResponse, error) {
	rol := &model.Rol{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
	}
	for _, clave := range req.Permisos {
		rol.Permisos = append(rol.Permisos, model.Permiso{Clave: clave})
	}
	if err := s.repo.CreateRol(ctx, rol); err != nil {
		return nil, err
	}
	return rolToResponse(rol), nil
}

func (s *authService) ListarRoles(ctx context.Context) ([]dto.RolResponse, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RolResponse, 0, len(roles))
	for i := range roles {
		resp = append(resp, *rolToResponse(&roles[i]))
	}
	return resp, nil
}

func (s *authService) ActualizarRol(ctx context.Context, id uuid.UUID, req dto.RolRequest) (*dto.RolResponse, error) {
	rol, err := s.repo.FindRolByID(ctx, id)
	if err != nil {
		return nil, errors.New("rol no encontrado")
	}
	rol.Nombre = req.Nombre
	rol.Descripcion = req.Descripcion
	if err := s.repo.UpdateRol(ctx, rol); err != nil {
		return nil, err
	}
	if err := s.repo.ReplacePermisos(ctx, id, req.Permisos); err != nil {
		return nil, err
	}
	actualizado, err := s.repo.FindRolByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return rolToResponse(actualizado), nil
}

func (s *authService) EliminarRol(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.CountUsuariosByRol(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.New("No se puede eliminar: hay usuarios asignados a este rol")
	}
	return s.repo.DeleteRol(ctx, id)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	rolNombre := ""
	var permisos []string
	if u.Rol != nil {
		rolNombre = u.Rol.Nombre
		permisos = u.Rol.Claves()
	}
	return dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nombre:   u.Nombre,
		Email:    u.Email,
		Rol:      rolNombre,
		Permisos: permisos,
		Activo:   u.Activo,
	}
}

func rolToResponse(r *model.Rol) *dto.RolResponse {
	return &dto.RolResponse{
		ID:          r.ID.String(),
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		Permisos:    r.Claves(),
	}
}
