package service

import (
	"context"
	"testing"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/config"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type usuarioRepoStub struct {
	usuarios map[uuid.UUID]*model.Usuario
	roles    map[uuid.UUID]*model.Rol
}

func newUsuarioRepoStub() *usuarioRepoStub {
	return &usuarioRepoStub{
		usuarios: make(map[uuid.UUID]*model.Usuario),
		roles:    make(map[uuid.UUID]*model.Rol),
	}
}

func (r *usuarioRepoStub) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *usuarioRepoStub) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u.Rol = r.roles[u.RolID]
	return u, nil
}

func (r *usuarioRepoStub) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			u.Rol = r.roles[u.RolID]
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *usuarioRepoStub) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var all []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo || incluirInactivos {
			all = append(all, *u)
		}
	}
	return all, nil
}

func (r *usuarioRepoStub) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *usuarioRepoStub) CreateRol(_ context.Context, rol *model.Rol) error {
	if rol.ID == uuid.Nil {
		rol.ID = uuid.New()
	}
	for i := range rol.Permisos {
		rol.Permisos[i].RolID = rol.ID
	}
	r.roles[rol.ID] = rol
	return nil
}

func (r *usuarioRepoStub) FindRolByID(_ context.Context, id uuid.UUID) (*model.Rol, error) {
	rol, ok := r.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rol, nil
}

func (r *usuarioRepoStub) ListRoles(_ context.Context) ([]model.Rol, error) {
	var all []model.Rol
	for _, rol := range r.roles {
		all = append(all, *rol)
	}
	return all, nil
}

func (r *usuarioRepoStub) UpdateRol(_ context.Context, rol *model.Rol) error {
	r.roles[rol.ID] = rol
	return nil
}

func (r *usuarioRepoStub) ReplacePermisos(_ context.Context, rolID uuid.UUID, claves []string) error {
	rol, ok := r.roles[rolID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rol.Permisos = nil
	for _, clave := range claves {
		rol.Permisos = append(rol.Permisos, model.Permiso{RolID: rolID, Clave: clave})
	}
	return nil
}

func (r *usuarioRepoStub) CountUsuariosByRol(_ context.Context, rolID uuid.UUID) (int64, error) {
	var n int64
	for _, u := range r.usuarios {
		if u.RolID == rolID {
			n++
		}
	}
	return n, nil
}

func (r *usuarioRepoStub) DeleteRol(_ context.Context, id uuid.UUID) error {
	delete(r.roles, id)
	return nil
}

var _ repository.UsuarioRepository = (*usuarioRepoStub)(nil)

func cfgDePrueba() *config.Config {
	return &config.Config{
		JWTSecret:          "secreto-de-prueba",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func sembrarUsuario(t *testing.T, repo *usuarioRepoStub, username, password string, claves []string) *model.Usuario {
	t.Helper()
	rol := &model.Rol{Nombre: "vendedor"}
	for _, clave := range claves {
		rol.Permisos = append(rol.Permisos, model.Permiso{Clave: clave})
	}
	require.NoError(t, repo.CreateRol(context.Background(), rol))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		Username:     username,
		Nombre:       "Usuario Prueba",
		PasswordHash: string(hash),
		RolID:        rol.ID,
		Activo:       true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLoginEmiteTokenConPermisos(t *testing.T) {
	repo := newUsuarioRepoStub()
	svc := NewAuthService(repo, cfgDePrueba())
	sembrarUsuario(t, repo, "vendedora1", "clave123", []string{"pedidos.ver", "pedidos.crear"})

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "vendedora1",
		Password: "clave123",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.ElementsMatch(t, []string{"pedidos.ver", "pedidos.crear"}, resp.User.Permisos)

	// El token lleva los permisos del rol al momento del login.
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("secreto-de-prueba"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "vendedora1", claims["username"])
	assert.Len(t, claims["permisos"], 2)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	repo := newUsuarioRepoStub()
	svc := NewAuthService(repo, cfgDePrueba())
	sembrarUsuario(t, repo, "vendedora1", "clave123", nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "vendedora1", Password: "otra",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales invalidas")

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Username: "noexiste", Password: "clave123",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales invalidas")
}

func TestLoginUsuarioDesactivado(t *testing.T) {
	repo := newUsuarioRepoStub()
	svc := NewAuthService(repo, cfgDePrueba())
	u := sembrarUsuario(t, repo, "vendedora1", "clave123", nil)
	u.Activo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "vendedora1", Password: "clave123",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "desactivado")
}

func TestRefreshRenuevaPermisosDelRol(t *testing.T) {
	repo := newUsuarioRepoStub()
	svc := NewAuthService(repo, cfgDePrueba())
	u := sembrarUsuario(t, repo, "vendedora1", "clave123", []string{"pedidos.ver"})

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "vendedora1", Password: "clave123",
	})
	require.NoError(t, err)

	// Una edición del rol se refleja al refrescar, no en el token vivo.
	require.NoError(t, repo.ReplacePermisos(context.Background(), u.RolID,
		[]string{"pedidos.ver", "cierres.confirmar"}))

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pedidos.ver", "cierres.confirmar"}, renovado.User.Permisos)
}

func TestRefreshTokenInvalido(t *testing.T) {
	svc := NewAuthService(newUsuarioRepoStub(), cfgDePrueba())
	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalido o expirado")
}

func TestEliminarRolConUsuariosAsignados(t *testing.T) {
	repo := newUsuarioRepoStub()
	svc := NewAuthService(repo, cfgDePrueba())
	u := sembrarUsuario(t, repo, "vendedora1", "clave123", nil)

	err := svc.EliminarRol(context.Background(), u.RolID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usuarios asignados")
}
