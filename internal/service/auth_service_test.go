package service

import (
	"context"
	"testing"

	"galeriapos/internal/config"
	"galeriapos/internal/dto"
	"galeriapos/internal/model"
	"galeriapos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── In-memory UsuarioRepository stub ─────────────────────────────────────────

type memUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newMemUsuarioRepo() *memUsuarioRepo {
	return &memUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *memUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, existing := range r.usuarios {
		if existing.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *memUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *memUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *memUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if incluirInactivos || u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memUsuarioRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = activo
	return nil
}

var _ repository.UsuarioRepository = (*memUsuarioRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedUsuario(t *testing.T, repo *memUsuarioRepo, username, password, rol string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		Username:     username,
		Nombre:       "Usuario de Prueba",
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	repo := newMemUsuarioRepo()
	svc := NewAuthService(repo, testAuthConfig())
	seedUsuario(t, repo, "gerente", "secreta123", "administrador")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "gerente", Password: "secreta123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "administrador", resp.User.Rol)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	repo := newMemUsuarioRepo()
	svc := NewAuthService(repo, testAuthConfig())
	seedUsuario(t, repo, "gerente", "secreta123", "administrador")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "gerente", Password: "otra",
	})
	require.Error(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Username: "nadie", Password: "secreta123",
	})
	require.Error(t, err)
}

func TestLoginUsuarioInactivo(t *testing.T) {
	repo := newMemUsuarioRepo()
	svc := NewAuthService(repo, testAuthConfig())
	u := seedUsuario(t, repo, "saliente", "secreta123", "vendedor")
	u.Activo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "saliente", Password: "secreta123",
	})
	require.Error(t, err)
}

func TestRefresh(t *testing.T) {
	repo := newMemUsuarioRepo()
	svc := NewAuthService(repo, testAuthConfig())
	seedUsuario(t, repo, "vendedora", "clave1234", "vendedor")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "vendedora", Password: "clave1234",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "vendedora", refreshed.User.Username)

	_, err = svc.Refresh(context.Background(), "no-es-un-token")
	require.Error(t, err)
}

func TestCrearUsuarioDuplicado(t *testing.T) {
	repo := newMemUsuarioRepo()
	svc := NewAuthService(repo, testAuthConfig())

	req := dto.CrearUsuarioRequest{
		Username: "repetido", Nombre: "Uno", Password: "clave1234", Rol: "vendedor",
	}
	_, err := svc.CrearUsuario(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.CrearUsuario(context.Background(), req)
	require.Error(t, err)
}

func TestActualizarUsuarioCambioDePassword(t *testing.T) {
	repo := newMemUsuarioRepo()
	svc := NewAuthService(repo, testAuthConfig())
	u := seedUsuario(t, repo, "rotante", "vieja1234", "vendedor")

	nueva := "nueva1234"
	_, err := svc.ActualizarUsuario(context.Background(), u.ID, dto.ActualizarUsuarioRequest{
		Password: &nueva,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "rotante", Password: "vieja1234"})
	require.Error(t, err)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "rotante", Password: "nueva1234"})
	require.NoError(t, err)
}
