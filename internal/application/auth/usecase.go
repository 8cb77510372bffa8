package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcastellanos/inventario-stock/internal/application/dto"
	"github.com/jcastellanos/inventario-stock/internal/domain"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
	"github.com/jcastellanos/inventario-stock/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Longitud mínima de contraseña al registrarse.
const minPasswordLen = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario con exactamente un grupo de rol. Username duplicado
// o confirmación de contraseña distinta rechazan con errores de campo y no se
// crea nada.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	ve := &domain.ValidationError{}
	if strings.TrimSpace(in.Username) == "" {
		ve.Add("username", "el nombre de usuario es requerido")
	}
	if strings.TrimSpace(in.Email) == "" {
		ve.Add("email", "el email es requerido")
	}
	if in.Password == "" {
		ve.Add("password", "la contraseña es requerida")
	} else if len(in.Password) < minPasswordLen {
		ve.Add("password", "la contraseña debe tener al menos 8 caracteres")
	}
	if in.Password != in.Password2 {
		ve.Add("password2", "las contraseñas no coinciden")
	}
	if !entity.ValidGroup(in.Group) {
		ve.Add("group", "seleccione un rol válido")
	}
	if len(ve.Fields) > 0 {
		return nil, ve
	}

	existing, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("username", "el nombre de usuario ya está registrado")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Groups:       []string{in.Group},
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:      user.ID,
		Username:    user.Username,
		Groups:      user.Groups,
		IsSuperuser: user.IsSuperuser,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Groups:      u.Groups,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
}
