package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateSignup(ctx context.Context, name string, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthSignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signup/loginのレスポンス
type AuthResponse struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	validator AuthValidator
	idGen     IDGenerator
	clock     Clock
}

func NewAuthUsecase(
	cfg config.Config,
	users repository.UserRepository,
	validator AuthValidator,
	idGen IDGenerator,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		validator: validator,
		idGen:     idGen,
		clock:     clock,
	}
}

func (u *AuthUsecase) Signup(ctx context.Context, req AuthSignupRequest) (*AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateSignup(ctx, req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	cost := u.cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return nil, NewInternalError(err)
	}

	now := u.clock.Now()
	user := model.User{
		ID:           u.idGen.NewID(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(pwHash),
		Role:         u.roleFor(req.Email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	//validator通過後に同時登録された場合もここで409
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewHTTPError(http.StatusConflict, ErrMsgEmailAlreadyExists)
		}
		return nil, NewInternalError(err)
	}

	return u.authResponse(user)
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*AuthResponse, error) {
	req.Email = strings.TrimSpace(req.Email)

	if err := u.validator.ValidateLogin(ctx, req.Email, req.Password); err != nil {
		return nil, err
	}

	//ユーザーが居ない場合もパスワード違いと同じ401
	user, err := u.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewHTTPError(http.StatusUnauthorized, ErrMsgInvalidCredentials)
	}
	if err != nil {
		return nil, NewInternalError(err)
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, ErrMsgInvalidCredentials)
	}

	return u.authResponse(user)
}

func (u *AuthUsecase) Profile(ctx context.Context, userID string) (*UserDTO, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, ErrMsgUnauthorized)
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, ErrMsgUserNotFound)
	}
	if err != nil {
		return nil, NewInternalError(err)
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// ADMIN_EMAILSに入っているemailだけadmin
func (u *AuthUsecase) roleFor(email string) model.Role {
	email = strings.ToLower(email)
	for _, a := range u.cfg.AdminEmails {
		if a == email {
			return model.RoleAdmin
		}
	}
	return model.RoleUser
}

func (u *AuthUsecase) authResponse(user model.User) (*AuthResponse, error) {
	token, exp, err := u.issueToken(user)
	if err != nil {
		return nil, NewInternalError(err)
	}
	return &AuthResponse{
		User:      toUserDTO(user),
		Token:     token,
		ExpiresAt: exp,
	}, nil
}

// jwt発行
func (u *AuthUsecase) issueToken(user model.User) (string, time.Time, error) {
	now := u.clock.Now()
	ttl := u.cfg.JWTTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	exp := now.Add(ttl)

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, exp, nil
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u model.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
