package service

import (
	"context"
	"strings"

	"go-bookshelf-api/internal/core/auth"
	"go-bookshelf-api/internal/domain"
	"go-bookshelf-api/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

// Register 注册并直接登录；email 唯一冲突既做前置检查，
// 也依赖唯一索引兜底并发（赢家落库，输家拿 Conflict）
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, domain.PublicUser, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.PublicUser{}, err
	}
	if existing != nil {
		return "", domain.PublicUser{}, domain.Conflict("Email already in use. Please use a different email or login.")
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: utils.HashPassword(password),
		Role:         domain.RoleReader,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if domain.IsDupKey(err) {
			return "", domain.PublicUser{}, domain.Conflict("Email already registered. Please use a different email or login.")
		}
		return "", domain.PublicUser{}, err
	}

	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return "", domain.PublicUser{}, err
	}
	return tok, u.Public(), nil
}

// Login 统一返回 ErrInvalidCredentials，不区分“邮箱不存在”与“密码错误”，
// 避免账号枚举
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.PublicUser, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", domain.PublicUser{}, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", domain.PublicUser{}, domain.ErrInvalidCredentials
	}
	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return "", domain.PublicUser{}, err
	}
	return tok, u.Public(), nil
}

func (s *AuthService) Me(ctx context.Context, uid string) (domain.PublicUser, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return domain.PublicUser{}, err
	}
	if u == nil {
		return domain.PublicUser{}, domain.ErrNotFound
	}
	return u.Public(), nil
}
