package service

import (
	"context"
	"fmt"

	"go-bookshelf-api/internal/domain"
)

// UserService 管理端用户操作（列表 / 改角色 / 封禁）
type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, q string, offset, limit int, withDeleted bool) ([]domain.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, q, offset, limit, withDeleted)
}

func (s *UserService) UpdateRole(ctx context.Context, id, role string) (domain.PublicUser, error) {
	if !domain.ValidRole(role) {
		return domain.PublicUser{}, &domain.ValidationError{
			Messages: []string{fmt.Sprintf("Role must be one of: %s, %s, %s", domain.RoleReader, domain.RolePublisher, domain.RoleAdmin)},
		}
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return domain.PublicUser{}, err
	}
	if u == nil {
		return domain.PublicUser{}, domain.ErrNotFound
	}
	u.Role = role
	if err := s.users.Update(ctx, u); err != nil {
		return domain.PublicUser{}, err
	}
	return u.Public(), nil
}

// Ban 软删；被封用户无法再登录（查询默认带 deleted_at IS NULL）
func (s *UserService) Ban(ctx context.Context, id string) error {
	return s.users.SoftDelete(ctx, id)
}
