package client

import (
	"context"
	"errors"
)

// AuthStore 认证视图状态容器：当前用户 + loading + 错误槽。
// 应用启动时构造一次、显式传给视图，不做全局单例。
// 同一操作并发调用不做去重，后返回者覆盖共享槽（已知取舍）
type AuthStore struct {
	api *Client

	User    *User
	Loading bool
	Err     string
}

func NewAuthStore(api *Client) *AuthStore { return &AuthStore{api: api} }

func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	s.Loading, s.Err = true, ""
	out, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.Err = serverMsg(err, "Login failed")
		s.Loading = false
		return err
	}
	s.api.SetToken(out.Token)
	u := out.User
	s.User = &u
	s.Loading = false
	return nil
}

func (s *AuthStore) Register(ctx context.Context, name, email, password string) error {
	s.Loading, s.Err = true, ""
	out, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		s.Err = serverMsg(err, "Registration failed")
		s.Loading = false
		return err
	}
	s.api.SetToken(out.Token)
	u := out.User
	s.User = &u
	s.Loading = false
	return nil
}

// Logout 无论服务端应答如何都丢弃本地令牌
func (s *AuthStore) Logout(ctx context.Context) {
	s.Loading = true
	_ = s.api.Logout(ctx)
	s.api.ClearToken()
	s.User = nil
	s.Loading = false
}

// LoadUser 用既有令牌恢复会话；令牌失效则静默丢弃
func (s *AuthStore) LoadUser(ctx context.Context) {
	if s.api.Token() == "" {
		s.Loading = false
		return
	}
	u, err := s.api.Me(ctx)
	if err != nil {
		s.api.ClearToken()
		s.User = nil
	} else {
		s.User = &u
	}
	s.Loading = false
}

func (s *AuthStore) ClearError() { s.Err = "" }

// serverMsg 优先用服务端信封里的错误文本，缺失时退回各操作的兜底文案
func serverMsg(err error, fallback string) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
