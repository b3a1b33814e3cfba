// Package client 封装 REST 客户端与两个视图状态容器（auth / books），
// 对应服务端 /api/v1 的全部端点
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError 服务端信封在客户端边界解码一次，之后只剩这个类型，
// 调用方不再各自探错误字段形状
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Genre           string    `json:"genre"`
	PublicationDate time.Time `json:"publicationDate"`
	Description     string    `json:"description,omitempty"`
	ISBN            string    `json:"isbn"`
	CreatedAt       time.Time `json:"createdAt"`
}

type BookInput struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	PublicationDate string `json:"publicationDate"`
	Description     string `json:"description,omitempty"`
	ISBN            string `json:"isbn"`
}

type BookPatch struct {
	Title           *string `json:"title,omitempty"`
	Author          *string `json:"author,omitempty"`
	Genre           *string `json:"genre,omitempty"`
	PublicationDate *string `json:"publicationDate,omitempty"`
	Description     *string `json:"description,omitempty"`
	ISBN            *string `json:"isbn,omitempty"`
}

type TokenUser struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ListOptions struct {
	Genre  string
	Author string
	Sort   string
}

type Client struct {
	base  string
	httpc *http.Client
	token string
}

func New(base string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		httpc: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) SetToken(tok string) { c.token = tok }
func (c *Client) ClearToken()         { c.token = "" }
func (c *Client) Token() string       { return c.token }

type envelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

// do 发请求并解信封；非 success 一律转成 *APIError
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	res, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return &APIError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
	}
	if res.StatusCode >= 400 || !env.Success {
		return &APIError{Status: res.StatusCode, Message: errText(env.Error)}
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// errText 信封 error 可能是字符串或消息数组，这里拍平成一条
func errText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return strings.Join(list, "; ")
	}
	return string(raw)
}

func (c *Client) Register(ctx context.Context, name, email, password string) (TokenUser, error) {
	var out TokenUser
	err := c.do(ctx, http.MethodPost, "/auth/register",
		map[string]string{"name": name, "email": email, "password": password}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (TokenUser, error) {
	var out TokenUser
	err := c.do(ctx, http.MethodPost, "/auth/login",
		map[string]string{"email": email, "password": password}, &out)
	return out, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out)
	return out, err
}

func (c *Client) Books(ctx context.Context, opts ListOptions) ([]Book, error) {
	q := url.Values{}
	if opts.Genre != "" {
		q.Set("genre", opts.Genre)
	}
	if opts.Author != "" {
		q.Set("author", opts.Author)
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	path := "/books"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []Book
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) Book(ctx context.Context, id string) (Book, error) {
	var out Book
	err := c.do(ctx, http.MethodGet, "/books/"+id, nil, &out)
	return out, err
}

func (c *Client) AddBook(ctx context.Context, in BookInput) (Book, error) {
	var out Book
	err := c.do(ctx, http.MethodPost, "/books", in, &out)
	return out, err
}

func (c *Client) UpdateBook(ctx context.Context, id string, p BookPatch) (Book, error) {
	var out Book
	err := c.do(ctx, http.MethodPut, "/books/"+id, p, &out)
	return out, err
}

func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/books/"+id, nil, nil)
}
