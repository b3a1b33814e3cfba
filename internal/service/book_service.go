package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go-bookshelf-api/internal/core/cache"
	"go-bookshelf-api/internal/domain"
	"go-bookshelf-api/internal/validator"
	"go-bookshelf-api/pkg/utils"
)

// BookInput 创建载荷；日期以字符串进来，服务层负责解析
type BookInput struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	PublicationDate string `json:"publicationDate"`
	Description     string `json:"description"`
	ISBN            string `json:"isbn"`
}

// BookPatch 更新载荷；指针字段区分“未提供”与“置空”
type BookPatch struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	Genre           *string `json:"genre"`
	PublicationDate *string `json:"publicationDate"`
	Description     *string `json:"description"`
	ISBN            *string `json:"isbn"`
}

type BookService struct {
	books   domain.BookRepository
	cache   *cache.Cache // 可为 nil（未配 redis 时直连 DB）
	bookTTL time.Duration
}

func NewBookService(books domain.BookRepository) *BookService {
	return &BookService{books: books}
}

// WithCache 启用 GET /books/:id 的读穿缓存
func (s *BookService) WithCache(c *cache.Cache, ttl time.Duration) *BookService {
	s.cache = c
	s.bookTTL = ttl
	return s
}

func (s *BookService) Create(ctx context.Context, in BookInput) (*domain.Book, error) {
	b := &domain.Book{
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		Genre:       in.Genre,
		Description: strings.TrimSpace(in.Description),
		ISBN:        strings.TrimSpace(in.ISBN),
	}
	dateBad := false
	if raw := strings.TrimSpace(in.PublicationDate); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			dateBad = true
		} else {
			b.PublicationDate = t
		}
	}
	if err := validateBook(b, dateBad); err != nil {
		return nil, err
	}

	b.ID = utils.NewID()
	b.CreatedAt = time.Now()
	if err := s.books.Insert(ctx, b); err != nil {
		if domain.IsDupKey(err) {
			return nil, domain.Conflict("ISBN already exists")
		}
		return nil, err
	}
	return b, nil
}

func (s *BookService) List(ctx context.Context, genre, author, sort string) ([]domain.Book, error) {
	f := domain.BookFilter{Genre: genre, Author: author, Sort: parseSort(sort)}
	return s.books.List(ctx, f)
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	if s.cache != nil {
		b, err := cache.GetOrLoadJSON[domain.Book](s.cache, ctx, bookKey(id), s.bookTTL, func(ctx context.Context) (*domain.Book, error) {
			return s.loadBook(ctx, id)
		})
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, domain.ErrNotFound
		}
		return b, nil
	}
	return s.loadBook(ctx, id)
}

func (s *BookService) loadBook(ctx context.Context, id string) (*domain.Book, error) {
	b, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *BookService) Update(ctx context.Context, id string, p BookPatch) (*domain.Book, error) {
	b, err := s.loadBook(ctx, id)
	if err != nil {
		return nil, err
	}
	// ISBN 不可变：载荷里带了不同值就拒绝，新值合法与否无关紧要
	if p.ISBN != nil && strings.TrimSpace(*p.ISBN) != b.ISBN {
		return nil, domain.ErrIsbnImmutable
	}

	if p.Title != nil {
		b.Title = strings.TrimSpace(*p.Title)
	}
	if p.Author != nil {
		b.Author = strings.TrimSpace(*p.Author)
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.Description != nil {
		b.Description = strings.TrimSpace(*p.Description)
	}
	dateBad := false
	if p.PublicationDate != nil {
		if raw := strings.TrimSpace(*p.PublicationDate); raw == "" {
			b.PublicationDate = time.Time{}
		} else if t, err := parseDate(raw); err != nil {
			dateBad = true
		} else {
			b.PublicationDate = t
		}
	}
	// 合并后的完整记录重新走全部字段校验
	if err := validateBook(b, dateBad); err != nil {
		return nil, err
	}

	if err := s.books.Save(ctx, b); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, bookKey(id))
	}
	return b, nil
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	n, err := s.books.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, bookKey(id))
	}
	return nil
}

func bookKey(id string) string { return "book:" + id }

// 校验消息与原 schema 逐条一致，全部收集后一次返回
func validateBook(b *domain.Book, dateBad bool) error {
	v := validator.New()
	v.Check(b.Title != "", "Title is required")
	v.Check(utf8.RuneCountInString(b.Title) <= 100, "Title cannot exceed 100 characters")
	v.Check(b.Author != "", "Author is required")
	v.Check(utf8.RuneCountInString(b.Author) <= 50, "Author name cannot exceed 50 characters")
	if b.Genre == "" {
		v.Add("Genre is required")
	} else {
		v.Check(domain.ValidGenre(b.Genre), "Please select a valid genre")
	}
	switch {
	case dateBad:
		v.Add("Please enter a valid publication date")
	case b.PublicationDate.IsZero():
		v.Add("Publication date is required")
	case b.PublicationDate.After(time.Now()):
		v.Add("Publication date cannot be in the future")
	}
	v.Check(utf8.RuneCountInString(b.Description) <= 500, "Description cannot exceed 500 characters")
	if b.ISBN == "" {
		v.Add("ISBN is required")
	} else {
		v.Check(validator.ValidISBN(b.ISBN), "Please enter a valid ISBN (10 or 13 digits)")
	}
	if !v.Valid() {
		return &domain.ValidationError{Messages: v.Messages}
	}
	return nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// 排序字段白名单：对外是 JSON 字段名，落库转列名；
// 逗号分隔，前缀 - 表示倒序；未指定时按 createdAt 倒序
var sortColumns = map[string]string{
	"title":           "title",
	"author":          "author",
	"genre":           "genre",
	"publicationDate": "publication_date",
	"createdAt":       "created_at",
	"isbn":            "isbn",
}

func parseSort(sort string) []domain.SortField {
	var fields []domain.SortField
	for _, part := range strings.Split(sort, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := false
		if strings.HasPrefix(part, "-") {
			desc = true
			part = part[1:]
		}
		col, ok := sortColumns[part]
		if !ok {
			continue
		}
		fields = append(fields, domain.SortField{Column: col, Desc: desc})
	}
	if len(fields) == 0 {
		fields = append(fields, domain.SortField{Column: "created_at", Desc: true})
	}
	return fields
}
