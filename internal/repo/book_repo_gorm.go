package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-bookshelf-api/internal/domain"
)

type BookRepo struct{ db *gorm.DB }

func NewBookRepo(db *gorm.DB) *BookRepo { return &BookRepo{db: db} }

func (r *BookRepo) Insert(ctx context.Context, b *domain.Book) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookRepo) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	var b domain.Book
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &b, err
}

func (r *BookRepo) List(ctx context.Context, f domain.BookFilter) ([]domain.Book, error) {
	q := r.db.WithContext(ctx).Model(&domain.Book{})
	if f.Genre != "" {
		q = q.Where("genre = ?", f.Genre)
	}
	if a := strings.TrimSpace(f.Author); a != "" {
		// LOWER 两侧转换，保证各驱动下都不区分大小写
		q = q.Where("LOWER(author) LIKE ?", "%"+strings.ToLower(a)+"%")
	}
	for _, s := range f.Sort {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Column}, Desc: s.Desc})
	}
	books := []domain.Book{}
	if err := q.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *BookRepo) Save(ctx context.Context, b *domain.Book) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Book{})
	return res.RowsAffected, res.Error
}
