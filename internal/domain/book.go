package domain

import (
	"context"
	"time"
)

// Genres 与前端下拉一致，顺序固定
var Genres = []string{
	"Fiction",
	"Non-Fiction",
	"Science Fiction",
	"Fantasy",
	"Mystery",
	"Thriller",
	"Romance",
	"Biography",
	"History",
}

func ValidGenre(g string) bool {
	for _, v := range Genres {
		if g == v {
			return true
		}
	}
	return false
}

type Book struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Title           string    `gorm:"size:100;not null" json:"title"`
	Author          string    `gorm:"size:50;not null" json:"author"`
	Genre           string    `gorm:"size:32;not null" json:"genre"`
	PublicationDate time.Time `gorm:"not null" json:"publicationDate"`
	Description     string    `gorm:"size:500" json:"description,omitempty"`
	ISBN            string    `gorm:"column:isbn;uniqueIndex;size:20;not null" json:"isbn"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (Book) TableName() string { return "books" }

// BookFilter 列表筛选：genre 精确匹配，author 不区分大小写子串
type BookFilter struct {
	Genre  string
	Author string
	// Sort 已解析为白名单内的列名；Desc 与其一一对应
	Sort []SortField
}

type SortField struct {
	Column string
	Desc   bool
}

type BookRepository interface {
	Insert(ctx context.Context, b *Book) error
	FindByID(ctx context.Context, id string) (*Book, error)
	List(ctx context.Context, f BookFilter) ([]Book, error)
	Save(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id string) (int64, error)
}
