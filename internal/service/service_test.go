package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-bookshelf-api/internal/domain"
	"go-bookshelf-api/internal/repo"
)

var dbSeq atomic.Int64

// newTestDB 每个测试一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Book{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newBookService(t *testing.T) *BookService {
	t.Helper()
	return NewBookService(repo.NewBookRepo(newTestDB(t)))
}

func validInput() BookInput {
	return BookInput{
		Title:           "Dune",
		Author:          "Frank Herbert",
		Genre:           "Science Fiction",
		PublicationDate: "1965-08-01",
		ISBN:            "9780441013593",
	}
}
