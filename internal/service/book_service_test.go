package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-bookshelf-api/internal/domain"
)

func TestCreateThenGetRoundtrip(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	in := validInput()
	in.Description = "Spice and sandworms."
	created, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.ID == "" {
		t.Error("Create() assigned no id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("Create() assigned no createdAt")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Title != in.Title || got.Author != in.Author || got.Genre != in.Genre ||
		got.Description != in.Description || got.ISBN != in.ISBN {
		t.Errorf("Get() = %+v, fields do not match input %+v", got, in)
	}
	wantDate, _ := time.Parse("2006-01-02", in.PublicationDate)
	if !got.PublicationDate.Equal(wantDate) {
		t.Errorf("publicationDate = %v, want %v", got.PublicationDate, wantDate)
	}
}

func TestCreateCollectsAllViolations(t *testing.T) {
	svc := newBookService(t)

	_, err := svc.Create(context.Background(), BookInput{
		Genre: "Cooking",
		ISBN:  "123",
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Create() error = %v, want ValidationError", err)
	}
	want := []string{
		"Title is required",
		"Author is required",
		"Please select a valid genre",
		"Publication date is required",
		"Please enter a valid ISBN (10 or 13 digits)",
	}
	if len(ve.Messages) != len(want) {
		t.Fatalf("Messages = %v, want %v", ve.Messages, want)
	}
	for i := range want {
		if ve.Messages[i] != want[i] {
			t.Errorf("Messages[%d] = %q, want %q", i, ve.Messages[i], want[i])
		}
	}
}

func TestCreateRejectsFuturePublicationDate(t *testing.T) {
	svc := newBookService(t)

	in := validInput()
	in.PublicationDate = time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	_, err := svc.Create(context.Background(), in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Create() error = %v, want ValidationError", err)
	}
	found := false
	for _, m := range ve.Messages {
		if m == "Publication date cannot be in the future" {
			found = true
		}
	}
	if !found {
		t.Errorf("Messages = %v, missing future-date message", ve.Messages)
	}
}

func TestCreateDuplicateISBNIsConflict(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, validInput()); err != nil {
		t.Fatalf("first Create() error: %v", err)
	}
	second := validInput()
	second.Title = "Dune Messiah"
	_, err := svc.Create(ctx, second)
	var ce *domain.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("second Create() error = %v, want ConflictError", err)
	}
	if ce.Msg != "ISBN already exists" {
		t.Errorf("conflict message = %q", ce.Msg)
	}
}

func TestMalformedISBNFailsValidationBeforeConflict(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, validInput()); err != nil {
		t.Fatalf("first Create() error: %v", err)
	}
	// 同一 ISBN 前面多了非法字符：必须报校验错误，而不是冲突
	bad := validInput()
	bad.ISBN = "x9780441013593"
	_, err := svc.Create(ctx, bad)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Create() error = %v, want ValidationError", err)
	}
}

func TestGetUnknownAndMalformedID(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "b7b6f8f0-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
	// 结构上不合法的 id 同样按 NotFound 处理
	if _, err := svc.Get(ctx, "definitely-not-a-key"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(malformed) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateISBNImmutable(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	// 新值本身合法且未被占用，依然拒绝
	newISBN := "0000000000"
	_, err = svc.Update(ctx, created.ID, BookPatch{ISBN: &newISBN})
	if !errors.Is(err, domain.ErrIsbnImmutable) {
		t.Fatalf("Update() error = %v, want ErrIsbnImmutable", err)
	}

	// 原值回传不算变更
	same := created.ISBN
	title := "Dune (reissue)"
	got, err := svc.Update(ctx, created.ID, BookPatch{ISBN: &same, Title: &title})
	if err != nil {
		t.Fatalf("Update() with same isbn error: %v", err)
	}
	if got.Title != title {
		t.Errorf("title = %q, want %q", got.Title, title)
	}
}

func TestUpdateRevalidatesMergedRecord(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	empty := ""
	_, err = svc.Update(ctx, created.ID, BookPatch{Title: &empty})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Update() error = %v, want ValidationError", err)
	}
	if ve.Messages[0] != "Title is required" {
		t.Errorf("Messages[0] = %q, want Title is required", ve.Messages[0])
	}
}

func TestUpdateMissingBook(t *testing.T) {
	svc := newBookService(t)
	title := "x"
	_, err := svc.Update(context.Background(), "nope", BookPatch{Title: &title})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestListFiltersAndDefaultOrder(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	seed := []BookInput{
		{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", PublicationDate: "1965-08-01", ISBN: "9780441013593"},
		{Title: "Foundation", Author: "Isaac Asimov", Genre: "Science Fiction", PublicationDate: "1951-06-01", ISBN: "9780553293357"},
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "Fantasy", PublicationDate: "1937-09-21", ISBN: "9780547928227"},
	}
	for _, in := range seed {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("seed Create(%s) error: %v", in.Title, err)
		}
	}

	// 无筛选：默认 createdAt 倒序，后插入的在前
	all, err := svc.List(ctx, "", "", "")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() len = %d, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].CreatedAt.Before(all[i].CreatedAt) {
			t.Errorf("List() not in createdAt desc order at %d", i)
		}
	}

	// genre 精确匹配
	sf, err := svc.List(ctx, "Science Fiction", "", "")
	if err != nil {
		t.Fatalf("List(genre) error: %v", err)
	}
	if len(sf) != 2 {
		t.Errorf("List(genre) len = %d, want 2", len(sf))
	}

	// author 不区分大小写子串
	byAuthor, err := svc.List(ctx, "", "herBERT", "")
	if err != nil {
		t.Fatalf("List(author) error: %v", err)
	}
	if len(byAuthor) != 1 || byAuthor[0].Title != "Dune" {
		t.Errorf("List(author) = %v, want [Dune]", byAuthor)
	}

	// 显式排序：title 升序
	byTitle, err := svc.List(ctx, "", "", "title")
	if err != nil {
		t.Fatalf("List(sort) error: %v", err)
	}
	if byTitle[0].Title != "Dune" || byTitle[2].Title != "The Hobbit" {
		t.Errorf("List(sort=title) order = %v", titles(byTitle))
	}

	// 前缀 - 倒序
	byTitleDesc, err := svc.List(ctx, "", "", "-title")
	if err != nil {
		t.Fatalf("List(-sort) error: %v", err)
	}
	if byTitleDesc[0].Title != "The Hobbit" {
		t.Errorf("List(sort=-title) order = %v", titles(byTitleDesc))
	}

	// 空结果不算错误
	none, err := svc.List(ctx, "Romance", "", "")
	if err != nil {
		t.Fatalf("List(empty) error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("List(empty) len = %d, want 0", len(none))
	}
}

func TestParseSortWhitelist(t *testing.T) {
	fields := parseSort("-publicationDate,author,bogus")
	if len(fields) != 2 {
		t.Fatalf("parseSort len = %d, want 2 (bogus dropped)", len(fields))
	}
	if fields[0].Column != "publication_date" || !fields[0].Desc {
		t.Errorf("fields[0] = %+v, want publication_date desc", fields[0])
	}
	if fields[1].Column != "author" || fields[1].Desc {
		t.Errorf("fields[1] = %+v, want author asc", fields[1])
	}

	def := parseSort("")
	if len(def) != 1 || def[0].Column != "created_at" || !def[0].Desc {
		t.Errorf("default sort = %+v, want created_at desc", def)
	}
}

func titles(books []domain.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}
