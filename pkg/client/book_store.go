package client

import "context"

// BookStore 书目视图状态容器；成功路径就地维护本地集合
// （新增追加、更新按 id 替换、删除过滤），失败只写错误槽
type BookStore struct {
	api *Client

	Books   []Book
	Loading bool
	Err     string
}

func NewBookStore(api *Client) *BookStore { return &BookStore{api: api} }

func (s *BookStore) Fetch(ctx context.Context, opts ListOptions) error {
	s.Loading, s.Err = true, ""
	books, err := s.api.Books(ctx, opts)
	if err != nil {
		s.Err = serverMsg(err, "Failed to fetch books")
		s.Loading = false
		return err
	}
	s.Books = books
	s.Loading = false
	return nil
}

func (s *BookStore) Add(ctx context.Context, in BookInput) (Book, error) {
	b, err := s.api.AddBook(ctx, in)
	if err != nil {
		s.Err = serverMsg(err, "Failed to add book")
		return Book{}, err
	}
	s.Books = append(s.Books, b)
	return b, nil
}

func (s *BookStore) Update(ctx context.Context, id string, p BookPatch) (Book, error) {
	b, err := s.api.UpdateBook(ctx, id, p)
	if err != nil {
		s.Err = serverMsg(err, "Failed to update book")
		return Book{}, err
	}
	for i := range s.Books {
		if s.Books[i].ID == id {
			s.Books[i] = b
			break
		}
	}
	return b, nil
}

func (s *BookStore) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteBook(ctx, id); err != nil {
		s.Err = serverMsg(err, "Failed to delete book")
		return err
	}
	kept := s.Books[:0]
	for _, b := range s.Books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.Books = kept
	return nil
}

func (s *BookStore) ClearError() { s.Err = "" }
