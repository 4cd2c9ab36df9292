package screen

import (
	"context"
	"sync"

	"github.com/ncobase/newsdesk/structs"
)

// PageSize is the fixed number of articles per page
const PageSize = 10

// NewsList is the paginated article list with a status filter
type NewsList struct {
	Machine
	api NewsAPI

	mu     sync.Mutex
	page   int
	status structs.NewsStatus
	result *structs.NewsPage
}

// NewNewsList creates the list on page 1 without a filter
func NewNewsList(api NewsAPI) *NewsList {
	return &NewsList{api: api, page: 1}
}

// Load queries the current page
func (s *NewsList) Load(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}

	s.mu.Lock()
	params := structs.NewsListParams{
		Limit:  PageSize,
		Offset: (s.page - 1) * PageSize,
		Sort:   structs.DefaultNewsSort,
	}
	if s.status != "" {
		params.Filter = &structs.NewsFilter{Status: s.status}
	}
	s.mu.Unlock()

	page, err := s.api.NewsList(ctx, params)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.result = page
	s.mu.Unlock()
	s.succeed("")
	return nil
}

// SetStatus changes the filter, resets to page 1 and reloads. The empty
// status removes the filter.
func (s *NewsList) SetStatus(ctx context.Context, status structs.NewsStatus) error {
	s.mu.Lock()
	s.status = status
	s.page = 1
	s.mu.Unlock()
	return s.Load(ctx)
}

// Show sets the filter and page in one step and loads.
func (s *NewsList) Show(ctx context.Context, status structs.NewsStatus, page int) error {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	s.status = status
	s.page = page
	s.mu.Unlock()
	return s.Load(ctx)
}

// GoTo loads page n, clamped to 1
func (s *NewsList) GoTo(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	s.mu.Lock()
	s.page = n
	s.mu.Unlock()
	return s.Load(ctx)
}

// Next loads the following page when there is one
func (s *NewsList) Next(ctx context.Context) error {
	if !s.HasMore() {
		return nil
	}
	return s.GoTo(ctx, s.Page()+1)
}

// Prev loads the previous page when there is one
func (s *NewsList) Prev(ctx context.Context) error {
	if s.Page() <= 1 {
		return nil
	}
	return s.GoTo(ctx, s.Page()-1)
}

// Delete removes an article and reloads. When the last article of a page
// goes, the previous page is shown.
func (s *NewsList) Delete(ctx context.Context, id string) error {
	if err := s.begin(); err != nil {
		return err
	}
	if _, err := s.api.DeleteNews(ctx, id); err != nil {
		return s.fail(err)
	}
	s.succeed("")

	s.mu.Lock()
	if s.page > 1 && s.result != nil && len(s.result.News) == 1 {
		s.page--
	}
	s.mu.Unlock()
	return s.Load(ctx)
}

// Page returns the current page number, starting at 1
func (s *NewsList) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Status returns the current filter
func (s *NewsList) Status() structs.NewsStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Items returns the articles of the loaded page
func (s *NewsList) Items() []structs.NewsArticle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return []structs.NewsArticle{}
	}
	return append([]structs.NewsArticle{}, s.result.News...)
}

// Total returns the total count for the filter
func (s *NewsList) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return 0
	}
	return s.result.Total
}

// HasMore reports whether a later page exists
func (s *NewsList) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result != nil && s.result.HasMore
}

// Pages returns the number of pages for the total count, at least 1
func (s *NewsList) Pages() int {
	total := s.Total()
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}
