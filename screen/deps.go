package screen

import (
	"context"

	"github.com/ncobase/newsdesk/structs"
)

// AuthAPI is the part of the API used by the auth screens
type AuthAPI interface {
	Login(ctx context.Context, in structs.LoginInput) (*structs.AuthPayload, error)
	RegisterUser(ctx context.Context, in structs.RegisterUserInput) (*structs.AuthPayload, error)
}

// UserAPI is the part of the API used by the profile screen
type UserAPI interface {
	UpdateUser(ctx context.Context, id string, in structs.UpdateUserInput) (*structs.User, error)
}

// NewsAPI is the part of the API used by the news screens
type NewsAPI interface {
	CreateNews(ctx context.Context, in structs.CreateNewsInput) (*structs.NewsArticle, error)
	UpdateNews(ctx context.Context, id string, in structs.UpdateNewsInput) (*structs.NewsArticle, error)
	DeleteNews(ctx context.Context, id string) (string, error)
	NewsList(ctx context.Context, p structs.NewsListParams) (*structs.NewsPage, error)
	GetNewsByID(ctx context.Context, id string) (*structs.NewsArticle, error)
	Categories(ctx context.Context) ([]structs.Category, error)
}

// Session is the part of the session store the screens write
type Session interface {
	Login(ctx context.Context, user *structs.User, token string) error
	Update(ctx context.Context, user *structs.User) error
	Current(ctx context.Context) structs.Session
}

// Drafts persists the news-create form
type Drafts interface {
	Load(ctx context.Context) (structs.Draft, bool, error)
	Save(ctx context.Context, d structs.Draft) error
	Clear(ctx context.Context) error
}
