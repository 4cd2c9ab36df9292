// Package api exposes one typed method per operation of the news GraphQL API.
package api

import (
	"context"
	"strings"

	"github.com/ncobase/newsdesk/ecode"
	"github.com/ncobase/newsdesk/graphql"
	"github.com/ncobase/newsdesk/structs"
)

// Doer sends one GraphQL request; *graphql.Client implements it.
type Doer interface {
	Do(ctx context.Context, req *graphql.Request, out any) error
}

// Client is the typed news API
type Client struct {
	gql Doer
}

// New wraps a GraphQL client
func New(gql Doer) *Client {
	return &Client{gql: gql}
}

// Login exchanges credentials for a token and user
func (c *Client) Login(ctx context.Context, in structs.LoginInput) (*structs.AuthPayload, error) {
	var out struct {
		Login *structs.AuthPayload `json:"login"`
	}
	req := graphql.NewRequest("Login", loginMutation).Var("input", in).Credentials()
	if err := c.gql.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return authPayload(out.Login)
}

// RegisterUser creates an account and signs it in
func (c *Client) RegisterUser(ctx context.Context, in structs.RegisterUserInput) (*structs.AuthPayload, error) {
	var out struct {
		RegisterUser *structs.AuthPayload `json:"registerUser"`
	}
	req := graphql.NewRequest("RegisterUser", registerUserMutation).Var("input", in).Credentials()
	if err := c.gql.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return authPayload(out.RegisterUser)
}

func authPayload(p *structs.AuthPayload) (*structs.AuthPayload, error) {
	if p == nil || p.Token == "" || p.User == nil {
		return nil, ecode.Authorization(ecode.NoLogin, "Invalid credentials")
	}
	return p, nil
}

// UpdateUser changes name, email or password of a user
func (c *Client) UpdateUser(ctx context.Context, id string, in structs.UpdateUserInput) (*structs.User, error) {
	if id == "" {
		return nil, ecode.FieldRequired("id", ecode.FieldIsRequired("id"))
	}
	var out struct {
		UpdateUser *structs.User `json:"updateUser"`
	}
	req := graphql.NewRequest("UpdateUser", updateUserMutation).Var("id", id).Var("input", in)
	if err := c.gql.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.UpdateUser == nil {
		return nil, ecode.Server(ecode.ServerErr, "updateUser returned no user")
	}
	return out.UpdateUser, nil
}

// CreateNews creates an article; the server assigns its ID
func (c *Client) CreateNews(ctx context.Context, in structs.CreateNewsInput) (*structs.NewsArticle, error) {
	if in.FeaturedImage != nil {
		img := *in.FeaturedImage
		img.IsMain = true
		in.FeaturedImage = &img
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}

	var out struct {
		CreateNews *structs.NewsArticle `json:"createNews"`
	}
	req := graphql.NewRequest("CreateNews", createNewsMutation).Var("input", in)
	if err := c.gql.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.CreateNews == nil {
		return nil, ecode.Server(ecode.ServerErr, "createNews returned no article")
	}
	return out.CreateNews, nil
}

// UpdateNews changes the non-nil fields of an article
func (c *Client) UpdateNews(ctx context.Context, id string, in structs.UpdateNewsInput) (*structs.NewsArticle, error) {
	if id == "" {
		return nil, ecode.FieldRequired("id", ecode.FieldIsRequired("id"))
	}
	if len(in.Images) > 0 {
		in.Images = structs.NormalizeImages(in.Images)
	}
	if in.FeaturedImage != nil {
		img := *in.FeaturedImage
		img.IsMain = true
		in.FeaturedImage = &img
	}

	var out struct {
		UpdateNews *structs.NewsArticle `json:"updateNews"`
	}
	req := graphql.NewRequest("UpdateNews", updateNewsMutation).Var("id", id).Var("input", in)
	if err := c.gql.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.UpdateNews == nil {
		return nil, ecode.Server(ecode.NotFound, ecode.NotExist("news "+id))
	}
	return out.UpdateNews, nil
}

// DeleteNews removes an article and returns its ID
func (c *Client) DeleteNews(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ecode.FieldRequired("id", ecode.FieldIsRequired("id"))
	}
	var out struct {
		DeleteNews *struct {
			ID string `json:"id"`
		} `json:"deleteNews"`
	}
	req := graphql.NewRequest("DeleteNews", deleteNewsMutation).Var("id", id)
	if err := c.gql.Do(ctx, req, &out); err != nil {
		return "", err
	}
	if out.DeleteNews == nil {
		return "", ecode.Server(ecode.NotFound, ecode.NotExist("news "+id))
	}
	return out.DeleteNews.ID, nil
}

// NewsList returns one page of articles. HasMore is always derived from the
// total count.
func (c *Client) NewsList(ctx context.Context, p structs.NewsListParams) (*structs.NewsPage, error) {
	if p.Limit <= 0 {
		return nil, ecode.Validation("limit must be positive", map[string]string{"limit": "limit must be positive"})
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Sort.Field == "" {
		p.Sort = structs.DefaultNewsSort
	}

	req := graphql.NewRequest("GetNewsList", newsListQuery).
		Var("limit", p.Limit).
		Var("offset", p.Offset).
		Var("sort", p.Sort)
	if !p.Filter.IsZero() {
		req.Var("filter", p.Filter)
	}

	var out struct {
		NewsList *structs.NewsPage `json:"newsList"`
	}
	if err := c.gql.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	page := out.NewsList
	if page == nil {
		page = &structs.NewsPage{}
	}
	if page.News == nil {
		page.News = []structs.NewsArticle{}
	}
	page.HasMore = p.Offset+len(page.News) < page.Total
	return page, nil
}

// GetNewsByID loads one article with content and images
func (c *Client) GetNewsByID(ctx context.Context, id string) (*structs.NewsArticle, error) {
	if id == "" {
		return nil, ecode.FieldRequired("id", ecode.FieldIsRequired("id"))
	}
	var out struct {
		News *structs.NewsArticle `json:"getNewsById"`
	}
	req := graphql.NewRequest("GetNewsItem", newsByIDQuery).Var("id", id)
	if err := c.gql.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.News == nil {
		return nil, ecode.Server(ecode.NotFound, ecode.NotExist("news "+id))
	}
	return out.News, nil
}

// Categories lists the read-only categories
func (c *Client) Categories(ctx context.Context) ([]structs.Category, error) {
	var out struct {
		Categories []structs.Category `json:"categories"`
	}
	if err := c.gql.Do(ctx, graphql.NewRequest("Categories", categoriesQuery), &out); err != nil {
		return nil, err
	}
	if out.Categories == nil {
		return []structs.Category{}, nil
	}
	return out.Categories, nil
}

// DeleteCloudinaryImage asks the API to remove a hosted image by URL. A
// response with success=false is reported as an asset error.
func (c *Client) DeleteCloudinaryImage(ctx context.Context, url string) (*structs.DeleteImageResult, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ecode.FieldRequired("url", ecode.FieldIsRequired("url"))
	}
	var out struct {
		Result *structs.DeleteImageResult `json:"deleteCloudinaryImage"`
	}
	req := graphql.NewRequest("DeleteCloudinaryImage", deleteCloudinaryImageMutation).Var("url", url)
	if err := c.gql.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.Result == nil {
		return nil, ecode.Asset("image deletion returned no result", nil)
	}
	if !out.Result.Success {
		return out.Result, ecode.Asset(out.Result.Message, nil)
	}
	return out.Result, nil
}
