package server

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/newsdesk/consts"
	"github.com/ncobase/newsdesk/net/resp"
	"github.com/ncobase/newsdesk/screen"
	"github.com/ncobase/newsdesk/structs"
)

func (s *Server) listNews(c *gin.Context) {
	status, err := structs.ParseNewsStatus(c.Query("status"))
	if err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}
	page := 1
	if v := c.Query("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 1 {
			resp.Fail(c.Writer, resp.BadRequest("page must be a positive number"))
			return
		}
	}

	sc := screen.NewNewsList(s.deps.API)
	if err := sc.Show(c.Request.Context(), status, page); err != nil {
		resp.Error(c.Writer, err)
		return
	}
	resp.Success(c.Writer, map[string]any{
		"news":     sc.Items(),
		"total":    sc.Total(),
		"hasMore":  sc.HasMore(),
		"page":     sc.Page(),
		"pages":    sc.Pages(),
		"pageSize": screen.PageSize,
		"status":   sc.Status(),
	})
}

func (s *Server) getNews(c *gin.Context) {
	article, err := s.deps.API.GetNewsByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c.Writer, err)
		return
	}
	resp.Success(c.Writer, article)
}

// updateNews replaces the editable fields of an article with the body. An
// empty status keeps the current one.
func (s *Server) updateNews(c *gin.Context) {
	var body structs.Draft
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}

	ctx := c.Request.Context()
	nav := &screen.Recorder{}
	sc := screen.NewNewsEdit(s.deps.API, nav, s.deps.Uploader, s.deps.Remover)
	if err := sc.Load(ctx, c.Param("id")); err != nil {
		resp.Error(c.Writer, err)
		return
	}
	sc.Change(func(d *structs.Draft) {
		status := d.Status
		*d = body
		if d.Status == "" {
			d.Status = status
		}
	})

	article, err := sc.Submit(ctx)
	if err != nil {
		resp.Error(c.Writer, err)
		return
	}
	resp.Redirect(c.Writer, nav.Route(), article, sc.Message())
}

func (s *Server) deleteNews(c *gin.Context) {
	id, err := s.deps.API.DeleteNews(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c.Writer, err)
		return
	}
	resp.Redirect(c.Writer, consts.RouteNews, map[string]string{"id": id})
}

func (s *Server) categories(c *gin.Context) {
	cats, err := s.deps.API.Categories(c.Request.Context())
	if err != nil {
		resp.Error(c.Writer, err)
		return
	}
	resp.Success(c.Writer, cats)
}

func draftView(sc *screen.NewsCreate) map[string]any {
	return map[string]any{
		"draft":       sc.Draft(),
		"slugPreview": sc.SlugPreview(),
		"categories":  sc.Categories(),
	}
}

func (s *Server) getDraft(c *gin.Context) {
	s.createMu.Lock()
	defer s.createMu.Unlock()
	resp.Success(c.Writer, draftView(s.newsCreate(c.Request.Context())))
}

func (s *Server) saveDraft(c *gin.Context) {
	var d structs.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()
	sc := s.newsCreate(c.Request.Context())
	if err := sc.Replace(c.Request.Context(), d); err != nil {
		resp.Error(c.Writer, err)
		return
	}
	resp.Success(c.Writer, draftView(sc))
}

func (s *Server) clearDraft(c *gin.Context) {
	s.createMu.Lock()
	defer s.createMu.Unlock()
	sc := s.newsCreate(c.Request.Context())
	if err := sc.ClearDraft(c.Request.Context()); err != nil {
		resp.Error(c.Writer, err)
		return
	}
	resp.Success(c.Writer, draftView(sc))
}

// createNews submits the draft. A JSON body, when present, replaces the
// draft first.
func (s *Server) createNews(c *gin.Context) {
	ctx := c.Request.Context()

	s.createMu.Lock()
	defer s.createMu.Unlock()
	sc := s.newsCreate(ctx)

	var d structs.Draft
	switch err := c.ShouldBindJSON(&d); {
	case errors.Is(err, io.EOF):
	case err != nil:
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	default:
		if err := sc.Replace(ctx, d); err != nil {
			resp.Error(c.Writer, err)
			return
		}
	}

	article, err := sc.Submit(ctx)
	if err != nil {
		resp.Error(c.Writer, err)
		return
	}
	resp.Redirect(c.Writer, consts.RouteNews, article, sc.Message())
}
