package server

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/newsdesk/ecode"
	"github.com/ncobase/newsdesk/net/resp"
	"github.com/ncobase/newsdesk/upload"
)

type featuredMetadata struct {
	Caption string `json:"caption" form:"caption"`
	AltText string `json:"altText" form:"altText"`
	Credit  string `json:"credit" form:"credit"`
}

func (m featuredMetadata) empty() bool {
	return m.Caption == "" && m.AltText == "" && m.Credit == ""
}

// uploadFeatured uploads the multipart "file" as the draft's featured image.
func (s *Server) uploadFeatured(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		resp.Error(c.Writer, ecode.FieldRequired("file", ecode.FieldIsRequired("file")))
		return
	}
	f, err := fh.Open()
	if err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}
	defer f.Close()

	var meta featuredMetadata
	_ = c.ShouldBind(&meta)

	ctx := c.Request.Context()
	s.createMu.Lock()
	w := s.newsCreate(ctx).Featured()
	done := w.Open(ctx, &upload.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	})
	s.createMu.Unlock()

	// the widget refuses a second upload while this one runs
	res := <-done
	if res.Err != nil {
		resp.Error(c.Writer, res.Err)
		return
	}
	if !meta.empty() {
		w.SetMetadata(meta.Caption, meta.AltText, meta.Credit)
	}
	resp.Success(c.Writer, w.Image())
}

func (s *Server) featuredMetadata(c *gin.Context) {
	var meta featuredMetadata
	if err := c.ShouldBindJSON(&meta); err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()
	w := s.newsCreate(c.Request.Context()).Featured()
	if w.Image() == nil {
		resp.Fail(c.Writer, resp.NotFound("No featured image to describe"))
		return
	}
	w.SetMetadata(meta.Caption, meta.AltText, meta.Credit)
	resp.Success(c.Writer, w.Image())
}

// removeFeatured detaches the featured image. Remote deletion is best effort.
func (s *Server) removeFeatured(c *gin.Context) {
	ctx := c.Request.Context()
	s.createMu.Lock()
	defer s.createMu.Unlock()
	sc := s.newsCreate(ctx)
	sc.Featured().Remove(ctx)
	resp.Success(c.Writer, draftView(sc))
}
