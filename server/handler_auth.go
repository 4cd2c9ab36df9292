package server

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/newsdesk/consts"
	"github.com/ncobase/newsdesk/net/resp"
	"github.com/ncobase/newsdesk/screen"
	"github.com/ncobase/newsdesk/structs"
	"github.com/ncobase/newsdesk/version"
)

func (s *Server) health(c *gin.Context) {
	resp.Success(c.Writer, map[string]any{
		"status":        "ok",
		"version":       version.GetVersionInfo().Version,
		"authenticated": s.deps.Session.IsAuthenticated(c.Request.Context()),
	})
}

func (s *Server) login(c *gin.Context) {
	var in structs.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}

	nav := &screen.Recorder{}
	sc := screen.NewLogin(s.deps.API, s.deps.Session, nav)
	if err := sc.Submit(c.Request.Context(), in); err != nil {
		resp.Error(c.Writer, err)
		return
	}
	resp.Redirect(c.Writer, nav.Route(), s.deps.Session.Current(c.Request.Context()))
}

func (s *Server) register(c *gin.Context) {
	var in structs.RegisterUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}

	nav := &screen.Recorder{}
	sc := screen.NewRegister(s.deps.API, s.deps.Session, nav)
	if err := sc.Submit(c.Request.Context(), in); err != nil {
		resp.Error(c.Writer, err)
		return
	}
	resp.Redirect(c.Writer, nav.Route(), s.deps.Session.Current(c.Request.Context()))
}

func (s *Server) logout(c *gin.Context) {
	if err := s.deps.Session.Logout(c.Request.Context()); err != nil {
		resp.Error(c.Writer, err)
		return
	}
	resp.Redirect(c.Writer, consts.RouteLogin, nil)
}

func (s *Server) getProfile(c *gin.Context) {
	resp.Success(c.Writer, s.deps.Session.Current(c.Request.Context()))
}

func (s *Server) updateProfile(c *gin.Context) {
	var form screen.ProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}

	sc := screen.NewProfile(s.deps.API, s.deps.Session)
	if err := sc.Submit(c.Request.Context(), form); err != nil {
		resp.Error(c.Writer, err)
		return
	}
	resp.Success(c.Writer, map[string]any{
		"message": sc.Message(),
		"user":    s.deps.Session.Current(c.Request.Context()),
	})
}
