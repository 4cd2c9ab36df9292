package screen

import (
	"context"

	"github.com/ncobase/newsdesk/consts"
	"github.com/ncobase/newsdesk/logging/logger"
	"github.com/ncobase/newsdesk/structs"
	"github.com/ncobase/newsdesk/validator"
	"github.com/sirupsen/logrus"
)

// Login is the sign-in screen
type Login struct {
	Machine
	api  AuthAPI
	sess Session
	nav  Navigator
}

// NewLogin creates the sign-in screen
func NewLogin(api AuthAPI, sess Session, nav Navigator) *Login {
	return &Login{api: api, sess: sess, nav: nav}
}

// Submit signs in. On success the session is written and the operator is
// sent to the dashboard.
func (s *Login) Submit(ctx context.Context, in structs.LoginInput) error {
	in.Normalize()
	if err := validator.Validate(in); err != nil {
		return s.reject(err)
	}
	if err := s.begin(); err != nil {
		return err
	}

	payload, err := s.api.Login(ctx, in)
	if err != nil {
		logger.WithFields(ctx, logrus.Fields{"email": in.Email}).Warn("login failed: ", err)
		return s.fail(err)
	}
	if err := s.sess.Login(ctx, payload.User, payload.Token); err != nil {
		return s.fail(err)
	}

	s.succeed("")
	navigate(s.nav, consts.RouteDashboard)
	return nil
}

// Register is the sign-up screen
type Register struct {
	Machine
	api  AuthAPI
	sess Session
	nav  Navigator
}

// NewRegister creates the sign-up screen
func NewRegister(api AuthAPI, sess Session, nav Navigator) *Register {
	return &Register{api: api, sess: sess, nav: nav}
}

// Submit creates the account and signs in with it.
func (s *Register) Submit(ctx context.Context, in structs.RegisterUserInput) error {
	in.Normalize()
	if err := validator.Validate(in); err != nil {
		return s.reject(err)
	}
	if err := s.begin(); err != nil {
		return err
	}

	payload, err := s.api.RegisterUser(ctx, in)
	if err != nil {
		return s.fail(err)
	}
	if err := s.sess.Login(ctx, payload.User, payload.Token); err != nil {
		return s.fail(err)
	}

	logger.Infof(ctx, "registered %s", payload.User)
	s.succeed("")
	navigate(s.nav, consts.RouteDashboard)
	return nil
}
