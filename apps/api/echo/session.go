package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core/nav"
	"github.com/trezcool/studysync/core/session"
)

type (
	ChooseRoleRequest struct {
		Role string `json:"role" validate:"required"`
	}
	LoginRequest struct {
		ID       string `json:"id"`
		Password string `json:"password"`
	}
	LoginResponse struct {
		Token string `json:"token"`
	}
	SessionResponse struct {
		State    string    `json:"state"`
		Role     string    `json:"role,omitempty"`
		Identity string    `json:"identity,omitempty"`
		Nav      nav.State `json:"nav"`
	}
)

type sessionApi struct {
	deps ServerDeps
}

func registerSessionAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *server) {
	api := sessionApi{deps: s.deps}

	sg := g.Group("/session")

	// un-authed endpoints
	sg.GET("", api.retrieve)
	sg.POST("/role", api.chooseRole)
	sg.POST("/login", api.login)
	sg.POST("/cancel-login", api.cancelLogin)

	// authed endpoints
	ag := sg.Group("", jwt)
	ag.POST("/logout", api.logout)

	ng := g.Group("/nav", jwt)
	ng.GET("", api.navState)
	ng.POST("/continue", api.navContinue)
	ng.POST("/navigate", api.navigate)
	ng.POST("/open-subject", api.openSubject)
	ng.POST("/open-group", api.openGroup)
	ng.POST("/back", api.navBack)
}

// Handlers

func (api *sessionApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.sessionResponse())
}

func (api *sessionApi) sessionResponse() SessionResponse {
	sess := api.deps.Session
	return SessionResponse{
		State:    sess.State().String(),
		Role:     sess.Role(),
		Identity: sess.Identity(),
		Nav:      api.deps.Router.State(),
	}
}

func (api *sessionApi) chooseRole(ctx echo.Context) error {
	var data ChooseRoleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChooseRoleRequest")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	if err := api.deps.Session.ChooseRole(data.Role); err != nil {
		return err
	}
	if api.deps.Router.State().Screen == nav.Landing {
		if err := api.deps.Router.ShowLogin(); err != nil {
			return err
		}
	}
	return ctx.JSON(http.StatusOK, api.sessionResponse())
}

func (api *sessionApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}

	if err := api.deps.Session.SubmitCredentials(data.ID, data.Password); err != nil {
		return err
	}
	if err := api.deps.Router.ShowWelcome(); err != nil {
		return err
	}

	claims := GetSessionClaims(api.deps.Session, api.deps.Conf)
	token, err := GenerateToken(claims, api.deps.Conf)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *sessionApi) cancelLogin(ctx echo.Context) error {
	if err := api.deps.Router.BackToLanding(); err != nil {
		return err
	}
	api.deps.Session.Logout()
	return ctx.JSON(http.StatusOK, api.sessionResponse())
}

func (api *sessionApi) logout(ctx echo.Context) error {
	api.deps.Session.Logout()
	api.deps.Router.Logout()
	return ctx.JSON(http.StatusOK, api.sessionResponse())
}

func (api *sessionApi) navState(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.deps.Router.State())
}

func (api *sessionApi) navContinue(ctx echo.Context) error {
	if err := api.deps.Router.Continue(); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.deps.Router.State())
}

func (api *sessionApi) navigate(ctx echo.Context) error {
	var data struct {
		Page string `json:"page" validate:"required"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding navigate request")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}
	if err := api.deps.Router.Navigate(data.Page); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.deps.Router.State())
}

func (api *sessionApi) openSubject(ctx echo.Context) error {
	var data struct {
		Name string `json:"name" validate:"required"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding open-subject request")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}
	if _, err := api.deps.CourseSvc.GetSubject(data.Name); err != nil {
		return err
	}
	if err := api.deps.Router.OpenSubject(data.Name); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.deps.Router.State())
}

func (api *sessionApi) openGroup(ctx echo.Context) error {
	var data struct {
		ID string `json:"id" validate:"required"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding open-group request")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}
	if _, err := api.deps.GroupSvc.Get(data.ID); err != nil {
		return err
	}
	if err := api.deps.Router.OpenGroup(data.ID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.deps.Router.State())
}

func (api *sessionApi) navBack(ctx echo.Context) error {
	if err := api.deps.Router.Back(); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.deps.Router.State())
}

// sessionIdentity resolves the acting student number from the JWT claims;
// professors act as "Professor".
func sessionIdentity(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", err
	}
	if claims.Role == session.RoleStudent {
		return claims.StudentNo, nil
	}
	return claims.Role, nil
}
