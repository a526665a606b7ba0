package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core/settings"
)

// SettingsResponse mirrors stored settings without the password hash.
type SettingsResponse struct {
	DisplayName        string `json:"display_name"`
	EmailNotifications bool   `json:"email_notifications"`
}

type settingsApi struct {
	deps ServerDeps
}

func registerSettingsAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *server) {
	api := settingsApi{deps: s.deps}

	sg := g.Group("/settings", jwt)
	sg.GET("", api.retrieve)
	sg.PUT("", api.update)
	sg.PUT("/password", api.updatePassword)
}

// Handlers

func (api *settingsApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, newSettingsResponse(api.deps.SettingsSvc.Get()))
}

func (api *settingsApi) update(ctx echo.Context) error {
	var data settings.UpdateSettings
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSettings")
	}

	s, err := api.deps.SettingsSvc.Save(data)
	if err != nil {
		return errors.Wrap(err, "saving settings")
	}
	return ctx.JSON(http.StatusOK, newSettingsResponse(s))
}

func (api *settingsApi) updatePassword(ctx echo.Context) error {
	var data settings.ChangePassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChangePassword")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	if err := api.deps.SettingsSvc.UpdatePassword(data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": "Password updated."})
}

func newSettingsResponse(s settings.Settings) SettingsResponse {
	return SettingsResponse{
		DisplayName:        s.DisplayName,
		EmailNotifications: s.EmailNotifications,
	}
}
