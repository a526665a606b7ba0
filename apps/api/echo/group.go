package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type (
	CreateGroupRequest struct {
		Name string `json:"group_name" validate:"required"`
	}
	InviteRequest struct {
		StudentNo string `json:"student_no" validate:"required,studentno"`
	}
	UploadFileRequest struct {
		FileName string `json:"file_name" validate:"required"`
	}
	PostMessageRequest struct {
		Message string `json:"message" validate:"required"`
	}
)

type groupApi struct {
	deps ServerDeps
}

func registerGroupAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *server) {
	api := groupApi{deps: s.deps}

	gg := g.Group("/groups", jwt)
	gg.GET("", api.query)
	gg.POST("", api.create)

	dg := gg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.DELETE("", api.destroy)
	dg.POST("/invite", api.invite)
	dg.POST("/leave", api.leave)
	dg.POST("/files", api.uploadFile)
	dg.DELETE("/files/:fileID", api.deleteFile)
	dg.POST("/messages", api.postMessage)
}

// Handlers

func (api *groupApi) query(ctx echo.Context) error {
	groups, err := api.deps.GroupSvc.List()
	if err != nil {
		return errors.Wrap(err, "listing groups")
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *groupApi) create(ctx echo.Context) error {
	var data CreateGroupRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CreateGroupRequest")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	identity, err := sessionIdentity(ctx)
	if err != nil {
		return err
	}
	g, err := api.deps.GroupSvc.Create(data.Name, identity)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *groupApi) retrieve(ctx echo.Context) error {
	detail, err := api.deps.GroupSvc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *groupApi) destroy(ctx echo.Context) error {
	identity, err := sessionIdentity(ctx)
	if err != nil {
		return err
	}
	if err = api.deps.GroupSvc.Delete(ctx.Param("id"), identity); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *groupApi) invite(ctx echo.Context) error {
	var data InviteRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to InviteRequest")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	m, err := api.deps.GroupSvc.Invite(ctx.Param("id"), data.StudentNo)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, m)
}

func (api *groupApi) leave(ctx echo.Context) error {
	identity, err := sessionIdentity(ctx)
	if err != nil {
		return err
	}
	if err = api.deps.GroupSvc.Leave(ctx.Param("id"), identity); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *groupApi) uploadFile(ctx echo.Context) error {
	var data UploadFileRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UploadFileRequest")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	identity, err := sessionIdentity(ctx)
	if err != nil {
		return err
	}
	f, err := api.deps.GroupSvc.UploadFile(ctx.Param("id"), data.FileName, identity)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, f)
}

func (api *groupApi) deleteFile(ctx echo.Context) error {
	identity, err := sessionIdentity(ctx)
	if err != nil {
		return err
	}
	if err = api.deps.GroupSvc.DeleteFile(ctx.Param("id"), ctx.Param("fileID"), identity); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *groupApi) postMessage(ctx echo.Context) error {
	var data PostMessageRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PostMessageRequest")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	identity, err := sessionIdentity(ctx)
	if err != nil {
		return err
	}
	msg, err := api.deps.GroupSvc.PostMessage(ctx.Param("id"), identity, data.Message)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, msg)
}
