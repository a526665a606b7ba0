package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core/calendar"
	"github.com/trezcool/studysync/core/progress"
	"github.com/trezcool/studysync/core/task"
)

type (
	NoteRequest struct {
		Section string `json:"section" validate:"required"`
		Item    string `json:"item" validate:"required"`
		Text    string `json:"text"`
	}
	NoteResponse struct {
		Section string `json:"section"`
		Item    string `json:"item"`
		Text    string `json:"text"`
	}
	SubmissionRequest struct {
		Subject    string `json:"subject" validate:"required"`
		Assignment string `json:"assignment" validate:"required"`
		FileName   string `json:"file_name" validate:"required"`
	}
	AssistRequest struct {
		Action    string `json:"action" validate:"required"`
		Selection string `json:"selection"`
	}
	AssistResponse struct {
		Response string `json:"response"`
	}
	DashboardResponse struct {
		Identity      string          `json:"identity"`
		Tasks         []task.Task     `json:"tasks"`
		Upcoming      []string        `json:"upcoming"`
		Announcements []string        `json:"announcements"`
		GroupUpdates  []string        `json:"group_updates"`
		WeeklyScores  progress.Report `json:"weekly_scores"`
	}
)

// Static dashboard panels; the portal ships them as fixed demo content.
var (
	dashboardUpcoming      = []string{"Essay Due - June 20", "History Exam - June 22"}
	dashboardAnnouncements = []string{"New Announcement: Review for Final Exam", "Reminder: Submit Science Project"}
)

type portalApi struct {
	deps ServerDeps
}

func registerPortalAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *server) {
	api := portalApi{deps: s.deps}

	ag := g.Group("", jwt)
	ag.GET("/dashboard", api.dashboard)

	ag.GET("/subjects", api.querySubjects)
	ag.GET("/subjects/:name", api.retrieveSubject)

	ag.GET("/notes", api.retrieveNote)
	ag.PUT("/notes", api.saveNote)

	ag.PUT("/submissions", api.saveSubmission)
	ag.DELETE("/submissions", api.clearSubmission)

	ag.GET("/tasks", api.queryTasks)
	ag.POST("/tasks", api.addTask)
	ag.POST("/tasks/:id/toggle", api.toggleTask)

	ag.GET("/calendar/:year/:month", api.calendarMonth)
	ag.GET("/progress", api.progressReport)

	ag.POST("/assist", api.assist)
}

// Handlers

func (api *portalApi) dashboard(ctx echo.Context) error {
	identity, err := sessionIdentity(ctx)
	if err != nil {
		return err
	}

	tasks, err := api.deps.TaskSvc.List()
	if err != nil {
		return errors.Wrap(err, "listing tasks")
	}

	groups, err := api.deps.GroupSvc.List()
	if err != nil {
		return errors.Wrap(err, "listing groups")
	}
	updates := make([]string, 0, len(groups))
	for _, g := range groups {
		updates = append(updates, "["+g.Name+"] No recent activity")
	}

	return ctx.JSON(http.StatusOK, DashboardResponse{
		Identity:      identity,
		Tasks:         tasks,
		Upcoming:      dashboardUpcoming,
		Announcements: dashboardAnnouncements,
		GroupUpdates:  updates,
		WeeklyScores:  progress.WeeklyReport(),
	})
}

func (api *portalApi) querySubjects(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.deps.CourseSvc.Subjects())
}

func (api *portalApi) retrieveSubject(ctx echo.Context) error {
	detail, err := api.deps.CourseSvc.GetSubject(ctx.Param("name"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *portalApi) retrieveNote(ctx echo.Context) error {
	section, item := ctx.QueryParam("section"), ctx.QueryParam("item")
	return ctx.JSON(http.StatusOK, NoteResponse{
		Section: section,
		Item:    item,
		Text:    api.deps.CourseSvc.GetNote(section, item),
	})
}

func (api *portalApi) saveNote(ctx echo.Context) error {
	var data NoteRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NoteRequest")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	if err := api.deps.CourseSvc.SetNote(data.Section, data.Item, data.Text); err != nil {
		return errors.Wrap(err, "saving note")
	}
	return ctx.JSON(http.StatusOK, NoteResponse(data))
}

func (api *portalApi) saveSubmission(ctx echo.Context) error {
	var data SubmissionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmissionRequest")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	if err := api.deps.CourseSvc.SetSubmission(data.Subject, data.Assignment, data.FileName); err != nil {
		return errors.Wrap(err, "saving submission")
	}
	return ctx.JSON(http.StatusOK, data)
}

func (api *portalApi) clearSubmission(ctx echo.Context) error {
	subject, assignment := ctx.QueryParam("subject"), ctx.QueryParam("assignment")
	if err := api.deps.CourseSvc.ClearSubmission(subject, assignment); err != nil {
		return errors.Wrap(err, "clearing submission")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *portalApi) queryTasks(ctx echo.Context) error {
	if date := ctx.QueryParam("due"); date != "" {
		tasks, err := api.deps.TaskSvc.DueOn(date)
		if err != nil {
			return errors.Wrap(err, "listing due tasks")
		}
		return ctx.JSON(http.StatusOK, tasks)
	}

	tasks, err := api.deps.TaskSvc.List()
	if err != nil {
		return errors.Wrap(err, "listing tasks")
	}
	return ctx.JSON(http.StatusOK, tasks)
}

func (api *portalApi) addTask(ctx echo.Context) error {
	var data task.NewTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}

	t, err := api.deps.TaskSvc.Add(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *portalApi) toggleTask(ctx echo.Context) error {
	t, err := api.deps.TaskSvc.Toggle(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *portalApi) calendarMonth(ctx echo.Context) error {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	month, err := strconv.Atoi(ctx.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
	}

	grid := calendar.BuildMonth(year, time.Month(month), time.Now(), func(date string) []string {
		due, derr := api.deps.TaskSvc.DueOn(date)
		if derr != nil {
			return nil
		}
		titles := make([]string, 0, len(due))
		for _, t := range due {
			titles = append(titles, t.Title)
		}
		return titles
	})
	return ctx.JSON(http.StatusOK, grid)
}

func (api *portalApi) progressReport(ctx echo.Context) error {
	period := ctx.QueryParam("period")
	if period == "" {
		period = progress.Periods[0]
	}
	report, err := progress.ReportFor(period)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *portalApi) assist(ctx echo.Context) error {
	var data AssistRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssistRequest")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	answer, err := api.deps.CourseSvc.Ask(ctx.Request().Context(), data.Action, data.Selection)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, AssistResponse{Response: answer})
}
