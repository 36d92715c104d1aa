// Package attendance wires the tracking engine to the HTTP surface. One
// tracker per authenticated user; disallowed actions answer 200 with the
// unchanged status, matching the engine's no-op policy.
package attendance

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kintai-app/kintai/core"
	"github.com/kintai-app/kintai/export"
	"github.com/kintai-app/kintai/infrastructure/filesystem"
	"github.com/kintai-app/kintai/model"
	"github.com/kintai-app/kintai/web/common"
	"github.com/kintai-app/kintai/web/middlewares"
)

type Options struct {
	// ArchiveBucket, when set, receives a copy of every exported report.
	ArchiveBucket string
	ArchivePrefix string
}

type Handler struct {
	registry *core.Registry
	opts     Options
}

func Register(rg *gin.RouterGroup, registry *core.Registry, opts Options) {
	h := &Handler{registry: registry, opts: opts}

	rg.GET("/me", h.Me)

	att := rg.Group("/attendance")
	att.POST("/clock-in", h.Action(core.ActionClockIn))
	att.POST("/clock-out", h.Action(core.ActionClockOut))
	att.POST("/break/start", h.Action(core.ActionStartBreak))
	att.POST("/break/end", h.Action(core.ActionEndBreak))
	att.GET("/status", h.Status)
	att.GET("/records", h.Records)
	att.GET("/summary", h.Summary)
	att.GET("/export", h.Export)
}

type todayView struct {
	Record *model.AttendanceRecord `json:"record"`
	Status core.DerivedStatus      `json:"status"`
}

func (h *Handler) Me(c *gin.Context) {
	identity, ok := middlewares.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("no identity"))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"id":    identity.UserID,
		"name":  identity.Name,
		"admin": identity.Admin,
	}))
}

func (h *Handler) Action(action core.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middlewares.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse("no identity"))
			return
		}
		ctx := c.Request.Context()
		rec, status := h.registry.Tracker(ctx, identity.UserID).Apply(ctx, action)
		c.JSON(http.StatusOK, common.NewSuccessResponse(todayView{Record: rec, Status: status}))
	}
}

func (h *Handler) Status(c *gin.Context) {
	identity, ok := middlewares.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("no identity"))
		return
	}
	ctx := c.Request.Context()
	rec, status := h.registry.Tracker(ctx, identity.UserID).Today(ctx)
	c.JSON(http.StatusOK, common.NewSuccessResponse(todayView{Record: rec, Status: status}))
}

func (h *Handler) Records(c *gin.Context) {
	identity, ok := middlewares.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("no identity"))
		return
	}
	ctx := c.Request.Context()
	records := h.registry.Tracker(ctx, identity.UserID).Records(ctx)
	c.JSON(http.StatusOK, common.NewSuccessResponse(records))
}

type monthQuery struct {
	Year  int `form:"year" binding:"required,min=2000,max=2999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

func (h *Handler) Summary(c *gin.Context) {
	identity, ok := middlewares.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("no identity"))
		return
	}
	var q monthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}
	ctx := c.Request.Context()
	tracker := h.registry.Tracker(ctx, identity.UserID)
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"summary": tracker.Summary(q.Year, q.Month),
		"records": tracker.MonthRecords(q.Year, q.Month),
	}))
}

func (h *Handler) Export(c *gin.Context) {
	identity, ok := middlewares.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("no identity"))
		return
	}
	var q monthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}

	ctx := c.Request.Context()
	records := h.registry.Tracker(ctx, identity.UserID).Records(ctx)

	f, err := export.BuildMonthlyReport(records, q.Year, q.Month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	filename := export.Filename(q.Year, q.Month)
	if h.opts.ArchiveBucket != "" {
		key := fmt.Sprintf("%s%s/%s", h.opts.ArchivePrefix, identity.UserID, filename)
		data := make([]byte, buf.Len())
		copy(data, buf.Bytes())
		go func() {
			if err := filesystem.WriteFile(h.opts.ArchiveBucket, key, context.Background(), bytes.NewReader(data)); err != nil {
				slog.Error("report archive failed", "bucket", h.opts.ArchiveBucket, "key", key, "err", err)
			}
		}()
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
