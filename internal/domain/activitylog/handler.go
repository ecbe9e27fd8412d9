package activitylog

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/auth"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/respond"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/pkg/pagination"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts the audit listing under the admin group.
func (h *Handler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/activity-logs", h.List, auth.RequireAdmin())
}

func (h *Handler) List(c echo.Context) error {
	var f Filter
	if s := c.QueryParam("user_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return respond.Fail(c, http.StatusBadRequest, "Geçersiz kullanıcı kimliği", err)
		}
		f.UserID = &id
	}
	if s := c.QueryParam("branch_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return respond.Fail(c, http.StatusBadRequest, "Geçersiz şube kimliği", err)
		}
		f.BranchID = &id
	}
	f.Action = c.QueryParam("action")

	pg := pagination.FromContext(c)
	items, total, err := h.repo.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Aktivite kayıtları listelenemedi", err)
	}
	return respond.OK(c, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
