package treatment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/auth"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/respond"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/treatments")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var t Treatment
	if err := c.Bind(&t); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if t.BranchID == uuid.Nil && user != nil {
		t.BranchID = user.BranchID
	}
	if !auth.CanAccessBranch(user, t.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	if err := h.svc.Create(c.Request().Context(), &t); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Tedavi oluşturulamadı", err)
	}
	return respond.Created(c, t)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz tedavi kimliği", err)
	}
	t, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Tedavi bulunamadı", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, t.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	return respond.OK(c, t)
}

func (h *Handler) List(c echo.Context) error {
	user := auth.UserFromContext(c.Request().Context())
	branchID, err := auth.BranchScope(user, c.QueryParam("branch_id"))
	if err != nil {
		if errors.Is(err, auth.ErrBranchForbidden) {
			return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
		}
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz şube kimliği", err)
	}

	var patientID *uuid.UUID
	if s := c.QueryParam("patient_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return respond.Fail(c, http.StatusBadRequest, "Geçersiz hasta kimliği", err)
		}
		patientID = &id
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), branchID, patientID, pg.Limit, pg.Offset)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Tedaviler listelenemedi", err)
	}
	return respond.OK(c, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz tedavi kimliği", err)
	}
	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Tedavi bulunamadı", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, existing.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}

	var t Treatment
	if err := c.Bind(&t); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	t.ID = id
	t.BranchID = existing.BranchID
	if err := h.svc.Update(c.Request().Context(), &t); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Tedavi güncellenemedi", err)
	}
	return respond.OK(c, t)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz tedavi kimliği", err)
	}
	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Tedavi bulunamadı", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, existing.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Tedavi silinemedi", err)
	}
	return respond.Message(c, "Tedavi silindi", nil)
}
