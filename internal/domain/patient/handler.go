package patient

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
	g := api.Group("/patients")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if p.BranchID == uuid.Nil && user != nil {
		p.BranchID = user.BranchID
	}
	if !auth.CanAccessBranch(user, p.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	p.Active = true
	if err := h.svc.Create(c.Request().Context(), &p); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Hasta oluşturulamadı", err)
	}
	return respond.Created(c, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz hasta kimliği", err)
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Hasta bulunamadı", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, p.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	return respond.OK(c, p)
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

	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), branchID, c.QueryParam("search"), pg.Limit, pg.Offset)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Hastalar listelenemedi", err)
	}
	return respond.OK(c, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz hasta kimliği", err)
	}
	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Hasta bulunamadı", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, existing.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}

	var p Patient
	if err := c.Bind(&p); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	p.ID = id
	p.BranchID = existing.BranchID
	if err := h.svc.Update(c.Request().Context(), &p); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Hasta güncellenemedi", err)
	}
	return respond.OK(c, p)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz hasta kimliği", err)
	}
	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Hasta bulunamadı", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, existing.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Hasta silinemedi", err)
	}
	return respond.Message(c, "Hasta silindi", nil)
}
