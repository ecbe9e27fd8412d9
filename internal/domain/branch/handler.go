package branch

import (
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
	g := api.Group("/branches")
	g.GET("", h.List)
	g.GET("/:id", h.Get)

	admin := g.Group("", auth.RequireAdmin())
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var b Branch
	if err := c.Bind(&b); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	if err := h.svc.Create(c.Request().Context(), &b); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Şube oluşturulamadı", err)
	}
	return respond.Created(c, b)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz şube kimliği", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, id) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	b, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Şube bulunamadı", err)
	}
	return respond.OK(c, b)
}

func (h *Handler) List(c echo.Context) error {
	user := auth.UserFromContext(c.Request().Context())
	pg := pagination.FromContext(c)

	// Staff only see their own branch.
	if user != nil && !user.Role.IsAdmin() {
		b, err := h.svc.Get(c.Request().Context(), user.BranchID)
		if err != nil {
			return respond.Fail(c, http.StatusNotFound, "Şube bulunamadı", err)
		}
		return respond.OK(c, pagination.NewResponse([]*Branch{b}, 1, pg.Limit, pg.Offset))
	}

	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Şubeler listelenemedi", err)
	}
	return respond.OK(c, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz şube kimliği", err)
	}
	var b Branch
	if err := c.Bind(&b); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	b.ID = id
	if err := h.svc.Update(c.Request().Context(), &b); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Şube güncellenemedi", err)
	}
	return respond.OK(c, b)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz şube kimliği", err)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Şube silinemedi", err)
	}
	return respond.Message(c, "Şube silindi", nil)
}
