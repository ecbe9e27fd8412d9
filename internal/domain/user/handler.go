package user

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

// RegisterRoutes mounts user administration under the authenticated API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/users", auth.RequireAdmin())
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// RegisterPublicRoutes mounts login outside the auth middleware.
func (h *Handler) RegisterPublicRoutes(root *echo.Group) {
	root.POST("/auth/login", h.Login)
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	res, err := h.svc.Login(c.Request().Context(), &req)
	if err != nil {
		return respond.Fail(c, http.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı", nil)
	}
	return respond.OK(c, res)
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	u, err := h.svc.Create(c.Request().Context(), &req)
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Kullanıcı oluşturulamadı", err)
	}
	return respond.Created(c, u)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz kullanıcı kimliği", err)
	}
	u, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Kullanıcı bulunamadı", err)
	}
	return respond.OK(c, u)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)

	var branchID *uuid.UUID
	if s := c.QueryParam("branch_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return respond.Fail(c, http.StatusBadRequest, "Geçersiz şube kimliği", err)
		}
		branchID = &id
	}

	items, total, err := h.svc.List(c.Request().Context(), branchID, pg.Limit, pg.Offset)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Kullanıcılar listelenemedi", err)
	}
	return respond.OK(c, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz kullanıcı kimliği", err)
	}
	var u User
	if err := c.Bind(&u); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	u.ID = id
	if err := h.svc.Update(c.Request().Context(), &u); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Kullanıcı güncellenemedi", err)
	}
	return respond.OK(c, u)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz kullanıcı kimliği", err)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Kullanıcı silinemedi", err)
	}
	return respond.Message(c, "Kullanıcı silindi", nil)
}
