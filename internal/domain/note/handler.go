package note

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
	g := api.Group("/notes")
	g.POST("", h.Create)
	g.GET("/patient/:patientId", h.ListByPatient)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var n Note
	if err := c.Bind(&n); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if user != nil {
		n.AuthorID = user.ID
		if n.BranchID == uuid.Nil {
			n.BranchID = user.BranchID
		}
	}
	if !auth.CanAccessBranch(user, n.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	if err := h.svc.Create(c.Request().Context(), &n); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Not oluşturulamadı", err)
	}
	return respond.Created(c, n)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz not kimliği", err)
	}
	n, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Not bulunamadı", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, n.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	return respond.OK(c, n)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz hasta kimliği", err)
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Notlar listelenemedi", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if len(items) > 0 && !auth.CanAccessBranch(user, items[0].BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	return respond.OK(c, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz not kimliği", err)
	}
	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Not bulunamadı", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, existing.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}

	var n Note
	if err := c.Bind(&n); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	n.ID = id
	if err := h.svc.Update(c.Request().Context(), &n); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Not güncellenemedi", err)
	}
	return respond.Message(c, "Not güncellendi", nil)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz not kimliği", err)
	}
	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Not bulunamadı", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, existing.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Not silinemedi", err)
	}
	return respond.Message(c, "Not silindi", nil)
}
