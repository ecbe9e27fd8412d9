package appointment

import (
	"errors"
	"net/http"
	"time"

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
	g := api.Group("/appointments")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if a.BranchID == uuid.Nil && user != nil {
		a.BranchID = user.BranchID
	}
	if !auth.CanAccessBranch(user, a.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	if err := h.svc.Create(c.Request().Context(), &a); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Randevu oluşturulamadı", err)
	}
	return respond.Created(c, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz randevu kimliği", err)
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Randevu bulunamadı", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, a.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	return respond.OK(c, a)
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

	f := Filter{BranchID: branchID, Status: c.QueryParam("status")}
	if s := c.QueryParam("patient_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return respond.Fail(c, http.StatusBadRequest, "Geçersiz hasta kimliği", err)
		}
		f.PatientID = &id
	}
	if s := c.QueryParam("doctor_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return respond.Fail(c, http.StatusBadRequest, "Geçersiz doktor kimliği", err)
		}
		f.DoctorID = &id
	}
	if s := c.QueryParam("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return respond.Fail(c, http.StatusBadRequest, "Geçersiz tarih aralığı", err)
		}
		f.From = &t
	}
	if s := c.QueryParam("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return respond.Fail(c, http.StatusBadRequest, "Geçersiz tarih aralığı", err)
		}
		f.To = &t
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Randevular listelenemedi", err)
	}
	return respond.OK(c, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz randevu kimliği", err)
	}
	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Randevu bulunamadı", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, existing.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}

	var a Appointment
	if err := c.Bind(&a); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	a.ID = id
	a.BranchID = existing.BranchID
	if err := h.svc.Update(c.Request().Context(), &a); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Randevu güncellenemedi", err)
	}
	return respond.OK(c, a)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz randevu kimliği", err)
	}
	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Randevu bulunamadı", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, existing.BranchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Randevu silinemedi", err)
	}
	return respond.Message(c, "Randevu silindi", nil)
}
