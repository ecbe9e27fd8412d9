package reports

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/auth"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/reports")
	g.GET("/stats", h.Stats)
	// Cross-branch comparison is the one report that cannot be pinned.
	g.GET("/branch-stats", h.BranchStats, auth.RequireSuperAdmin())
	g.GET("/doctor-performance", h.DoctorPerformance)
	g.GET("/revenue", h.Revenue)
	g.GET("/patients", h.PatientStats)
	g.GET("/treatments", h.TreatmentStats)
	g.GET("/axis-options", h.AxisOptions)
	g.POST("/dynamic-chart", h.DynamicChart)
}

// scope resolves the optional branch_id query parameter. Reporting is
// stricter than CRUD scoping: everyone below super-admin stays inside their
// own branch.
func scope(c echo.Context) (*uuid.UUID, error) {
	user := auth.UserFromContext(c.Request().Context())
	return auth.ReportingScope(user, c.QueryParam("branch_id"))
}

func failScope(c echo.Context, err error) error {
	if errors.Is(err, auth.ErrBranchForbidden) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	return respond.Fail(c, http.StatusBadRequest, "Geçersiz şube kimliği", err)
}

func (h *Handler) Stats(c echo.Context) error {
	branchID, err := scope(c)
	if err != nil {
		return failScope(c, err)
	}
	stats, err := h.svc.Overview(c.Request().Context(), branchID)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "İstatistikler hesaplanamadı", err)
	}
	return respond.OK(c, stats)
}

func (h *Handler) BranchStats(c echo.Context) error {
	stats, err := h.svc.BranchStats(c.Request().Context())
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Şube istatistikleri hesaplanamadı", err)
	}
	return respond.OK(c, stats)
}

func (h *Handler) DoctorPerformance(c echo.Context) error {
	branchID, err := scope(c)
	if err != nil {
		return failScope(c, err)
	}
	stats, err := h.svc.DoctorPerformance(c.Request().Context(), branchID)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Doktor performansı hesaplanamadı", err)
	}
	return respond.OK(c, stats)
}

func (h *Handler) Revenue(c echo.Context) error {
	branchID, err := scope(c)
	if err != nil {
		return failScope(c, err)
	}
	points, err := h.svc.Revenue(c.Request().Context(), branchID)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Gelir raporu hesaplanamadı", err)
	}
	return respond.OK(c, points)
}

func (h *Handler) PatientStats(c echo.Context) error {
	branchID, err := scope(c)
	if err != nil {
		return failScope(c, err)
	}
	stats, err := h.svc.PatientStats(c.Request().Context(), branchID)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Hasta raporu hesaplanamadı", err)
	}
	return respond.OK(c, stats)
}

func (h *Handler) TreatmentStats(c echo.Context) error {
	branchID, err := scope(c)
	if err != nil {
		return failScope(c, err)
	}
	stats, err := h.svc.TreatmentStats(c.Request().Context(), branchID)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Tedavi raporu hesaplanamadı", err)
	}
	return respond.OK(c, stats)
}

func (h *Handler) AxisOptions(c echo.Context) error {
	return respond.OK(c, AxisOptions())
}

func (h *Handler) DynamicChart(c echo.Context) error {
	var req ChartRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	series, err := h.svc.BuildChart(c.Request().Context(), user, req)
	if err != nil {
		if errors.Is(err, ErrMissingAxes) {
			return respond.Fail(c, http.StatusBadRequest, "xAxis ve yAxis alanları zorunludur", err)
		}
		return respond.Fail(c, http.StatusInternalServerError, "Grafik verisi hesaplanamadı", err)
	}
	return respond.OK(c, series)
}
