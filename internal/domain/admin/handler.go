package admin

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

// RegisterRoutes mounts everything under the already admin-gated group.
func (h *Handler) RegisterRoutes(admin *echo.Group) {
	conns := admin.Group("/database-connections")
	conns.POST("", h.CreateConnection)
	conns.GET("", h.ListConnections)
	conns.GET("/:id", h.GetConnection)
	conns.PUT("/:id", h.UpdateConnection)
	conns.DELETE("/:id", h.DeleteConnection)
	conns.POST("/:id/test", h.TestConnection)
	conns.POST("/:id/query", h.RunConnectionQuery)
	conns.GET("/:id/databases", h.ListDatabases)
	conns.GET("/:id/tables", h.ListTables)

	admin.POST("/database/query", h.RunAdhocQuery)

	// Saved queries answer on the frontend's /database/save-query paths; the
	// flat /saved-queries form is kept as an alias.
	for _, saved := range []*echo.Group{
		admin.Group("/database/save-query"),
		admin.Group("/saved-queries"),
	} {
		saved.POST("", h.CreateSavedQuery)
		saved.GET("", h.ListSavedQueries)
		saved.GET("/:id", h.GetSavedQuery)
		saved.PUT("/:id", h.UpdateSavedQuery)
		saved.DELETE("/:id", h.DeleteSavedQuery)
		saved.POST("/:id/execute", h.ExecuteSavedQuery)
	}
}

func parseID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

func (h *Handler) CreateConnection(c echo.Context) error {
	var conn DataConnection
	if err := c.Bind(&conn); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	if err := h.svc.CreateConnection(c.Request().Context(), &conn); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Bağlantı oluşturulamadı", err)
	}
	return respond.Created(c, conn)
}

func (h *Handler) ListConnections(c echo.Context) error {
	items, err := h.svc.ListConnections(c.Request().Context())
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Bağlantılar listelenemedi", err)
	}
	return respond.OK(c, items)
}

func (h *Handler) GetConnection(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz bağlantı kimliği", err)
	}
	conn, err := h.svc.GetConnection(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Bağlantı bulunamadı", err)
	}
	return respond.OK(c, conn)
}

func (h *Handler) UpdateConnection(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz bağlantı kimliği", err)
	}
	var conn DataConnection
	if err := c.Bind(&conn); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	conn.ID = id
	if err := h.svc.UpdateConnection(c.Request().Context(), &conn); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Bağlantı güncellenemedi", err)
	}
	return respond.OK(c, conn)
}

func (h *Handler) DeleteConnection(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz bağlantı kimliği", err)
	}
	if err := h.svc.DeleteConnection(c.Request().Context(), id); err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Bağlantı silinemedi", err)
	}
	return respond.Message(c, "Bağlantı silindi", nil)
}

func (h *Handler) TestConnection(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz bağlantı kimliği", err)
	}
	if err := h.svc.TestConnection(c.Request().Context(), id); err != nil {
		return respond.Fail(c, http.StatusBadGateway, "Bağlantı testi başarısız", err)
	}
	return respond.Message(c, "Bağlantı başarılı", nil)
}

func (h *Handler) RunConnectionQuery(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz bağlantı kimliği", err)
	}
	var req ConnectionQueryRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	res, err := h.svc.RunConnectionQuery(c.Request().Context(), id, req.Password, req.Query)
	if err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return respond.Fail(c, http.StatusForbidden, "Bağlantı şifresi doğrulanamadı", nil)
		}
		return respond.Fail(c, http.StatusInternalServerError, "Sorgu çalıştırılamadı: "+err.Error(), err)
	}
	return respond.OK(c, res)
}

func (h *Handler) RunAdhocQuery(c echo.Context) error {
	var req AdhocQueryRequest
	if err := c.Bind(&req); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	res, err := h.svc.RunAdhocQuery(c.Request().Context(), req)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Sorgu çalıştırılamadı: "+err.Error(), err)
	}
	return respond.OK(c, res)
}

func (h *Handler) ListDatabases(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz bağlantı kimliği", err)
	}
	names, err := h.svc.ListDatabases(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusBadGateway, "Veritabanları listelenemedi", err)
	}
	return respond.OK(c, names)
}

func (h *Handler) ListTables(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz bağlantı kimliği", err)
	}
	names, err := h.svc.ListTables(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusBadGateway, "Tablolar listelenemedi", err)
	}
	return respond.OK(c, names)
}

func (h *Handler) CreateSavedQuery(c echo.Context) error {
	var q SavedQuery
	if err := c.Bind(&q); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	if user := auth.UserFromContext(c.Request().Context()); user != nil {
		q.CreatedBy = &user.ID
	}
	if err := h.svc.CreateSavedQuery(c.Request().Context(), &q); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Sorgu kaydedilemedi", err)
	}
	return respond.Created(c, q)
}

func (h *Handler) ListSavedQueries(c echo.Context) error {
	items, err := h.svc.ListSavedQueries(c.Request().Context())
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Kayıtlı sorgular listelenemedi", err)
	}
	return respond.OK(c, items)
}

func (h *Handler) GetSavedQuery(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz sorgu kimliği", err)
	}
	q, err := h.svc.GetSavedQuery(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusNotFound, "Kayıtlı sorgu bulunamadı", err)
	}
	return respond.OK(c, q)
}

func (h *Handler) UpdateSavedQuery(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz sorgu kimliği", err)
	}
	var q SavedQuery
	if err := c.Bind(&q); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	q.ID = id
	if err := h.svc.UpdateSavedQuery(c.Request().Context(), &q); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Kayıtlı sorgu güncellenemedi", err)
	}
	return respond.OK(c, q)
}

func (h *Handler) DeleteSavedQuery(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz sorgu kimliği", err)
	}
	if err := h.svc.DeleteSavedQuery(c.Request().Context(), id); err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Kayıtlı sorgu silinemedi", err)
	}
	return respond.Message(c, "Kayıtlı sorgu silindi", nil)
}

func (h *Handler) ExecuteSavedQuery(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz sorgu kimliği", err)
	}
	res, err := h.svc.ExecuteSavedQuery(c.Request().Context(), id)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Sorgu çalıştırılamadı: "+err.Error(), err)
	}
	return respond.OK(c, res)
}
