package branchcard

import (
	"net/http"
	"strconv"

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
	g := api.Group("/branch-cards")
	g.GET("", h.ListCards)
	g.GET("/branch/:branchId/data", h.BranchData)

	admin := auth.RequireAdmin()
	g.POST("", h.CreateCard, admin)
	g.PUT("/:id", h.UpdateCard, admin)
	g.DELETE("/:id", h.DeleteCard, admin)
	g.POST("/queries", h.CreateQuery, admin)
	g.PUT("/queries/:id", h.UpdateQuery, admin)
	g.DELETE("/queries/:id", h.DeleteQuery, admin)
}

func (h *Handler) ListCards(c echo.Context) error {
	activeOnly, _ := strconv.ParseBool(c.QueryParam("active"))
	cards, err := h.svc.ListCards(c.Request().Context(), activeOnly)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Kartlar listelenemedi", err)
	}
	return respond.OK(c, cards)
}

func (h *Handler) BranchData(c echo.Context) error {
	branchID, err := uuid.Parse(c.Param("branchId"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz şube kimliği", err)
	}
	user := auth.UserFromContext(c.Request().Context())
	if !auth.CanAccessBranch(user, branchID) {
		return respond.Fail(c, http.StatusForbidden, "Bu şubeye erişim yetkiniz yok", nil)
	}
	values, err := h.svc.BranchData(c.Request().Context(), branchID)
	if err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Kart verileri hesaplanamadı", err)
	}
	return respond.OK(c, values)
}

func (h *Handler) CreateCard(c echo.Context) error {
	var card Card
	if err := c.Bind(&card); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	if err := h.svc.CreateCard(c.Request().Context(), &card); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Kart oluşturulamadı", err)
	}
	return respond.Created(c, card)
}

func (h *Handler) UpdateCard(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz kart kimliği", err)
	}
	var card Card
	if err := c.Bind(&card); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	card.ID = id
	if err := h.svc.UpdateCard(c.Request().Context(), &card); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Kart güncellenemedi", err)
	}
	return respond.OK(c, card)
}

func (h *Handler) DeleteCard(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz kart kimliği", err)
	}
	if err := h.svc.DeleteCard(c.Request().Context(), id); err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Kart silinemedi", err)
	}
	return respond.Message(c, "Kart silindi", nil)
}

func (h *Handler) CreateQuery(c echo.Context) error {
	var q CardQuery
	if err := c.Bind(&q); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	if err := h.svc.CreateQuery(c.Request().Context(), &q); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Kart sorgusu oluşturulamadı", err)
	}
	return respond.Created(c, q)
}

func (h *Handler) UpdateQuery(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz sorgu kimliği", err)
	}
	var q CardQuery
	if err := c.Bind(&q); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	q.ID = id
	if err := h.svc.UpdateQuery(c.Request().Context(), &q); err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Kart sorgusu güncellenemedi", err)
	}
	return respond.OK(c, q)
}

func (h *Handler) DeleteQuery(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Fail(c, http.StatusBadRequest, "Geçersiz sorgu kimliği", err)
	}
	if err := h.svc.DeleteQuery(c.Request().Context(), id); err != nil {
		return respond.Fail(c, http.StatusInternalServerError, "Kart sorgusu silinemedi", err)
	}
	return respond.Message(c, "Kart sorgusu silindi", nil)
}
