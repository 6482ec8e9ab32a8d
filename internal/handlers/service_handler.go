package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/massage-scheduler/internal/domain"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/httpresp"
	ucCatalog "github.com/BruksfildServices01/massage-scheduler/internal/usecase/catalog"
)

type ServiceHandler struct {
	services *ucCatalog.Services
}

func NewServiceHandler(services *ucCatalog.Services) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// --------- Requests ---------

// Name, duration and price are checked by the catalog rules so the client
// gets the specific error code.
type ServiceRequest struct {
	Name        string           `json:"name"`
	DurationMin int              `json:"duration_min"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Active      *bool            `json:"active,omitempty"`
}

func (r ServiceRequest) input() ucCatalog.Input {
	return ucCatalog.Input{
		Name:        r.Name,
		DurationMin: r.DurationMin,
		Price:       *r.Price,
		Active:      r.Active,
	}
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// --------- Handlers ---------

// List returns active services; ?all=true adds the inactive ones after them.
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.services.List(c.Request.Context(), queryBool(c, "all"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_services")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	svc, err := h.services.Get(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, httperr.CodeServiceNotFound, httperr.Message(httperr.CodeServiceNotFound))
		return
	}
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_service")
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc, err := h.services.Create(c.Request.Context(), req.input())
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_service")
		return
	}
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc, err := h.services.Update(c.Request.Context(), id, req.input())
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_service")
		return
	}
	if svc == nil {
		httpresp.NoContent(c)
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) SetActive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.services.SetActive(c.Request.Context(), id, *req.Active); err != nil {
		httperr.Respond(c, err, "failed_to_update_service")
		return
	}
	httpresp.NoContent(c)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.services.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err, "failed_to_delete_service")
		return
	}
	httpresp.NoContent(c)
}
