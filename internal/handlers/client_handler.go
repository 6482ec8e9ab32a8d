package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/massage-scheduler/internal/domain"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/massage-scheduler/internal/messaging"
	ucClient "github.com/BruksfildServices01/massage-scheduler/internal/usecase/client"
)

type ClientHandler struct {
	clients  *ucClient.Clients
	business string
}

func NewClientHandler(clients *ucClient.Clients, business string) *ClientHandler {
	return &ClientHandler{clients: clients, business: business}
}

// --------- Requests ---------

type ClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone" binding:"omitempty,phone"`
	Notes string `json:"notes"`
}

func (r ClientRequest) input() ucClient.Input {
	return ucClient.Input{Name: r.Name, Phone: r.Phone, Notes: r.Notes}
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_clients")
		return
	}
	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	client, err := h.clients.Get(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, httperr.CodeClientNotFound, httperr.Message(httperr.CodeClientNotFound))
		return
	}
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_client")
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	client, err := h.clients.Create(c.Request.Context(), req.input())
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_client")
		return
	}
	httpresp.Created(c, client)
}

// Update of a missing client answers 204 without changing anything.
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	client, err := h.clients.Update(c.Request.Context(), id, req.input())
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_client")
		return
	}
	if client == nil {
		httpresp.NoContent(c)
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err, "failed_to_delete_client")
		return
	}
	httpresp.NoContent(c)
}

// MessageLink builds a WhatsApp link with one of the client templates.
func (h *ClientHandler) MessageLink(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tpl, ok := messaging.ParseTemplate(c.Query("template"))
	if !ok {
		httperr.BadRequest(c, "invalid_template", "Unknown message template.")
		return
	}

	client, err := h.clients.Get(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, httperr.CodeClientNotFound, httperr.Message(httperr.CodeClientNotFound))
		return
	}
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_client")
		return
	}

	text := messaging.ClientMessage(tpl, client.Name, h.business)
	link, err := messaging.WhatsAppLink(client.Phone, text)
	if err != nil {
		httperr.Respond(c, err, "failed_to_build_link")
		return
	}

	httpresp.OK(c, gin.H{"url": link, "text": text})
}
