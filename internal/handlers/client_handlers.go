package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/services"
)

// ClientHandler holds the client service.
type ClientHandler struct {
	clientService services.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

// GetClients handles fetching all clients, ordered by last name.
func (h *ClientHandler) GetClients(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	clients, err := h.clientService.ListClients(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "GetClients: Error from clientService.ListClients", "Failed to fetch clients.")
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClientByID handles fetching a single client by ID.
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	client, err := h.clientService.GetClient(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "GetClientByID: Error from clientService.GetClient for ID "+id.String(), "Failed to fetch client.")
		return
	}
	c.JSON(http.StatusOK, client)
}

// CreateClient handles the creation of a new client.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.CreateClientRequest
	if !bindJSON(c, &req, "CreateClient") {
		return
	}
	client, err := h.clientService.CreateClient(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "CreateClient: Error from clientService.CreateClient", "Failed to create client.")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// UpdateClient handles updating a client.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req services.UpdateClientRequest
	if !bindJSON(c, &req, "UpdateClient") {
		return
	}
	client, err := h.clientService.UpdateClient(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateClient: Error from clientService.UpdateClient for ID "+id.String(), "Failed to update client.")
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient handles deleting a client.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.clientService.DeleteClient(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "DeleteClient: Error from clientService.DeleteClient for ID "+id.String(), "Failed to delete client.")
		return
	}
	c.Status(http.StatusNoContent)
}
