package handler

import (
	"net/http"

	"realtime-chat/internal/services"
	"realtime-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	service *services.ContactService
}

func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	profiles, err := h.service.ListWithProfiles(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromContactProfiles(profiles)))
}

func (h *ContactHandler) Add(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req httpdto.AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	contactID, err := parseUUID(req.ContactID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid contact id", "INVALID_REQUEST"))
		return
	}

	if _, err := h.service.Add(c.Request.Context(), userID, contactID, req.Name); err != nil {
		respondError(c, err)
		return
	}

	profiles, err := h.service.ListWithProfiles(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromContactProfiles(profiles)))
}

func (h *ContactHandler) Remove(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	contactID, err := parseUUID(c.Param("contactId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid contact id", "INVALID_REQUEST"))
		return
	}
	if err := h.service.Remove(c.Request.Context(), userID, contactID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *ContactHandler) Rename(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	contactID, err := parseUUID(c.Param("contactId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid contact id", "INVALID_REQUEST"))
		return
	}
	var req httpdto.RenameContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	if err := h.service.Rename(c.Request.Context(), userID, contactID, req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}
