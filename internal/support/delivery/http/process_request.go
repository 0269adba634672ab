package http

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func conversationID(c *gin.Context) (string, error) {
	id := strings.TrimSpace(c.Param("conversation_id"))
	if id == "" {
		return "", errMissingConversationID
	}
	return id, nil
}

// processMessageReq binds the message body and the path id.
func (h *handler) processMessageReq(c *gin.Context) (messageReq, error) {
	var req messageReq
	id, err := conversationID(c)
	if err != nil {
		return req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "support.delivery.http.processMessageReq: %v", err)
		return req, errInvalidBody
	}
	req.ConversationID = id
	return req, nil
}

// processApprovalReq binds the approval body and the path id.
func (h *handler) processApprovalReq(c *gin.Context) (approvalReq, error) {
	var req approvalReq
	id, err := conversationID(c)
	if err != nil {
		return req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "support.delivery.http.processApprovalReq: %v", err)
		return req, errInvalidBody
	}
	req.ConversationID = id
	return req, nil
}
