package http

import (
	"github.com/gin-gonic/gin"

	"customer-support-agent/internal/support"
	"customer-support-agent/pkg/response"
)

// PostMessage godoc
// @Summary     Send a message
// @Description Routes one user message. A refund request may park the conversation until a human decides; the response then has status awaiting_approval and an approval token.
// @Tags        Conversations
// @Accept      json
// @Produce     json
// @Param       conversation_id path string     true "Conversation ID"
// @Param       body            body messageReq true "Message"
// @Success     200 {object} messageResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/conversations/{conversation_id}/messages [POST]
func (h *handler) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processMessageReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.uc.Route(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Route: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newMessageResp(req.ConversationID, out))
}

// ResolveApproval godoc
// @Summary     Approve or deny a pending refund
// @Description Resumes a conversation parked on a refund approval.
// @Tags        Conversations
// @Accept      json
// @Produce     json
// @Param       conversation_id path string      true "Conversation ID"
// @Param       body            body approvalReq true "Decision"
// @Success     200 {object} resolveResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "No pending approval"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/conversations/{conversation_id}/approval [POST]
func (h *handler) ResolveApproval(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processApprovalReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.uc.Resume(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Resume: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newResolveResp(req.ConversationID, out))
}

// GetConversation godoc
// @Summary     Get a conversation
// @Description Returns the stored transcript, clarification state and any pending approval.
// @Tags        Conversations
// @Produce     json
// @Param       conversation_id path string true "Conversation ID"
// @Success     200 {object} conversationResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/conversations/{conversation_id} [GET]
func (h *handler) GetConversation(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := conversationID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.uc.GetConversation(ctx, support.GetConversationInput{ConversationID: id})
	if err != nil {
		h.l.Errorf(ctx, "uc.GetConversation: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newConversationResp(out))
}
