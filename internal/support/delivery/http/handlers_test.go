package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"customer-support-agent/internal/conversation"
	"customer-support-agent/internal/middleware"
	"customer-support-agent/internal/support"
	"customer-support-agent/pkg/log"
)

type mockUseCase struct {
	routeIn   support.RouteInput
	routeOut  support.RouteOutput
	resumeIn  support.ResumeInput
	resumeOut support.ResumeOutput
	getOut    support.GetConversationOutput
	err       error
}

func (m *mockUseCase) Route(ctx context.Context, in support.RouteInput) (support.RouteOutput, error) {
	m.routeIn = in
	return m.routeOut, m.err
}

func (m *mockUseCase) Resume(ctx context.Context, in support.ResumeInput) (support.ResumeOutput, error) {
	m.resumeIn = in
	return m.resumeOut, m.err
}

func (m *mockUseCase) GetConversation(ctx context.Context, in support.GetConversationInput) (support.GetConversationOutput, error) {
	return m.getOut, m.err
}

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func serve(t *testing.T, uc *mockUseCase, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc), middleware.New(log.NewNop(), 0))

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return w, env
}

func TestPostMessage(t *testing.T) {
	requestedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := &mockUseCase{routeOut: support.RouteOutput{
		Status: support.StatusAwaitingApproval,
		Outcome: support.Outcome{
			FinalAnswer: support.MsgRefundApproval,
			Decision:    support.DecisionRefundRequiresApproval,
			Confidence:  0.9,
			Escalate:    true,
			Detail:      errors.New("never shown"),
		},
		Approval: &support.Approval{Token: "tok-1", RequestedAt: requestedAt},
	}}

	w, env := serve(t, uc, http.MethodPost, "/api/v1/conversations/c1/messages", `{"text":"I want a refund"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if uc.routeIn.ConversationID != "c1" || uc.routeIn.Text != "I want a refund" {
		t.Errorf("unexpected input %+v", uc.routeIn)
	}
	if strings.Contains(w.Body.String(), "never shown") {
		t.Error("outcome detail leaked to the client")
	}

	var data messageResp
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Status != "awaiting_approval" || data.Approval == nil || data.Approval.Token != "tok-1" {
		t.Errorf("unexpected data %+v", data)
	}
	if data.Outcome.Decision != "refund_requires_approval" || !data.Outcome.Escalate {
		t.Errorf("unexpected outcome %+v", data.Outcome)
	}
	if !time.Time(data.Approval.RequestedAt).Equal(requestedAt) {
		t.Errorf("expected requested_at %v, got %v", requestedAt, time.Time(data.Approval.RequestedAt))
	}
}

func TestApprovalResp_RequestedAtFormat(t *testing.T) {
	local := time.Date(2025, 3, 1, 19, 0, 0, 0, time.FixedZone("ICT", 7*60*60))
	b, err := json.Marshal(newPendingResp(conversation.PendingApproval{Token: "tok-1", RequestedAt: local}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"token":"tok-1","requested_at":"2025-03-01T12:00:00Z"}`; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestPostMessage_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		ucErr    error
		wantCode int
	}{
		{"bad json", "/api/v1/conversations/c1/messages", `{"text":`, nil, http.StatusBadRequest},
		{"blank id", "/api/v1/conversations/%20/messages", `{"text":"hi"}`, nil, http.StatusBadRequest},
		{"use case rejects id", "/api/v1/conversations/c1/messages", `{"text":"hi"}`, support.ErrMissingConversationID, http.StatusBadRequest},
		{"abandoned", "/api/v1/conversations/c1/messages", `{"text":"hi"}`, context.Canceled, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := serve(t, &mockUseCase{err: tt.ucErr}, http.MethodPost, tt.path, tt.body)
			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestResolveApproval(t *testing.T) {
	uc := &mockUseCase{resumeOut: support.ResumeOutput{Outcome: support.Outcome{
		FinalAnswer: support.MsgRefundDenied,
		Decision:    support.DecisionRefundDenied,
	}}}

	w, env := serve(t, uc, http.MethodPost, "/api/v1/conversations/c1/approval", `{"approved":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if uc.resumeIn.ConversationID != "c1" || uc.resumeIn.Approved {
		t.Errorf("unexpected input %+v", uc.resumeIn)
	}

	var data resolveResp
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Outcome.Decision != "refund_denied" || data.Status != "completed" {
		t.Errorf("unexpected data %+v", data)
	}
}

func TestResolveApproval_Errors(t *testing.T) {
	t.Run("missing approved field", func(t *testing.T) {
		w, _ := serve(t, &mockUseCase{}, http.MethodPost, "/api/v1/conversations/c1/approval", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("nothing pending", func(t *testing.T) {
		w, env := serve(t, &mockUseCase{err: support.ErrNoPendingApproval}, http.MethodPost, "/api/v1/conversations/c1/approval", `{"approved":true}`)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
		if env.ErrorCode != http.StatusNotFound {
			t.Errorf("expected error code 404, got %d", env.ErrorCode)
		}
	})
}

func TestGetConversation(t *testing.T) {
	state := conversation.NewState("c1")
	state.Append(conversation.RoleUser, "hi")
	state.Append(conversation.RoleAssistant, support.MsgFallback)
	state.PendingApproval = true
	uc := &mockUseCase{getOut: support.GetConversationOutput{
		State:   state,
		Pending: &conversation.PendingApproval{ConversationID: "c1", Token: "tok-1"},
	}}

	w, env := serve(t, uc, http.MethodGet, "/api/v1/conversations/c1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var data conversationResp
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Messages) != 2 || data.Messages[0].Role != "user" {
		t.Errorf("unexpected messages %+v", data.Messages)
	}
	if data.PendingApproval == nil || data.PendingApproval.Token != "tok-1" {
		t.Errorf("expected pending approval, got %+v", data.PendingApproval)
	}

	w, _ = serve(t, &mockUseCase{err: support.ErrConversationNotFound}, http.MethodGet, "/api/v1/conversations/c2", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
