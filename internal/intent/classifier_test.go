package intent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"customer-support-agent/pkg/llmprovider"
	"customer-support-agent/pkg/log"
)

type fakeGenerator struct {
	text string
	err  error
	last *llmprovider.Request
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &llmprovider.Response{
		Content:      llmprovider.TextMessage("assistant", f.text),
		ProviderName: "fake",
	}, nil
}

func TestLLMClassifier_Classify(t *testing.T) {
	gen := &fakeGenerator{text: `{"intents":[{"intent":"REFUND","confidence":0.95,"reason":"asks for money back"}]}`}
	c := NewLLMClassifier(gen, log.NewNop())

	got, err := c.Classify(context.Background(), "I want my money back")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Label != LabelRefund {
		t.Fatalf("unexpected candidates %+v", got)
	}

	if gen.last == nil || gen.last.SystemInstruction == nil {
		t.Fatal("expected a system instruction")
	}
	if !strings.Contains(gen.last.SystemInstruction.Text(), "ORDER_STATUS") {
		t.Error("system instruction should list the labels")
	}
	if gen.last.Messages[0].Text() != "I want my money back" {
		t.Errorf("unexpected user message %q", gen.last.Messages[0].Text())
	}
	if gen.last.Temperature != ClassifierTemperature {
		t.Errorf("expected temperature %v, got %v", ClassifierTemperature, gen.last.Temperature)
	}
}

func TestLLMClassifier_Errors(t *testing.T) {
	t.Run("provider failure", func(t *testing.T) {
		c := NewLLMClassifier(&fakeGenerator{err: llmprovider.ErrAllProvidersFailed}, log.NewNop())
		_, err := c.Classify(context.Background(), "hi")
		if !errors.Is(err, ErrClassifierUnavailable) {
			t.Errorf("expected ErrClassifierUnavailable, got %v", err)
		}
	})

	t.Run("garbage output", func(t *testing.T) {
		c := NewLLMClassifier(&fakeGenerator{text: "sorry, I cannot help"}, log.NewNop())
		_, err := c.Classify(context.Background(), "hi")
		if !errors.Is(err, ErrUnparseableOutput) {
			t.Errorf("expected ErrUnparseableOutput, got %v", err)
		}
	})
}
