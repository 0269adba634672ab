package qdrant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"customer-support-agent/internal/knowledge"
	"customer-support-agent/internal/knowledge/repository"
	"customer-support-agent/pkg/log"
	pkgQdrant "customer-support-agent/pkg/qdrant"
)

type fakeEmbedder struct {
	err error
}

func (f fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(len(texts[i])), 1, 0}
	}
	return out, nil
}

type fakeQdrant struct {
	mu      sync.Mutex
	created bool
	points  []pkgQdrant.Point
}

func (f *fakeQdrant) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodGet:
			if !f.created {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(`{"result":{}}`))
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/points"):
			var req pkgQdrant.UpsertPointsRequest
			json.NewDecoder(r.Body).Decode(&req)
			f.points = append(f.points, req.Points...)
			w.Write([]byte(`{"result":{}}`))
		case r.Method == http.MethodPut:
			f.created = true
			w.Write([]byte(`{"result":true}`))
		case r.Method == http.MethodPost:
			var resp pkgQdrant.SearchResponse
			for _, p := range f.points {
				resp.Result = append(resp.Result, pkgQdrant.ScoredPoint{ID: p.ID, Score: 0.8, Payload: p.Payload})
			}
			resp.Result = append(resp.Result, pkgQdrant.ScoredPoint{ID: "orphan", Payload: map[string]any{}})
			json.NewEncoder(w).Encode(resp)
		}
	})
}

func TestRepository(t *testing.T) {
	fq := &fakeQdrant{}
	ts := httptest.NewServer(fq.handler())
	defer ts.Close()

	repo := New(pkgQdrant.NewClient(ts.URL), fakeEmbedder{}, "policies", 3, log.NewNop())
	ctx := context.Background()

	if err := repo.EnsureCollection(ctx); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !fq.created {
		t.Fatal("expected collection to be created")
	}
	if err := repo.EnsureCollection(ctx); err != nil {
		t.Fatalf("ensure twice: %v", err)
	}

	err := repo.Upsert(ctx, repository.UpsertOptions{Passages: []knowledge.Passage{
		{ID: "returns-0", Content: "Returns within 30 days.", Source: "returns.md"},
	}})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if fq.points[0].ID != pointID("returns-0") {
		t.Errorf("expected deterministic point id, got %s", fq.points[0].ID)
	}

	got, err := repo.Search(ctx, repository.SearchOptions{Query: "returns", Limit: 3})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected orphan point to be skipped, got %d passages", len(got))
	}
	if got[0].ID != "returns-0" || got[0].Source != "returns.md" || got[0].Content != "Returns within 30 days." {
		t.Errorf("unexpected passage %+v", got[0])
	}
}

func TestRepository_EmbedFailure(t *testing.T) {
	repo := New(pkgQdrant.NewClient("http://127.0.0.1:1"), fakeEmbedder{err: errors.New("quota")}, "policies", 3, log.NewNop())

	if _, err := repo.Search(context.Background(), repository.SearchOptions{Query: "x", Limit: 1}); err == nil {
		t.Fatal("expected error when embedding fails")
	}
}
