// Package app builds the dependency graph shared by the API server and the
// supportctl CLI.
package app

import (
	"context"
	"errors"
	"fmt"

	"customer-support-agent/config"
	"customer-support-agent/internal/conversation/repository"
	"customer-support-agent/internal/conversation/repository/cached"
	redisRepo "customer-support-agent/internal/conversation/repository/redis"
	sqliteRepo "customer-support-agent/internal/conversation/repository/sqlite"
	"customer-support-agent/internal/intent"
	"customer-support-agent/internal/knowledge"
	knowledgeRepo "customer-support-agent/internal/knowledge/repository"
	chromemRepo "customer-support-agent/internal/knowledge/repository/chromem"
	qdrantRepo "customer-support-agent/internal/knowledge/repository/qdrant"
	knowledgeUC "customer-support-agent/internal/knowledge/usecase"
	"customer-support-agent/internal/order"
	"customer-support-agent/internal/support"
	supportUC "customer-support-agent/internal/support/usecase"
	"customer-support-agent/pkg/llmprovider"
	"customer-support-agent/pkg/log"
	pkgQdrant "customer-support-agent/pkg/qdrant"
	"customer-support-agent/pkg/voyage"
)

// App holds the wired use cases.
type App struct {
	Support   support.UseCase
	Knowledge knowledge.UseCase
	Orders    *order.Catalog

	store repository.Repository
}

// New wires every component from cfg.
func New(ctx context.Context, cfg *config.Config, l log.Logger) (*App, error) {
	llm, err := llmprovider.NewManagerFromConfig(&cfg.LLM, l)
	if err != nil {
		return nil, fmt.Errorf("llm providers: %w", err)
	}
	l.Infof(ctx, "LLM providers initialized (fallback=%v)", cfg.LLM.FallbackEnabled)

	store, err := newStore(ctx, cfg.Store, l)
	if err != nil {
		return nil, fmt.Errorf("conversation store: %w", err)
	}

	passages, err := newPassageRepository(ctx, cfg, l)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("policy retrieval: %w", err)
	}

	knowledgeUseCase := knowledgeUC.New(passages, llm, knowledgeUC.Config{TopK: cfg.Retrieval.TopK}, l)
	grader := knowledge.NewAnswerGrader(knowledgeUseCase, l)
	resolver := intent.NewResolver(intent.NewLLMClassifier(llm, l), l)
	orders := order.NewCatalog(cfg.Orders)

	uc := supportUC.New(l, resolver, grader, orders, store, support.Options{
		ApprovalGate:       cfg.Support.ApprovalGate,
		EscalationKeywords: cfg.Support.EscalationKeywords,
	})

	return &App{
		Support:   uc,
		Knowledge: knowledgeUseCase,
		Orders:    orders,
		store:     store,
	}, nil
}

// Close releases the conversation store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func newStore(ctx context.Context, cfg config.StoreConfig, l log.Logger) (repository.Repository, error) {
	var (
		next repository.Repository
		err  error
	)
	switch cfg.Driver {
	case config.StoreDriverSQLite:
		next, err = sqliteRepo.Open(cfg.SQLitePath, l)
	case config.StoreDriverRedis:
		next, err = redisRepo.New(ctx, redisRepo.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		}, l)
	default:
		err = fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	l.Infof(ctx, "Conversation store: %s", cfg.Driver)

	if cfg.CacheSize <= 0 {
		return next, nil
	}
	store, err := cached.New(next, cfg.CacheSize)
	if err != nil {
		return nil, errors.Join(err, next.Close())
	}
	return store, nil
}

func newPassageRepository(ctx context.Context, cfg *config.Config, l log.Logger) (knowledgeRepo.PassageRepository, error) {
	switch cfg.Retrieval.Backend {
	case config.RetrievalBackendChromem:
		embed, err := chromemRepo.EmbeddingFunc(chromemRepo.EmbeddingConfig{
			Provider: cfg.Retrieval.EmbeddingProvider,
			BaseURL:  cfg.Retrieval.EmbeddingBaseURL,
			Model:    cfg.Retrieval.EmbeddingModel,
			APIKey:   cfg.Retrieval.EmbeddingAPIKey,
		})
		if err != nil {
			return nil, err
		}
		l.Infof(ctx, "Policy retrieval: chromem at %s", cfg.Retrieval.ChromemPath)
		return chromemRepo.Open(cfg.Retrieval.ChromemPath, cfg.Retrieval.Collection, embed, l)

	case config.RetrievalBackendQdrant:
		embedder, err := voyage.New(voyage.Config{APIKey: cfg.Voyage.APIKey, Model: cfg.Voyage.Model})
		if err != nil {
			return nil, err
		}
		repo := qdrantRepo.New(pkgQdrant.NewClient(cfg.Qdrant.URL), embedder, cfg.Retrieval.Collection, cfg.Qdrant.VectorSize, l)
		if err := repo.EnsureCollection(ctx); err != nil {
			return nil, err
		}
		l.Infof(ctx, "Policy retrieval: qdrant at %s", cfg.Qdrant.URL)
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Retrieval.Backend)
	}
}
