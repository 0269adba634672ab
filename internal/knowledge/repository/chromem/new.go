package chromem

import (
	"fmt"

	chromemgo "github.com/philippgille/chromem-go"

	"customer-support-agent/internal/knowledge/repository"
	"customer-support-agent/pkg/log"
)

const (
	EmbeddingOllama = "ollama"
	EmbeddingOpenAI = "openai"
)

// EmbeddingConfig selects the embedding backend for a chromem collection.
type EmbeddingConfig struct {
	Provider string
	BaseURL  string
	Model    string
	APIKey   string
}

// EmbeddingFunc builds the chromem embedding function for cfg.
func EmbeddingFunc(cfg EmbeddingConfig) (chromemgo.EmbeddingFunc, error) {
	switch cfg.Provider {
	case EmbeddingOllama, "":
		// chromem's Ollama client expects the /api root, not the OpenAI compatible /v1.
		return chromemgo.NewEmbeddingFuncOllama(cfg.Model, cfg.BaseURL), nil
	case EmbeddingOpenAI:
		if cfg.BaseURL == "" {
			return chromemgo.NewEmbeddingFuncOpenAI(cfg.APIKey, chromemgo.EmbeddingModelOpenAI(cfg.Model)), nil
		}
		return chromemgo.NewEmbeddingFuncOpenAICompat(cfg.BaseURL, cfg.APIKey, cfg.Model, nil), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

type implRepository struct {
	collection *chromemgo.Collection
	l          log.Logger
}

var _ repository.PassageRepository = (*implRepository)(nil)

// New opens a collection in db. Pass a persistent DB from
// chromemgo.NewPersistentDB to keep passages across restarts.
func New(db *chromemgo.DB, collection string, embed chromemgo.EmbeddingFunc, l log.Logger) (*implRepository, error) {
	c, err := db.GetOrCreateCollection(collection, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("getting/creating collection %s: %w", collection, err)
	}
	return &implRepository{collection: c, l: l}, nil
}

// Open creates or loads the persistent DB at path and opens collection in it.
func Open(path, collection string, embed chromemgo.EmbeddingFunc, l log.Logger) (*implRepository, error) {
	db, err := chromemgo.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("opening chromem db at %s: %w", path, err)
	}
	return New(db, collection, embed, l)
}
