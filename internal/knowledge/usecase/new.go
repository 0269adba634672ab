package usecase

import (
	"customer-support-agent/internal/knowledge"
	"customer-support-agent/internal/knowledge/repository"
	"customer-support-agent/pkg/llmprovider"
	"customer-support-agent/pkg/log"
)

// Config tunes retrieval and ingestion. Zero fields use the package defaults.
type Config struct {
	TopK         int
	ChunkSize    int
	ChunkOverlap int
}

type implUseCase struct {
	repo repository.PassageRepository
	llm  llmprovider.Generator
	cfg  Config
	l    log.Logger
}

var _ knowledge.UseCase = (*implUseCase)(nil)

// New creates the retrieval-augmented answerer.
func New(repo repository.PassageRepository, llm llmprovider.Generator, cfg Config, l log.Logger) *implUseCase {
	if cfg.TopK <= 0 {
		cfg.TopK = knowledge.DefaultTopK
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = knowledge.DefaultChunkSize
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = knowledge.DefaultChunkOverlap
	}
	return &implUseCase{repo: repo, llm: llm, cfg: cfg, l: l}
}
