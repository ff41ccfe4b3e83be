// Command pagepal-ingest loads one or more plain-text books into the catalog
// and the vector index.
//
// Usage: pagepal-ingest <book.txt> [more.txt ...]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/shahtirth07/pagepal/internal/config"
	dbRedis "github.com/shahtirth07/pagepal/internal/db/redis"
	"github.com/shahtirth07/pagepal/internal/ingest"
	logpkg "github.com/shahtirth07/pagepal/internal/logger"
	booksrepo "github.com/shahtirth07/pagepal/internal/repository/books"
	candidaterepo "github.com/shahtirth07/pagepal/internal/repository/candidate"
	openaiTransport "github.com/shahtirth07/pagepal/internal/transport/openai"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: pagepal-ingest <book.txt> [more.txt ...]")
		os.Exit(2)
	}

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	embedder := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})
	chatClient := openaiTransport.NewChatClient(&openaiTransport.ChatConfig{
		APIKey:  cfg.Embedding.APIKey,
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.LLM.Model,
		Logger:  logger,
	})

	svc := ingest.New(
		ingest.NewChunker(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap),
		ingest.NewMetadataExtractor(chatClient, cfg.Ingest.KnownGenres, logger),
		embedder,
		booksrepo.New(store),
		store,
		candidaterepo.HNSWConfig{
			M:           cfg.Index.HNSWM,
			EFConstruct: cfg.Index.HNSWEFConstruct,
		},
		logger,
	)

	failed := 0
	for _, path := range os.Args[1:] {
		book, err := svc.IngestFile(ctx, path)
		if err != nil {
			logger.Error("Failed to ingest book", zap.String("file", path), zap.Error(err))
			failed++
			continue
		}
		fmt.Printf("ingested %q by %s (%s) as %s: %d chunks\n",
			book.Title, book.Author, book.Genre, book.ID, len(book.Chunks))
	}
	if failed > 0 {
		os.Exit(1)
	}
}
