package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Embedding: EmbeddingConfig{APIKey: "test-key"},
		Ingest:    IngestConfig{ChunkSize: 1000, ChunkOverlap: 200},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.APIKey = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding api key")
	}
}

func TestValidate_OverlapExceedsChunkSize(t *testing.T) {
	cfg := validConfig()
	cfg.Ingest.ChunkSize = 100
	cfg.Ingest.ChunkOverlap = 100

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for overlap >= chunk size")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Embedding.Model != "text-embedding-ada-002" {
		t.Errorf("unexpected embedding model: %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 1536 {
		t.Errorf("expected Dimensions=1536, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.LLM.Model != "gpt-3.5-turbo" {
		t.Errorf("unexpected llm model: %q", cfg.LLM.Model)
	}
	if cfg.Retrieval.K != 4 || cfg.Retrieval.RerankK != 5 || cfg.Retrieval.OversampleFactor != 5 {
		t.Errorf("unexpected retrieval defaults: %+v", cfg.Retrieval)
	}
	if cfg.Retrieval.Cache.TTLSec != 3600 {
		t.Errorf("expected cache TTLSec=3600, got %d", cfg.Retrieval.Cache.TTLSec)
	}
	if cfg.Ingest.ChunkSize != 1000 || cfg.Ingest.ChunkOverlap != 200 {
		t.Errorf("unexpected ingest defaults: %+v", cfg.Ingest)
	}
	if cfg.Index.HNSWM != 32 {
		t.Errorf("expected HNSWM=32, got %d", cfg.Index.HNSWM)
	}
	if cfg.Index.HNSWEFConstruct != 400 {
		t.Errorf("expected HNSWEFConstruct=400, got %d", cfg.Index.HNSWEFConstruct)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Retrieval: RetrievalConfig{K: 8, RerankK: 3, OversampleFactor: 2},
		Index:     IndexConfig{HNSWM: 16, HNSWEFConstruct: 200},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Retrieval.K != 8 || cfg.Retrieval.RerankK != 3 {
		t.Errorf("retrieval overridden: %+v", cfg.Retrieval)
	}
	if cfg.Index.HNSWM != 16 {
		t.Errorf("expected HNSWM=16, got %d", cfg.Index.HNSWM)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PAGEPAL_TEST_KEY", "secret")

	got := string(expandEnvVars([]byte("api_key: ${PAGEPAL_TEST_KEY}\nport: ${PAGEPAL_TEST_PORT:-8080}")))
	want := "api_key: secret\nport: 8080"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
