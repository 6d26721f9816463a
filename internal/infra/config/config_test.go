package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("JWT_SECRET", "s3cr3t")
}

func TestLoad_Success(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_TTL", "2m")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("PASSWORD_PEPPER", "pepper")
	t.Setenv("GRPC_ADDRESS", ":50051")
	t.Setenv("JWT_ISSUER", "my-svc")
	t.Setenv("JWT_AUDIENCE", "my-aud")
	t.Setenv("ALLOWED_ORIGINS", `["https://app.example.com"]`)
	t.Setenv("ALLOW_CREDENTIALS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 2*time.Minute {
		t.Fatalf("AccessTokenTTL want 2m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.JWTSecret != "s3cr3t" || cfg.Issuer != "my-svc" || cfg.Audience != "my-aud" {
		t.Fatalf("jwt settings not loaded: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://app.example.com" {
		t.Fatalf("AllowedOrigins: %v", cfg.AllowedOrigins)
	}
	if !cfg.AllowCredentials {
		t.Fatal("AllowCredentials want true")
	}
	if cfg.GRPCAddress != ":50051" {
		t.Fatalf("GRPCAddress: %s", cfg.GRPCAddress)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AccessTokenTTL != 8760*time.Hour {
		t.Fatalf("default ttl: %v", cfg.AccessTokenTTL)
	}
	if cfg.StoreDriver != StoreDriverPostgres {
		t.Fatalf("default driver: %s", cfg.StoreDriver)
	}
	if !cfg.CheckSubject || cfg.SubjectCacheTTL != 5*time.Minute {
		t.Fatalf("subject check defaults: %v %v", cfg.CheckSubject, cfg.SubjectCacheTTL)
	}
	if cfg.HTTPAddress != ":8080" || cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("server defaults: %s %v", cfg.HTTPAddress, cfg.ShutdownTimeout)
	}
	if cfg.TLSEnabled() {
		t.Fatal("tls must be off without cert files")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing JWT_SECRET, got nil")
	}
}

func TestLoad_MongoRequiresURI(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing MONGO_URI")
	}

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreDriver != StoreDriverMongo || cfg.MongoDatabase != "finance" {
		t.Fatalf("mongo settings: %s %s", cfg.StoreDriver, cfg.MongoDatabase)
	}
}

func TestLoad_HalfTLS(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTPS_CERT_FILE", "cert.pem")
	t.Setenv("HTTPS_KEY_FILE", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for cert without key")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList("https://a.example, https://b.example")
	if len(got) != 2 || got[1] != "https://b.example" {
		t.Fatalf("splitList: %v", got)
	}
	if splitList("") != nil {
		t.Fatal("empty input must give nil")
	}
}
