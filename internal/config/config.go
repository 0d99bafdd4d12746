package config

import "os"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr       string // GREENROOM_ADDR, default ":8080"
	DB         string // GREENROOM_DB, SQLite path or postgres:// DSN, default "greenroom.db"
	AuthToken  string // GREENROOM_AUTH_TOKEN, grants editor access, optional
	AdminToken string // GREENROOM_ADMIN_TOKEN, grants admin access, optional

	// Catalog points at an optional catalog overlay, either a local file
	// path or an s3://bucket/key reference.
	Catalog            string // GREENROOM_CATALOG
	CatalogS3Region    string // GREENROOM_CATALOG_S3_REGION, default "us-east-1"
	CatalogS3Endpoint  string // GREENROOM_CATALOG_S3_ENDPOINT, for MinIO-style S3 hosts
	CatalogS3AccessKey string // GREENROOM_CATALOG_S3_ACCESS_KEY, optional static credentials
	CatalogS3SecretKey string // GREENROOM_CATALOG_S3_SECRET_KEY
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Addr:               envOr("GREENROOM_ADDR", ":8080"),
		DB:                 envOr("GREENROOM_DB", "greenroom.db"),
		AuthToken:          os.Getenv("GREENROOM_AUTH_TOKEN"),
		AdminToken:         os.Getenv("GREENROOM_ADMIN_TOKEN"),
		Catalog:            os.Getenv("GREENROOM_CATALOG"),
		CatalogS3Region:    envOr("GREENROOM_CATALOG_S3_REGION", "us-east-1"),
		CatalogS3Endpoint:  os.Getenv("GREENROOM_CATALOG_S3_ENDPOINT"),
		CatalogS3AccessKey: os.Getenv("GREENROOM_CATALOG_S3_ACCESS_KEY"),
		CatalogS3SecretKey: os.Getenv("GREENROOM_CATALOG_S3_SECRET_KEY"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
