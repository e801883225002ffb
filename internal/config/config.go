package config

import (
	"os"
	"path/filepath"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	Env      string // development|production, picks the log format
	HTTPAddr string

	// Scratch dir one conversion owns at a time; cleared on reuse.
	WorkspacePath string

	BlobBasePath string // where rendered forms land (fs blob store)

	ResultsDriver  string // csv|sqlite|postgres
	ResultsDSN     string // sqlite/postgres only
	ResultsCSVPath string // csv only

	AdminUser     string
	AdminPassHash string // bcrypt
	AuthSecret    string // HMAC for issued JWTs

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:           mode,
		Env:            envOr("ENV", "development"),
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		WorkspacePath:  envOr("WORKSPACE_PATH", filepath.Join(os.TempDir(), "schoology-convert")),
		BlobBasePath:   envOr("BLOB_BASE_PATH", "./forms-out"),
		ResultsDriver:  envOr("RESULTS_DRIVER", "csv"),
		ResultsDSN:     os.Getenv("RESULTS_DSN"),
		ResultsCSVPath: envOr("RESULTS_CSV_PATH", "./conversion-log.csv"),
		AdminUser:      envOr("ADMIN_USER", "admin"),
		// default hash is bcrypt("password"); override in any real deployment
		AdminPassHash:      envOr("ADMIN_PASS_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
		AuthSecret:         envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://forms.example.com"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
