// internal/config/loader.go
//
// Configuration loader and hot-reloader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `.env` file — `<root>/conf/.env`.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `SHOPADMIN_`, where `__` maps to “.”
     (e.g., `SHOPADMIN_HTTP__LISTEN_ADDR → http.listen_addr`).

Before unmarshalling, every string value with a `vault:` prefix is resolved
through the supplied SecretResolver (`vault:kv/shopadmin#db_password`), so
secrets never live in flat files or git history.

After merging, the tree is unmarshalled into strongly-typed structs,
validated, enriched with the runtime root path, and cached in an
`atomic.Pointer` for lock-free reads.  `Reload()` simply calls `Load()`
again and swaps the pointer.

Notes
-----
  • `rootDir()` climbs the cwd tree until it finds `conf/global.yaml`;
    this lets `go run ./cmd/admin` work from any sub-directory.
  • Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed (bootstrap console).
*/
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

var current atomic.Pointer[Config]

// SecretResolver fetches one key from a secret store.  *vault.Client
// satisfies it; tests inject fakes.
type SecretResolver interface {
	GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error)
}

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves SHOPADMIN_ROOT or climbs directories until
// conf/global.yaml is found.  Falls back to executable heuristic for
// production layout.
func rootDir() string {
	if r := os.Getenv("SHOPADMIN_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, env overrides, resolves secrets, validates, and
// caches Config.  resolver may be nil when no `vault:` references exist.
func Load(ctx context.Context, resolver SecretResolver) (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	// Env overrides: SHOPADMIN_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.Provider("SHOPADMIN_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "SHOPADMIN_")
		return strings.ToLower(strings.ReplaceAll(s, "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	if err := resolveSecrets(ctx, k, resolver); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if cfg.Session.MaxEntries == 0 {
		cfg.Session.MaxEntries = 512
	}
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"endpoint", cfg.Catalog.Endpoint,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

/*──────────────────────────── secret overlay ──────────────────────────────*/

// resolveSecrets rewrites every `vault:<path>#<key>` string in the merged
// tree with the value fetched from the resolver.  Resolved values are cached
// by the Vault client for five minutes, so reloads stay cheap.
func resolveSecrets(ctx context.Context, k *koanf.Koanf, resolver SecretResolver) error {
	for key, val := range k.All() {
		ref, ok := val.(string)
		if !ok || !strings.HasPrefix(ref, "vault:") {
			continue
		}
		if resolver == nil {
			return fmt.Errorf("config key %s references Vault but no resolver is configured", key)
		}

		spec := strings.TrimPrefix(ref, "vault:")
		path, field, found := strings.Cut(spec, "#")
		if !found || path == "" || field == "" {
			return fmt.Errorf("config key %s: malformed vault reference %q", key, ref)
		}

		secret, err := resolver.GetKV(ctx, path, field, 5*time.Minute)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", key, err)
		}
		if err := k.Set(key, secret); err != nil {
			return fmt.Errorf("overlay %s: %w", key, err)
		}
	}
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config { return current.Load() }

func Reload(ctx context.Context, resolver SecretResolver) error {
	_, err := Load(ctx, resolver)
	return err
}
