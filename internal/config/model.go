// internal/config/model.go
//
// Typed configuration model for Shopadmin.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                             – dotenv values,
//   • `conf/global.yaml`                          – primary static file,
//   • `SHOPADMIN_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *before* unmarshalling, so the model never
// stores Vault URIs, only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Catalog section
//

// Catalog configures the create-product pipeline: where the form posts, and
// the database behind the bundled endpoint.
//
// Endpoint usually points at this same process (`…/api/createProduct`), but
// it can target an external catalog service unchanged.  The DSN secret
// portion is typically a `vault:` reference resolved at load time.
type Catalog struct {
	Endpoint string `koanf:"endpoint" validate:"required,url"`
	DSN      string `koanf:"dsn"      validate:"required"`
	Migrate  bool   `koanf:"migrate"` // apply schema bootstrap on boot
}

//
// Session section
//

// Session tunes the dialog-session registry.
type Session struct {
	MaxEntries int `koanf:"max_entries" validate:"gte=1"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or SHOPADMIN_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // SHOPADMIN_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP    HTTP    `koanf:"http"`
	Catalog Catalog `koanf:"catalog"`
	Session Session `koanf:"session"`
	Paths   Paths   `koanf:"-"` // not loaded from config files
}
