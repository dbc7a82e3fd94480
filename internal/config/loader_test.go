// internal/config/loader_test.go
//
// Unit-tests for the vault-reference overlay.
//
// Run: go test ./internal/config -v

package config

import (
	"context"
	"testing"
	"time"

	koanf "github.com/knadh/koanf/v2"
)

// fakeResolver maps "path#key" to canned values.
type fakeResolver struct {
	values map[string]string
	calls  int
}

func (f *fakeResolver) GetKV(_ context.Context, path, key string, _ time.Duration) (string, error) {
	f.calls++
	v, ok := f.values[path+"#"+key]
	if !ok {
		return "", context.Canceled
	}
	return v, nil
}

func TestResolveSecrets(t *testing.T) {
	k := koanf.New(".")
	_ = k.Set("catalog.dsn", "vault:kv/shopadmin#dsn")
	_ = k.Set("http.listen_addr", ":8080") // plain value stays untouched

	fr := &fakeResolver{values: map[string]string{
		"kv/shopadmin#dsn": "admin:s3cret@tcp(db:3306)/catalog",
	}}

	if err := resolveSecrets(context.Background(), k, fr); err != nil {
		t.Fatalf("resolveSecrets: %v", err)
	}
	if got := k.String("catalog.dsn"); got != "admin:s3cret@tcp(db:3306)/catalog" {
		t.Fatalf("dsn = %q", got)
	}
	if got := k.String("http.listen_addr"); got != ":8080" {
		t.Fatalf("listen_addr mutated: %q", got)
	}
	if fr.calls != 1 {
		t.Fatalf("resolver calls = %d, want 1", fr.calls)
	}
}

func TestResolveSecrets_Malformed(t *testing.T) {
	k := koanf.New(".")
	_ = k.Set("catalog.dsn", "vault:kv/shopadmin") // missing #key

	if err := resolveSecrets(context.Background(), k, &fakeResolver{}); err == nil {
		t.Fatal("malformed reference must fail")
	}
}

func TestResolveSecrets_NoResolver(t *testing.T) {
	k := koanf.New(".")
	_ = k.Set("catalog.dsn", "vault:kv/shopadmin#dsn")

	if err := resolveSecrets(context.Background(), k, nil); err == nil {
		t.Fatal("vault reference without resolver must fail")
	}
}
