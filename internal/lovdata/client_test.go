package lovdata

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// tar.bz2 archive holding nl-20200101-1.xml (a minimal law document) and
// readme.txt (which extraction must skip).
const packageFixtureB64 = `
QlpoOTFBWSZTWa0ESjQAALp/jM0AAMBAA/+FBCWFAGYvn8AACAAAgAgwALmwSiSbUaHpGhtQMmQa
aZG9UEqmhiCaMAmIxMAEwSRNRNMmgAZGgAAP3g5tWScbSwARMhJGOfKUBI0NBMGEYSBxMnO45URm
KeT+rDa1JbQBgYA3cKxRrqnglJshEjaJkChQzWoZYrX8EiZweIB1hTxSsfErEU/VZXRWwdaXnh8F
VJaipLo9fmYsuzmJKY2zTPHYZF8ZDWGoNMJxqDA3MaCCjKpsoYyYfBJKaZxED+LuSKcKEhWgiUaA
`

func packageFixture(t *testing.T) []byte {
	t.Helper()
	blob, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(strings.TrimSpace(packageFixtureB64), "\n", ""))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return blob
}

func TestClientFetchPackage(t *testing.T) {
	t.Parallel()

	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		_, _ = w.Write(packageFixture(t))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil)

	files, err := client.FetchPackage(context.Background(), "gjeldende-lover.tar.bz2")
	if err != nil {
		t.Fatalf("FetchPackage error: %v", err)
	}

	if requestedPath != "/publicData/get/gjeldende-lover.tar.bz2" {
		t.Fatalf("unexpected request path: %s", requestedPath)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 xml file, got %d: %v", len(files), keys(files))
	}

	raw, ok := files["nl-20200101-1.xml"]
	if !ok {
		t.Fatalf("missing expected member, got %v", keys(files))
	}
	if !strings.Contains(string(raw), "<title>Test law</title>") {
		t.Fatalf("unexpected member content: %s", raw)
	}
}

func TestClientFetchPackageHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil)

	if _, err := client.FetchPackage(context.Background(), "gjeldende-lover.tar.bz2"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
