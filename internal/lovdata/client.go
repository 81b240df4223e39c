package lovdata

import (
	"archive/tar"
	"compress/bzip2"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"LovdataScanner/internal/ports"
)

const (
	// DefaultBaseURL is the Lovdata public-data API root.
	DefaultBaseURL = "https://api.lovdata.no/v1"

	// PackageLaws holds all consolidated laws, PackageRegulations all central
	// regulations. Both are tar.bz2 archives of per-document XML files.
	PackageLaws        = "gjeldende-lover.tar.bz2"
	PackageRegulations = "gjeldende-sentrale-forskrifter.tar.bz2"
)

// Client downloads and extracts public-data packages.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.ArchiveSource = (*Client)(nil)

// NewClient wires an HTTP client; a nil client gets a generous download
// timeout since the packages are tens of megabytes.
func NewClient(baseURL string, client *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{baseURL: baseURL, client: client, logger: logger}
}

// FetchPackage downloads one named package and extracts every XML member
// into a filename -> bytes mapping.
func (c *Client) FetchPackage(ctx context.Context, name string) (map[string][]byte, error) {
	url := fmt.Sprintf("%s/publicData/get/%s", strings.TrimSuffix(c.baseURL, "/"), name)
	c.logger.Info("downloading package", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: unexpected status %s", name, resp.Status)
	}

	files, err := extractTarBz2(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", name, err)
	}

	c.logger.Info("package extracted", "package", name, "xml_files", len(files))
	return files, nil
}

func extractTarBz2(r io.Reader) (map[string][]byte, error) {
	files := map[string][]byte{}

	tr := tar.NewReader(bzip2.NewReader(r))
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || !strings.HasSuffix(strings.ToLower(hdr.Name), ".xml") {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("read member %s: %w", hdr.Name, err)
		}
		files[hdr.Name] = data
	}

	return files, nil
}
