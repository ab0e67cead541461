package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// EnsureLocal resolves a PDF source reference to a local file path.
// Supported forms:
// - file://path or plain filesystem paths
// - http(s):// URLs (downloaded to temp)
// - s3://bucket/key (downloaded to temp via AWS SDK v2)
// The returned cleanup removes any temp file and is always safe to call.
func EnsureLocal(ctx context.Context, ref string) (string, func(), error) {
	// Strip optional #page fragment if present
	if i := strings.Index(ref, "#"); i >= 0 {
		ref = ref[:i]
	}

	noop := func() {}
	switch {
	case strings.HasPrefix(ref, "s3://"):
		p, err := downloadS3ToTemp(ctx, ref)
		if err != nil {
			return "", noop, err
		}
		return p, func() { os.Remove(p) }, nil
	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		p, err := downloadHTTPToTemp(ctx, ref)
		if err != nil {
			return "", noop, err
		}
		return p, func() { os.Remove(p) }, nil
	case strings.HasPrefix(ref, "file://"):
		return strings.TrimPrefix(ref, "file://"), noop, nil
	default:
		return ref, noop, nil
	}
}

// DetermineTotalPages returns the page count for a PDF reference, via pdfcpu.
func DetermineTotalPages(ctx context.Context, ref string) (int, error) {
	localPath, cleanup, err := EnsureLocal(ctx, ref)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	n, err := api.PageCountFile(localPath)
	if err != nil {
		return 0, fmt.Errorf("pdf page count failed: %w", err)
	}
	return n, nil
}

func downloadHTTPToTemp(ctx context.Context, url string) (string, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("http %d", resp.StatusCode)
	}
	f, err := os.CreateTemp("", "pdfdl-*.pdf")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", err
	}
	return f.Name(), nil
}

func splitS3URL(s3url string) (bucket, key string, err error) {
	path := strings.TrimPrefix(s3url, "s3://")
	slash := strings.Index(path, "/")
	if slash <= 0 || slash == len(path)-1 {
		return "", "", fmt.Errorf("invalid s3 url: %s", s3url)
	}
	return path[:slash], path[slash+1:], nil
}

func downloadS3ToTemp(ctx context.Context, s3url string) (string, error) {
	bucket, key, err := splitS3URL(s3url)
	if err != nil {
		return "", err
	}

	// Region comes from the env or the default chain.
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return "", err
	}
	cli := s3.NewFromConfig(cfg)

	out, err := cli.GetObject(ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		return "", err
	}
	defer out.Body.Close()

	// Keep the .pdf extension for pdfcpu expectations.
	f, err := os.CreateTemp("", "s3pdf-*.pdf")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, out.Body); err != nil {
		return "", err
	}
	log.Info().Str("bucket", bucket).Str("key", key).Str("file", filepath.Base(f.Name())).Msg("downloaded s3 pdf to temp")
	return f.Name(), nil
}
