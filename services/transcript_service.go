package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	appconfig "warehouse-surveillance/be/config"
	"warehouse-surveillance/be/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

const blobOpTimeout = 30 * time.Second

// BlobStore is the slice of blob-storage behavior the transcript merge
// needs; the Azure client satisfies it in production, fakes in tests.
type BlobStore interface {
	List(ctx context.Context, container, prefix string) ([]string, error)
	Download(ctx context.Context, container, name string) ([]byte, error)
}

// AzureBlobStore backs BlobStore with an Azure Storage account accessed
// through a service-principal credential.
type AzureBlobStore struct {
	client *azblob.Client
}

func NewAzureBlobStore(cfg appconfig.AzureConfig) (*AzureBlobStore, error) {
	cred, err := azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net", cfg.StorageAccount)
	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}
	return &AzureBlobStore{client: client}, nil
}

func (s *AzureBlobStore) List(ctx context.Context, container, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, blobOpTimeout)
	defer cancel()

	var names []string
	pager := s.client.NewListBlobsFlatPager(container, &azblob.ListBlobsFlatOptions{Prefix: &prefix})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list blobs: %w", err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	return names, nil
}

func (s *AzureBlobStore) Download(ctx context.Context, container, name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, blobOpTimeout)
	defer cancel()

	resp, err := s.client.DownloadStream(ctx, container, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download blob %s: %w", name, err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// TranscriptService locates, merges and renders the per-second
// transcript fragments stored alongside each video chunk.
type TranscriptService struct {
	store BlobStore
	log   *logger.Logger
}

func NewTranscriptService(store BlobStore, log *logger.Logger) *TranscriptService {
	return &TranscriptService{store: store, log: log}
}

var errUnsupportedBlobURL = errors.New("unsupported blob URL format")

// IsUnsupportedBlobURL reports whether err came from a transcript URL
// the parser cannot handle, which the caller surfaces as a client error.
func IsUnsupportedBlobURL(err error) bool {
	return errors.Is(err, errUnsupportedBlobURL)
}

// ParseTranscriptURL splits a stored transcript URL of the form
// https://<account>.blob.core.windows.net/<container>/<folder...>[/file.json]
// into its container and folder prefix. A trailing .json segment is
// stripped back to its containing folder.
func ParseTranscriptURL(rawURL string) (container, prefix string, err error) {
	if !strings.HasPrefix(rawURL, "https://") {
		return "", "", fmt.Errorf("%w: %s", errUnsupportedBlobURL, rawURL)
	}
	parts := strings.Split(strings.TrimPrefix(rawURL, "https://"), "/")
	if len(parts) < 3 {
		return "", "", fmt.Errorf("%w: %s", errUnsupportedBlobURL, rawURL)
	}
	container = parts[1]

	last := parts[len(parts)-1]
	if strings.HasSuffix(last, ".json") {
		prefix = strings.Join(parts[2:len(parts)-1], "/")
	} else {
		prefix = strings.Join(parts[2:], "/")
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return container, prefix, nil
}

// ListTranscriptBlobs returns the transcript fragment blobs under the
// prefix: JSON files carrying a chunk_start offset in their name.
func (s *TranscriptService) ListTranscriptBlobs(ctx context.Context, container, prefix string) ([]string, error) {
	names, err := s.store.List(ctx, container, prefix)
	if err != nil {
		return nil, err
	}
	fragments := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasSuffix(name, ".json") && strings.Contains(name, "chunk_start") {
			fragments = append(fragments, name)
		}
	}
	return fragments, nil
}

var chunkStartPattern = regexp.MustCompile(`chunk_start-(\d+)`)

// extractChunkStart pulls the numeric chunk-start offset out of a
// fragment name; names without one sort last.
func extractChunkStart(name string) int {
	match := chunkStartPattern.FindStringSubmatch(name)
	if match == nil {
		return math.MaxInt
	}
	offset, err := strconv.Atoi(match[1])
	if err != nil {
		return math.MaxInt
	}
	return offset
}

// MergeTranscripts downloads the fragments in ascending chunk-start
// order and concatenates their JSON payloads. A fragment that fails to
// download or parse is logged and skipped; one bad fragment never aborts
// the merge.
func (s *TranscriptService) MergeTranscripts(ctx context.Context, container string, names []string) []interface{} {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.SliceStable(sorted, func(i, j int) bool {
		return extractChunkStart(sorted[i]) < extractChunkStart(sorted[j])
	})

	results := make([]interface{}, 0, len(sorted))
	for _, name := range sorted {
		content, err := s.store.Download(ctx, container, name)
		if err != nil {
			s.log.Error("failed to read transcript fragment", "blob", name, "error", err)
			continue
		}
		var data interface{}
		if err := json.Unmarshal(content, &data); err != nil {
			s.log.Warn("skipping invalid JSON transcript fragment", "blob", name, "error", err)
			continue
		}
		if list, ok := data.([]interface{}); ok {
			results = append(results, list...)
		} else {
			results = append(results, data)
		}
	}
	return results
}

// BuildVideoContext renders merged transcript items into the prompt
// context block: each map item's keys in sorted order, the key framed by
// asterisks, the value on the following line.
func BuildVideoContext(items []interface{}) string {
	var sb strings.Builder
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		keys := make([]string, 0, len(entry))
		for key := range entry {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			sb.WriteString("**************")
			sb.WriteString(key)
			sb.WriteString("**************\n")
			fmt.Fprintf(&sb, "%v\n\n", entry[key])
		}
	}
	return sb.String()
}
