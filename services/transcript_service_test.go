package services

import (
	"context"
	"errors"
	"testing"

	"warehouse-surveillance/be/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobStore struct {
	blobs    map[string][]byte
	listErr  error
	downErrs map[string]error
}

func (f *fakeBlobStore) List(ctx context.Context, container, prefix string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	names := make([]string, 0, len(f.blobs))
	for name := range f.blobs {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeBlobStore) Download(ctx context.Context, container, name string) ([]byte, error) {
	if err, ok := f.downErrs[name]; ok {
		return nil, err
	}
	content, ok := f.blobs[name]
	if !ok {
		return nil, errors.New("blob not found")
	}
	return content, nil
}

func newTranscriptService(store BlobStore) *TranscriptService {
	return NewTranscriptService(store, logger.NewNop())
}

func TestParseTranscriptURL(t *testing.T) {
	cases := []struct {
		name          string
		url           string
		wantContainer string
		wantPrefix    string
		wantErr       bool
	}{
		{
			"folder URL",
			"https://acct.blob.core.windows.net/cache-east/2025-08-26/cam1/chunks",
			"cache-east",
			"2025-08-26/cam1/chunks/",
			false,
		},
		{
			"file URL is stripped to its folder",
			"https://acct.blob.core.windows.net/cache-east/2025-08-26/cam1/chunks/ts_chunk_start-0-end-30_file.json",
			"cache-east",
			"2025-08-26/cam1/chunks/",
			false,
		},
		{
			"trailing slash preserved",
			"https://acct.blob.core.windows.net/cache-east/cam1/",
			"cache-east",
			"cam1/",
			false,
		},
		{"wasbs scheme rejected", "wasbs://container@acct.blob.core.windows.net/x", "", "", true},
		{"plain http rejected", "http://acct.blob.core.windows.net/c/x", "", "", true},
		{"too short", "https://acct.blob.core.windows.net", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			container, prefix, err := ParseTranscriptURL(tc.url)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, IsUnsupportedBlobURL(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantContainer, container)
			assert.Equal(t, tc.wantPrefix, prefix)
		})
	}
}

func TestListTranscriptBlobsFiltersFragments(t *testing.T) {
	store := &fakeBlobStore{blobs: map[string][]byte{
		"p/ts_chunk_start-0-end-30_file.json":  []byte(`[]`),
		"p/ts_chunk_start-30-end-60_file.json": []byte(`[]`),
		"p/video.mp4":                          []byte{},
		"p/summary.json":                       []byte(`{}`), // no chunk_start marker
	}}
	svc := newTranscriptService(store)

	names, err := svc.ListTranscriptBlobs(context.Background(), "c", "p/")

	require.NoError(t, err)
	assert.Len(t, names, 2)
	for _, name := range names {
		assert.Contains(t, name, "chunk_start")
	}
}

func TestExtractChunkStart(t *testing.T) {
	assert.Equal(t, 0, extractChunkStart("ts_x_chunk_start-0-end-30_file.json"))
	assert.Equal(t, 120, extractChunkStart("ts_x_chunk_start-120-end-150_file.json"))
	// Names without an offset sort after everything that has one.
	assert.Less(t, extractChunkStart("chunk_start-900"), extractChunkStart("no-offset.json"))
}

func TestMergeTranscriptsOrdersByChunkStart(t *testing.T) {
	store := &fakeBlobStore{blobs: map[string][]byte{
		"p/ts_chunk_start-60-end-90_file.json": []byte(`[{"second_60":"truck leaves"}]`),
		"p/ts_chunk_start-0-end-30_file.json":  []byte(`[{"second_0":"truck arrives"}]`),
		"p/ts_chunk_start-30-end-60_file.json": []byte(`[{"second_30":"bags unloaded"}]`),
	}}
	svc := newTranscriptService(store)

	// Listing order is arbitrary; merge order must follow the embedded
	// offsets.
	names := []string{
		"p/ts_chunk_start-60-end-90_file.json",
		"p/ts_chunk_start-0-end-30_file.json",
		"p/ts_chunk_start-30-end-60_file.json",
	}
	merged := svc.MergeTranscripts(context.Background(), "c", names)

	require.Len(t, merged, 3)
	first, ok := merged[0].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, first, "second_0")
	last, ok := merged[2].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, last, "second_60")
}

func TestMergeTranscriptsSkipsBadFragments(t *testing.T) {
	store := &fakeBlobStore{
		blobs: map[string][]byte{
			"p/ts_chunk_start-0-end-30_file.json":  []byte(`[{"second_0":"ok"}]`),
			"p/ts_chunk_start-30-end-60_file.json": []byte(`{not valid json`),
			"p/ts_chunk_start-60-end-90_file.json": []byte(`[{"second_60":"ok"}]`),
			"p/ts_chunk_start-90-end-99_file.json": []byte(`[]`),
		},
		downErrs: map[string]error{
			"p/ts_chunk_start-90-end-99_file.json": errors.New("storage unavailable"),
		},
	}
	svc := newTranscriptService(store)

	names := []string{
		"p/ts_chunk_start-0-end-30_file.json",
		"p/ts_chunk_start-30-end-60_file.json",
		"p/ts_chunk_start-60-end-90_file.json",
		"p/ts_chunk_start-90-end-99_file.json",
	}
	merged := svc.MergeTranscripts(context.Background(), "c", names)

	// One bad fragment never aborts the merge.
	require.Len(t, merged, 2)
}

func TestMergeTranscriptsFlattensLists(t *testing.T) {
	store := &fakeBlobStore{blobs: map[string][]byte{
		"p/ts_chunk_start-0_file.json":  []byte(`[{"a":"1"},{"b":"2"}]`),
		"p/ts_chunk_start-30_file.json": []byte(`{"c":"3"}`),
	}}
	svc := newTranscriptService(store)

	merged := svc.MergeTranscripts(context.Background(), "c",
		[]string{"p/ts_chunk_start-0_file.json", "p/ts_chunk_start-30_file.json"})

	require.Len(t, merged, 3)
}

func TestBuildVideoContext(t *testing.T) {
	items := []interface{}{
		map[string]interface{}{
			"second_1": "a truck enters",
			"second_0": "gate opens",
		},
	}

	context := BuildVideoContext(items)

	// Keys are rendered in sorted order, each framed by asterisks.
	assert.Equal(t,
		"**************second_0**************\ngate opens\n\n"+
			"**************second_1**************\na truck enters\n\n",
		context)
}

func TestBuildVideoContextSkipsNonObjects(t *testing.T) {
	items := []interface{}{"just a string", 42.0, map[string]interface{}{"k": "v"}}

	context := BuildVideoContext(items)

	assert.Equal(t, "**************k**************\nv\n\n", context)
}

func TestBuildVideoContextEmpty(t *testing.T) {
	assert.Empty(t, BuildVideoContext(nil))
}
