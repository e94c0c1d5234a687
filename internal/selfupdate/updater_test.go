package selfupdate

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetNameFor(t *testing.T) {
	tests := []struct {
		goos    string
		goarch  string
		want    string
		wantErr bool
	}{
		{"darwin", "arm64", "chessbook_Darwin_all.tar.gz", false},
		{"darwin", "amd64", "chessbook_Darwin_all.tar.gz", false},
		{"linux", "amd64", "chessbook_Linux_x86_64.tar.gz", false},
		{"linux", "arm64", "chessbook_Linux_arm64.tar.gz", false},
		{"windows", "amd64", "", true},
		{"linux", "riscv64", "", true},
	}
	for _, tt := range tests {
		got, err := assetNameFor(tt.goos, tt.goarch)
		if tt.wantErr {
			assert.Error(t, err, "%s/%s", tt.goos, tt.goarch)
			continue
		}
		require.NoError(t, err, "%s/%s", tt.goos, tt.goarch)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseChecksums(t *testing.T) {
	data := []byte(`abc123  chessbook_Darwin_all.tar.gz
def456  chessbook_Linux_x86_64.tar.gz

malformed line without hash
`)
	sums := parseChecksums(data)
	assert.Equal(t, "abc123", sums["chessbook_Darwin_all.tar.gz"])
	assert.Equal(t, "def456", sums["chessbook_Linux_x86_64.tar.gz"])
	assert.Len(t, sums, 2)
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("release contents")
	sum := sha256.Sum256(data)

	require.NoError(t, verifyChecksum(data, hex.EncodeToString(sum[:])))

	err := verifyChecksum(data, "deadbeef")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChecksum)
}

func makeTarGz(t *testing.T, name string, contents []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Mode:     0o755,
		Size:     int64(len(contents)),
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(contents)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestExtractFromTarGz(t *testing.T) {
	archive := makeTarGz(t, "chessbook", []byte("binary bytes"))

	got, err := extractFromTarGz(archive, "chessbook")
	require.NoError(t, err)
	assert.Equal(t, []byte("binary bytes"), got)

	_, err = extractFromTarGz(archive, "other")
	assert.Error(t, err)
}

func TestExtractFromTarGz_NestedPath(t *testing.T) {
	archive := makeTarGz(t, "dist/chessbook", []byte("nested"))

	got, err := extractFromTarGz(archive, "chessbook")
	require.NoError(t, err)
	assert.Equal(t, []byte("nested"), got)
}

func TestUpdate_DevBuild(t *testing.T) {
	c := NewChecker()
	err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, func(UpdateProgress) {})
	assert.ErrorIs(t, err, ErrDevBuild)
}

func TestUpdate_AlreadyLatest(t *testing.T) {
	c := newTestChecker(t, releaseHandler(t, "v1.0.0"))

	err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
	assert.ErrorIs(t, err, ErrAlreadyLatest)
}

func TestUpdate_FullFlow(t *testing.T) {
	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		t.Skipf("unsupported platform: %v", err)
	}

	newBinary := []byte("#!/bin/true new binary")
	archive := makeTarGz(t, "chessbook", newBinary)
	sum := sha256.Sum256(archive)
	checksums := fmt.Sprintf("%s  %s\n", hex.EncodeToString(sum[:]), asset)

	mux := http.NewServeMux()
	mux.Handle(fmt.Sprintf("/%s/%s/releases/latest", defaultOwner, defaultRepo), releaseHandler(t, "v2.0.0"))
	mux.HandleFunc(fmt.Sprintf("/%s/%s/releases/download/v2.0.0/%s", defaultOwner, defaultRepo, asset),
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(archive)
		})
	mux.HandleFunc(fmt.Sprintf("/%s/%s/releases/download/v2.0.0/checksums.txt", defaultOwner, defaultRepo),
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(checksums))
		})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	target := filepath.Join(t.TempDir(), "chessbook")
	require.NoError(t, os.WriteFile(target, []byte("old binary"), 0o755))

	c := NewChecker(WithBaseURLs(srv.URL, srv.URL))
	c.execPath = func() (string, error) { return target, nil }

	var stages []string
	err = c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
		stages = append(stages, p.Stage)
	})
	require.NoError(t, err)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, newBinary, got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
}

func TestUpdate_ChecksumMismatch(t *testing.T) {
	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		t.Skipf("unsupported platform: %v", err)
	}

	archive := makeTarGz(t, "chessbook", []byte("binary"))

	mux := http.NewServeMux()
	mux.HandleFunc(fmt.Sprintf("/%s/%s/releases/download/v2.0.0/%s", defaultOwner, defaultRepo, asset),
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(archive)
		})
	mux.HandleFunc(fmt.Sprintf("/%s/%s/releases/download/v2.0.0/checksums.txt", defaultOwner, defaultRepo),
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, "%s  %s\n", "0000000000000000000000000000000000000000000000000000000000000000", asset)
		})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewChecker(WithBaseURLs(srv.URL, srv.URL))
	err = c.Update(context.Background(),
		&UpdateInput{CurrentVersion: "v1.0.0", TargetVersion: "v2.0.0"},
		func(UpdateProgress) {})
	assert.ErrorIs(t, err, ErrChecksum)
}
