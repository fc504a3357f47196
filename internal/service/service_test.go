package service

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vbonduro/fishedex/internal/db"
	"github.com/vbonduro/fishedex/internal/domain"
	"github.com/vbonduro/fishedex/internal/weather"
)

// stubPhotoStore is a minimal in-memory photostore.PhotoStore for tests.
type stubPhotoStore struct {
	saved   map[string][]byte
	deleted []string
	saveErr error
	n       int
}

func newStubPhotoStore() *stubPhotoStore {
	return &stubPhotoStore{saved: make(map[string][]byte)}
}

func (s *stubPhotoStore) Save(_ context.Context, kind, _ string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, _ := io.ReadAll(r)
	s.n++
	key := kind + "/" + string(rune('a'+s.n-1)) + ".jpg"
	s.saved[key] = data
	return key, nil
}

func (s *stubPhotoStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := s.saved[key]
	if !ok {
		return nil, "", domain.NotFound("Image file")
	}
	return io.NopCloser(bytes.NewReader(data)), "image/jpeg", nil
}

func (s *stubPhotoStore) Delete(_ context.Context, key string) error {
	delete(s.saved, key)
	s.deleted = append(s.deleted, key)
	return nil
}

// stubLookup records the query and returns a canned report.
type stubLookup struct {
	query  weather.Query
	calls  int
	report *weather.Report
	err    error
}

func (s *stubLookup) Lookup(_ context.Context, q weather.Query) (*weather.Report, error) {
	s.calls++
	s.query = q
	return s.report, s.err
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func float(v float64) *float64 { return &v }
