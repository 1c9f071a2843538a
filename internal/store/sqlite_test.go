package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/yourorg/playground/pkg/types"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "playground.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestCreateAndGetSpec(t *testing.T) {
	s := newTestStore(t)

	raw := []byte(`{"openapi":"3.0.0"}`)
	rec, err := s.CreateSpec("Pets", "1.0.0", "pets.json", raw)
	if err != nil {
		t.Fatalf("create spec: %v", err)
	}
	if !strings.HasPrefix(rec.ID, "spec_") {
		t.Fatalf("id = %q", rec.ID)
	}

	got, gotRaw, err := s.GetSpec(rec.ID)
	if err != nil {
		t.Fatalf("get spec: %v", err)
	}
	if got.Title != "Pets" || got.Version != "1.0.0" || got.Source != "pets.json" {
		t.Fatalf("record = %+v", got)
	}
	if string(gotRaw) != string(raw) {
		t.Fatalf("raw = %q", gotRaw)
	}
}

func TestSpecIDsAreSequentialPerDay(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateSpec("A", "1", "a.json", []byte("{}"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := s.CreateSpec("B", "1", "b.json", []byte("{}"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasSuffix(first.ID, "_001") || !strings.HasSuffix(second.ID, "_002") {
		t.Fatalf("ids = %s, %s", first.ID, second.ID)
	}
}

func TestGetSpecMissing(t *testing.T) {
	s := newTestStore(t)
	if _, _, err := s.GetSpec("spec_00000000_001"); err == nil {
		t.Fatalf("want error for missing spec")
	}
}

func TestSaveAndListEndpoints(t *testing.T) {
	s := newTestStore(t)
	rec, err := s.CreateSpec("Pets", "1", "pets.json", []byte("{}"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	configs := []*types.EndpointConfig{
		{Key: "create-pet", Method: "POST", Path: "/pets", Fields: []types.Field{{Name: "name", Kind: types.KindText, Required: true}}},
		{Key: "get-pet", Method: "GET", Path: "/pets/{id}", URLField: &types.URLField{Name: "id"}},
	}
	if err := s.SaveEndpoints(rec.ID, configs); err != nil {
		t.Fatalf("save endpoints: %v", err)
	}

	got, err := s.ListEndpoints(rec.ID)
	if err != nil {
		t.Fatalf("list endpoints: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("endpoints = %d", len(got))
	}
	// Insertion order survives the round trip.
	if got[0].Key != "create-pet" || got[1].Key != "get-pet" {
		t.Fatalf("order = %s, %s", got[0].Key, got[1].Key)
	}
	if got[0].Fields[0].Name != "name" || !got[0].Fields[0].Required {
		t.Fatalf("fields = %+v", got[0].Fields)
	}
	if got[1].URLField == nil || got[1].URLField.Name != "id" {
		t.Fatalf("url field = %+v", got[1].URLField)
	}

	// Endpoint count updates with the save.
	updated, _, err := s.GetSpec(rec.ID)
	if err != nil {
		t.Fatalf("get spec: %v", err)
	}
	if updated.EndpointCount != 2 {
		t.Fatalf("endpoint count = %d", updated.EndpointCount)
	}
}

func TestSaveEndpointsReplaces(t *testing.T) {
	s := newTestStore(t)
	rec, _ := s.CreateSpec("Pets", "1", "pets.json", []byte("{}"))

	if err := s.SaveEndpoints(rec.ID, []*types.EndpointConfig{{Key: "old", Method: "GET", Path: "/old"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveEndpoints(rec.ID, []*types.EndpointConfig{{Key: "new", Method: "GET", Path: "/new"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.ListEndpoints(rec.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Key != "new" {
		t.Fatalf("endpoints = %+v", got)
	}
}

func TestGetEndpoint(t *testing.T) {
	s := newTestStore(t)
	rec, _ := s.CreateSpec("Pets", "1", "pets.json", []byte("{}"))
	_ = s.SaveEndpoints(rec.ID, []*types.EndpointConfig{{Key: "get-pet", Method: "GET", Path: "/pets/{id}"}})

	cfg, err := s.GetEndpoint(rec.ID, "get-pet")
	if err != nil {
		t.Fatalf("get endpoint: %v", err)
	}
	if cfg.Method != "GET" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if _, err := s.GetEndpoint(rec.ID, "absent"); err == nil {
		t.Fatalf("want error for missing endpoint")
	}
}

func TestDeleteSpec(t *testing.T) {
	s := newTestStore(t)
	rec, _ := s.CreateSpec("Pets", "1", "pets.json", []byte("{}"))
	_ = s.SaveEndpoints(rec.ID, []*types.EndpointConfig{{Key: "k", Method: "GET", Path: "/k"}})

	if err := s.DeleteSpec(rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := s.GetSpec(rec.ID); err == nil {
		t.Fatalf("spec should be gone")
	}
	eps, err := s.ListEndpoints(rec.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(eps) != 0 {
		t.Fatalf("endpoints should be gone: %+v", eps)
	}
}

func TestListSpecs(t *testing.T) {
	s := newTestStore(t)
	if specs, err := s.ListSpecs(); err != nil || len(specs) != 0 {
		t.Fatalf("empty store: %v %+v", err, specs)
	}
	_, _ = s.CreateSpec("A", "1", "a.json", []byte("{}"))
	_, _ = s.CreateSpec("B", "1", "b.json", []byte("{}"))
	specs, err := s.ListSpecs()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("specs = %d", len(specs))
	}
}
