package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/yourorg/playground/pkg/types"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	s := &SQLiteStore{db: db}
	if err := s.Init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Init() error {
	if _, err := s.db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		return err
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS specs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			version TEXT NOT NULL,
			source TEXT NOT NULL,
			raw BLOB NOT NULL,
			endpoint_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS endpoint_configs (
			spec_id TEXT NOT NULL,
			key TEXT NOT NULL,
			seq INTEGER NOT NULL,
			config TEXT NOT NULL,
			PRIMARY KEY(spec_id, key)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_endpoint_spec ON endpoint_configs(spec_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) CreateSpec(title, version, source string, raw []byte) (*types.SpecRecord, error) {
	now := time.Now().UTC()
	id, err := s.nextSpecID(now)
	if err != nil {
		return nil, err
	}
	rec := &types.SpecRecord{ID: id, Title: title, Version: version, Source: source, CreatedAt: now, UpdatedAt: now}
	_, err = s.db.Exec(`INSERT INTO specs(id,title,version,source,raw,endpoint_count,created_at,updated_at) VALUES(?,?,?,?,?,?,?,?)`,
		rec.ID, rec.Title, rec.Version, rec.Source, raw, rec.EndpointCount, rec.CreatedAt, rec.UpdatedAt)
	return rec, err
}

func (s *SQLiteStore) nextSpecID(now time.Time) (string, error) {
	prefix := fmt.Sprintf("spec_%s_", now.Format("20060102"))
	rows, err := s.db.Query(`SELECT id FROM specs WHERE id LIKE ?`, prefix+"%")
	if err != nil {
		return "", err
	}
	defer rows.Close()
	maxN := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		var n int
		_, _ = fmt.Sscanf(id, prefix+"%03d", &n)
		if n > maxN {
			maxN = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, maxN+1), nil
}

func (s *SQLiteStore) GetSpec(id string) (*types.SpecRecord, []byte, error) {
	row := s.db.QueryRow(`SELECT id,title,version,source,raw,endpoint_count,created_at,updated_at FROM specs WHERE id=?`, id)
	var rec types.SpecRecord
	var raw []byte
	if err := row.Scan(&rec.ID, &rec.Title, &rec.Version, &rec.Source, &raw, &rec.EndpointCount, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, nil, err
	}
	return &rec, raw, nil
}

func (s *SQLiteStore) ListSpecs() ([]types.SpecRecord, error) {
	rows, err := s.db.Query(`SELECT id,title,version,source,endpoint_count,created_at,updated_at FROM specs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []types.SpecRecord
	for rows.Next() {
		var rec types.SpecRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Version, &rec.Source, &rec.EndpointCount, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteSpec(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM endpoint_configs WHERE spec_id=?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM specs WHERE id=?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveEndpoints replaces the stored endpoint set for a spec.
func (s *SQLiteStore) SaveEndpoints(specID string, configs []*types.EndpointConfig) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM endpoint_configs WHERE spec_id=?`, specID); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO endpoint_configs(spec_id,key,seq,config) VALUES(?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, cfg := range configs {
		data, err := json.Marshal(cfg)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(specID, cfg.Key, i, string(data)); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`UPDATE specs SET endpoint_count=?, updated_at=? WHERE id=?`, len(configs), time.Now().UTC(), specID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetEndpoint(specID, key string) (*types.EndpointConfig, error) {
	row := s.db.QueryRow(`SELECT config FROM endpoint_configs WHERE spec_id=? AND key=?`, specID, key)
	var data string
	if err := row.Scan(&data); err != nil {
		return nil, err
	}
	var cfg types.EndpointConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *SQLiteStore) ListEndpoints(specID string) ([]*types.EndpointConfig, error) {
	rows, err := s.db.Query(`SELECT config FROM endpoint_configs WHERE spec_id=? ORDER BY seq ASC`, specID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*types.EndpointConfig
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var cfg types.EndpointConfig
		if err := json.Unmarshal([]byte(data), &cfg); err != nil {
			return nil, err
		}
		out = append(out, &cfg)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return errors.New("store is nil")
	}
	return s.db.Close()
}
