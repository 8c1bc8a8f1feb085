// Package storage 保存已生成的計畫。
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrPlanNotFound 指定 ID 的計畫不存在
var ErrPlanNotFound = errors.New("plan not found")

// PlanKind 計畫類型
type PlanKind string

const (
	KindWeek PlanKind = "week"
	KindDay  PlanKind = "day"
)

// StoredPlan 一筆已保存的計畫；Data 為計畫的 JSON
type StoredPlan struct {
	ID          string    `json:"id"`
	Kind        PlanKind  `json:"kind"`
	StartDate   string    `json:"startDate"`
	RequestHash string    `json:"requestHash"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SQLiteStorage 以 SQLite 保存計畫
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage 開啟資料庫並建立結構；":memory:" 使用記憶體資料庫
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// modernc 的記憶體資料庫每個連線各自獨立
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

// Close 關閉資料庫
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Ping 檢查資料庫連線
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS plans (
        id TEXT PRIMARY KEY,
        kind TEXT NOT NULL,
        start_date TEXT NOT NULL,
        request_hash TEXT NOT NULL,
        plan_data TEXT NOT NULL,
        created_at DATETIME NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_plans_created_at ON plans(created_at);
    CREATE INDEX IF NOT EXISTS idx_plans_request_hash ON plans(request_hash);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SavePlan 保存計畫；CreatedAt 為零值時使用目前時間
func (s *SQLiteStorage) SavePlan(ctx context.Context, plan StoredPlan) error {
	if plan.ID == "" {
		return fmt.Errorf("plan id is required")
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}

	query := `
        INSERT INTO plans (id, kind, start_date, request_hash, plan_data, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.ExecContext(ctx, query,
		plan.ID, string(plan.Kind), plan.StartDate, plan.RequestHash, string(plan.Data), plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}
	return nil
}

// GetPlan 依 ID 讀取計畫
func (s *SQLiteStorage) GetPlan(ctx context.Context, id string) (StoredPlan, error) {
	query := `
        SELECT id, kind, start_date, request_hash, plan_data, created_at
        FROM plans
        WHERE id = ?
    `
	plan, err := scanPlan(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return StoredPlan{}, ErrPlanNotFound
	}
	if err != nil {
		return StoredPlan{}, fmt.Errorf("failed to get plan: %w", err)
	}
	return plan, nil
}

// ListRecent 依建立時間由新到舊列出計畫
func (s *SQLiteStorage) ListRecent(ctx context.Context, limit int) ([]StoredPlan, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
        SELECT id, kind, start_date, request_hash, plan_data, created_at
        FROM plans
        ORDER BY created_at DESC, id
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPlan(row scanner) (StoredPlan, error) {
	var plan StoredPlan
	var kind, data string
	if err := row.Scan(&plan.ID, &kind, &plan.StartDate, &plan.RequestHash, &data, &plan.CreatedAt); err != nil {
		return StoredPlan{}, err
	}
	plan.Kind = PlanKind(kind)
	plan.Data = []byte(data)
	return plan, nil
}
