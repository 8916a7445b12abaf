package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/saju_scribe/internal/config"
	"github.com/iWorld-y/saju_scribe/internal/model"
)

// Storage 报告归档存储（可选组件，db 配置缺省时整个不启用）
type Storage struct {
	db *sql.DB
}

func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	query := `CREATE TABLE IF NOT EXISTS saju_reports (
		id SERIAL PRIMARY KEY,
		uid TEXT NOT NULL,
		name TEXT NOT NULL,
		ilju TEXT,
		pillars TEXT,
		report TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to execute query %s: %w", query, err)
	}
	return nil
}

// ArchivedReport 归档记录；列表查询不回读报告正文
type ArchivedReport struct {
	ID        int       `json:"id"`
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Ilju      string    `json:"ilju"`
	Pillars   string    `json:"pillars"`
	Report    string    `json:"report,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveReport 追加一条归档记录
func (s *Storage) SaveReport(rep *model.Report) error {
	_, err := s.db.Exec(`
		INSERT INTO saju_reports (uid, name, ilju, pillars, report)
		VALUES ($1, $2, $3, $4, $5)`,
		rep.UID, rep.Name, rep.Ilju, rep.Pillars.String(), rep.Text)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// ListReports 按时间倒序列出最近的归档摘要
func (s *Storage) ListReports(limit int) ([]ArchivedReport, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, uid, name, ilju, pillars, created_at
		FROM saju_reports ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []ArchivedReport
	for rows.Next() {
		var r ArchivedReport
		if err := rows.Scan(&r.ID, &r.UID, &r.Name, &r.Ilju, &r.Pillars, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// GetReport 取单条归档（含正文）
func (s *Storage) GetReport(id int) (*ArchivedReport, error) {
	var r ArchivedReport
	err := s.db.QueryRow(`
		SELECT id, uid, name, ilju, pillars, report, created_at
		FROM saju_reports WHERE id = $1`, id).
		Scan(&r.ID, &r.UID, &r.Name, &r.Ilju, &r.Pillars, &r.Report, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get report %d: %w", id, err)
	}
	return &r, nil
}
