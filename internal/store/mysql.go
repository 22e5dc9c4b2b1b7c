// Package store is the data-access layer: call metadata and diarization
// payloads live in MySQL, with timelines occasionally stored behind URLs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"call-insights-go/internal/diarization"
	"call-insights-go/internal/transcript"
	"call-insights-go/internal/types"
)

// ErrCallNotFound is returned when a call ID has no row.
var ErrCallNotFound = errors.New("call not found")

// Config holds the MySQL connection settings.
type Config struct {
	Host            string
	Port            int
	Database        string
	Username        string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Filter narrows the report call listing. MinDuration guards against short
// calls that carry no usable conversation; zero means the default 30s.
type Filter struct {
	DateFrom    time.Time
	DateTo      time.Time
	Manager     string
	Department  string
	MinDuration float64
}

const defaultMinDuration = 30

// Store reads calls and diarization payloads from MySQL.
type Store struct {
	db      *sql.DB
	fetcher *transcript.Client
	log     *logrus.Entry
}

// New opens the connection pool and verifies it with a ping.
func New(ctx context.Context, cfg Config, log *logrus.Entry) (*Store, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{
		db:      db,
		fetcher: transcript.NewClient(),
		log:     log.WithField("component", "store"),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetCall loads one call's metadata and its parsed timeline.
func (s *Store) GetCall(ctx context.Context, callID string) (types.CallInfo, types.Timeline, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT call_id, manager_name, department, duration, call_date, diarization
		FROM calls
		WHERE call_id = ?`, callID)

	info, tl, err := s.scanCall(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.CallInfo{}, nil, ErrCallNotFound
	}
	if err != nil {
		return types.CallInfo{}, nil, fmt.Errorf("load call %s: %w", callID, err)
	}
	return info, tl, nil
}

// ListReportCalls returns the calls feeding the communication report,
// applying the report's filtering policy: audio longer than the minimum and
// a declared speaker count of at least 2. Rows whose diarization payload
// does not parse are skipped with a warning instead of failing the report.
func (s *Store) ListReportCalls(ctx context.Context, f Filter) ([]diarization.CallSample, error) {
	minDur := f.MinDuration
	if minDur == 0 {
		minDur = defaultMinDuration
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT call_id, manager_name, department, duration, call_date, diarization
		FROM calls
		WHERE duration > ?`)
	args := []any{minDur}
	if !f.DateFrom.IsZero() {
		sb.WriteString(" AND call_date >= ?")
		args = append(args, f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		sb.WriteString(" AND call_date < ?")
		args = append(args, f.DateTo)
	}
	if f.Manager != "" {
		sb.WriteString(" AND manager_name = ?")
		args = append(args, f.Manager)
	}
	if f.Department != "" {
		sb.WriteString(" AND department = ?")
		args = append(args, f.Department)
	}
	sb.WriteString(" ORDER BY call_date")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list report calls: %w", err)
	}
	defer rows.Close()

	var out []diarization.CallSample
	for rows.Next() {
		info, tl, err := s.scanCall(ctx, rows)
		if err != nil {
			s.log.WithError(err).Warn("skipping call with bad diarization")
			continue
		}
		if info.Speakers < 2 {
			continue
		}
		out = append(out, diarization.CallSample{
			Manager:    info.Manager,
			Department: info.Department,
			Timeline:   tl,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list report calls: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanCall(ctx context.Context, r rowScanner) (types.CallInfo, types.Timeline, error) {
	var info types.CallInfo
	var dept sql.NullString
	var raw []byte
	if err := r.Scan(&info.CallID, &info.Manager, &dept, &info.Duration, &info.CallDate, &raw); err != nil {
		return types.CallInfo{}, nil, err
	}
	info.Department = dept.String

	// older rows store a URL to the transcription service output instead
	// of the inline payload
	if u := strings.TrimSpace(string(raw)); strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		fetched, err := s.fetcher.Fetch(ctx, u)
		if err != nil {
			return types.CallInfo{}, nil, fmt.Errorf("fetch diarization: %w", err)
		}
		raw = fetched
	}

	payload, err := ParseDiarization(raw)
	if err != nil {
		return types.CallInfo{}, nil, err
	}
	info.Speakers = payload.SpeakersCount
	return info, payload.Segments, nil
}
