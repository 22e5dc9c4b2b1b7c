package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"call-insights-go/internal/logger"
	"call-insights-go/internal/report"
	"call-insights-go/internal/store"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "call-insights-go").Info("starting service")

	dbPort, _ := strconv.Atoi(envOr("DB_PORT", "3306"))
	cfg := store.Config{
		Host:            envOr("DB_HOST", "127.0.0.1"),
		Port:            dbPort,
		Database:        envOr("DB_NAME", "callcenter"),
		Username:        envOr("DB_USER", "root"),
		Password:        os.Getenv("DB_PASSWORD"),
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
	st, err := store.New(context.Background(), cfg, log.Entry)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer st.Close()
	log.WithField("db_host", cfg.Host).Info("database connected")

	svc := report.NewService(st, log.Entry)

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})

	// per-call communication metrics
	mux.HandleFunc("/call-metrics", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "call-metrics")
		callID := r.URL.Query().Get("call_id")
		if callID == "" {
			reqLog.Warn("missing call_id")
			http.Error(w, "missing call_id", http.StatusBadRequest)
			return
		}
		res, err := svc.CallMetrics(r.Context(), callID)
		if err != nil {
			writeError(w, reqLog, err)
			return
		}
		writeJSON(w, reqLog, res)
	})

	// checklist criterion highlighting
	mux.HandleFunc("/checklist-match", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "checklist-match")
		callID := r.URL.Query().Get("call_id")
		criterionID := r.URL.Query().Get("criterion")
		if callID == "" || criterionID == "" {
			reqLog.Warn("missing call_id or criterion")
			http.Error(w, "missing call_id or criterion", http.StatusBadRequest)
			return
		}
		res, err := svc.ChecklistMatch(r.Context(), callID, criterionID)
		if err != nil {
			writeError(w, reqLog, err)
			return
		}
		writeJSON(w, reqLog, res)
	})

	// manager ranking
	mux.HandleFunc("/communication-report", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "communication-report")
		f, limit, err := reportParams(r)
		if err != nil {
			reqLog.WithError(err).Warn("bad report params")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		start := time.Now()
		aggs, err := svc.CommunicationReport(r.Context(), f, limit)
		if err != nil {
			writeError(w, reqLog, err)
			return
		}
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("report built")
		writeJSON(w, reqLog, aggs)
	})

	// same report as an Excel download
	mux.HandleFunc("/communication-report/export", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "report-export")
		f, limit, err := reportParams(r)
		if err != nil {
			reqLog.WithError(err).Warn("bad report params")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		aggs, err := svc.CommunicationReport(r.Context(), f, limit)
		if err != nil {
			writeError(w, reqLog, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="communication_report.xlsx"`)
		if err := report.WriteXLSX(w, aggs); err != nil {
			reqLog.WithError(err).Error("failed to write workbook")
		}
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func reportParams(r *http.Request) (store.Filter, int, error) {
	var f store.Filter
	q := r.URL.Query()
	if v := q.Get("date_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, 0, fmt.Errorf("bad date_from: %v", err)
		}
		f.DateFrom = t
	}
	if v := q.Get("date_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, 0, fmt.Errorf("bad date_to: %v", err)
		}
		f.DateTo = t
	}
	f.Manager = q.Get("manager")
	f.Department = q.Get("department")
	limit := 10
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, 0, fmt.Errorf("bad limit: %v", err)
		}
		limit = n
	}
	return f, limit, nil
}

func writeJSON(w http.ResponseWriter, reqLog *logrus.Entry, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		reqLog.WithError(err).Error("failed to write response")
	}
}

func writeError(w http.ResponseWriter, reqLog *logrus.Entry, err error) {
	if errors.Is(err, store.ErrCallNotFound) {
		http.Error(w, "call not found", http.StatusNotFound)
		return
	}
	reqLog.WithError(err).Warn("request failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
