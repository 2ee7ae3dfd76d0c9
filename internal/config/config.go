package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/notify"
	"github.com/alexanderramin/coursepulse/internal/progress"
	"github.com/alexanderramin/coursepulse/internal/service"
	"github.com/joho/godotenv"
)

// Config holds the site-level options of a coursepulse installation.
type Config struct {
	DBPath              string
	BaseURL             string
	WrapAfter           int
	LongBars            domain.BarMode
	OrderBy             domain.OrderBy
	ShowNow             bool
	AvailabilityEnabled bool
	SubmitLearnerMin    int
	SubmitGraderMax     int
	LogUseCases         bool
	ReviewDays          int
	// OutboxPath receives sent notifications; empty means standard output.
	OutboxPath string
}

// DefaultConfig returns the host defaults. DBPath is left empty and resolved
// by LoadConfig.
func DefaultConfig() Config {
	policy := progress.DefaultActionPolicy()
	return Config{
		WrapAfter:           progress.DefaultWrapAfter,
		LongBars:            domain.BarSqueeze,
		OrderBy:             domain.OrderByTime,
		ShowNow:             true,
		AvailabilityEnabled: true,
		SubmitLearnerMin:    policy.SubmitLearnerMin,
		SubmitGraderMax:     policy.SubmitGraderMax,
		ReviewDays:          notify.DefaultReviewDays,
	}
}

// LoadDotEnv copies KEY=VALUE lines from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// LoadConfig reads configuration from environment variables, falling back to
// defaults for unset or invalid values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("COURSEPULSE_DB")
	if cfg.DBPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DBPath = filepath.Join(home, ".coursepulse", "coursepulse.db")
		}
	}
	if v := os.Getenv("COURSEPULSE_BASE_URL"); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("COURSEPULSE_WRAP_AFTER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WrapAfter = n
		}
	}
	if v := os.Getenv("COURSEPULSE_LONG_BARS"); v != "" {
		if mode, ok := ParseBarMode(v); ok {
			cfg.LongBars = mode
		}
	}
	if v := os.Getenv("COURSEPULSE_ORDER_BY"); v != "" {
		if order, ok := ParseOrderBy(v); ok {
			cfg.OrderBy = order
		}
	}
	if v := os.Getenv("COURSEPULSE_SHOW_NOW"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ShowNow = b
		}
	}
	if v := os.Getenv("COURSEPULSE_ENABLE_AVAILABILITY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AvailabilityEnabled = b
		}
	}
	applyPercentEnv(&cfg.SubmitLearnerMin, "COURSEPULSE_SUBMIT_LEARNER_MIN")
	applyPercentEnv(&cfg.SubmitGraderMax, "COURSEPULSE_SUBMIT_GRADER_MAX")
	if v := os.Getenv("COURSEPULSE_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("COURSEPULSE_REVIEW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ReviewDays = n
		}
	}

	cfg.OutboxPath = os.Getenv("COURSEPULSE_OUTBOX")

	return cfg
}

// Layout returns the bar layout implied by the site options.
func (c Config) Layout() progress.LayoutConfig {
	layout := progress.DefaultLayoutConfig()
	layout.OrderBy = c.OrderBy
	layout.Mode = c.LongBars
	layout.WrapAfter = c.WrapAfter
	layout.ShowNow = c.ShowNow
	return layout
}

// Settings returns the options the service layer needs.
func (c Config) Settings() service.Settings {
	s := service.DefaultSettings()
	s.BaseURL = c.BaseURL
	s.AvailabilityEnabled = c.AvailabilityEnabled
	s.Policy.SubmitLearnerMin = c.SubmitLearnerMin
	s.Policy.SubmitGraderMax = c.SubmitGraderMax
	s.ReviewDays = c.ReviewDays
	return s
}

// ParseBarMode accepts the long-bar mode names case-insensitively.
func ParseBarMode(v string) (domain.BarMode, bool) {
	switch mode := domain.BarMode(strings.ToLower(strings.TrimSpace(v))); mode {
	case domain.BarSqueeze, domain.BarScroll, domain.BarWrap:
		return mode, true
	}
	return "", false
}

// ParseOrderBy accepts "orderbytime"/"orderbycourse" and the short forms
// "time"/"course".
func ParseOrderBy(v string) (domain.OrderBy, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case string(domain.OrderByTime), "time":
		return domain.OrderByTime, true
	case string(domain.OrderByCourse), "course":
		return domain.OrderByCourse, true
	}
	return "", false
}

func applyPercentEnv(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 100 {
		return
	}
	*dst = n
}
