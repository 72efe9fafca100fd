package config

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/tildaslashalef/indentwise/internal/loggy"
)

// Setting keys for analyzer overrides persisted in the database
const (
	SettingTabWidth   = "analyzer.tab_width"
	SettingIndentUnit = "analyzer.indent_unit"
)

// SettingsService provides operations for managing persisted settings.
// Database values override the environment-derived analyzer configuration,
// and per-workspace keys override the global ones.
type SettingsService struct {
	repo   SettingsRepository
	config *Config
	logger *loggy.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(db *sql.DB, config *Config, logger *loggy.Logger) *SettingsService {
	return NewSettingsServiceWithRepository(NewSQLSettingsRepository(db, logger), config, logger)
}

// NewSettingsServiceWithRepository creates a settings service with a specific
// repository, mainly for testing
func NewSettingsServiceWithRepository(repo SettingsRepository, config *Config, logger *loggy.Logger) *SettingsService {
	return &SettingsService{
		repo:   repo,
		config: config,
		logger: logger,
	}
}

// LoadAnalyzerSettings folds persisted analyzer settings into the Config
func (s *SettingsService) LoadAnalyzerSettings(ctx context.Context) error {
	settings, err := s.repo.GetSettings(ctx, "analyzer.")
	if err != nil {
		return fmt.Errorf("loading analyzer settings: %w", err)
	}

	if v, ok := settings[SettingTabWidth]; ok {
		if width, err := strconv.Atoi(v); err == nil && width > 0 {
			s.config.Analyzer.TabWidth = width
		}
	}

	if v, ok := settings[SettingIndentUnit]; ok {
		if unit, err := strconv.Atoi(v); err == nil && unit >= 0 {
			s.config.Analyzer.IndentUnit = unit
		}
	}

	return nil
}

// SaveAnalyzerSettings persists the analyzer section of the Config
func (s *SettingsService) SaveAnalyzerSettings(ctx context.Context) error {
	if err := s.repo.SetSetting(ctx, SettingTabWidth, strconv.Itoa(s.config.Analyzer.TabWidth)); err != nil {
		return err
	}
	return s.repo.SetSetting(ctx, SettingIndentUnit, strconv.Itoa(s.config.Analyzer.IndentUnit))
}

// WorkspaceIndentUnit returns the persisted indent-unit override for a
// workspace, or zero when none is set.
func (s *SettingsService) WorkspaceIndentUnit(ctx context.Context, workspaceID string) (int, error) {
	v, err := s.repo.GetSetting(ctx, workspaceKey(workspaceID, "indent_unit"))
	if err != nil || v == "" {
		return 0, err
	}

	unit, err := strconv.Atoi(v)
	if err != nil || unit < 0 {
		s.logger.Warn("Ignoring invalid workspace indent unit", "workspace", workspaceID, "value", v)
		return 0, nil
	}
	return unit, nil
}

// SetWorkspaceIndentUnit persists an indent-unit override for a workspace
func (s *SettingsService) SetWorkspaceIndentUnit(ctx context.Context, workspaceID string, unit int) error {
	return s.repo.SetSetting(ctx, workspaceKey(workspaceID, "indent_unit"), strconv.Itoa(unit))
}

// ClearWorkspaceIndentUnit removes the indent-unit override of a workspace
func (s *SettingsService) ClearWorkspaceIndentUnit(ctx context.Context, workspaceID string) error {
	return s.repo.DeleteSetting(ctx, workspaceKey(workspaceID, "indent_unit"))
}

// EffectiveIndentUnit resolves the indent unit for checking one workspace.
// An explicitly requested unit wins, then the persisted workspace override,
// then the global configuration. Settings lookup failures fall back to the
// global value.
func (s *SettingsService) EffectiveIndentUnit(ctx context.Context, workspaceID string, explicit int) int {
	if explicit > 0 {
		return explicit
	}

	unit, err := s.WorkspaceIndentUnit(ctx, workspaceID)
	if err != nil {
		s.logger.Warn("Failed to read workspace indent unit", "workspace", workspaceID, "error", err)
		return s.config.Analyzer.IndentUnit
	}
	if unit > 0 {
		return unit
	}
	return s.config.Analyzer.IndentUnit
}

func workspaceKey(workspaceID, name string) string {
	return "workspace." + workspaceID + "." + name
}
