package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xhhuango/json"
)

// Dashboard is the saved key-value store of UI inputs (last spot, strike,
// model choice and so on). Values are kept as decoded JSON.
type Dashboard map[string]any

// LoadDashboard reads path. A missing file yields an empty dashboard.
func LoadDashboard(path string) (Dashboard, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Dashboard{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard: %w", err)
	}

	d := Dashboard{}
	if len(data) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard %s: %w", path, err)
	}
	return d, nil
}

// SaveDashboard writes d to path through a temporary file so a crash never
// leaves a truncated store behind.
func SaveDashboard(path string, d Dashboard) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".dashboard-*.json")
	if err != nil {
		return fmt.Errorf("failed to save dashboard: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save dashboard: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save dashboard: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// UpdateDashboard merges values into the dashboard at path and persists the
// whole store.
func UpdateDashboard(path string, values Dashboard) error {
	d, err := LoadDashboard(path)
	if err != nil {
		return err
	}
	for k, v := range values {
		d[k] = v
	}
	return SaveDashboard(path, d)
}

func (d Dashboard) Float(key string, fallback float64) float64 {
	if v, ok := d[key].(float64); ok {
		return v
	}
	return fallback
}

func (d Dashboard) String(key, fallback string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return fallback
}
