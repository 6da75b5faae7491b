package cli

import (
	"context"
	"fmt"

	"github.com/inkwell-tools/bionify/internal/core/domain"
	"github.com/inkwell-tools/bionify/internal/core/ports/driving"
)

// mockConverterService implements driving.ConverterService for testing.
type mockConverterService struct {
	lastJob     domain.ConversionJob
	report      *domain.ConversionReport
	err         error
	emitEntries int
}

func (m *mockConverterService) Convert(
	_ context.Context, job domain.ConversionJob, onProgress domain.ProgressFunc,
) (*domain.ConversionReport, error) {
	m.lastJob = job
	if m.err != nil {
		return nil, m.err
	}
	if onProgress != nil {
		for i := 1; i <= m.emitEntries; i++ {
			onProgress(domain.ProgressEvent{
				JobID:   job.ID,
				Percent: i * 100 / m.emitEntries,
				Entry:   fmt.Sprintf("entry-%d", i),
				Index:   i,
				Total:   m.emitEntries,
			})
		}
	}
	report := m.report
	if report == nil {
		report = &domain.ConversionReport{
			ID:         job.ID,
			InputPath:  job.InputPath,
			OutputPath: job.OutputPath,
		}
	}
	return report, nil
}

func (m *mockConverterService) Status(_ string) (*driving.ConversionStatus, bool) {
	return nil, false
}

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	records   []domain.ConversionRecord
	lastLimit int
	cleared   bool
	err       error
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.ConversionRecord, error) {
	m.lastLimit = limit
	return m.records, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	m.cleared = true
	return m.err
}

// mockConfigStore implements driven.ConfigStore backed by a map.
type mockConfigStore struct {
	values map[string]any
	path   string
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: make(map[string]any), path: "/tmp/bionify-test/config.toml"}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	if v, ok := m.values[key].([]string); ok {
		return v
	}
	return nil
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return m.path
}
