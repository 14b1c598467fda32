package service

import (
	"context"
	"errors"
	"os"
	"sync"

	"resume-intake/internal/domain"
)

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{messages: []string{}}
}

func (m *MockLogger) record(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.record("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	if err != nil {
		msg += " - " + err.Error()
	}
	m.record("ERROR: " + msg)
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.record("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.record("WARN: " + msg)
}

// MockPageExtractor records the temp file it was handed and whether it
// existed during the call.
type MockPageExtractor struct {
	pages       []string
	err         error
	path        string
	existed     bool
	contentSeen []byte
}

func (m *MockPageExtractor) ExtractPages(ctx context.Context, path string) ([]string, error) {
	m.path = path
	if data, err := os.ReadFile(path); err == nil {
		m.existed = true
		m.contentSeen = data
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.pages, nil
}

type MockResumeRepository struct {
	records   []*domain.ResumeRecord
	onboarded map[int64]bool
	saveErr   error
	markErr   error
	nextID    int64
}

func NewMockResumeRepository() *MockResumeRepository {
	return &MockResumeRepository{onboarded: make(map[int64]bool)}
}

func (m *MockResumeRepository) Save(ctx context.Context, record *domain.ResumeRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.nextID++
	record.ID = m.nextID
	m.records = append(m.records, record)
	return nil
}

func (m *MockResumeRepository) GetLatestByUserID(ctx context.Context, userID int64) (*domain.ResumeRecord, error) {
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].UserID == userID {
			return m.records[i], nil
		}
	}
	return nil, domain.ErrResumeNotFound
}

func (m *MockResumeRepository) MarkOnboarded(ctx context.Context, userID int64) error {
	if m.markErr != nil {
		return m.markErr
	}
	m.onboarded[userID] = true
	return nil
}

type MockEventPublisher struct {
	events []*domain.ResumeProcessedEvent
	err    error
}

func (m *MockEventPublisher) PublishResumeProcessed(ctx context.Context, event *domain.ResumeProcessedEvent) error {
	m.events = append(m.events, event)
	return m.err
}

func (m *MockEventPublisher) Close() error { return nil }

type MockFieldExtractor struct {
	fields *domain.ResumeFields
	err    error
	calls  int
}

func (m *MockFieldExtractor) Extract(ctx context.Context, text string) (*domain.ResumeFields, error) {
	m.calls++
	return m.fields, m.err
}

type MockGenerativeModel struct {
	name     string
	response string
	err      error
	prompts  []string
}

func (m *MockGenerativeModel) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

// MockModelProvider instantiates only the models listed in available.
type MockModelProvider struct {
	available map[string]*MockGenerativeModel
	requested []string
}

func NewMockModelProvider(models ...*MockGenerativeModel) *MockModelProvider {
	p := &MockModelProvider{available: make(map[string]*MockGenerativeModel)}
	for _, m := range models {
		p.available[m.name] = m
	}
	return p
}

func (p *MockModelProvider) Model(name string) (domain.GenerativeModel, error) {
	p.requested = append(p.requested, name)
	if m, ok := p.available[name]; ok {
		return m, nil
	}
	return nil, errors.New("model not found: " + name)
}

func (p *MockModelProvider) Close() error { return nil }
