package domain

import "context"

// PageTextExtractor returns the text of every page of the PDF stored at path.
type PageTextExtractor interface {
	ExtractPages(ctx context.Context, path string) ([]string, error)
}

// GenerativeModel is a single instantiated model able to answer a text prompt.
type GenerativeModel interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ModelProvider instantiates models by identifier. Model returns an error when
// the identifier cannot be used with this provider.
type ModelProvider interface {
	Model(name string) (GenerativeModel, error)
	Close() error
}

// FieldExtractor derives ResumeFields from resume text and may fail.
type FieldExtractor interface {
	Extract(ctx context.Context, text string) (*ResumeFields, error)
}

// ResumeRepository defines the storage operations for processed resumes
type ResumeRepository interface {
	Save(ctx context.Context, record *ResumeRecord) error
	GetLatestByUserID(ctx context.Context, userID int64) (*ResumeRecord, error)
	MarkOnboarded(ctx context.Context, userID int64) error
}

// EventPublisher notifies other services about processed resumes.
type EventPublisher interface {
	PublishResumeProcessed(ctx context.Context, event *ResumeProcessedEvent) error
	Close() error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetTempDir() string
	GetPDFEngine() string
	GetAIProvider() string
	GetAIModels() []string
	GetGenAIAPIKey() string
	GetGoogleCloudProject() string
	GetGoogleCloudLocation() string
	GetOpenAIAPIKey() string
	GetOpenAIBaseURL() string
	GetDatabaseURL() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetRabbitMQURL() string
	GetAllowedOrigins() []string
}

// ResumeService processes uploads and serves stored resumes
type ResumeService interface {
	Upload(ctx context.Context, user SessionUser, doc ResumeDocument) (*ResumeRecord, error)
	Latest(ctx context.Context, userID int64) (*ResumeRecord, error)
}
