// Package mocks provides mock implementations for testing the careers backend.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockJobRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(job, nil)
package mocks

// Generate mock for JobRepository interface from internal/core package.
// This creates MockJobRepository with methods for all JobRepository interface methods:
// Create, GetByID, List, ListWithOptions, Update, UpdateStatus, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_repository_mock.go github.com/jobdeck/careers-api/internal/core JobRepository

// Generate mock for ApplicationRepository interface from internal/core package.
// This creates MockApplicationRepository with methods for all ApplicationRepository interface methods:
// Create, GetByID, ListByEmail, CountDistinctApplicants, Delete, TransitionStatus, EnqueueNotification
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=application_repository_mock.go github.com/jobdeck/careers-api/internal/core ApplicationRepository

// Generate mock for EmailTemplateRepository interface from internal/core package.
// This creates MockEmailTemplateRepository with methods for all EmailTemplateRepository interface methods:
// Create, GetByID, GetByStatus, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=email_template_repository_mock.go github.com/jobdeck/careers-api/internal/core EmailTemplateRepository

// Generate mock for NotificationRepository interface from internal/core package.
// This creates MockNotificationRepository with methods for all NotificationRepository interface methods:
// ProcessPending, GetByID, ListByApplication
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=notification_repository_mock.go github.com/jobdeck/careers-api/internal/core NotificationRepository

// Generate mock for RoleRepository interface from internal/core package.
// This creates MockRoleRepository with methods for all RoleRepository interface methods:
// GetRole
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=role_repository_mock.go github.com/jobdeck/careers-api/internal/core RoleRepository

// Generate mock for BlogRepository interface from internal/core package.
// This creates MockBlogRepository with methods for all BlogRepository interface methods:
// Create, GetByID, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=blog_repository_mock.go github.com/jobdeck/careers-api/internal/core BlogRepository

// Generate mock for EmailSender interface from internal/ports package.
// This creates MockEmailSender with methods for all EmailSender interface methods:
// Send
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=email_sender_mock.go github.com/jobdeck/careers-api/internal/ports EmailSender

// Generate mock for ObjectStore interface from internal/ports package.
// This creates MockObjectStore with methods for all ObjectStore interface methods:
// Put
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=object_store_mock.go github.com/jobdeck/careers-api/internal/ports ObjectStore
