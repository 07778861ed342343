package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/mocks"
)

const testTemplateID = "9a1b3c40-0000-0000-0000-000000000003"

func newTestEmailTemplateService(t *testing.T, repo *mocks.MockEmailTemplateRepository) *EmailTemplateService {
	t.Helper()
	svc, err := NewEmailTemplateService(EmailTemplateServiceOptions{Repo: repo})
	require.NoError(t, err)
	return svc
}

func testTemplate(status model.ApplicationStatus) *model.EmailTemplate {
	return &model.EmailTemplate{
		ID:        testTemplateID,
		Status:    status,
		Subject:   "Your application update",
		Body:      "<p>Hello</p>",
		CreatedAt: time.Now().UTC(),
	}
}

func TestNewEmailTemplateService_RequiredDependency(t *testing.T) {
	svc, err := NewEmailTemplateService(EmailTemplateServiceOptions{Repo: nil})

	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "EmailTemplateRepository is required")
}

func TestEmailTemplateService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockEmailTemplateRepository(ctrl)
	svc := newTestEmailTemplateService(t, repo)

	req := model.CreateEmailTemplateRequest{
		Status:  "approved",
		Subject: "Your application update",
		Body:    "<p>Hello</p>",
	}
	repo.EXPECT().Create(gomock.Any(), req).Return(testTemplate(model.ApplicationStatusApproved), nil)

	tpl, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusApproved, tpl.Status)
}

func TestEmailTemplateService_Create_DuplicateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockEmailTemplateRepository(ctrl)
	svc := newTestEmailTemplateService(t, repo)

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.Conflict("a template for this status already exists"))

	_, err := svc.Create(context.Background(), model.CreateEmailTemplateRequest{
		Status:  "approved",
		Subject: "s",
		Body:    "b",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestEmailTemplateService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockEmailTemplateRepository(ctrl)
	svc := newTestEmailTemplateService(t, repo)

	subject := "New subject"
	req := model.UpdateEmailTemplateRequest{Subject: &subject}
	repo.EXPECT().
		Update(gomock.Any(), testTemplateID, req).
		Return(testTemplate(model.ApplicationStatusApproved), nil)

	_, err := svc.Update(context.Background(), testTemplateID, req)

	require.NoError(t, err)
}

func TestEmailTemplateService_Delete_Missing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockEmailTemplateRepository(ctrl)
	svc := newTestEmailTemplateService(t, repo)

	repo.EXPECT().Delete(gomock.Any(), testTemplateID).Return(false, nil)

	err := svc.Delete(context.Background(), testTemplateID)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEmailTemplateService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockEmailTemplateRepository(ctrl)
	svc := newTestEmailTemplateService(t, repo)

	repo.EXPECT().List(gomock.Any(), 10, 0).Return([]*model.EmailTemplate{
		testTemplate(model.ApplicationStatusApplied),
		testTemplate(model.ApplicationStatusApproved),
	}, nil)

	out, err := svc.List(context.Background(), 10, 0)

	require.NoError(t, err)
	assert.Len(t, out, 2)
}
