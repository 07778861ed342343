package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationStatus(t *testing.T) {
	status, err := ParseApplicationStatus("Under_Review")
	require.NoError(t, err)
	assert.Equal(t, ApplicationStatusUnderReview, status)

	status, err = ParseApplicationStatus(" approved ")
	require.NoError(t, err)
	assert.Equal(t, ApplicationStatusApproved, status)

	_, err = ParseApplicationStatus("shortlisted")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid application status")
}

func TestSubmitApplicationRequestValidate(t *testing.T) {
	valid := SubmitApplicationRequest{
		JobID:          "6cb5b631-4ec1-4e8c-a172-1dd29adcbf8b",
		UserID:         "user-1",
		ApplicantEmail: "dev@example.com",
		ApplicantName:  "Jordan Doe",
	}
	assert.NoError(t, valid.Validate())

	missingJob := valid
	missingJob.JobID = ""
	assert.Error(t, missingJob.Validate())

	badEmail := valid
	badEmail.ApplicantEmail = "not-an-email"
	assert.Error(t, badEmail.Validate())

	missingEmail := valid
	missingEmail.ApplicantEmail = "  "
	assert.Error(t, missingEmail.Validate())

	missingName := valid
	missingName.ApplicantName = ""
	assert.Error(t, missingName.Validate())
}
