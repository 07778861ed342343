package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateEmailTemplateRequestValidate(t *testing.T) {
	valid := CreateEmailTemplateRequest{
		Status:  "approved",
		Subject: "Your application was approved",
		Body:    "<p>Congratulations!</p>",
	}
	assert.NoError(t, valid.Validate())

	badStatus := valid
	badStatus.Status = "accepted"
	assert.Error(t, badStatus.Validate())

	noSubject := valid
	noSubject.Subject = " "
	assert.Error(t, noSubject.Validate())

	noBody := valid
	noBody.Body = ""
	assert.Error(t, noBody.Validate())
}

func TestUpdateEmailTemplateRequestValidate(t *testing.T) {
	empty := UpdateEmailTemplateRequest{}
	assert.Error(t, empty.Validate())

	subject := "Updated subject"
	assert.NoError(t, (&UpdateEmailTemplateRequest{Subject: &subject}).Validate())

	blank := "  "
	assert.Error(t, (&UpdateEmailTemplateRequest{Subject: &blank}).Validate())
	assert.Error(t, (&UpdateEmailTemplateRequest{Body: &blank}).Validate())
}
