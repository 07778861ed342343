package testutil

import (
	"fmt"

	"github.com/jobdeck/careers-api/internal/domain/model"
)

// JobRequestBuilder provides a fluent interface for building CreateJobRequest objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a new JobRequestBuilder with sensible defaults.
func NewJobRequest() *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.CreateJobRequest{
			Title:          "Backend Engineer",
			Department:     "Engineering",
			EmploymentType: "full_time",
			Description:    "Build and run the careers platform services.",
			Qualifications: "3+ years building production services.",
			SalaryRange:    "$120k-$150k",
			Location:       "Remote",
		},
	}
}

// WithTitle sets the posting title.
func (b *JobRequestBuilder) WithTitle(title string) *JobRequestBuilder {
	b.req.Title = title
	return b
}

// WithDepartment sets the department.
func (b *JobRequestBuilder) WithDepartment(department string) *JobRequestBuilder {
	b.req.Department = department
	return b
}

// WithEmploymentType sets the employment type.
func (b *JobRequestBuilder) WithEmploymentType(employmentType string) *JobRequestBuilder {
	b.req.EmploymentType = employmentType
	return b
}

// WithDescription sets the posting description.
func (b *JobRequestBuilder) WithDescription(description string) *JobRequestBuilder {
	b.req.Description = description
	return b
}

// WithLocation sets the posting location.
func (b *JobRequestBuilder) WithLocation(location string) *JobRequestBuilder {
	b.req.Location = location
	return b
}

// Build returns the constructed CreateJobRequest.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	return b.req
}

// ApplicationRequestBuilder provides a fluent interface for building
// SubmitApplicationRequest objects for testing.
type ApplicationRequestBuilder struct {
	req *model.SubmitApplicationRequest
}

// NewApplicationRequest creates a new ApplicationRequestBuilder with sensible
// defaults. JobID must be set before Build in most tests.
func NewApplicationRequest() *ApplicationRequestBuilder {
	return &ApplicationRequestBuilder{
		req: &model.SubmitApplicationRequest{
			UserID:         "test-user-1",
			ApplicantEmail: "applicant@example.com",
			ApplicantName:  "Test Applicant",
		},
	}
}

// WithJobID sets the target posting id.
func (b *ApplicationRequestBuilder) WithJobID(jobID string) *ApplicationRequestBuilder {
	b.req.JobID = jobID
	return b
}

// WithUserID sets the applicant's user id.
func (b *ApplicationRequestBuilder) WithUserID(userID string) *ApplicationRequestBuilder {
	b.req.UserID = userID
	return b
}

// WithEmail sets the applicant email.
func (b *ApplicationRequestBuilder) WithEmail(email string) *ApplicationRequestBuilder {
	b.req.ApplicantEmail = email
	return b
}

// WithName sets the applicant name.
func (b *ApplicationRequestBuilder) WithName(name string) *ApplicationRequestBuilder {
	b.req.ApplicantName = name
	return b
}

// WithPhone sets the optional phone number.
func (b *ApplicationRequestBuilder) WithPhone(phone string) *ApplicationRequestBuilder {
	b.req.Phone = &phone
	return b
}

// Build returns the constructed SubmitApplicationRequest.
func (b *ApplicationRequestBuilder) Build() *model.SubmitApplicationRequest {
	return b.req
}

// Common request presets

// TemplateRequest creates an email template request keyed to the given status.
func TemplateRequest(status model.ApplicationStatus) *model.CreateEmailTemplateRequest {
	return &model.CreateEmailTemplateRequest{
		Status:  string(status),
		Subject: fmt.Sprintf("Your application is %s", status),
		Body:    "<p>Hello {{applicant_name}}, your application status changed.</p>",
	}
}

// BlogPostRequest creates a blog post request with default values.
func BlogPostRequest() *model.CreateBlogPostRequest {
	return &model.CreateBlogPostRequest{
		Title:     "Engineering at Scale",
		Content:   "How our team ships reliable services.",
		Author:    "Test Author",
		Category:  "engineering",
		Tags:      []string{"go", "backend"},
		CreatedBy: "test-user-1",
	}
}

// DraftJobRequest creates a posting request with the given title.
func DraftJobRequest(title string) *model.CreateJobRequest {
	return NewJobRequest().WithTitle(title).Build()
}
