package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateBlogPostRequestValidate(t *testing.T) {
	valid := CreateBlogPostRequest{
		Title:    "Scaling the hiring pipeline",
		Content:  "Long-form content here.",
		Author:   "Casey Smith",
		Category: "engineering",
		Tags:     []string{"hiring", "platform"},
	}
	assert.NoError(t, valid.Validate())

	noTitle := valid
	noTitle.Title = ""
	assert.Error(t, noTitle.Validate())

	noContent := valid
	noContent.Content = "  "
	assert.Error(t, noContent.Validate())

	noAuthor := valid
	noAuthor.Author = ""
	assert.Error(t, noAuthor.Validate())
}

func TestUpdateBlogPostRequestValidate(t *testing.T) {
	empty := UpdateBlogPostRequest{}
	assert.Error(t, empty.Validate())

	title := "Revised title"
	assert.NoError(t, (&UpdateBlogPostRequest{Title: &title}).Validate())

	blank := ""
	assert.Error(t, (&UpdateBlogPostRequest{Content: &blank}).Validate())
}
