//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxBlogTitleLen = 500

// BlogPost represents a published blog article.
type BlogPost struct {
	ID           string    `json:"id"              db:"id"`
	Title        string    `json:"title"           db:"title"`
	Content      string    `json:"content"         db:"content"`
	Author       string    `json:"author"          db:"author"`
	Category     string    `json:"category"        db:"category"`
	Tags         []string  `json:"tags"            db:"tags"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	ImageURLs    []string  `json:"image_urls"      db:"image_urls"`
	CreatedBy    string    `json:"created_by"      db:"created_by"`
	CreatedAt    time.Time `json:"created_at"      db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"      db:"updated_at"`
}

// CreateBlogPostRequest contains fields to create a blog post. Thumbnail
// and inline image bytes travel separately as multipart file parts.
type CreateBlogPostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Author    string   `json:"author"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	CreatedBy string   `json:"-"`
}

func (r *CreateBlogPostRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Title) > maxBlogTitleLen {
		return errors.New("title cannot exceed 500 characters")
	}
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("content is required and cannot be empty")
	}
	if strings.TrimSpace(r.Author) == "" {
		return errors.New("author is required and cannot be empty")
	}
	return nil
}

// UpdateBlogPostRequest supports partial updates of a blog post.
type UpdateBlogPostRequest struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Author   *string   `json:"author,omitempty"`
	Category *string   `json:"category,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

func (r *UpdateBlogPostRequest) HasUpdates() bool {
	return r.Title != nil || r.Content != nil || r.Author != nil ||
		r.Category != nil || r.Tags != nil
}

func (r *UpdateBlogPostRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(*r.Title) > maxBlogTitleLen {
			return errors.New("title cannot exceed 500 characters")
		}
	}
	if r.Content != nil && strings.TrimSpace(*r.Content) == "" {
		return errors.New("content cannot be empty")
	}
	if r.Author != nil && strings.TrimSpace(*r.Author) == "" {
		return errors.New("author cannot be empty")
	}
	return nil
}
