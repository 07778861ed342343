package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/jobdeck/careers-api/internal/core"
	"github.com/jobdeck/careers-api/internal/domain/model"
	apperrors "github.com/jobdeck/careers-api/internal/errors"
	"github.com/jobdeck/careers-api/internal/ports"
)

// BlogImage is one uploaded image part of a blog post.
type BlogImage struct {
	Data        []byte
	ContentType string
	Ext         string // file extension including the dot, e.g. ".png"
}

// BlogServiceOptions groups dependencies for BlogService.
type BlogServiceOptions struct {
	Repo    core.BlogRepository // Required: blog post storage
	Objects ports.ObjectStore   // Optional: thumbnail and image uploads
	Logger  *slog.Logger        // Optional: structured logger
}

// BlogService manages blog articles. Reads are public; writes are gated at
// the HTTP layer.
type BlogService struct {
	repo    core.BlogRepository
	objects ports.ObjectStore
	logger  *slog.Logger
}

// NewBlogService constructs a new BlogService.
func NewBlogService(opts BlogServiceOptions) (*BlogService, error) {
	if opts.Repo == nil {
		return nil, errors.New("BlogRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "blog_service")
	}

	return &BlogService{repo: opts.Repo, objects: opts.Objects, logger: logger}, nil
}

// MustNewBlogService constructs a new BlogService and panics on error.
func MustNewBlogService(opts BlogServiceOptions) *BlogService {
	svc, err := NewBlogService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Create stores a new post, uploading the thumbnail and inline images
// first when they are provided.
func (s *BlogService) Create(
	ctx context.Context,
	req *model.CreateBlogPostRequest,
	thumbnail *BlogImage,
	images []BlogImage,
) (*model.BlogPost, error) {
	if req == nil {
		return nil, errors.New("create blog post request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if (thumbnail != nil || len(images) > 0) && s.objects == nil {
		return nil, apperrors.Validation("image uploads are not enabled")
	}

	var thumbnailURL *string
	if thumbnail != nil {
		url, err := s.uploadImage(ctx, "thumbnails", *thumbnail)
		if err != nil {
			return nil, fmt.Errorf("upload thumbnail: %w", err)
		}
		thumbnailURL = &url
	}

	imageURLs := make([]string, 0, len(images))
	for i, img := range images {
		url, err := s.uploadImage(ctx, "images", img)
		if err != nil {
			return nil, fmt.Errorf("upload image %d: %w", i, err)
		}
		imageURLs = append(imageURLs, url)
	}

	post, err := s.repo.Create(ctx, core.CreateBlogPostParams{
		Request:      req,
		ThumbnailURL: thumbnailURL,
		ImageURLs:    imageURLs,
	})
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "blog post created", "post_id", post.ID, "title", post.Title)
	}
	return post, nil
}

func (s *BlogService) uploadImage(
	ctx context.Context,
	prefix string,
	img BlogImage,
) (string, error) {
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := path.Join("blog", prefix, uuid.NewString()+img.Ext)
	return s.objects.Put(ctx, key, img.Data, contentType)
}

// Get retrieves a post by id.
func (s *BlogService) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves posts with pagination, newest first.
func (s *BlogService) List(ctx context.Context, limit, offset int) ([]*model.BlogPost, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update applies a partial update to a post's text fields.
func (s *BlogService) Update(
	ctx context.Context,
	id string,
	req model.UpdateBlogPostRequest,
) (*model.BlogPost, error) {
	return s.repo.Update(ctx, id, req)
}

// Delete removes a post. Uploaded images are left in the object store.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFoundf("blog post %s not found", id)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "blog post deleted", "post_id", id)
	}
	return nil
}
