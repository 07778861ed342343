package httpx

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jobdeck/careers-api/internal/domain/model"
	"github.com/jobdeck/careers-api/internal/service"
)

const (
	maxBlogListLimit = 50

	// Combined budget for the thumbnail and inline image parts.
	maxBlogUploadBytes = 20 << 20
)

// BlogHandlers provides HTTP handlers for blog articles. Reads are public;
// writes sit behind the elevated middleware.
type BlogHandlers struct {
	Svc *service.BlogService
}

// Create handles HTTP requests to create a blog post. JSON bodies carry
// text-only posts; multipart bodies additionally carry a thumbnail part
// and repeated image parts.
func (h *BlogHandlers) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("no authenticated caller"),
		})
		return
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		req       model.CreateBlogPostRequest
		thumbnail *service.BlogImage
		images    []service.BlogImage
	)
	if mediaType == "multipart/form-data" {
		parsed, thumb, imgs, err := parseBlogMultipart(r)
		if err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_multipart", Err: err})
			return
		}
		req, thumbnail, images = parsed, thumb, imgs
	} else if !DecodeJSON(w, r, &req) {
		return
	}
	req.CreatedBy = caller.UserID

	post, err := h.Svc.Create(r.Context(), &req, thumbnail, images)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, post)
}

func parseBlogMultipart(
	r *http.Request,
) (model.CreateBlogPostRequest, *service.BlogImage, []service.BlogImage, error) {
	var req model.CreateBlogPostRequest

	if err := r.ParseMultipartForm(maxBlogUploadBytes); err != nil {
		return req, nil, nil, err
	}

	req.Title = r.FormValue("title")
	req.Content = r.FormValue("content")
	req.Author = r.FormValue("author")
	req.Category = r.FormValue("category")
	if tags := strings.TrimSpace(r.FormValue("tags")); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				req.Tags = append(req.Tags, tag)
			}
		}
	}

	var thumbnail *service.BlogImage
	if headers := r.MultipartForm.File["thumbnail"]; len(headers) > 0 {
		img, err := readImagePart(headers[0])
		if err != nil {
			return req, nil, nil, err
		}
		thumbnail = &img
	}

	var images []service.BlogImage
	for _, header := range r.MultipartForm.File["images"] {
		img, err := readImagePart(header)
		if err != nil {
			return req, nil, nil, err
		}
		images = append(images, img)
	}

	return req, thumbnail, images, nil
}

func readImagePart(header *multipart.FileHeader) (service.BlogImage, error) {
	file, err := header.Open()
	if err != nil {
		return service.BlogImage{}, err
	}
	defer file.Close() //nolint:errcheck // read-only multipart part

	data, err := io.ReadAll(file)
	if err != nil {
		return service.BlogImage{}, err
	}

	return service.BlogImage{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Ext:         strings.ToLower(filepath.Ext(header.Filename)),
	}, nil
}

// List handles HTTP requests to list blog posts, newest first.
func (h *BlogHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 20, maxBlogListLimit)

	posts, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"posts":  posts,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles HTTP requests to get a blog post by ID.
func (h *BlogHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("blog post id is required")},
		)
		return
	}

	post, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, post)
}

// Update handles HTTP requests to update a blog post's text fields.
func (h *BlogHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("blog post id is required")},
		)
		return
	}

	var req model.UpdateBlogPostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, post)
}

// Delete handles HTTP requests to delete a blog post.
func (h *BlogHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("blog post id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
