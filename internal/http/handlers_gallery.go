package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/marquee-events/marquee/internal/data"
	"github.com/marquee-events/marquee/internal/domain/model"
)

type albumStore interface {
	Create(ctx context.Context, req *model.CreateAlbumRequest) (*model.Album, error)
	GetByID(ctx context.Context, id string) (*model.Album, error)
	List(ctx context.Context, limit, offset int, publishedOnly bool) ([]*model.Album, error)
	Update(ctx context.Context, id string, req model.UpdateAlbumRequest) (*model.Album, error)
	Delete(ctx context.Context, id string) error
}

type galleryImageStore interface {
	Add(ctx context.Context, req *model.AddGalleryImageRequest) (*model.GalleryImage, error)
	ListByAlbum(ctx context.Context, albumID string) ([]*model.GalleryImage, error)
	Delete(ctx context.Context, id string) error
}

// GalleryHandlers serves albums and their images, public and admin.
type GalleryHandlers struct {
	Albums albumStore
	Images galleryImageStore
	Logger *slog.Logger
}

func (h *GalleryHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type albumWithImages struct {
	*model.Album
	Images []*model.GalleryImage `json:"images"`
}

// PublicList handles GET /api/albums. Anonymous callers see published
// albums only; a request carrying a back-office session also gets drafts.
func (h *GalleryHandlers) PublicList(w http.ResponseWriter, r *http.Request) {
	limit, offset := listParams(r)
	_, staff := GetUserSessionFromContext(r.Context())
	albums, err := h.Albums.List(r.Context(), limit, offset, !staff)
	if err != nil {
		h.logger().Error("album list failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"albums": albums})
}

// PublicGet handles GET /api/albums/{id}, returning the album with its
// images. Unpublished albums 404 unless the request carries a back-office
// session.
func (h *GalleryHandlers) PublicGet(w http.ResponseWriter, r *http.Request) {
	album, err := h.Albums.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if _, staff := GetUserSessionFromContext(r.Context()); !album.Published && !staff {
		writeStoreError(w, data.ErrAlbumNotFound)
		return
	}
	images, err := h.Images.ListByAlbum(r.Context(), album.ID)
	if err != nil {
		h.logger().Error("gallery image list failed", "album_id", album.ID, "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, albumWithImages{Album: album, Images: images})
}

// List handles GET /api/admin/albums.
func (h *GalleryHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := listParams(r)
	albums, err := h.Albums.List(r.Context(), limit, offset, r.URL.Query().Get("published") == "true")
	if err != nil {
		h.logger().Error("album list failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"albums": albums})
}

// Get handles GET /api/admin/albums/{id} with images included.
func (h *GalleryHandlers) Get(w http.ResponseWriter, r *http.Request) {
	album, err := h.Albums.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	images, err := h.Images.ListByAlbum(r.Context(), album.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, albumWithImages{Album: album, Images: images})
}

// Create handles POST /api/admin/albums.
func (h *GalleryHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAlbumRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
		return
	}
	album, err := h.Albums.Create(r.Context(), &req)
	if err != nil {
		h.logger().Error("album create failed", "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, album)
}

// Update handles PATCH /api/admin/albums/{id}.
func (h *GalleryHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateAlbumRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
		return
	}
	album, err := h.Albums.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, album)
}

// Delete handles DELETE /api/admin/albums/{id}. Images are removed by the
// database's cascade.
func (h *GalleryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Albums.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddImage handles POST /api/admin/albums/{id}/images.
func (h *GalleryHandlers) AddImage(w http.ResponseWriter, r *http.Request) {
	var req model.AddGalleryImageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.AlbumID = r.PathValue("id")
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
		return
	}
	img, err := h.Images.Add(r.Context(), &req)
	if err != nil {
		h.logger().Error("gallery image add failed", "album_id", req.AlbumID, "error", err)
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, img)
}

// DeleteImage handles DELETE /api/admin/gallery-images/{id}.
func (h *GalleryHandlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.Images.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
