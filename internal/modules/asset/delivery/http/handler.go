package handler

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	asset "questlab.io/studiosite/internal/modules/asset/service"
	"questlab.io/studiosite/pkg/response"
	"questlab.io/studiosite/pkg/storage"
)

const maxUploadSize = 10 << 20

type AssetHandler struct {
	service asset.AssetService
}

func NewAssetHandler(service asset.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// Upload accepts one "file" part or several "files" parts plus a "folder"
// field and returns the stored key(s).
func (h *AssetHandler) Upload(c *gin.Context) {
	folder := c.PostForm("folder")
	if folder == "" {
		folder = "general"
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "multipart form is required")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		response.ErrorMessage(c, http.StatusBadRequest, "at least one file is required")
		return
	}

	var keys []string
	for _, fh := range files {
		if fh.Size > maxUploadSize {
			response.ErrorMessage(c, http.StatusBadRequest, "files must be 10MB or smaller")
			return
		}

		f, err := fh.Open()
		if err != nil {
			response.ErrorMessage(c, http.StatusBadRequest, "unable to read uploaded file")
			return
		}

		key, err := h.service.Upload(c.Request.Context(), f, folder, fh.Filename)
		f.Close()
		if err != nil {
			response.Error(c, err)
			return
		}
		keys = append(keys, key)
	}

	if len(keys) == 1 {
		response.OK(c, http.StatusCreated, gin.H{"key": keys[0]})
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"keys": keys})
}

type deleteImageRequest struct {
	Key  string   `json:"key"`
	Keys []string `json:"keys"`
}

func (h *AssetHandler) DeleteImage(c *gin.Context) {
	var req deleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "key or keys is required")
		return
	}

	keys := req.Keys
	if req.Key != "" {
		keys = append(keys, req.Key)
	}
	if len(keys) == 0 {
		response.ErrorMessage(c, http.StatusBadRequest, "key or keys is required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), keys); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"message": "deleted"})
}

type signedURLRequest struct {
	Key       string   `json:"key"`
	Keys      []string `json:"keys"`
	ExpiresIn int      `json:"expiresIn"`
}

func (h *AssetHandler) SignedURL(c *gin.Context) {
	var req signedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, "key or keys is required")
		return
	}

	keys := req.Keys
	if req.Key != "" {
		keys = append(keys, req.Key)
	}
	if len(keys) == 0 {
		response.ErrorMessage(c, http.StatusBadRequest, "key or keys is required")
		return
	}

	urls, err := h.service.SignedURLs(c.Request.Context(), keys, time.Duration(req.ExpiresIn)*time.Second)
	if err != nil {
		response.Error(c, err)
		return
	}

	if req.Key != "" && len(req.Keys) == 0 {
		response.OK(c, http.StatusOK, gin.H{"url": urls[req.Key]})
		return
	}
	response.OK(c, http.StatusOK, gin.H{"urls": urls})
}

// ProxyImage streams a stored image through the API so the public site never
// sees signed storage URLs. Responses are immutable: keys embed a timestamp,
// so a new upload is always a new key. Only public folders are served here;
// resumes stay behind the admin download endpoint.
func (h *AssetHandler) ProxyImage(c *gin.Context) {
	folder := c.Param("folder")
	if !storage.IsPublicFolder(folder) {
		response.ErrorMessage(c, http.StatusBadRequest, "unknown image folder")
		return
	}

	file := strings.TrimPrefix(c.Param("file"), "/")
	if file == "" {
		response.ErrorMessage(c, http.StatusBadRequest, "file path is required")
		return
	}

	body, contentType, err := h.service.Fetch(c.Request.Context(), folder+"/"+file)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Status(http.StatusOK)
	io.Copy(c.Writer, body)
}
