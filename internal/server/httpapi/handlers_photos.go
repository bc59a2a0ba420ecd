package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"photoshare/internal/model"
)

// maxUploadBytes bounds a single photo upload.
const maxUploadBytes = 32 << 20

func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	list, err := s.photos.UserList(r.Context())
	if err != nil {
		s.log.Error("list users", zap.Error(err))
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleUserDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id", "")
		return
	}

	profile, err := s.photos.UserDetail(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handlePhotosOfUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id", "")
		return
	}

	views, err := s.photos.PhotosOfUser(r.Context(), id)
	if err != nil {
		s.log.Error("photos of user", zap.Error(err), zap.String("user_id", id.String()))
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// handleUpload accepts a multipart "photo" part and creates the photo record.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "photo required", "")
		return
	}
	defer file.Close()

	photo, err := s.photos.Upload(r.Context(), sess.AccountID, file, header.Filename)
	if err != nil {
		s.log.Error("upload photo", zap.Error(err), zap.String("account_id", sess.AccountID.String()))
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.PhotoView{
		ID:        photo.ID,
		AccountID: photo.AccountID,
		FileName:  photo.FileName,
		CreatedAt: photo.CreatedAt,
		Comments:  []model.CommentView{},
	})
}

type addCommentRequest struct {
	Comment string `json:"comment"`
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	photoID, err := uuid.FromString(mux.Vars(r)["photo_id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid photo id", "")
		return
	}

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "")
		return
	}

	comment, err := s.photos.AddComment(r.Context(), photoID, sess.AccountID, req.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "_id": comment.ID})
}
