package api

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"roomhub/internal/api/apierr"
	"roomhub/internal/services/saves"
)

// Save blobs are opaque; they travel as raw bodies, not JSON

func saveSlot(r *http.Request) string {
	return mux.Vars(r)["slot"]
}

func (s *Server) handlePutSave(w http.ResponseWriter, r *http.Request) {
	// One past the limit distinguishes "too large" from "exactly at the cap"
	data, err := io.ReadAll(io.LimitReader(r.Body, saves.MaxSaveSize+1))
	if err != nil {
		apierr.WriteBadRequest(w, "failed to read request body")
		return
	}

	session := sessionFromContext(r.Context())
	save, err := s.saves.Put(r.Context(), session.PlayerID, saveSlot(r), data)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SaveMetaResponse{
		Slot:      save.Slot,
		Size:      len(save.Data),
		UpdatedAt: save.UpdatedAt,
	})
}

func (s *Server) handleGetSave(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	save, err := s.saves.Get(r.Context(), session.PlayerID, saveSlot(r))
	if err != nil {
		apierr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(save.Data)
}

func (s *Server) handleDeleteSave(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	if err := s.saves.Delete(r.Context(), session.PlayerID, saveSlot(r)); err != nil {
		apierr.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSaves(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	list, err := s.saves.List(r.Context(), session.PlayerID)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	metas := make([]SaveMetaResponse, 0, len(list))
	for _, save := range list {
		metas = append(metas, SaveMetaResponse{
			Slot:      save.Slot,
			Size:      len(save.Data),
			UpdatedAt: save.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, SaveListResponse{Saves: metas})
}
