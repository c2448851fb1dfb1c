package httpapi

import (
	"net/http"

	"github.com/alexanderramin/tempo/internal/domain"
)

func (s *Server) handleListFeatures(w http.ResponseWriter, r *http.Request) {
	p, err := s.resolvePlan(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var features []*domain.Feature
	if phaseID := r.URL.Query().Get("phase"); phaseID != "" {
		features, err = s.svc.Features.ListByPhase(r.Context(), phaseID)
	} else {
		features, err = s.svc.Features.ListByPlan(r.Context(), p.ID)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, mapSlice(features, toFeatureJSON))
}

func (s *Server) handleCreateFeature(w http.ResponseWriter, r *http.Request) {
	var body featureJSON
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.resolvePlan(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f := &domain.Feature{
		PlanID:  p.ID,
		PhaseID: body.PhaseID,
		Title:   body.Title,
		Status:  domain.FeatureStatus(body.Status),
	}
	if err := s.svc.Features.Create(r.Context(), f); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, toFeatureJSON(f))
}

func (s *Server) handlePatchFeature(w http.ResponseWriter, r *http.Request) {
	var patch featurePatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	f, err := s.svc.Features.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if patch.Title != nil {
		f.Title = *patch.Title
	}
	if patch.Status != nil {
		f.Status = domain.FeatureStatus(*patch.Status)
	}
	set, phaseID, err := patch.phase()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if set {
		f.PhaseID = phaseID
	}
	if err := s.svc.Features.Update(r.Context(), f); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toFeatureJSON(f))
}

func (s *Server) handleDeleteFeature(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Features.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
