package httpapi

import (
	"net/http"

	"github.com/alexanderramin/tempo/internal/domain"
)

func (s *Server) handleListPhases(w http.ResponseWriter, r *http.Request) {
	p, err := s.resolvePlan(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	phases, err := s.svc.Phases.ListByPlan(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, mapSlice(phases, toPhaseJSON))
}

func (s *Server) handleCreatePhase(w http.ResponseWriter, r *http.Request) {
	var body phaseJSON
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.resolvePlan(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	start, err := parseDateField("start_date", body.StartDate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	end, err := parseDateField("end_date", body.EndDate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ph := &domain.Phase{
		PlanID:     p.ID,
		Title:      body.Title,
		StartDate:  start,
		EndDate:    end,
		Color:      body.Color,
		OrderIndex: body.OrderIndex,
	}
	if err := s.svc.Phases.Create(r.Context(), ph); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, toPhaseJSON(ph))
}

func (s *Server) handleGetPhase(w http.ResponseWriter, r *http.Request) {
	ph, err := s.svc.Phases.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toPhaseJSON(ph))
}

func (s *Server) handlePatchPhase(w http.ResponseWriter, r *http.Request) {
	var patch phasePatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	ph, err := s.svc.Phases.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if patch.Title != nil {
		ph.Title = *patch.Title
	}
	if patch.Color != nil {
		ph.Color = *patch.Color
	}
	if patch.OrderIndex != nil {
		ph.OrderIndex = *patch.OrderIndex
	}
	if patch.StartDate != nil {
		if ph.StartDate, err = parseDateField("start_date", *patch.StartDate); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if patch.EndDate != nil {
		if ph.EndDate, err = parseDateField("end_date", *patch.EndDate); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if err := s.svc.Phases.Update(r.Context(), ph); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toPhaseJSON(ph))
}

func (s *Server) handleDeletePhase(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Phases.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShiftPhase(w http.ResponseWriter, r *http.Request) {
	var body shiftBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	ph, err := s.svc.Phases.Shift(r.Context(), r.PathValue("id"), body.Days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toPhaseJSON(ph))
}

func (s *Server) handleResizePhase(w http.ResponseWriter, r *http.Request) {
	var body resizeBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	ph, err := s.svc.Phases.Resize(r.Context(), r.PathValue("id"), domain.ResizeEdge(body.Edge), body.Days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toPhaseJSON(ph))
}
