package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexanderramin/tempo/internal/domain"
)

// resolvePlan accepts either a plan UUID or its short ID.
func (s *Server) resolvePlan(ctx context.Context, ref string) (*domain.Plan, error) {
	p, err := s.svc.Plans.GetByID(ctx, ref)
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		return p, err
	}
	return s.svc.Plans.GetByShortID(ctx, ref)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		plans []*domain.Plan
		err   error
	)
	if product := q.Get("product"); product != "" {
		plans, err = s.svc.Plans.ListByProduct(r.Context(), product)
	} else {
		includeArchived := false
		if v := q.Get("archived"); v != "" {
			if includeArchived, err = strconv.ParseBool(v); err != nil {
				s.writeError(w, r, badQuery("archived", v))
				return
			}
		}
		plans, err = s.svc.Plans.List(r.Context(), includeArchived)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, mapSlice(plans, toPlanJSON))
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var body planJSON
	if err := decodeJSON(r, &body); err != nil {
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
	p := &domain.Plan{
		ShortID:   body.ShortID,
		ProductID: body.ProductID,
		Name:      body.Name,
		StartDate: start,
		EndDate:   end,
		Status:    domain.PlanStatus(body.Status),
	}
	if err := s.svc.Plans.Create(r.Context(), p); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, toPlanJSON(p))
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	p, err := s.resolvePlan(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toPlanJSON(p))
}

func (s *Server) handlePatchPlan(w http.ResponseWriter, r *http.Request) {
	var patch planPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.resolvePlan(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := applyPlanPatch(p, patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Plans.Update(r.Context(), p); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toPlanJSON(p))
}

func applyPlanPatch(p *domain.Plan, patch planPatch) error {
	if patch.ShortID != nil {
		p.ShortID = *patch.ShortID
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Status != nil {
		p.Status = domain.PlanStatus(*patch.Status)
	}
	if patch.ProductID != nil {
		if *patch.ProductID == "" {
			p.ProductID = nil
		} else {
			p.ProductID = patch.ProductID
		}
	}
	if patch.StartDate != nil {
		t, err := parseDateField("start_date", *patch.StartDate)
		if err != nil {
			return err
		}
		p.StartDate = t
	}
	if patch.EndDate != nil {
		t, err := parseDateField("end_date", *patch.EndDate)
		if err != nil {
			return err
		}
		p.EndDate = t
	}
	return nil
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	p, err := s.resolvePlan(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Plans.Delete(r.Context(), p.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
