package httpapi

import (
	"net/http"
	"strconv"

	"github.com/alexanderramin/tempo/internal/contract"
)

// handleTimeline accepts ?ppd= to change the day width and ?today= to
// evaluate the view as of another date.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	p, err := s.resolvePlan(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	req := contract.NewTimelineRequest(p.ID)
	if s.cfg.PixelsPerDay > 0 {
		req.PixelsPerDay = s.cfg.PixelsPerDay
	}
	q := r.URL.Query()
	if v := q.Get("ppd"); v != "" {
		ppd, perr := strconv.ParseFloat(v, 64)
		if perr != nil || !finitePositive(ppd) {
			s.writeError(w, r, badQuery("ppd", v))
			return
		}
		req.PixelsPerDay = ppd
	}
	if v := q.Get("today"); v != "" {
		now, perr := parseDateField("today", v)
		if perr != nil {
			s.writeError(w, r, perr)
			return
		}
		req.Now = &now
	}

	resp, err := s.svc.Timeline.Build(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	p, err := s.resolvePlan(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.svc.Layout.Get(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handlePutLayout(w http.ResponseWriter, r *http.Request) {
	var upd contract.LayoutUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.resolvePlan(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.svc.Layout.Update(r.Context(), p.ID, upd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, view)
}
