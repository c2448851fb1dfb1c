package httpapi

import (
	"net/http"

	"github.com/alexanderramin/tempo/internal/domain"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.svc.Products.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, mapSlice(products, toProductJSON))
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var body productJSON
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	p := &domain.Product{Name: body.Name}
	if err := s.svc.Products.Create(r.Context(), p); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, toProductJSON(p))
}

func (s *Server) handleRenameProduct(w http.ResponseWriter, r *http.Request) {
	var body productJSON
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	id := r.PathValue("id")
	if err := s.svc.Products.Rename(r.Context(), id, body.Name); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.svc.Products.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toProductJSON(p))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Products.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
