package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"shopdesk/internal/catalog"
	"shopdesk/internal/httpx"
	"shopdesk/internal/models"
	"shopdesk/internal/transport"
)

const imageField = "image"

// parseUpload reads a catalogue multipart submission. The caller closes the
// returned form.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request, op string) (*httpx.Form, bool) {
	form, err := httpx.ParseForm(w, r, imageField)
	if err != nil {
		s.logWithRequest(r).Warn(op+": invalid form", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, "invalid form", nil)
		return nil, false
	}
	return form, true
}

func productForm(f *httpx.Form) catalog.ProductForm {
	return catalog.ProductForm{
		Name:        f.Get("name"),
		Description: f.Get("description"),
		Type:        models.ProductType(f.Get("type")),
	}
}

func serviceForm(f *httpx.Form) catalog.ServiceForm {
	return catalog.ServiceForm{
		Name:        f.Get("name"),
		Description: f.Get("description"),
		Price:       f.Get("price"),
	}
}

func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	items, err := s.Catalog.Products(r.Context())
	if err != nil {
		writeError(w, log, "products list", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, nonNil(items))
}

func (s *Server) ListProductsByType(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	t, err := catalog.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, log, "products list", err)
		return
	}
	items, err := s.Catalog.ProductsByType(r.Context(), t)
	if err != nil {
		writeError(w, log, "products list", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, nonNil(items))
}

func (s *Server) CreateProduct(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	form, ok := s.parseUpload(w, r, "products create")
	if !ok {
		return
	}
	defer form.Close()

	if err := s.Catalog.CreateProduct(r.Context(), productForm(form), form.Image); err != nil {
		writeError(w, log, "products create", err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, transport.StatusResponse{Status: "created"})
}

func (s *Server) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	form, ok := s.parseUpload(w, r, "products update")
	if !ok {
		return
	}
	defer form.Close()

	if err := s.Catalog.UpdateProduct(r.Context(), chi.URLParam(r, "id"), productForm(form), form.Image); err != nil {
		writeError(w, log, "products update", err)
		return
	}
	transport.WriteOK(w, "")
}

func (s *Server) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	if !requireConfirmation(w, confirmedByQuery(r), catalog.DeletePrompt(catalog.KindProduct)) {
		return
	}
	if err := s.Catalog.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, log, "products delete", err)
		return
	}
	transport.WriteOK(w, "")
}

func (s *Server) ListServices(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	items, err := s.Catalog.Services(r.Context())
	if err != nil {
		writeError(w, log, "services list", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, nonNil(items))
}

func (s *Server) CreateService(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	form, ok := s.parseUpload(w, r, "services create")
	if !ok {
		return
	}
	defer form.Close()

	if err := s.Catalog.CreateService(r.Context(), serviceForm(form), form.Image); err != nil {
		writeError(w, log, "services create", err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, transport.StatusResponse{Status: "created"})
}

func (s *Server) UpdateService(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	form, ok := s.parseUpload(w, r, "services update")
	if !ok {
		return
	}
	defer form.Close()

	if err := s.Catalog.UpdateService(r.Context(), chi.URLParam(r, "id"), serviceForm(form), form.Image); err != nil {
		writeError(w, log, "services update", err)
		return
	}
	transport.WriteOK(w, "")
}

func (s *Server) DeleteService(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	if !requireConfirmation(w, confirmedByQuery(r), catalog.DeletePrompt(catalog.KindService)) {
		return
	}
	if err := s.Catalog.DeleteService(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, log, "services delete", err)
		return
	}
	transport.WriteOK(w, "")
}

// ListImages returns the gallery; ?featured=true keeps only featured images.
func (s *Server) ListImages(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	items, err := s.Catalog.Images(r.Context())
	if err != nil {
		writeError(w, log, "images list", err)
		return
	}
	if featured, _ := strconv.ParseBool(r.URL.Query().Get("featured")); featured {
		items = catalog.Featured(items)
	}
	transport.WriteJSON(w, http.StatusOK, nonNil(items))
}

func (s *Server) UploadImage(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	form, ok := s.parseUpload(w, r, "images upload")
	if !ok {
		return
	}
	defer form.Close()

	if err := s.Catalog.UploadImage(r.Context(), form.Image); err != nil {
		writeError(w, log, "images upload", err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, transport.StatusResponse{Status: "created"})
}

func (s *Server) DeleteImage(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	if !requireConfirmation(w, confirmedByQuery(r), catalog.DeletePrompt(catalog.KindImage)) {
		return
	}
	if err := s.Catalog.DeleteImage(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, log, "images delete", err)
		return
	}
	transport.WriteOK(w, "")
}

func (s *Server) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	if err := s.Catalog.ToggleFeatured(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, log, "images featured", err)
		return
	}
	transport.WriteOK(w, "")
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
