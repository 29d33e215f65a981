package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-catalog-server/products"
)

type productRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

func (s *Server) AddProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Price == 0 {
			s.respondErrors(w, http.StatusBadRequest, "Product name and price are required")
			return
		}

		product := &products.Product{
			Name:        req.Name,
			Price:       req.Price,
			Description: req.Description,
		}

		id, err := s.products.Insert(r.Context(), product)
		if err != nil {
			log.Error().Err(err).Msg("add product error")
			s.audit.RecordError(r.Context(), err.Error(), "")
			s.respondErrors(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		product.ID = id

		s.respondSuccess(w, product, "Product added successfully")
	}
}

// ProductsSearchHandler serves the paginated, filtered, ordered catalog
// listing. Out-of-range or malformed paging parameters fall back to
// defaults rather than erroring.
func (s *Server) ProductsSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params products.SearchParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			s.respondErrors(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		page, err := s.products.Search(r.Context(), params)
		if err != nil {
			log.Error().Err(err).Msg("product search error")
			s.audit.RecordError(r.Context(), err.Error(), "")
			s.respondErrors(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		s.respondSuccess(w, page, "Products retrieved successfully.")
	}
}

func (s *Server) ProductsAllHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.products.All(r.Context(), products.AllProductsLimit)
		if err != nil {
			log.Error().Err(err).Msg("product list error")
			s.audit.RecordError(r.Context(), err.Error(), "")
			s.respondErrors(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		s.respondSuccess(w, list, "All products retrieved successfully.")
	}
}

func (s *Server) UpdateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			s.respondErrors(w, http.StatusBadRequest, "Invalid product id")
			return
		}

		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Price == 0 {
			s.respondErrors(w, http.StatusBadRequest, "Product name and price are required")
			return
		}

		product := &products.Product{
			ID:          id,
			Name:        req.Name,
			Price:       req.Price,
			Description: req.Description,
		}

		if err := s.products.Update(r.Context(), product); err != nil {
			log.Error().Err(err).Int64("id", id).Msg("update product error")
			s.audit.RecordError(r.Context(), err.Error(), "")
			s.respondErrors(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if claims, ok := ClaimsFromContext(r.Context()); ok {
			details := fmt.Sprintf("name=%s price=%.2f", product.Name, product.Price)
			s.audit.RecordMutation(r.Context(), claims.UserID, "update", "products", id, details)
		}

		s.respondSuccess(w, product, "Product updated successfully.")
	}
}

func (s *Server) DeleteProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			s.respondErrors(w, http.StatusBadRequest, "Invalid product id")
			return
		}

		if err := s.products.Delete(r.Context(), id); err != nil {
			log.Error().Err(err).Int64("id", id).Msg("delete product error")
			s.audit.RecordError(r.Context(), err.Error(), "")
			s.respondErrors(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if claims, ok := ClaimsFromContext(r.Context()); ok {
			s.audit.RecordMutation(r.Context(), claims.UserID, "delete", "products", id, "")
		}

		s.respondSuccess(w, nil, "Product deleted successfully.")
	}
}
