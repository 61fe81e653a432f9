package httpserver

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/chakato/catalog/internal/domain"
	"github.com/chakato/catalog/internal/usecase"
)

type Server struct {
	mux      *http.ServeMux
	tmpl     *template.Template
	products *usecase.ProductUC
	variants *usecase.VariantUC
}

func New(t *template.Template, p *usecase.ProductUC, v *usecase.VariantUC) http.Handler {
	s := &Server{tmpl: t, products: p, variants: v, mux: http.NewServeMux()}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/product/list", s.handleProductList)
	s.mux.HandleFunc("/product/create", s.handleProductCreate)
	s.mux.HandleFunc("/product/save", s.apiProductSave)

	s.mux.HandleFunc("/api/products", s.apiProducts)

	s.mux.HandleFunc("/variants", s.handleVariants)
	s.mux.HandleFunc("/variant/create", s.handleVariantCreate)
	s.mux.HandleFunc("/variant/", s.handleVariantEdit)

	s.mux.HandleFunc("/admin/export/xlsx", s.handleExportXLSX)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/product/list", http.StatusFound)
}

func filterFromQuery(r *http.Request) domain.ProductFilter {
	qv := r.URL.Query()
	page, _ := strconv.Atoi(qv.Get("page"))
	if page < 1 {
		page = 1
	}
	return domain.ProductFilter{
		Title:     qv.Get("title"),
		VariantID: qv.Get("variant"),
		PriceFrom: qv.Get("price_from"),
		PriceTo:   qv.Get("price_to"),
		Date:      qv.Get("date"),
		Page:      page,
	}
}

func (s *Server) handleProductList(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)
	list, info, err := s.products.List(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("list products")
		http.Error(w, "list", 500)
		return
	}
	groups, err := s.products.VariantGroups(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("variant groups")
		http.Error(w, "groups", 500)
		return
	}
	s.render(w, "list.html", map[string]any{
		"Products":      list,
		"Groups":        groups,
		"Page":          info.Page,
		"NumPages":      info.NumPages,
		"IsPaginated":   info.IsPaginated,
		"StartIndex":    info.StartIndex,
		"EndIndex":      info.EndIndex,
		"TotalProducts": info.TotalProducts,
		"Filter":        f,
	})
}

func (s *Server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		active, err := s.variants.ListActive(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("active variants")
			http.Error(w, "variants", 500)
			return
		}
		s.render(w, "create.html", map[string]any{"Product": true, "Variants": active})
	case http.MethodPost:
		s.createProduct(w, r)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiProductSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	s.createProduct(w, r)
}

// createProduct is the Writer surface: 201 with the persisted graph, or 400
// with the field error map, nothing written.
func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var in usecase.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "json", 400)
		return
	}
	p, fieldErrs, err := s.products.Create(r.Context(), in)
	if err != nil {
		log.Error().Err(err).Msg("create product")
		http.Error(w, "create", 500)
		return
	}
	if len(fieldErrs) > 0 {
		writeJSON(w, 400, fieldErrs)
		return
	}
	writeJSON(w, 201, p)
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		f := filterFromQuery(r)
		list, info, err := s.products.List(r.Context(), f)
		if err != nil {
			log.Error().Err(err).Msg("list products")
			http.Error(w, "list", 500)
			return
		}
		groups, err := s.products.VariantGroups(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("variant groups")
			http.Error(w, "groups", 500)
			return
		}
		writeJSON(w, 200, map[string]any{
			"products":       list,
			"is_paginated":   info.IsPaginated,
			"start_index":    info.StartIndex,
			"end_index":      info.EndIndex,
			"total_products": info.TotalProducts,
			"variant_groups": groups,
		})
	case http.MethodPost:
		s.createProduct(w, r)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	list, err := s.variants.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list variants")
		http.Error(w, "variants", 500)
		return
	}
	s.render(w, "variants.html", map[string]any{"Variants": list})
}

func (s *Server) handleVariantCreate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "variant_form.html", map[string]any{"Title": "Create Variant"})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", 400)
			return
		}
		active := r.PostFormValue("active") != ""
		if _, err := s.variants.Create(r.Context(), r.PostFormValue("title"), active); err != nil {
			log.Error().Err(err).Msg("create variant")
			http.Error(w, "create", 400)
			return
		}
		http.Redirect(w, r, "/variants", http.StatusSeeOther)
	default:
		http.Error(w, "method", 405)
	}
}

// handleVariantEdit serves /variant/{id}/edit.
func (s *Server) handleVariantEdit(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/variant/")
	idStr, ok := strings.CutSuffix(rest, "/edit")
	if !ok {
		http.NotFound(w, r)
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	switch r.Method {
	case http.MethodGet:
		v, err := s.variants.Get(r.Context(), id)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		s.render(w, "variant_form.html", map[string]any{"Title": "Edit Variant", "Variant": v})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", 400)
			return
		}
		active := r.PostFormValue("active") != ""
		if _, err := s.variants.Update(r.Context(), id, r.PostFormValue("title"), active); err != nil {
			log.Error().Err(err).Msg("update variant")
			http.Error(w, "update", 400)
			return
		}
		http.Redirect(w, r, "/variants", http.StatusSeeOther)
	default:
		http.Error(w, "method", 405)
	}
}

// handleExportXLSX streams the whole catalog as a workbook, one row per
// price entry, paging through the listing like any other client.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	f := excelize.NewFile()
	const sheet = "Products"
	f.SetSheetName("Sheet1", sheet)
	headers := []string{"Title", "SKU", "Description", "Variant Group", "Variant", "Price", "Stock", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	row := 2
	page := 1
	for {
		list, info, err := s.products.List(r.Context(), domain.ProductFilter{Page: page})
		if err != nil {
			log.Error().Err(err).Msg("export products")
			http.Error(w, "export", 500)
			return
		}
		if len(list) == 0 {
			break
		}
		for _, p := range list {
			if len(p.Variants) == 0 {
				writeRow(f, sheet, row, p.Title, p.SKU, p.Description, "", "", nil, nil, p.CreatedAt.Format("2006-01-02"))
				row++
				continue
			}
			for _, pv := range p.Variants {
				group := ""
				if pv.Variant != nil {
					group = pv.Variant.Title
				}
				if len(pv.Prices) == 0 {
					writeRow(f, sheet, row, p.Title, p.SKU, p.Description, group, pv.VariantTitle, nil, nil, p.CreatedAt.Format("2006-01-02"))
					row++
					continue
				}
				for _, pr := range pv.Prices {
					price, stock := pr.Price, pr.Stock
					writeRow(f, sheet, row, p.Title, p.SKU, p.Description, group, pv.VariantTitle, &price, &stock, p.CreatedAt.Format("2006-01-02"))
					row++
				}
			}
		}
		if int64(page*domain.PageSize) >= info.TotalProducts {
			break
		}
		page++
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=products.xlsx")
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("write xlsx")
	}
}

func writeRow(f *excelize.File, sheet string, row int, title, sku, desc, group, variant string, price *float64, stock *int, created string) {
	values := []any{title, sku, desc, group, variant, nil, nil, created}
	if price != nil {
		values[5] = *price
	}
	if stock != nil {
		values[6] = *stock
	}
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render")
		http.Error(w, "tpl", 500)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
