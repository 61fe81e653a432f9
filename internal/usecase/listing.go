package usecase

import (
	"github.com/google/uuid"

	"github.com/chakato/catalog/internal/domain"
)

// PageInfo is the pagination context exposed to templates and the JSON API.
// Indices are 1-based over the filtered, unpaginated result; a page past the
// end yields zero indices and an empty product list.
type PageInfo struct {
	Page          int   `json:"page"`
	NumPages      int   `json:"num_pages"`
	IsPaginated   bool  `json:"is_paginated"`
	StartIndex    int   `json:"start_index"`
	EndIndex      int   `json:"end_index"`
	TotalProducts int64 `json:"total_products"`
}

func NewPageInfo(page int, total int64) PageInfo {
	if page < 1 {
		page = 1
	}
	numPages := int((total + domain.PageSize - 1) / domain.PageSize)
	if numPages < 1 {
		numPages = 1
	}
	info := PageInfo{Page: page, NumPages: numPages, IsPaginated: numPages > 1, TotalProducts: total}
	if total == 0 {
		return info
	}
	start := (page-1)*domain.PageSize + 1
	if int64(start) > total {
		return info
	}
	end := page * domain.PageSize
	if int64(end) > total {
		end = int(total)
	}
	info.StartIndex = start
	info.EndIndex = end
	return info
}

type VariantOption struct {
	VariantID uuid.UUID `json:"variant_id"`
	Title     string    `json:"title"`
}

type VariantGroup struct {
	Title   string          `json:"title"`
	Options []VariantOption `json:"options"`
}

// GroupSelections groups ProductVariant rows by their Variant group's title.
// Exact duplicate (group id, variant_title) pairs collapse to one option.
// Group order and option order both follow first appearance in the input.
func GroupSelections(selections []domain.ProductVariant) []VariantGroup {
	groups := []VariantGroup{}
	index := map[string]int{}
	seen := map[string]map[VariantOption]struct{}{}
	for _, pv := range selections {
		if pv.Variant == nil {
			continue
		}
		title := pv.Variant.Title
		i, ok := index[title]
		if !ok {
			i = len(groups)
			index[title] = i
			groups = append(groups, VariantGroup{Title: title})
			seen[title] = map[VariantOption]struct{}{}
		}
		opt := VariantOption{VariantID: pv.Variant.ID, Title: pv.VariantTitle}
		if _, dup := seen[title][opt]; dup {
			continue
		}
		seen[title][opt] = struct{}{}
		groups[i].Options = append(groups[i].Options, opt)
	}
	return groups
}
