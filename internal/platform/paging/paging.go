package paging

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a normalized page request. Use Parse or Normalize to build one.
type Params struct {
	Page  int
	Limit int
}

func Default() Params {
	return Params{Page: DefaultPage, Limit: DefaultLimit}
}

// Parse reads raw query values. Anything unparseable or out of range falls back to the default
// for that field only.
func Parse(rawPage, rawLimit string) Params {
	out := Default()
	if page, err := strconv.Atoi(strings.TrimSpace(rawPage)); err == nil && page >= 1 {
		out.Page = page
	}
	if limit, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && limit >= 1 && limit <= MaxLimit {
		out.Limit = limit
	}
	return out
}

func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
	return p
}

func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// Window slices items for in-memory stores. A page past the end yields an empty slice.
func Window[T any](items []T, p Params) []T {
	p = p.Normalize()
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

type Info struct {
	TotalCount  int `json:"totalCount"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

func NewInfo(p Params, total int) Info {
	p = p.Normalize()
	if total < 0 {
		total = 0
	}
	return Info{
		TotalCount:  total,
		TotalPages:  (total + p.Limit - 1) / p.Limit,
		CurrentPage: p.Page,
		Limit:       p.Limit,
	}
}

type Page[T any] struct {
	Items []T
	Info  Info
}

func NewPage[T any](items []T, p Params, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Info: NewInfo(p, total)}
}

func Empty[T any](p Params) Page[T] {
	return NewPage[T](nil, p, 0)
}
