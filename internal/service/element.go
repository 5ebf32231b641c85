package service

import (
	"xuanxin.dev/backend-next/internal/core/chart"
	"xuanxin.dev/backend-next/internal/core/cycle"
	"xuanxin.dev/backend-next/internal/core/elemental"
	"xuanxin.dev/backend-next/internal/model/cache"
	"xuanxin.dev/backend-next/internal/pkg/apperr"
	pkgcache "xuanxin.dev/backend-next/internal/pkg/cache"
)

type Element struct{}

func NewElement() *Element {
	return &Element{}
}

func buildAdvisories() (map[string]chart.Advisory, error) {
	m := make(map[string]chart.Advisory, cycle.ElementCount)
	for _, e := range cycle.Elements {
		a := elemental.AdvisoryFor(e)
		m[e.Name()] = chart.Advisory{Advisory: a, Summary: a.Summary()}
	}
	return m, nil
}

// Cache: elementAdvisories, never expires
func (s *Element) Advisories() (map[string]chart.Advisory, error) {
	var m map[string]chart.Advisory
	if err := cache.ElementAdvisories.MutexGetSet(&m, buildAdvisories, pkgcache.NoExpiration); err != nil {
		return nil, err
	}
	return m, nil
}

// Advisory looks the element up by glyph (木) or English name (wood).
func (s *Element) Advisory(name string) (*chart.Advisory, error) {
	e, err := cycle.ParseElement(name)
	if err != nil {
		return nil, apperr.ErrNotFound.Msg("unknown element %q", name)
	}
	m, err := s.Advisories()
	if err != nil {
		return nil, err
	}
	a := m[e.Name()]
	return &a, nil
}
