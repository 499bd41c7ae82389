// Package listing holds the filter, cursor and page shapes shared by the
// list pages (bookings, courts, open games).
package listing

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"quadras/web/internal/utils"
	"quadras/web/internal/validation"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Sports known by the backend.
var Sports = []string{"futebol", "futevolei", "volei", "beach_tennis", "tenis", "padel", "basquete"}

type Filter struct {
	From   string `json:"dataInicio,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To     string `json:"dataFim,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Sport  string `json:"esporte,omitempty" validate:"omitempty,oneof=futebol futevolei volei beach_tennis tenis padel basquete"`
	Search string `json:"q,omitempty" validate:"max=80"`
	Status string `json:"status,omitempty" validate:"max=20"`
}

// ParseFilter reads the filter from the page's query string.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{
		From:   strings.TrimSpace(q.Get("dataInicio")),
		To:     strings.TrimSpace(q.Get("dataFim")),
		Sport:  strings.ToLower(strings.TrimSpace(q.Get("esporte"))),
		Search: strings.TrimSpace(q.Get("q")),
		Status: strings.TrimSpace(q.Get("status")),
	}
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func (f Filter) Validate() error {
	if err := validation.Struct(f); err != nil {
		return err
	}
	if f.From != "" && f.To != "" && f.To < f.From {
		return validation.Field("dataFim", "must not be before dataInicio")
	}
	return nil
}

// Query derives the backend query parameters.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.From != "" {
		q.Set("dataInicio", f.From)
	}
	if f.To != "" {
		q.Set("dataFim", f.To)
	}
	if f.Sport != "" {
		q.Set("esporte", f.Sport)
	}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	return q
}

// InRange reports whether date (YYYY-MM-DD) falls in [From, To], both ends
// inclusive. Open ends do not restrict; unparsable dates never match a
// bounded range.
func (f Filter) InRange(date string) bool {
	if f.From == "" && f.To == "" {
		return true
	}
	d, err := utils.ParseDate(date)
	if err != nil {
		return false
	}
	if f.From != "" {
		from, err := utils.ParseDate(f.From)
		if err == nil && d.Before(from) {
			return false
		}
	}
	if f.To != "" {
		to, err := utils.ParseDate(f.To)
		if err == nil && d.After(to) {
			return false
		}
	}
	return true
}

// MatchesSearch compares the search text against fields, ignoring case and accents.
func (f Filter) MatchesSearch(fields ...string) bool {
	return utils.ContainsFolded(f.Search, fields...)
}

// MatchesSport reports whether any of sports is the filtered one.
func (f Filter) MatchesSport(sports ...string) bool {
	if f.Sport == "" {
		return true
	}
	for _, s := range sports {
		if strings.EqualFold(f.Sport, s) {
			return true
		}
	}
	return false
}

// Today is the default lower bound for pages that hide past bookings.
func Today(now time.Time) string {
	return now.Format(utils.DateLayout)
}

type Cursor struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

func ParseCursor(q url.Values) (Cursor, error) {
	c := Cursor{Page: 0, Size: DefaultPageSize}
	if v := strings.TrimSpace(q.Get("page")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Cursor{}, validation.Field("page", "must be a non-negative integer")
		}
		c.Page = n
	}
	if v := strings.TrimSpace(q.Get("size")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxPageSize {
			return Cursor{}, validation.Field("size", "must be between 1 and "+strconv.Itoa(MaxPageSize))
		}
		c.Size = n
	}
	return c, nil
}

func (c Cursor) Query(q url.Values) url.Values {
	if q == nil {
		q = url.Values{}
	}
	q.Set("page", strconv.Itoa(c.Page))
	q.Set("size", strconv.Itoa(c.Size))
	return q
}
