package view

import "pulse-board/internal/domain"

// Virtualization defaults matching the dashboard's row geometry.
const (
	// DefaultRowHeight is the uniform estimated row height in display units.
	DefaultRowHeight = 118

	// DefaultOverscan is the number of extra rows materialized on each
	// side of the viewport.
	DefaultOverscan = 5
)

// Window computes which rows of a derived list intersect a scroll
// viewport. All geometry uses the uniform-height approximation.
type Window struct {
	RowHeight int
	Overscan  int
}

// NewWindow creates a Window with the default geometry.
func NewWindow() Window {
	return Window{RowHeight: DefaultRowHeight, Overscan: DefaultOverscan}
}

// Row describes one materialized row.
type Row struct {
	Index  int `json:"index"`
	Top    int `json:"top"` // absolute offset from the list top
	Height int `json:"height"`
}

// Layout describes the materialized slice of a list for one viewport.
type Layout struct {
	// TotalHeight is rowCount * rowHeight, the full scrollable extent.
	TotalHeight int `json:"totalHeight"`

	// Rows are the materialized row descriptors, ordered by index.
	// Empty when the list is empty.
	Rows []Row `json:"rows"`
}

// Layout returns the materialized rows for a list of rowCount entries
// given the current scroll offset and viewport height. Out-of-range
// offsets are clamped; an empty list yields no rows, which callers
// render as a placeholder.
func (w Window) Layout(rowCount, scrollTop, viewportHeight int) Layout {
	rowHeight := w.RowHeight
	if rowHeight <= 0 {
		rowHeight = DefaultRowHeight
	}
	overscan := w.Overscan
	if overscan < 0 {
		overscan = 0
	}

	l := Layout{TotalHeight: rowCount * rowHeight}
	if rowCount == 0 || viewportHeight <= 0 {
		return l
	}

	max := l.TotalHeight - viewportHeight
	if max < 0 {
		max = 0
	}
	if scrollTop > max {
		scrollTop = max
	}
	if scrollTop < 0 {
		scrollTop = 0
	}

	first := scrollTop/rowHeight - overscan
	if first < 0 {
		first = 0
	}
	last := (scrollTop+viewportHeight-1)/rowHeight + overscan
	if last > rowCount-1 {
		last = rowCount - 1
	}

	l.Rows = make([]Row, 0, last-first+1)
	for i := first; i <= last; i++ {
		l.Rows = append(l.Rows, Row{Index: i, Top: i * rowHeight, Height: rowHeight})
	}
	return l
}

// MaterializedRow pairs a row descriptor with its token and the "now"
// timestamp used for relative-time display. TokenID keys the row so
// identity survives re-renders.
type MaterializedRow struct {
	Row
	TokenID string        `json:"tokenId"`
	Token   *domain.Token `json:"token"`
	Now     int64         `json:"now"` // Unix milliseconds
}

// Materialize binds a layout to its tokens. Rows whose index falls
// outside the list, which can happen when the list shrank since the
// layout was computed, are skipped.
func (w Window) Materialize(l Layout, tokens []*domain.Token, now int64) []MaterializedRow {
	out := make([]MaterializedRow, 0, len(l.Rows))
	for _, r := range l.Rows {
		if r.Index < 0 || r.Index >= len(tokens) {
			continue
		}
		t := tokens[r.Index]
		out = append(out, MaterializedRow{Row: r, TokenID: t.ID, Token: t, Now: now})
	}
	return out
}
