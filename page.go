package versionpager

import "github.com/samber/lo"

// Page is one window of versions. It owns copies of everything it holds and
// is never modified after NewPage returns.
type Page struct {
	entityID EntityID
	request  *DataRequest
	cells    []Cell
}

// NewPage builds a page from the row, the window request that produced the
// cells and the cells themselves, newest first.
func NewPage(entityID EntityID, request *DataRequest, cells []Cell) *Page {
	return &Page{
		entityID: entityID.Clone(),
		request:  request.Clone(),
		cells:    lo.Map(cells, func(c Cell, _ int) Cell { return c.clone() }),
	}
}

func (p *Page) EntityID() EntityID {
	return p.entityID.Clone()
}

// Request returns a copy of the window request that produced the page.
func (p *Page) Request() *DataRequest {
	return p.request.Clone()
}

// Cells returns a copy of the versions, newest first.
func (p *Page) Cells() []Cell {
	return lo.Map(p.cells, func(c Cell, _ int) Cell { return c.clone() })
}

func (p *Page) Len() int {
	return len(p.cells)
}

func (p *Page) IsEmpty() bool {
	return len(p.cells) == 0
}

// Values returns the version values keyed by timestamp.
func (p *Page) Values() map[int64][]byte {
	return lo.SliceToMap(p.cells, func(c Cell) (int64, []byte) {
		return c.Timestamp, c.clone().Value
	})
}

// MostRecent returns the newest version of the page.
func (p *Page) MostRecent() (Cell, bool) {
	if p.IsEmpty() {
		return Cell{}, false
	}

	return p.cells[0].clone(), true
}

// Oldest returns the oldest version of the page.
func (p *Page) Oldest() (Cell, bool) {
	if p.IsEmpty() {
		return Cell{}, false
	}

	return lo.LastOrEmpty(p.cells).clone(), true
}
