package client

import (
	"context"
	"fmt"
	"strconv"
)

// Column identifies an editable price-list column. Its value is the API field
// name used in the update payload.
type Column string

const (
	ColumnName        Column = "name"
	ColumnInPrice     Column = "in_price"
	ColumnPrice       Column = "price"
	ColumnInStock     Column = "in_stock"
	ColumnCategory    Column = "category"
	ColumnDescription Column = "description"
)

func (c Column) numeric() bool {
	switch c {
	case ColumnInPrice, ColumnPrice, ColumnInStock:
		return true
	default:
		return false
	}
}

type cellRef struct {
	id  int64
	col Column
}

// Table drives per-cell optimistic edits against the product API. Each cell is
// either displayed or being edited; at most one cell is editing at a time, and
// starting a new edit cancels the previous one.
//
// Commits apply locally before the server confirms. On failure the cell rolls
// back to the last confirmed value and a dismissible banner is raised.
//
// Table mirrors a single page's table state and is not safe for concurrent
// use.
type Table struct {
	client *Client

	rows  []Product
	index map[int64]int

	editing *cellRef
	draft   string

	updating map[int64]bool
	banner   string
}

func NewTable(client *Client) *Table {
	return &Table{
		client:   client,
		index:    make(map[int64]int),
		updating: make(map[int64]bool),
	}
}

// Load fetches the product listing (active products, name ascending) and
// resets all editing state.
func (t *Table) Load(ctx context.Context) error {
	products, err := t.client.FetchProducts(ctx, "")
	if err != nil {
		return fmt.Errorf("fetch products: %w", err)
	}

	t.rows = products
	t.index = make(map[int64]int, len(products))
	for i, p := range products {
		t.index[p.ID] = i
	}
	t.editing = nil
	t.draft = ""
	t.updating = make(map[int64]bool)

	return nil
}

// Rows returns the rows in listing order.
func (t *Table) Rows() []Product {
	rows := make([]Product, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Row returns one row by product ID.
func (t *Table) Row(id int64) (Product, bool) {
	i, ok := t.index[id]
	if !ok {
		return Product{}, false
	}
	return t.rows[i], true
}

// BeginEdit switches one cell into the editing state, seeding the draft from
// the current value. A previous edit in progress is discarded.
func (t *Table) BeginEdit(id int64, col Column) error {
	i, ok := t.index[id]
	if !ok {
		return fmt.Errorf("unknown product id: %d", id)
	}

	t.editing = &cellRef{id: id, col: col}
	t.draft = cellValue(t.rows[i], col)
	return nil
}

// Editing reports the cell currently in the editing state.
func (t *Table) Editing() (id int64, col Column, ok bool) {
	if t.editing == nil {
		return 0, "", false
	}
	return t.editing.id, t.editing.col, true
}

// Draft returns the in-progress edit value.
func (t *Table) Draft() string {
	return t.draft
}

// SetDraft replaces the in-progress edit value.
func (t *Table) SetDraft(value string) {
	t.draft = value
}

// Cancel discards the edit in progress without any network call.
func (t *Table) Cancel() {
	t.editing = nil
	t.draft = ""
}

// Commit coerces the draft per the column type, applies it to the row
// immediately and sends it to the update endpoint. Numeric drafts that fail to
// parse commit as 0. On failure the row reverts to its last confirmed value
// and the banner is set.
func (t *Table) Commit(ctx context.Context) error {
	if t.editing == nil {
		return nil
	}

	ref := *t.editing
	draft := t.draft
	t.editing = nil
	t.draft = ""

	i := t.index[ref.id]
	confirmed := t.rows[i]

	value := coerceDraft(ref.col, draft)
	applyLocal(&t.rows[i], ref.col, value)

	t.updating[ref.id] = true
	defer delete(t.updating, ref.id)

	updated, err := t.client.UpdateProduct(ctx, ref.id, ProductUpdate{string(ref.col): value})
	if err != nil {
		t.rows[i] = confirmed
		t.banner = "Failed to update product"
		return fmt.Errorf("update product: %w", err)
	}

	t.rows[i] = updated
	return nil
}

// IsUpdating reports whether a row has a commit in flight.
func (t *Table) IsUpdating(id int64) bool {
	return t.updating[id]
}

// Banner returns the current error banner, empty when none.
func (t *Table) Banner() string {
	return t.banner
}

// DismissBanner clears the error banner.
func (t *Table) DismissBanner() {
	t.banner = ""
}

// cellValue renders a cell for editing.
func cellValue(p Product, col Column) string {
	switch col {
	case ColumnName:
		return p.Name
	case ColumnInPrice:
		if p.InPrice == nil {
			return ""
		}
		return strconv.FormatFloat(*p.InPrice, 'f', -1, 64)
	case ColumnPrice:
		return strconv.FormatFloat(p.Price, 'f', -1, 64)
	case ColumnInStock:
		return strconv.Itoa(p.InStock)
	case ColumnCategory:
		if p.Category == nil {
			return ""
		}
		return *p.Category
	case ColumnDescription:
		if p.Description == nil {
			return ""
		}
		return *p.Description
	default:
		return ""
	}
}

// coerceDraft converts a draft to the payload value for its column. Numeric
// columns parse as float and fall back to 0, matching the edit widget.
func coerceDraft(col Column, draft string) any {
	if !col.numeric() {
		return draft
	}

	value, err := strconv.ParseFloat(draft, 64)
	if err != nil {
		return float64(0)
	}
	return value
}

func applyLocal(p *Product, col Column, value any) {
	switch col {
	case ColumnName:
		p.Name = value.(string)
	case ColumnInPrice:
		v := value.(float64)
		p.InPrice = &v
	case ColumnPrice:
		p.Price = value.(float64)
	case ColumnInStock:
		p.InStock = int(value.(float64))
	case ColumnCategory:
		v := value.(string)
		p.Category = &v
	case ColumnDescription:
		v := value.(string)
		p.Description = &v
	}
}
