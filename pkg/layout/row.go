package layout

// Glyph is a single character of a diagram row.
type Glyph byte

const (
	Blank  Glyph = ' '
	Bar    Glyph = '|'  // a track continues
	Marker Glyph = '*'  // a station
	Branch Glyph = '\\' // a split, or a column shifting right
	Merge  Glyph = '/'  // a join step, or a column shifting left
	Bridge Glyph = '_'  // the part of a join still to be closed
	Stop   Glyph = '"'  // a track ends
)

// RowKind classifies a row.
type RowKind int

const (
	// StationRow carries exactly one Marker plus the station text.
	StationRow RowKind = iota
	// ConnectorRow carries only bars.
	ConnectorRow
	// TransitionRow draws a split, join or stop.
	TransitionRow
	// NoteRow carries bars plus text that belongs to no track.
	NoteRow
)

// String returns the lowercase kind name.
func (k RowKind) String() string {
	switch k {
	case StationRow:
		return "station"
	case ConnectorRow:
		return "connector"
	case TransitionRow:
		return "transition"
	case NoteRow:
		return "note"
	default:
		return "unknown"
	}
}

// Cell is one column position of a row: Rail is the glyph in the column,
// Gap the glyph between it and the next column.
type Cell struct {
	Rail Glyph
	Gap  Glyph
}

// Row is one output line. Text is empty for connector and transition rows.
//
// Text position 2c is column c's rail and 2c+1 its gap, so a row of n cells
// spans 2n glyph positions.
type Row struct {
	Kind  RowKind
	Cells []Cell
	Text  string
}

// Columns returns the number of column positions the row spans.
func (r Row) Columns() int { return len(r.Cells) }

// Glyphs returns the row's glyph positions in ascending order, untrimmed.
func (r Row) Glyphs() []byte {
	b := make([]byte, 0, 2*len(r.Cells))
	for _, c := range r.Cells {
		b = append(b, byte(c.Rail), byte(c.Gap))
	}
	return b
}

// newRow returns a row of n blank cells.
func newRow(kind RowKind, n int) Row {
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = Cell{Rail: Blank, Gap: Blank}
	}
	return Row{Kind: kind, Cells: cells}
}

// set writes g at glyph position pos. Positions outside the row are ignored.
func (r Row) set(pos int, g Glyph) {
	if pos < 0 || pos >= 2*len(r.Cells) {
		return
	}
	if pos%2 == 0 {
		r.Cells[pos/2].Rail = g
	} else {
		r.Cells[pos/2].Gap = g
	}
}

func (r Row) rail(col int, g Glyph) { r.set(2*col, g) }
func (r Row) gap(col int, g Glyph)  { r.set(2*col+1, g) }

// bars draws a Bar in every column of [from, to).
func (r Row) bars(from, to int) {
	for c := from; c < to; c++ {
		r.rail(c, Bar)
	}
}
