package render

// Defaults for any Options field left at or below zero.
const (
	DefaultWidth          = 80
	DefaultMaxRows        = 100
	DefaultMaxRowsPerLine = 5
	DefaultMaxSpanRunes   = 80
	DefaultContextLines   = 3
	DefaultContextRunes   = 40
)

// Options configures one render call. Options is passed by value and never
// mutated; any numeric field at or below zero falls back to its default.
type Options struct {
	// Width is the display width budget for one row, in terminal cells.
	Width int
	// MaxRows caps the rows of a whole render. When the cap is met one
	// truncation marker row is emitted and the render stops.
	MaxRows int
	// MaxRowsPerLine caps the rows spent on a single replaced line. When the
	// cap is met one marker row closes that line and the render moves on.
	MaxRowsPerLine int
	// MaxSpanRunes caps the text shown for one highlighted span.
	MaxSpanRunes int
	// ContextLines is the number of unchanged lines shown before and after a
	// changed line.
	ContextLines int
	// ContextRunes is the number of unchanged characters kept on either side
	// of a changed span within a replaced line.
	ContextRunes int
	// Styler colors rows and spans. The zero value renders plain text.
	Styler Styler
	// Display, when set, transforms the body of unchanged context rows, for
	// example to add syntax highlighting. Changed rows always show the raw
	// text so the change coloring stays unambiguous.
	Display func(line int, body string) string
}

func (o Options) normalized() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.MaxRows <= 0 {
		o.MaxRows = DefaultMaxRows
	}
	if o.MaxRowsPerLine <= 0 {
		o.MaxRowsPerLine = DefaultMaxRowsPerLine
	}
	if o.MaxSpanRunes <= 0 {
		o.MaxSpanRunes = DefaultMaxSpanRunes
	}
	if o.ContextLines <= 0 {
		o.ContextLines = DefaultContextLines
	}
	if o.ContextRunes <= 0 {
		o.ContextRunes = DefaultContextRunes
	}
	return o
}

// Styler supplies the three colorings a render needs. Each function wraps its
// argument in style start and reset sequences; a nil function leaves text
// plain, so the zero Styler is the plain formatter.
type Styler struct {
	Removed func(string) string
	Added   func(string) string
	Marker  func(string) string
}

func (s Styler) removed(text string) string {
	if s.Removed == nil {
		return text
	}
	return s.Removed(text)
}

func (s Styler) added(text string) string {
	if s.Added == nil {
		return text
	}
	return s.Added(text)
}
