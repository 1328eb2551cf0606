package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdf3md/profilectl/internal/profiles"
)

// Tab groups the fields shown together in the editor.
type Tab int

const (
	TabPage Tab = iota
	TabFonts
	TabHeadings
	TabTables
	TabPageNumbers
)

// AllTabs lists every tab in display order.
var AllTabs = []Tab{TabPage, TabFonts, TabHeadings, TabTables, TabPageNumbers}

// String returns the display name for a tab.
func (t Tab) String() string {
	switch t {
	case TabPage:
		return "Page Setup"
	case TabFonts:
		return "Fonts"
	case TabHeadings:
		return "Headings"
	case TabTables:
		return "Tables"
	case TabPageNumbers:
		return "Page Numbers"
	default:
		return "Unknown"
	}
}

// Kind is the value type of a field.
type Kind int

const (
	KindNumber Kind = iota
	KindInteger
	KindBool
	KindChoice
	KindText
)

// Field describes one editable leaf of a profile.
type Field struct {
	Key     string
	Label   string
	Tab     Tab
	Kind    Kind
	Options []string // for KindChoice

	get func(p *profiles.Profile) string
	set func(p *profiles.Profile, v string) error
}

// Get returns the current value of the field in p, formatted for display.
func (f Field) Get(p profiles.Profile) string {
	return f.get(&p)
}

func (f Field) apply(p *profiles.Profile, raw string) error {
	raw = strings.TrimSpace(raw)
	if f.Kind == KindChoice && !contains(f.Options, raw) {
		return fmt.Errorf("%s: %q is not one of %s", f.Key, raw, strings.Join(f.Options, ", "))
	}
	if err := f.set(p, raw); err != nil {
		return fmt.Errorf("%s: %w", f.Key, err)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func number(key, label string, tab Tab, ptr func(p *profiles.Profile) *float64) Field {
	return Field{
		Key: key, Label: label, Tab: tab, Kind: KindNumber,
		get: func(p *profiles.Profile) string { return formatFloat(*ptr(p)) },
		set: func(p *profiles.Profile, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%q is not a number", v)
			}
			*ptr(p) = f
			return nil
		},
	}
}

// whole is a float-backed field edited as an integer (font and heading sizes).
func whole(key, label string, tab Tab, ptr func(p *profiles.Profile) *float64) Field {
	f := number(key, label, tab, ptr)
	f.Kind = KindInteger
	f.set = func(p *profiles.Profile, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%q is not a whole number", v)
		}
		*ptr(p) = float64(n)
		return nil
	}
	return f
}

func integer(key, label string, tab Tab, ptr func(p *profiles.Profile) *int) Field {
	return Field{
		Key: key, Label: label, Tab: tab, Kind: KindInteger,
		get: func(p *profiles.Profile) string { return strconv.Itoa(*ptr(p)) },
		set: func(p *profiles.Profile, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%q is not a whole number", v)
			}
			*ptr(p) = n
			return nil
		},
	}
}

func boolean(key, label string, tab Tab, ptr func(p *profiles.Profile) *bool) Field {
	return Field{
		Key: key, Label: label, Tab: tab, Kind: KindBool,
		get: func(p *profiles.Profile) string { return strconv.FormatBool(*ptr(p)) },
		set: func(p *profiles.Profile, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%q is not true or false", v)
			}
			*ptr(p) = b
			return nil
		},
	}
}

// fontBold edits an optional bold flag; unset reads as fallback.
func fontBold(key, label string, fallback bool, font func(p *profiles.Profile) *profiles.Font) Field {
	return Field{
		Key: key, Label: label, Tab: TabFonts, Kind: KindBool,
		get: func(p *profiles.Profile) string { return strconv.FormatBool(font(p).IsBold(fallback)) },
		set: func(p *profiles.Profile, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%q is not true or false", v)
			}
			font(p).Bold = &b
			return nil
		},
	}
}

func choice(key, label string, tab Tab, options []string, ptr func(p *profiles.Profile) *string) Field {
	return Field{
		Key: key, Label: label, Tab: tab, Kind: KindChoice, Options: options,
		get: func(p *profiles.Profile) string { return *ptr(p) },
		set: func(p *profiles.Profile, v string) error {
			*ptr(p) = v
			return nil
		},
	}
}

func positionOptions() []string {
	out := make([]string, len(profiles.Positions))
	for i, p := range profiles.Positions {
		out[i] = string(p)
	}
	return out
}

var fields = []Field{
	number("page.width", "Width (inches)", TabPage, func(p *profiles.Profile) *float64 { return &p.Page.Width }),
	number("page.height", "Height (inches)", TabPage, func(p *profiles.Profile) *float64 { return &p.Page.Height }),
	number("page.top_margin", "Top margin", TabPage, func(p *profiles.Profile) *float64 { return &p.Page.TopMargin }),
	number("page.bottom_margin", "Bottom margin", TabPage, func(p *profiles.Profile) *float64 { return &p.Page.BottomMargin }),
	number("page.left_margin", "Left margin", TabPage, func(p *profiles.Profile) *float64 { return &p.Page.LeftMargin }),
	number("page.right_margin", "Right margin", TabPage, func(p *profiles.Profile) *float64 { return &p.Page.RightMargin }),
	number("page.header_distance", "Header distance", TabPage, func(p *profiles.Profile) *float64 { return &p.Page.HeaderDistance }),
	number("page.footer_distance", "Footer distance", TabPage, func(p *profiles.Profile) *float64 { return &p.Page.FooterDistance }),

	choice("fonts.body.name", "Body font", TabFonts, profiles.FontChoices, func(p *profiles.Profile) *string { return &p.Fonts.Body.Name }),
	whole("fonts.body.size", "Body size (pt)", TabFonts, func(p *profiles.Profile) *float64 { return &p.Fonts.Body.Size }),
	choice("fonts.table_header.name", "Table header font", TabFonts, profiles.FontChoices, func(p *profiles.Profile) *string { return &p.Fonts.TableHeader.Name }),
	whole("fonts.table_header.size", "Table header size (pt)", TabFonts, func(p *profiles.Profile) *float64 { return &p.Fonts.TableHeader.Size }),
	fontBold("fonts.table_header.bold", "Table header bold", true, func(p *profiles.Profile) *profiles.Font { return &p.Fonts.TableHeader }),
	choice("fonts.table_body.name", "Table body font", TabFonts, profiles.FontChoices, func(p *profiles.Profile) *string { return &p.Fonts.TableBody.Name }),
	whole("fonts.table_body.size", "Table body size (pt)", TabFonts, func(p *profiles.Profile) *float64 { return &p.Fonts.TableBody.Size }),

	whole("headings.h1_size", "H1 size", TabHeadings, func(p *profiles.Profile) *float64 { return &p.Headings.H1Size }),
	whole("headings.h2_size", "H2 size", TabHeadings, func(p *profiles.Profile) *float64 { return &p.Headings.H2Size }),
	whole("headings.h3_size", "H3 size", TabHeadings, func(p *profiles.Profile) *float64 { return &p.Headings.H3Size }),
	whole("headings.h4_size", "H4 size", TabHeadings, func(p *profiles.Profile) *float64 { return &p.Headings.H4Size }),
	whole("headings.h5_size", "H5 size", TabHeadings, func(p *profiles.Profile) *float64 { return &p.Headings.H5Size }),
	whole("headings.h6_size", "H6 size", TabHeadings, func(p *profiles.Profile) *float64 { return &p.Headings.H6Size }),
	boolean("headings.bold", "Bold headings", TabHeadings, func(p *profiles.Profile) *bool { return &p.Headings.Bold }),

	choice("tables.border_style", "Border style", TabTables, profiles.BorderStyles, func(p *profiles.Profile) *string { return &p.Tables.BorderStyle }),
	integer("tables.border_width", "Border width", TabTables, func(p *profiles.Profile) *int { return &p.Tables.BorderWidth }),
	{
		Key: "tables.border_color", Label: "Border color (hex)", Tab: TabTables, Kind: KindText,
		get: func(p *profiles.Profile) string { return p.Tables.BorderColor },
		set: func(p *profiles.Profile, v string) error {
			p.Tables.BorderColor = strings.TrimPrefix(v, "#")
			return nil
		},
	},
	boolean("tables.header_bold", "Bold header row", TabTables, func(p *profiles.Profile) *bool { return &p.Tables.HeaderBold }),
	boolean("tables.header_center", "Center header row", TabTables, func(p *profiles.Profile) *bool { return &p.Tables.HeaderCenter }),
	number("tables.min_col_width", "Min column width", TabTables, func(p *profiles.Profile) *float64 { return &p.Tables.MinColWidth }),
	number("tables.max_col_width", "Max column width", TabTables, func(p *profiles.Profile) *float64 { return &p.Tables.MaxColWidth }),

	boolean("page_numbers.enabled", "Show page numbers", TabPageNumbers, func(p *profiles.Profile) *bool { return &p.PageNumbers.Enabled }),
	{
		Key: "page_numbers.position", Label: "Position", Tab: TabPageNumbers, Kind: KindChoice, Options: positionOptions(),
		get: func(p *profiles.Profile) string { return string(p.PageNumbers.Position) },
		set: func(p *profiles.Profile, v string) error {
			p.PageNumbers.Position = profiles.Position(v)
			return nil
		},
	},
}

// Fields returns every editable field in display order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldsFor returns the fields shown on tab.
func FieldsFor(tab Tab) []Field {
	var out []Field
	for _, f := range fields {
		if f.Tab == tab {
			out = append(out, f)
		}
	}
	return out
}

// Lookup finds a field by key.
func Lookup(key string) (Field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
