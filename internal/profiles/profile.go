package profiles

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// DefaultName is the name of the protected default profile.
const DefaultName = "default"

// SchemaVersion is written into every profile produced by Default.
const SchemaVersion = "1.0"

// Profile is a named bundle of document-formatting settings.
type Profile struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Version     string      `json:"version,omitempty" yaml:"version,omitempty"`
	Page        Page        `json:"page" yaml:"page"`
	Fonts       Fonts       `json:"fonts" yaml:"fonts"`
	Headings    Headings    `json:"headings" yaml:"headings"`
	Tables      Tables      `json:"tables" yaml:"tables"`
	PageNumbers PageNumbers `json:"page_numbers" yaml:"page_numbers"`
	Paragraph   Paragraph   `json:"paragraph" yaml:"paragraph"`
}

// Page holds page dimensions and margins, all in inches.
type Page struct {
	Width          float64 `json:"width" yaml:"width"`
	Height         float64 `json:"height" yaml:"height"`
	TopMargin      float64 `json:"top_margin" yaml:"top_margin"`
	BottomMargin   float64 `json:"bottom_margin" yaml:"bottom_margin"`
	LeftMargin     float64 `json:"left_margin" yaml:"left_margin"`
	RightMargin    float64 `json:"right_margin" yaml:"right_margin"`
	HeaderDistance float64 `json:"header_distance" yaml:"header_distance"`
	FooterDistance float64 `json:"footer_distance" yaml:"footer_distance"`
}

// Font is one named font slot. Bold is optional; nil means unspecified.
type Font struct {
	Name string  `json:"name" yaml:"name"`
	Size float64 `json:"size" yaml:"size"`
	Bold *bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
}

// IsBold reports the bold flag, treating an unset flag as fallback.
func (f Font) IsBold(fallback bool) bool {
	if f.Bold == nil {
		return fallback
	}
	return *f.Bold
}

// Fonts holds the named font slots.
type Fonts struct {
	Body        Font `json:"body" yaml:"body"`
	Heading1    Font `json:"heading1" yaml:"heading1"`
	Heading2    Font `json:"heading2" yaml:"heading2"`
	Heading3    Font `json:"heading3" yaml:"heading3"`
	Heading4    Font `json:"heading4" yaml:"heading4"`
	Heading5    Font `json:"heading5" yaml:"heading5"`
	Heading6    Font `json:"heading6" yaml:"heading6"`
	TableHeader Font `json:"table_header" yaml:"table_header"`
	TableBody   Font `json:"table_body" yaml:"table_body"`
}

// Headings holds the six heading sizes in points and a shared bold flag.
type Headings struct {
	H1Size float64 `json:"h1_size" yaml:"h1_size"`
	H2Size float64 `json:"h2_size" yaml:"h2_size"`
	H3Size float64 `json:"h3_size" yaml:"h3_size"`
	H4Size float64 `json:"h4_size" yaml:"h4_size"`
	H5Size float64 `json:"h5_size" yaml:"h5_size"`
	H6Size float64 `json:"h6_size" yaml:"h6_size"`
	Bold   bool    `json:"bold" yaml:"bold"`
}

// Tables holds table border and column settings.
type Tables struct {
	BorderStyle  string  `json:"border_style" yaml:"border_style"`
	BorderWidth  int     `json:"border_width" yaml:"border_width"`
	BorderColor  string  `json:"border_color" yaml:"border_color"`
	HeaderBold   bool    `json:"header_bold" yaml:"header_bold"`
	HeaderCenter bool    `json:"header_center" yaml:"header_center"`
	AutoWidth    bool    `json:"auto_width" yaml:"auto_width"`
	MinColWidth  float64 `json:"min_col_width" yaml:"min_col_width"`
	MaxColWidth  float64 `json:"max_col_width" yaml:"max_col_width"`
}

// Position is where page numbers are placed.
type Position string

const (
	FooterLeft   Position = "footer_left"
	FooterCenter Position = "footer_center"
	FooterRight  Position = "footer_right"
)

// Positions lists every valid Position in display order.
var Positions = []Position{FooterLeft, FooterCenter, FooterRight}

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	for _, v := range Positions {
		if p == v {
			return true
		}
	}
	return false
}

// Page number formats.
const (
	FormatPage        = "PAGE"
	FormatPageOfPages = "PAGE_OF_PAGES"
	FormatCustom      = "custom"
)

// PageNumbers controls page-number placement.
type PageNumbers struct {
	Enabled    bool     `json:"enabled" yaml:"enabled"`
	Position   Position `json:"position" yaml:"position"`
	Format     string   `json:"format,omitempty" yaml:"format,omitempty"`
	CustomText string   `json:"custom_text,omitempty" yaml:"custom_text,omitempty"`
}

// Paragraph holds paragraph spacing.
type Paragraph struct {
	LineSpacing float64 `json:"line_spacing" yaml:"line_spacing"`
	SpaceBefore float64 `json:"space_before" yaml:"space_before"`
	SpaceAfter  float64 `json:"space_after" yaml:"space_after"`
}

// Summary is the listing view of a profile.
type Summary struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
}

func boolPtr(b bool) *bool { return &b }

// Default returns the built-in default profile. Each call returns a fresh copy.
func Default() Profile {
	return Profile{
		Name:        "Default",
		Description: "Standard formatting profile with current settings",
		Version:     SchemaVersion,
		Page: Page{
			Width:          8.5,
			Height:         11.0,
			TopMargin:      0.3,
			BottomMargin:   0.3,
			LeftMargin:     0.79,
			RightMargin:    0.33,
			HeaderDistance: 0.0,
			FooterDistance: 0.2,
		},
		Fonts: Fonts{
			Body:        Font{Name: "Calibri", Size: 11},
			Heading1:    Font{Name: "Calibri", Size: 14, Bold: boolPtr(true)},
			Heading2:    Font{Name: "Calibri", Size: 12, Bold: boolPtr(true)},
			Heading3:    Font{Name: "Calibri", Size: 11, Bold: boolPtr(true)},
			Heading4:    Font{Name: "Calibri", Size: 10, Bold: boolPtr(true)},
			Heading5:    Font{Name: "Calibri", Size: 9, Bold: boolPtr(true)},
			Heading6:    Font{Name: "Calibri", Size: 9, Bold: boolPtr(true)},
			TableHeader: Font{Name: "Calibri", Size: 10, Bold: boolPtr(true)},
			TableBody:   Font{Name: "Calibri", Size: 10, Bold: boolPtr(false)},
		},
		Headings: Headings{
			H1Size: 14,
			H2Size: 12,
			H3Size: 11,
			H4Size: 10,
			H5Size: 9,
			H6Size: 9,
			Bold:   true,
		},
		Tables: Tables{
			BorderStyle:  "single",
			BorderWidth:  8,
			BorderColor:  "000000",
			HeaderBold:   true,
			HeaderCenter: true,
			AutoWidth:    true,
			MinColWidth:  0.35,
			MaxColWidth:  3.0,
		},
		PageNumbers: PageNumbers{
			Enabled:  true,
			Position: FooterRight,
			Format:   FormatPage,
		},
		Paragraph: Paragraph{
			LineSpacing: 1.0,
		},
	}
}

// Template returns the default profile renamed for a "create" flow.
// An empty description becomes "Custom profile: <name>".
func Template(name, description string) Profile {
	p := Default()
	p.Name = name
	if description == "" {
		description = "Custom profile: " + name
	}
	p.Description = description
	return p
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	c := p
	c.Fonts = Fonts{
		Body:        p.Fonts.Body.clone(),
		Heading1:    p.Fonts.Heading1.clone(),
		Heading2:    p.Fonts.Heading2.clone(),
		Heading3:    p.Fonts.Heading3.clone(),
		Heading4:    p.Fonts.Heading4.clone(),
		Heading5:    p.Fonts.Heading5.clone(),
		Heading6:    p.Fonts.Heading6.clone(),
		TableHeader: p.Fonts.TableHeader.clone(),
		TableBody:   p.Fonts.TableBody.clone(),
	}
	return c
}

func (f Font) clone() Font {
	if f.Bold != nil {
		f.Bold = boolPtr(*f.Bold)
	}
	return f
}

// Summarize returns the listing view of p.
func (p Profile) Summarize() Summary {
	return Summary{Name: p.Name, Description: p.Description, Version: p.Version}
}

// Parse decodes a JSON profile on top of Default, so fields missing from
// data keep their default values.
func Parse(data []byte) (Profile, error) {
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	return p, nil
}

// ParseYAML decodes a YAML profile on top of Default.
func ParseYAML(data []byte) (Profile, error) {
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	return p, nil
}

// MarshalYAML serializes p for export.
func MarshalYAML(p Profile) ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding profile %q: %w", p.Name, err)
	}
	return data, nil
}

// ProfileSummary returns a one-line description of the main settings.
func ProfileSummary(p Profile) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%gx%g in", p.Page.Width, p.Page.Height))
	parts = append(parts, fmt.Sprintf("%s %gpt", p.Fonts.Body.Name, p.Fonts.Body.Size))
	parts = append(parts, fmt.Sprintf("%s borders", p.Tables.BorderStyle))
	if p.PageNumbers.Enabled {
		parts = append(parts, "page numbers "+strings.ReplaceAll(string(p.PageNumbers.Position), "_", " "))
	} else {
		parts = append(parts, "no page numbers")
	}
	return strings.Join(parts, ", ")
}
