package profiles

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNameRequired is returned when a profile has an empty or blank name.
var ErrNameRequired = errors.New("profile name is required")

// BorderStyles lists the table border styles the formatter understands.
var BorderStyles = []string{"single", "double", "dotted", "dashed"}

// FontChoices lists the font names offered by the editor.
var FontChoices = []string{"Calibri", "Arial", "Times New Roman", "Helvetica", "Georgia", "Verdana"}

// Validate checks p against the profile schema. It is the service-side
// check; clients only require a non-blank name.
func Validate(p Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}

	pageFields := []struct {
		key string
		val float64
	}{
		{"width", p.Page.Width},
		{"height", p.Page.Height},
		{"top_margin", p.Page.TopMargin},
		{"bottom_margin", p.Page.BottomMargin},
		{"left_margin", p.Page.LeftMargin},
		{"right_margin", p.Page.RightMargin},
	}
	for _, f := range pageFields {
		if f.val < 0 {
			return fmt.Errorf("invalid page.%s: must be a positive number", f.key)
		}
	}

	fonts := []struct {
		key  string
		font Font
	}{
		{"body", p.Fonts.Body},
		{"heading1", p.Fonts.Heading1},
		{"heading2", p.Fonts.Heading2},
		{"heading3", p.Fonts.Heading3},
		{"heading4", p.Fonts.Heading4},
		{"heading5", p.Fonts.Heading5},
		{"heading6", p.Fonts.Heading6},
		{"table_header", p.Fonts.TableHeader},
		{"table_body", p.Fonts.TableBody},
	}
	for _, f := range fonts {
		if f.font.Name == "" {
			return fmt.Errorf("font %q missing 'name'", f.key)
		}
		if f.font.Size <= 0 {
			return fmt.Errorf("font %q size must be positive", f.key)
		}
	}

	headings := []float64{
		p.Headings.H1Size, p.Headings.H2Size, p.Headings.H3Size,
		p.Headings.H4Size, p.Headings.H5Size, p.Headings.H6Size,
	}
	for i, size := range headings {
		if size <= 0 {
			return fmt.Errorf("invalid headings.h%d_size: must be positive", i+1)
		}
	}

	if p.Tables.BorderWidth < 0 {
		return errors.New("tables.border_width must be a non-negative integer")
	}
	if p.Tables.MinColWidth <= 0 {
		return errors.New("tables.min_col_width must be positive")
	}
	if p.Tables.MaxColWidth <= 0 {
		return errors.New("tables.max_col_width must be positive")
	}

	if p.Paragraph.LineSpacing <= 0 {
		return errors.New("paragraph.line_spacing must be positive")
	}
	if p.Paragraph.SpaceBefore < 0 {
		return errors.New("paragraph.space_before must be non-negative")
	}
	if p.Paragraph.SpaceAfter < 0 {
		return errors.New("paragraph.space_after must be non-negative")
	}

	if p.PageNumbers.Position != "" && !p.PageNumbers.Position.Valid() {
		return errors.New("page_numbers.position is invalid")
	}
	switch p.PageNumbers.Format {
	case "", FormatPage, FormatPageOfPages, FormatCustom:
	default:
		return errors.New("page_numbers.format is invalid")
	}

	return nil
}
