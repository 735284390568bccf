package sheetgrid

import (
	"fmt"
	"strings"
)

// Orientation tells whether records run along rows or columns
type Orientation int

const (
	// Vertical: headers fill a row, records are rows
	Vertical Orientation = iota
	// Horizontal: headers fill a column, records are columns
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// ParseOrientation parses "vertical" or "horizontal"
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	default:
		return 0, invalidArgument("unknown orientation %q", s)
	}
}

// headers returns the header line without copying
func (c *Client) headers() []string {
	i := c.headerDepth - 1
	var src [][]string
	if c.orientation == Vertical {
		src = c.cache.rowsRef()
	} else {
		src = c.cache.columnsRef()
	}
	if i < 0 || i >= len(src) {
		return nil
	}
	return src[i]
}

// Headers returns the header labels: the row at the header depth for
// vertical sheets, the column at the header depth for horizontal ones
func (c *Client) Headers() ([]string, error) {
	if err := c.state().require(HasSheet); err != nil {
		return nil, err
	}
	return copyLine(c.headers()), nil
}

// HeaderIndex returns the 0-based offset of header within the header line
func (c *Client) HeaderIndex(header string) (int, error) {
	if err := c.state().require(HasSheet); err != nil {
		return 0, err
	}
	return c.headerIndex(header)
}

func (c *Client) headerIndex(header string) (int, error) {
	headers := c.headers()
	for i, h := range headers {
		if h == header {
			return i, nil
		}
	}

	detail := fmt.Sprintf("depth %d in %s orientation", c.headerDepth, c.orientation)
	if len(headers) > 0 {
		detail += fmt.Sprintf("; headers start with [%s, ...]", headers[0])
	} else {
		detail += "; header line is empty"
	}
	return 0, &IdentificationError{
		Resource:   "header",
		Identifier: fmt.Sprintf("%q", header),
		Detail:     detail,
	}
}
