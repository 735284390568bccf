// Package sheetgrid mirrors a sheet of a remote spreadsheet document into
// an in-memory grid, answers header-aware row and column lookups against
// it, and buffers cell writes until the next refresh.
//
// A Client is not safe for concurrent use. Callers sharing one between
// goroutines must synchronise access themselves.
package sheetgrid

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

// Client is the main grid client
type Client struct {
	config      Config
	log         zerolog.Logger
	connection  ConnectionState
	service     Service
	document    Document
	documentID  string
	sheet       Worksheet
	sheetLabel  string
	cache       *Cache
	buffer      *Buffer
	orientation Orientation
	headerDepth int
}

// New authenticates through factory and returns a client in the HasClient
// state. Malformed credentials fail with a *SetupError.
func New(ctx context.Context, creds Credentials, factory ServiceFactory, config *Config) (*Client, error) {
	// Use default config if not provided
	if config == nil {
		config = DefaultConfig()
	}

	if err := validateCredentials(creds); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, &SetupError{Reason: "no service factory provided"}
	}

	service, err := factory(ctx, creds)
	if err != nil {
		return nil, &SetupError{Reason: "failed to create sheet service", Err: err}
	}
	if service == nil {
		return nil, &SetupError{Reason: "service factory returned no service"}
	}

	return &Client{
		config:     *config,
		log:        config.logger(),
		connection: HasClient,
		service:    service,
		cache:      NewCache(),
		buffer:     NewBuffer(),
	}, nil
}

func (c *Client) state() ConnectionState {
	if c == nil {
		return NoClient
	}
	return c.connection
}

// State returns how far the client has been set up
func (c *Client) State() ConnectionState {
	return c.state()
}

// Orientation returns the orientation of the connected sheet
func (c *Client) Orientation() Orientation {
	if c == nil {
		return Vertical
	}
	return c.orientation
}

// HeaderDepth returns the 1-based header depth of the connected sheet, or 0
func (c *Client) HeaderDepth() int {
	if c == nil {
		return 0
	}
	return c.headerDepth
}

// ConnectDocument opens identifier, trying it as a key, a name and a url in
// that order. It resets the sheet, cache and pending edits.
func (c *Client) ConnectDocument(ctx context.Context, identifier string) error {
	if err := c.state().require(HasClient); err != nil {
		return err
	}

	var doc Document
	var resolvedBy IdentifierKind
	for _, kind := range identifierOrder {
		d, err := c.service.Open(ctx, identifier, kind)
		if errors.Is(err, ErrNotFound) || (err == nil && d == nil) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to open document %q by %s: %w", identifier, kind, err)
		}
		doc, resolvedBy = d, kind
		break
	}
	if doc == nil {
		return &IdentificationError{
			Resource:   "document",
			Identifier: fmt.Sprintf("<%s>", identifier),
			Detail:     "did not fit one of the formats (key, name, url)",
		}
	}

	if n := c.buffer.Len(); n > 0 {
		c.log.Warn().
			Int("edits", n).
			Str("document", c.documentID).
			Msg("Discarding pending edits on document change")
	}

	c.document = doc
	c.documentID = identifier
	c.sheet = nil
	c.sheetLabel = ""
	c.cache.Clear()
	c.buffer = NewBuffer()
	c.orientation = Vertical
	c.headerDepth = 0
	c.connection = HasDocument

	c.log.Debug().
		Str("document", identifier).
		Stringer("resolved_by", resolvedBy).
		Msg("Connected document")
	return nil
}

// ConnectSheet selects a sheet of the connected document and loads it.
// Edits pending against a previously connected sheet are written to that
// sheet first.
func (c *Client) ConnectSheet(ctx context.Context, ref SheetRef, orientation Orientation, headerDepth int) error {
	if err := c.state().require(HasDocument); err != nil {
		return err
	}
	if orientation != Vertical && orientation != Horizontal {
		return invalidArgument("unknown orientation %d", int(orientation))
	}
	if headerDepth < 1 {
		return invalidArgument("header depth must be at least 1, got %d", headerDepth)
	}

	var (
		ws    Worksheet
		label string
		err   error
	)
	switch r := ref.(type) {
	case SheetName:
		label = fmt.Sprintf("name '%s'", string(r))
		ws, err = c.document.Worksheet(ctx, string(r))
	case SheetIndex:
		if r < 0 {
			return invalidArgument("negative sheet index %d", int(r))
		}
		label = fmt.Sprintf("index <%d>", int(r))
		ws, err = c.document.WorksheetByIndex(ctx, int(r))
	default:
		return invalidArgument("invalid sheet identifier of type %T", ref)
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to resolve sheet with %s: %w", label, err)
	}
	if err != nil || ws == nil {
		return &IdentificationError{Resource: "sheet", Identifier: "with " + label}
	}

	if c.sheet != nil {
		if err := c.flush(ctx); err != nil {
			return err
		}
	}

	c.sheet = ws
	c.sheetLabel = label
	c.orientation = orientation
	c.headerDepth = headerDepth
	c.cache.Clear()
	c.connection = HasSheet

	c.log.Debug().
		Str("sheet", label).
		Stringer("orientation", orientation).
		Int("header_depth", headerDepth).
		Msg("Connected sheet")

	return c.refresh(ctx)
}

// Refresh writes pending edits, then reloads the grid from the service
func (c *Client) Refresh(ctx context.Context) error {
	if err := c.state().require(HasSheet); err != nil {
		return err
	}
	return c.refresh(ctx)
}

// prepare checks the sheet precondition and optionally refreshes
func (c *Client) prepare(ctx context.Context, refresh bool) error {
	if err := c.state().require(HasSheet); err != nil {
		return err
	}
	if refresh {
		return c.refresh(ctx)
	}
	return nil
}

func (c *Client) refresh(ctx context.Context) error {
	if err := c.flush(ctx); err != nil {
		return err
	}
	return c.fetch(ctx)
}

// flush writes the buffer; it is only cleared once the write succeeds
func (c *Client) flush(ctx context.Context) error {
	if c.buffer.Len() == 0 {
		return nil
	}

	edits := c.buffer.Pending()
	if err := c.sheet.WriteCells(ctx, edits); err != nil {
		return fmt.Errorf("failed to write %d pending edits: %w", len(edits), err)
	}
	c.buffer.Clear()

	c.log.Debug().
		Str("sheet", c.sheetLabel).
		Int("edits", len(edits)).
		Msg("Flushed pending edits")
	return nil
}

func (c *Client) fetch(ctx context.Context) error {
	values, err := c.sheet.FetchAllValues(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch sheet values: %w", err)
	}
	c.cache.Load(values)
	return nil
}

// Grid returns a copy of the cached grid
func (c *Client) Grid() (Grid, error) {
	if err := c.state().require(HasSheet); err != nil {
		return nil, err
	}
	return c.cache.Rows(), nil
}

// Pending returns a copy of the edits waiting for the next refresh
func (c *Client) Pending() []CellEdit {
	if c.state() < HasDocument {
		return nil
	}
	return c.buffer.Pending()
}

// DeleteRows removes the given 0-based rows from the sheet and reloads the
// grid. Deletions are applied immediately and do not flush pending edits.
func (c *Client) DeleteRows(ctx context.Context, rows ...int) error {
	if err := c.state().require(HasSheet); err != nil {
		return err
	}
	indices, err := oneBased(rows, "row")
	if err != nil {
		return err
	}
	if err := c.sheet.DeleteRows(ctx, indices); err != nil {
		return fmt.Errorf("failed to delete rows %v: %w", indices, err)
	}

	c.log.Debug().Str("sheet", c.sheetLabel).Ints("rows", indices).Msg("Deleted rows")
	return c.fetch(ctx)
}

// DeleteColumns removes the given 0-based columns from the sheet and
// reloads the grid. Deletions do not flush pending edits.
func (c *Client) DeleteColumns(ctx context.Context, cols ...int) error {
	if err := c.state().require(HasSheet); err != nil {
		return err
	}
	indices, err := oneBased(cols, "column")
	if err != nil {
		return err
	}
	if err := c.sheet.DeleteColumns(ctx, indices); err != nil {
		return fmt.Errorf("failed to delete columns %v: %w", indices, err)
	}

	c.log.Debug().Str("sheet", c.sheetLabel).Ints("columns", indices).Msg("Deleted columns")
	return c.fetch(ctx)
}

// oneBased sorts and de-duplicates 0-based indices and shifts them to 1-based
func oneBased(indices []int, what string) ([]int, error) {
	if len(indices) == 0 {
		return nil, invalidArgument("no %s indices given", what)
	}

	seen := make(map[int]bool, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 {
			return nil, invalidArgument("negative %s index %d", what, i)
		}
		if !seen[i] {
			seen[i] = true
			out = append(out, i+1)
		}
	}
	sort.Ints(out)
	return out, nil
}
