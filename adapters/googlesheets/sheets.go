package googlesheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ideamans/go-sheetgrid"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var (
	keyRe    = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	urlKeyRe = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)
	oldKeyRe = regexp.MustCompile(`[?&]key=([a-zA-Z0-9_-]+)`)
)

// Service implements sheetgrid.Service for Google Sheets. Names are
// resolved through the Drive API.
type Service struct {
	sheets *sheets.Service
	drive  *drive.Service
	config Config
}

// NewService creates a new Google Sheets service with provided options
func NewService(ctx context.Context, config Config, opts ...option.ClientOption) (*Service, error) {
	sheetsService, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Service{
		sheets: sheetsService,
		drive:  driveService,
		config: config.withDefaults(),
	}, nil
}

// Factory returns a sheetgrid.ServiceFactory that authenticates with the
// credentials handed to sheetgrid.New. opts are applied after the
// credential option.
func Factory(config Config, opts ...option.ClientOption) sheetgrid.ServiceFactory {
	return func(ctx context.Context, creds sheetgrid.Credentials) (sheetgrid.Service, error) {
		config := config.withDefaults()
		credOpt, err := CredentialsOption(ctx, creds, config.Scopes)
		if err != nil {
			return nil, err
		}
		return NewService(ctx, config, append([]option.ClientOption{credOpt}, opts...)...)
	}
}

// ExtractIDFromURL returns the spreadsheet key embedded in a spreadsheet URL
func ExtractIDFromURL(rawURL string) (string, bool) {
	if m := urlKeyRe.FindStringSubmatch(rawURL); m != nil {
		return m[1], true
	}
	if m := oldKeyRe.FindStringSubmatch(rawURL); m != nil {
		return m[1], true
	}
	return "", false
}

// Open implements sheetgrid.Service
func (s *Service) Open(ctx context.Context, identifier string, kind sheetgrid.IdentifierKind) (sheetgrid.Document, error) {
	switch kind {
	case sheetgrid.ByKey:
		return s.openByKey(ctx, identifier)
	case sheetgrid.ByName:
		key, err := s.findByName(ctx, identifier)
		if err != nil {
			return nil, err
		}
		return s.openByKey(ctx, key)
	case sheetgrid.ByURL:
		key, ok := ExtractIDFromURL(identifier)
		if !ok {
			return nil, sheetgrid.ErrNotFound
		}
		return s.openByKey(ctx, key)
	default:
		return nil, sheetgrid.ErrNotFound
	}
}

func (s *Service) openByKey(ctx context.Context, key string) (*document, error) {
	// Keys never contain spaces or slashes; skip the round trip for names and urls
	if !keyRe.MatchString(key) {
		return nil, sheetgrid.ErrNotFound
	}

	ss, err := s.sheets.Spreadsheets.Get(key).
		Fields("spreadsheetId", "properties.title").
		Context(ctx).
		Do()
	if err != nil {
		if isNotFound(err) {
			return nil, sheetgrid.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	title := ""
	if ss.Properties != nil {
		title = ss.Properties.Title
	}
	log.Debug().Str("spreadsheet_id", ss.SpreadsheetId).Str("title", title).Msg("Opened spreadsheet")

	return &document{service: s, id: ss.SpreadsheetId, title: title}, nil
}

func (s *Service) findByName(ctx context.Context, name string) (string, error) {
	escaped := strings.ReplaceAll(strings.ReplaceAll(name, `\`, `\\`), `'`, `\'`)
	q := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false", escaped)

	resp, err := s.drive.Files.List().
		Q(q).
		Fields("files(id, name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to search spreadsheet by name: %w", err)
	}
	if len(resp.Files) == 0 {
		return "", sheetgrid.ErrNotFound
	}
	return resp.Files[0].Id, nil
}

type document struct {
	service *Service
	id      string
	title   string
}

func (d *document) properties(ctx context.Context) ([]*sheets.SheetProperties, error) {
	ss, err := d.service.sheets.Spreadsheets.Get(d.id).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list sheets of %s: %w", d.id, err)
	}
	props := make([]*sheets.SheetProperties, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			props = append(props, sh.Properties)
		}
	}
	sort.SliceStable(props, func(i, j int) bool {
		return props[i].Index < props[j].Index
	})
	return props, nil
}

// Worksheet implements sheetgrid.Document
func (d *document) Worksheet(ctx context.Context, name string) (sheetgrid.Worksheet, error) {
	props, err := d.properties(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range props {
		if p.Title == name {
			return d.worksheet(p), nil
		}
	}
	return nil, sheetgrid.ErrNotFound
}

// WorksheetByIndex implements sheetgrid.Document
func (d *document) WorksheetByIndex(ctx context.Context, index int) (sheetgrid.Worksheet, error) {
	props, err := d.properties(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(props) {
		return nil, sheetgrid.ErrNotFound
	}
	return d.worksheet(props[index]), nil
}

func (d *document) worksheet(p *sheets.SheetProperties) *worksheet {
	return &worksheet{
		service:       d.service,
		spreadsheetID: d.id,
		sheetID:       p.SheetId,
		title:         p.Title,
	}
}

type worksheet struct {
	service       *Service
	spreadsheetID string
	sheetID       int64
	title         string
}

// FetchAllValues implements sheetgrid.Worksheet
func (w *worksheet) FetchAllValues(ctx context.Context) ([][]string, error) {
	resp, err := w.service.sheets.Spreadsheets.Values.Get(w.spreadsheetID, quoteTitle(w.title)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet data: %w", err)
	}

	values := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		line := make([]string, len(row))
		for j, v := range row {
			line[j] = cellString(v)
		}
		values[i] = line
	}
	return values, nil
}

// WriteCells implements sheetgrid.Worksheet
func (w *worksheet) WriteCells(ctx context.Context, edits []sheetgrid.CellEdit) error {
	if len(edits) == 0 {
		return nil
	}

	data := make([]*sheets.ValueRange, 0, len(edits))
	for _, e := range edits {
		data = append(data, &sheets.ValueRange{
			Range:  quoteTitle(w.title) + "!" + e.A1(),
			Values: [][]interface{}{{e.Value}},
		})
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: w.service.config.ValueInputOption,
		Data:             data,
	}
	_, err := w.service.sheets.Spreadsheets.Values.BatchUpdate(w.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update cells: %w", err)
	}

	log.Debug().Str("sheet", w.title).Int("cells", len(edits)).Msg("Updated cells")
	return nil
}

// DeleteRows implements sheetgrid.Worksheet
func (w *worksheet) DeleteRows(ctx context.Context, indices []int) error {
	return w.deleteDimension(ctx, "ROWS", indices)
}

// DeleteColumns implements sheetgrid.Worksheet
func (w *worksheet) DeleteColumns(ctx context.Context, indices []int) error {
	return w.deleteDimension(ctx, "COLUMNS", indices)
}

func (w *worksheet) deleteDimension(ctx context.Context, dimension string, indices []int) error {
	if len(indices) == 0 {
		return nil
	}

	// Highest first so earlier deletions do not shift later ones
	ordered := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))

	requests := make([]*sheets.Request, 0, len(ordered))
	for _, i := range ordered {
		requests = append(requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:         w.sheetID,
					Dimension:       dimension,
					StartIndex:      int64(i - 1),
					EndIndex:        int64(i),
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		})
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}
	_, err := w.service.sheets.Spreadsheets.BatchUpdate(w.spreadsheetID, batchUpdate).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to delete %s from %s: %w", strings.ToLower(dimension), w.title, err)
	}
	return nil
}

// quoteTitle quotes a sheet title for use in A1 ranges
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// cellString converts a Google Sheets cell value to its string form
func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusBadRequest
	}
	return false
}
