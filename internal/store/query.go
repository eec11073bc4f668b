package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ItemRow is the SQLite-backed view of one imported item.
type ItemRow struct {
	ID             string
	Type           string
	Number         int
	SectionOrdinal int
	SectionIndex   int
	SectionTitle   string
	Title          string
	Emoji          string
	Component      string
	Severity       string
	Priority       string
	Effort         string
	Description    string
	UserStory      string
	CriteriaTotal  int
	CriteriaDone   int
	FromTable      bool
	RawMarkdown    string
}

// QueryOptions defines optional filters for QueryItems. Zero values mean
// "no filter". Results are ordered by document position.
type QueryOptions struct {
	Type     string // exact type code
	Severity string // exact severity (P0..P4)
	Priority string // exact priority (Haute/Moyenne/Faible)
	// Section filters by section ordinal when SectionSet is true.
	// A separate flag because ordinal 0 is a valid section.
	Section    int
	SectionSet bool
	Limit      int
	Offset     int
}

const itemColumns = `
	i.id, i.type, i.number, i.section_ordinal, i.section_index, s.title,
	i.title, i.emoji, i.component, i.severity, i.priority, i.effort,
	i.description, i.user_story, i.criteria_total, i.criteria_done,
	i.from_table, i.raw_markdown`

// QueryItems reads imported items, filtered and ordered by their position in
// the document.
func (s *Store) QueryItems(ctx context.Context, opts *QueryOptions) ([]ItemRow, error) {
	options := QueryOptions{}
	if opts != nil {
		options = *opts
	}

	if options.Limit < 0 || options.Offset < 0 {
		return nil, errors.New("query items: limit/offset must be non-negative")
	}

	var (
		where []string
		args  []any
	)

	if options.Type != "" {
		where = append(where, "i.type = ?")
		args = append(args, options.Type)
	}

	if options.Severity != "" {
		where = append(where, "i.severity = ?")
		args = append(args, options.Severity)
	}

	if options.Priority != "" {
		where = append(where, "i.priority = ?")
		args = append(args, options.Priority)
	}

	if options.SectionSet {
		where = append(where, "i.section_ordinal = ?")
		args = append(args, options.Section)
	}

	var query strings.Builder

	query.WriteString("SELECT " + itemColumns + `
		FROM backlog_items i
		JOIN sections s ON s.ordinal = i.section_ordinal`)

	if len(where) > 0 {
		query.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	query.WriteString(" ORDER BY i.section_ordinal, i.section_index, i.number")

	if options.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, options.Limit)

		if options.Offset > 0 {
			query.WriteString(" OFFSET ?")
			args = append(args, options.Offset)
		}
	}

	rows, err := s.sql.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []ItemRow

	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("query items: %w", scanErr)
		}

		items = append(items, item)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	return items, nil
}

// GetItem reads a single item by id. Returns ErrItemNotFound when absent.
func (s *Store) GetItem(ctx context.Context, id string) (*ItemRow, error) {
	row := s.sql.QueryRowContext(ctx, "SELECT "+itemColumns+`
		FROM backlog_items i
		JOIN sections s ON s.ordinal = i.section_ordinal
		WHERE i.id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get item %s: %w", id, ErrItemNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}

	return &item, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(r rowScanner) (ItemRow, error) {
	var (
		item      ItemRow
		fromTable int
	)

	err := r.Scan(
		&item.ID, &item.Type, &item.Number, &item.SectionOrdinal, &item.SectionIndex,
		&item.SectionTitle, &item.Title, &item.Emoji, &item.Component, &item.Severity,
		&item.Priority, &item.Effort, &item.Description, &item.UserStory,
		&item.CriteriaTotal, &item.CriteriaDone, &fromTable, &item.RawMarkdown,
	)
	if err != nil {
		return ItemRow{}, err
	}

	item.FromTable = fromTable != 0

	return item, nil
}
