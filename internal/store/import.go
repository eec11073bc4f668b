package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bkl/internal/backlog"
)

// ImportStats summarizes one backlog import.
type ImportStats struct {
	Sections    int // parsed sections written
	Items       int // individually headed items written
	TableItems  int // compact items flattened from table groups
	RawSections int // opaque blocks skipped (legend, roadmap, ...)
}

// ImportBacklog replaces the stored rows with the given parse result inside
// one transaction: sections and items are deleted and re-inserted, and the
// project sync timestamp is bumped. Table groups are flattened into their
// compact items; raw sections are counted but not stored as rows (their text
// survives in the markdown file itself).
func (s *Store) ImportBacklog(ctx context.Context, doc *backlog.Backlog) (ImportStats, error) {
	var stats ImportStats

	tx, err := s.sql.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("import backlog: begin txn: %w", err)
	}

	err = importInTxn(ctx, tx, doc, &stats)
	if err != nil {
		_ = tx.Rollback()

		return ImportStats{}, fmt.Errorf("import backlog: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return ImportStats{}, fmt.Errorf("import backlog: commit: %w", err)
	}

	return stats, nil
}

func importInTxn(ctx context.Context, tx *sql.Tx, doc *backlog.Backlog, stats *ImportStats) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM backlog_items`)
	if err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM sections`)
	if err != nil {
		return fmt.Errorf("clear sections: %w", err)
	}

	for ordinal, section := range doc.Sections {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sections (ordinal, display_id, title, raw_header) VALUES (?, ?, ?, ?)`,
			ordinal, section.ID, section.Title, section.RawHeader)
		if err != nil {
			return fmt.Errorf("insert section %q: %w", section.Title, err)
		}

		stats.Sections++

		for _, entry := range section.Entries {
			if item, ok := backlog.AsItem(entry); ok {
				err = insertItem(ctx, tx, ordinal, item, false)
				if err != nil {
					return err
				}

				stats.Items++

				continue
			}

			if group, ok := backlog.AsTableGroup(entry); ok {
				for i := range group.Items {
					compact := group.Items[i]
					compact.SectionIndex = group.SectionIndex

					err = insertItem(ctx, tx, ordinal, &compact, true)
					if err != nil {
						return err
					}

					stats.TableItems++
				}

				continue
			}

			if _, ok := backlog.AsRawSection(entry); ok {
				stats.RawSections++
			}
		}
	}

	_, err = tx.ExecContext(ctx, `UPDATE project SET synced_at = ? WHERE id = 1`,
		time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("bump synced_at: %w", err)
	}

	return nil
}

func insertItem(ctx context.Context, tx *sql.Tx, ordinal int, item *backlog.Item, fromTable bool) error {
	done := 0
	for _, c := range item.Criteria {
		if c.Checked {
			done++
		}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO backlog_items (
			id, type, number, section_ordinal, section_index, title, emoji,
			component, severity, priority, effort, description, user_story,
			criteria_total, criteria_done, from_table, raw_markdown
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Type, item.Number, ordinal, item.SectionIndex, item.Title,
		item.Emoji, item.Component, item.Severity, item.Priority, item.Effort,
		item.Description, item.UserStory, len(item.Criteria), done,
		boolToInt(fromTable), item.RawMarkdown)
	if err != nil {
		return fmt.Errorf("insert item %s: %w", item.ID, err)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
