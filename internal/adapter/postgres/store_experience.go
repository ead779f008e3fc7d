package postgres

import (
	"context"
	"fmt"

	"github.com/foliohq/folio/internal/domain/experience"
)

const experienceColumns = `id, company, role, location, start_date, end_date, summary, highlights, tech, sort_order, created_at, updated_at`

func (s *Store) ListExperience(ctx context.Context) ([]experience.Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+experienceColumns+` FROM experience_entries
		 ORDER BY sort_order ASC, start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list experience: %w", err)
	}
	defer rows.Close()

	var entries []experience.Entry
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetExperience(ctx context.Context, id string) (*experience.Entry, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+experienceColumns+` FROM experience_entries WHERE id = $1`, id)

	e, err := scanExperience(row)
	if err != nil {
		return nil, notFoundWrap(err, "get experience %s", id)
	}
	return &e, nil
}

func (s *Store) CreateExperience(ctx context.Context, req *experience.CreateRequest) (*experience.Entry, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO experience_entries (company, role, location, start_date, end_date, summary, highlights, tech, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+experienceColumns,
		req.Company, req.Role, req.Location, req.StartDate, req.EndDate,
		req.Summary, pgTextArray(req.Highlights), pgTextArray(req.Tech), req.SortOrder)

	e, err := scanExperience(row)
	if err != nil {
		return nil, notFoundWrap(err, "create experience at %q", req.Company)
	}
	return &e, nil
}

func (s *Store) UpdateExperience(ctx context.Context, e *experience.Entry) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE experience_entries
		 SET company = $2, role = $3, location = $4, start_date = $5, end_date = $6,
		     summary = $7, highlights = $8, tech = $9, sort_order = $10, updated_at = now()
		 WHERE id = $1`,
		e.ID, e.Company, e.Role, e.Location, e.StartDate, e.EndDate,
		e.Summary, pgTextArray(e.Highlights), pgTextArray(e.Tech), e.SortOrder)
	return execExpectOne(tag, err, "update experience %s", e.ID)
}

func (s *Store) DeleteExperience(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM experience_entries WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete experience %s", id)
}

func scanExperience(row scannable) (experience.Entry, error) {
	var e experience.Entry
	err := row.Scan(
		&e.ID, &e.Company, &e.Role, &e.Location, &e.StartDate, &e.EndDate,
		&e.Summary, &e.Highlights, &e.Tech, &e.SortOrder, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return experience.Entry{}, err
	}
	e.Highlights = orEmpty(e.Highlights)
	e.Tech = orEmpty(e.Tech)
	return e, nil
}
