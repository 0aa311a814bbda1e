package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/service/templates"
)

const templateColumns = `id, name, tone, COALESCE(category,''), COALESCE(structure,''),
		       keywords, COALESCE(description,''), created_at, updated_at`

// TemplateRepo implements templates.Repository against PostgreSQL.
type TemplateRepo struct{ db *sql.DB }

// NewTemplateRepo creates a Postgres-backed template repository.
func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{db: db} }

func scanTemplate(s rowScanner) (*domain.DescriptionTemplate, error) {
	t := &domain.DescriptionTemplate{}
	var keywords pq.StringArray
	var updated sql.NullTime
	if err := s.Scan(&t.ID, &t.Name, &t.Tone, &t.Category, &t.Structure,
		&keywords, &t.Description, &t.CreatedAt, &updated); err != nil {
		return nil, err
	}
	t.Keywords = domain.Features(keywords)
	if t.Keywords == nil {
		t.Keywords = domain.Features{}
	}
	if updated.Valid {
		u := updated.Time
		t.UpdatedAt = &u
	}
	return t, nil
}

func (r *TemplateRepo) List(ctx context.Context) ([]domain.DescriptionTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM description_templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	out := []domain.DescriptionTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *TemplateRepo) Get(ctx context.Context, id int64) (*domain.DescriptionTemplate, error) {
	t, err := scanTemplate(r.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM description_templates WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, templates.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) Create(ctx context.Context, t *domain.DescriptionTemplate) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO description_templates
			(name, tone, category, structure, keywords, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id
	`, t.Name, t.Tone, t.Category, t.Structure, pq.Array([]string(t.Keywords)), t.Description).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create template: %w", err)
	}
	return id, nil
}

func (r *TemplateRepo) Update(ctx context.Context, id int64, u templates.UpdateFields) (*domain.DescriptionTemplate, error) {
	sets := []string{}
	args := []interface{}{}
	idx := 1
	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Tone != nil {
		add("tone", *u.Tone)
	}
	if u.Category != nil {
		add("category", *u.Category)
	}
	if u.Structure != nil {
		add("structure", *u.Structure)
	}
	if u.Keywords != nil {
		add("keywords", pq.Array([]string(*u.Keywords)))
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf("UPDATE description_templates SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), idx, templateColumns)
	args = append(args, id)

	t, err := scanTemplate(r.db.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return nil, templates.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM description_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return templates.ErrNotFound
	}
	return nil
}
