package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/service/campaign"
)

const campaignColumns = `id, title, type, COALESCE(discount_percentage,''), COALESCE(target_audience,''),
		       COALESCE(description,''), status, generated_content, created_at, updated_at`

// CampaignRepo implements campaign.Repository against PostgreSQL.
type CampaignRepo struct{ db *sql.DB }

// NewCampaignRepo creates a Postgres-backed campaign repository.
func NewCampaignRepo(db *sql.DB) *CampaignRepo { return &CampaignRepo{db: db} }

func scanCampaign(s rowScanner) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	var content []byte
	var updated sql.NullTime
	if err := s.Scan(&c.ID, &c.Title, &c.Type, &c.DiscountPercentage, &c.TargetAudience,
		&c.Description, &c.Status, &content, &c.CreatedAt, &updated); err != nil {
		return nil, err
	}
	if len(content) > 0 && string(content) != "null" {
		c.GeneratedContent = &domain.CampaignContent{}
		if err := json.Unmarshal(content, c.GeneratedContent); err != nil {
			return nil, fmt.Errorf("decode generated content: %w", err)
		}
	}
	if updated.Valid {
		u := updated.Time
		c.UpdatedAt = &u
	}
	return c, nil
}

// contentJSON encodes generated content for a JSONB column; nil stays NULL.
func contentJSON(gc *domain.CampaignContent) (interface{}, error) {
	if gc == nil {
		return nil, nil
	}
	b, err := json.Marshal(gc)
	if err != nil {
		return nil, fmt.Errorf("encode generated content: %w", err)
	}
	return string(b), nil
}

func (r *CampaignRepo) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := scanCampaign(r.db.QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

func (r *CampaignRepo) List(ctx context.Context, f campaign.ListFilter) ([]domain.Campaign, error) {
	q := `SELECT ` + campaignColumns + ` FROM campaigns WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if f.Status != "" {
		q += fmt.Sprintf(" AND LOWER(status) = LOWER($%d)", idx)
		args = append(args, f.Status)
		idx++
	}
	if f.Type != "" {
		q += fmt.Sprintf(" AND LOWER(type) = LOWER($%d)", idx)
		args = append(args, f.Type)
		idx++
	}
	if f.Search != "" {
		q += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", idx, idx)
		args = append(args, "%"+escapeLike(f.Search)+"%")
	}
	q += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	out := []domain.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) (int64, error) {
	content, err := contentJSON(c.GeneratedContent)
	if err != nil {
		return 0, err
	}
	var id int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO campaigns
			(title, type, discount_percentage, target_audience, description,
			 status, generated_content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, c.Title, c.Type, c.DiscountPercentage, c.TargetAudience, c.Description,
		c.Status, content, c.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create campaign: %w", err)
	}
	return id, nil
}

func (r *CampaignRepo) Update(ctx context.Context, id int64, u campaign.UpdateFields) (*domain.Campaign, error) {
	sets := []string{}
	args := []interface{}{}
	idx := 1
	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.Type != nil {
		add("type", *u.Type)
	}
	if u.DiscountPercentage != nil {
		add("discount_percentage", *u.DiscountPercentage)
	}
	if u.TargetAudience != nil {
		add("target_audience", *u.TargetAudience)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Status != nil {
		add("status", *u.Status)
	}
	if u.GeneratedContent != nil {
		content, err := contentJSON(u.GeneratedContent)
		if err != nil {
			return nil, err
		}
		add("generated_content", content)
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf("UPDATE campaigns SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), idx, campaignColumns)
	args = append(args, id)

	c, err := scanCampaign(r.db.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}
	return c, nil
}

func (r *CampaignRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}
