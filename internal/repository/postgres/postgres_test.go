package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/service/campaign"
	"github.com/ignite/pagecraft/internal/service/catalog"
	"github.com/ignite/pagecraft/internal/service/templates"
)

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

var productCols = []string{"id", "name", "sku", "category", "price", "image", "current_description", "last_generated"}

// =============================================================================
// PRODUCTS
// =============================================================================

func TestProductRepo_ListFilters(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewProductRepo(db)

	mock.ExpectQuery(`FROM products WHERE 1=1 AND LOWER\(category\) = LOWER\(\$1\) AND \(name ILIKE \$2 OR category ILIKE \$2 OR sku ILIKE \$2\) ORDER BY price DESC, id ASC`).
		WithArgs("Electronics", `%50\%%`).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(2, "Mechanical Keyboard", "ACC-KEY-002", "Electronics", 129.0, "", "", nil))

	out, err := repo.List(context.Background(), catalog.ListFilter{
		Query: "50%", Category: "Electronics", Sort: domain.SortByPriceDesc,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Mechanical Keyboard", out[0].Name)
	assert.Nil(t, out[0].LastGenerated)
}

func TestProductRepo_ListDefaultOrder(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewProductRepo(db)

	mock.ExpectQuery(`FROM products WHERE 1=1 ORDER BY LOWER\(name\) ASC, id ASC`).
		WillReturnRows(sqlmock.NewRows(productCols))

	out, err := repo.List(context.Background(), catalog.ListFilter{Sort: "bogus"})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestProductRepo_GetNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewProductRepo(db)

	mock.ExpectQuery(`FROM products WHERE id = \$1`).WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 7)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestProductRepo_UpdateDescription(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewProductRepo(db)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE products SET current_description = \$1, last_generated = \$2`).
		WithArgs("New copy.", at, int64(1)).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(1, "Wireless Ergonomic Mouse", "ACC-MOU-001", "Electronics", 49.99, "", "New copy.", at))

	p, err := repo.UpdateDescription(context.Background(), 1, "New copy.", at)
	require.NoError(t, err)
	assert.Equal(t, "New copy.", p.CurrentDescription)
	require.NotNil(t, p.LastGenerated)
	assert.True(t, at.Equal(*p.LastGenerated))
}

func TestProductRepo_CategoriesAndUpsert(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewProductRepo(db)

	mock.ExpectQuery(`SELECT DISTINCT category FROM products`).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("Apparel").AddRow("Sports"))
	mock.ExpectQuery(`INSERT INTO products .* ON CONFLICT \(sku\) DO UPDATE`).
		WithArgs("Linen Shirt", "APP-LIN-100", "Apparel", 59.9, "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	cats, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Apparel", "Sports"}, cats)

	id, err := repo.Upsert(context.Background(), &domain.Product{
		Name: "Linen Shirt", SKU: "APP-LIN-100", Category: "Apparel", Price: 59.9,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
}

func TestProductRepo_QueryError(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewProductRepo(db)

	boom := errors.New("connection reset")
	mock.ExpectQuery(`FROM products`).WillReturnError(boom)

	_, err := repo.List(context.Background(), catalog.ListFilter{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "list products")
}

// =============================================================================
// TEMPLATES
// =============================================================================

var templateCols = []string{"id", "name", "tone", "category", "structure", "keywords", "description", "created_at", "updated_at"}

func TestTemplateRepo_CreateAndGet(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTemplateRepo(db)
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO description_templates`).
		WithArgs("Gift Guide", domain.ToneCasual, "Seasonal", "", "{\"gift\",\"holiday\"}", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`FROM description_templates WHERE id = \$1`).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(templateCols).
			AddRow(5, "Gift Guide", "Casual", "Seasonal", "", "{gift,holiday}", "", created, nil))

	id, err := repo.Create(context.Background(), &domain.DescriptionTemplate{
		Name: "Gift Guide", Tone: domain.ToneCasual, Category: "Seasonal",
		Keywords: domain.Features{"gift", "holiday"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	tpl, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.ToneCasual, tpl.Tone)
	assert.Equal(t, domain.Features{"gift", "holiday"}, tpl.Keywords)
	assert.Nil(t, tpl.UpdatedAt)
}

func TestTemplateRepo_UpdateBuildsSetClause(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTemplateRepo(db)
	now := time.Now().UTC()

	name := "Renamed"
	tone := domain.ToneLuxury
	mock.ExpectQuery(`UPDATE description_templates SET name = \$1, tone = \$2, updated_at = NOW\(\) WHERE id = \$3 RETURNING`).
		WithArgs("Renamed", domain.ToneLuxury, int64(3)).
		WillReturnRows(sqlmock.NewRows(templateCols).
			AddRow(3, "Renamed", "Luxury", "Accessories", "", "{}", "", now, now))

	tpl, err := repo.Update(context.Background(), 3, templates.UpdateFields{Name: &name, Tone: &tone})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", tpl.Name)
	assert.Equal(t, domain.Features{}, tpl.Keywords)
	assert.NotNil(t, tpl.UpdatedAt)
}

func TestTemplateRepo_UpdateAndDeleteNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTemplateRepo(db)

	mock.ExpectQuery(`UPDATE description_templates SET updated_at = NOW\(\) WHERE id = \$1`).
		WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`DELETE FROM description_templates WHERE id = \$1`).WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), 99, templates.UpdateFields{})
	assert.ErrorIs(t, err, templates.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), 99), templates.ErrNotFound)
}

// =============================================================================
// CAMPAIGNS
// =============================================================================

var campaignCols = []string{"id", "title", "type", "discount_percentage", "target_audience",
	"description", "status", "generated_content", "created_at", "updated_at"}

func TestCampaignRepo_GetDecodesContent(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCampaignRepo(db)
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	content := `{"headlines":["A","B"],"body_text":"Body","cta_buttons":["Go"],"generated_at":"2024-01-15T10:00:00Z"}`
	mock.ExpectQuery(`FROM campaigns WHERE id = \$1`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(campaignCols).
			AddRow(1, "Summer Sale", "Sale", "30", "Everyone", "", "Published", []byte(content), created, nil))

	c, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignSale, c.Type)
	assert.Equal(t, domain.CampaignPublished, c.Status)
	require.NotNil(t, c.GeneratedContent)
	assert.Equal(t, []string{"A", "B"}, c.GeneratedContent.Headlines)
	assert.Equal(t, "Body", c.GeneratedContent.BodyText)
}

func TestCampaignRepo_ListFilters(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCampaignRepo(db)

	mock.ExpectQuery(`FROM campaigns WHERE 1=1 AND LOWER\(status\) = LOWER\(\$1\) AND \(title ILIKE \$2 OR description ILIKE \$2\) ORDER BY created_at DESC, id DESC`).
		WithArgs("draft", "%autumn%").
		WillReturnRows(sqlmock.NewRows(campaignCols).
			AddRow(2, "Autumn Launch", "New Collection", "", "", "", "Draft", nil, time.Now(), nil))

	out, err := repo.List(context.Background(), campaign.ListFilter{Status: "draft", Search: "autumn"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].GeneratedContent)
}

func TestCampaignRepo_CreateEncodesContent(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCampaignRepo(db)
	created := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO campaigns`).
		WithArgs("Flash", domain.CampaignSale, "10", "", "", domain.CampaignDraft,
			`{"headlines":["H"],"body_text":"B","cta_buttons":null,"generated_at":"0001-01-01T00:00:00Z"}`, created).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO campaigns`).
		WithArgs("Plain", domain.CampaignSeasonal, "", "", "", domain.CampaignDraft, nil, created).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	id, err := repo.Create(context.Background(), &domain.Campaign{
		Title: "Flash", Type: domain.CampaignSale, DiscountPercentage: "10", Status: domain.CampaignDraft,
		GeneratedContent: &domain.CampaignContent{Headlines: []string{"H"}, BodyText: "B"},
		CreatedAt:        created,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	id, err = repo.Create(context.Background(), &domain.Campaign{
		Title: "Plain", Type: domain.CampaignSeasonal, Status: domain.CampaignDraft, CreatedAt: created,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
}

func TestCampaignRepo_UpdateAndDelete(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCampaignRepo(db)
	now := time.Now().UTC()

	status := domain.CampaignPublished
	mock.ExpectQuery(`UPDATE campaigns SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(domain.CampaignPublished, int64(2)).
		WillReturnRows(sqlmock.NewRows(campaignCols).
			AddRow(2, "Autumn Launch", "New Collection", "", "", "", "Published", nil, now, now))
	mock.ExpectExec(`DELETE FROM campaigns WHERE id = \$1`).WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, err := repo.Update(context.Background(), 2, campaign.UpdateFields{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignPublished, c.Status)
	require.NoError(t, repo.Delete(context.Background(), 2))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \_off\\`, escapeLike(`100% _off\`))
}
