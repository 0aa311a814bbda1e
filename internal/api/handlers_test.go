package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/pagecraft/internal/copywriter"
	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/repository/memory"
	"github.com/ignite/pagecraft/internal/service/campaign"
	"github.com/ignite/pagecraft/internal/service/catalog"
	"github.com/ignite/pagecraft/internal/service/generation"
	"github.com/ignite/pagecraft/internal/service/settings"
	"github.com/ignite/pagecraft/internal/service/templates"
	"github.com/ignite/pagecraft/internal/storage"
)

func setupTestRouter(t *testing.T, latency time.Duration) (http.Handler, *Handlers) {
	t.Helper()
	engine := copywriter.NewTemplateEngine()
	rnd := copywriter.NewRand(42)

	h := NewHandlers(Deps{
		Catalog: catalog.NewService(memory.NewProductRepo(memory.DemoProducts())),
		Generation: generation.NewService(
			copywriter.NewComposer(engine, rnd),
			generation.NewStore(),
			generation.NewGuard(nil),
			generation.Options{Latency: latency},
		),
		Templates: templates.NewService(memory.NewTemplateRepo(memory.DemoTemplates())),
		Campaigns: campaign.NewService(memory.NewCampaignRepo(memory.DemoCampaigns()), engine, rnd),
		Settings:  settings.NewService(storage.NewLocalStore(filepath.Join(t.TempDir(), "settings.json")), nil),
		Health:    NewHealthChecker(nil, nil, nil),
	})
	return SetupRoutes(h, []string{"http://localhost:5173"}), h
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	var e struct {
		Code string `json:"code"`
	}
	decode(t, rec, &e)
	return e.Code
}

// =============================================================================
// HEALTH & METRICS
// =============================================================================

func TestHealth_NothingConfigured(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	rec := do(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	decode(t, rec, &status)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "not_configured", status.Checks["database"].Status)
	assert.Equal(t, "not_configured", status.Checks["redis"].Status)
	assert.Equal(t, "not_configured", status.Checks["s3"].Status)

	rec = do(t, router, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth_RedisUp(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	rec := httptest.NewRecorder()
	NewHealthChecker(nil, rdb, nil).HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var status HealthStatus
	decode(t, rec, &status)
	assert.Equal(t, "up", status.Checks["redis"].Status)
	assert.Equal(t, "healthy", status.Status)

	mr.Close()
	rec = httptest.NewRecorder()
	NewHealthChecker(nil, rdb, nil).HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	decode(t, rec, &status)
	assert.Equal(t, "down", status.Checks["redis"].Status)
	assert.Equal(t, "degraded", status.Status)
}

func TestDetermineOverallStatus(t *testing.T) {
	assert.Equal(t, "unhealthy", determineOverallStatus(map[string]ComponentCheck{
		"database": {Status: "down"}, "redis": {Status: "up"},
	}))
	assert.Equal(t, "degraded", determineOverallStatus(map[string]ComponentCheck{
		"database": {Status: "up"}, "redis": {Status: "down"},
	}))
	assert.Equal(t, "healthy", determineOverallStatus(map[string]ComponentCheck{
		"database": {Status: "not_configured"}, "s3": {Status: "up"},
	}))
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t, 0)
	do(t, router, http.MethodGet, "/api/products", nil)

	rec := do(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pagecraft_http_requests_total")
	assert.Contains(t, rec.Body.String(), "pagecraft_http_request_duration_seconds")
}

// =============================================================================
// PRODUCTS
// =============================================================================

func TestProducts_ListAndFilter(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	var out struct {
		Products []domain.Product `json:"products"`
		Total    int              `json:"total"`
	}
	rec := do(t, router, http.MethodGet, "/api/products?category=Electronics&sort=price-desc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &out)
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "Mechanical Keyboard", out.Products[0].Name)

	rec = do(t, router, http.MethodGet, "/api/products/categories", nil)
	var cats struct {
		Categories []string `json:"categories"`
	}
	decode(t, rec, &cats)
	assert.Equal(t, "All", cats.Categories[0])
}

func TestProducts_GetAndErrors(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	rec := do(t, router, http.MethodGet, "/api/products/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var p domain.Product
	decode(t, rec, &p)
	assert.Equal(t, "Organic Cotton T-Shirt", p.Name)

	rec = do(t, router, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))

	rec = do(t, router, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProducts_DescriptionAndHTML(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	rec := do(t, router, http.MethodPut, "/api/products/1/description",
		map[string]string{"description": "**Quiet** clicks.\n\nAll day comfort."})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/products/1/description.html", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<p><strong>Quiet</strong> clicks.</p>\n<p>All day comfort.</p>\n", rec.Body.String())

	rec = do(t, router, http.MethodPut, "/api/products/1/description", map[string]string{"description": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProducts_ImportFeedBody(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	feed := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Drop</title>
<item><title>Trail Bottle</title><guid>BTL-1</guid><category>Outdoors</category></item>
</channel></rss>`
	req := httptest.NewRequest(http.MethodPost, "/api/products/import", strings.NewReader(feed))
	req.Header.Set("Content-Type", "application/rss+xml")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res catalog.ImportResult
	decode(t, rec, &res)
	require.Len(t, res.Imported, 1)
	assert.Equal(t, "BTL-1", res.Imported[0].SKU)

	rec = do(t, router, http.MethodPost, "/api/products/import", map[string]string{"url": "ftp://example.com/feed"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// DESCRIPTIONS
// =============================================================================

func TestGenerate_AndHistory(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	rec := do(t, router, http.MethodPost, "/api/descriptions/generate", `{
		"subject_name": "Wireless Mouse",
		"features": "ergonomic, silent click, 6-month battery",
		"tone": "Professional",
		"variant_count": 2
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		SubjectKey       string                    `json:"subject_key"`
		Variants         []domain.GeneratedVariant `json:"variants"`
		Suggestions      []string                  `json:"suggestions"`
		GenerationTimeMS *int64                    `json:"generation_time_ms"`
	}
	decode(t, rec, &res)
	require.Len(t, res.Variants, 2)
	assert.Equal(t, int64(1), res.Variants[0].ID)
	assert.Contains(t, res.Variants[0].Content, "Wireless Mouse")
	assert.LessOrEqual(t, len([]rune(res.Variants[0].SEO.MetaTitle)), 60)
	assert.Len(t, res.Suggestions, 3)
	assert.NotNil(t, res.GenerationTimeMS)

	rec = do(t, router, http.MethodGet, "/api/descriptions/history?subject=Wireless%20Mouse", nil)
	var hist struct {
		Variants []domain.GeneratedVariant `json:"variants"`
	}
	decode(t, rec, &hist)
	require.Len(t, hist.Variants, 2)
	assert.Equal(t, int64(2), hist.Variants[0].ID)

	rec = do(t, router, http.MethodGet, "/api/descriptions/history", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerate_Validation(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	rec := do(t, router, http.MethodPost, "/api/descriptions/generate", map[string]interface{}{
		"subject_name": "Mug", "features": "",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))

	rec = do(t, router, http.MethodPost, "/api/descriptions/generate", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerate_ConcurrentAndCancel(t *testing.T) {
	router, _ := setupTestRouter(t, 5*time.Second)

	body := map[string]interface{}{"subject_name": "Yoga Mat", "features": []string{"grippy"}}
	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- do(t, router, http.MethodPost, "/api/descriptions/generate", body) }()

	require.Eventually(t, func() bool {
		rec := do(t, router, http.MethodGet, "/api/descriptions/status?subject=Yoga%20Mat", nil)
		var s struct {
			Generating bool `json:"generating"`
		}
		decode(t, rec, &s)
		return s.Generating
	}, 2*time.Second, 10*time.Millisecond)

	rec := do(t, router, http.MethodPost, "/api/descriptions/generate", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", errorCode(t, rec))

	rec = do(t, router, http.MethodDelete, "/api/descriptions/status?subject=Yoga%20Mat", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var c struct {
		Canceled bool `json:"canceled"`
	}
	decode(t, rec, &c)
	assert.True(t, c.Canceled)

	select {
	case rec := <-first:
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "canceled", errorCode(t, rec))
	case <-time.After(2 * time.Second):
		t.Fatal("canceled generation did not return")
	}
}

func TestBulk_SharedFeaturesAndPerItemErrors(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	rec := do(t, router, http.MethodPost, "/api/descriptions/bulk", map[string]interface{}{
		"items": []map[string]interface{}{
			{"subject_name": "Silk Scarf"},
			{"subject_name": "Yoga Mat Pro", "features": "non-slip"},
			{"subject_name": ""},
		},
		"features":      "soft, hand-rolled edges",
		"tone":          "Luxury",
		"variant_count": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res BulkResponse
	decode(t, rec, &res)
	require.Len(t, res.Results, 3)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, domain.Features{"soft", "hand-rolled edges"}, res.Results[0].Variants[0].Features)
	assert.Equal(t, domain.Features{"non-slip"}, res.Results[1].Variants[0].Features)
	assert.Equal(t, domain.ToneLuxury, res.Results[1].Variants[0].Tone)
	assert.Equal(t, domain.BulkError, res.Results[2].Status)

	rec = do(t, router, http.MethodPost, "/api/descriptions/bulk", map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegenerateAndEdits(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	rec := do(t, router, http.MethodPost, "/api/descriptions/generate", map[string]interface{}{
		"subject_name": "Travel Mug", "features": "leak-proof", "variant_count": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/descriptions/1/regenerate", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var regen domain.GenerationResult
	decode(t, rec, &regen)
	assert.Len(t, regen.Variants, 3)
	assert.Equal(t, int64(2), regen.Variants[0].ID)

	rec = do(t, router, http.MethodPost, "/api/descriptions/1/regenerate", map[string]interface{}{"tone": "Casual", "variant_count": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &regen)
	assert.Equal(t, domain.ToneCasual, regen.Variants[0].Tone)

	rec = do(t, router, http.MethodPost, "/api/descriptions/99/regenerate", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPatch, "/api/descriptions/1", map[string]string{"content": "Short and sweet."})
	require.Equal(t, http.StatusOK, rec.Code)
	var v domain.GeneratedVariant
	decode(t, rec, &v)
	assert.Equal(t, 3, v.WordCount)

	rec = do(t, router, http.MethodPatch, "/api/descriptions/1/seo", map[string]string{"field": "metaTitle", "value": "Custom"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &v)
	assert.Equal(t, "Custom", v.SEO.MetaTitle)

	rec = do(t, router, http.MethodPatch, "/api/descriptions/1/seo", map[string]string{"field": "h1", "value": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/descriptions/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &v)
	assert.Equal(t, "Short and sweet.", v.Content)
}

func TestAnalyze(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	rec := do(t, router, http.MethodPost, "/api/analyze", map[string]string{
		"content": "Shop now. Customers love it because it is durable.",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var report domain.QualityReport
	decode(t, rec, &report)
	assert.Equal(t, 9, report.WordCount)
	assert.Equal(t, 83, report.QualityScores.Overall)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("Plain text body."))
	req.Header.Set("Content-Type", "text/plain")
	plain := httptest.NewRecorder()
	router.ServeHTTP(plain, req)
	require.Equal(t, http.StatusOK, plain.Code)

	rec = do(t, router, http.MethodPost, "/api/analyze", map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// TEMPLATES & CAMPAIGNS
// =============================================================================

func TestTemplatesCRUD(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	rec := do(t, router, http.MethodGet, "/api/templates?tone=Professional", nil)
	var list struct {
		Total int `json:"total"`
	}
	decode(t, rec, &list)
	assert.Equal(t, 2, list.Total)

	rec = do(t, router, http.MethodPost, "/api/templates", map[string]interface{}{
		"name": "Bundle Pitch", "tone": "Casual", "keywords": "bundle, save",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.DescriptionTemplate
	decode(t, rec, &created)
	assert.Equal(t, domain.Features{"bundle", "save"}, created.Keywords)

	rec = do(t, router, http.MethodPut, "/api/templates/5", map[string]interface{}{"category": "Bundles"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/templates/facets", nil)
	var facets templates.Facets
	decode(t, rec, &facets)
	assert.Contains(t, facets.Categories, "Bundles")

	rec = do(t, router, http.MethodDelete, "/api/templates/5", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, router, http.MethodGet, "/api/templates/5", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/templates", map[string]interface{}{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCampaigns(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	rec := do(t, router, http.MethodGet, "/api/campaigns?status=Published", nil)
	var list struct {
		Campaigns []domain.Campaign `json:"campaigns"`
	}
	decode(t, rec, &list)
	require.Len(t, list.Campaigns, 1)

	rec = do(t, router, http.MethodPost, "/api/campaigns/generate", map[string]string{
		"type": "Sale", "discount_percentage": "40", "target_audience": "Runners",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var content domain.CampaignContent
	decode(t, rec, &content)
	assert.Len(t, content.Headlines, 3)
	assert.Contains(t, content.Headlines[0], "40% OFF")
	assert.Contains(t, content.BodyText, "runners")

	rec = do(t, router, http.MethodPost, "/api/campaigns/generate", map[string]string{"type": "Flash"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/campaigns", map[string]interface{}{
		"title": "Spring Refresh", "type": "Seasonal", "generated_content": content,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var c domain.Campaign
	decode(t, rec, &c)
	assert.Equal(t, domain.CampaignDraft, c.Status)

	rec = do(t, router, http.MethodPut, "/api/campaigns/3", map[string]string{"status": "Published"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/campaigns/3", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, router, http.MethodDelete, "/api/campaigns/3", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// SETTINGS
// =============================================================================

func TestSettings_MaskAndSave(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	rec := do(t, router, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var s domain.Settings
	decode(t, rec, &s)
	assert.Equal(t, 150, s.MaxWords)

	rec = do(t, router, http.MethodPost, "/api/settings/test-connection", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "not_connected", errorCode(t, rec))

	rec = do(t, router, http.MethodPut, "/api/settings", map[string]interface{}{
		"shopifyStore": "demo.myshopify.com", "apiKey": "shpat_secret_9876", "maxWords": 1000,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &s)
	assert.Equal(t, "****9876", s.APIKey)
	assert.Equal(t, 300, s.MaxWords)

	// Sending the masked key back keeps the real one.
	rec = do(t, router, http.MethodPut, "/api/settings", map[string]interface{}{"apiKey": "****9876", "autoSave": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/settings/test-connection", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"connected"}`, rec.Body.String())
}

func TestSettings_FileUpload(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "voice.md")
	require.NoError(t, err)
	_, err = fw.Write([]byte("# Voice\nWarm, direct, no jargon."))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/settings/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var f domain.UploadedFile
	decode(t, rec, &f)
	assert.Equal(t, "voice.md", f.Name)
	assert.NotEmpty(t, f.ID)

	rec = do(t, router, http.MethodPost, "/api/settings/files", map[string]string{"name": "notes.txt", "content": "Short."})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/settings", nil)
	var s domain.Settings
	decode(t, rec, &s)
	assert.Len(t, s.UploadedFiles, 2)

	rec = do(t, router, http.MethodDelete, "/api/settings/files/"+f.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, router, http.MethodDelete, "/api/settings/files/"+f.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
