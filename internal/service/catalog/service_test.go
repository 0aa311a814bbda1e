package catalog_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/repository/memory"
	"github.com/ignite/pagecraft/internal/service/catalog"
)

func newService() *catalog.Service {
	return catalog.NewService(memory.NewProductRepo(memory.DemoProducts()))
}

func names(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestList_SearchAndCategory(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	all, err := svc.List(ctx, catalog.ListFilter{Category: "All"})
	require.NoError(t, err)
	assert.Len(t, all, len(memory.DemoProducts()))

	byName, err := svc.List(ctx, catalog.ListFilter{Query: "MOUSE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Wireless Ergonomic Mouse"}, names(byName))

	bySKU, err := svc.List(ctx, catalog.ListFilter{Query: "hom-"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ceramic Pour-Over Set", "Insulated Travel Mug"}, names(bySKU))

	byCategory, err := svc.List(ctx, catalog.ListFilter{Query: "kitchen", Category: "home & kitchen", Sort: domain.SortByPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ceramic Pour-Over Set", "Insulated Travel Mug"}, names(byCategory))

	none, err := svc.List(ctx, catalog.ListFilter{Query: "nothing matches"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestList_Sort(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	byPrice, err := svc.List(ctx, catalog.ListFilter{Sort: domain.SortByPrice})
	require.NoError(t, err)
	assert.Equal(t, "Insulated Travel Mug", byPrice[0].Name)
	assert.Equal(t, "Leather Weekender Bag", byPrice[len(byPrice)-1].Name)

	byNameDesc, err := svc.List(ctx, catalog.ListFilter{Sort: domain.SortByNameDesc})
	require.NoError(t, err)
	assert.Equal(t, "Yoga Mat Pro", byNameDesc[0].Name)

	fallback, err := svc.List(ctx, catalog.ListFilter{Sort: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, "Ceramic Pour-Over Set", fallback[0].Name)
}

func TestCategories(t *testing.T) {
	cats, err := newService().Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"All", "Accessories", "Apparel", "Electronics", "Home & Kitchen", "Sports"}, cats)
}

func TestUpdateDescription(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	p, err := svc.UpdateDescription(ctx, 1, "A quiet, comfortable mouse.")
	require.NoError(t, err)
	assert.Equal(t, "A quiet, comfortable mouse.", p.CurrentDescription)
	require.NotNil(t, p.LastGenerated)

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, p.CurrentDescription, got.CurrentDescription)

	_, err = svc.UpdateDescription(ctx, 999, "x")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = svc.UpdateDescription(ctx, 1, " ")
	assert.ErrorIs(t, err, catalog.ErrValidation)
	_, err = svc.Get(ctx, 999)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

const productFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:g="http://base.google.com/ns/1.0">
  <channel>
    <title>Spring Arrivals</title>
    <link>https://shop.example.com</link>
    <description>New products</description>
    <item>
      <title>Linen Shirt</title>
      <link>https://shop.example.com/p/linen-shirt</link>
      <description>Breathable linen.</description>
      <g:id>APP-LIN-100</g:id>
      <g:price>59.90 USD</g:price>
      <g:product_type>Apparel</g:product_type>
      <g:image_link>https://images.example.com/linen.jpg</g:image_link>
    </item>
    <item>
      <title>Canvas Tote</title>
      <link>https://shop.example.com/p/canvas-tote</link>
      <guid>tote-200</guid>
      <category>Bags</category>
    </item>
    <item>
      <title>Mystery Item</title>
      <link>https://shop.example.com/p/mystery</link>
    </item>
    <item>
      <description>No title, skipped.</description>
      <guid>x-1</guid>
    </item>
  </channel>
</rss>`

func TestImport(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	res, err := svc.Import(ctx, strings.NewReader(productFeed))
	require.NoError(t, err)
	assert.Equal(t, "Spring Arrivals", res.Feed)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Imported, 3)

	shirt := res.Imported[0]
	assert.Equal(t, "APP-LIN-100", shirt.SKU)
	assert.Equal(t, 59.90, shirt.Price)
	assert.Equal(t, "Apparel", shirt.Category)
	assert.Equal(t, "https://images.example.com/linen.jpg", shirt.Image)
	assert.Equal(t, "Breathable linen.", shirt.CurrentDescription)

	assert.Equal(t, "tote-200", res.Imported[1].SKU)
	assert.Equal(t, "Bags", res.Imported[1].Category)
	assert.Equal(t, "https://shop.example.com/p/mystery", res.Imported[2].SKU)
	assert.Equal(t, "Imported", res.Imported[2].Category)

	// Re-importing updates in place.
	again, err := svc.Import(ctx, strings.NewReader(productFeed))
	require.NoError(t, err)
	assert.Equal(t, shirt.ID, again.Imported[0].ID)

	all, err := svc.List(ctx, catalog.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, len(memory.DemoProducts())+3)
}

func TestImport_InvalidFeed(t *testing.T) {
	_, err := newService().Import(context.Background(), strings.NewReader("not a feed"))
	assert.ErrorIs(t, err, catalog.ErrValidation)
}

func TestImportURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed.xml" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		io.WriteString(w, `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Remote</title>
<item><title>Trail Bottle</title><guid>BTL-1</guid><category>Outdoors</category></item>
</channel></rss>`)
	}))
	defer srv.Close()

	svc := newService()
	svc.SetHTTPClient(srv.Client())
	ctx := context.Background()

	res, err := svc.ImportURL(ctx, srv.URL+"/feed.xml")
	require.NoError(t, err)
	assert.Equal(t, "Remote", res.Feed)
	require.Len(t, res.Imported, 1)
	assert.Equal(t, "BTL-1", res.Imported[0].SKU)
	assert.Equal(t, "Outdoors", res.Imported[0].Category)

	_, err = svc.ImportURL(ctx, srv.URL+"/missing.xml")
	assert.ErrorIs(t, err, catalog.ErrFeedUnavailable)
}
