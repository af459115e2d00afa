package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"me-python-boutique/models"
	"me-python-boutique/utils"
)

const priceListTitle = "Me&Python 價目表"

//go:embed templates/price_list.html
var priceListTemplate string

var priceListTmpl = template.Must(template.New("price_list").Parse(priceListTemplate))

// PriceListService renders the catalog as a printable price list
type PriceListService struct {
	catalog    *CatalogService
	baseURL    string // where the render endpoint is reachable from Chrome
	chromePath string
}

// NewPriceListService creates a new PriceListService
func NewPriceListService(catalog *CatalogService, baseURL string, chromePath string) *PriceListService {
	return &PriceListService{
		catalog:    catalog,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		chromePath: chromePath,
	}
}

// detectChromePath returns the configured Chrome path if it exists, then
// the first common installation path found, or "" to let chromedp search
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// BuildPriceList converts snakes into template rows
func BuildPriceList(snakes []models.Snake, now time.Time) models.PriceListData {
	items := make([]models.PriceListItem, 0, len(snakes))
	for _, s := range snakes {
		items = append(items, models.PriceListItem{
			ID:           s.ID,
			Morph:        s.Morph,
			GenderLabel:  utils.GenderLabel(s.Gender),
			Price:        utils.FormatTWD(s.Price),
			Availability: utils.AvailabilityLabel(s.Availability),
			ImageURL:     s.ImageURL,
			Genetics:     strings.Join(s.Genetics, " / "),
		})
	}
	return models.PriceListData{
		Title:       priceListTitle,
		GeneratedAt: now.Format("2006-01-02 15:04"),
		Items:       items,
	}
}

// RenderHTML renders the current catalog filtered and sorted by query
func (s *PriceListService) RenderHTML(query models.CatalogQuery) (string, error) {
	current := s.catalog.List(query)
	data := BuildPriceList(current.Snakes, time.Now())

	var buf bytes.Buffer
	if err := priceListTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// renderURL is the page Chrome prints
func (s *PriceListService) renderURL(query models.CatalogQuery) string {
	values := url.Values{}
	if query.Sort != "" && query.Sort != models.SortDefault {
		values.Set("sort", string(query.Sort))
	}
	if query.ShowSoldOut {
		values.Set("showSoldOut", strconv.FormatBool(true))
	}
	u := s.baseURL + "/catalog/render"
	if encoded := values.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// GeneratePDF prints the rendered price list with headless Chrome
func (s *PriceListService) GeneratePDF(ctx context.Context, query models.CatalogQuery) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.renderURL(query)
	log.Printf("🔄 Printing price list from %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		// Wait for fonts and images to load
		chromedp.Evaluate(`
			Promise.all([
				document.fonts.ready,
				...Array.from(document.images).map(img => img.complete ? null : new Promise(resolve => {
					const timeout = setTimeout(resolve, 5000);
					img.onload = img.onerror = () => { clearTimeout(timeout); resolve(); };
				}))
			]).then(() => true);
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams { return p.WithAwaitPromise(true) }),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✓ Price list PDF generated (%d bytes)", len(pdfBuf))
	return pdfBuf, nil
}
