package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/uniform-stock/internal/application/dto"
	"github.com/jhoicas/uniform-stock/internal/application/inventory"
	"github.com/jhoicas/uniform-stock/internal/application/report"
	"github.com/jhoicas/uniform-stock/internal/domain"
	"github.com/jhoicas/uniform-stock/internal/domain/invoice"
	infraexcel "github.com/jhoicas/uniform-stock/internal/infrastructure/excel"
	"github.com/jhoicas/uniform-stock/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/uniform-stock/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/uniform-stock/internal/interfaces/http"
	"github.com/jhoicas/uniform-stock/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

// Prometheus collectors register on the default registry, so the whole test
// binary shares one instance.
var testMetrics = metrics.New()

// memStore is an in-memory BlobStore for tests.
type memStore struct {
	blobs map[string][]byte
}

func (s *memStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	data, ok := s.blobs[key]
	return data, ok, nil
}

func (s *memStore) Save(_ context.Context, key string, data []byte) error {
	s.blobs[key] = data
	return nil
}

// fakeOCR returns a canned recognition result.
type fakeOCR struct {
	text string
	err  error
}

func (f *fakeOCR) RecognizeText(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

// buildTestApp wires the full route table over in-memory storage and the
// given OCR fake, and returns the inventory manager for seeding.
func buildTestApp(t *testing.T, ocr *fakeOCR) (*fiber.App, *inventory.UseCase) {
	t.Helper()
	log := logger.New(logger.Config{Level: "error"})
	store := &memStore{blobs: make(map[string][]byte)}
	inv := inventory.NewUseCase(context.Background(), inventory.NewLedgerStore(store, "k", log), log)
	reports := report.NewUseCase(inv, map[string]report.Encoder{
		report.FormatExcel: infraexcel.NewReportEncoder(),
		report.FormatPDF:   infrapdf.NewReportEncoder(),
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Inventory: inv,
		Reports:   reports,
		OCR:       ocr,
		Extractor: invoice.NewExtractor(invoice.DefaultVocabulary()),
		Metrics:   testMetrics,
	})
	return app, inv
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// postImage uploads a fake invoice photo with the given part content type.
func postImage(t *testing.T, app *fiber.App, contentType string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="invoice.png"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/inventory/entries", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Entries: manual path
// ──────────────────────────────────────────────────────────────────────────────

func TestEntryManual_Success(t *testing.T) {
	app, inv := buildTestApp(t, &fakeOCR{})

	resp := postJSON(t, app, "/api/inventory/entries", dto.EntryRequest{
		Manual: true, Code: "123", Name: "Polo", Quantity: 7, Size: "G", Color: "White",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.EntryResponse](t, resp)
	assert.Equal(t, "Product added manually! Current stock: 7 units", body.Message)
	assert.Equal(t, "123", body.Product.Code)
	assert.Equal(t, "Polo", body.Product.Name)
	assert.Equal(t, 7, body.Product.Quantity)
	assert.Equal(t, "G", body.Extracted.Size)

	assert.Equal(t, 7, inv.GetStock("123"))
}

func TestEntryManual_DefaultsSizeAndColor(t *testing.T) {
	app, _ := buildTestApp(t, &fakeOCR{})

	resp := postJSON(t, app, "/api/inventory/entries", dto.EntryRequest{
		Manual: true, Code: "456", Name: "Apron", Quantity: 2,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.EntryResponse](t, resp)
	assert.Equal(t, "M", body.Product.Size)
	assert.Equal(t, "Blue", body.Product.Color)
}

func TestEntryManual_Validation(t *testing.T) {
	app, _ := buildTestApp(t, &fakeOCR{})

	cases := []struct {
		name string
		in   dto.EntryRequest
	}{
		{"manual flag missing", dto.EntryRequest{Code: "123", Name: "Polo", Quantity: 1}},
		{"code missing", dto.EntryRequest{Manual: true, Name: "Polo", Quantity: 1}},
		{"name missing", dto.EntryRequest{Manual: true, Code: "123", Quantity: 1}},
		{"quantity zero", dto.EntryRequest{Manual: true, Code: "123", Name: "Polo"}},
		{"quantity negative", dto.EntryRequest{Manual: true, Code: "123", Name: "Polo", Quantity: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/inventory/entries", tc.in)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, "VALIDATION", body.Code)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Entries: image path
// ──────────────────────────────────────────────────────────────────────────────

func TestEntryImage_Success(t *testing.T) {
	ocr := &fakeOCR{text: "Polo Shirt Blue\nSize: G\n10 units\nCode: 7891234567"}
	app, inv := buildTestApp(t, ocr)

	resp := postImage(t, app, "image/png")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.EntryResponse](t, resp)
	assert.Equal(t, "Product added successfully! Current stock: 10 units", body.Message)
	assert.Equal(t, "7891234567", body.Extracted.Code)
	assert.Equal(t, 10, body.Extracted.Quantity)
	assert.Equal(t, "Polo Shirt Blue", body.Product.Name)

	assert.Equal(t, 10, inv.GetStock("7891234567"))
}

func TestEntryImage_NoImageUploaded(t *testing.T) {
	app, _ := buildTestApp(t, &fakeOCR{})

	req := httptest.NewRequest(http.MethodPost, "/api/inventory/entries", strings.NewReader(""))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestEntryImage_UnsupportedType(t *testing.T) {
	app, _ := buildTestApp(t, &fakeOCR{})

	resp := postImage(t, app, "application/pdf")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Contains(t, body.Message, "JPEG or PNG")
}

func TestEntryImage_OCRFailure(t *testing.T) {
	app, _ := buildTestApp(t, &fakeOCR{err: errors.New("vision API unreachable")})

	resp := postImage(t, app, "image/jpeg")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "OCR_FAILED", body.Code)
}

func TestEntryImage_NoTextFound(t *testing.T) {
	app, _ := buildTestApp(t, &fakeOCR{err: domain.ErrNoTextFound})

	resp := postImage(t, app, "image/png")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "OCR_FAILED", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exits and lookup
// ──────────────────────────────────────────────────────────────────────────────

func TestExit_Success(t *testing.T) {
	app, inv := buildTestApp(t, &fakeOCR{})
	require.NoError(t, inv.AddStock(context.Background(), "123", 30, nil))

	resp := postJSON(t, app, "/api/inventory/exits", dto.ExitRequest{Code: "123", Quantity: 5})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.ExitResponse](t, resp)
	assert.Equal(t, "Exit recorded. Current stock: 25 units", body.Message)
	assert.Equal(t, 25, body.CurrentStock)
	assert.False(t, body.LowStockAlert)
	assert.Equal(t, 25, body.Product.Quantity)
}

func TestExit_DefaultQuantityIsOne(t *testing.T) {
	app, inv := buildTestApp(t, &fakeOCR{})
	require.NoError(t, inv.AddStock(context.Background(), "123", 3, nil))

	resp := postJSON(t, app, "/api/inventory/exits", dto.ExitRequest{Code: "123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.ExitResponse](t, resp)
	assert.Equal(t, 2, body.CurrentStock)
	assert.True(t, body.LowStockAlert, "2 is below the default threshold")
	assert.Contains(t, body.Message, "ALERT: Low stock!")
}

func TestExit_UnknownProductIs404(t *testing.T) {
	app, _ := buildTestApp(t, &fakeOCR{})

	resp := postJSON(t, app, "/api/inventory/exits", dto.ExitRequest{Code: "nope", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, "Product not found in stock", body.Message)
}

func TestExit_InsufficientStockIs400(t *testing.T) {
	app, inv := buildTestApp(t, &fakeOCR{})
	require.NoError(t, inv.AddStock(context.Background(), "123", 20, nil))

	resp := postJSON(t, app, "/api/inventory/exits", dto.ExitRequest{Code: "123", Quantity: 25})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, "Available: 20 units")
	assert.Equal(t, 20, inv.GetStock("123"), "a failed exit must not change the stock")
}

func TestExit_NegativeQuantityIs400(t *testing.T) {
	app, inv := buildTestApp(t, &fakeOCR{})
	require.NoError(t, inv.AddStock(context.Background(), "123", 5, nil))

	resp := postJSON(t, app, "/api/inventory/exits", dto.ExitRequest{Code: "123", Quantity: -2})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLookup(t *testing.T) {
	app, inv := buildTestApp(t, &fakeOCR{})
	require.NoError(t, inv.AddStock(context.Background(), "123", 4, &inventory.ProductDefaults{Name: "Vest"}))

	resp := get(t, app, "/api/inventory/products/123")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[dto.ProductDTO](t, resp)
	assert.Equal(t, "Vest", body.Name)
	assert.Equal(t, 4, body.Quantity)

	resp = get(t, app, "/api/inventory/products/unknown")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard(t *testing.T) {
	app, inv := buildTestApp(t, &fakeOCR{})
	ctx := context.Background()
	require.NoError(t, inv.AddStock(ctx, "low", 5, nil))
	require.NoError(t, inv.AddStock(ctx, "high", 50, nil))
	res := inv.RemoveStock(ctx, "high", 10)
	require.True(t, res.Success)

	resp := get(t, app, "/api/dashboard")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.DashboardResponse](t, resp)
	assert.Len(t, body.Products, 2)
	require.Len(t, body.LowStockAlerts, 1)
	assert.Equal(t, "low", body.LowStockAlerts[0].Code)
	assert.Len(t, body.RecentMovements, 3)
	assert.Equal(t, "exit", body.RecentMovements[0].Kind, "newest movement first")

	assert.Equal(t, 2, body.Stats.TotalProducts)
	assert.Equal(t, 45, body.Stats.TotalStock)
	assert.Equal(t, 1, body.Stats.LowStockCount)
	assert.Equal(t, 3, body.Stats.RecentCount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reports
// ──────────────────────────────────────────────────────────────────────────────

func TestReport_MissingFormatIs400(t *testing.T) {
	app, _ := buildTestApp(t, &fakeOCR{})

	resp := get(t, app, "/api/reports")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestReport_InvalidDateIs400(t *testing.T) {
	app, _ := buildTestApp(t, &fakeOCR{})

	resp := get(t, app, "/api/reports?format=excel&startDate=15-03-2024")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReport_ExcelAttachment(t *testing.T) {
	app, inv := buildTestApp(t, &fakeOCR{})
	require.NoError(t, inv.AddStock(context.Background(), "123", 10, nil))

	resp := get(t, app, "/api/reports?format=excel")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "report-movements-full-")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")

	payload, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.NotEmpty(t, payload)
}

func TestReport_PDFAttachment(t *testing.T) {
	app, inv := buildTestApp(t, &fakeOCR{})
	require.NoError(t, inv.AddStock(context.Background(), "123", 10, nil))

	resp := get(t, app, "/api/reports?format=pdf&tipo=entrada")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "report-movements-entrada-")

	payload, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(payload[:4]))
}
