package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/common"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/entity"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/llm"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubExtractor replays a canned response per document kind so handler tests
// never touch the network.
type stubExtractor struct {
	responses map[llm.DocumentKind]string
}

func (s *stubExtractor) ExtractDocument(_ context.Context, req llm.ExtractRequest) (string, error) {
	return s.responses[req.Kind], nil
}

func newTestServer(t *testing.T, extractor llm.DocumentExtractor) *gin.Engine {
	t.Helper()
	db, err := repository.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := common.LoadConfig()
	return New(cfg, db, extractor, nil).Router()
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

const contractBody = `{
	"supplier_name": "ABC Corp",
	"items": [
		{"description": "Consulting", "quantity": 1, "unit_price": 100.0},
		{"description": "Hosting", "quantity": 1, "unit_price": 50.0}
	],
	"payment_terms": "Net 30"
}`

const invoiceBody = `{
	"invoice_number": "INV-42",
	"supplier_name": "ABC Corp",
	"issue_date": "2024-05-01",
	"items": [
		{"description": "Consulting", "quantity": 1, "unit_price": 120.0, "total": 120.0}
	],
	"total": 120.0
}`

func TestHealth(t *testing.T) {
	router := newTestServer(t, &stubExtractor{})
	w := getJSON(t, router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestContractLifecycle(t *testing.T) {
	router := newTestServer(t, &stubExtractor{})

	w := postJSON(t, router, "/api/contracts", contractBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var created entity.Contract
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "ABC Corp", created.SupplierName)
	require.Len(t, created.Items, 2)

	w = getJSON(t, router, "/api/contracts/"+created.ID.String())
	assert.Equal(t, http.StatusOK, w.Code)

	w = getJSON(t, router, "/api/contracts")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	req := httptest.NewRequest(http.MethodDelete, "/api/contracts/"+created.ID.String(), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = getJSON(t, router, "/api/contracts/"+created.ID.String())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompareFlow(t *testing.T) {
	router := newTestServer(t, &stubExtractor{})

	w := postJSON(t, router, "/api/contracts", contractBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var contract entity.Contract
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &contract))

	w = postJSON(t, router, "/api/invoices/process", invoiceBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var invoice entity.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invoice))
	assert.Equal(t, "INV-42", invoice.InvoiceNumber)

	compare := `{"contract_id": "` + contract.ID.String() + `", "invoice_id": "` + invoice.ID.String() + `"}`
	w = postJSON(t, router, "/api/invoices/compare", compare)
	require.Equal(t, http.StatusOK, w.Code)

	var result entity.ComparisonResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.OverallMatch)
	assert.False(t, result.Matches[entity.MatchKeyPrices])
	assert.True(t, result.Matches[entity.MatchKeyServices])
	require.Len(t, result.Issues, 1)
	assert.Equal(t, entity.IssuePriceMismatch, result.Issues[0].Type)

	w = getJSON(t, router, "/api/comparisons/"+result.ID.String())
	assert.Equal(t, http.StatusOK, w.Code)

	w = getJSON(t, router, "/api/contracts/"+contract.ID.String()+"/comparisons")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	w = getJSON(t, router, "/api/comparisons/"+result.ID.String()+"/export")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestUploadGoesThroughExtractor(t *testing.T) {
	extractor := &stubExtractor{responses: map[llm.DocumentKind]string{
		llm.KindInvoice: "```json\n" + invoiceBody + "\n```",
	}}
	router := newTestServer(t, extractor)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "invoice.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/process", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var invoice entity.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invoice))
	assert.Equal(t, "INV-42", invoice.InvoiceNumber)
	assert.False(t, invoice.NeedsReview)
}

func TestCompareBadRequests(t *testing.T) {
	router := newTestServer(t, &stubExtractor{})

	w := postJSON(t, router, "/api/invoices/compare", `{"contract_id": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = getJSON(t, router, "/api/contracts/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/api/contracts", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
