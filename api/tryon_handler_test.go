package api_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/proteuswear/storefront-api/api"
	"github.com/proteuswear/storefront-api/catalog"
	"github.com/proteuswear/storefront-api/config"
	"github.com/proteuswear/storefront-api/models"
	"github.com/proteuswear/storefront-api/store"
	"github.com/proteuswear/storefront-api/tryon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int, fill color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func tryOnRequest(t *testing.T, productID string, photo []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("product_id", productID))
	if photo != nil {
		part, err := form.CreateFormFile("photo", "me.png")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/try-on", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

// newTryOnHandler wires a catalog whose only product's image is served by
// the given server, with no remote providers so the local compositor runs.
func newTryOnHandler(garmentURL string) *api.Handler {
	config.JWTSecret = "test-secret"
	config.AWSBucketName = ""
	cat := catalog.New([]models.Product{{
		ID:     42,
		Name:   "Waxed field jacket",
		Price:  5999,
		Sizes:  []string{"M", "L"},
		Images: []string{garmentURL},
	}})
	return api.New(
		store.NewCartStore(),
		store.NewSessionStore(nil),
		cat,
		tryon.NewOrchestrator(nil, nil),
	)
}

func TestVirtualTryOnLocalComposite(t *testing.T) {
	garment := pngBytes(t, 16, 16, color.RGBA{R: 60, G: 60, B: 120, A: 255})
	garmentSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(garment)
	}))
	defer garmentSrv.Close()

	h := newTryOnHandler(garmentSrv.URL + "/garment.png")

	photo := pngBytes(t, 24, 24, color.RGBA{R: 220, G: 210, B: 200, A: 255})
	rr := httptest.NewRecorder()
	api.SessionMiddleware(h.VirtualTryOnHandler)(rr, tryOnRequest(t, "42", photo))

	require.Equal(t, http.StatusOK, rr.Code)
	token := rr.Header().Get("X-Session-Token")
	require.NotEmpty(t, token)

	var resp struct {
		Result   string `json:"result"`
		Product  string `json:"product"`
		Provider string `json:"provider"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Waxed field jacket", resp.Product)
	assert.Equal(t, "local", resp.Provider)
	assert.True(t, strings.HasPrefix(resp.Result, "data:image/"))

	// The result sticks to the session until cleared.
	get := httptest.NewRequest(http.MethodGet, "/try-on/result", nil)
	get.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	api.SessionMiddleware(h.TryOnResultHandler)(rr, get)

	require.Equal(t, http.StatusOK, rr.Code)
	var result models.TryOnResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
	assert.Equal(t, "Waxed field jacket", result.ProductName)
	assert.NotEmpty(t, result.ResultImageRef)
	assert.NotEmpty(t, result.ModelImageRef)

	del := httptest.NewRequest(http.MethodDelete, "/try-on/result", nil)
	del.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	api.SessionMiddleware(h.TryOnResultHandler)(rr, del)
	require.Equal(t, http.StatusOK, rr.Code)

	get = httptest.NewRequest(http.MethodGet, "/try-on/result", nil)
	get.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	api.SessionMiddleware(h.TryOnResultHandler)(rr, get)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVirtualTryOnRequiresPhoto(t *testing.T) {
	h := newTryOnHandler("https://cdn.example/garment.png")

	rr := httptest.NewRecorder()
	api.SessionMiddleware(h.VirtualTryOnHandler)(rr, tryOnRequest(t, "42", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVirtualTryOnUnknownProduct(t *testing.T) {
	h := newTryOnHandler("https://cdn.example/garment.png")

	photo := pngBytes(t, 8, 8, color.RGBA{A: 255})
	rr := httptest.NewRecorder()
	api.SessionMiddleware(h.VirtualTryOnHandler)(rr, tryOnRequest(t, "999", photo))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTryOnResultWithoutSessionResult(t *testing.T) {
	h := newTryOnHandler("https://cdn.example/garment.png")

	get := httptest.NewRequest(http.MethodGet, "/try-on/result", nil)
	rr := httptest.NewRecorder()
	api.SessionMiddleware(h.TryOnResultHandler)(rr, get)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
