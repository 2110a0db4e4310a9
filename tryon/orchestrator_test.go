package tryon

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func garmentServer(t *testing.T) *httptest.Server {
	t.Helper()
	garment := encodePNG(t, 16, 16, color.RGBA{R: 40, G: 40, B: 90, A: 255})
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(garment)
	}))
}

func testReplicate(t *testing.T, srv *httptest.Server, key string) *ReplicateClient {
	t.Helper()
	c := NewReplicateClient(key, "test-version")
	c.BaseURL = srv.URL
	c.PollInterval = 5 * time.Millisecond
	c.MaxPolls = 10
	return c
}

func TestPerformStopsAtFirstSuccess(t *testing.T) {
	var replicateCalls, hfCalls atomic.Int32

	replicateSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		replicateCalls.Add(1)
		w.Write([]byte(`{"id":"p1","status":"succeeded","output":"https://replicate.delivery/p1.png"}`))
	}))
	defer replicateSrv.Close()

	hfSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hfCalls.Add(1)
		w.Write([]byte(`{"output":"https://hf.space/out.png"}`))
	}))
	defer hfSrv.Close()

	hf := NewHFClient("")
	hf.BaseURL = hfSrv.URL

	o := NewOrchestrator([]Provider{
		testReplicate(t, replicateSrv, "r8_test").Provider(),
		hf.Provider(),
	}, nil)

	photo := encodePNG(t, 16, 16, color.RGBA{R: 220, G: 210, B: 200, A: 255})
	outcome, err := o.Perform(context.Background(), photo, "https://cdn.example/garment.jpg")

	require.NoError(t, err)
	assert.Equal(t, "replicate", outcome.Provider)
	assert.Equal(t, "https://replicate.delivery/p1.png", outcome.ImageRef)
	assert.Equal(t, int32(1), replicateCalls.Load())
	assert.Equal(t, int32(0), hfCalls.Load())
	require.Len(t, outcome.Attempts, 1)
	assert.Equal(t, attemptSucceeded, outcome.Attempts[0].Status)
}

func TestPerformPollsAsyncPrediction(t *testing.T) {
	var statusCalls atomic.Int32

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"p2","status":"starting"}`))
	})
	mux.HandleFunc("/p2", func(w http.ResponseWriter, r *http.Request) {
		if statusCalls.Add(1) < 3 {
			w.Write([]byte(`{"id":"p2","status":"processing"}`))
			return
		}
		w.Write([]byte(`{"id":"p2","status":"succeeded","output":["https://replicate.delivery/p2.png"]}`))
	})

	o := NewOrchestrator([]Provider{testReplicate(t, srv, "r8_test").Provider()}, nil)

	photo := encodePNG(t, 16, 16, color.RGBA{A: 255})
	outcome, err := o.Perform(context.Background(), photo, "https://cdn.example/garment.jpg")

	require.NoError(t, err)
	assert.Equal(t, "https://replicate.delivery/p2.png", outcome.ImageRef)
	assert.Equal(t, int32(3), statusCalls.Load())
}

func TestPerformFallsBackToLocalComposition(t *testing.T) {
	var hfCalls atomic.Int32

	hfSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hfCalls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer hfSrv.Close()

	garmentSrv := garmentServer(t)
	defer garmentSrv.Close()

	hf := NewHFClient("")
	hf.BaseURL = hfSrv.URL

	// Replicate is unconfigured and must be skipped without a call.
	o := NewOrchestrator([]Provider{
		NewReplicateClient("", "test-version").Provider(),
		hf.Provider(),
	}, nil)

	photo := encodePNG(t, 24, 24, color.RGBA{R: 210, G: 200, B: 190, A: 255})
	outcome, err := o.Perform(context.Background(), photo, garmentSrv.URL+"/garment.png")

	require.NoError(t, err)
	assert.Equal(t, "local", outcome.Provider)
	assert.NotEmpty(t, outcome.ImageData)
	assert.Equal(t, int32(1), hfCalls.Load())

	require.Len(t, outcome.Attempts, 3)
	assert.Equal(t, attemptSkipped, outcome.Attempts[0].Status)
	assert.Equal(t, attemptFailed, outcome.Attempts[1].Status)
	assert.Equal(t, attemptSucceeded, outcome.Attempts[2].Status)
}

func TestPerformSurfacesDecodeFailure(t *testing.T) {
	garmentSrv := garmentServer(t)
	defer garmentSrv.Close()

	o := NewOrchestrator(nil, nil)

	_, err := o.Perform(context.Background(), []byte("not an image"), garmentSrv.URL+"/garment.png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode model image")
}

func TestPerformRecordsProviderFailureReason(t *testing.T) {
	replicateSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		fmt.Fprint(w, `{"detail":"billing required"}`)
	}))
	defer replicateSrv.Close()

	garmentSrv := garmentServer(t)
	defer garmentSrv.Close()

	o := NewOrchestrator([]Provider{testReplicate(t, replicateSrv, "r8_test").Provider()}, nil)

	photo := encodePNG(t, 16, 16, color.RGBA{A: 255})
	outcome, err := o.Perform(context.Background(), photo, garmentSrv.URL+"/garment.png")

	require.NoError(t, err)
	require.Len(t, outcome.Attempts, 2)
	assert.Equal(t, attemptFailed, outcome.Attempts[0].Status)
	assert.Contains(t, outcome.Attempts[0].ErrorReason, "billing required")
}

func TestOutputURLShapes(t *testing.T) {
	url, err := outputURL(json.RawMessage(`"https://a/b.png"`))
	require.NoError(t, err)
	assert.Equal(t, "https://a/b.png", url)

	url, err = outputURL(json.RawMessage(`["https://a/c.png","https://a/d.png"]`))
	require.NoError(t, err)
	assert.Equal(t, "https://a/c.png", url)

	_, err = outputURL(nil)
	assert.Error(t, err)

	_, err = outputURL(json.RawMessage(`{"weird":true}`))
	assert.Error(t, err)
}

func TestNormalizeRefPassesURLsThrough(t *testing.T) {
	o := NewOrchestrator(nil, nil)
	ref := o.normalizeRef(context.Background(), "https://cdn.example/garment.jpg")
	assert.Equal(t, "https://cdn.example/garment.jpg", ref)
}

func TestNormalizeRefRehostsDataURIs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"url":"https://i.ibb.co/rehosted.jpg"}}`))
	}))
	defer srv.Close()

	host := NewImgBBHost("test-key")
	host.BaseURL = srv.URL
	o := NewOrchestrator(nil, []ImageHost{host})

	ref := o.normalizeRef(context.Background(), "data:image/jpeg;base64,aGVsbG8=")
	assert.Equal(t, "https://i.ibb.co/rehosted.jpg", ref)
	assert.False(t, strings.HasPrefix(ref, "data:"))
}
