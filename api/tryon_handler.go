package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	appConfig "github.com/proteuswear/storefront-api/config"
	"github.com/proteuswear/storefront-api/models"
	"github.com/proteuswear/storefront-api/store"
	"github.com/proteuswear/storefront-api/utils"
)

// VirtualTryOnHandler runs the try-on pipeline for the shopper's photo and
// the chosen product, stores the session result and archives a record.
func (h *Handler) VirtualTryOnHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Virtual Try-On API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID, err := GetSessionIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Session not resolved", http.StatusInternalServerError)
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Error parsing form data", http.StatusBadRequest)
		return
	}

	productID, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "product_id is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "photo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	photo, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Error reading photo", http.StatusBadRequest)
		return
	}

	product, ok := h.Catalog.Get(productID)
	if !ok {
		utils.RespondError(w, &logMessageBuilder, "Product not found", http.StatusNotFound)
		return
	}
	garmentRef := product.GarmentImage()
	if garmentRef == "" {
		utils.RespondError(w, &logMessageBuilder, "Product has no images", http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Try-On Request: Session=%s, ProductID=%d", sessionID, productID))

	// The provider chain can poll a remote job for minutes; give it room
	// beyond the request's own deadline handling.
	tryOnCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	outcome, err := h.Orchestrator.Perform(tryOnCtx, photo, garmentRef)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to generate try-on image: "+err.Error(), http.StatusInternalServerError)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Try-on succeeded via %s", outcome.Provider))

	resultRef, objectKey := h.archiveResult(r.Context(), &logMessageBuilder, outcome.Result.ImageRef, outcome.Result.ImageData)

	result := &models.TryOnResult{
		ResultImageRef:  resultRef,
		ModelImageRef:   utils.EncodeDataURI(photo),
		GarmentImageRef: garmentRef,
		ProductName:     product.Name,
	}
	h.Sessions.SetResult(r.Context(), sessionID, result)

	// Archive the record; the response goes out even if the save fails.
	if collection := utils.Collection(DatabaseName, "tryons"); collection != nil {
		record := models.TryOn{
			SessionID:         sessionID,
			ProductID:         product.ID,
			ProductName:       product.Name,
			GeneratedImageKey: objectKey,
			Provider:          outcome.Provider,
			Status:            "completed",
			CreatedAt:         time.Now(),
		}
		if _, err := collection.InsertOne(context.Background(), record); err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to save try-on record: %v", err))
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"result":   resultRef,
		"product":  product.Name,
		"provider": outcome.Provider,
		"attempts": outcome.Attempts,
	})
}

// archiveResult settles the final image reference. Raw composite bytes are
// uploaded to S3 and presigned when a bucket is configured; otherwise they
// degrade to an inline data reference. Remote URLs pass through untouched.
func (h *Handler) archiveResult(ctx context.Context, logger *strings.Builder, imageRef string, imageData []byte) (resultRef, objectKey string) {
	if imageData == nil {
		return imageRef, ""
	}

	if appConfig.AWSBucketName == "" {
		return utils.EncodeDataURI(imageData), ""
	}

	objectKey = fmt.Sprintf("generated_images/generated_tryon_%d.jpg", time.Now().UnixNano())
	if _, err := utils.UploadFileToS3(ctx, bytes.NewReader(imageData), objectKey, "image/jpeg"); err != nil {
		utils.AddToLogMessage(logger, fmt.Sprintf("Failed to upload generated image: %v", err))
		return utils.EncodeDataURI(imageData), ""
	}

	presigned, err := utils.GetPresignedURL(ctx, objectKey)
	if err != nil {
		utils.AddToLogMessage(logger, fmt.Sprintf("Failed to presign generated image: %v", err))
		return utils.EncodeDataURI(imageData), objectKey
	}
	return presigned, objectKey
}

// TryOnResultHandler serves the current session result. GET returns it or
// 404 when the session has none, which the result page treats as a redirect
// back to browsing. DELETE clears it.
func (h *Handler) TryOnResultHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Try-On Result API]")

	sessionID, err := GetSessionIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Session not resolved", http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodGet:
		result := h.Sessions.Result(sessionID)
		if result == nil {
			utils.RespondError(w, &logMessageBuilder, "No try-on result", http.StatusNotFound)
			return
		}
		utils.RespondJSON(w, http.StatusOK, result)
	case http.MethodDelete:
		h.Sessions.Clear(r.Context(), sessionID)
		utils.AddToLogMessage(&logMessageBuilder, "Cleared try-on result")
		utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Try-on result cleared"})
	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// TryOnHistoryHandler lists the session's archived try-ons, newest first,
// with presigned image URLs where a stored object exists.
func (h *Handler) TryOnHistoryHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Try-On History API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID, err := GetSessionIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Session not resolved", http.StatusInternalServerError)
		return
	}

	collection := utils.Collection(DatabaseName, "tryons")
	if collection == nil {
		utils.RespondError(w, &logMessageBuilder, "History unavailable", http.StatusServiceUnavailable)
		return
	}

	records, err := store.FetchTryOnHistory(r.Context(), collection, sessionID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to load history: %v", err), http.StatusInternalServerError)
		return
	}

	for i := range records {
		if records[i].GeneratedImageKey == "" {
			continue
		}
		if url, err := utils.GetPresignedURL(r.Context(), records[i].GeneratedImageKey); err == nil {
			records[i].GeneratedImageKey = url
		}
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Served %d history records", len(records)))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"tryons": records})
}
