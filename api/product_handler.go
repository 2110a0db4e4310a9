package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/proteuswear/storefront-api/utils"
)

// ProductsHandler lists the catalog. `id` narrows to one product, `category`
// to one category.
func (h *Handler) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Products API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if idParam := r.URL.Query().Get("id"); idParam != "" {
		id, err := strconv.Atoi(idParam)
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid product id", http.StatusBadRequest)
			return
		}
		product, ok := h.Catalog.Get(id)
		if !ok {
			utils.RespondError(w, &logMessageBuilder, "Product not found", http.StatusNotFound)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Served product %d", id))
		utils.RespondJSON(w, http.StatusOK, product)
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Served category %s", category))
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"products": h.Catalog.ByCategory(category),
		})
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Served full catalog")
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"products": h.Catalog.All(),
	})
}
