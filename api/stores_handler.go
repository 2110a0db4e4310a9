package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/proteuswear/storefront-api/stores"
	"github.com/proteuswear/storefront-api/utils"
)

// StoresHandler returns the retail locations sorted by distance, with a
// directions link per store.
func (h *Handler) StoresHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Stores API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	nearest := stores.Nearest()
	directions := make(map[int]string, len(nearest))
	for _, s := range nearest {
		directions[s.ID] = stores.DirectionsURL(s)
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Served %d stores", len(nearest)))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"stores":     nearest,
		"directions": directions,
	})
}
