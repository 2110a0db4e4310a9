package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	appConfig "github.com/proteuswear/storefront-api/config"
	"github.com/proteuswear/storefront-api/models"
	"github.com/proteuswear/storefront-api/utils"
)

// ContactRequest is a note submitted from the contact page
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactHandler stores the message and forwards it to the support inbox.
func (h *Handler) ContactHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Contact API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		utils.RespondError(w, &logMessageBuilder, "name, email and message are required", http.StatusBadRequest)
		return
	}

	// Store the message; email delivery failing should not lose it.
	if collection := utils.Collection(DatabaseName, "contact_messages"); collection != nil {
		record := models.ContactMessage{
			Name:      req.Name,
			Email:     req.Email,
			Subject:   req.Subject,
			Message:   req.Message,
			CreatedAt: time.Now(),
		}
		if _, err := collection.InsertOne(context.Background(), record); err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to save contact message: %v", err))
		}
	}

	subject := req.Subject
	if subject == "" {
		subject = "Contact form message"
	}
	body := fmt.Sprintf("From: %s <%s>\n\n%s", req.Name, req.Email, req.Message)
	htmlBody := fmt.Sprintf("<p>From: %s &lt;%s&gt;</p><p>%s</p>", req.Name, req.Email, req.Message)

	if err := utils.SendEmail("Proteus Support", appConfig.ContactInbox, subject, body, htmlBody); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to send email: %v", err))
	} else {
		utils.AddToLogMessage(&logMessageBuilder, "Contact message forwarded")
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Thanks for reaching out. We'll get back to you soon.",
	})
}
