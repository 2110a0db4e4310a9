package tryon

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/proteuswear/storefront-api/config"
	"github.com/proteuswear/storefront-api/utils"
	"google.golang.org/api/option"
)

// GeminiClient is the tertiary backend. Unlike the hosted try-on models it
// takes image payloads rather than URLs and returns the composite inline.
type GeminiClient struct {
	APIKey string
	Model  string
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		APIKey: apiKey,
		Model:  "gemini-2.5-flash-image",
	}
}

func (c *GeminiClient) Provider() Provider {
	return Provider{
		Name:      "gemini",
		Available: func() bool { return config.IsConfigured(c.APIKey) },
		Invoke: func(ctx context.Context, humanRef, garmentRef string) (*Result, error) {
			data, err := c.Generate(ctx, humanRef, garmentRef)
			if err != nil {
				return nil, err
			}
			return &Result{ImageData: data}, nil
		},
	}
}

// Generate fetches both images and asks the model for a composite of the
// garment worn by the person. The response blob is the result image.
func (c *GeminiClient) Generate(ctx context.Context, humanRef, garmentRef string) ([]byte, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.Model)

	prompt := `Show the clothing item from the second image worn by the person in the first image.
Keep the person's pose, face and background unchanged; only replace the upper-body garment.
Return a single photorealistic image.`

	personData, err := utils.FetchImage(ctx, humanRef)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch person image: %v", err)
	}
	garmentData, err := utils.FetchImage(ctx, garmentRef)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch garment image: %v", err)
	}

	parts := []genai.Part{
		genai.Text(prompt),
		genai.ImageData("jpeg", personData),
		genai.ImageData("jpeg", garmentData),
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok {
			return blob.Data, nil
		}
	}
	return nil, fmt.Errorf("response contained no image part")
}
