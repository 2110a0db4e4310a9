package tryon

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/proteuswear/storefront-api/config"
	"github.com/proteuswear/storefront-api/utils"
)

// Outcome is the final product of a try-on run: the normalized result plus
// the attempt trail across the provider chain.
type Outcome struct {
	Result
	Provider string
	Attempts []Attempt
}

// Orchestrator produces a composite try-on image from a shopper photo and a
// garment reference, working through remote backends in priority order and
// finishing with the local compositor, which cannot fail except on
// undecodable input.
type Orchestrator struct {
	providers []Provider
	hosts     []ImageHost
}

func NewOrchestrator(providers []Provider, hosts []ImageHost) *Orchestrator {
	return &Orchestrator{providers: providers, hosts: hosts}
}

// NewDefaultOrchestrator wires the standard chain from configuration:
// Replicate, then Hugging Face, then Gemini, with imgbb and imgur as
// hosting backends for freshly captured photos.
func NewDefaultOrchestrator() *Orchestrator {
	providers := []Provider{
		NewReplicateClient(config.ReplicateAPIKey, config.ReplicateModelVersion).Provider(),
		NewHFClient(config.HFAPIKey).Provider(),
		NewGeminiClient(config.GeminiAPIKey).Provider(),
	}
	hosts := []ImageHost{
		NewImgBBHost(config.ImgBBAPIKey),
		NewImgurHost(config.ImgurClientID),
	}
	return NewOrchestrator(providers, hosts)
}

// Perform runs the provider chain. The first provider to produce a
// well-formed result wins; per-provider failures are recorded and non-fatal.
// When every remote backend fails or is skipped, the local compositor takes
// over; its decode failure is the only error this method returns.
func (o *Orchestrator) Perform(ctx context.Context, photo []byte, garmentRef string) (*Outcome, error) {
	humanRef := o.hostImage(ctx, photo)
	remoteGarmentRef := o.normalizeRef(ctx, garmentRef)

	outcome := &Outcome{}
	for _, p := range o.providers {
		if p.Available == nil || !p.Available() {
			outcome.Attempts = append(outcome.Attempts, Attempt{Provider: p.Name, Status: attemptSkipped})
			continue
		}

		result, err := p.Invoke(ctx, humanRef, remoteGarmentRef)
		if err != nil {
			log.Printf("try-on: provider %s failed: %v", p.Name, err)
			outcome.Attempts = append(outcome.Attempts, Attempt{
				Provider:    p.Name,
				Status:      attemptFailed,
				ErrorReason: err.Error(),
			})
			continue
		}

		outcome.Attempts = append(outcome.Attempts, Attempt{Provider: p.Name, Status: attemptSucceeded})
		outcome.Result = *result
		outcome.Provider = p.Name
		return outcome, nil
	}

	// Local composition. Garment bytes come from the original reference so
	// a failed re-hosting above cannot sink the fallback.
	garmentData, err := utils.FetchImage(ctx, garmentRef)
	if err != nil {
		outcome.Attempts = append(outcome.Attempts, Attempt{
			Provider:    "local",
			Status:      attemptFailed,
			ErrorReason: err.Error(),
		})
		return outcome, fmt.Errorf("failed to load garment image: %v", err)
	}

	composite, err := Composite(photo, garmentData)
	if err != nil {
		outcome.Attempts = append(outcome.Attempts, Attempt{
			Provider:    "local",
			Status:      attemptFailed,
			ErrorReason: err.Error(),
		})
		return outcome, err
	}

	outcome.Attempts = append(outcome.Attempts, Attempt{Provider: "local", Status: attemptSucceeded})
	outcome.Result = Result{ImageData: composite}
	outcome.Provider = "local"
	return outcome, nil
}

// hostImage turns raw photo bytes into a network-retrievable reference by
// trying the hosting backends in order. When every host fails the bytes are
// embedded as an inline data reference instead; normalization never fails
// the pipeline.
func (o *Orchestrator) hostImage(ctx context.Context, data []byte) string {
	for _, h := range o.hosts {
		if !h.Available() {
			continue
		}
		url, err := h.Upload(ctx, data)
		if err != nil {
			log.Printf("try-on: %s upload failed: %v", h.Name(), err)
			continue
		}
		return url
	}
	return utils.EncodeDataURI(data)
}

// normalizeRef re-hosts inline data references so remote backends receive a
// real URL. http(s) references pass through untouched.
func (o *Orchestrator) normalizeRef(ctx context.Context, ref string) string {
	if !strings.HasPrefix(ref, "data:") {
		return ref
	}
	data, err := utils.DecodeDataURI(ref)
	if err != nil {
		return ref
	}
	return o.hostImage(ctx, data)
}
