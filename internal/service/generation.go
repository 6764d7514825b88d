package service

import (
	"context"
	"fmt"

	"github.com/jlane/prodesc/internal/gemini"
	"github.com/jlane/prodesc/internal/prompts"
)

// generationClient is the slice of the Gemini client the service needs.
type generationClient interface {
	GenerateContent(ctx context.Context, prompt string) (*gemini.Result, error)
}

// GenerationRequest carries the structured product fields from which a
// prompt is synthesized server-side.
type GenerationRequest struct {
	ProductName       string `json:"productName" binding:"required"`
	KeyFeatures       string `json:"keyFeatures" binding:"required"`
	TargetAudience    string `json:"targetAudience" binding:"required"`
	DescriptionLength string `json:"descriptionLength" binding:"required"`
}

// GenerationService fronts the text-generation provider. It adds no business
// logic beyond input checks; provider responses pass through unmodified.
type GenerationService struct {
	client generationClient
}

// NewGenerationService creates the generation gateway service.
func NewGenerationService(client generationClient) *GenerationService {
	return &GenerationService{client: client}
}

// Generate forwards a raw prompt and returns the provider result verbatim.
// An empty prompt is rejected before any network call.
func (s *GenerationService) Generate(ctx context.Context, prompt string) (*gemini.Result, error) {
	if prompt == "" {
		return nil, &ValidationError{Message: "prompt is required"}
	}
	return s.client.GenerateContent(ctx, prompt)
}

// GenerateForProduct builds the description prompt from structured fields and
// returns the extracted description text.
func (s *GenerationService) GenerateForProduct(ctx context.Context, req *GenerationRequest) (string, error) {
	if req.ProductName == "" || req.KeyFeatures == "" || req.TargetAudience == "" || req.DescriptionLength == "" {
		return "", &ValidationError{Message: "productName, keyFeatures, targetAudience and descriptionLength are required"}
	}

	prompt := prompts.ProductDescription(req.ProductName, req.KeyFeatures, req.TargetAudience, req.DescriptionLength)

	result, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("provider response carried no description text")
	}
	return text, nil
}
