// Package advice builds plant-specific prompts and proxies them to an LLM.
package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/daunku/daunku/pkg/llm"
	"github.com/daunku/daunku/pkg/plant"
)

const systemPrompt = "You are a houseplant care assistant. Answer with specific, practical and easy-to-follow advice."

// UseCase generates AI care guidance for a user's plant.
type UseCase interface {
	Diagnose(ctx context.Context, ownerID, plantID uuid.UUID, problemDescription, problemImageURL string) (string, error)
	CareAdvice(ctx context.Context, ownerID, plantID uuid.UUID, careType string) (string, error)
}

// ErrValidation reports malformed advice input.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

type service struct {
	plants plant.Repository
	model  llm.ChatModel
}

func NewService(plants plant.Repository, model llm.ChatModel) UseCase {
	return &service{plants: plants, model: model}
}

func (s *service) Diagnose(ctx context.Context, ownerID, plantID uuid.UUID, problemDescription, problemImageURL string) (string, error) {
	if strings.TrimSpace(problemDescription) == "" {
		return "", ErrValidation("problemDescription is required")
	}
	p, err := s.plants.GetByIDForOwner(ctx, ownerID, plantID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I have a plant named %q (species: %s). ", p.Nickname, speciesOrUnknown(p))
	fmt.Fprintf(&b, "The plant has a problem: %q. ", problemDescription)
	if problemImageURL != "" {
		fmt.Fprintf(&b, "A photo of the problem is available at %s; take it into account if relevant. ", problemImageURL)
	}
	b.WriteString("Diagnose the likely cause and give short, specific care advice to fix it. Format the response as bullet points: Diagnosis, Solution.")

	return s.model.Ask(ctx, systemPrompt, b.String())
}

func (s *service) CareAdvice(ctx context.Context, ownerID, plantID uuid.UUID, careType string) (string, error) {
	p, err := s.plants.GetByIDForOwner(ctx, ownerID, plantID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(careType) == "" {
		careType = "general care"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I have a plant named %q (species: %s). ", p.Nickname, speciesOrUnknown(p))
	fmt.Fprintf(&b, "Give me advice on %s for this plant.", careType)

	return s.model.Ask(ctx, systemPrompt, b.String())
}

func speciesOrUnknown(p plant.Plant) string {
	if p.SpeciesName == "" {
		return "unknown"
	}
	return p.SpeciesName
}
