package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
)

const promptHeader = `You are the ordering assistant of a restaurant. Recommend dishes from the menu below only.
Reply with a JSON object of the form {"message": "<short friendly answer>", "product_ids": [<menu ids>]}.

Menu (id | name | category | price | description):
`

type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	catalog   Catalog
	generator Generator
	logger    *slog.Logger
}

// NewService returns a recommender. A nil generator leaves the assistant
// disabled; Recommend then fails with THIRD_PARTY_ERROR.
func NewService(catalog Catalog, generator Generator, logger *slog.Logger) *Service {
	return &Service{
		catalog:   catalog,
		generator: generator,
		logger:    logger,
	}
}

// Recommend answers message with products from the available catalog. Ids the
// model invents are dropped. A reply without a recommendation object is
// returned as plain text with no products.
func (s *Service) Recommend(ctx context.Context, message string) (*models.Recommendation, error) {

	if s.generator == nil {
		return nil, errors.ThirdPartyError("Assistant is not configured")
	}

	message = utils.PlainText(message)
	if message == "" {
		return nil, errors.AddValidationError("message", "must not be empty")
	}

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	available := make(map[int64]models.Product, len(products))
	for _, p := range products {
		if p.IsAvailable {
			available[p.ID] = p
		}
	}

	reply, err := s.generator.Generate(ctx, buildPrompt(products, message))
	if err != nil {
		return nil, errors.ThirdPartyError("Assistant is unavailable").WithError(err)
	}

	rec, err := ExtractRecommendation(reply)
	if err != nil {
		s.logger.Warn("Assistant reply had no recommendation", slog.Int("reply_length", len(reply)))
		return &models.Recommendation{Message: strings.TrimSpace(reply), Products: []models.Product{}}, nil
	}

	result := &models.Recommendation{Message: rec.Message, Products: []models.Product{}}
	seen := make(map[int64]bool, len(rec.ProductIDs))

	for _, id := range rec.ProductIDs {
		p, ok := available[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		result.Products = append(result.Products, p)
	}

	if dropped := len(rec.ProductIDs) - len(result.Products); dropped > 0 {
		s.logger.Debug("Dropped recommended ids", slog.Int("dropped", dropped))
	}

	return result, nil
}

func buildPrompt(products []models.Product, message string) string {

	var b strings.Builder
	b.WriteString(promptHeader)

	for _, p := range products {
		if !p.IsAvailable {
			continue
		}
		fmt.Fprintf(&b, "%d | %s | %s | %s | %s\n", p.ID, p.Name, p.Category, p.EffectivePrice().String(), oneLine(p.Description))
	}

	b.WriteString("\nCustomer: ")
	b.WriteString(message)
	b.WriteString("\n")

	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
