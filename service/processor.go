package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ddebortoli/darwin-ia-challenge/llm"
	"github.com/ddebortoli/darwin-ia-challenge/logger"
	"github.com/ddebortoli/darwin-ia-challenge/models"
)

// Repository is the storage surface the processor needs.
type Repository interface {
	FindUser(ctx context.Context, externalID string) (*models.User, error)
	InsertExpense(ctx context.Context, userID int64, description string, amount float64, category models.Category) (*models.Expense, error)
}

// Extractor turns raw text into a structured expense candidate.
type Extractor interface {
	Extract(ctx context.Context, text string) (*llm.Extraction, error)
}

// Result is the outcome of processing one inbound message. Reply is always
// set and safe to show to the user.
type Result struct {
	Success     bool
	Reply       string
	Category    models.Category
	Description string
	Amount      float64
}

// Processor runs the expense pipeline: authorize, extract, classify,
// persist, reply.
type Processor struct {
	repo      Repository
	extractor Extractor
}

// NewProcessor builds a processor on the given repository and extractor.
func NewProcessor(repo Repository, extractor Extractor) *Processor {
	return &Processor{repo: repo, extractor: extractor}
}

// Process handles one message from externalUserID. The returned Result is
// always non-nil; a non-nil error additionally reports a system fault
// (authorization lookup, extractor backend, or persistence) for the caller
// to log or retry. Unauthorized users never reach the extractor.
//
// Retried messages are not deduplicated: submitting the same text twice
// inserts two rows. At-most-once delivery is the relay's responsibility.
func (p *Processor) Process(ctx context.Context, externalUserID, text string) (*Result, error) {
	log := logger.Get()
	log.Info("processing expense request", zap.String("external_user_id", externalUserID))

	user, err := p.repo.FindUser(ctx, externalUserID)
	if err != nil {
		log.Error("whitelist lookup failed", zap.String("external_user_id", externalUserID), zap.Error(err))
		return &Result{Reply: msgServiceUnavailable}, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	if user == nil {
		log.Warn("unauthorized user attempt", zap.String("external_user_id", externalUserID))
		return &Result{Reply: msgUnauthorized}, nil
	}

	extraction, err := p.extractor.Extract(ctx, text)
	if err != nil {
		log.Error("expense extraction failed", zap.String("external_user_id", externalUserID), zap.Error(err))
		return &Result{Reply: msgExtractorUnavailable}, fmt.Errorf("%w: %v", ErrExtractorUnavailable, err)
	}

	switch extraction.Outcome {
	case llm.OutcomeNotExpense:
		log.Info("message identified as non-expense", zap.String("external_user_id", externalUserID))
		return &Result{Reply: msgNotExpense}, nil
	case llm.OutcomeMalformed:
		log.Warn("extraction output malformed", zap.String("external_user_id", externalUserID))
		return &Result{Reply: msgMalformed}, nil
	}

	category := llm.Classify(extraction.ProposedCategory)

	expense, err := p.repo.InsertExpense(ctx, user.ID, extraction.Description, extraction.Amount, category)
	if err != nil {
		log.Error("failed to save expense",
			zap.String("external_user_id", externalUserID),
			zap.String("category", string(category)),
			zap.Error(err))
		return &Result{Reply: msgSaveFailed}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	log.Info("expense saved",
		zap.String("external_user_id", externalUserID),
		zap.String("category", string(category)),
		zap.Float64("amount", expense.Amount))

	return &Result{
		Success:     true,
		Reply:       fmt.Sprintf(msgExpenseAdded, category),
		Category:    category,
		Description: expense.Description,
		Amount:      expense.Amount,
	}, nil
}
