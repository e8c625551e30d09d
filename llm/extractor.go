package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const extractionPrompt = `You are an expense analysis expert. Your job is to determine if a message contains expense information and extract it.

IMPORTANT: Only messages that explicitly mention a purchase, payment, or expense with a monetary amount should be considered expenses.

Available categories: Housing, Transportation, Food, Utilities, Insurance, Medical/Healthcare, Savings, Debt, Education, Entertainment, Other

Rules:
1. ONLY messages that mention a purchase, payment, or expense with a monetary amount are expenses
2. Messages without monetary amounts are NOT expenses
3. Greetings, questions, random text, or non-financial messages are NOT expenses
4. If the message is not about an expense, set is_expense to false and return null for other fields
5. Extract the description (what was purchased)
6. Extract the amount (numeric value)
7. Categorize into the most appropriate category
8. Amount should be a positive number

Examples of EXPENSES:
- "Pizza 20 bucks" → is_expense: true, description: "Pizza", amount: 20.0, category: "Food"
- "Gas 45.50" → is_expense: true, description: "Gas", amount: 45.50, category: "Transportation"
- "Netflix subscription 15.99" → is_expense: true, description: "Netflix subscription", amount: 15.99, category: "Entertainment"

Examples of NON-EXPENSES:
- "Hello there" → is_expense: false, description: null, amount: null, category: null
- "How are you?" → is_expense: false, description: null, amount: null, category: null

Return only the JSON response with fields: is_expense, description, amount, category`

// Outcome is the shape of an extraction result.
type Outcome int

const (
	// OutcomeExpense means the text plausibly describes a single expense.
	OutcomeExpense Outcome = iota
	// OutcomeNotExpense means the text does not describe an expense.
	OutcomeNotExpense
	// OutcomeMalformed means the model answered but its output could not be
	// parsed into a valid expense.
	OutcomeMalformed
)

// Extraction is the structured candidate produced from one message.
type Extraction struct {
	Outcome          Outcome
	Description      string
	Amount           float64
	ProposedCategory string
}

// Extractor turns raw message text into an Extraction via a single
// deterministic model call.
type Extractor struct {
	chat Chat
}

// NewExtractor builds an extractor on the given chat backend.
func NewExtractor(chat Chat) *Extractor {
	return &Extractor{chat: chat}
}

var jsonBlockRe = regexp.MustCompile(`\{[\s\S]*?\}`)

type rawExtraction struct {
	IsExpense   bool            `json:"is_expense"`
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Category    string          `json:"category"`
}

// Extract asks the model to analyze text and parses its reply strictly.
// A returned error always wraps ErrBackendUnavailable; parse problems are
// reported through the Outcome, never as a guessed value.
func (e *Extractor) Extract(ctx context.Context, text string) (*Extraction, error) {
	content, err := e.chat.Complete(ctx, extractionPrompt, text)
	if err != nil {
		return nil, fmt.Errorf("extracting expense: %w", err)
	}

	// The model is asked for bare JSON but may wrap it in prose; take the
	// first JSON object in the reply.
	jsonStr := content
	if match := jsonBlockRe.FindString(content); match != "" {
		jsonStr = match
	}

	var raw rawExtraction
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return &Extraction{Outcome: OutcomeMalformed}, nil
	}

	if !raw.IsExpense {
		return &Extraction{Outcome: OutcomeNotExpense}, nil
	}

	description := strings.TrimSpace(raw.Description)
	if description == "" {
		return &Extraction{Outcome: OutcomeMalformed}, nil
	}

	amount, ok := parseAmount(raw.Amount)
	if !ok || amount <= 0 {
		return &Extraction{Outcome: OutcomeMalformed}, nil
	}

	return &Extraction{
		Outcome:          OutcomeExpense,
		Description:      description,
		Amount:           amount,
		ProposedCategory: raw.Category,
	}, nil
}

var amountTokenRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// parseAmount accepts either a JSON number or a decorated string such as
// "$20", "20 bucks" or "45.50 dollars". Text with no numeric token is
// rejected rather than guessed, and a sign is part of the token so negative
// amounts stay negative for the caller's positivity check.
func parseAmount(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}

	s = strings.ReplaceAll(s, ",", "")
	token := amountTokenRe.FindString(s)
	if token == "" {
		return 0, false
	}

	n, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
