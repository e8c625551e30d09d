package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddebortoli/darwin-ia-challenge/llm"
	"github.com/ddebortoli/darwin-ia-challenge/models"
)

type insertedRow struct {
	userID      int64
	description string
	amount      float64
	category    models.Category
}

type fakeRepo struct {
	users     map[string]*models.User
	findErr   error
	insertErr error
	inserted  []insertedRow
	nextID    int64
}

func (f *fakeRepo) FindUser(ctx context.Context, externalID string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.users[externalID], nil
}

func (f *fakeRepo) InsertExpense(ctx context.Context, userID int64, description string, amount float64, category models.Category) (*models.Expense, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = append(f.inserted, insertedRow{userID, description, amount, category})
	f.nextID++
	return &models.Expense{
		ID:          f.nextID,
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Category:    category,
	}, nil
}

type fakeExtractor struct {
	result *llm.Extraction
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(ctx context.Context, text string) (*llm.Extraction, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func whitelisted(ids ...string) map[string]*models.User {
	users := make(map[string]*models.User)
	for i, id := range ids {
		users[id] = &models.User{ID: int64(i + 1), ExternalID: id}
	}
	return users
}

func TestProcessSuccess(t *testing.T) {
	repo := &fakeRepo{users: whitelisted("42")}
	extractor := &fakeExtractor{result: &llm.Extraction{
		Outcome:          llm.OutcomeExpense,
		Description:      "Pizza",
		Amount:           20.0,
		ProposedCategory: "Food",
	}}
	p := NewProcessor(repo, extractor)

	result, err := p.Process(context.Background(), "42", "Pizza 20 bucks")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.CategoryFood, result.Category)
	assert.Equal(t, "Pizza", result.Description)
	assert.Equal(t, 20.0, result.Amount)
	assert.Equal(t, "Food expense added ✅", result.Reply)

	require.Len(t, repo.inserted, 1)
	assert.Equal(t, int64(1), repo.inserted[0].userID)
	assert.Equal(t, models.CategoryFood, repo.inserted[0].category)
}

func TestProcessUnauthorizedNeverCallsExtractor(t *testing.T) {
	repo := &fakeRepo{users: whitelisted("42")}
	extractor := &fakeExtractor{}
	p := NewProcessor(repo, extractor)

	result, err := p.Process(context.Background(), "999", "Gas 45.50")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Reply)
	assert.Equal(t, 0, extractor.calls)
	assert.Empty(t, repo.inserted)
}

func TestProcessAuthLookupFailure(t *testing.T) {
	repo := &fakeRepo{findErr: errors.New("connection refused")}
	extractor := &fakeExtractor{}
	p := NewProcessor(repo, extractor)

	result, err := p.Process(context.Background(), "42", "Gas 45.50")
	assert.ErrorIs(t, err, ErrAuthUnavailable)
	assert.False(t, result.Success)
	// A lookup failure is not the same as "not whitelisted".
	assert.NotEqual(t, msgUnauthorized, result.Reply)
	assert.Equal(t, 0, extractor.calls)
}

func TestProcessNotAnExpense(t *testing.T) {
	repo := &fakeRepo{users: whitelisted("42")}
	extractor := &fakeExtractor{result: &llm.Extraction{Outcome: llm.OutcomeNotExpense}}
	p := NewProcessor(repo, extractor)

	result, err := p.Process(context.Background(), "42", "hello")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, repo.inserted)
}

func TestProcessMalformed(t *testing.T) {
	repo := &fakeRepo{users: whitelisted("42")}
	extractor := &fakeExtractor{result: &llm.Extraction{Outcome: llm.OutcomeMalformed}}
	p := NewProcessor(repo, extractor)

	result, err := p.Process(context.Background(), "42", "spent some money")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, repo.inserted)
}

func TestProcessExtractorUnavailable(t *testing.T) {
	repo := &fakeRepo{users: whitelisted("42")}
	extractor := &fakeExtractor{err: llm.ErrBackendUnavailable}
	p := NewProcessor(repo, extractor)

	result, err := p.Process(context.Background(), "42", "Pizza 20 bucks")
	assert.ErrorIs(t, err, ErrExtractorUnavailable)
	assert.False(t, result.Success)
	assert.Empty(t, repo.inserted)
}

func TestProcessPersistenceFailure(t *testing.T) {
	repo := &fakeRepo{users: whitelisted("42"), insertErr: errors.New("constraint violation")}
	extractor := &fakeExtractor{result: &llm.Extraction{
		Outcome:          llm.OutcomeExpense,
		Description:      "Pizza",
		Amount:           20.0,
		ProposedCategory: "Food",
	}}
	p := NewProcessor(repo, extractor)

	result, err := p.Process(context.Background(), "42", "Pizza 20 bucks")
	assert.ErrorIs(t, err, ErrPersistence)
	assert.False(t, result.Success)
	assert.Empty(t, repo.inserted)
}

func TestProcessUnknownCategoryFallsBackToOther(t *testing.T) {
	repo := &fakeRepo{users: whitelisted("42")}
	extractor := &fakeExtractor{result: &llm.Extraction{
		Outcome:          llm.OutcomeExpense,
		Description:      "Mystery box",
		Amount:           5.0,
		ProposedCategory: "Shopping sprees",
	}}
	p := NewProcessor(repo, extractor)

	result, err := p.Process(context.Background(), "42", "Mystery box 5")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.CategoryOther, result.Category)
}

// Duplicate submissions are not deduplicated: the same message twice yields
// two distinct rows. This pins down current behavior; at-most-once delivery
// is the relay's problem.
func TestProcessDuplicateSubmissionsCreateTwoRows(t *testing.T) {
	repo := &fakeRepo{users: whitelisted("42")}
	extractor := &fakeExtractor{result: &llm.Extraction{
		Outcome:          llm.OutcomeExpense,
		Description:      "Pizza",
		Amount:           20.0,
		ProposedCategory: "Food",
	}}
	p := NewProcessor(repo, extractor)

	for i := 0; i < 2; i++ {
		result, err := p.Process(context.Background(), "42", "Pizza 20 bucks")
		require.NoError(t, err)
		assert.True(t, result.Success)
	}
	assert.Len(t, repo.inserted, 2)
}
