package budget_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"centavo/internal/budget"
	"centavo/internal/money"
)

func TestStore_CreateCategory(t *testing.T) {
	type testCase struct {
		name      string
		params    budget.CategoryParams
		setupMock func(m *budget.MockAPI)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: budget.CategoryParams{
				Name: "Groceries",
				Type: budget.CategoryExpense,
			},
			setupMock: func(m *budget.MockAPI) {
				m.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params budget.CategoryParams) (*budget.Category, error) {
						return &budget.Category{
							ID:   uuid.New(),
							Name: params.Name,
							Type: params.Type,
						}, nil
					})
			},
		},
		{
			name:   "APIError",
			params: budget.CategoryParams{Name: "Groceries"},
			setupMock: func(m *budget.MockAPI) {
				m.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("validation failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api := budget.NewMockAPI(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(api)
			}

			store := budget.NewStore(api)
			got, err := store.CreateCategory(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				assert.Equal(t, "validation failed", store.Err())

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.Len(t, store.Categories(), 1)
		})
	}
}

func TestStore_CategoryLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := budget.NewMockAPI(ctrl)
	store := budget.NewStore(api)

	salary := budget.Category{ID: uuid.New(), Name: "Salary", Type: budget.CategoryIncome}
	rent := budget.Category{ID: uuid.New(), Name: "Rent", Type: budget.CategoryExpense}
	food := budget.Category{ID: uuid.New(), Name: "Food", Type: budget.CategoryExpense}

	api.EXPECT().
		ListCategories(gomock.Any(), gomock.Any()).
		Return([]budget.Category{salary, rent, food}, nil)
	require.NoError(t, store.FetchCategories(context.Background(), budget.ListFilter{}))

	got := store.CategoryByID(rent.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Rent", got.Name)
	assert.Nil(t, store.CategoryByID(uuid.New()))

	assert.Len(t, store.CategoriesByType(budget.CategoryExpense), 2)
	assert.Len(t, store.CategoriesByType(budget.CategoryIncome), 1)
}

func TestStore_DeleteBudget_RemovesFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := budget.NewMockAPI(ctrl)
	store := budget.NewStore(api)

	target := budget.Budget{ID: uuid.New()}
	other := budget.Budget{ID: uuid.New()}

	api.EXPECT().
		ListBudgets(gomock.Any(), gomock.Any()).
		Return([]budget.Budget{target, other}, nil)
	require.NoError(t, store.FetchBudgets(context.Background(), budget.ListFilter{}))

	api.EXPECT().DeleteBudget(gomock.Any(), target.ID).Return(nil)
	require.NoError(t, store.DeleteBudget(context.Background(), target.ID))

	budgets := store.Budgets()
	require.Len(t, budgets, 1)
	assert.Equal(t, other.ID, budgets[0].ID)
}

func TestStore_DeleteBudget_ErrorLeavesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := budget.NewMockAPI(ctrl)
	store := budget.NewStore(api)

	target := budget.Budget{ID: uuid.New()}
	api.EXPECT().
		ListBudgets(gomock.Any(), gomock.Any()).
		Return([]budget.Budget{target}, nil)
	require.NoError(t, store.FetchBudgets(context.Background(), budget.ListFilter{}))

	api.EXPECT().DeleteBudget(gomock.Any(), target.ID).Return(errors.New("not found"))
	require.Error(t, store.DeleteBudget(context.Background(), target.ID))

	assert.Len(t, store.Budgets(), 1)
	assert.Equal(t, "not found", store.Err())
}

func TestStore_MarkGoalCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := budget.NewMockAPI(ctrl)
	store := budget.NewStore(api)

	goal := budget.Goal{
		ID:            uuid.New(),
		Name:          "Emergency Fund",
		TargetAmount:  money.FromFloat(1000),
		CurrentAmount: money.FromFloat(1000),
	}
	api.EXPECT().
		ListGoals(gomock.Any(), gomock.Any()).
		Return([]budget.Goal{goal}, nil)
	require.NoError(t, store.FetchGoals(context.Background(), budget.ListFilter{}))

	completed := goal
	completed.IsCompleted = true
	api.EXPECT().MarkGoalCompleted(gomock.Any(), goal.ID).Return(&completed, nil)

	got, err := store.MarkGoalCompleted(context.Background(), goal.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)

	goals := store.Goals()
	require.Len(t, goals, 1)
	assert.True(t, goals[0].IsCompleted)
}

func TestStore_UpdateGoalProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := budget.NewMockAPI(ctrl)
	store := budget.NewStore(api)

	goal := budget.Goal{
		ID:            uuid.New(),
		Name:          "Trip",
		TargetAmount:  money.FromFloat(500),
		CurrentAmount: money.FromFloat(100),
	}
	api.EXPECT().
		ListGoals(gomock.Any(), gomock.Any()).
		Return([]budget.Goal{goal}, nil)
	require.NoError(t, store.FetchGoals(context.Background(), budget.ListFilter{}))

	bumped := goal
	bumped.CurrentAmount = money.FromFloat(250)
	api.EXPECT().
		UpdateGoalProgress(gomock.Any(), goal.ID, money.FromFloat(250)).
		Return(&bumped, nil)

	got, err := store.UpdateGoalProgress(context.Background(), goal.ID, money.FromFloat(250))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got.Progress(), 0.001)

	goals := store.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, "250.00", goals[0].CurrentAmount.String())
}

func TestGoal_Progress_ZeroTarget(t *testing.T) {
	g := budget.Goal{CurrentAmount: money.FromFloat(50)}
	assert.Zero(t, g.Progress())
}
