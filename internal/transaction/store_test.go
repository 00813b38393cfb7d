package transaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"centavo/internal/money"
	"centavo/internal/transaction"
)

func TestStore_CreateIncome(t *testing.T) {
	type testCase struct {
		name      string
		params    transaction.CreateParams
		setupMock func(m *transaction.MockAPI)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: transaction.CreateParams{
				Amount:      money.FromFloat(1200),
				Description: "Salary",
			},
			setupMock: func(m *transaction.MockAPI) {
				m.EXPECT().
					CreateIncome(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
						return &transaction.Transaction{
							ID:          uuid.New(),
							Amount:      params.Amount,
							Description: params.Description,
						}, nil
					})
			},
			wantErr: false,
		},
		{
			name: "APIError",
			params: transaction.CreateParams{
				Amount: money.FromFloat(500),
			},
			setupMock: func(m *transaction.MockAPI) {
				m.EXPECT().
					CreateIncome(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("server unavailable"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api := transaction.NewMockAPI(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(api)
			}

			store := transaction.NewStore(api)
			got, err := store.CreateIncome(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				assert.Empty(t, store.Incomes())
				assert.Equal(t, err.Error(), store.Err())
				assert.False(t, store.Loading())

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, store.Incomes(), 1)
			assert.Empty(t, store.Err())
			assert.False(t, store.Loading())
		})
	}
}

func TestStore_CreateIncome_PrependsNewest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := transaction.NewMockAPI(ctrl)
	store := transaction.NewStore(api)

	first := uuid.New()
	second := uuid.New()

	api.EXPECT().
		CreateIncome(gomock.Any(), gomock.Any()).
		Return(&transaction.Transaction{ID: first, Amount: money.FromFloat(100)}, nil)
	api.EXPECT().
		CreateIncome(gomock.Any(), gomock.Any()).
		Return(&transaction.Transaction{ID: second, Amount: money.FromFloat(200)}, nil)

	_, err := store.CreateIncome(context.Background(), transaction.CreateParams{Amount: money.FromFloat(100)})
	require.NoError(t, err)
	_, err = store.CreateIncome(context.Background(), transaction.CreateParams{Amount: money.FromFloat(200)})
	require.NoError(t, err)

	incomes := store.Incomes()
	require.Len(t, incomes, 2)
	assert.Equal(t, second, incomes[0].ID)
	assert.Equal(t, first, incomes[1].ID)
}

func TestStore_FetchIncomes(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *transaction.MockAPI)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *transaction.MockAPI) {
				m.EXPECT().
					ListIncomes(gomock.Any(), transaction.ListFilter{}).
					Return([]transaction.Transaction{
						{ID: uuid.New()},
						{ID: uuid.New()},
					}, nil)
			},
			wantLen: 2,
		},
		{
			name: "Error",
			setupMock: func(m *transaction.MockAPI) {
				m.EXPECT().
					ListIncomes(gomock.Any(), transaction.ListFilter{}).
					Return(nil, errors.New("list error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api := transaction.NewMockAPI(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(api)
			}

			store := transaction.NewStore(api)
			err := store.FetchIncomes(context.Background(), transaction.ListFilter{})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, "list error", store.Err())

				return
			}

			assert.NoError(t, err)
			assert.Len(t, store.Incomes(), tt.wantLen)
		})
	}
}

func TestStore_UpdateExpense_ReplacesInPlace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := transaction.NewMockAPI(ctrl)
	store := transaction.NewStore(api)

	keep := transaction.Transaction{ID: uuid.New(), Description: "Rent"}
	target := transaction.Transaction{ID: uuid.New(), Description: "Groceries"}

	api.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		Return([]transaction.Transaction{keep, target}, nil)
	require.NoError(t, store.FetchExpenses(context.Background(), transaction.ListFilter{}))

	updated := target
	updated.Description = "Groceries (market)"
	api.EXPECT().
		UpdateExpense(gomock.Any(), target.ID, gomock.Any()).
		Return(&updated, nil)

	got, err := store.UpdateExpense(context.Background(), target.ID, transaction.CreateParams{Description: updated.Description})
	require.NoError(t, err)
	assert.Equal(t, updated.Description, got.Description)

	expenses := store.Expenses()
	require.Len(t, expenses, 2)
	assert.Equal(t, keep.ID, expenses[0].ID)
	assert.Equal(t, "Groceries (market)", expenses[1].Description)
}

func TestStore_DeleteIncome_RemovesFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := transaction.NewMockAPI(ctrl)
	store := transaction.NewStore(api)

	target := transaction.Transaction{ID: uuid.New(), Amount: money.FromFloat(50)}
	other := transaction.Transaction{ID: uuid.New(), Amount: money.FromFloat(75)}

	api.EXPECT().
		ListIncomes(gomock.Any(), gomock.Any()).
		Return([]transaction.Transaction{target, other}, nil)
	require.NoError(t, store.FetchIncomes(context.Background(), transaction.ListFilter{}))

	api.EXPECT().DeleteIncome(gomock.Any(), target.ID).Return(nil)
	require.NoError(t, store.DeleteIncome(context.Background(), target.ID))

	incomes := store.Incomes()
	require.Len(t, incomes, 1)
	assert.Equal(t, other.ID, incomes[0].ID)
	assert.True(t, store.TotalIncome().Equal(money.FromFloat(75)))
}

func TestStore_NetBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := transaction.NewMockAPI(ctrl)
	store := transaction.NewStore(api)

	api.EXPECT().
		ListIncomes(gomock.Any(), gomock.Any()).
		Return([]transaction.Transaction{
			{ID: uuid.New(), Amount: money.FromFloat(100)},
			{ID: uuid.New(), Amount: money.FromFloat(40.50)},
		}, nil)
	api.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		Return([]transaction.Transaction{
			{ID: uuid.New(), Amount: money.FromFloat(60.25)},
		}, nil)

	require.NoError(t, store.FetchIncomes(context.Background(), transaction.ListFilter{}))
	require.NoError(t, store.FetchExpenses(context.Background(), transaction.ListFilter{}))

	assert.Equal(t, "140.50", store.TotalIncome().String())
	assert.Equal(t, "60.25", store.TotalExpenses().String())
	assert.Equal(t, "80.25", store.NetBalance().String())
}

func TestStore_CreateExpense_InsufficientBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: the guard must reject before any call goes out.
	api := transaction.NewMockAPI(ctrl)
	store := transaction.NewStore(api)

	api.EXPECT().
		ListIncomes(gomock.Any(), gomock.Any()).
		Return([]transaction.Transaction{
			{ID: uuid.New(), Amount: money.FromFloat(60)},
		}, nil)
	require.NoError(t, store.FetchIncomes(context.Background(), transaction.ListFilter{}))

	got, err := store.CreateExpense(context.Background(), transaction.CreateParams{
		Amount: money.FromFloat(80),
	})
	require.Error(t, err)
	assert.Nil(t, got)

	var balErr *transaction.InsufficientBalanceError
	require.ErrorAs(t, err, &balErr)
	assert.Equal(t, "insufficient balance: available 60.00, attempted 80.00", balErr.Error())
	assert.Empty(t, store.Expenses())
	assert.Empty(t, store.Err())
}

func TestStore_CreateExpense_ExactBalanceAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := transaction.NewMockAPI(ctrl)
	store := transaction.NewStore(api)

	api.EXPECT().
		ListIncomes(gomock.Any(), gomock.Any()).
		Return([]transaction.Transaction{
			{ID: uuid.New(), Amount: money.FromFloat(60)},
		}, nil)
	require.NoError(t, store.FetchIncomes(context.Background(), transaction.ListFilter{}))

	api.EXPECT().
		CreateExpense(gomock.Any(), gomock.Any()).
		Return(&transaction.Transaction{ID: uuid.New(), Amount: money.FromFloat(60)}, nil)

	got, err := store.CreateExpense(context.Background(), transaction.CreateParams{
		Amount: money.FromFloat(60),
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, store.NetBalance().IsZero())
}

func TestStore_ClearError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := transaction.NewMockAPI(ctrl)
	store := transaction.NewStore(api)

	api.EXPECT().
		ListIncomes(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("boom"))
	require.Error(t, store.FetchIncomes(context.Background(), transaction.ListFilter{}))
	require.Equal(t, "boom", store.Err())

	store.ClearError()
	assert.Empty(t, store.Err())
}
