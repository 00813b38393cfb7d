package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"centavo/internal/budget"
	"centavo/internal/money"
)

func (c *Client) ListCategories(ctx context.Context, filter budget.ListFilter) ([]budget.Category, error) {
	data, err := c.do(ctx, http.MethodGet, "/budgets/categories/", filter.Query(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[budget.Category](data)
}

func (c *Client) CreateCategory(ctx context.Context, params budget.CategoryParams) (*budget.Category, error) {
	data, err := c.do(ctx, http.MethodPost, "/budgets/categories/", nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[budget.Category](data)
}

func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, params budget.CategoryParams) (*budget.Category, error) {
	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/budgets/categories/%s/", id), nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[budget.Category](data)
}

func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/budgets/categories/%s/", id), nil, nil)

	return err
}

func (c *Client) ListBudgets(ctx context.Context, filter budget.ListFilter) ([]budget.Budget, error) {
	data, err := c.do(ctx, http.MethodGet, "/budgets/budgets/", filter.Query(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[budget.Budget](data)
}

func (c *Client) CreateBudget(ctx context.Context, params budget.BudgetParams) (*budget.Budget, error) {
	data, err := c.do(ctx, http.MethodPost, "/budgets/budgets/", nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[budget.Budget](data)
}

func (c *Client) UpdateBudget(ctx context.Context, id uuid.UUID, params budget.BudgetParams) (*budget.Budget, error) {
	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/budgets/budgets/%s/", id), nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[budget.Budget](data)
}

func (c *Client) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/budgets/budgets/%s/", id), nil, nil)

	return err
}

func (c *Client) ListGoals(ctx context.Context, filter budget.ListFilter) ([]budget.Goal, error) {
	data, err := c.do(ctx, http.MethodGet, "/budgets/goals/", filter.Query(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[budget.Goal](data)
}

func (c *Client) CreateGoal(ctx context.Context, params budget.GoalParams) (*budget.Goal, error) {
	data, err := c.do(ctx, http.MethodPost, "/budgets/goals/", nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[budget.Goal](data)
}

func (c *Client) UpdateGoal(ctx context.Context, id uuid.UUID, params budget.GoalParams) (*budget.Goal, error) {
	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/budgets/goals/%s/", id), nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[budget.Goal](data)
}

func (c *Client) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/budgets/goals/%s/", id), nil, nil)

	return err
}

func (c *Client) MarkGoalCompleted(ctx context.Context, id uuid.UUID) (*budget.Goal, error) {
	data, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/budgets/goals/%s/complete/", id), nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeOne[budget.Goal](data)
}

func (c *Client) UpdateGoalProgress(ctx context.Context, id uuid.UUID, current money.Amount) (*budget.Goal, error) {
	body := struct {
		CurrentAmount money.Amount `json:"current_amount"`
	}{CurrentAmount: current}

	data, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/budgets/goals/%s/progress/", id), nil, body)
	if err != nil {
		return nil, err
	}

	return decodeOne[budget.Goal](data)
}
