package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"centavo/internal/transaction"
)

func (c *Client) ListIncomes(ctx context.Context, filter transaction.ListFilter) ([]transaction.Transaction, error) {
	data, err := c.do(ctx, http.MethodGet, "/transactions/income/", filter.Query(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[transaction.Transaction](data)
}

func (c *Client) CreateIncome(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	data, err := c.do(ctx, http.MethodPost, "/transactions/income/", nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[transaction.Transaction](data)
}

func (c *Client) UpdateIncome(ctx context.Context, id uuid.UUID, params transaction.CreateParams) (*transaction.Transaction, error) {
	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/transactions/income/%s/", id), nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[transaction.Transaction](data)
}

func (c *Client) DeleteIncome(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/income/%s/", id), nil, nil)

	return err
}

func (c *Client) ListExpenses(ctx context.Context, filter transaction.ListFilter) ([]transaction.Transaction, error) {
	data, err := c.do(ctx, http.MethodGet, "/transactions/expenses/", filter.Query(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[transaction.Transaction](data)
}

func (c *Client) CreateExpense(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	data, err := c.do(ctx, http.MethodPost, "/transactions/expenses/", nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[transaction.Transaction](data)
}

func (c *Client) UpdateExpense(ctx context.Context, id uuid.UUID, params transaction.CreateParams) (*transaction.Transaction, error) {
	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/transactions/expenses/%s/", id), nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[transaction.Transaction](data)
}

func (c *Client) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/expenses/%s/", id), nil, nil)

	return err
}
