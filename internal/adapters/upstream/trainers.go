package upstream

import (
	"context"
	"net/http"

	"fitzone/internal/domain/trainer"
)

// ListTrainers fetches the full trainers collection in backend order.
func (c *Client) ListTrainers(ctx context.Context, token string) ([]trainer.Record, error) {
	var list []trainer.Record
	if err := c.do(ctx, http.MethodGet, "/trainers", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateTrainer registers a new trainer. The backend assigns the ID.
func (c *Client) CreateTrainer(ctx context.Context, token string, p trainer.Payload) (trainer.Record, error) {
	var created trainer.Record
	if err := c.do(ctx, http.MethodPost, "/trainers", token, p, &created); err != nil {
		return trainer.Record{}, err
	}
	return created, nil
}

// UpdateTrainer replaces the trainer with the given id.
func (c *Client) UpdateTrainer(ctx context.Context, token, id string, p trainer.Payload) (trainer.Record, error) {
	var updated trainer.Record
	if err := c.do(ctx, http.MethodPut, "/trainers/"+id, token, p, &updated); err != nil {
		return trainer.Record{}, err
	}
	return updated, nil
}

// DeleteTrainer removes the trainer with the given id.
func (c *Client) DeleteTrainer(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/trainers/"+id, token, nil, nil)
}
