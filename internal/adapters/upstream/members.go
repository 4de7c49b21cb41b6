package upstream

import (
	"context"
	"net/http"

	"fitzone/internal/domain/member"
)

// ListMembers fetches the full members collection. The returned order is the
// backend's; callers must not reorder it.
func (c *Client) ListMembers(ctx context.Context, token string) ([]member.Record, error) {
	var list []member.Record
	if err := c.do(ctx, http.MethodGet, "/members", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateMember registers a new member. The backend assigns the ID.
func (c *Client) CreateMember(ctx context.Context, token string, p member.Payload) (member.Record, error) {
	var created member.Record
	if err := c.do(ctx, http.MethodPost, "/members", token, p, &created); err != nil {
		return member.Record{}, err
	}
	return created, nil
}

// UpdateMember replaces the member with the given id.
func (c *Client) UpdateMember(ctx context.Context, token, id string, p member.Payload) (member.Record, error) {
	var updated member.Record
	if err := c.do(ctx, http.MethodPut, "/members/"+id, token, p, &updated); err != nil {
		return member.Record{}, err
	}
	return updated, nil
}

// DeleteMember removes the member with the given id. DELETE carries no
// response body worth decoding; success is the status code alone.
func (c *Client) DeleteMember(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/members/"+id, token, nil, nil)
}
