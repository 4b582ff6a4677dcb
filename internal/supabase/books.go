package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
)

// List returns every row, newest first.
func (c *Client) List(ctx context.Context) ([]catalog.Book, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "createdTime.desc")

	var books []catalog.Book
	if err := c.doJSON(ctx, http.MethodGet, c.url(q), nil, nil, &books); err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.table, err)
	}
	if books == nil {
		books = []catalog.Book{}
	}
	return books, nil
}

// Upsert inserts or replaces one row and returns the stored record.
func (c *Client) Upsert(ctx context.Context, b catalog.Book) (catalog.Book, error) {
	out, err := c.upsert(ctx, []catalog.Book{b})
	if err != nil {
		return catalog.Book{}, fmt.Errorf("upserting %s: %w", b.ID, err)
	}
	if len(out) == 0 {
		return catalog.Book{}, fmt.Errorf("upserting %s: empty response", b.ID)
	}
	return out[0], nil
}

// UpsertMany inserts or replaces all rows in one request.
func (c *Client) UpsertMany(ctx context.Context, books []catalog.Book) ([]catalog.Book, error) {
	if len(books) == 0 {
		return []catalog.Book{}, nil
	}
	out, err := c.upsert(ctx, books)
	if err != nil {
		return nil, fmt.Errorf("upserting %d rows: %w", len(books), err)
	}
	return out, nil
}

func (c *Client) upsert(ctx context.Context, books []catalog.Book) ([]catalog.Book, error) {
	hdr := http.Header{}
	hdr.Set("Prefer", "resolution=merge-duplicates,return=representation")
	q := url.Values{}
	q.Set("on_conflict", "id")

	var out []catalog.Book
	if err := c.doJSON(ctx, http.MethodPost, c.url(q), hdr, books, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the row with the given id. Deleting a missing id is not
// an error; PostgREST reports it as an empty success.
func (c *Client) Delete(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)
	hdr := http.Header{}
	hdr.Set("Prefer", "return=minimal")

	if err := c.doJSON(ctx, http.MethodDelete, c.url(q), hdr, nil, nil); err != nil {
		return fmt.Errorf("deleting %s: %w", id, err)
	}
	return nil
}
