package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/jsonapi"
	"github.com/iambharathh/chatbot/models"
)

func New(baseURL string) Client {
	return Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

type Client struct {
	baseURL string
}

// Error is returned when the server responds with a non-2xx status.
type Error struct {
	StatusCode int
	Detail     string
}

func (e Error) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Detail)
}

func (c Client) ChatPost(ctx context.Context, req models.ChatPostRequest) (resp models.ChatPostResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("chat").String()
	if err != nil {
		return resp, err
	}
	resp, err = jsonapi.Post[models.ChatPostRequest, models.ChatPostResponse](ctx, url, req)
	return resp, withDetail(err)
}

func (c Client) TestGet(ctx context.Context) (resp models.TestGetResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("test").String()
	if err != nil {
		return resp, err
	}
	resp, ok, err := jsonapi.Get[models.TestGetResponse](ctx, url)
	if err != nil {
		return resp, withDetail(err)
	}
	if !ok {
		return resp, jsonapi.InvalidStatusError{Status: http.StatusNotFound}
	}
	return resp, nil
}

// withDetail replaces a status error with an Error when the server explained
// the failure in its response body.
func withDetail(err error) error {
	var ise jsonapi.InvalidStatusError
	if !errors.As(err, &ise) {
		return err
	}
	var er models.ErrorResponse
	if json.Unmarshal([]byte(ise.Body), &er) != nil || er.Detail == "" {
		return err
	}
	return Error{
		StatusCode: ise.Status,
		Detail:     er.Detail,
	}
}
