package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Login exchanges credentials for a token and stores it in the session.
func (c *Client) Login(ctx context.Context, username string, password string) (LoginResult, error) {
	var result LoginResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &result); err != nil {
		return LoginResult{}, err
	}

	if err := c.session.Save(result.Token); err != nil {
		return LoginResult{}, err
	}

	return result, nil
}

// Logout drops the stored credential.
func (c *Client) Logout() error {
	return c.session.Clear()
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &user)
	return user, err
}

func (c *Client) Schools(ctx context.Context) ([]School, error) {
	var schools []School
	err := c.do(ctx, http.MethodGet, "/api/v1/schools", nil, &schools)
	return schools, err
}

func (c *Client) School(ctx context.Context, id int64) (School, error) {
	var school School
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/schools/%d", id), nil, &school)
	return school, err
}

func (c *Client) CreateSchool(ctx context.Context, req SchoolRequest) (School, error) {
	var school School
	err := c.do(ctx, http.MethodPost, "/api/v1/schools", req, &school)
	return school, err
}

func (c *Client) UpdateSchool(ctx context.Context, id int64, req SchoolRequest) (School, error) {
	var school School
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/schools/%d", id), req, &school)
	return school, err
}

func (c *Client) DeleteSchool(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/schools/%d", id), nil, nil)
}

func (c *Client) Teachers(ctx context.Context) ([]Teacher, error) {
	var teachers []Teacher
	err := c.do(ctx, http.MethodGet, "/api/v1/teachers", nil, &teachers)
	return teachers, err
}

func (c *Client) Teacher(ctx context.Context, id int64) (Teacher, error) {
	var teacher Teacher
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/teachers/%d", id), nil, &teacher)
	return teacher, err
}

func (c *Client) Transfers(ctx context.Context) ([]Transfer, error) {
	var transfers []Transfer
	err := c.do(ctx, http.MethodGet, "/api/v1/transfers", nil, &transfers)
	return transfers, err
}

func (c *Client) Transfer(ctx context.Context, id int64) (Transfer, error) {
	var transfer Transfer
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/transfers/%d", id), nil, &transfer)
	return transfer, err
}

func (c *Client) CreateTransfer(ctx context.Context, req CreateTransferRequest) (Transfer, error) {
	var transfer Transfer
	err := c.do(ctx, http.MethodPost, "/api/v1/transfers", req, &transfer)
	return transfer, err
}

// UpdateTransferStatus submits one workflow decision. While a submission is
// running, further calls on the same client return ErrSubmitInFlight instead
// of firing a second request.
func (c *Client) UpdateTransferStatus(ctx context.Context, id int64, req UpdateTransferStatusRequest) (Transfer, error) {
	if !c.statusSubmitInFlight.CompareAndSwap(false, true) {
		return Transfer{}, ErrSubmitInFlight
	}
	defer c.statusSubmitInFlight.Store(false)

	var transfer Transfer
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/transfers/%d/status", id), req, &transfer)
	return transfer, err
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := c.do(ctx, http.MethodGet, "/api/v1/stats", nil, &stats)
	return stats, err
}

func (c *Client) Notifications(ctx context.Context, limit int) ([]Notification, error) {
	path := "/api/v1/notifications"
	if limit > 0 {
		path += "?" + url.Values{"limit": []string{fmt.Sprint(limit)}}.Encode()
	}

	var notifications []Notification
	err := c.do(ctx, http.MethodGet, path, nil, &notifications)
	return notifications, err
}
