package backend

import (
	"context"
	"net/url"

	"masjid-admin/internal/models"
)

func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.Get(ctx, "dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) PrayerTimes(ctx context.Context) (*models.PrayerTimes, error) {
	var times models.PrayerTimes
	if err := c.Get(ctx, "prayer-times", &times); err != nil {
		return nil, err
	}
	return &times, nil
}

// ActiveImam returns nil without error when no imam is active.
func (c *Client) ActiveImam(ctx context.Context) (*models.Imam, error) {
	var imam *models.Imam
	if err := c.Get(ctx, "imam", &imam); err != nil {
		return nil, err
	}
	return imam, nil
}

func (c *Client) Announcements(ctx context.Context) ([]models.Announcement, error) {
	announcements := []models.Announcement{}
	if err := c.Get(ctx, "announcements", &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

func (c *Client) ListMembers(ctx context.Context) ([]models.Member, error) {
	members := []models.Member{}
	if err := c.Get(ctx, "members", &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) GetMember(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	if err := c.Get(ctx, "members/"+url.PathEscape(id), &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *Client) CreateMember(ctx context.Context, req models.CreateMemberRequest) (*models.Member, error) {
	var member models.Member
	if err := c.Post(ctx, "members", req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *Client) ListPayments(ctx context.Context) ([]models.Payment, error) {
	payments := []models.Payment{}
	if err := c.Get(ctx, "payments", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (c *Client) ListMemberPayments(ctx context.Context, memberID string) ([]models.Payment, error) {
	payments := []models.Payment{}
	if err := c.Get(ctx, "payments/member/"+url.PathEscape(memberID), &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (c *Client) CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (*models.Payment, error) {
	var payment models.Payment
	if err := c.Post(ctx, "payments", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// Ping hits the API root, used by readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.Get(ctx, "", nil)
}
