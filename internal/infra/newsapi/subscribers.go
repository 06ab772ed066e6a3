package newsapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"newswave/internal/domain/entity"
)

// CreateSubscriber registers a subscriber account and returns it with the
// upstream-assigned id.
func (c *Client) CreateSubscriber(ctx context.Context, name string) (entity.Subscriber, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Subscriber{}, &entity.ValidationError{Field: "name", Message: "name is required"}
	}

	const path = "/Subscribers"
	resp, err := c.call(ctx, "create_subscriber", http.MethodPost, path, nil, createSubscriberRequest{Name: name})
	if err != nil {
		return entity.Subscriber{}, err
	}

	created, err := decodeCreated(http.MethodPost+" "+path, resp)
	if err != nil {
		return entity.Subscriber{}, err
	}

	s := entity.Subscriber{ID: int64(created.ID), Name: name}
	if n := nonBlank(created.Name); n != nil {
		s.Name = *n
	}
	return s, nil
}

// GetSubscriber fetches one subscriber.
func (c *Client) GetSubscriber(ctx context.Context, subscriberID int64) (entity.Subscriber, error) {
	if err := requirePositive("subscriberId", subscriberID); err != nil {
		return entity.Subscriber{}, err
	}

	path := fmt.Sprintf("/Subscribers/%d", subscriberID)
	resp, err := c.call(ctx, "get_subscriber", http.MethodGet, path, nil, nil)
	if err != nil {
		return entity.Subscriber{}, err
	}

	var dto subscriberDTO
	if err := decode(http.MethodGet+" "+path, resp, &dto); err != nil {
		return entity.Subscriber{}, err
	}
	if dto.ID <= 0 {
		dto.ID = subscriberID
	}
	return entity.Subscriber{ID: dto.ID, Name: deref(dto.Name)}, nil
}

// SubscribeToPublisher makes subscriberID follow publisherID.
func (c *Client) SubscribeToPublisher(ctx context.Context, subscriberID, publisherID int64) error {
	return c.subscription(ctx, "subscribe_to_publisher", http.MethodPost, subscriberID, publisherID)
}

// UnsubscribeFromPublisher makes subscriberID stop following publisherID.
func (c *Client) UnsubscribeFromPublisher(ctx context.Context, subscriberID, publisherID int64) error {
	return c.subscription(ctx, "unsubscribe_from_publisher", http.MethodDelete, subscriberID, publisherID)
}

func (c *Client) subscription(ctx context.Context, op, method string, subscriberID, publisherID int64) error {
	if err := requirePositive("subscriberId", subscriberID); err != nil {
		return err
	}
	if err := requirePositive("publisherId", publisherID); err != nil {
		return err
	}

	path := fmt.Sprintf("/Subscribers/%d/subscribe/%d", subscriberID, publisherID)
	_, err := c.call(ctx, op, method, path, nil, nil)
	return err
}

// GetSubscriberFeed returns at most count articles from the publishers
// subscriberID follows. count must be at least 1; callers clamp it.
func (c *Client) GetSubscriberFeed(ctx context.Context, subscriberID int64, count int) ([]entity.Article, error) {
	if err := requirePositive("subscriberId", subscriberID); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, &entity.ValidationError{Field: "count", Message: "count must be at least 1"}
	}

	path := fmt.Sprintf("/Subscribers/%d/feed", subscriberID)
	query := url.Values{"count": []string{strconv.Itoa(count)}}
	resp, err := c.call(ctx, "get_subscriber_feed", http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	if resp.empty() {
		return []entity.Article{}, nil
	}

	var items []NewsItem
	if err := decode(http.MethodGet+" "+path, resp, &items); err != nil {
		return nil, err
	}
	return c.mapNewsItems(ctx, items, count), nil
}
