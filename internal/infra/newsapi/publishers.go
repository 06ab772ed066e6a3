package newsapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"newswave/internal/domain/entity"
)

// CreatePublisher registers a publisher account and returns it with the
// upstream-assigned id. Name and description fall back to the request values
// when the upstream answers with the bare id.
func (c *Client) CreatePublisher(ctx context.Context, name, description string) (entity.Publisher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Publisher{}, &entity.ValidationError{Field: "name", Message: "name is required"}
	}

	const path = "/Publishers"
	resp, err := c.call(ctx, "create_publisher", http.MethodPost, path, nil,
		createPublisherRequest{Name: name, Description: description})
	if err != nil {
		return entity.Publisher{}, err
	}

	created, err := decodeCreated(http.MethodPost+" "+path, resp)
	if err != nil {
		return entity.Publisher{}, err
	}

	p := entity.Publisher{
		ID:          int64(created.ID),
		Name:        name,
		Description: nonBlank(&description),
	}
	if n := nonBlank(created.Name); n != nil {
		p.Name = *n
	}
	if d := nonBlank(created.Description); d != nil {
		p.Description = d
	}
	return p, nil
}

// GetAllPublishers lists every publisher.
func (c *Client) GetAllPublishers(ctx context.Context) ([]entity.Publisher, error) {
	const path = "/Publishers"
	resp, err := c.call(ctx, "get_all_publishers", http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.empty() {
		return []entity.Publisher{}, nil
	}

	var dtos []publisherDTO
	if err := decode(http.MethodGet+" "+path, resp, &dtos); err != nil {
		return nil, err
	}

	publishers := make([]entity.Publisher, 0, len(dtos))
	for _, d := range dtos {
		if d.ID <= 0 {
			c.logger.WarnContext(ctx, "dropping publisher without identifier", slog.String("name", deref(d.Name)))
			continue
		}
		publishers = append(publishers, d.toEntity())
	}
	return publishers, nil
}

// GetPublisherDetails returns a publisher with its articles. A null news feed
// or an empty reply is an empty article list. Articles that lack publisher identity are
// attributed to this publisher.
func (c *Client) GetPublisherDetails(ctx context.Context, publisherID int64) (entity.PublisherDetails, error) {
	if err := requirePositive("publisherId", publisherID); err != nil {
		return entity.PublisherDetails{}, err
	}

	path := fmt.Sprintf("/Publishers/%d", publisherID)
	resp, err := c.call(ctx, "get_publisher_details", http.MethodGet, path, nil, nil)
	if err != nil {
		return entity.PublisherDetails{}, err
	}
	if resp.empty() {
		return entity.PublisherDetails{ID: publisherID, Articles: []entity.Article{}}, nil
	}

	var dto publisherDetailsDTO
	if err := decode(http.MethodGet+" "+path, resp, &dto); err != nil {
		return entity.PublisherDetails{}, err
	}

	details := entity.PublisherDetails{
		ID:       dto.ID,
		Name:     deref(dto.Name),
		Articles: c.mapNewsItems(ctx, dto.NewsFeed, 0),
	}
	if details.ID <= 0 {
		details.ID = publisherID
	}

	for i := range details.Articles {
		a := &details.Articles[i]
		if a.AuthorID == nil {
			id := details.ID
			a.AuthorID = &id
		}
		if a.AuthorName == nil && details.Name != "" {
			name := details.Name
			a.AuthorName = &name
		}
	}
	return details, nil
}

// PublishArticle posts a new article. The upstream returns no article id.
func (c *Client) PublishArticle(ctx context.Context, publisherID int64, title, body string) error {
	if err := requirePositive("publisherId", publisherID); err != nil {
		return err
	}

	path := fmt.Sprintf("/Publishers/%d/publish", publisherID)
	_, err := c.call(ctx, "publish_article", http.MethodPost, path, nil, publishRequest{Title: title, Body: body})
	return err
}
