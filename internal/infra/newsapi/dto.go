package newsapi

import (
	"fmt"
	"strconv"
	"strings"

	"newswave/internal/domain/entity"
)

// NewsItem is the upstream article representation. The plain feed variant
// omits the publisher fields; the enriched variant carries them.
type NewsItem struct {
	ID            int64   `json:"id"`
	Title         *string `json:"title"`
	Body          *string `json:"body"`
	Summary       *string `json:"summary,omitempty"`
	PublishedAt   *string `json:"publishedAt,omitempty"`
	PublisherID   *int64  `json:"publisherId,omitempty"`
	PublisherName *string `json:"publisherName,omitempty"`
	ImageURL      *string `json:"imageUrl,omitempty"`
}

type createPublisherRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type createSubscriberRequest struct {
	Name string `json:"name"`
}

type publishRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type publisherDTO struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	AvatarURL   *string `json:"avatarUrl"`
}

type publisherDetailsDTO struct {
	ID       int64      `json:"id"`
	Name     *string    `json:"name"`
	NewsFeed []NewsItem `json:"newsFeed"`
}

type subscriberDTO struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

// createdDTO is the normalized reply of a create call. The upstream answers
// either with the bare identifier or with the created object.
type createdDTO struct {
	ID          flexibleID `json:"id"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
}

// flexibleID accepts a JSON number or a numeric string.
type flexibleID int64

func (id *flexibleID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid identifier %q", s)
	}
	*id = flexibleID(n)
	return nil
}

func decodeCreated(requestLine string, resp response) (createdDTO, error) {
	if resp.empty() {
		return createdDTO{}, &Error{Op: requestLine, StatusCode: resp.status, Message: MsgNoIdentifier}
	}

	var out createdDTO
	if raw := resp.text(); strings.HasPrefix(raw, "{") {
		if err := decode(requestLine, resp, &out); err != nil {
			return createdDTO{}, err
		}
	} else if err := out.ID.UnmarshalJSON([]byte(raw)); err != nil {
		return createdDTO{}, &Error{
			Op:         requestLine,
			StatusCode: resp.status,
			Message:    MsgMalformed,
			Details:    truncateForLog(raw),
			Err:        err,
		}
	}

	if out.ID <= 0 {
		return createdDTO{}, &Error{Op: requestLine, StatusCode: resp.status, Message: MsgNoIdentifier}
	}
	return out, nil
}

func (d publisherDTO) toEntity() entity.Publisher {
	return entity.Publisher{
		ID:          d.ID,
		Name:        deref(d.Name),
		Description: nonBlank(d.Description),
		AvatarURL:   nonBlank(d.AvatarURL),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonBlank maps null, absent and whitespace-only strings to nil.
func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

func requirePositive(field string, id int64) error {
	if id <= 0 {
		return &entity.ValidationError{Field: field, Message: field + " must be a positive number"}
	}
	return nil
}
