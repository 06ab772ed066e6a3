package entity

// Publisher is an account that posts articles. It is created by the remote
// service and read-only to this application.
type Publisher struct {
	ID          int64
	Name        string
	Description *string // nil when the remote did not set one
	AvatarURL   *string // nil when the remote did not set one
}

// Subscriber is an account that follows publishers.
type Subscriber struct {
	ID   int64
	Name string
}

// PublisherDetails is the normalized publisher-detail view: identity plus the
// articles the publisher has posted.
type PublisherDetails struct {
	ID       int64
	Name     string
	Articles []Article
}
