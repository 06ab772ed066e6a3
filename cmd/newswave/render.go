package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"newswave/internal/domain/entity"
	"newswave/internal/usecase/publisher"
	"newswave/internal/utils/text"
)

const (
	excerptLength = 160
	timeLayout    = "2006-01-02 15:04"
)

func printArticles(w io.Writer, articles []entity.Article, full bool) {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles yet.")
		return
	}
	for i, a := range articles {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "#%d  %s\n", a.ID, a.Title)
		fmt.Fprintf(w, "    %s\n", byline(a))
		if a.Summary != nil && *a.Summary != "" {
			fmt.Fprintf(w, "    Summary: %s\n", text.PlainText(*a.Summary))
		}
		body := text.Excerpt(a.Content, excerptLength)
		if full {
			body = text.PlainText(a.Content)
		}
		if body != "" {
			fmt.Fprintf(w, "    %s\n", body)
		}
	}
}

func byline(a entity.Article) string {
	author := "unknown publisher"
	switch {
	case a.AuthorName != nil && *a.AuthorName != "":
		author = *a.AuthorName
	case a.AuthorID != nil:
		author = fmt.Sprintf("publisher #%d", *a.AuthorID)
	}
	return fmt.Sprintf("by %s, %s", author, a.PublishDate.Format(timeLayout))
}

// subscribedFunc reports local subscription state; nil when the session is
// not a subscriber.
type subscribedFunc func(publisherID int64) bool

func marker(subscribed subscribedFunc, id int64) string {
	if subscribed != nil && subscribed(id) {
		return "*"
	}
	return ""
}

func printPublishers(w io.Writer, publishers []entity.Publisher, subscribed subscribedFunc) {
	if len(publishers) == 0 {
		fmt.Fprintln(w, "No publishers yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSUBSCRIBED\tDESCRIPTION")
	for _, p := range publishers {
		desc := ""
		if p.Description != nil {
			desc = text.Truncate(*p.Description, 60, "...")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Name, marker(subscribed, p.ID), desc)
	}
	_ = tw.Flush()
}

func printDirectory(w io.Writer, entries []publisher.DirectoryEntry, subscribed subscribedFunc) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No publishers yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSUBSCRIBED\tARTICLES\tLATEST")
	for _, e := range entries {
		count, latest := strconv.Itoa(e.ArticleCount), "-"
		switch {
		case e.Err != nil:
			count, latest = "?", "(unavailable)"
		case e.Latest != nil:
			latest = text.Truncate(e.Latest.Title, 50, "...")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			e.Publisher.ID, e.Publisher.Name, marker(subscribed, e.Publisher.ID), count, latest)
	}
	_ = tw.Flush()
}

func printSession(w io.Writer, s entity.Session) {
	if s.IsZero() {
		fmt.Fprintln(w, "Not logged in.")
		return
	}
	fmt.Fprintf(w, "%s (%s #%d)\n", s.UserName, s.Role, s.UserID)
}
