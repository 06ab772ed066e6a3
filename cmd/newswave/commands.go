package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"newswave/internal/domain/entity"
	"newswave/internal/infra/newsapi"
	"newswave/internal/observability/logging"
	"newswave/internal/usecase/article"
)

type publisherArg struct {
	ID int64 `positional-arg-name:"publisher-id" required:"yes"`
}

type loginCmd struct {
	cli  *cli
	Role string `short:"r" long:"role" required:"true" choice:"publisher" choice:"subscriber" description:"account role"`
	Name string `short:"n" long:"name" required:"true" description:"display name"`
}

func (cmd *loginCmd) Execute([]string) error {
	a, err := cmd.cli.application()
	if err != nil {
		return err
	}
	role, err := entity.ParseRole(cmd.Role)
	if err != nil {
		return failed("login", err)
	}
	session, err := a.auth.Login(cmd.cli.ctx, role, cmd.Name)
	if err != nil {
		return failed("login", err)
	}
	fmt.Fprint(cmd.cli.out, "Logged in as ")
	printSession(cmd.cli.out, session)
	return nil
}

type logoutCmd struct {
	cli *cli
}

func (cmd *logoutCmd) Execute([]string) error {
	a, err := cmd.cli.application()
	if err != nil {
		return err
	}
	a.auth.Logout(cmd.cli.ctx)
	a.subs.Reset()
	fmt.Fprintln(cmd.cli.out, "Logged out.")
	return nil
}

type whoamiCmd struct {
	cli *cli
}

func (cmd *whoamiCmd) Execute([]string) error {
	a, err := cmd.cli.application()
	if err != nil {
		return err
	}
	printSession(cmd.cli.out, a.auth.Session())
	return nil
}

type publishersCmd struct {
	cli    *cli
	Browse bool `short:"b" long:"browse" description:"include article counts and latest titles"`
}

func (cmd *publishersCmd) Execute([]string) error {
	a, err := cmd.cli.application()
	if err != nil {
		return err
	}
	if cmd.Browse {
		entries, err := a.directory.Browse(cmd.cli.ctx)
		if err != nil {
			return failed("load publishers", err)
		}
		printDirectory(cmd.cli.out, entries, a.subscribedFunc())
		return nil
	}
	publishers, err := a.directory.List(cmd.cli.ctx)
	if err != nil {
		return failed("load publishers", err)
	}
	printPublishers(cmd.cli.out, publishers, a.subscribedFunc())
	return nil
}

func (a *app) subscribedFunc() subscribedFunc {
	if !a.auth.Session().Is(entity.RoleSubscriber) {
		return nil
	}
	return a.subs.IsSubscribed
}

type publisherCmd struct {
	cli  *cli
	Args publisherArg `positional-args:"yes"`
}

func (cmd *publisherCmd) Execute([]string) error {
	a, err := cmd.cli.application()
	if err != nil {
		return err
	}
	details, err := a.directory.Details(cmd.cli.ctx, cmd.Args.ID)
	if newsapi.IsNotFound(err) {
		return failed("load publisher", fmt.Errorf("no publisher with id %d", cmd.Args.ID))
	}
	if err != nil {
		return failed("load publisher", err)
	}
	fmt.Fprintf(cmd.cli.out, "%s (#%d)%s\n\n", details.Name, details.ID, subscribedNote(a, details.ID))
	printArticles(cmd.cli.out, details.Articles, true)
	return nil
}

func subscribedNote(a *app, id int64) string {
	if f := a.subscribedFunc(); f != nil && f(id) {
		return " - subscribed"
	}
	return ""
}

type subscribeCmd struct {
	cli  *cli
	Args publisherArg `positional-args:"yes"`
}

func (cmd *subscribeCmd) Execute([]string) error {
	a, err := cmd.cli.application()
	if err != nil {
		return err
	}
	if err := a.subs.Subscribe(cmd.cli.ctx, cmd.Args.ID); err != nil {
		return failed("subscribe", err)
	}
	fmt.Fprintf(cmd.cli.out, "Subscribed to publisher #%d.\n", cmd.Args.ID)
	return nil
}

type unsubscribeCmd struct {
	cli  *cli
	Args publisherArg `positional-args:"yes"`
}

func (cmd *unsubscribeCmd) Execute([]string) error {
	a, err := cmd.cli.application()
	if err != nil {
		return err
	}
	if err := a.subs.Unsubscribe(cmd.cli.ctx, cmd.Args.ID); err != nil {
		return failed("unsubscribe", err)
	}
	fmt.Fprintf(cmd.cli.out, "Unsubscribed from publisher #%d.\n", cmd.Args.ID)
	return nil
}

type subscriptionsCmd struct {
	cli *cli
}

func (cmd *subscriptionsCmd) Execute([]string) error {
	a, err := cmd.cli.application()
	if err != nil {
		return err
	}
	if !a.auth.Session().Is(entity.RoleSubscriber) {
		return failed("list subscriptions", article.ErrSubscriberRequired)
	}
	ids := a.subs.IDs()
	if len(ids) == 0 {
		fmt.Fprintln(cmd.cli.out, "No subscriptions recorded in this session.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintf(cmd.cli.out, "#%d\n", id)
	}
	return nil
}

type feedCmd struct {
	cli   *cli
	Count int    `short:"n" long:"count" description:"number of articles (default from config)"`
	Watch string `long:"watch" value-name:"SCHEDULE" description:"refresh on a cron schedule, e.g. \"@every 1m\""`
}

func (cmd *feedCmd) Execute([]string) error {
	a, err := cmd.cli.application()
	if err != nil {
		return err
	}

	if cmd.Watch == "" {
		return cmd.show(a)
	}

	if _, err := cron.ParseStandard(cmd.Watch); err != nil {
		return fmt.Errorf("invalid --watch schedule %q: %w", cmd.Watch, err)
	}
	if err := cmd.show(a); err != nil {
		fmt.Fprintln(cmd.cli.errOut, err)
	}

	sched := cron.New()
	if _, err := sched.AddFunc(cmd.Watch, func() {
		fmt.Fprintf(cmd.cli.out, "\n--- %s ---\n", time.Now().Format(timeLayout))
		if err := cmd.show(a); err != nil {
			fmt.Fprintln(cmd.cli.errOut, err)
		}
	}); err != nil {
		return fmt.Errorf("invalid --watch schedule %q: %w", cmd.Watch, err)
	}
	sched.Start()
	logging.FromContext(cmd.cli.ctx).Debug("watching feed", slog.String("schedule", cmd.Watch))

	<-cmd.cli.ctx.Done()
	<-sched.Stop().Done()
	return nil
}

func (cmd *feedCmd) show(a *app) error {
	articles, err := a.articles.Feed(cmd.cli.ctx, cmd.Count)
	if err != nil {
		return failed("load feed", err)
	}
	printArticles(cmd.cli.out, articles, false)
	return nil
}

type articlesCmd struct {
	cli *cli
}

func (cmd *articlesCmd) Execute([]string) error {
	a, err := cmd.cli.application()
	if err != nil {
		return err
	}
	details, err := a.articles.Dashboard(cmd.cli.ctx)
	if err != nil {
		return failed("load articles", err)
	}
	fmt.Fprintf(cmd.cli.out, "Articles by %s (%d)\n\n", details.Name, len(details.Articles))
	printArticles(cmd.cli.out, details.Articles, false)
	return nil
}

type publishCmd struct {
	cli       *cli
	Title     string `short:"t" long:"title" required:"true" description:"article title (5-150 characters)"`
	Content   string `long:"content" required:"true" description:"article body (50-10000 characters)"`
	ImageURL  string `long:"image-url" description:"https image URL"`
	Summary   string `long:"summary" description:"short summary"`
	Summarize bool   `long:"summarize" description:"generate the summary when --summary is empty"`
}

func (cmd *publishCmd) Execute([]string) error {
	a, err := cmd.cli.application()
	if err != nil {
		return err
	}
	if !a.auth.Session().Is(entity.RolePublisher) {
		return failed("publish", article.ErrPublisherRequired)
	}

	draft := entity.ArticleDraft{
		Title:    cmd.Title,
		Content:  cmd.Content,
		Summary:  cmd.Summary,
		ImageURL: strings.TrimSpace(cmd.ImageURL),
	}
	if cmd.Summarize && strings.TrimSpace(draft.Summary) == "" {
		summary, err := a.articles.Summarize(cmd.cli.ctx, draft.Content)
		if err != nil {
			return failed("summarize", err)
		}
		draft.Summary = summary
		fmt.Fprintf(cmd.cli.out, "Summary: %s\n", summary)
	}

	if err := a.articles.Publish(cmd.cli.ctx, draft); err != nil {
		return failed("publish", err)
	}
	fmt.Fprintln(cmd.cli.out, "Article published.")
	return nil
}

type summarizeCmd struct {
	cli     *cli
	Content string `long:"content" required:"true" description:"text to summarize (at least 50 characters)"`
}

func (cmd *summarizeCmd) Execute([]string) error {
	a, err := cmd.cli.application()
	if err != nil {
		return err
	}
	summary, err := a.articles.Summarize(cmd.cli.ctx, cmd.Content)
	if err != nil {
		return failed("summarize", err)
	}
	fmt.Fprintln(cmd.cli.out, summary)
	return nil
}
