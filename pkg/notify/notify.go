// Package notify reports new posts with a desktop alert, console lines and an append-only log file
package notify

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/postwatch/pkg/domain"
)

//go:generate moq -out mocks/alerter.go -pkg mocks -skip-ensure -fmt goimports . Alerter

const separator = "================================================================================" // 80 chars

// Alerter shows a desktop notification
type Alerter interface {
	Alert(title, message string) error
}

// Desktop is an Alerter using the OS notification service
type Desktop struct {
	AppIcon string
}

// Alert shows the notification
func (d Desktop) Alert(title, message string) error {
	return beeep.Notify(title, message, d.AppIcon)
}

// NotificationError is reported when the alert could not be shown
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string { return fmt.Sprintf("desktop notification failed: %v", e.Err) }

// Unwrap returns the underlying error
func (e *NotificationError) Unwrap() error { return e.Err }

// Notifier reports new posts. Nothing it does fails the caller.
type Notifier struct {
	alerter Alerter
	logPath string
	now     func() time.Time
}

// New makes a notifier. Nil alerter disables desktop alerts, empty logPath disables the log file.
func New(alerter Alerter, logPath string) *Notifier {
	return &Notifier{alerter: alerter, logPath: logPath, now: time.Now}
}

// Notify raises the alert, prints posts and appends them to the log file.
// The log is written even if the alert failed.
func (n *Notifier) Notify(posts []domain.Post) {
	if len(posts) == 0 {
		return
	}
	lgr.Printf("[INFO] %d new post(s) found", len(posts))

	if n.alerter != nil {
		title, msg := Summary(posts)
		if err := n.alerter.Alert(title, msg); err != nil {
			lgr.Printf("[WARN] %v", &NotificationError{Err: err})
		} else {
			lgr.Printf("[DEBUG] desktop notification sent")
		}
	}

	for _, p := range posts {
		printPost(p)
	}

	if err := n.appendLog(posts); err != nil {
		lgr.Printf("[WARN] can't write new posts log: %v", err)
	}
}

// Summary makes alert title and message. A single post is described briefly,
// several posts are only counted.
func Summary(posts []domain.Post) (title, message string) {
	if len(posts) != 1 {
		return "New Posts!", fmt.Sprintf("%d new posts found. Check the log for details.", len(posts))
	}
	p := posts[0]
	message = p.Title
	if r := []rune(p.Title); len(r) > 60 {
		message = string(r[:60]) + "..."
	}
	if p.Author != "" {
		message += "\nBy: " + p.Author
	}
	if p.PostedTime != "" {
		message += " • " + p.PostedTime
	}
	return "New Post!", message
}

// appendLog opens the log file, appends all posts and closes it
func (n *Notifier) appendLog(posts []domain.Post) error {
	if n.logPath == "" {
		return nil
	}
	var buf bytes.Buffer
	ts := n.now()
	for _, p := range posts {
		WriteEntry(&buf, p, ts)
	}

	fh, err := os.OpenFile(n.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open %s: %w", n.logPath, err)
	}
	if _, err = fh.Write(buf.Bytes()); err != nil {
		_ = fh.Close()
		return fmt.Errorf("write %s: %w", n.logPath, err)
	}
	if err = fh.Close(); err != nil {
		return fmt.Errorf("close %s: %w", n.logPath, err)
	}
	return nil
}

// WriteEntry writes a human-readable log block for the post
func WriteEntry(w io.Writer, p domain.Post, ts time.Time) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\nNEW POST FOUND: %s\n%s\n", separator, ts.Format("2006-01-02 15:04:05"), separator)
	fmt.Fprintf(&sb, "Title: %s\n", p.Title)
	if p.Author != "" {
		fmt.Fprintf(&sb, "Author: %s\n", p.Author)
	}
	if p.PostedTime != "" {
		fmt.Fprintf(&sb, "Posted: %s\n", p.PostedTime)
	}
	if p.Details != "" {
		fmt.Fprintf(&sb, "\nDetails:\n%s\n", p.Details)
	}
	if len(p.Links) > 0 {
		fmt.Fprintf(&sb, "\nLinks found (%d):\n", len(p.Links))
		for i, l := range p.Links {
			fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, l.Text, l.URL)
		}
	}
	if p.MainLink != "" {
		fmt.Fprintf(&sb, "\nMain Link: %s\n", p.MainLink)
	}
	fmt.Fprintf(&sb, "Found at: %s\n%s\n\n", p.DiscoveredAt.Format(time.RFC3339), separator)
	_, _ = io.WriteString(w, sb.String())
}

// printPost shows the post in the console log
func printPost(p domain.Post) {
	lgr.Printf("[INFO] new post: %s", p.Title)
	if p.Author != "" || p.PostedTime != "" {
		lgr.Printf("[INFO]   by %q, posted %q", p.Author, p.PostedTime)
	}
	if p.Details != "" {
		details := p.Details
		if r := []rune(details); len(r) > 200 {
			details = string(r[:200]) + "..."
		}
		lgr.Printf("[INFO]   details: %s", details)
	}
	for i, l := range p.Links {
		if i == 3 {
			lgr.Printf("[INFO]   ... and %d more links", len(p.Links)-3)
			break
		}
		lgr.Printf("[INFO]   link %d. %s: %s", i+1, l.Text, l.URL)
	}
	if p.MainLink != "" {
		lgr.Printf("[INFO]   main link: %s", p.MainLink)
	}
}
