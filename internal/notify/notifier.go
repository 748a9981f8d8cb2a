// Package notify delivers alarm and timer notifications. The primary backend
// posts to ntfy.sh, but any HTTP webhook works; a terminal bell backend
// covers the case where no URL is configured.
package notify

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/event"
)

// Notifier is the notification collaborator. RequestPermission is idempotent
// and its answer is cached after the first call. Fire is fire-and-forget;
// when permission was denied the call has no effect.
type Notifier interface {
	RequestPermission() bool
	Fire(title, body string)
}

// permission caches the first grant/deny decision.
type permission struct {
	once    sync.Once
	granted bool
}

func (p *permission) request(ask func() bool) bool {
	p.once.Do(func() { p.granted = ask() })
	return p.granted
}

// Webhook posts plain-text notifications to an HTTP endpoint.
type Webhook struct {
	url    string
	tags   string
	client *http.Client
	perm   permission
}

// NewWebhook creates a Webhook for notifURL. tags is sent as the ntfy
// X-Tags header when non-empty.
func NewWebhook(notifURL, tags string) *Webhook {
	return &Webhook{
		url:    notifURL,
		tags:   tags,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// RequestPermission grants delivery when the URL is a valid http(s) URL.
func (w *Webhook) RequestPermission() bool {
	return w.perm.request(func() bool {
		u, err := url.ParseRequestURI(w.url)
		return err == nil && (u.Scheme == "http" || u.Scheme == "https")
	})
}

// Fire posts asynchronously. Errors are discarded so a failing endpoint
// never blocks the clock.
func (w *Webhook) Fire(title, body string) {
	if !w.RequestPermission() {
		return
	}
	go w.post(title, body)
}

func (w *Webhook) post(title, body string) {
	req, err := http.NewRequest(http.MethodPost, w.url, strings.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Title", title)
	if w.tags != "" {
		req.Header.Set("X-Tags", w.tags)
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}

// Bell rings the terminal bell and prints the notification to a writer.
type Bell struct {
	mu  sync.Mutex
	out io.Writer
}

// NewBell creates a Bell writing to out.
func NewBell(out io.Writer) *Bell {
	return &Bell{out: out}
}

// RequestPermission always grants.
func (b *Bell) RequestPermission() bool { return true }

// Fire writes "\a<title>: <body>".
func (b *Bell) Fire(title, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(b.out, "\a%s: %s\n", title, body)
}

// Multi fans a notification out to several notifiers. Each member keeps its
// own permission; Multi is granted when any member is.
type Multi []Notifier

// RequestPermission asks every member once.
func (m Multi) RequestPermission() bool {
	granted := false
	for _, n := range m {
		if n.RequestPermission() {
			granted = true
		}
	}
	return granted
}

// Fire forwards to every member.
func (m Multi) Fire(title, body string) {
	for _, n := range m {
		n.Fire(title, body)
	}
}

// Hook turns engine entries into notifications for the enabled kinds.
type Hook struct {
	n       Notifier
	onAlarm bool
	onTimer bool
}

// NewHook creates a Hook over n.
func NewHook(n Notifier, onAlarm, onTimer bool) *Hook {
	return &Hook{n: n, onAlarm: onAlarm, onTimer: onTimer}
}

// Handle fires a notification for alarm and timer-expiry entries.
func (h *Hook) Handle(entry event.Entry) {
	switch entry.Kind {
	case event.AlarmFired:
		if h.onAlarm {
			h.n.Fire(entry.Title, entry.Body)
		}
	case event.TimerExpired:
		if h.onTimer {
			title, body := entry.Title, entry.Body
			if title == "" {
				title = "Timer"
			}
			if body == "" {
				body = "Time's up!"
			}
			h.n.Fire(title, body)
		}
	}
}
