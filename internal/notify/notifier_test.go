package notify

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/event"
)

// captureServer starts an httptest.Server that records incoming requests.
// It returns the server and a function to collect all captured requests.
func captureServer(t *testing.T) (*httptest.Server, func() []capturedReq) {
	t.Helper()
	var mu sync.Mutex
	var reqs []capturedReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, capturedReq{
			method:      r.Method,
			body:        string(body),
			contentType: r.Header.Get("Content-Type"),
			title:       r.Header.Get("X-Title"),
			tags:        r.Header.Get("X-Tags"),
		})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []capturedReq {
		mu.Lock()
		defer mu.Unlock()
		out := make([]capturedReq, len(reqs))
		copy(out, reqs)
		return out
	}
}

type capturedReq struct {
	method      string
	body        string
	contentType string
	title       string
	tags        string
}

// waitForRequests polls until count requests are captured or the deadline is reached.
func waitForRequests(t *testing.T, collect func() []capturedReq, count int) []capturedReq {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := collect(); len(got) >= count {
			return got
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d request(s)", count)
	return nil
}

func TestWebhook_Fire(t *testing.T) {
	srv, collect := captureServer(t)

	w := NewWebhook(srv.URL, "alarm_clock")
	w.Fire("Weekend Alarm", "Good morning")

	reqs := waitForRequests(t, collect, 1)
	r := reqs[0]
	if r.method != http.MethodPost {
		t.Errorf("method = %q, want POST", r.method)
	}
	if r.body != "Good morning" {
		t.Errorf("body = %q, want %q", r.body, "Good morning")
	}
	if r.contentType != "text/plain" {
		t.Errorf("Content-Type = %q, want text/plain", r.contentType)
	}
	if r.title != "Weekend Alarm" {
		t.Errorf("X-Title = %q, want Weekend Alarm", r.title)
	}
	if r.tags != "alarm_clock" {
		t.Errorf("X-Tags = %q, want alarm_clock", r.tags)
	}
}

func TestWebhook_PermissionDeniedDropsFire(t *testing.T) {
	for _, u := range []string{"", "not a url", "ftp://example.com/topic"} {
		w := NewWebhook(u, "")
		if w.RequestPermission() {
			t.Errorf("RequestPermission(%q) = true, want false", u)
		}
		// Must not panic or block.
		w.Fire("Alarm", "ignored")
	}
}

func TestWebhook_PermissionCached(t *testing.T) {
	w := NewWebhook("https://ntfy.sh/topic", "")
	if !w.RequestPermission() {
		t.Fatal("expected permission for https URL")
	}
	// Changing the URL after the first decision does not re-ask.
	w.url = ""
	if !w.RequestPermission() {
		t.Error("permission should be cached after the first grant")
	}
}

func TestWebhook_PostFailureSilent(t *testing.T) {
	// Point at a server that is already closed → connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	w := NewWebhook(srv.URL, "")
	w.Fire("Alarm", "Time to get up!")

	// Allow the goroutine to finish.
	time.Sleep(100 * time.Millisecond)
}

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf)
	if !b.RequestPermission() {
		t.Fatal("bell should always be permitted")
	}
	b.Fire("Timer", "Time's up!")
	if got := buf.String(); got != "\aTimer: Time's up!\n" {
		t.Errorf("output = %q", got)
	}
}

type recorder struct {
	granted bool
	asked   int
	fired   []string
}

func (r *recorder) RequestPermission() bool {
	r.asked++
	return r.granted
}

func (r *recorder) Fire(title, body string) {
	r.fired = append(r.fired, title+"|"+body)
}

func TestMulti(t *testing.T) {
	a := &recorder{granted: false}
	b := &recorder{granted: true}
	m := Multi{a, b}

	if !m.RequestPermission() {
		t.Error("Multi should be granted when any member is")
	}
	if a.asked != 1 || b.asked != 1 {
		t.Errorf("asked = %d/%d, want 1/1", a.asked, b.asked)
	}
	m.Fire("Alarm", "Wake")
	if len(a.fired) != 1 || len(b.fired) != 1 {
		t.Errorf("fired = %v / %v", a.fired, b.fired)
	}
}

func TestHook(t *testing.T) {
	tests := []struct {
		name    string
		onAlarm bool
		onTimer bool
		entry   event.Entry
		want    []string
	}{
		{
			name:    "alarm enabled",
			onAlarm: true,
			entry:   event.Entry{Kind: event.AlarmFired, Title: "Weekday Alarm", Body: "Up"},
			want:    []string{"Weekday Alarm|Up"},
		},
		{
			name:  "alarm disabled",
			entry: event.Entry{Kind: event.AlarmFired, Title: "Alarm", Body: "Up"},
		},
		{
			name:    "timer default content",
			onTimer: true,
			entry:   event.Entry{Kind: event.TimerExpired},
			want:    []string{"Timer|Time's up!"},
		},
		{
			name:    "timer disabled",
			onAlarm: true,
			entry:   event.Entry{Kind: event.TimerExpired},
		},
		{
			name:    "other kinds ignored",
			onAlarm: true,
			onTimer: true,
			entry:   event.Entry{Kind: event.StopwatchLap, Message: "noise"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{granted: true}
			NewHook(r, tt.onAlarm, tt.onTimer).Handle(tt.entry)
			if strings.Join(r.fired, ",") != strings.Join(tt.want, ",") {
				t.Errorf("fired = %v, want %v", r.fired, tt.want)
			}
		})
	}
}
