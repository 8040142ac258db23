package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"notes-app/internal/controller"
	"notes-app/internal/dto"
	"notes-app/pkg/events"
	pktNats "notes-app/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "smoke",
	Short:        "Runs the notes lifecycle against a live server.",
	Long:         `Creates, lists, updates and deletes a note against a running notes-app and fails on the first unexpected response.`,
	SilenceUsage: true,
	RunE:         runSmoke,
}

func init() {
	defaultBase := os.Getenv("SMOKE_BASE_URL")
	if defaultBase == "" {
		defaultBase = "http://localhost:3000"
	}

	rootCmd.Flags().String("base-url", defaultBase, "Base URL of the running service.")
	rootCmd.Flags().String("nats-url", os.Getenv("NATS_URL"), "Also verify change events on NATS when set.")
	rootCmd.Flags().Duration("timeout", 10*time.Second, "Per-request and event wait timeout.")
}

type eventLog struct {
	mu    sync.Mutex
	types []string
}

func (l *eventLog) add(t string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.types = append(l.types, t)
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.types...)
}

func runSmoke(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	baseURL, _ := flags.GetString("base-url")
	natsURL, _ := flags.GetString("nats-url")
	timeout, _ := flags.GetDuration("timeout")

	client := newAPIClient(baseURL, timeout)
	color.Cyan("Starting notes-app smoke run against %s\n", baseURL)

	seen := &eventLog{}
	if natsURL != "" {
		sub, err := pktNats.NewSubscriber(natsURL)
		if err != nil {
			return fail("connect to NATS", err)
		}
		defer sub.Close()

		cc, err := sub.Subscribe(cmd.Context(), pktNats.SubjectPrefix+".>", func(ctx context.Context, event events.Event) error {
			seen.add(event.EventType())
			return nil
		})
		if err != nil {
			return fail("subscribe to note events", err)
		}
		defer cc.Stop()
	}

	color.Yellow("\n1. Health")
	var health dto.HealthResponse
	if err := client.expect("GET", "/", nil, 200, &health); err != nil {
		return fail("health", err)
	}
	if health.Service != controller.ServiceName {
		return fail("health", fmt.Errorf("service = %q", health.Service))
	}
	color.Green("service: %s", health.Service)

	color.Yellow("\n2. Create")
	var created dto.NoteResponse
	if err := client.expect("POST", "/notes", map[string]string{"title": "A", "body": "B"}, 201, &created); err != nil {
		return fail("create", err)
	}
	color.Green("created note %d", created.Id)

	color.Yellow("\n3. Reject incomplete create")
	var rejected dto.ErrorResponse
	if err := client.expect("POST", "/notes", map[string]string{"title": "A"}, 400, &rejected); err != nil {
		return fail("validation", err)
	}
	color.Green("error: %s", rejected.Error)

	color.Yellow("\n4. List")
	var list []dto.NoteResponse
	if err := client.expect("GET", "/notes", nil, 200, &list); err != nil {
		return fail("list", err)
	}
	if !containsNote(list, created.Id) {
		return fail("list", fmt.Errorf("note %d missing from %d notes", created.Id, len(list)))
	}
	color.Green("%d note(s)", len(list))

	color.Yellow("\n5. Update title")
	path := fmt.Sprintf("/notes/%d", created.Id)
	var updated dto.NoteResponse
	if err := client.expect("PUT", path, map[string]string{"title": "t2"}, 200, &updated); err != nil {
		return fail("update", err)
	}
	if updated.Title != "t2" || updated.Body != created.Body {
		return fail("update", fmt.Errorf("got title=%q body=%q", updated.Title, updated.Body))
	}
	color.Green("title: %s, body: %s", updated.Title, updated.Body)

	color.Yellow("\n6. Delete")
	if err := client.expect("DELETE", path, nil, 204, nil); err != nil {
		return fail("delete", err)
	}
	color.Green("deleted")

	color.Yellow("\n7. Gone")
	var gone dto.ErrorResponse
	if err := client.expect("GET", path, nil, 404, &gone); err != nil {
		return fail("get after delete", err)
	}
	color.Green("error: %s", gone.Error)

	if natsURL != "" {
		color.Yellow("\n8. Change events")
		want := []string{events.NoteCreated, events.NoteUpdated, events.NoteDeleted}
		if err := waitForEvents(seen, want, timeout); err != nil {
			return fail("events", err)
		}
		color.Green("received %v", seen.snapshot())
	}

	color.Cyan("\nSmoke run passed")
	return nil
}

func containsNote(list []dto.NoteResponse, id int64) bool {
	for _, n := range list {
		if n.Id == id {
			return true
		}
	}
	return false
}

func waitForEvents(seen *eventLog, want []string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		got := seen.snapshot()
		if hasAll(got, want) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("want %v, got %v", want, got)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func hasAll(got, want []string) bool {
	counts := make(map[string]int, len(got))
	for _, t := range got {
		counts[t]++
	}
	for _, t := range want {
		if counts[t] == 0 {
			return false
		}
		counts[t]--
	}
	return true
}

func fail(step string, err error) error {
	color.Red("FAILED %s: %v", step, err)
	return fmt.Errorf("%s: %w", step, err)
}
