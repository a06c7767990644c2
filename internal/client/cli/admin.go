package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sahayak/sahayak-backend/internal/client/adminq"
)

// AdminQueue runs the moderation view. The gate runs on the hydrated
// session before any admin API call is made.
func (a *App) AdminQueue(ctx context.Context) error {
	if err := adminq.Gate(a.sessions); err != nil {
		if errors.Is(err, adminq.ErrNotAdmin) {
			fmt.Println("Admin access required.")
			return nil
		}
		return err
	}

	queue := adminq.NewQueue(a.client)
	if err := queue.Load(ctx); err != nil {
		fmt.Println("Failed to load moderation queue:", err)
		return err
	}

	for {
		if len(queue.Rows) == 0 {
			fmt.Println("Queue is empty.")
			return nil
		}

		fmt.Println("\nModeration queue (pending first):")
		for i, s := range queue.Rows {
			state := "pending"
			if s.IsPublished {
				state = "published"
			}
			fmt.Printf("  [%d] %-30s  %-20s  %s\n", i+1, s.Name, s.Course.Department, state)
		}

		line, err := GetSimpleText(a.reader,
			"Action: publish <n> | reject <n> | delete <n> | done", os.Stdout)
		if err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if parts[0] == "done" {
			return nil
		}
		if len(parts) < 2 {
			fmt.Println("Usage: <verb> <row number>")
			continue
		}

		row := parseRow(parts[1], len(queue.Rows))
		if row < 0 {
			fmt.Println("Invalid row number")
			continue
		}
		subject := queue.Rows[row]
		queue.Selected = subject.ID

		switch parts[0] {
		case "publish":
			if err := queue.Publish(ctx, subject.ID); err != nil {
				fmt.Println("Publish failed:", err)
			} else {
				fmt.Println("Published:", subject.Name)
			}

		case "reject":
			reason, err := GetSimpleText(a.reader, "Rejection reason", os.Stdout)
			if err != nil {
				return err
			}
			if err := queue.Reject(ctx, subject.ID, reason); err != nil {
				fmt.Println("Reject failed:", err)
			} else {
				fmt.Println("Rejected:", subject.Name)
			}

		case "delete":
			ok, err := Confirm(a.reader,
				fmt.Sprintf("Permanently delete %q?", subject.Name), os.Stdout)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := queue.Delete(ctx, subject.ID); err != nil {
				fmt.Println("Delete failed:", err)
			} else {
				fmt.Println("Deleted:", subject.Name)
			}

		default:
			fmt.Println("Unknown action:", parts[0])
		}
	}
}

// parseRow converts a 1-based row label to an index, or -1 when invalid
func parseRow(s string, max int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	if n < 1 || n > max {
		return -1
	}
	return n - 1
}
