// Seeder produces a sample channel batch file for the threadweave process
// command. The batch mixes a solved troubleshooting conversation, an
// unanswered question, and chatter, so one run exercises every workflow
// outcome.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"
)

type message struct {
	ID         string    `json:"id"`
	AuthorHash string    `json:"author_hash"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	ReplyTo    string    `json:"reply_to,omitempty"`
	Mentions   []string  `json:"mentions,omitempty"`
	HasCode    bool      `json:"has_code,omitempty"`
}

type batch struct {
	ChannelID string    `json:"channel_id"`
	Messages  []message `json:"messages"`
}

func main() {
	out := flag.String("out", "batch.json", "output file path")
	channel := flag.String("channel", "chan-demo", "channel identifier")
	flag.Parse()

	base := time.Now().UTC().Add(-6 * time.Hour).Truncate(time.Second)
	at := func(offset time.Duration) time.Time { return base.Add(offset) }

	sample := batch{
		ChannelID: *channel,
		Messages: []message{
			{
				ID: "msg-001", AuthorHash: "user-a1", Timestamp: at(0),
				Content: "our ingestion worker dies with 'too many open files' after about an hour of uptime, anyone seen this?",
			},
			{
				ID: "msg-002", AuthorHash: "user-b2", Timestamp: at(4 * time.Minute), ReplyTo: "msg-001",
				Content: "check whether you close the response body on every request, that leaks fds fast",
			},
			{
				ID: "msg-003", AuthorHash: "user-a1", Timestamp: at(9 * time.Minute), ReplyTo: "msg-002", HasCode: true,
				Content: "that was it. for anyone else:\n```go\nresp, err := client.Do(req)\nif err != nil {\n    return err\n}\ndefer resp.Body.Close()\n```\nworker has been stable since.",
			},
			{
				ID: "msg-004", AuthorHash: "user-c3", Timestamp: at(40 * time.Minute),
				Content: "is there a recommended way to size the retention window for the metrics store?",
			},
			{
				ID: "msg-005", AuthorHash: "user-d4", Timestamp: at(55 * time.Minute),
				Content: "morning everyone ☕",
			},
			{
				ID: "msg-006", AuthorHash: "user-b2", Timestamp: at(70 * time.Minute), Mentions: []string{"user-d4"},
				Content: "morning! standup in five",
			},
		},
	}

	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		slog.Error("failed to encode batch", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		slog.Error("failed to write batch file", "error", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d messages for channel %s to %s\n", len(sample.Messages), sample.ChannelID, *out)
}
