package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"helmhub/internal/feed"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7070", "TCP feed server address")
	raw := flag.Bool("raw", false, "print raw JSON frames instead of summaries")
	flag.Parse()

	for {
		if err := run(*addr, *raw); err != nil {
			log.Printf("[feed-client] disconnected: %v", err)
		}
		time.Sleep(1 * time.Second) // auto reconnect
	}
}

func run(addr string, raw bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[feed-client] connected to %s", addr)

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		line := sc.Bytes()
		if raw {
			fmt.Println(string(line))
			continue
		}
		fmt.Println(render(line))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

// render turns a feed frame into one human-readable line; frames it
// does not recognize pass through untouched.
func render(line []byte) string {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(line, &head); err != nil {
		return string(line)
	}

	switch head.Type {
	case feed.EventWelcome:
		var ev feed.WelcomeEvent
		if json.Unmarshal(line, &ev) != nil {
			break
		}
		return fmt.Sprintf("connected to %s feed (%d tcp, %d ws clients)",
			ev.Feed, ev.Stats.TCPClients, ev.Stats.WSClients)
	case feed.EventFleetUpdate:
		var ev feed.FleetEvent
		if json.Unmarshal(line, &ev) != nil {
			break
		}
		boat := ev.BoatName
		if boat == "" {
			boat = "(unnamed)"
		}
		return fmt.Sprintf("%s fleet: %s %s %s", ev.UserID, ev.ClassKey, ev.SailNumber, boat)
	case feed.EventFleetDelete:
		var ev feed.FleetEvent
		if json.Unmarshal(line, &ev) != nil {
			break
		}
		return fmt.Sprintf("%s fleet: removed %s", ev.UserID, ev.ClassKey)
	case feed.EventVenueVerified:
		var ev feed.VenueEvent
		if json.Unmarshal(line, &ev) != nil {
			break
		}
		return fmt.Sprintf("venue %s verified", ev.VenueID)
	}
	return string(line)
}
