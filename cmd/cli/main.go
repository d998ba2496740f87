package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"helmhub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type tokenData struct {
	Token string `json:"token"`
}

type authResponse struct {
	Token string `json:"token"`
}

type venueListResponse struct {
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Items  []models.Venue `json:"items"`
}

func main() {
	global := flag.NewFlagSet("helmhub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := &http.Client{Timeout: 15 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "venues":
		handleVenues(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "tuning":
		handleTuning(ctx, client, *baseURL, sub, args[2:])
	case "fleet":
		handleFleet(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "logbook":
		handleLogbook(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "feed":
		handleFeed(*baseURL, sub, args[2:])
	case "notify":
		handleNotify(sub, args[2:])
	case "chat":
		handleChat(*baseURL, sub, args[2:])
	case "export":
		handleExport(ctx, client, *baseURL, sub, args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *email == "" || *password == "" {
			log.Fatal("email and password are required")
		}

		payload := map[string]string{"email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/login", "", payload, &resp); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("logged in")
	case "register":
		fs := flag.NewFlagSet("auth register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *username == "" || *email == "" || *password == "" {
			log.Fatal("username, email, and password are required")
		}

		payload := map[string]string{"username": *username, "email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/register", "", payload, &resp); err != nil {
			log.Fatalf("register failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("registered and logged in")
	case "logout":
		if err := clearToken(tokenPath); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("logged out")
	default:
		log.Fatal("usage: helmhub auth <login|register|logout>")
	}
}

func handleVenues(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "search":
		fs := flag.NewFlagSet("venues search", flag.ExitOnError)
		query := fs.String("q", "", "search query")
		country := fs.String("country", "", "country filter")
		venueType := fs.String("type", "", "venue type filter (marina|harbour|club|open_water)")
		bbox := fs.String("bbox", "", "bounding box minLat,minLng,maxLat,maxLng")
		verified := fs.Bool("verified", false, "only verified venues")
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "offset")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/venues")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		if *query != "" {
			qv.Set("q", *query)
		}
		if *country != "" {
			qv.Set("country", *country)
		}
		if *venueType != "" {
			qv.Set("type", *venueType)
		}
		if *bbox != "" {
			qv.Set("bbox", *bbox)
		}
		if *verified {
			qv.Set("verified", "true")
		}
		qv.Set("limit", strconv.Itoa(*limit))
		qv.Set("offset", strconv.Itoa(*offset))
		u.RawQuery = qv.Encode()

		var resp venueListResponse
		if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
			log.Fatalf("search failed: %v", err)
		}
		printJSON(resp)
	case "show":
		fs := flag.NewFlagSet("venues show", flag.ExitOnError)
		id := fs.String("id", "", "venue id")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("venue id is required")
		}

		var resp models.Venue
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/venues/"+url.PathEscape(*id), "", nil, &resp); err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(resp)
	case "verify":
		fs := flag.NewFlagSet("venues verify", flag.ExitOnError)
		id := fs.String("id", "", "venue id")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("venue id is required")
		}

		token := mustToken(tokenPath)
		var resp map[string]any
		endpoint := baseURL + "/users/venues/" + url.PathEscape(*id) + "/verify"
		if err := doJSON(ctx, client, http.MethodPost, endpoint, token, nil, &resp); err != nil {
			log.Fatalf("verify failed: %v", err)
		}
		printJSON(resp)
	case "reviews":
		fs := flag.NewFlagSet("venues reviews", flag.ExitOnError)
		id := fs.String("id", "", "venue id")
		limit := fs.Int("limit", 20, "page size")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("venue id is required")
		}

		endpoint := fmt.Sprintf("%s/venues/%s/reviews?limit=%d", baseURL, url.PathEscape(*id), *limit)
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, endpoint, "", nil, &resp); err != nil {
			log.Fatalf("reviews failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: helmhub venues <search|show|verify|reviews>")
	}
}

func handleTuning(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "classes":
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/tuning/classes", "", nil, &resp); err != nil {
			log.Fatalf("classes failed: %v", err)
		}
		printJSON(resp)
	case "guides":
		fs := flag.NewFlagSet("tuning guides", flag.ExitOnError)
		class := fs.String("class", "", "boat class name (any spelling, e.g. \"Laser\" or \"J/70\")")
		_ = fs.Parse(args)
		if *class == "" {
			log.Fatal("class is required")
		}

		var resp map[string]any
		endpoint := baseURL + "/tuning/guides/" + url.PathEscape(*class)
		if err := doJSON(ctx, client, http.MethodGet, endpoint, "", nil, &resp); err != nil {
			log.Fatalf("guides failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: helmhub tuning <classes|guides>")
	}
}

func handleFleet(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	token := mustToken(tokenPath)
	switch sub {
	case "add":
		fs := flag.NewFlagSet("fleet add", flag.ExitOnError)
		class := fs.String("class", "", "boat class name")
		sailNumber := fs.String("sail-number", "", "sail number")
		boatName := fs.String("boat-name", "", "boat name")
		homeVenue := fs.String("home-venue", "", "home venue id")
		_ = fs.Parse(args)
		if *class == "" {
			log.Fatal("class is required")
		}

		payload := map[string]any{
			"class_key":     *class,
			"sail_number":   *sailNumber,
			"boat_name":     *boatName,
			"home_venue_id": *homeVenue,
		}
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/users/fleet", token, payload, &resp); err != nil {
			log.Fatalf("add failed: %v", err)
		}
		printJSON(resp)
	case "remove":
		fs := flag.NewFlagSet("fleet remove", flag.ExitOnError)
		class := fs.String("class", "", "boat class name")
		_ = fs.Parse(args)
		if *class == "" {
			log.Fatal("class is required")
		}

		var resp map[string]any
		endpoint := baseURL + "/users/fleet/" + url.PathEscape(*class)
		if err := doJSON(ctx, client, http.MethodDelete, endpoint, token, nil, &resp); err != nil {
			log.Fatalf("remove failed: %v", err)
		}
		printJSON(resp)
	case "list":
		fs := flag.NewFlagSet("fleet list", flag.ExitOnError)
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "offset")
		_ = fs.Parse(args)

		endpoint := fmt.Sprintf("%s/users/fleet?limit=%d&offset=%d", baseURL, *limit, *offset)
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, endpoint, token, nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: helmhub fleet <add|remove|list>")
	}
}

func handleLogbook(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	token := mustToken(tokenPath)
	switch sub {
	case "add":
		fs := flag.NewFlagSet("logbook add", flag.ExitOnError)
		venueID := fs.String("venue", "", "venue id")
		class := fs.String("class", "", "boat class name")
		wind := fs.Int("wind", -1, "wind in knots (omit if unknown)")
		notes := fs.String("notes", "", "session notes")
		_ = fs.Parse(args)
		if *venueID == "" || *class == "" {
			log.Fatal("venue and class are required")
		}

		payload := map[string]any{
			"venue_id":  *venueID,
			"class_key": *class,
			"notes":     *notes,
		}
		if *wind >= 0 {
			payload["wind_kts"] = *wind
		}
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/users/logbook", token, payload, &resp); err != nil {
			log.Fatalf("add failed: %v", err)
		}
		printJSON(resp)
	case "list":
		fs := flag.NewFlagSet("logbook list", flag.ExitOnError)
		venueID := fs.String("venue", "", "filter by venue id")
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "offset")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/users/logbook")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		if *venueID != "" {
			qv.Set("venue_id", *venueID)
		}
		qv.Set("limit", strconv.Itoa(*limit))
		qv.Set("offset", strconv.Itoa(*offset))
		u.RawQuery = qv.Encode()

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, u.String(), token, nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: helmhub logbook <add|list>")
	}
}

func handleFeed(baseURL, sub string, args []string) {
	switch sub {
	case "listen":
		fs := flag.NewFlagSet("feed listen", flag.ExitOnError)
		addr := fs.String("addr", "127.0.0.1:7070", "TCP feed server address")
		pretty := fs.Bool("pretty", true, "pretty print JSON events")
		_ = fs.Parse(args)
		for {
			if err := runFeedTCP(*addr, *pretty); err != nil {
				log.Printf("[feed] disconnected: %v", err)
			}
			time.Sleep(1 * time.Second)
		}
	case "subscribe":
		fs := flag.NewFlagSet("feed subscribe", flag.ExitOnError)
		wsURL := fs.String("ws", "", "WebSocket URL (defaults to /ws on API host)")
		_ = fs.Parse(args)

		endpoint := *wsURL
		if endpoint == "" {
			var err error
			endpoint, err = websocketURL(baseURL, "/ws")
			if err != nil {
				log.Fatalf("ws url: %v", err)
			}
		}
		if err := runWebSocket(endpoint); err != nil {
			log.Fatalf("subscribe failed: %v", err)
		}
	default:
		log.Fatal("usage: helmhub feed <listen|subscribe>")
	}
}

func handleNotify(sub string, args []string) {
	switch sub {
	case "subscribe":
		fs := flag.NewFlagSet("notify subscribe", flag.ExitOnError)
		addr := fs.String("addr", "127.0.0.1:7071", "UDP notify server address")
		userID := fs.String("user", "", "user id to register as")
		_ = fs.Parse(args)
		if *userID == "" {
			log.Fatal("user is required")
		}
		if err := runNotifyUDP(*addr, *userID); err != nil {
			log.Fatalf("subscribe failed: %v", err)
		}
	default:
		log.Fatal("usage: helmhub notify subscribe")
	}
}

func handleChat(baseURL, sub string, args []string) {
	switch sub {
	case "join":
		fs := flag.NewFlagSet("chat join", flag.ExitOnError)
		venueID := fs.String("venue", "", "venue id (chat room)")
		name := fs.String("name", "guest", "display name")
		_ = fs.Parse(args)
		if *venueID == "" {
			log.Fatal("venue is required")
		}

		endpoint, err := websocketURL(baseURL, "/venues/"+url.PathEscape(*venueID)+"/chat")
		if err != nil {
			log.Fatalf("ws url: %v", err)
		}
		if err := runChatWS(endpoint, *name); err != nil {
			log.Fatalf("chat join failed: %v", err)
		}
	default:
		log.Fatal("usage: helmhub chat join")
	}
}

func handleExport(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "json":
		fs := flag.NewFlagSet("export json", flag.ExitOnError)
		out := fs.String("out", "data/venues.json", "output JSON path")
		limit := fs.Int("limit", 500, "max venues to export")
		_ = fs.Parse(args)

		items, err := fetchVenues(ctx, client, baseURL, *limit)
		if err != nil {
			log.Fatalf("export json failed: %v", err)
		}
		if err := writeJSON(*out, items); err != nil {
			log.Fatalf("write json failed: %v", err)
		}
		log.Printf("exported %d venues to %s", len(items), *out)
	case "csv":
		fs := flag.NewFlagSet("export csv", flag.ExitOnError)
		out := fs.String("out", "data/venues.csv", "output CSV path")
		limit := fs.Int("limit", 500, "max venues to export")
		_ = fs.Parse(args)

		items, err := fetchVenues(ctx, client, baseURL, *limit)
		if err != nil {
			log.Fatalf("export csv failed: %v", err)
		}
		if err := writeCSV(*out, items); err != nil {
			log.Fatalf("write csv failed: %v", err)
		}
		log.Printf("exported %d venues to %s", len(items), *out)
	default:
		log.Fatal("usage: helmhub export <json|csv>")
	}
}

func runFeedTCP(addr string, pretty bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[feed] connected to %s", addr)
	reader := bufio.NewScanner(conn)
	for reader.Scan() {
		line := reader.Bytes()
		if !pretty {
			fmt.Println(string(line))
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(line, &obj); err != nil {
			fmt.Println(string(line))
			continue
		}
		b, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Println(string(b))
	}
	if err := reader.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

func runWebSocket(wsURL string) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[feed] connected to %s", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Println(string(msg))
	}
}

func runNotifyUDP(addr, userID string) error {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	reg, err := json.Marshal(map[string]string{"type": "register", "user_id": userID})
	if err != nil {
		return err
	}
	if _, err := conn.Write(reg); err != nil {
		return err
	}
	log.Printf("[notify] registered as %s on %s", userID, addr)

	buf := make([]byte, 2048)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return err
		}
		fmt.Println(string(buf[:n]))
	}
}

func runChatWS(wsURL, name string) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?user="+url.QueryEscape(name), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Printf("[chat] connected to %s as %s", wsURL, name)

	go func() {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			fmt.Println(string(msg))
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func fetchVenues(ctx context.Context, client *http.Client, baseURL string, limit int) ([]models.Venue, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be > 0")
	}

	var out []models.Venue
	offset := 0
	for len(out) < limit {
		pageSize := 50
		if remaining := limit - len(out); remaining < pageSize {
			pageSize = remaining
		}
		u, err := url.Parse(baseURL + "/venues")
		if err != nil {
			return nil, err
		}
		qv := u.Query()
		qv.Set("limit", strconv.Itoa(pageSize))
		qv.Set("offset", strconv.Itoa(offset))
		u.RawQuery = qv.Encode()

		var resp venueListResponse
		if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
			return nil, err
		}
		if len(resp.Items) == 0 {
			break
		}
		out = append(out, resp.Items...)
		offset += len(resp.Items)
		if offset >= resp.Total {
			break
		}
	}

	return out, nil
}

func writeJSON(path string, items []models.Venue) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeCSV(path string, items []models.Venue) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{
		"id", "name", "lat", "lng", "country", "region", "venue_type", "verified",
	}); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write([]string{
			item.ID,
			item.Name,
			strconv.FormatFloat(item.Lat, 'f', -1, 64),
			strconv.FormatFloat(item.Lng, 'f', -1, 64),
			item.Country,
			item.Region,
			item.VenueType,
			strconv.FormatBool(item.Verified),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return err
	}
	return nil
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.helmhub-token.json"
	}
	return filepath.Join(home, ".helmhub", "token.json")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", err
	}
	return strings.TrimSpace(td.Token), nil
}

func mustToken(path string) string {
	token, err := readToken(path)
	if err != nil {
		log.Fatalf("token not found, please login: %v", err)
	}
	if token == "" {
		log.Fatal("token empty, please login")
	}
	return token
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func printUsage() {
	fmt.Println("helmhub <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|register|logout")
	fmt.Println("  venues search|show|verify|reviews")
	fmt.Println("  tuning classes|guides")
	fmt.Println("  fleet add|remove|list")
	fmt.Println("  logbook add|list")
	fmt.Println("  feed listen|subscribe")
	fmt.Println("  notify subscribe")
	fmt.Println("  chat join")
	fmt.Println("  export json|csv")
}
