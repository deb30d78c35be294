// Messagely CLI Client Example
//
// This is a minimal example of how to talk to a running message.ly
// server from Go: register or log in, send a message, list your
// inbox, and mark a message read.
//
// Usage:
//   export MESSAGELY_URL="http://localhost:8080"
//   go run main.go register alice s3cret Alice Smith 555-0100
//   go run main.go login alice s3cret
//   export MESSAGELY_TOKEN="<token from login>"
//   go run main.go send bob "hello bob"
//   go run main.go inbox alice
//   go run main.go read <message-id>

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type message struct {
	ID       string `json:"id"`
	Body     string `json:"body"`
	SentAt   string `json:"sent_at"`
	ReadAt   string `json:"read_at,omitempty"`
	FromUser *struct {
		Username string `json:"username"`
	} `json:"from_user,omitempty"`
	ToUser *struct {
		Username string `json:"username"`
	} `json:"to_user,omitempty"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: main.go <register|login|send|inbox|read> ...")
	}

	baseURL := os.Getenv("MESSAGELY_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	token := os.Getenv("MESSAGELY_TOKEN")

	switch os.Args[1] {
	case "register":
		if len(os.Args) != 7 {
			log.Fatal("usage: main.go register <username> <password> <first> <last> <phone>")
		}
		var resp tokenResponse
		call(baseURL, "", http.MethodPost, "/auth/register", map[string]string{
			"username":   os.Args[2],
			"password":   os.Args[3],
			"first_name": os.Args[4],
			"last_name":  os.Args[5],
			"phone":      os.Args[6],
		}, &resp)
		fmt.Println(resp.Token)

	case "login":
		if len(os.Args) != 4 {
			log.Fatal("usage: main.go login <username> <password>")
		}
		var resp tokenResponse
		call(baseURL, "", http.MethodPost, "/auth/login", map[string]string{
			"username": os.Args[2],
			"password": os.Args[3],
		}, &resp)
		fmt.Println(resp.Token)

	case "send":
		if len(os.Args) != 4 {
			log.Fatal("usage: main.go send <to-username> <body>")
		}
		var resp struct {
			Message message `json:"message"`
		}
		call(baseURL, token, http.MethodPost, "/messages", map[string]string{
			"to_username": os.Args[2],
			"body":        os.Args[3],
		}, &resp)
		fmt.Println(resp.Message.ID)

	case "inbox":
		if len(os.Args) != 3 {
			log.Fatal("usage: main.go inbox <username>")
		}
		var resp struct {
			Messages []message `json:"messages"`
		}
		call(baseURL, token, http.MethodGet, "/users/"+os.Args[2]+"/to", nil, &resp)
		for _, m := range resp.Messages {
			state := "unread"
			if m.ReadAt != "" {
				state = "read " + m.ReadAt
			}
			from := "?"
			if m.FromUser != nil {
				from = m.FromUser.Username
			}
			fmt.Printf("%s  from %-12s [%s]  %s\n", m.ID, from, state, m.Body)
		}

	case "read":
		if len(os.Args) != 3 {
			log.Fatal("usage: main.go read <message-id>")
		}
		var resp struct {
			Message struct {
				ID     string `json:"id"`
				ReadAt string `json:"read_at"`
			} `json:"message"`
		}
		call(baseURL, token, http.MethodPost, "/messages/"+os.Args[2]+"/read", nil, &resp)
		fmt.Printf("%s read at %s\n", resp.Message.ID, resp.Message.ReadAt)

	default:
		log.Fatalf("unknown command %q", os.Args[1])
	}
}

// call performs a JSON request and decodes the response into out,
// exiting with the server's error envelope on non-2xx statuses.
func call(baseURL, token, method, path string, payload, out any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Code != "" {
			log.Fatalf("%s %s: %s (%s)", method, path, apiErr.Error, apiErr.Code)
		}
		log.Fatalf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		log.Fatalf("decode response: %v", err)
	}
}
