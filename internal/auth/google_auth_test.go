package auth

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

const testCredentials = `{"installed": {
  "client_id": "client.apps.googleusercontent.com",
  "client_secret": "secret",
  "auth_uri": "https://accounts.google.com/o/oauth2/auth",
  "token_uri": "https://oauth2.googleapis.com/token",
  "redirect_uris": ["http://localhost"]
}}`

func TestGetGoogleClientUsesCachedToken(t *testing.T) {
	dir := t.TempDir()
	creds := filepath.Join(dir, "credentials.json")
	if err := os.WriteFile(creds, []byte(testCredentials), 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
	tokenPath := filepath.Join(dir, "token.json")
	tok := &oauth2.Token{AccessToken: "access", TokenType: "Bearer", RefreshToken: "refresh", Expiry: time.Now().Add(time.Hour)}
	if err := saveToken(tokenPath, tok); err != nil {
		t.Fatalf("saveToken: %v", err)
	}

	client, err := GetGoogleClient(context.Background(), creds, tokenPath)
	if err != nil {
		t.Fatalf("GetGoogleClient: %v", err)
	}
	if client == nil {
		t.Fatalf("expected a client")
	}
}

func TestGetGoogleClientMissingCredentials(t *testing.T) {
	_, err := GetGoogleClient(context.Background(), filepath.Join(t.TempDir(), "nope.json"), "token.json")
	if err == nil {
		t.Fatalf("expected error for missing credentials file")
	}
}

func TestReadAuthCodeLeavesNextLine(t *testing.T) {
	in := strings.NewReader("  4/abc-code \r\nhttps://news.ycombinator.com/jobs\n")
	code, err := readAuthCode(in)
	if err != nil {
		t.Fatalf("readAuthCode: %v", err)
	}
	if code != "4/abc-code" {
		t.Fatalf("unexpected code %q", code)
	}
	rest, _ := io.ReadAll(in)
	if string(rest) != "https://news.ycombinator.com/jobs\n" {
		t.Fatalf("following input should stay unread, got %q", rest)
	}

	if _, err := readAuthCode(strings.NewReader("\n")); err == nil {
		t.Fatalf("expected error for empty code")
	}
	if code, err := readAuthCode(strings.NewReader("last-code")); err != nil || code != "last-code" {
		t.Fatalf("code without newline: %q, %v", code, err)
	}
}
