// Package testutil provides shared test helpers for creating config files and a fake Instaling service.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	Username = "student@example.com"
	Password = "secret"
	ChildID  = "abc123"
)

// SetupTestConfig creates a config file pointing at baseURL that stores corrections
// in a YAML file under tmpDir. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()

	configContent := fmt.Sprintf(`instaling:
  base_url: %s
corrections:
  backend: yaml
  file: %s
`,
		baseURL,
		CorrectionsFile(tmpDir),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// CorrectionsFile returns the corrections file SetupTestConfig configures.
func CorrectionsFile(tmpDir string) string {
	return filepath.Join(tmpDir, "corrections.yml")
}

// FakeWord is a word served by FakeInstaling.
type FakeWord struct {
	ID string
	// AudioName is the audio file name without extension.
	AudioName string
	// Expected is the answer the service accepts.
	Expected string
}

// FakeInstaling imitates the Instaling endpoints the bot uses.
type FakeInstaling struct {
	*httptest.Server

	mu      sync.Mutex
	words   []FakeWord
	answers map[string]string
}

// NewFakeInstaling starts a service that hands out words in order and accepts
// Username and Password as the only valid credentials.
func NewFakeInstaling(t *testing.T, words ...FakeWord) *FakeInstaling {
	t.Helper()

	fake := &FakeInstaling{
		words:   words,
		answers: make(map[string]string),
	}
	byID := make(map[string]FakeWord, len(words))
	for _, word := range words {
		byID[word.ID] = word
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/teacher.php", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("log_email") == Username && r.PostForm.Get("log_password") == Password {
			http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "logged-in", Path: "/"})
		}
	})
	mux.HandleFunc("/learning/dispatcher.php", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("PHPSESSID"); err != nil {
			http.Redirect(w, r, "/learning/expired.php", http.StatusFound)
			return
		}
		http.Redirect(w, r, "/student/pages/mainPage.php?student_id="+ChildID, http.StatusFound)
	})
	mux.HandleFunc("/learning/expired.php", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/student/pages/mainPage.php", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/ling2/server/actions/init_session.php", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/ling2/server/actions/generate_next_word.php", func(w http.ResponseWriter, r *http.Request) {
		fake.mu.Lock()
		defer fake.mu.Unlock()
		if len(fake.words) == 0 {
			fmt.Fprint(w, `{"summary":"done"}`)
			return
		}
		fmt.Fprintf(w, `{"id":%q}`, fake.words[0].ID)
		fake.words = fake.words[1:]
	})
	mux.HandleFunc("/ling2/server/actions/getAudioUrl.php", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"url":"https://instaling.pl/mp3/aa/%s.mp3"}`, byID[r.URL.Query().Get("id")].AudioName)
	})
	mux.HandleFunc("/ling2/server/actions/save_answer.php", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		wordID := r.PostForm.Get("word_id")
		fake.mu.Lock()
		fake.answers[wordID] = r.PostForm.Get("answer")
		fake.mu.Unlock()
		fmt.Fprintf(w, `{"answershow":%q}`, byID[wordID].Expected)
	})

	fake.Server = httptest.NewServer(mux)
	t.Cleanup(fake.Close)
	return fake
}

// Answers returns the last submitted answer per word id.
func (fake *FakeInstaling) Answers() map[string]string {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	answers := make(map[string]string, len(fake.answers))
	for id, answer := range fake.answers {
		answers[id] = answer
	}
	return answers
}
