package scrape_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-steam-export/internal/fetch"
	"go-steam-export/internal/scrape"
)

func newClient(t *testing.T) *fetch.Client {
	t.Helper()
	cl, err := fetch.New(fetch.Options{Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return cl
}

func TestGames_ParsesEmbeddedBlock(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/profiles/1/games/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("tab") != "all" {
			t.Errorf("tab = %q, want all", r.URL.Query().Get("tab"))
		}
		_, _ = w.Write([]byte(`<html><script>
var rgGames = [{"appid":730,"name":"Counter-Strike 2","hours_forever":"12,5"},
{"appid":570,"name":"Dota 2","hours_forever":"1,234.5"}];
var rgOther = 1;</script></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	games, err := scrape.Games(context.Background(), newClient(t), srv.URL+"/profiles/1")
	if err != nil {
		t.Fatalf("games: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("len = %d, want 2", len(games))
	}
	if games[0].AppID != 730 || games[0].PlaytimeMinutes != 750 {
		t.Fatalf("games[0] = %+v", games[0])
	}
	if games[1].PlaytimeMinutes != 74070 {
		t.Fatalf("games[1].PlaytimeMinutes = %d, want 74070", games[1].PlaytimeMinutes)
	}
}

func TestGames_EmptyBlockIsConfirmedEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><script>var rgGames = [];</script></html>`))
	}))
	defer srv.Close()

	games, err := scrape.Games(context.Background(), newClient(t), srv.URL+"/profiles/1")
	if err != nil {
		t.Fatalf("games: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("len = %d, want 0", len(games))
	}
}

func TestGames_MissingBlockIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>login required</html>`))
	}))
	defer srv.Close()

	if _, err := scrape.Games(context.Background(), newClient(t), srv.URL+"/profiles/1"); err == nil {
		t.Fatal("expected error for missing rgGames block")
	}
}

func TestGroups_FixedSelector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
<div class="profile_group_links">
  <a href="https://steamcommunity.com/groups/one">Group One</a>
  <a href="https://steamcommunity.com/groups/two">  Group Two  </a>
</div>
<div class="other"><a href="/x">not a group</a></div>
</body></html>`))
	}))
	defer srv.Close()

	groups, err := scrape.Groups(context.Background(), newClient(t), srv.URL+"/profiles/1")
	if err != nil {
		t.Fatalf("groups: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("len = %d, want 2", len(groups))
	}
	if groups[1].Name != "Group Two" || groups[1].URL != "https://steamcommunity.com/groups/two" {
		t.Fatalf("groups[1] = %+v", groups[1])
	}
}
