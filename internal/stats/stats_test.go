package stats_test

import (
	"testing"

	"go-steam-export/internal/model"
	"go-steam-export/internal/stats"
)

func okRecord(id, nick, country string, games ...model.GameEntry) model.Record {
	return model.Record{
		SteamID: id,
		Status:  model.StatusOK,
		Profile: &model.Profile{Nickname: nick, Country: country, Games: games},
	}
}

func TestPerGame(t *testing.T) {
	records := []model.Record{
		okRecord("1", "a", "DE",
			model.GameEntry{AppID: 730, Name: "CS2", PlaytimeMinutes: 90},
			model.GameEntry{AppID: 570, Name: "Dota 2", PlaytimeMinutes: 10}),
		okRecord("2", "b", "DE",
			model.GameEntry{AppID: 730, Name: "CS2", PlaytimeMinutes: 30}),
		{SteamID: "3", Status: model.StatusProfilePrivate},
	}
	agg := stats.PerGame(records)
	if len(agg) != 2 {
		t.Fatalf("len = %d, want 2", len(agg))
	}
	// 总时长降序：CS2 120 分钟在前
	if agg[0].Name != "CS2" || agg[0].Minutes != 120 || agg[0].Players != 2 {
		t.Fatalf("agg[0] = %+v", agg[0])
	}
	if agg[1].Name != "Dota 2" || agg[1].Players != 1 {
		t.Fatalf("agg[1] = %+v", agg[1])
	}
}

func TestPerCountry(t *testing.T) {
	records := []model.Record{
		okRecord("1", "a", "DE"),
		okRecord("2", "b", ""),
		okRecord("3", "c", "DE"),
		{SteamID: "4", Status: model.StatusCollectionFailed},
	}
	counts := stats.PerCountry(records)
	if len(counts) != 2 {
		t.Fatalf("len = %d, want 2", len(counts))
	}
	if counts[0].Country != "DE" || counts[0].Count != 2 {
		t.Fatalf("counts[0] = %+v", counts[0])
	}
	if counts[1].Country != "" || counts[1].Count != 1 {
		t.Fatalf("counts[1] = %+v", counts[1])
	}
}

func TestLeaderboard(t *testing.T) {
	records := []model.Record{
		okRecord("1", "a", "",
			model.GameEntry{AppID: 730, Name: "CS2", PlaytimeMinutes: 60},
			model.GameEntry{AppID: 440, Name: "TF2", PlaytimeMinutes: 9999}),
		okRecord("2", "b", "",
			model.GameEntry{AppID: 730, Name: "CS2", PlaytimeMinutes: 100},
			model.GameEntry{AppID: 570, Name: "Dota 2", PlaytimeMinutes: 50}),
	}
	// 只统计指定 AppID 集合内的时长，集合之外的 9999 分钟不得计入
	lb := stats.Leaderboard(records, []int{730, 570})
	if len(lb) != 2 {
		t.Fatalf("len = %d, want 2", len(lb))
	}
	if lb[0].SteamID != "2" || lb[0].Minutes != 150 {
		t.Fatalf("lb[0] = %+v", lb[0])
	}
	if lb[1].SteamID != "1" || lb[1].Minutes != 60 {
		t.Fatalf("lb[1] = %+v", lb[1])
	}
}

func TestLeaderboard_TiePreservesInputOrder(t *testing.T) {
	records := []model.Record{
		okRecord("1", "a", ""),
		okRecord("2", "b", ""),
	}
	lb := stats.Leaderboard(records, []int{730})
	if lb[0].SteamID != "1" || lb[1].SteamID != "2" {
		t.Fatalf("lb = %+v", lb)
	}
}

func TestSummarize(t *testing.T) {
	records := []model.Record{
		okRecord("1", "a", "DE",
			model.GameEntry{AppID: 730, Name: "CS2", PlaytimeMinutes: 60}),
		{SteamID: "2", Status: model.StatusResolutionFailed},
		{SteamID: "3", Status: model.StatusProfilePrivate},
	}
	st := stats.Summarize(records)
	if st.Total != 3 || st.Succeeded != 1 || st.Failed != 2 {
		t.Fatalf("stats = %+v", st)
	}
	if st.Games != 1 {
		t.Fatalf("games = %d, want 1", st.Games)
	}
	if st.UpdatedAt.IsZero() {
		t.Fatal("UpdatedAt must be set")
	}
}
