// 包 model 定义采集结果的数据模型（档案/游戏/好友/群组/统计/导出结构）。
package model

import "time"

// Status 表示单条档案记录的最终结局。
type Status string

const (
	StatusOK               Status = "OK"
	StatusResolutionFailed Status = "RESOLUTION_FAILED"
	StatusProfilePrivate   Status = "PROFILE_PRIVATE"
	StatusCollectionFailed Status = "COLLECTION_FAILED"
)

// GameEntry 为一条游戏记录，时长统一以分钟计。
type GameEntry struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeMinutes int    `json:"playtime_minutes"`
}

// FriendEntry 为一条已确认的好友关系。
type FriendEntry struct {
	SteamID     string    `json:"steamid"`
	FriendSince time.Time `json:"friend_since"`
}

// GroupEntry 为档案页上展示的一个群组。
type GroupEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Profile 为采集成功后的完整档案数据。
type Profile struct {
	Nickname string        `json:"nickname"`
	Avatar   string        `json:"avatar"`
	Country  string        `json:"country"`
	Level    int           `json:"level"`
	Games    []GameEntry   `json:"games"`
	Friends  []FriendEntry `json:"friends"`
	Groups   []GroupEntry  `json:"groups"`
	Recent   []GameEntry   `json:"recent,omitempty"`
}

// Record 对应一条输入链接的最终结果：
// 成功时 Profile 非空；失败时 Status/Message 记录失败类别与原因。
// 记录一经产出不再修改。
type Record struct {
	SteamID     string    `json:"steamid"`
	URL         string    `json:"url,omitempty"`
	Status      Status    `json:"status"`
	Message     string    `json:"message,omitempty"`
	Profile     *Profile  `json:"profile,omitempty"`
	CollectedAt time.Time `json:"collected_at"`
}

// OK 报告该记录是否为成功采集。
func (r Record) OK() bool { return r.Status == StatusOK }

// Stats 为一轮批量采集的汇总统计。
type Stats struct {
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Games     int       `json:"games_total"`
	Friends   int       `json:"friends_total"`
	Groups    int       `json:"groups_total"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Export 为 data.json 导出的顶层结构。
type Export struct {
	Stats    Stats    `json:"stats"`
	Profiles []Record `json:"profiles"`
}
