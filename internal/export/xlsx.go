// 包 export 负责结果落盘：
// - ToXLSX：多工作表 Excel（Profiles 恒在；Games/Friends/Groups 非空才建）
// - ToJSON：带统计的 data.json，便于页面或脚本直接消费
package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"go-steam-export/internal/model"
	"go-steam-export/internal/storefront"
)

// ToXLSX 将整批记录写入 Excel 工作簿。
// prices 可为 nil，此时 Games 表省略价格列。
func ToXLSX(records []model.Record, prices map[int]storefront.Price, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := writeProfiles(f, header, records); err != nil {
		return err
	}
	if err := writeGames(f, header, records, prices); err != nil {
		return err
	}
	if err := writeFriends(f, header, records); err != nil {
		return err
	}
	if err := writeGroups(f, header, records); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// writeProfiles 写每档案一行的汇总表；状态列区分 OK 与各失败类别。
func writeProfiles(f *excelize.File, headerStyle int, records []model.Record) error {
	const sheet = "Profiles"
	// 新建工作簿自带 Sheet1，直接改名复用
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	cols := []any{"SteamID", "状态", "昵称", "国家", "等级", "游戏数", "好友数", "群组数", "链接"}
	if err := writeHeader(f, sheet, headerStyle, cols); err != nil {
		return err
	}
	for i, r := range records {
		row := []any{r.SteamID, string(r.Status), "-", "-", "-", 0, 0, 0, r.URL}
		if r.OK() {
			p := r.Profile
			row = []any{r.SteamID, string(r.Status), p.Nickname, p.Country, p.Level,
				len(p.Games), len(p.Friends), len(p.Groups), r.URL}
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeGames 写每（档案, 游戏）一行的明细表；没有任何行时不建表。
func writeGames(f *excelize.File, headerStyle int, records []model.Record, prices map[int]storefront.Price) error {
	type gameRow struct {
		nickname string
		steamID  string
		entry    model.GameEntry
	}
	var rows []gameRow
	for _, r := range records {
		if !r.OK() {
			continue
		}
		for _, g := range r.Profile.Games {
			rows = append(rows, gameRow{r.Profile.Nickname, r.SteamID, g})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	const sheet = "Games"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", sheet, err)
	}
	cols := []any{"昵称", "SteamID", "游戏", "AppID", "时长(分钟)", "时长(小时)"}
	if prices != nil {
		cols = append(cols, "当前价格")
	}
	if err := writeHeader(f, sheet, headerStyle, cols); err != nil {
		return err
	}
	for i, rw := range rows {
		hours := math.Round(float64(rw.entry.PlaytimeMinutes)/60*10) / 10
		row := []any{rw.nickname, rw.steamID, rw.entry.Name, rw.entry.AppID, rw.entry.PlaytimeMinutes, hours}
		if prices != nil {
			if p, ok := prices[rw.entry.AppID]; ok {
				row = append(row, p.String())
			} else {
				row = append(row, "-")
			}
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeFriends 写每（档案, 好友）一行的明细表；没有任何行时不建表。
func writeFriends(f *excelize.File, headerStyle int, records []model.Record) error {
	type friendRow struct {
		nickname string
		steamID  string
		entry    model.FriendEntry
	}
	var rows []friendRow
	for _, r := range records {
		if !r.OK() {
			continue
		}
		for _, fr := range r.Profile.Friends {
			rows = append(rows, friendRow{r.Profile.Nickname, r.SteamID, fr})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	const sheet = "Friends"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", sheet, err)
	}
	cols := []any{"昵称", "SteamID", "好友 SteamID", "成为好友于"}
	if err := writeHeader(f, sheet, headerStyle, cols); err != nil {
		return err
	}
	for i, rw := range rows {
		row := []any{rw.nickname, rw.steamID, rw.entry.SteamID, rw.entry.FriendSince.Format("2006-01-02")}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeGroups 写每（档案, 群组）一行的明细表；没有任何行时不建表。
func writeGroups(f *excelize.File, headerStyle int, records []model.Record) error {
	type groupRow struct {
		nickname string
		steamID  string
		entry    model.GroupEntry
	}
	var rows []groupRow
	for _, r := range records {
		if !r.OK() {
			continue
		}
		for _, g := range r.Profile.Groups {
			rows = append(rows, groupRow{r.Profile.Nickname, r.SteamID, g})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	const sheet = "Groups"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", sheet, err)
	}
	cols := []any{"昵称", "SteamID", "群组", "群组链接"}
	if err := writeHeader(f, sheet, headerStyle, cols); err != nil {
		return err
	}
	for i, rw := range rows {
		row := []any{rw.nickname, rw.steamID, rw.entry.Name, rw.entry.URL}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeHeader 写首行并套用表头样式。
func writeHeader(f *excelize.File, sheet string, style int, cols []any) error {
	if err := writeRow(f, sheet, 1, cols); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

// writeRow 从 A 列起整行写入。
func writeRow(f *excelize.File, sheet string, row int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
