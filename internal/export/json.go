package export

import (
	"encoding/json"
	"fmt"
	"os"

	"go-steam-export/internal/model"
	"go-steam-export/internal/stats"
)

// ToJSON 将整批记录连同统计写为带缩进的 JSON 文件。
func ToJSON(records []model.Record, path string) error {
	out := model.Export{Stats: stats.Summarize(records), Profiles: records}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json to %s: %w", path, err)
	}
	return nil
}
