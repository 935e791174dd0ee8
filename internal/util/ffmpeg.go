package util

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// MediaInfo 活动媒体文件信息
type MediaInfo struct {
	Duration float64 `json:"duration"` // 时长（秒）
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Format   string  `json:"format"`
	Size     int64   `json:"size"`
}

// ProbeMedia 使用 ffmpeg-go 探测媒体文件信息
// 目录导入时如果活动没有标注 typicalLearningTime，用探测到的视频时长兜底
func ProbeMedia(mediaPath string) (*MediaInfo, error) {
	fileInfo, err := os.Stat(mediaPath)
	if err != nil {
		return nil, fmt.Errorf("媒体文件不存在: %v", err)
	}

	jsonOutput, err := ffmpeg.Probe(mediaPath)
	if err != nil {
		return nil, fmt.Errorf("获取媒体信息失败: %v", err)
	}

	var result struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
			Size     string `json:"size"`
			Format   string `json:"format_name"`
		} `json:"format"`
	}

	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		return nil, fmt.Errorf("解析媒体信息失败: %v", err)
	}

	var width, height int
	for _, stream := range result.Streams {
		if stream.CodecType == "video" {
			width = stream.Width
			height = stream.Height
			break
		}
	}

	duration, _ := strconv.ParseFloat(result.Format.Duration, 64)

	return &MediaInfo{
		Duration: duration,
		Width:    width,
		Height:   height,
		Format:   result.Format.Format,
		Size:     fileInfo.Size(),
	}, nil
}

// EstimatedMinutes 把媒体时长换算成分钟数（向上取整，至少 1 分钟）
func (m *MediaInfo) EstimatedMinutes() int {
	if m.Duration <= 0 {
		return 0
	}
	minutes := int(math.Ceil(m.Duration / 60))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ISODuration 把媒体时长格式化成 ISO8601 时长串（PT[n]H[n]M[n]S）
func (m *MediaInfo) ISODuration() string {
	total := int(math.Round(m.Duration))
	if total <= 0 {
		return ""
	}
	h := total / 3600
	mm := (total % 3600) / 60
	s := total % 60

	out := "PT"
	if h > 0 {
		out += fmt.Sprintf("%dH", h)
	}
	if mm > 0 {
		out += fmt.Sprintf("%dM", mm)
	}
	if s > 0 || (h == 0 && mm == 0) {
		out += fmt.Sprintf("%dS", s)
	}
	return out
}
