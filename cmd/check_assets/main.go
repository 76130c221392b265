// check_assets 检查战斗配置引用的所有资源文件
//
// 用法：
//
//	go run ./cmd/check_assets -assets . -config data/combat.yaml
//
// 每个路径输出一行 OK / MISSING / BROKEN，存在缺失或损坏的文件时退出码为 1。
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/decker502/felisbattle/pkg/config"
	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"golang.org/x/image/font/opentype"
)

var (
	assetRoot  = flag.String("assets", ".", "资源根目录（包含 res/）")
	configPath = flag.String("config", config.DefaultCombatConfigPath, "战斗配置文件路径")
	quiet      = flag.Bool("quiet", false, "只输出有问题的文件")
)

// assetStatus 单个资源的检查结果
type assetStatus string

const (
	statusOK      assetStatus = "OK"
	statusMissing assetStatus = "MISSING"
	statusBroken  assetStatus = "BROKEN"
)

func main() {
	flag.Parse()

	cfg, err := config.LoadCombatConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	paths := cfg.AllAssetPaths()
	counts := make(map[assetStatus]int)
	for _, p := range paths {
		status, detail := checkAsset(filepath.Join(*assetRoot, filepath.FromSlash(p)))
		counts[status]++
		if *quiet && status == statusOK {
			continue
		}
		if detail != "" {
			fmt.Printf("%-7s %s (%s)\n", status, p, detail)
		} else {
			fmt.Printf("%-7s %s\n", status, p)
		}
	}

	fmt.Printf("\n%d assets: %d ok, %d missing, %d broken\n",
		len(paths), counts[statusOK], counts[statusMissing], counts[statusBroken])

	if counts[statusMissing] > 0 || counts[statusBroken] > 0 {
		os.Exit(1)
	}
}

// checkAsset 检查文件是否存在并能按扩展名解码
func checkAsset(path string) (assetStatus, string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return statusMissing, ""
		}
		return statusBroken, err.Error()
	}

	if err := decodeAsset(path, data); err != nil {
		return statusBroken, err.Error()
	}
	return statusOK, ""
}

func decodeAsset(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp":
		_, err := imaging.Decode(bytes.NewReader(data))
		return err
	case ".ttf", ".otf":
		_, err := opentype.Parse(data)
		return err
	case ".ogg":
		return drain(vorbis.DecodeWithoutResampling(bytes.NewReader(data)))
	case ".mp3":
		return drain(mp3.DecodeWithoutResampling(bytes.NewReader(data)))
	case ".wav":
		return drain(wav.DecodeWithoutResampling(bytes.NewReader(data)))
	default:
		return nil
	}
}

// drain 读取前 4KB 解码数据，确认流可用
func drain(stream io.Reader, err error) error {
	if err != nil {
		return err
	}
	_, err = io.CopyN(io.Discard, stream, 4096)
	if err == io.EOF {
		return nil
	}
	return err
}
