package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/felisbattle/pkg/app"
	"github.com/decker502/felisbattle/pkg/config"
	"github.com/decker502/felisbattle/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	configPath  = flag.String("config", config.DefaultCombatConfigPath, "战斗配置文件路径")
	assetRoot   = flag.String("assets", ".", "资源根目录（包含 res/）")
	background  = flag.Int("background", -1, "初始背景 1-8（默认使用保存的设置）")
	startBattle = flag.Bool("battle", false, "启动后立即开始战斗")
	seed        = flag.Int64("seed", 0, "伤害随机数种子（0 表示随机）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	bg := -1
	if *background > 0 {
		bg = *background - 1
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		ConfigPath:  *configPath,
		AssetRoot:   *assetRoot,
		Background:  bg,
		StartBattle: *startBattle,
		Seed:        *seed,
	})
	if err != nil {
		// NewApp 在非 verbose 模式下会丢弃日志，这里直接写 stderr
		log.SetOutput(os.Stderr)
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Felis Battle")

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Printf("[Main] RunGame error: %v", err)
	}

	// 窗口关闭后保存当前场景（设置）
	gameApp.GetSceneManager().SaveCurrentScene()
}
