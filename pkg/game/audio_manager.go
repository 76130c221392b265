package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 统一播放战斗中的技能音效
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 缺失的音效只记录一次日志，之后静默跳过
type AudioManager struct {
	resourceManager *ResourceManager         // 资源管理器（用于加载音频）
	settingsManager *SettingsManager         // 设置管理器（用于读取音量设置，可为 nil）
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（路径 -> 播放器）
	missing         map[string]bool          // 加载失败的音效路径
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
		missing:         make(map[string]bool),
	}
}

// PlaySound 播放音效
// 音效使用 SoundVolume 设置控制音量，单次播放
//
// 参数：
//   - path: 音效文件路径（空字符串表示该技能没有音效）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(path string) bool {
	if path == "" {
		return false
	}

	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(path)
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", path, err)
	}
	player.Play()

	return true
}

// SetSoundVolume 设置音效音量
// 此方法会影响后续播放的所有音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}

	for _, player := range am.soundPlayers {
		player.SetVolume(clampVolume(volume))
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}

// PreloadSounds 预加载音效
// 在战斗开始前调用，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds(paths []string) {
	loaded := 0
	for _, p := range paths {
		if p != "" && am.getSoundPlayer(p) != nil {
			loaded++
		}
	}
	log.Printf("[AudioManager] Preloaded %d/%d sounds", loaded, len(paths))
}

// getSoundPlayer 获取或加载音效播放器
func (am *AudioManager) getSoundPlayer(path string) *audio.Player {
	if player, exists := am.soundPlayers[path]; exists {
		return player
	}
	if am.missing[path] {
		return nil
	}

	player, err := am.resourceManager.LoadSoundEffect(path)
	if err != nil {
		log.Printf("[AudioManager] Warning: %v (sound disabled)", err)
		am.missing[path] = true
		return nil
	}

	am.soundPlayers[path] = player
	return player
}
