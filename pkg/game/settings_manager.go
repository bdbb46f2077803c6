package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 全局游戏设置
// 只保存跨局的用户偏好；单局的游戏状态和动画状态从不持久化
type GameSettings struct {
	// 窗口设置（记住上次关闭时的大小）
	WindowWidth  int  `yaml:"windowWidth"`
	WindowHeight int  `yaml:"windowHeight"`
	Maximized    bool `yaml:"maximized"`

	// 玩法设置
	DrawThree bool `yaml:"drawThree"` // true=每次翻3张

	// 胜利动画风格："classic"（竖直下落+拖影）或 "modern"（抛物线弹跳）
	AnimationStyle string `yaml:"animationStyle"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		WindowWidth:    1024,
		WindowHeight:   768,
		Maximized:      false,
		DrawThree:      false,
		AnimationStyle: "classic",
	}
}

// DrawMode 当前设置对应的抽牌模式
func (s *GameSettings) DrawMode() DrawMode {
	if s.DrawThree {
		return DrawThree
	}
	return DrawOne
}

// SettingsManager 设置管理器
// 通过 gdata 做跨平台持久化，序列化格式为 YAML
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *GameSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// gdataManager 为 nil 时进入降级模式，设置只保存在内存中
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	sm.settings = loaded.sanitized()
	return nil
}

// Save 保存设置到 gdata，降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetSettings 获取当前设置（直接引用，修改后需调用 Save 持久化）
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetWindowSize 记录窗口大小，忽略非法值
func (sm *SettingsManager) SetWindowSize(width, height int, maximized bool) {
	if width > 0 && height > 0 {
		sm.settings.WindowWidth = width
		sm.settings.WindowHeight = height
	}
	sm.settings.Maximized = maximized
}

// SetDrawThree 设置抽牌模式
func (sm *SettingsManager) SetDrawThree(drawThree bool) {
	sm.settings.DrawThree = drawThree
}

// SetAnimationStyle 设置胜利动画风格，非法值回退到 classic
func (sm *SettingsManager) SetAnimationStyle(style string) {
	if style != "classic" && style != "modern" {
		style = "classic"
	}
	sm.settings.AnimationStyle = style
}

// sanitized 修正从存档读出的非法字段
func (s *GameSettings) sanitized() *GameSettings {
	defaults := DefaultSettings()
	if s.WindowWidth <= 0 || s.WindowHeight <= 0 {
		s.WindowWidth = defaults.WindowWidth
		s.WindowHeight = defaults.WindowHeight
	}
	if s.AnimationStyle != "classic" && s.AnimationStyle != "modern" {
		s.AnimationStyle = defaults.AnimationStyle
	}
	return s
}
