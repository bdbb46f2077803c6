package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// AnimationConfig 胜利动画物理调参
//
// 两种动画风格共用同一份配置文件：
//   - classic: 竖直下落 + 地板弹跳衰减 + 拖影烘焙
//   - modern: 抛物线抛出 + 墙壁/地板反弹
//
// 配置文件位置: assets/config/victory_animation.yaml
// 文件缺失或字段缺失时使用内置默认值，保证可独立运行。
type AnimationConfig struct {
	// EmitInterval 相邻两张卡牌的发射间隔（秒）
	EmitInterval float64 `yaml:"emitInterval"`

	// FixedDT 物理固定步长（秒），发射与积分都按该步长推进
	FixedDT float64 `yaml:"fixedDT"`

	// MaxFrameDelta 单帧最大真实时间增量（秒），宿主卡顿后恢复时
	// 超出部分直接丢弃，避免一次补算过多物理步
	MaxFrameDelta float64 `yaml:"maxFrameDelta"`

	// MaxCatchUpSteps 单次 Tick 最多补算的物理步数
	MaxCatchUpSteps int `yaml:"maxCatchUpSteps"`

	// Gravity 重力加速度（像素/秒²）
	Gravity float64 `yaml:"gravity"`

	// FloorDamping 地板反弹的速度保留系数 (0,1)
	FloorDamping float64 `yaml:"floorDamping"`

	// WallDamping 墙壁反弹的速度保留系数 (0,1)，仅 modern 风格使用
	WallDamping float64 `yaml:"wallDamping"`

	// SettleVelocity 竖直速度低于该值且贴地时判定为静止（像素/秒）
	SettleVelocity float64 `yaml:"settleVelocity"`

	// ExitBounces modern 风格下卡牌至少弹跳该次数后才允许退场
	ExitBounces int `yaml:"exitBounces"`

	// ThrowHorizontal modern 风格的基础水平初速度（像素/秒）
	ThrowHorizontal float64 `yaml:"throwHorizontal"`

	// ThrowVertical modern 风格的基础竖直初速度（像素/秒，负值向上）
	ThrowVertical float64 `yaml:"throwVertical"`

	// HorizontalDrag modern 风格每个物理步的水平速度保留系数
	HorizontalDrag float64 `yaml:"horizontalDrag"`
}

// DefaultAnimationConfig 返回内置默认配置
func DefaultAnimationConfig() *AnimationConfig {
	return &AnimationConfig{
		EmitInterval:    0.16,
		FixedDT:         0.02,
		MaxFrameDelta:   0.1,
		MaxCatchUpSteps: 8,
		Gravity:         3000.0,
		FloorDamping:    0.78,
		WallDamping:     0.82,
		SettleVelocity:  120.0,
		ExitBounces:     8,
		ThrowHorizontal: 760.0,
		ThrowVertical:   -1050.0,
		HorizontalDrag:  0.996,
	}
}

// LoadAnimationConfig 加载动画配置
//
// 先尝试工作目录，再尝试嵌入资源，都不存在时返回默认配置（不报错）。
// 文件存在但解析失败或数值非法时返回错误。
func LoadAnimationConfig(assets fs.FS, path string) (*AnimationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil && assets != nil {
		data, err = fs.ReadFile(assets, path)
	}
	if err != nil {
		return DefaultAnimationConfig(), nil
	}

	// 字段缺失时保留默认值
	config := DefaultAnimationConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse animation config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid animation config: %w", err)
	}
	return config, nil
}

// Validate 验证配置有效性
func (c *AnimationConfig) Validate() error {
	if c.FixedDT <= 0 {
		return fmt.Errorf("fixedDT must be positive, got %v", c.FixedDT)
	}
	if c.EmitInterval <= 0 {
		return fmt.Errorf("emitInterval must be positive, got %v", c.EmitInterval)
	}
	if c.MaxFrameDelta < c.FixedDT {
		return fmt.Errorf("maxFrameDelta(%v) must be >= fixedDT(%v)", c.MaxFrameDelta, c.FixedDT)
	}
	if c.MaxCatchUpSteps < 1 {
		return fmt.Errorf("maxCatchUpSteps must be >= 1, got %d", c.MaxCatchUpSteps)
	}
	if c.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %v", c.Gravity)
	}
	if c.FloorDamping <= 0 || c.FloorDamping >= 1 {
		return fmt.Errorf("floorDamping must be in (0,1), got %v", c.FloorDamping)
	}
	if c.WallDamping <= 0 || c.WallDamping >= 1 {
		return fmt.Errorf("wallDamping must be in (0,1), got %v", c.WallDamping)
	}
	if c.SettleVelocity <= 0 {
		return fmt.Errorf("settleVelocity must be positive, got %v", c.SettleVelocity)
	}
	return nil
}
