package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// newTestGdata 在临时目录里创建 gdata 管理器
func newTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	manager, err := gdata.Open(gdata.Config{
		AppName: "klondike_test",
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试默认设置
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.WindowWidth != 1024 || settings.WindowHeight != 768 {
		t.Errorf("window size: got %dx%d, want 1024x768", settings.WindowWidth, settings.WindowHeight)
	}
	if settings.DrawThree {
		t.Error("DrawThree: got true, want false")
	}
	if settings.AnimationStyle != "classic" {
		t.Errorf("AnimationStyle: got %q, want classic", settings.AnimationStyle)
	}
	if settings.DrawMode() != DrawOne {
		t.Error("DrawMode: got draw3, want draw1")
	}
}

// TestSettingsManager_NilManagerDegrades 测试降级模式
func TestSettingsManager_NilManagerDegrades(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings().WindowWidth != 1024 {
		t.Error("degrade mode did not use defaults")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("degrade mode Save() error: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("degrade mode Load() error: %v", err)
	}
}

// TestSettingsManager_SaveLoadRoundTrip 测试设置持久化往返
func TestSettingsManager_SaveLoadRoundTrip(t *testing.T) {
	manager := newTestGdata(t)

	sm := NewSettingsManager(manager)
	sm.SetWindowSize(1280, 960, true)
	sm.SetDrawThree(true)
	sm.SetAnimationStyle("modern")
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(manager)
	got := sm2.GetSettings()
	if got.WindowWidth != 1280 || got.WindowHeight != 960 {
		t.Errorf("window size: got %dx%d, want 1280x960", got.WindowWidth, got.WindowHeight)
	}
	if !got.Maximized {
		t.Error("Maximized not persisted")
	}
	if !got.DrawThree {
		t.Error("DrawThree not persisted")
	}
	if got.AnimationStyle != "modern" {
		t.Errorf("AnimationStyle: got %q, want modern", got.AnimationStyle)
	}
	if got.DrawMode() != DrawThree {
		t.Error("DrawMode: got draw1, want draw3")
	}
}

// TestSettingsManager_SanitizesInvalid 测试非法字段回退默认值
func TestSettingsManager_SanitizesInvalid(t *testing.T) {
	sm := NewSettingsManager(nil)

	sm.SetWindowSize(-100, 0, false)
	got := sm.GetSettings()
	if got.WindowWidth != 1024 || got.WindowHeight != 768 {
		t.Errorf("invalid window size accepted: %dx%d", got.WindowWidth, got.WindowHeight)
	}

	sm.SetAnimationStyle("sideways")
	if got.AnimationStyle != "classic" {
		t.Errorf("invalid style accepted: %q", got.AnimationStyle)
	}
}

// TestSettingsManager_PartialSaveKeepsDefaults 测试缺失字段保留默认值
func TestSettingsManager_PartialSaveKeepsDefaults(t *testing.T) {
	manager := newTestGdata(t)

	// 手写一份只含窗口宽度的设置
	if err := manager.SaveObjectProp("settings", "global", []byte("windowWidth: 800\nwindowHeight: 600\n")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	sm := NewSettingsManager(manager)
	got := sm.GetSettings()
	if got.WindowWidth != 800 || got.WindowHeight != 600 {
		t.Errorf("window size: got %dx%d, want 800x600", got.WindowWidth, got.WindowHeight)
	}
	if got.AnimationStyle != "classic" {
		t.Errorf("missing style did not default: %q", got.AnimationStyle)
	}
}
