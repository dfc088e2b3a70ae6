// Package config 提供意图授权网关的配置加载功能
//
// 📋 **配置管理 (Configuration Management)**
//
// 配置来源只有两层：内置默认值 + 可选的YAML配置文件。
// 密钥缓存文件在启动时读取一次，配置同样不支持热加载。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`        // debug | info | warn | error | fatal
	Console    bool   `yaml:"console"`      // 是否输出到控制台
	Filename   string `yaml:"filename"`     // 日志文件路径，为空则不写文件
	MaxSizeMB  int    `yaml:"max_size_mb"`  // 单个日志文件大小上限
	MaxBackups int    `yaml:"max_backups"`  // 保留的旋转文件数量
	MaxAgeDays int    `yaml:"max_age_days"` // 旋转文件保留天数
}

// GateConfig 授权证明网关配置
type GateConfig struct {
	// 证明方案配置
	ProvingScheme string `yaml:"proving_scheme"` // 证明方案（groth16）
	Curve         string `yaml:"curve"`          // 椭圆曲线（bn254 | bls12-381）

	// 密钥生命周期配置
	KeyCachePath         string `yaml:"key_cache_path"`         // 密钥缓存文件路径
	AllowKeyRegeneration bool   `yaml:"allow_key_regeneration"` // 允许在缓存不兼容时重新生成密钥（破坏性操作）

	// 范围证明配置
	MaxBoundedAmount uint64 `yaml:"max_bounded_amount"` // 转账/质押金额上限
}

// Config 应用配置根结构
type Config struct {
	Log  LogConfig  `yaml:"log"`
	Gate GateConfig `yaml:"gate"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:      "info",
		Console:    true,
		Filename:   "",
		MaxSizeMB:  100,
		MaxBackups: 5,
		MaxAgeDays: 30,
	}
}

// DefaultGateConfig 返回默认网关配置
func DefaultGateConfig() *GateConfig {
	return &GateConfig{
		ProvingScheme:        "groth16",
		Curve:                "bn254",
		KeyCachePath:         "authgate_keys.bin",
		AllowKeyRegeneration: false,
		MaxBoundedAmount:     1_000_000_000,
	}
}

// Default 返回完整的默认配置
func Default() *Config {
	return &Config{
		Log:  *DefaultLogConfig(),
		Gate: *DefaultGateConfig(),
	}
}

// Load 加载配置文件
//
// path为空时直接返回默认配置；文件存在时用文件内容覆盖默认值。
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	return cfg, nil
}
