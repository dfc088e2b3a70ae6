package authgate

// Config 授权证明系统配置
//
// 📋 **配置项说明**：
//   - ProvingScheme: 证明方案名称，当前仅支持 groth16
//   - Curve: 椭圆曲线名称，支持 bn254 和 bls12-381
//   - KeyCachePath: 证明/验证密钥缓存文件路径
//   - AllowKeyRegeneration: 缓存不兼容时是否允许重新生成密钥，
//     重新生成会使所有历史证明失效，默认关闭
//   - MaxBoundedAmount: 范围证明允许的全局金额上限
type Config struct {
	ProvingScheme        string
	Curve                string
	KeyCachePath         string
	AllowKeyRegeneration bool
	MaxBoundedAmount     uint64
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		ProvingScheme:        "groth16",
		Curve:                "bn254",
		KeyCachePath:         "authgate_keys.bin",
		AllowKeyRegeneration: false,
		MaxBoundedAmount:     1_000_000_000,
	}
}
