package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"sync"

	cryptointf "github.com/intentgate/v1/pkg/interfaces/infrastructure/crypto"
	"golang.org/x/crypto/sha3"
)

// 确保HashService实现了cryptointf.HashManager接口
var _ cryptointf.HashManager = (*HashService)(nil)

// HashCache 简单的哈希缓存结构
type HashCache struct {
	cache map[string][]byte
	mu    sync.RWMutex
}

// NewHashCache 创建新的哈希缓存
func NewHashCache() *HashCache {
	return &HashCache{
		cache: make(map[string][]byte),
	}
}

// Get 从缓存获取哈希值
func (c *HashCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.cache[key]
	if ok {
		result := make([]byte, len(value))
		copy(result, value) // 返回副本而非引用
		return result, true
	}
	return nil, false
}

// Set 设置缓存中的哈希值
func (c *HashCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value) // 存储副本而非引用
	c.cache[key] = valueCopy
}

// HashService 提供哈希计算功能
//
// 🎯 **专门职责**：承诺方案、查询签名和密钥指纹的统一哈希来源
type HashService struct {
	// 缓存最近的哈希结果，避免重复计算
	sha256Cache       *HashCache
	doubleSHA256Cache *HashCache
}

// NewHashService 创建新的哈希服务
func NewHashService() *HashService {
	return &HashService{
		sha256Cache:       NewHashCache(),
		doubleSHA256Cache: NewHashCache(),
	}
}

// cacheKey 根据数据生成缓存键
//
// 使用SHA256哈希作为缓存键，确保唯一性，避免因数据截断导致的冲突。
func cacheKey(data []byte) string {
	sum := sha256.Sum256(data)
	return string(sum[:])
}

// SHA256 计算SHA-256哈希
func (s *HashService) SHA256(data []byte) []byte {
	key := cacheKey(data)
	if cached, ok := s.sha256Cache.Get(key); ok {
		return cached
	}

	sum := sha256.Sum256(data)
	s.sha256Cache.Set(key, sum[:])

	result := make([]byte, len(sum))
	copy(result, sum[:])
	return result
}

// DoubleSHA256 计算双重SHA-256哈希
func (s *HashService) DoubleSHA256(data []byte) []byte {
	key := cacheKey(data)
	if cached, ok := s.doubleSHA256Cache.Get(key); ok {
		return cached
	}

	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	s.doubleSHA256Cache.Set(key, second[:])

	result := make([]byte, len(second))
	copy(result, second[:])
	return result
}

// Keccak256 计算Keccak-256哈希
func (s *HashService) Keccak256(data []byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	return hasher.Sum(nil)
}

// ConstantTimeEqual 常量时间比较两个哈希值
func (s *HashService) ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
