package authgate

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
)

// ==================== 密钥缓存 ====================
//
// 🎯 **设计目标**：
// 可信设置生成的证明密钥和验证密钥持久化到单个文件，进程重启后
// 直接加载，保证历史证明在重启后依然可验证。
//
// 📋 **文件格式（大端序）**：
//   magic[4]="IGKC" | version(u32) | curve(u32) | pkLen(u64) | pk | vkLen(u64) | vk
//
// ⚠️ **兼容性约束**：
// magic、version 或 curve 不匹配一律返回 ErrKeyCacheIncompatible，
// 是否重新生成由上层根据配置决定，缓存层自身从不覆盖旧文件。

const (
	keyCacheMagic   = "IGKC"
	keyCacheVersion = uint32(1)
)

// saveKeyCache 将证明/验证密钥写入缓存文件
//
// 先写临时文件再原子重命名，避免中途崩溃留下半截文件。
func saveKeyCache(path string, curveID ecc.ID, pk groth16.ProvingKey, vk groth16.VerifyingKey) error {
	var pkBuf bytes.Buffer
	if _, err := pk.WriteTo(&pkBuf); err != nil {
		return WrapSerializationError("proving key", err)
	}

	var vkBuf bytes.Buffer
	if _, err := vk.WriteTo(&vkBuf); err != nil {
		return WrapSerializationError("verifying key", err)
	}

	var buf bytes.Buffer
	buf.WriteString(keyCacheMagic)
	if err := binary.Write(&buf, binary.BigEndian, keyCacheVersion); err != nil {
		return WrapSerializationError("key cache version", err)
	}
	if err := binary.Write(&buf, binary.BigEndian, uint32(curveID)); err != nil {
		return WrapSerializationError("key cache curve", err)
	}
	if err := binary.Write(&buf, binary.BigEndian, uint64(pkBuf.Len())); err != nil {
		return WrapSerializationError("proving key length", err)
	}
	buf.Write(pkBuf.Bytes())
	if err := binary.Write(&buf, binary.BigEndian, uint64(vkBuf.Len())); err != nil {
		return WrapSerializationError("verifying key length", err)
	}
	buf.Write(vkBuf.Bytes())

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".authgate_keys_*.tmp")
	if err != nil {
		return WrapSerializationError("key cache temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return WrapSerializationError("key cache write", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return WrapSerializationError("key cache close", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return WrapSerializationError("key cache rename", err)
	}

	return nil
}

// loadKeyCache 从缓存文件加载证明/验证密钥
//
// 格式或曲线不匹配返回 ErrKeyCacheIncompatible。
func loadKeyCache(path string, curveID ecc.ID) (groth16.ProvingKey, groth16.VerifyingKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	buf := bytes.NewReader(data)

	magic := make([]byte, len(keyCacheMagic))
	if _, err := buf.Read(magic); err != nil || string(magic) != keyCacheMagic {
		return nil, nil, WrapKeyCacheIncompatibleError(path, "bad magic")
	}

	var version uint32
	if err := binary.Read(buf, binary.BigEndian, &version); err != nil {
		return nil, nil, WrapKeyCacheIncompatibleError(path, "truncated header")
	}
	if version != keyCacheVersion {
		return nil, nil, WrapKeyCacheIncompatibleError(path, fmt.Sprintf("version %d, want %d", version, keyCacheVersion))
	}

	var cachedCurve uint32
	if err := binary.Read(buf, binary.BigEndian, &cachedCurve); err != nil {
		return nil, nil, WrapKeyCacheIncompatibleError(path, "truncated header")
	}
	if ecc.ID(cachedCurve) != curveID {
		return nil, nil, WrapKeyCacheIncompatibleError(path,
			fmt.Sprintf("curve %s, want %s", ecc.ID(cachedCurve).String(), curveID.String()))
	}

	var pkLen uint64
	if err := binary.Read(buf, binary.BigEndian, &pkLen); err != nil {
		return nil, nil, WrapKeyCacheIncompatibleError(path, "truncated proving key length")
	}
	if pkLen > uint64(buf.Len()) {
		return nil, nil, WrapKeyCacheIncompatibleError(path, "truncated proving key")
	}
	pkBytes := make([]byte, pkLen)
	if _, err := buf.Read(pkBytes); err != nil {
		return nil, nil, WrapKeyCacheIncompatibleError(path, "truncated proving key")
	}

	var vkLen uint64
	if err := binary.Read(buf, binary.BigEndian, &vkLen); err != nil {
		return nil, nil, WrapKeyCacheIncompatibleError(path, "truncated verifying key length")
	}
	if vkLen > uint64(buf.Len()) {
		return nil, nil, WrapKeyCacheIncompatibleError(path, "truncated verifying key")
	}
	vkBytes := make([]byte, vkLen)
	if _, err := buf.Read(vkBytes); err != nil {
		return nil, nil, WrapKeyCacheIncompatibleError(path, "truncated verifying key")
	}

	pk := groth16.NewProvingKey(curveID)
	if _, err := pk.ReadFrom(bytes.NewReader(pkBytes)); err != nil {
		return nil, nil, WrapKeyCacheIncompatibleError(path, fmt.Sprintf("proving key decode: %v", err))
	}

	vk := groth16.NewVerifyingKey(curveID)
	if _, err := vk.ReadFrom(bytes.NewReader(vkBytes)); err != nil {
		return nil, nil, WrapKeyCacheIncompatibleError(path, fmt.Sprintf("verifying key decode: %v", err))
	}

	return pk, vk, nil
}
