// Package hdpath 处理签名设备使用的 BIP-44 派生路径，以及本地 accountId -> path 映射
package hdpath

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"

	"wallet-keystone/pkg/cache"
	"wallet-keystone/pkg/errno"
)

// DefaultPrefix NEAR 账户在签名设备上的路径前缀，最后一级 index 由用户选择
const DefaultPrefix = "44'/397'/0'/0'/"

// Build 拼出 prefix + index' (最后一级固定为 hardened)
func Build(prefix string, index uint32) string {
	return prefix + strconv.FormatUint(uint64(index), 10) + "'"
}

// Validate 校验派生路径格式。设备使用不带 "m/" 的写法，两种都接受。
func Validate(path string) error {
	if strings.TrimSpace(path) == "" {
		return errno.ErrInvalidPath.WithMessage("derivation path is empty")
	}
	// ParseDerivationPath 会把相对路径拼到以太坊默认前缀上，这里强制按绝对路径解析
	abs := path
	if !strings.HasPrefix(abs, "m/") {
		abs = "m/" + abs
	}
	if _, err := accounts.ParseDerivationPath(abs); err != nil {
		return errno.ErrInvalidPath.WithMessage(fmt.Sprintf("invalid derivation path %q: %v", path, err))
	}
	return nil
}

func storeKey(accountID string) string {
	return "keystone:hd_path:" + accountID
}

// Store 本地 accountId -> 派生路径 映射
type Store struct {
	cache cache.Cache
}

func NewStore(c cache.Cache) *Store {
	return &Store{cache: c}
}

// SetDerivationPath 记录账户使用的派生路径，永不过期
func (s *Store) SetDerivationPath(ctx context.Context, accountID, path string) error {
	if err := s.cache.Set(ctx, storeKey(accountID), path, 0); err != nil {
		return fmt.Errorf("save derivation path for %s: %w", accountID, errno.ErrPersistence.WithMessage(err.Error()))
	}
	return nil
}

// GetDerivationPath 未记录过的账户返回 errno.ErrAccountNotFound
func (s *Store) GetDerivationPath(ctx context.Context, accountID string) (string, error) {
	var path string
	if err := s.cache.Get(ctx, storeKey(accountID), &path); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return "", errno.ErrAccountNotFound
		}
		return "", errno.ErrPersistence.WithMessage(err.Error())
	}
	return path, nil
}
