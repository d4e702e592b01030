package types

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// Signer 表示一个能对交易消息签名的主体（本地密钥对或外部钱包）。
// 实现方只需返回公钥并对序列化后的 message 产生 ed25519 签名。
type Signer interface {
	PublicKey() Pubkey
	SignMessage(msg []byte) ([]byte, error)
}

// KeypairSigner 基于本地 ed25519 私钥的 Signer 实现
type KeypairSigner struct {
	pub  Pubkey
	priv ed25519.PrivateKey
}

func NewKeypairSigner(priv ed25519.PrivateKey) (*KeypairSigner, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid ed25519 private key length: %d", len(priv))
	}
	var pub Pubkey
	copy(pub[:], priv.Public().(ed25519.PublicKey))
	return &KeypairSigner{pub: pub, priv: priv}, nil
}

// KeypairSignerFromBase58 解析 base58 编码的 64 字节私钥
func KeypairSignerFromBase58(s string) (*KeypairSigner, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base58 private key: %w", err)
	}
	return NewKeypairSigner(ed25519.PrivateKey(raw))
}

func (s *KeypairSigner) PublicKey() Pubkey {
	return s.pub
}

func (s *KeypairSigner) SignMessage(msg []byte) ([]byte, error) {
	return ed25519.Sign(s.priv, msg), nil
}
