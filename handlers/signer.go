package handlers

import (
	"github.com/centrifuge/go-substrate-rpc-client/v2/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// Signer produces sr25519 signatures for one key
type Signer interface {
	PublicKey() []byte
	Sign(msg []byte) ([]byte, error)
}

// KeyringSigner signs with a key derived from a seed, mnemonic or dev URI (e.g. "//Alice")
type KeyringSigner struct {
	pair signature.KeyringPair
}

func NewKeyringSigner(seed string, network uint8) (*KeyringSigner, error) {
	pair, err := signature.KeyringPairFromSecret(seed, network)
	if err != nil {
		return nil, err
	}
	return &KeyringSigner{pair: pair}, nil
}

func (k *KeyringSigner) PublicKey() []byte {
	return k.pair.PublicKey
}

func (k *KeyringSigner) AccountID() types.AccountID {
	return types.NewAccountID(k.pair.PublicKey)
}

// Address is the SS58 address of the key
func (k *KeyringSigner) Address() string {
	return k.pair.Address
}

func (k *KeyringSigner) Sign(msg []byte) ([]byte, error) {
	return signature.Sign(msg, k.pair.URI)
}
