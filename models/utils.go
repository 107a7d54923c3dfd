package models

import (
	"bytes"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/decred/base58"
	subkey "github.com/vedhavyas/go-subkey"
	"golang.org/x/crypto/blake2b"
)

// SubstrateSS58Prefix is the generic substrate address format
const SubstrateSS58Prefix uint8 = 42

var ss58Prefix = []byte("SS58PRE")

func SS58Address(addr []byte, network uint8) (string, error) {
	return subkey.SS58Address(addr, network)
}

func SS58Addr(addr []byte) (out string) {
	out, _ = subkey.SS58Address(addr, SubstrateSS58Prefix)
	return
}

// DecodeSS58Address returns the account id of a single byte prefix SS58 address,
// after checking its checksum.
func DecodeSS58Address(ss58addr string) (types.AccountID, error) {
	decoded := base58.Decode(ss58addr)
	if len(decoded) != 35 {
		return types.AccountID{}, fmt.Errorf("ss58 address %q: unexpected length %d", ss58addr, len(decoded))
	}
	if decoded[0] >= 64 {
		return types.AccountID{}, fmt.Errorf("ss58 address %q: two byte prefixes are not supported", ss58addr)
	}

	body := decoded[:len(decoded)-2]
	hash := blake2b.Sum512(append(append([]byte{}, ss58Prefix...), body...))
	if !bytes.Equal(hash[:2], decoded[len(decoded)-2:]) {
		return types.AccountID{}, fmt.Errorf("ss58 address %q: bad checksum", ss58addr)
	}
	return types.NewAccountID(body[1:]), nil
}
