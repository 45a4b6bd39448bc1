package db

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/sat20-labs/emission/common"
)

// State records are encoded with core deterministic CBOR so equal records
// always produce equal bytes.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

func EncodeBytes(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

func DecodeBytes(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

func SetDB(key []byte, value any, kv common.KVDB) error {
	buf, err := EncodeBytes(value)
	if err != nil {
		return err
	}
	return kv.Write(key, buf)
}

func GetDB(key []byte, value any, kv common.KVDB) error {
	buf, err := kv.Read(key)
	if err != nil {
		return err
	}
	return DecodeBytes(buf, value)
}

