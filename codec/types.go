/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2017 Markus Stenberg
 *
 * Created:       Sun Dec 24 16:42:58 2017 mstenber
 * Last modified: Thu Oct 15 10:41:12 2026 mstenber
 * Edit time:     19 min
 *
 */

package codec

import (
	"github.com/pkg/errors"
	ucodec "github.com/ugorji/go/codec"
)

/////////////////////////////////////////////////////////////////////////////

// Codec layer envelopes

// This is responsible for hiding (and compressing) bytes in plain
// sight, so to speak. Envelopes are CBOR arrays.

type EncryptedData struct {
	_struct struct{} `codec:",toarray"`

	// nonce used for AES GCM
	Nonce []byte

	// EncryptedData is AES GCM encrypted payload
	EncryptedData []byte
}

type AuthenticatedData struct {
	_struct struct{} `codec:",toarray"`

	// Tag is AES-CMAC of the length of Data, Data, and additional data
	Tag []byte

	Data []byte
}

type CompressionType byte

const (
	CompressionType_UNSET CompressionType = iota

	// The data has not been compressed.
	CompressionType_PLAIN

	// The data is compressed with Snappy.
	CompressionType_SNAPPY
)

type CompressedData struct {
	_struct struct{} `codec:",toarray"`

	// CompressionType describes how the data has been compressed.
	CompressionType CompressionType

	// RawData is the raw data of the client (whatever it is)
	RawData []byte
}

var cborHandle ucodec.CborHandle

// Marshal CBOR-encodes v. Exported for the snapshot records, which
// share the handle.
func Marshal(v interface{}) (ret []byte, err error) {
	err = ucodec.NewEncoderBytes(&ret, &cborHandle).Encode(v)
	if err != nil {
		err = errors.Wrap(err, "cbor encode")
	}
	return
}

// Unmarshal decodes CBOR data into v (which must be a pointer).
func Unmarshal(data []byte, v interface{}) error {
	err := ucodec.NewDecoderBytes(data, &cborHandle).Decode(v)
	if err != nil {
		return errors.Wrap(err, "cbor decode")
	}
	return nil
}
