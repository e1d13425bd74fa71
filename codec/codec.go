/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2017 Markus Stenberg
 *
 * Created:       Sun Dec 24 16:42:12 2017 mstenber
 * Last modified: Thu Oct 15 11:20:37 2026 mstenber
 * Edit time:     112 min
 *
 */

// codec library is responsible for transforming data + additionalData
// to different kind of data. This means in practise either
// encrypting/decrypting, authenticating, or compressing/uncompressing
// on case-by-case basis. Snapshots of stacks go through it before
// they hit storage.
//
// CodecChain makes it possible to combine multiple Codecs that do the
// particular sub-EncodeBytes/DecodeBytes steps.
package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"log"

	"github.com/golang/snappy"
	"github.com/jacobsa/crypto/cmac"
	"github.com/minio/sha256-simd"
	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

var ErrAuthentication = errors.New("codec: authentication failed")

// Codec
//
// Single transformation of byte slices. Implementations must be safe
// for concurrent use.
type Codec interface {
	DecodeBytes(data, additionalData []byte) (ret []byte, err error)
	EncodeBytes(data, additionalData []byte) (ret []byte, err error)
}

const DefaultIterations = 12345

func deriveKey(password, salt []byte, iter int) []byte {
	if iter <= 0 {
		iter = DefaultIterations
	}
	return pbkdf2.Key(password, salt, iter, 32, sha256.New)
}

// EncryptingCodec
//
// AES GCM based encrypting/decrypting (+authenticating) Codec.
type EncryptingCodec struct {
	gcm cipher.AEAD
}

func (self EncryptingCodec) Init(password, salt []byte, iter int) *EncryptingCodec {
	block, err := aes.NewCipher(deriveKey(password, salt, iter))
	if err != nil {
		log.Panic(err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		log.Panic(err)
	}
	self.gcm = gcm
	return &self
}

func (self *EncryptingCodec) DecodeBytes(data, additionalData []byte) (ret []byte, err error) {
	var ed EncryptedData
	if err = Unmarshal(data, &ed); err != nil {
		return
	}
	ret, err = self.gcm.Open(nil, ed.Nonce, ed.EncryptedData, additionalData)
	if err != nil {
		err = errors.Wrap(ErrAuthentication, err.Error())
	}
	return
}

func (self *EncryptingCodec) EncodeBytes(data, additionalData []byte) (ret []byte, err error) {
	nonce := make([]byte, self.gcm.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return
	}
	ciphertext := self.gcm.Seal(nil, nonce, data, additionalData)
	return Marshal(&EncryptedData{Nonce: nonce, EncryptedData: ciphertext})
}

// AuthenticatingCodec
//
// AES-CMAC tag over data and additional data, without encryption.
// Useful when the content is not secret but must not be tampered
// with (or restored under a different name).
type AuthenticatingCodec struct {
	key []byte
}

func (self AuthenticatingCodec) Init(password, salt []byte, iter int) *AuthenticatingCodec {
	self.key = deriveKey(password, salt, iter)
	return &self
}

func (self *AuthenticatingCodec) tag(data, additionalData []byte) ([]byte, error) {
	// cmac hashes are stateful, so one per call
	h, err := cmac.New(self.key)
	if err != nil {
		return nil, err
	}
	var l [8]byte
	binary.BigEndian.PutUint64(l[:], uint64(len(data)))
	h.Write(l[:])
	h.Write(data)
	h.Write(additionalData)
	return h.Sum(nil), nil
}

func (self *AuthenticatingCodec) DecodeBytes(data, additionalData []byte) (ret []byte, err error) {
	var ad AuthenticatedData
	if err = Unmarshal(data, &ad); err != nil {
		return
	}
	tag, err := self.tag(ad.Data, additionalData)
	if err != nil {
		return
	}
	if subtle.ConstantTimeCompare(tag, ad.Tag) != 1 {
		err = ErrAuthentication
		return
	}
	ret = ad.Data
	return
}

func (self *AuthenticatingCodec) EncodeBytes(data, additionalData []byte) (ret []byte, err error) {
	tag, err := self.tag(data, additionalData)
	if err != nil {
		return
	}
	return Marshal(&AuthenticatedData{Tag: tag, Data: data})
}

// CompressingCodec
//
// On-the-fly compressing Codec. If the result does not improve, the
// result is marked to be plaintext and passed as-is.
type CompressingCodec struct {
}

func (self *CompressingCodec) DecodeBytes(data, additionalData []byte) (ret []byte, err error) {
	var cd CompressedData
	if err = Unmarshal(data, &cd); err != nil {
		return
	}
	switch cd.CompressionType {
	case CompressionType_PLAIN:
		ret = cd.RawData
	case CompressionType_SNAPPY:
		ret, err = snappy.Decode(nil, cd.RawData)
		if err != nil {
			err = errors.Wrap(err, "snappy.Decode")
		}
	default:
		err = errors.Errorf("codec: unknown compression type %d", cd.CompressionType)
	}
	return
}

func (self *CompressingCodec) EncodeBytes(data, additionalData []byte) (ret []byte, err error) {
	cd := CompressedData{CompressionType: CompressionType_SNAPPY,
		RawData: snappy.Encode(nil, data)}
	if len(cd.RawData) >= len(data) {
		cd.CompressionType = CompressionType_PLAIN
		cd.RawData = data
	}
	return Marshal(&cd)
}

type CodecChain struct {
	codecs, reverseCodecs []Codec
}

var _ Codec = &CodecChain{}

// Init method initializes the codec chain.
//
// codecs are given in decryption order, so e.g.
// encrypting one should be given before compressing one.
func (self CodecChain) Init(codecs ...Codec) *CodecChain {
	self.codecs = codecs
	// Reverse the codec slice for encryption purposes
	rc := make([]Codec, len(codecs))
	for i, c := range codecs {
		rc[len(codecs)-i-1] = c
	}
	self.reverseCodecs = rc
	return &self
}

func (self *CodecChain) DecodeBytes(data, additionalData []byte) (ret []byte, err error) {
	ret = data
	for _, c := range self.codecs {
		ret, err = c.DecodeBytes(ret, additionalData)
		if err != nil {
			return
		}
	}
	return
}

func (self *CodecChain) EncodeBytes(data, additionalData []byte) (ret []byte, err error) {
	ret = data
	for _, c := range self.reverseCodecs {
		ret, err = c.EncodeBytes(ret, additionalData)
		if err != nil {
			return
		}
	}
	return
}
