package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_DeterministicAndHex(t *testing.T) {
	h1 := Hash("1234")
	h2 := Hash("1234")
	h3 := Hash("0000")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}

func TestGenerateRandByteArray(t *testing.T) {
	size := 32
	data1 := GenerateRandByteArray(size)
	data2 := GenerateRandByteArray(size)
	assert.NotEqual(t, data1, data2)
	assert.Len(t, data1, size)
	assert.Len(t, data2, size)
}

func TestMakeRandHexString(t *testing.T) {
	s, err := MakeRandHexString(16)
	require.NoError(t, err)
	assert.Len(t, s, 32)
}

func TestWipeByteArray(t *testing.T) {
	b := []byte{1, 2, 3}
	WipeByteArray(b)
	assert.Equal(t, []byte{0, 0, 0}, b)

	WipeByteArray(nil) // must not panic
}

func TestDeriveRecordKey_Deterministic(t *testing.T) {
	deviceKey := GenerateRandByteArray(KeySize)
	salt := GenerateRandByteArray(SaltSize)

	k1, err := DeriveRecordKey(deviceKey, salt)
	require.NoError(t, err)
	k2, err := DeriveRecordKey(deviceKey, salt)
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.Len(t, k1, KeySize)

	otherSalt := GenerateRandByteArray(SaltSize)
	k3, err := DeriveRecordKey(deviceKey, otherSalt)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := GenerateRandByteArray(KeySize)
	plaintext := []byte(`{"cigarettesPerDay":12,"quitDate":"2025-03-01"}`)

	ciphertext, tag, nonce, err := Encrypt(key, plaintext)
	require.NoError(t, err)
	assert.Len(t, tag, 16)
	assert.NotEqual(t, plaintext, ciphertext)

	got, err := Decrypt(key, ciphertext, tag, nonce)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecrypt_WrongKeyFails(t *testing.T) {
	key := GenerateRandByteArray(KeySize)
	ciphertext, tag, nonce, err := Encrypt(key, []byte("secret"))
	require.NoError(t, err)

	otherKey := GenerateRandByteArray(KeySize)
	_, err = Decrypt(otherKey, ciphertext, tag, nonce)
	require.Error(t, err)
}

func TestDecrypt_TamperedTagFails(t *testing.T) {
	key := GenerateRandByteArray(KeySize)
	ciphertext, tag, nonce, err := Encrypt(key, []byte("secret"))
	require.NoError(t, err)

	tag[0] ^= 0xff
	_, err = Decrypt(key, ciphertext, tag, nonce)
	require.Error(t, err)
}

func TestDecrypt_BadNonceSize(t *testing.T) {
	key := GenerateRandByteArray(KeySize)
	_, err := Decrypt(key, []byte("ct"), make([]byte, 16), []byte("short"))
	require.ErrorIs(t, err, ErrCiphertextTooShort)
}
