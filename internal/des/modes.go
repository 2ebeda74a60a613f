package des

import (
	"runtime"
	"sync"

	"github.com/Mikastiv/ft-ssl/internal/clierr"
)

// parallelThreshold is the block count below which ECB just runs
// sequentially; splitting tiny inputs across workers only adds
// scheduling overhead.
const parallelThreshold = 256

// BlockSize is the DES/3DES block size in bytes.
const BlockSize = 8

// Mode names a block cipher mode of operation, each wrapping a
// blockCipher identically whether it holds a single DES key or a 3DES
// EDE key (spec.md §4.5).
type Mode int

const (
	ECB Mode = iota
	CBC
	CFB
	OFB
	PCBC
)

func xorBlock(a, b Block) Block {
	var out Block
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// pad appends PKCS#7 padding to data so its length becomes a multiple
// of BlockSize. A full block of padding is appended even when data is
// already block-aligned, so unpad can always find and validate it.
func pad(data []byte) []byte {
	n := BlockSize - len(data)%BlockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// unpad validates and strips PKCS#7 padding. The pad length must be in
// [1, BlockSize] and every padding byte must equal it, or the input is
// rejected as tampered or encrypted under the wrong key.
func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return nil, &clierr.PaddingError{Message: "ciphertext is not block-aligned"}
	}
	n := int(data[len(data)-1])
	if n < 1 || n > BlockSize || n > len(data) {
		return nil, &clierr.PaddingError{Message: "pad length out of range"}
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, &clierr.PaddingError{Message: "inconsistent pad bytes"}
		}
	}
	return data[:len(data)-n], nil
}

func blocksOf(data []byte) []Block {
	out := make([]Block, len(data)/BlockSize)
	for i := range out {
		copy(out[i][:], data[i*BlockSize:(i+1)*BlockSize])
	}
	return out
}

func flatten(blocks []Block) []byte {
	out := make([]byte, len(blocks)*BlockSize)
	for i, b := range blocks {
		copy(out[i*BlockSize:], b[:])
	}
	return out
}

// Encrypt pads plaintext and encrypts it under c in the given mode.
// ECB, CBC, and PCBC require no IV for ECB and exactly BlockSize bytes
// of IV otherwise; CFB and OFB likewise require a BlockSize IV.
func Encrypt(c blockCipher, mode Mode, iv []byte, plaintext []byte) ([]byte, error) {
	if mode != ECB {
		if len(iv) != BlockSize {
			return nil, clierr.ErrBadIVLength
		}
	}

	switch mode {
	case ECB:
		return flatten(encryptECB(c, blocksOf(pad(plaintext)))), nil
	case CBC:
		return flatten(encryptCBC(c, ivBlock(iv), blocksOf(pad(plaintext)))), nil
	case PCBC:
		return flatten(encryptPCBC(c, ivBlock(iv), blocksOf(pad(plaintext)))), nil
	case CFB:
		return flatten(encryptCFB(c, ivBlock(iv), blocksOf(pad(plaintext)))), nil
	case OFB:
		return flatten(encryptOFB(c, ivBlock(iv), blocksOf(pad(plaintext)))), nil
	default:
		return nil, &clierr.AlgorithmError{Name: "unknown mode"}
	}
}

// Decrypt decrypts ciphertext under c in the given mode and strips its
// PKCS#7 padding.
func Decrypt(c blockCipher, mode Mode, iv []byte, ciphertext []byte) ([]byte, error) {
	if mode != ECB {
		if len(iv) != BlockSize {
			return nil, clierr.ErrBadIVLength
		}
	}
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, &clierr.PaddingError{Message: "ciphertext is not block-aligned"}
	}

	blocks := blocksOf(ciphertext)

	var plain []Block
	switch mode {
	case ECB:
		plain = decryptECB(c, blocks)
	case CBC:
		plain = decryptCBC(c, ivBlock(iv), blocks)
	case PCBC:
		plain = decryptPCBC(c, ivBlock(iv), blocks)
	case CFB:
		plain = decryptCFB(c, ivBlock(iv), blocks)
	case OFB:
		plain = decryptOFB(c, ivBlock(iv), blocks)
	default:
		return nil, &clierr.AlgorithmError{Name: "unknown mode"}
	}

	return unpad(flatten(plain))
}

func ivBlock(iv []byte) Block {
	var b Block
	copy(b[:], iv)
	return b
}

// ecbWorkers runs fn over every block of in concurrently across a
// small worker pool: each ECB block is independent of its neighbors
// (unlike CBC/PCBC/CFB/OFB, which chain), so this is the one mode that
// benefits from splitting large inputs across goroutines.
func ecbWorkers(in []Block, fn func(Block) Block) []Block {
	out := make([]Block, len(in))
	if len(in) < parallelThreshold {
		for i, b := range in {
			out[i] = fn(b)
		}
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(in) {
		workers = len(in)
	}
	chunk := (len(in) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(in) {
			break
		}
		end := start + chunk
		if end > len(in) {
			end = len(in)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = fn(in[i])
			}
		}(start, end)
	}
	wg.Wait()
	return out
}

func encryptECB(c blockCipher, in []Block) []Block {
	return ecbWorkers(in, c.EncryptBlock)
}

func decryptECB(c blockCipher, in []Block) []Block {
	return ecbWorkers(in, c.DecryptBlock)
}

// CBC: C_i = E(P_i XOR C_{i-1}), C_0 = IV.
func encryptCBC(c blockCipher, iv Block, in []Block) []Block {
	out := make([]Block, len(in))
	prev := iv
	for i, p := range in {
		out[i] = c.EncryptBlock(xorBlock(p, prev))
		prev = out[i]
	}
	return out
}

func decryptCBC(c blockCipher, iv Block, in []Block) []Block {
	out := make([]Block, len(in))
	prev := iv
	for i, ct := range in {
		out[i] = xorBlock(c.DecryptBlock(ct), prev)
		prev = ct
	}
	return out
}

// PCBC: C_i = E(P_i XOR X_i), X_1 = IV, X_{i+1} = P_i XOR C_i.
// Propagates cipher-text errors into every following block, unlike CBC.
func encryptPCBC(c blockCipher, iv Block, in []Block) []Block {
	out := make([]Block, len(in))
	x := iv
	for i, p := range in {
		out[i] = c.EncryptBlock(xorBlock(p, x))
		x = xorBlock(p, out[i])
	}
	return out
}

func decryptPCBC(c blockCipher, iv Block, in []Block) []Block {
	out := make([]Block, len(in))
	x := iv
	for i, ct := range in {
		out[i] = xorBlock(c.DecryptBlock(ct), x)
		x = xorBlock(out[i], ct)
	}
	return out
}

// CFB (full block feedback): C_i = P_i XOR E(X_i), X_1 = IV, X_{i+1} = C_i.
// Note both directions run the block cipher in encrypt mode on the
// feedback register; only the XOR with plaintext/ciphertext flips.
func encryptCFB(c blockCipher, iv Block, in []Block) []Block {
	out := make([]Block, len(in))
	x := iv
	for i, p := range in {
		out[i] = xorBlock(p, c.EncryptBlock(x))
		x = out[i]
	}
	return out
}

func decryptCFB(c blockCipher, iv Block, in []Block) []Block {
	out := make([]Block, len(in))
	x := iv
	for i, ct := range in {
		out[i] = xorBlock(ct, c.EncryptBlock(x))
		x = ct
	}
	return out
}

// OFB: O_i = E(O_{i-1}), O_0 = IV, C_i = P_i XOR O_i. The keystream
// does not depend on plaintext or ciphertext, so encrypt and decrypt
// are the same operation.
func encryptOFB(c blockCipher, iv Block, in []Block) []Block {
	out := make([]Block, len(in))
	o := iv
	for i, p := range in {
		o = c.EncryptBlock(o)
		out[i] = xorBlock(p, o)
	}
	return out
}

func decryptOFB(c blockCipher, iv Block, in []Block) []Block {
	return encryptOFB(c, iv, in)
}
