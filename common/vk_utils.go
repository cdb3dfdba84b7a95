package common

import (
	"bytes"
	"encoding/binary"
	"unsafe"

	vm "classroom/vector_math"

	"github.com/pkg/errors"
)

// Provides general helper functions for comparisons and conversions

// IsSubset reports whether every entry of a is contained in b. This is mainly used to check for extension and
// layer support during the initialization process.
func IsSubset(a []string, b []string) bool {
	have := make(map[string]struct{}, len(b))
	for _, s := range b {
		have[s] = struct{}{}
	}
	for _, s := range a {
		if _, ok := have[s]; !ok {
			return false
		}
	}
	return true
}

// RawBytes writes a fixed size value as its little endian byte representation, voiding all type information in
// the process. This is mainly used to be able to put data into vk.Memcopy.
func RawBytes(p any) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, p); err != nil {
		return nil, errors.Wrapf(err, "raw bytes of %T", p)
	}
	return buf.Bytes(), nil
}

// MustRawBytes is RawBytes for types whose layout is known at compile time.
func MustRawBytes(p any) []byte {
	b, err := RawBytes(p)
	if err != nil {
		panic(err)
	}
	return b
}

// ToByteArr drops type reference from float array to allow Go to pass an unsafe.Pointer to Vulkan
func ToByteArr(in []float32) []byte {
	if len(in) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&in[0])), len(in)*4)
}

// MatBytes lays a matrix out column by column, the order GLSL reads a mat4 in.
func MatBytes(m vm.Mat) []byte {
	return ToByteArr(m.ColumnMajor())
}

// TerminatedStr ensures the given string is \x00 terminated as vulkan expects this in certain structs
func TerminatedStr(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\x00' {
		return s + "\x00"
	}
	return s
}

// TerminatedStrs returns a terminated copy of strs. The input is left untouched as it usually is a package level
// list that gets compared against driver reported names later on.
func TerminatedStrs(strs []string) []string {
	out := make([]string, len(strs))
	for i := range strs {
		out[i] = TerminatedStr(strs[i])
	}
	return out
}

// AsUint32Arr reinterprets SPIR-V byte code as the []uint32 vk.ShaderModuleCreateInfo expects. Trailing bytes
// that do not fill a whole word are dropped.
func AsUint32Arr(data []byte) []uint32 {
	if len(data) < 4 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4)
}
