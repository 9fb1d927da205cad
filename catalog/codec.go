// Package catalog implements the tzdb catalog stream: a versioned,
// deduplicated binary encoding of compiled ZoneRules for N tzdata versions
// and M region ids. The wire format is bespoke (not RFC 8536 TZif) and
// bit-exact; see the variable-width encodings in this file for the packed
// offset and epoch-second forms downstream readers depend on.
package catalog

import (
	"encoding/binary"
	"fmt"
	"io"
)

var order = binary.BigEndian

const formatVersion = 1

const magic = "TZDB"

// writeUTF writes a length-prefixed (2-byte BE length) UTF-8 string.
func writeUTF(w io.Writer, s string) error {
	if len(s) > 1<<16-1 {
		return fmt.Errorf("catalog: string %q exceeds 65535 bytes", s)
	}
	if err := binary.Write(w, order, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// readUTF reads a length-prefixed UTF-8 string.
func readUTF(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, order, &n); err != nil {
		return "", fmt.Errorf("catalog: read utf length: %w", err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("catalog: read utf bytes: %w", err)
	}
	return string(buf), nil
}

// writeOffsetPacked writes a UTC offset in the offset-packed encoding: one
// byte when the offset is a whole multiple of 15 minutes and fits a signed
// byte, else a sentinel byte followed by a signed 32-bit value.
func writeOffsetPacked(w io.Writer, secs int) error {
	if secs%900 == 0 {
		q := secs / 900
		if q >= -128 && q <= 126 {
			return binary.Write(w, order, int8(q))
		}
	}
	if err := binary.Write(w, order, int8(0x7F)); err != nil {
		return err
	}
	return binary.Write(w, order, int32(secs))
}

// readOffsetPacked reads one offset-packed value.
func readOffsetPacked(r io.Reader) (int, error) {
	var b int8
	if err := binary.Read(r, order, &b); err != nil {
		return 0, fmt.Errorf("catalog: read offset tag: %w", err)
	}
	if b != 0x7F {
		return int(b) * 900, nil
	}
	var v int32
	if err := binary.Read(r, order, &v); err != nil {
		return 0, fmt.Errorf("catalog: read wide offset: %w", err)
	}
	return int(v), nil
}

const (
	epochPackedMin   int64 = -4575744000
	epochPackedBound int64 = 10413792000
)

// writeEpochPacked writes an epoch-second instant in the epochSec-packed
// encoding: 24 unsigned bits (three bytes) of quarter-hour count when the
// instant falls in the packable range and lands on a quarter-hour boundary,
// else a 0xFF sentinel byte followed by a signed 64-bit value.
func writeEpochPacked(w io.Writer, secs int64) error {
	if secs >= epochPackedMin && secs < epochPackedBound && secs%900 == 0 {
		n := uint32((secs - epochPackedMin) / 900)
		hi := byte(n >> 16)
		if hi != 0xFF {
			buf := []byte{hi, byte(n >> 8), byte(n)}
			_, err := w.Write(buf)
			return err
		}
	}
	if _, err := w.Write([]byte{0xFF}); err != nil {
		return err
	}
	return binary.Write(w, order, secs)
}

// readEpochPacked reads one epochSec-packed value.
func readEpochPacked(r io.Reader) (int64, error) {
	buf := make([]byte, 1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, fmt.Errorf("catalog: read epoch tag: %w", err)
	}
	if buf[0] != 0xFF {
		rest := make([]byte, 2)
		if _, err := io.ReadFull(r, rest); err != nil {
			return 0, fmt.Errorf("catalog: read packed epoch: %w", err)
		}
		n := int64(buf[0])<<16 | int64(rest[0])<<8 | int64(rest[1])
		return epochPackedMin + n*900, nil
	}
	var v int64
	if err := binary.Read(r, order, &v); err != nil {
		return 0, fmt.Errorf("catalog: read wide epoch: %w", err)
	}
	return v, nil
}
