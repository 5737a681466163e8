// Package lds implements the Logical Data Structure file reader and
// the decoders for the files an orchestrator pulls off the chip:
// EF.COM, EF.DG14, EF.SOD, and the generic Data Group envelope.
package lds

import (
	"github.com/pkg/errors"
	"github.com/skythen/apdu"
	"github.com/skythen/emrtd/apducat"
)

// DefaultChunkSize is the READ BINARY fragment size ReadFile uses
// when the caller doesn't override it via ReadFileChunked.
// fallbackChunkSize is the conservative size every eMRTD chip is
// guaranteed to accept, used once a chip signals "wrong length".
const (
	DefaultChunkSize  = 160
	fallbackChunkSize = 160
)

// Transmitter sends a single command APDU (already wrapped in Secure
// Messaging by the caller, if a secure channel is active) and
// returns the response.
type Transmitter interface {
	Transmit(capdu apdu.Capdu) (apdu.Rapdu, error)
}

// CommandError reports a non-success status word from a file-read
// command. The orchestrator classifies SW1/SW2 against apducat's
// status taxonomy to decide whether a Data Group read is worth
// retrying or should be skipped.
type CommandError struct {
	Command  string
	SW1, SW2 byte
}

func (e *CommandError) Error() string {
	return errors.Errorf("lds: %s failed with %02X%02X", e.Command, e.SW1, e.SW2).Error()
}

// SelectMasterFile and SelectApplication thinly forward to apducat so
// callers of this package don't need a second import for the two
// SELECT variants the orchestrator issues directly.
func SelectMasterFile(t Transmitter) error {
	resp, err := t.Transmit(apducat.SelectMasterFile())
	if err != nil {
		return errors.Wrap(err, "SELECT master file")
	}
	if !resp.IsSuccess() {
		return &CommandError{Command: "SELECT master file", SW1: resp.SW1, SW2: resp.SW2}
	}
	return nil
}

func SelectApplication(t Transmitter) error {
	resp, err := t.Transmit(apducat.SelectApplication())
	if err != nil {
		return errors.Wrap(err, "SELECT application")
	}
	if !resp.IsSuccess() {
		return &CommandError{Command: "SELECT application", SW1: resp.SW1, SW2: resp.SW2}
	}
	return nil
}

// ReadFile selects fileID and reads its full contents using the
// default chunk size.
func ReadFile(t Transmitter, fileID [2]byte) ([]byte, error) {
	return ReadFileChunked(t, fileID, DefaultChunkSize)
}

// ReadFileChunked selects fileID and reads its full contents,
// decoding the top-level BER TLV's length from the first four bytes
// to know when to stop. An empty EF (decoded length 0) returns no
// error and an empty slice.
func ReadFileChunked(t Transmitter, fileID [2]byte, chunkSize int) ([]byte, error) {
	return ReadFileChunkedWithProgress(t, fileID, chunkSize, nil)
}

// ReadFileChunkedWithProgress is ReadFileChunked plus a callback
// invoked after every READ BINARY of the file body with the bytes read
// so far and the total file length, for a host progress bar (the
// initial header read is not reported). onProgress may be nil.
func ReadFileChunkedWithProgress(t Transmitter, fileID [2]byte, chunkSize int, onProgress func(have, total int)) ([]byte, error) {
	selResp, err := t.Transmit(apducat.SelectEF(fileID))
	if err != nil {
		return nil, errors.Wrap(err, "SELECT EF")
	}
	if !selResp.IsSuccess() {
		return nil, &CommandError{Command: "SELECT EF", SW1: selResp.SW1, SW2: selResp.SW2}
	}

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	chunk := chunkSize

	header, err := readChunk(t, 0, 4, &chunk)
	if err != nil {
		return nil, errors.Wrap(err, "read file header")
	}

	total, headerLen, err := topLevelLength(header)
	if err != nil {
		return nil, errors.Wrap(err, "decode top-level TLV length")
	}
	if total == 0 {
		return nil, nil
	}

	fullLen := headerLen + total
	buf := make([]byte, 0, fullLen)
	buf = append(buf, header...)

	for len(buf) < fullLen {
		remaining := fullLen - len(buf)
		want := chunk
		if want > remaining {
			want = remaining
		}

		data, err := readChunk(t, len(buf), want, &chunk)
		if err != nil {
			return nil, errors.Wrap(err, "read file body")
		}
		if len(data) == 0 {
			break
		}
		buf = append(buf, data...)

		if onProgress != nil {
			onProgress(len(buf), fullLen)
		}
	}

	return buf, nil
}

// readChunk issues READ BINARY at offset for length n. If the chip
// reports wrong length (SW1=6C) it reduces the shared chunk size to the
// 160-byte fallback and, when n exceeded that fallback, retries once at
// 160 bytes; a 6C reply to a request of at most 160 bytes is returned
// as a CommandError.
func readChunk(t Transmitter, offset, n int, chunk *int) ([]byte, error) {
	resp, err := t.Transmit(apducat.ReadBinary(uint16(offset), n))
	if err != nil {
		return nil, err
	}

	if resp.SW1 == 0x6C {
		*chunk = fallbackChunkSize
		if n <= fallbackChunkSize {
			return nil, &CommandError{Command: "READ BINARY", SW1: resp.SW1, SW2: resp.SW2}
		}
		return readChunk(t, offset, fallbackChunkSize, chunk)
	}

	if !resp.IsSuccess() {
		return nil, &CommandError{Command: "READ BINARY", SW1: resp.SW1, SW2: resp.SW2}
	}

	return resp.Data, nil
}

// topLevelLength decodes a BER tag+length from the front of a short
// header buffer and returns the content length and the number of
// header bytes the tag+length occupied.
func topLevelLength(header []byte) (contentLen, headerLen int, err error) {
	if len(header) < 2 {
		return 0, 0, errors.New("lds: file header too short to decode a TLV length")
	}

	tagLen := 1
	if header[0]&0x1F == 0x1F {
		tagLen = 2
		for tagLen < len(header) && header[tagLen-1]&0x80 != 0 {
			tagLen++
		}
	}

	if tagLen >= len(header) {
		return 0, 0, errors.New("lds: file header too short for its tag")
	}

	lb := header[tagLen]

	switch {
	case lb < 0x80:
		return int(lb), tagLen + 1, nil
	case lb == 0x80:
		return 0, 0, errors.New("lds: indefinite length is not permitted")
	default:
		n := int(lb & 0x7F)
		if tagLen+1+n > len(header) {
			return 0, 0, errors.New("lds: long-form length exceeds header buffer")
		}
		length := 0
		for i := 0; i < n; i++ {
			length = length<<8 | int(header[tagLen+1+i])
		}
		return length, tagLen + 1 + n, nil
	}
}
